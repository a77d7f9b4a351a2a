package httputil

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is shared by handlers; validator.Validate caches struct metadata and is safe for concurrent use.
var Validator = validator.New(validator.WithRequiredStructEnabled())

// ValidationError writes a 400 listing the failing fields.
func ValidationError(log *slog.Logger, w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Fail(log, w, "invalid payload", err, http.StatusBadRequest)
		return
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	Fail(log, w, "validation failed: "+strings.Join(msgs, "; "), err, http.StatusBadRequest)
}
