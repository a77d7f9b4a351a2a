package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"bible-hub/internal/llm"
)

// ErrRead marks a failure to read the uploaded media (corrupt file, permission denied, empty upload).
var ErrRead = errors.New("media read failure")

// sniffLen is how much of the payload is inspected when the declared type is missing.
const sniffLen = 3072

type sizer interface {
	Size() int64
}

// Encode reads r to EOF and returns it as a base64 attachment. The work runs on its own goroutine
// and Encode returns once it succeeds, fails, or ctx is done. There is no progress reporting.
//
// An empty or generic mimeType ("application/octet-stream") is replaced by the sniffed type.
func Encode(ctx context.Context, r io.Reader, mimeType string) (llm.Attachment, error) {
	type result struct {
		att llm.Attachment
		err error
	}
	done := make(chan result, 1)
	go func() {
		att, err := encode(r, mimeType)
		done <- result{att: att, err: err}
	}()
	select {
	case <-ctx.Done():
		return llm.Attachment{}, ctx.Err()
	case res := <-done:
		return res.att, res.err
	}
}

func encode(r io.Reader, mimeType string) (llm.Attachment, error) {
	if r == nil {
		return llm.Attachment{}, fmt.Errorf("%w: no media", ErrRead)
	}
	var sb strings.Builder
	if s, ok := r.(sizer); ok && s.Size() > 0 {
		sb.Grow(base64.StdEncoding.EncodedLen(int(s.Size())))
	}

	mimeType = normalizeType(mimeType)
	if mimeType == "" {
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(r, head)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return llm.Attachment{}, fmt.Errorf("%w: %v", ErrRead, err)
		}
		head = head[:n]
		mimeType = normalizeType(mimetype.Detect(head).String())
		r = io.MultiReader(bytes.NewReader(head), r)
	}

	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	n, err := io.Copy(enc, r)
	if err != nil {
		return llm.Attachment{}, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if err := enc.Close(); err != nil {
		return llm.Attachment{}, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if n == 0 {
		return llm.Attachment{}, fmt.Errorf("%w: media is empty", ErrRead)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return llm.Attachment{MimeType: mimeType, Data: sb.String()}, nil
}

// normalizeType strips parameters and lowercases; the generic binary type counts as unknown.
func normalizeType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "application/octet-stream" {
		return ""
	}
	return base
}

// IsAudioOrVideo reports whether mimeType is an audio or video type.
func IsAudioOrVideo(mimeType string) bool {
	t := normalizeType(mimeType)
	return strings.HasPrefix(t, "audio/") || strings.HasPrefix(t, "video/")
}

// Sniff detects the type of a payload prefix.
func Sniff(head []byte) string {
	return normalizeType(mimetype.Detect(head).String())
}
