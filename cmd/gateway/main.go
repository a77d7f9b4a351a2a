package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"bible-hub/internal/app"
	"bible-hub/internal/httputil"
	"bible-hub/internal/markdown"
	"bible-hub/internal/media"
	"bible-hub/internal/session"
)

type chapterRequest struct {
	Book    string `json:"book" validate:"required,max=64"`
	Chapter string `json:"chapter" validate:"required,max=16"`
}

type insightRequest struct {
	Book    string `json:"book" validate:"required,max=64"`
	Chapter string `json:"chapter" validate:"required,max=16"`
	Focus   string `json:"focus" validate:"max=500"`
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", deps.Config.Port),
		Handler: newRouter(deps),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Log.Info("gateway listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps) http.Handler {
	r := httputil.NewRouter(deps.Log, time.Duration(deps.Config.RequestTimeout)*time.Second)

	r.Get("/healthz", httputil.HealthHandler(deps))
	r.Post("/api/login", loginHandler(deps))
	r.Group(func(r chi.Router) {
		r.Use(httputil.RequireSession(deps.Gate, deps.Log))
		r.Post("/api/outline", outlineHandler(deps))
		r.Post("/api/insight", insightHandler(deps))
		r.Post("/api/topics", topicsHandler(deps))
		r.Post("/api/summary", summaryHandler(deps))
	})
	return r
}

func loginHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decode(deps, w, r, &req) {
			return
		}
		token, err := deps.Gate.Login(r.Context(), req.Password)
		if errors.Is(err, session.ErrWrongPassword) {
			httputil.Fail(deps.Log, w, "wrong password", err, http.StatusUnauthorized)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to create session", err, http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(deps.Gate.TTL().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func outlineHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chapterRequest
		if !decode(deps, w, r, &req) {
			return
		}
		md, err := deps.Study.Outline(r.Context(), req.Book, req.Chapter)
		if err != nil {
			httputil.FailClassified(deps.Log, w, err)
			return
		}
		writeMarkdown(deps, w, r, md)
	}
}

func insightHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req insightRequest
		if !decode(deps, w, r, &req) {
			return
		}
		md, err := deps.Study.PastorInsight(r.Context(), req.Book, req.Chapter, req.Focus)
		if err != nil {
			httputil.FailClassified(deps.Log, w, err)
			return
		}
		writeMarkdown(deps, w, r, md)
	}
}

func topicsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chapterRequest
		if !decode(deps, w, r, &req) {
			return
		}
		topics, err := deps.Study.TopicSuggestions(r.Context(), req.Book, req.Chapter)
		if err != nil {
			httputil.FailClassified(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"topics": topics})
	}
}

func summaryHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		tooLarge := fmt.Sprintf("file too large (max %d bytes)", maxFileSize)
		if r.ContentLength > maxFileSize+(1<<20) {
			httputil.Fail(deps.Log, w, tooLarge, nil, http.StatusRequestEntityTooLarge)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, tooLarge, nil, http.StatusRequestEntityTooLarge)
			return
		}

		// Sniff when the browser sent no usable type
		contentType := header.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			head := make([]byte, 3072)
			n, _ := io.ReadFull(file, head)
			contentType = media.Sniff(head[:n])
			if _, err := file.Seek(0, io.SeekStart); err != nil {
				httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
				return
			}
		}
		if !media.IsAudioOrVideo(contentType) {
			httputil.Fail(deps.Log, w, "unsupported file type (audio or video recordings only)", nil, http.StatusBadRequest)
			return
		}

		deps.Log.Info("summarizing recording", "filename", header.Filename, "bytes", header.Size, "mime", contentType)
		md, err := deps.Study.AudioSummary(r.Context(), file, contentType)
		if err != nil {
			httputil.FailClassified(deps.Log, w, err)
			return
		}
		writeMarkdown(deps, w, r, md)
	}
}

// decode reads and validates a JSON body, writing the failure response itself.
func decode(deps app.Deps, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
		return false
	}
	if err := httputil.Validator.Struct(dst); err != nil {
		httputil.ValidationError(deps.Log, w, err)
		return false
	}
	return true
}

func writeMarkdown(deps app.Deps, w http.ResponseWriter, r *http.Request, md string) {
	body := map[string]any{"markdown": md}
	if r.URL.Query().Get("format") == "html" {
		html, err := markdown.ToHTML(md)
		if err != nil {
			deps.Log.Warn("markdown render failed", "err", err)
		} else {
			body["html"] = html
		}
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}
