package api

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/selimacar/exercise-tracker/internal/api/httpx"
	"github.com/selimacar/exercise-tracker/internal/api/validate"
	"github.com/selimacar/exercise-tracker/internal/config"
	"github.com/selimacar/exercise-tracker/internal/metrics"
	"github.com/selimacar/exercise-tracker/internal/middleware"
	"github.com/selimacar/exercise-tracker/internal/services"
)

//go:embed web/index.html
var webFS embed.FS

func NewRouter(cfg config.Config, us *services.UserService, ls *services.LogService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// landing page, health & metrics
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		b, _ := webFS.ReadFile("web/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(b)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/exercise", func(r chi.Router) {
		// ---------- users ----------
		r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			users, err := us.List(r.Context())
			if err != nil {
				respondErr(w, err)
				return
			}
			if len(users) == 0 {
				httpx.WriteText(w, http.StatusOK, "No users yet in the database.")
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, users)
		})

		r.Post("/new-user", func(w http.ResponseWriter, r *http.Request) {
			form, err := parseBody(r)
			if err != nil {
				httpx.WriteText(w, http.StatusBadRequest, "bad request")
				return
			}
			username := strings.TrimSpace(form.Get("username"))
			if username == "" {
				respondErr(w, validate.Errs{{Field: "username", Msg: "Path `username` is required"}})
				return
			}
			u, err := us.Create(r.Context(), username)
			if err != nil {
				respondErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, u)
		})

		// ---------- log ----------
		r.Get("/log", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			userID := q.Get("userId")
			if userID == "" {
				httpx.WriteText(w, http.StatusBadRequest, "UserId Required")
				return
			}
			limit := 0
			if v := q.Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					limit = n
				}
			}
			res, err := ls.Query(r.Context(), userID, q.Get("from"), q.Get("to"), limit)
			if err != nil {
				respondErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, res)
		})

		r.Post("/add", func(w http.ResponseWriter, r *http.Request) {
			form, err := parseBody(r)
			if err != nil {
				httpx.WriteText(w, http.StatusBadRequest, "bad request")
				return
			}
			userID := form.Get("userId")
			description := form.Get("description")
			durStr := form.Get("duration")
			if userID == "" || description == "" || durStr == "" {
				httpx.WriteText(w, http.StatusBadRequest, "Please fill in required fields")
				return
			}
			duration, err := strconv.ParseFloat(durStr, 64)
			if err != nil {
				respondErr(w, validate.Errs{{Field: "duration", Msg: "Duration must be a number"}})
				return
			}
			u, err := ls.Append(r.Context(), userID, description, duration, form.Get("date"))
			if err != nil {
				respondErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, u)
		})
	})

	notFound := func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteText(w, http.StatusNotFound, "not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// respondErr is the central error mapper: field validation errors answer 400
// with the first field's message, unknown users 404, bad dates 400, anything
// else 500 "Internal Server Error". All bodies are plain text.
func respondErr(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	var badDate *services.BadDateError
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		httpx.WriteText(w, http.StatusBadRequest, verrs[0].Msg)
	case errors.As(err, &badDate):
		httpx.WriteText(w, http.StatusBadRequest, "Invalid Date")
	case errors.Is(err, services.ErrUnknownUser):
		httpx.WriteText(w, http.StatusNotFound, "Unknown UserId")
	default:
		slog.Error("request failed", "err", err)
		httpx.WriteText(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// parseBody accepts JSON or form-encoded bodies and flattens both to
// url.Values, since the handlers only need string fields.
func parseBody(r *http.Request) (url.Values, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			return nil, err
		}
		vals := url.Values{}
		for k, v := range m {
			switch t := v.(type) {
			case string:
				vals.Set(k, t)
			case float64:
				vals.Set(k, strconv.FormatFloat(t, 'f', -1, 64))
			case nil:
				// omitted
			default:
				vals.Set(k, fmt.Sprint(t))
			}
		}
		return vals, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
