package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	appMiddleware "contact-form/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCookieName — имя cookie сессии, если в HandlerConfig не задано другое.
const DefaultCookieName = "contact_session"

// HandlerConfig — настройки HTTP-слоя.
type HandlerConfig struct {
	CookieName     string
	RequestTimeout time.Duration
	// Маршрут сброса формы монтируется только при заданных учётных данных.
	AdminUser     string
	AdminPassword string
}

// Handler — HTTP-слой контактной формы.
//
// Здесь всё, что относится к HTTP: роуты, cookie сессии, парсинг форм и JSON,
// коды ответов. Состояние живёт в Service.
type Handler struct {
	svc *Service
	cfg HandlerConfig
	log *zap.Logger
}

// NewHandler создаёт Handler.
func NewHandler(svc *Service, cfg HandlerConfig, log *zap.Logger) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// updateFieldRequest — тело PUT /api/v1/contact/fields/{field}.
// Указатель отличает отсутствующее значение от пустой строки.
type updateFieldRequest struct {
	Value *string `json:"value" validate:"required"`
}

type submitResponse struct {
	OK   bool `json:"ok"`
	View View `json:"view"`
}

type validateResponse struct {
	Valid  bool        `json:"valid"`
	Errors []ErrorLine `json:"errors"`
}

// Router собирает HTTP-роутер формы.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(appMiddleware.RequestTimeoutMiddleware(h.cfg.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	r.Get("/", h.getPage)
	r.Post("/", h.postPage)

	r.Route("/api/v1/contact", func(r chi.Router) {
		r.Use(appMiddleware.JSONHeaderMiddleware)

		r.Get("/", h.getView)
		r.Put("/fields/{field}", h.putField)
		r.Post("/validate", h.validateFields)
		r.Post("/submit", h.submit)

		if h.cfg.AdminUser != "" && h.cfg.AdminPassword != "" {
			r.With(appMiddleware.BasicAuthMiddleware(h.cfg.AdminUser, h.cfg.AdminPassword)).
				Delete("/submission", h.resetSubmission)
		}
	})
	return r
}

// getPage обрабатывает GET /
func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	v, err := h.svc.View(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Failed to load form")
		return
	}
	h.writeHTML(w, http.StatusOK, v)
}

// postPage обрабатывает POST / — отправку HTML-формы целиком.
func (h *Handler) postPage(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	var fields FieldSet
	for _, f := range Fields {
		// Fields — закрытый список, With на нём не ошибается.
		fields, _ = fields.With(f, r.PostForm.Get(string(f)))
	}

	res, v, err := h.svc.Submit(r.Context(), id, &fields)
	if err != nil {
		h.handleError(w, err, "Failed to submit form")
		return
	}

	status := http.StatusOK
	if !res.OK {
		status = http.StatusUnprocessableEntity
	}
	h.writeHTML(w, status, v)
}

// getView обрабатывает GET /api/v1/contact
func (h *Handler) getView(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	v, err := h.svc.View(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Failed to load form")
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// putField обрабатывает PUT /api/v1/contact/fields/{field} — ввод в одно поле.
func (h *Handler) putField(w http.ResponseWriter, r *http.Request) {
	field, err := ParseField(chi.URLParam(r, "field"))
	if err != nil {
		http.Error(w, "Unknown field", http.StatusNotFound)
		return
	}

	var req updateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Value is required", http.StatusBadRequest)
		return
	}

	id := h.session(w, r)
	v, err := h.svc.Input(r.Context(), id, field, *req.Value)
	if err != nil {
		h.handleError(w, err, "Failed to update field")
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// validateFields обрабатывает POST /api/v1/contact/validate.
// Состояние сессии не меняется.
func (h *Handler) validateFields(w http.ResponseWriter, r *http.Request) {
	var fields FieldSet
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	errs := Validate(fields)
	_ = json.NewEncoder(w).Encode(validateResponse{
		Valid:  len(errs) == 0,
		Errors: Project(fields, errs, nil).Errors,
	})
}

// submit обрабатывает POST /api/v1/contact/submit.
// Тело необязательно: если оно есть, поля сначала заменяются целиком.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var fields *FieldSet

	var in FieldSet
	switch err := json.NewDecoder(r.Body).Decode(&in); {
	case errors.Is(err, io.EOF):
		// пустое тело — отправляем то, что уже введено
	case err != nil:
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	default:
		fields = &in
	}

	id := h.session(w, r)
	res, v, err := h.svc.Submit(r.Context(), id, fields)
	if err != nil {
		h.handleError(w, err, "Failed to submit form")
		return
	}

	if !res.OK {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	_ = json.NewEncoder(w).Encode(submitResponse{OK: res.OK, View: v})
}

// resetSubmission обрабатывает DELETE /api/v1/contact/submission.
func (h *Handler) resetSubmission(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(h.cfg.CookieName)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if err := h.svc.Reset(r.Context(), c.Value); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		h.handleError(w, err, "Failed to reset form")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session возвращает id сессии из cookie или заводит новую.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cfg.CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) writeHTML(w http.ResponseWriter, status int, v View) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, v); err != nil {
		h.log.Error("render contact page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// handleError отвечает на ошибку сервиса.
//
// context.Canceled — клиент ушёл или сервер останавливается, отвечать некому.
// context.DeadlineExceeded — сработал RequestTimeoutMiddleware, отвечаем 408.
func (h *Handler) handleError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Request timeout", http.StatusRequestTimeout)
	default:
		h.log.Error(msg, zap.Error(err))
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
