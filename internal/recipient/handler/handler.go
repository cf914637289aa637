package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"prefsync/internal/recipient/models"
	"prefsync/internal/recipient/service"
	dErrors "prefsync/pkg/domain-errors"
	"prefsync/pkg/platform/httputil"
	"prefsync/pkg/platform/middleware/admin"
	"prefsync/pkg/platform/middleware/requesttime"
	"prefsync/pkg/requestcontext"
)

// Service defines the recipient preference operations exposed over HTTP.
type Service interface {
	Settings(ctx context.Context, addr models.Address) (service.View, error)
	MuteUntil(ctx context.Context, addr models.Address, until time.Time) error
	Unmute(ctx context.Context, addr models.Address) error
	SetMessageRingtone(ctx context.Context, addr models.Address, uri *string) error
	ResetMessageRingtone(ctx context.Context, addr models.Address) error
	SetMessageVibrate(ctx context.Context, addr models.Address, vibrate models.VibrateState) error
	SetColor(ctx context.Context, addr models.Address, color models.MaterialColor) error
	SetCustomNotifications(ctx context.Context, addr models.Address, enabled bool) error
	OpenSettings(ctx context.Context, addr models.Address) error
	IdentityAffordance(ctx context.Context, addr models.Address) (service.Affordance, error)
	EnsureConsistency(ctx context.Context) (int, error)
}

// Handler handles recipient preference endpoints.
type Handler struct {
	logger     *slog.Logger
	service    Service
	adminToken string
}

// New creates a new recipient Handler. adminToken guards the maintenance
// routes.
func New(svc Service, logger *slog.Logger, adminToken string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: svc, adminToken: adminToken}
}

// Register registers the recipient routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(requesttime.Middleware)
	router.Use(chimiddleware.Timeout(30 * time.Second))

	router.Route("/recipients/{address}", func(r chi.Router) {
		r.Get("/", h.handleGetSettings)
		r.Put("/mute", h.handleMute)
		r.Delete("/mute", h.handleUnmute)
		r.Put("/ringtone", h.handleSetRingtone)
		r.Delete("/ringtone", h.handleResetRingtone)
		r.Put("/vibrate", h.handleSetVibrate)
		r.Put("/color", h.handleSetColor)
		r.Put("/custom-notifications", h.handleSetCustomNotifications)
		r.Post("/settings/open", h.handleOpenSettings)
		r.Get("/identity", h.handleGetIdentity)
	})
	router.With(admin.RequireAdminToken(h.adminToken, h.logger)).
		Post("/maintenance/consistency", h.handleEnsureConsistency)

	r.Mount("/", router)
}

// MuteRequest mutes for a duration from the request time or until an
// absolute epoch-millisecond deadline. Duration wins when both are set.
type MuteRequest struct {
	DurationSeconds int64 `json:"duration_seconds,omitempty"`
	UntilMillis     int64 `json:"until_ms,omitempty"`
}

// RingtoneRequest carries the picked tone. A null uri means silence.
type RingtoneRequest struct {
	URI *string `json:"uri"`
}

type VibrateRequest struct {
	State int `json:"state"`
}

type ColorRequest struct {
	Color string `json:"color"`
}

type CustomNotificationsRequest struct {
	Enabled bool `json:"enabled"`
}

// IdentityResponse omits the key material itself.
type IdentityResponse struct {
	Visible        bool   `json:"visible"`
	VerifiedStatus string `json:"verified_status,omitempty"`
	FirstUse       bool   `json:"first_use,omitempty"`
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Settings(r.Context(), address(r))
	if err != nil {
		h.writeServiceError(w, r, "failed to load settings", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// maxMuteSeconds is the longest duration that fits in a time.Duration.
const maxMuteSeconds = math.MaxInt64 / int64(time.Second)

func (h *Handler) handleMute(w http.ResponseWriter, r *http.Request) {
	var req MuteRequest
	if !h.decode(w, r, &req) {
		return
	}

	var until time.Time
	switch {
	case req.DurationSeconds > maxMuteSeconds:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "duration_seconds is too large"))
		return
	case req.DurationSeconds > 0:
		until = requestcontext.Now(r.Context()).Add(time.Duration(req.DurationSeconds) * time.Second)
	case req.UntilMillis > 0:
		until = time.UnixMilli(req.UntilMillis)
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "duration_seconds or until_ms is required"))
		return
	}
	h.respond(w, r, "failed to mute", h.service.MuteUntil(r.Context(), address(r), until))
}

func (h *Handler) handleUnmute(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "failed to unmute", h.service.Unmute(r.Context(), address(r)))
}

func (h *Handler) handleSetRingtone(w http.ResponseWriter, r *http.Request) {
	var req RingtoneRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, "failed to set ringtone", h.service.SetMessageRingtone(r.Context(), address(r), req.URI))
}

func (h *Handler) handleResetRingtone(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "failed to reset ringtone", h.service.ResetMessageRingtone(r.Context(), address(r)))
}

func (h *Handler) handleSetVibrate(w http.ResponseWriter, r *http.Request) {
	var req VibrateRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.service.SetMessageVibrate(r.Context(), address(r), models.VibrateState(req.State))
	h.respond(w, r, "failed to set vibrate", err)
}

func (h *Handler) handleSetColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.service.SetColor(r.Context(), address(r), models.MaterialColor(req.Color))
	h.respond(w, r, "failed to set color", err)
}

func (h *Handler) handleSetCustomNotifications(w http.ResponseWriter, r *http.Request) {
	var req CustomNotificationsRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.service.SetCustomNotifications(r.Context(), address(r), req.Enabled)
	h.respond(w, r, "failed to change custom notifications", err)
}

func (h *Handler) handleOpenSettings(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "failed to sync settings", h.service.OpenSettings(r.Context(), address(r)))
}

func (h *Handler) handleGetIdentity(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.IdentityAffordance(r.Context(), address(r))
	if err != nil {
		h.writeServiceError(w, r, "failed to fetch identity", err)
		return
	}
	resp := IdentityResponse{Visible: a.Visible}
	if a.Record != nil {
		resp.VerifiedStatus = a.Record.VerifiedStatus.String()
		resp.FirstUse = a.Record.FirstUse
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleEnsureConsistency(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.EnsureConsistency(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "consistency check failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, map[string]int{"scheduled": n})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"request_id", requestcontext.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

// respond acknowledges an accepted mutation. Durable writes complete later.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if err != nil {
		h.writeServiceError(w, r, msg, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"recipient", chi.URLParam(r, "address"),
		"error", err.Error(),
	}
	if dErrors.Is(err, dErrors.CodeValidation) || dErrors.Is(err, dErrors.CodeBadRequest) {
		h.logger.WarnContext(ctx, msg, attrs...)
	} else {
		h.logger.ErrorContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func address(r *http.Request) models.Address {
	return models.Address(chi.URLParam(r, "address"))
}
