// Package rest exposes the vigil use cases over HTTP/JSON.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/application/usecase"
	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid JSON")

// UseCases groups the application operations served over HTTP.
type UseCases struct {
	Analyze        *usecase.AnalyzeMessage
	Score          *usecase.ScoreText
	Heartbeat      *usecase.RecordHeartbeat
	Reset          *usecase.ResetDevice
	Messages       *usecase.ListDeviceMessages
	RecordLocation *usecase.RecordLocation
	LatestLocation *usecase.GetLatestLocation
	ListAlerts     *usecase.ListAlerts
	AckAlert       *usecase.AcknowledgeAlert
}

// Handler serves the /api/v1 routes.
type Handler struct {
	uc     UseCases
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(uc UseCases, logger *slog.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

// RegisterRoutes registers the API on mux. Parent-facing alert routes are
// wrapped by guard when it is non-nil.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}

	mux.HandleFunc("POST /api/v1/score", h.ScoreText)
	mux.HandleFunc("POST /api/v1/messages/analyze", h.AnalyzeMessage)
	mux.HandleFunc("POST /api/v1/devices/heartbeat", h.Heartbeat)
	mux.HandleFunc("POST /api/v1/devices/reset", h.ResetDevice)
	mux.HandleFunc("POST /api/v1/devices/location", h.RecordLocation)
	mux.HandleFunc("GET /api/v1/devices/location", h.LatestLocation)
	mux.HandleFunc("GET /api/v1/devices/messages", h.ListMessages)
	mux.Handle("GET /api/v1/alerts", guard(http.HandlerFunc(h.ListAlerts)))
	mux.Handle("POST /api/v1/alerts/{id}/acknowledge", guard(http.HandlerFunc(h.AcknowledgeAlert)))
}

// ScoreText handles POST /api/v1/score.
func (h *Handler) ScoreText(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.uc.Score.Execute(r.Context(), req))
}

// AnalyzeMessage handles POST /api/v1/messages/analyze.
func (h *Handler) AnalyzeMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeMessageRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.uc.Analyze.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Heartbeat handles POST /api/v1/devices/heartbeat.
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.uc.Heartbeat.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetDevice handles POST /api/v1/devices/reset.
func (h *Handler) ResetDevice(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.uc.Reset.Execute(r.Context(), req); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset", "kindred_id": req.KindredID})
}

// RecordLocation handles POST /api/v1/devices/location.
func (h *Handler) RecordLocation(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordLocationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.uc.RecordLocation.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// LatestLocation handles GET /api/v1/devices/location?kindredId=.
func (h *Handler) LatestLocation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.LatestLocation.Execute(r.Context(), dto.DeviceRequest{
		KindredID: r.URL.Query().Get("kindredId"),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListMessages handles GET /api/v1/devices/messages?kindredId=&page=.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, err := pageParams(q.Get("page"), q.Get("page_size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.uc.Messages.Execute(r.Context(), dto.ListMessagesRequest{
		KindredID: q.Get("kindredId"),
		Page:      page,
		PageSize:  size,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListAlerts handles GET /api/v1/alerts?risk=&page=.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, err := pageParams(q.Get("page"), q.Get("page_size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.uc.ListAlerts.Execute(r.Context(), dto.ListAlertsRequest{
		Risk:     q.Get("risk"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AcknowledgeAlert handles POST /api/v1/alerts/{id}/acknowledge.
func (h *Handler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}
	resp, err := h.uc.AckAlert.Execute(r.Context(), dto.AcknowledgeAlertRequest{AlertID: id})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleError maps use case errors onto HTTP status codes.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrDeviceNotFound):
		writeError(w, http.StatusNotFound, "device not found")
	case errors.Is(err, port.ErrAlertNotFound):
		writeError(w, http.StatusNotFound, "alert not found")
	case errors.Is(err, port.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "location not found")
	case errors.Is(err, model.ErrAlertAlreadyAcknowledged):
		writeError(w, http.StatusConflict, "alert already acknowledged")
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pageParams(rawPage, rawSize string) (int, int, error) {
	var page, size int
	var err error
	if rawPage != "" {
		if page, err = strconv.Atoi(rawPage); err != nil {
			return 0, 0, fmt.Errorf("invalid page %q", rawPage)
		}
	}
	if rawSize != "" {
		if size, err = strconv.Atoi(rawSize); err != nil {
			return 0, 0, fmt.Errorf("invalid page_size %q", rawSize)
		}
	}
	return page, size, nil
}

// readJSON decodes a single JSON document from the request body.
func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errInvalidJSON
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errInvalidJSON
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// writeJSON marshals the value as JSON and writes it to the response.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, map[string]string{"error": msg})
}
