package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"
)

// AdminHandler exposes the show commands and state views over HTTP.
type AdminHandler struct {
	service *app.ShowService
	log     *slog.Logger
}

func NewAdminHandler(service *app.ShowService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{service: service, log: log}
}

// Command returns a handler running the named command against the :gameId
// route parameter. The display command also reads :type.
func (h *AdminHandler) Command(name string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		h.run(w, r, app.Command{
			Name:        name,
			GameID:      ps.ByName("gameId"),
			DisplayType: ps.ByName("type"),
		})
	}
}

// RawCommand accepts a JSON encoded app.Command body.
func (h *AdminHandler) RawCommand(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cmd app.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, app.Result{Success: false, Message: "invalid command payload"})
		return
	}
	if cmd.GameID == "" {
		writeJSON(w, http.StatusBadRequest, app.Result{Success: false, Message: "gameId is required"})
		return
	}
	h.run(w, r, cmd)
}

func (h *AdminHandler) run(w http.ResponseWriter, r *http.Request, cmd app.Command) {
	res, err := h.service.Execute(r.Context(), cmd)
	status := commandStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error("command failed", "command", cmd.Name, "game", cmd.GameID, "err", err)
	}
	writeJSON(w, status, res)
}

// State returns the session snapshot of a game.
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.Snapshot(r.Context(), ps.ByName("gameId"))
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			writeJSON(w, http.StatusNotFound, errorPayload{Message: err.Error()})
			return
		}
		h.log.Error("state lookup failed", "game", ps.ByName("gameId"), "err", err)
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: "state unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *AdminHandler) Sessions(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, h.service.Sessions())
}

type responseRequest struct {
	ViewerID string `json:"viewerId"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Text     string `json:"text"`
}

// SubmitResponse records a viewer answer posted by a chat bridge or client.
func (h *AdminHandler) SubmitResponse(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req responseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid response payload"})
		return
	}
	rec, err := h.service.SubmitResponse(r.Context(), ps.ByName("gameId"), domain.Viewer{
		ID:        req.ViewerID,
		Name:      req.Name,
		AvatarURL: req.Picture,
	}, req.Text)
	if err != nil {
		status := responseStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("response rejected", "game", ps.ByName("gameId"), "err", err)
		}
		writeJSON(w, status, errorPayload{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func responseStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidResponse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrQuestionClosed), errors.Is(err, domain.ErrGameNotOpen):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
