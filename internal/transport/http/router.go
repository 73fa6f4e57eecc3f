package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"
)

// NewRouter wires the admin, viewer and operational routes of the show.
func NewRouter(svc *app.ShowService, log *slog.Logger, viewerURL string) *httprouter.Router {
	if log == nil {
		log = slog.Default()
	}
	admin := NewAdminHandler(svc, log)
	ws := NewWSHandler(svc, log)

	r := httprouter.New()
	r.PanicHandler = func(w http.ResponseWriter, req *http.Request, v any) {
		log.Error("handler panic", "path", req.URL.Path, "panic", v)
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: "internal error"})
	}

	r.GET("/healthz", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	r.HandlerFunc(http.MethodGet, "/ws", ws.ServeWS)

	r.POST("/admin/game/start/:gameId", admin.Command(app.CmdStartGame))
	r.POST("/admin/game/stop/:gameId", admin.Command(app.CmdStopGame))
	r.POST("/admin/game/toggle-mode/:gameId", admin.Command(app.CmdToggleMode))
	r.POST("/admin/game/next-question/:gameId", admin.Command(app.CmdAdvanceQuestion))
	r.POST("/admin/game/show-answer/:gameId", admin.Command(app.CmdShowAnswer))
	r.POST("/admin/game/refresh-responses/:gameId", admin.Command(app.CmdRefreshResponses))
	r.POST("/admin/game/display/:type/:gameId", admin.Command(app.CmdDisplay))
	r.POST("/admin/command", admin.RawCommand)
	r.GET("/admin/state/:gameId", admin.State)
	r.GET("/admin/sessions", admin.Sessions)

	r.POST("/games/:gameId/responses", admin.SubmitResponse)
	r.GET("/show/:gameId/qr", NewQRHandler(svc, viewerURL).ServeQR)

	return r
}

type errorPayload struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// commandStatus maps a command error onto the admin API status codes.
// Rejections that leave the show untouched still answer 200 with
// success=false.
func commandStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidGame):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGameNotOpen),
		errors.Is(err, domain.ErrInvalidDisplayType),
		errors.Is(err, domain.ErrUnknownCommand),
		errors.Is(err, domain.ErrInvalidResponse):
		return http.StatusBadRequest
	case app.IsClientError(err):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
