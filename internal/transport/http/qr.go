package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"
)

const qrSize = 320

// QRHandler renders a PNG share code pointing viewers at a game.
type QRHandler struct {
	service   *app.ShowService
	viewerURL string
}

// NewQRHandler uses viewerURL as the target page. When empty the code points
// at this server's websocket endpoint.
func NewQRHandler(service *app.ShowService, viewerURL string) *QRHandler {
	return &QRHandler{service: service, viewerURL: viewerURL}
}

func (h *QRHandler) ServeQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameId")
	if _, err := h.service.Snapshot(r.Context(), gameID); err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		http.Error(w, "game lookup failed", http.StatusInternalServerError)
		return
	}

	png, err := qrcode.Encode(h.target(r, gameID), qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *QRHandler) target(r *http.Request, gameID string) string {
	if h.viewerURL != "" {
		if u, err := url.Parse(h.viewerURL); err == nil {
			q := u.Query()
			q.Set("gameId", gameID)
			u.RawQuery = q.Encode()
			return u.String()
		}
	}

	// Respect TLS and X-Forwarded-Proto when deriving our own address.
	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: "/ws", RawQuery: url.Values{"gameId": {gameID}}.Encode()}
	return u.String()
}
