package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = (eventsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// checkOrigin accepts same-host origins, non-browser clients, and any origin
// allowed by the CORS configuration.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if corsEnabled {
		for _, o := range corsAllowedOrigins {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// eventsHandler godoc
// @Summary      Lifecycle event stream
// @Description  WebSocket; each message is one JSON-encoded manager event.
// @Tags         system
// @Security     ApiKeyAuth
// @Success      101
// @Failure      401  {object}  types.ErrorResponse
// @Router       /events [get]
func eventsHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the HTTP error.
			return
		}
		defer conn.Close()

		events, unsubscribe := svc.Subscribe()
		defer unsubscribe()

		ctx, cancel := withServerLifetime(r.Context())
		defer cancel()

		// The reader only services control frames and notices disconnects.
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(eventsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
		})
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(eventsPingPeriod)
		defer ping.Stop()
		for {
			select {
			case e, ok := <-events:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
				if err := conn.WriteJSON(e); err != nil {
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventsWriteWait)); err != nil {
					return
				}
			case <-ctx.Done():
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(eventsWriteWait))
				return
			}
		}
	}
}
