package realtime

import (
	"log/slog"
	"net/http"
	"strings"

	"fooddelivery/internal/core/ports"

	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated requests to websocket clients. The bearer token comes
// from the token query parameter or the Authorization header.
type Handler struct {
	registry   *Registry
	tokens     ports.TokenIssuer
	sendBuffer int
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

func NewHandler(registry *Registry, tokens ports.TokenIssuer, sendBuffer int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry:   registry,
		tokens:     tokens,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "realtime_handler"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r.Header.Get("Authorization"))
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	actor, err := h.tokens.Verify(token)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(actor, h.sendBuffer)
	client.conn = conn
	h.registry.Register(client)

	go client.writePump()
	go client.readPump(h.registry)

	h.logger.InfoContext(r.Context(), "websocket client connected",
		"userId", actor.ID,
		"role", actor.Role,
	)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
