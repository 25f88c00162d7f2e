package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/signalhub/internal/ports"
)

type TokenHandler struct {
	issuer ports.RealtimeTokenIssuer
	log    *logger.ZapLogger
}

func NewTokenHandler(issuer ports.RealtimeTokenIssuer, log *logger.ZapLogger) *TokenHandler {
	return &TokenHandler{issuer: issuer, log: log}
}

// GET /api/elevenlabs-token
func (h *TokenHandler) ElevenLabsToken(w http.ResponseWriter, r *http.Request) {
	if h.issuer == nil || !h.issuer.Configured() {
		writeError(w, http.StatusServiceUnavailable, "ElevenLabs not configured")
		return
	}

	token, err := h.issuer.IssueRealtimeToken(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "realtime token issue failed",
			Error:   err,
		})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(token)
}
