package delivery

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hProcess *ProcessHandler, hHealth *HealthHandler, hToken *TokenHandler, hStatic *StaticHandler) {

	// processing
	r.Post("/api/process-chat", hProcess.ProcessChat)
	r.Post("/api/process-file", hProcess.ProcessFile)
	r.Post("/api/process-call", hProcess.ProcessCall)

	// introspection
	r.Get("/api/health", hHealth.Health)
	r.Get("/api/elevenlabs-token", hToken.ElevenLabsToken)

	// frontend
	r.Get("/", hStatic.Index)
	r.Get("/{file}", hStatic.Asset)
}
