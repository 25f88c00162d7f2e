package ports

import "context"

// ChatCompleter is an LLM chat endpoint used as the primary insight engine.
type ChatCompleter interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, system, user string) (string, error)
}

// TextIntelligence is a server-side summarizer used as the fallback engine.
type TextIntelligence interface {
	Name() string
	Configured() bool
	Summarize(ctx context.Context, text string) (string, error)
}

// InsightService is the distiller surface consumed by delivery.
type InsightService interface {
	Distill(ctx context.Context, text, label string) (string, error)
}
