package ports

import (
	"context"
	"encoding/json"
)

// RealtimeTokenIssuer mints single-use tokens for client-side realtime
// transcription. The token payload is passed through to the client as-is.
type RealtimeTokenIssuer interface {
	Configured() bool
	IssueRealtimeToken(ctx context.Context) (json.RawMessage, error)
}
