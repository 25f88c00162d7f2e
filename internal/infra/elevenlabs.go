package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Vovarama1992/signalhub/internal/models"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"

// ElevenLabsClient talks to the Scribe speech-to-text API. Primary engine:
// best quality, speaker diarization.
type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewElevenLabsClient(apiKey string) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey:  apiKey,
		baseURL: elevenLabsBaseURL,
		client:  http.DefaultClient,
	}
}

func (c *ElevenLabsClient) Name() string     { return "elevenlabs" }
func (c *ElevenLabsClient) Configured() bool { return c.apiKey != "" }

type scribeSegment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type scribeResponse struct {
	Text     string          `json:"text"`
	Segments []scribeSegment `json:"segments"`
}

func (c *ElevenLabsClient) Transcribe(ctx context.Context, audio []byte) (models.Transcript, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "audio")
	if err != nil {
		return models.Transcript{}, err
	}
	if _, err := fw.Write(audio); err != nil {
		return models.Transcript{}, err
	}
	_ = mw.WriteField("model_id", "scribe_v2")
	_ = mw.WriteField("language_code", "en")
	_ = mw.WriteField("diarize", "true")
	if err := mw.Close(); err != nil {
		return models.Transcript{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/speech-to-text", &body)
	if err != nil {
		return models.Transcript{}, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Transcript{}, fmt.Errorf("elevenlabs scribe request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return models.Transcript{}, fmt.Errorf("elevenlabs scribe http %d: %s", resp.StatusCode, trimBody(raw))
	}

	var parsed scribeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// last resort: the whole response body as transcript text
		return models.Transcript{Text: string(raw)}, nil
	}

	tr := models.Transcript{Text: parsed.Text}
	for _, seg := range parsed.Segments {
		tr.Segments = append(tr.Segments, models.TranscriptSegment{
			Speaker: seg.Speaker,
			Text:    seg.Text,
		})
	}
	if len(tr.Segments) == 0 && tr.Text == "" {
		tr.Text = string(raw)
	}
	return tr, nil
}

// IssueRealtimeToken mints a single-use token for the client-side realtime
// scribe SDK. The payload goes back to the browser untouched.
func (c *ElevenLabsClient) IssueRealtimeToken(ctx context.Context) (json.RawMessage, error) {
	payload := strings.NewReader(`{"token_type":"realtime_scribe"}`)

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/tokens/single-use", payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs token request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("elevenlabs token http %d: %s", resp.StatusCode, trimBody(raw))
	}
	return json.RawMessage(raw), nil
}

func trimBody(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 280 {
		return s[:280] + "…"
	}
	return s
}
