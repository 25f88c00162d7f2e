package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/signalhub/internal/models"
)

const deepgramBaseURL = "https://api.deepgram.com"

// DeepgramClient covers two capabilities: nova-2 transcription with speaker
// diarization (transcription fallback) and text-intelligence summarization
// (distillation fallback).
type DeepgramClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewDeepgramClient(apiKey string) *DeepgramClient {
	return &DeepgramClient{
		apiKey:  apiKey,
		baseURL: deepgramBaseURL,
		client:  http.DefaultClient,
	}
}

func (c *DeepgramClient) Name() string     { return "deepgram" }
func (c *DeepgramClient) Configured() bool { return c.apiKey != "" }

type dgListenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []struct {
			Speaker    int    `json:"speaker"`
			Transcript string `json:"transcript"`
		} `json:"utterances"`
	} `json:"results"`
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte) (models.Transcript, error) {
	url := c.baseURL + "/v1/listen" +
		"?model=nova-2&smart_format=true&diarize=true&punctuate=true&utterances=true"

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(audio))
	if err != nil {
		return models.Transcript{}, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Transcript{}, fmt.Errorf("deepgram listen request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return models.Transcript{}, fmt.Errorf("deepgram listen http %d: %s", resp.StatusCode, trimBody(raw))
	}

	var parsed dgListenResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return models.Transcript{}, fmt.Errorf("deepgram listen decode: %w", err)
	}

	// utterance-level speaker turns win over the channel transcript
	tr := models.Transcript{}
	for _, u := range parsed.Results.Utterances {
		tr.Segments = append(tr.Segments, models.TranscriptSegment{
			Speaker: strconv.Itoa(u.Speaker),
			Text:    u.Transcript,
		})
	}
	if len(tr.Segments) > 0 {
		return tr, nil
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return models.Transcript{}, fmt.Errorf("deepgram listen: no channels in response")
	}
	tr.Text = parsed.Results.Channels[0].Alternatives[0].Transcript
	return tr, nil
}

type dgReadResponse struct {
	Results struct {
		Summary  json.RawMessage `json:"summary"`
		Channels []struct {
			Alternatives []struct {
				Summaries []struct {
					Summary string `json:"summary"`
				} `json:"summaries"`
				Summary string `json:"summary"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// summaryStrategy extracts a summary from one known response shape, or
// reports not-applicable. Shapes differ across API versions, not behaviors.
type summaryStrategy func(r *dgReadResponse) (string, bool)

var summaryStrategies = []summaryStrategy{
	directSummary,
	alternativeSummariesList,
	alternativeScalarSummary,
}

// directSummary handles results.summary, either a bare string or an object
// carrying the text.
func directSummary(r *dgReadResponse) (string, bool) {
	if len(r.Results.Summary) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(r.Results.Summary, &s); err == nil && s != "" {
		return s, true
	}
	var obj struct {
		Text    string `json:"text"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(r.Results.Summary, &obj); err == nil {
		if obj.Text != "" {
			return obj.Text, true
		}
		if obj.Summary != "" {
			return obj.Summary, true
		}
	}
	return "", false
}

func alternativeSummariesList(r *dgReadResponse) (string, bool) {
	if len(r.Results.Channels) == 0 || len(r.Results.Channels[0].Alternatives) == 0 {
		return "", false
	}
	alt := r.Results.Channels[0].Alternatives[0]
	if len(alt.Summaries) == 0 || alt.Summaries[0].Summary == "" {
		return "", false
	}
	return alt.Summaries[0].Summary, true
}

func alternativeScalarSummary(r *dgReadResponse) (string, bool) {
	if len(r.Results.Channels) == 0 || len(r.Results.Channels[0].Alternatives) == 0 {
		return "", false
	}
	alt := r.Results.Channels[0].Alternatives[0]
	if alt.Summary == "" {
		return "", false
	}
	return alt.Summary, true
}

// Summarize runs the text-intelligence endpoint and extracts the summary
// from whichever response shape is populated, in priority order.
func (c *DeepgramClient) Summarize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/v1/read?summarize=true&language=en"

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepgram read request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("deepgram read http %d: %s", resp.StatusCode, trimBody(raw))
	}

	var parsed dgReadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("deepgram read decode: %w", err)
	}

	for _, strategy := range summaryStrategies {
		if s, ok := strategy(&parsed); ok {
			return s, nil
		}
	}
	return "", fmt.Errorf("deepgram read: response received but no summary found")
}
