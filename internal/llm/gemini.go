package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gvawatch/gva-console/internal/gva"
)

// Defaults for the Gemini generateContent API.
const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.5-flash"
)

// reportTemperature biases report generation toward deterministic, factual
// output.
const reportTemperature = 0.1

// Client talks to the Gemini generateContent REST API. It performs exactly
// one outbound request per operation: no retries, no caching. Every failure
// is returned as a *CallError; callers render the fixed fallback text and
// log the error to the diagnostic channel.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient constructs a Gemini client.
// endpoint example: https://generativelanguage.googleapis.com/v1beta
// model example: "gemini-2.5-flash"
// apiKey is read from GEMINI_API_KEY when empty. A missing key does not fail
// construction; calls degrade to their fallback instead.
func NewClient(endpoint, model, apiKey string, logger *log.Logger) *Client {
	ep := strings.TrimSpace(endpoint)
	if ep == "" {
		ep = DefaultEndpoint
	}
	m := strings.TrimSpace(model)
	if m == "" {
		m = DefaultModel
	}
	key := strings.TrimSpace(apiKey)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		endpoint:   strings.TrimRight(ep, "/"),
		model:      m,
		apiKey:     key,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// Request/response payloads (Gemini generateContent schema)

type genContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
	GoogleMaps   *struct{} `json:"googleMaps,omitempty"`
}

type genLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type genRetrievalConfig struct {
	LatLng *genLatLng `json:"latLng,omitempty"`
}

type genToolConfig struct {
	RetrievalConfig *genRetrievalConfig `json:"retrievalConfig,omitempty"`
}

type genGenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type genRequest struct {
	Contents          []genContent         `json:"contents"`
	SystemInstruction *genContent          `json:"systemInstruction,omitempty"`
	Tools             []genTool            `json:"tools,omitempty"`
	ToolConfig        *genToolConfig       `json:"toolConfig,omitempty"`
	GenerationConfig  *genGenerationConfig `json:"generationConfig,omitempty"`
}

type genGroundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web,omitempty"`
	Maps *struct {
		URI     string `json:"uri"`
		Title   string `json:"title"`
		PlaceID string `json:"placeId"`
	} `json:"maps,omitempty"`
}

type genResponse struct {
	Candidates []struct {
		Content           genContent `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []genGroundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata,omitempty"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// GenerateReport sends the full summary table and the incident sample to a
// web-search-grounded generation call at a fixed low temperature.
func (c *Client) GenerateReport(ctx context.Context, table gva.Table, sample []gva.Record) (*GroundedResponse, error) {
	temp := reportTemperature
	req := genRequest{
		Contents: []genContent{
			{Role: "user", Parts: []genPart{{Text: reportPrompt(table, sample)}}},
		},
		SystemInstruction: &genContent{Parts: []genPart{{Text: reportSystemInstruction}}},
		Tools:             []genTool{{GoogleSearch: &struct{}{}}},
		GenerationConfig:  &genGenerationConfig{Temperature: &temp},
	}
	return c.generate(ctx, req)
}

// FindLocalSafetyResources issues a maps-grounded lookup. Coordinates, when
// present, are passed as retrieval bias; when absent the prompt itself falls
// back to generic metropolitan-area phrasing. Both the coordinate-less path
// and an API failure surface as the same generic fallback text upstream.
func (c *Client) FindLocalSafetyResources(ctx context.Context, coords *gva.Coordinates) (*GroundedResponse, error) {
	req := genRequest{
		Contents: []genContent{
			{Role: "user", Parts: []genPart{{Text: resourcesPrompt(coords)}}},
		},
		Tools: []genTool{{GoogleMaps: &struct{}{}}},
	}
	if coords != nil {
		req.ToolConfig = &genToolConfig{
			RetrievalConfig: &genRetrievalConfig{
				LatLng: &genLatLng{Latitude: coords.Lat, Longitude: coords.Lng},
			},
		}
	}
	return c.generate(ctx, req)
}

// Chat sends text on the given session: the full history plus the new
// message go out with the session's system instruction, and the exchange is
// appended to the session only when the call succeeds. A send while a prior
// one is still pending is rejected with ReasonBusy.
func (c *Client) Chat(ctx context.Context, s *Session, text string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("llm: nil chat session")
	}
	if err := s.acquire(); err != nil {
		return "", err
	}
	defer s.release()

	history := s.History()
	contents := make([]genContent, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, genContent{Role: role, Parts: []genPart{{Text: m.Content}}})
	}
	contents = append(contents, genContent{Role: "user", Parts: []genPart{{Text: text}}})

	req := genRequest{
		Contents:          contents,
		SystemInstruction: &genContent{Parts: []genPart{{Text: s.SystemInstruction()}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}

	now := time.Now()
	s.append(
		ChatMessage{Role: RoleUser, Content: text, Timestamp: now},
		ChatMessage{Role: RoleAssistant, Content: resp.Text, Timestamp: time.Now()},
	)
	return resp.Text, nil
}

// generate performs the single outbound generateContent request and
// normalizes the response into {text, sources}.
func (c *Client) generate(ctx context.Context, payload genRequest) (*GroundedResponse, error) {
	if c.apiKey == "" {
		return nil, callError(ReasonNoCredential,
			errors.New("no API key configured (set gemini.api_key or GEMINI_API_KEY)"))
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, callError(ReasonDecode, fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, callError(ReasonTransport, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, callError(ReasonTransport, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode/100 != 2 {
		return nil, callError(ReasonStatus,
			fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(string(body), 400)))
	}

	var parsed genResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, callError(ReasonDecode, fmt.Errorf("decode response: %w", err))
	}
	if parsed.Error != nil {
		return nil, callError(ReasonStatus,
			fmt.Errorf("api error %d (%s): %s", parsed.Error.Code, parsed.Error.Status, parsed.Error.Message))
	}
	if len(parsed.Candidates) == 0 {
		return nil, callError(ReasonEmpty, errors.New("no candidates in response"))
	}

	cand := parsed.Candidates[0]
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, callError(ReasonEmpty, errors.New("candidate contained no text"))
	}

	out := &GroundedResponse{Text: text, Sources: []SourceChunk{}}
	if cand.GroundingMetadata != nil {
		for _, ch := range cand.GroundingMetadata.GroundingChunks {
			switch {
			case ch.Web != nil && ch.Web.URI != "":
				out.Sources = append(out.Sources, SourceChunk{Type: SourceWeb, URI: ch.Web.URI, Title: ch.Web.Title})
			case ch.Maps != nil && ch.Maps.URI != "":
				out.Sources = append(out.Sources, SourceChunk{Type: SourceMaps, URI: ch.Maps.URI, Title: ch.Maps.Title})
			}
		}
	}
	c.logger.Printf("generateContent ok: %d chars, %d sources", len(out.Text), len(out.Sources))
	return out, nil
}

// Helpers

func truncateBody(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
