package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RemoteBackend calls an HTTP NLU service exposing POST /classify and POST /extract.
type RemoteBackend struct {
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

// NewRemoteBackend creates a client for the service at endpoint.
func NewRemoteBackend(endpoint string, timeout time.Duration, log *zap.Logger) *RemoteBackend {
	return &RemoteBackend{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		log:      log.Named("nlu-remote"),
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Intent string `json:"intent"`
}

type extractRequest struct {
	Text       string   `json:"text"`
	Candidates []string `json:"candidates"`
}

type extractResponse struct {
	Foods []string `json:"foods"`
}

func (r *RemoteBackend) Name() string { return "remote" }

func (r *RemoteBackend) Classify(ctx context.Context, text string) (Intent, error) {
	var resp classifyResponse
	if err := r.post(ctx, "/classify", classifyRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	intent, ok := ParseIntent(resp.Intent)
	if !ok {
		return "", fmt.Errorf("unknown intent %q", resp.Intent)
	}
	return intent, nil
}

// Extract sends the catalog's English names as candidates and maps the returned names back.
func (r *RemoteBackend) Extract(ctx context.Context, text string, catalog []models.Food) ([]models.Food, error) {
	names := make([]string, len(catalog))
	for i, f := range catalog {
		names[i] = f.Name
	}

	var resp extractResponse
	if err := r.post(ctx, "/extract", extractRequest{Text: text, Candidates: names}, &resp); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(resp.Foods))
	for _, n := range resp.Foods {
		wanted[strings.ToLower(n)] = true
	}
	var out []models.Food
	for _, f := range catalog {
		if wanted[strings.ToLower(f.Name)] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *RemoteBackend) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("nlu request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("nlu request failed with status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nlu response: %w", err)
	}

	r.log.Debug("NLU call succeeded", zap.String("path", path), zap.String("request_id", requestID))
	return nil
}
