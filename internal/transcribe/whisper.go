package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scribe/internal/config"
)

// WhisperBackend uploads segments to a Whisper-style HTTP transcription
// endpoint. Kind selects the credential header: "openai" sends a bearer
// token, "azure" sends an api-key header.
type WhisperBackend struct {
	endpoint string
	apiKey   string
	model    string
	kind     string
	client   *http.Client
}

// NewWhisperBackend builds a backend from configuration.
func NewWhisperBackend(cfg config.Backend) *WhisperBackend {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &WhisperBackend{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		kind:     strings.ToLower(cfg.Kind),
		client:   &http.Client{Timeout: timeout},
	}
}

type whisperResponse struct {
	Text *string `json:"text"`
}

// Transcribe uploads one segment and returns the transcript text. Failures
// are returned as *BackendError so the client can apply its retry policy.
func (b *WhisperBackend) Transcribe(ctx context.Context, segmentPath string) (string, error) {
	body, contentType, err := b.buildPayload(segmentPath)
	if err != nil {
		return "", &BackendError{Class: Permanent, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, body)
	if err != nil {
		return "", &BackendError{Class: Permanent, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	if b.apiKey != "" {
		if b.kind == "azure" {
			req.Header.Set("api-key", b.apiKey)
		} else {
			req.Header.Set("Authorization", "Bearer "+b.apiKey)
		}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &BackendError{Class: Transient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &BackendError{
			Class:  classifyStatus(resp.StatusCode),
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", strings.TrimSpace(string(payload))),
		}
	}

	var decoded whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &BackendError{Class: Transient, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if decoded.Text == nil {
		return "", ErrNoTranscript
	}
	return *decoded.Text, nil
}

func (b *WhisperBackend) buildPayload(segmentPath string) (io.Reader, string, error) {
	file, err := os.Open(segmentPath)
	if err != nil {
		return nil, "", fmt.Errorf("open segment: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if b.model != "" {
		if err := writer.WriteField("model", b.model); err != nil {
			return nil, "", err
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(segmentPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("read segment: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &body, writer.FormDataContentType(), nil
}

func classifyStatus(status int) Class {
	switch {
	case status == http.StatusTooManyRequests:
		return RateLimited
	case status >= 500:
		return Transient
	default:
		return Permanent
	}
}
