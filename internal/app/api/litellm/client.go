// Package litellm implements the transcription client for OpenAI-compatible
// proxies such as LiteLLM.
package litellm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"batch-whisper/internal/app/api"
	apperrors "batch-whisper/internal/app/errors"
)

const transcriptionsPath = "/audio/transcriptions"

// Client posts audio files to {baseUrl}/audio/transcriptions. It sets no
// timeout of its own; the caller's context bounds each call.
type Client struct {
	httpClient *http.Client
	auth       api.Auth
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAuth selects the credential header scheme.
func WithAuth(auth api.Auth) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

// NewClient creates a Client using bearer auth by default.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		auth:       api.BearerAuth(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcribe uploads one file and returns the trimmed transcript. A non-2xx
// response yields an *errors.APIError.
func (c *Client) Transcribe(ctx context.Context, req api.Request) (string, error) {
	body, contentType, err := buildForm(req)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(req.BaseURL, "/") + transcriptionsPath
	size := int64(body.Len())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, api.WithProgress(body, size, req.OnProgress))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.ContentLength = size
	httpReq.Header.Set("Content-Type", contentType)
	c.auth.Apply(httpReq.Header, req.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.NewAPIError(resp.StatusCode, errorMessage(respBody))
	}
	return api.ParseTranscript(respBody), nil
}

func buildForm(req api.Request) (*bytes.Buffer, string, error) {
	file, err := req.File.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", req.File.Name, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", req.File.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.WriteField("model", req.Model); err != nil {
		return nil, "", fmt.Errorf("failed to write field model: %w", err)
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return nil, "", fmt.Errorf("failed to write field response_format: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// errorMessage digs the message out of an error envelope. It returns "" when
// the body carries none.
func errorMessage(body []byte) string {
	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	switch e := envelope["error"].(type) {
	case map[string]interface{}:
		if msg, ok := e["message"].(string); ok && msg != "" {
			return msg
		}
	case string:
		if e != "" {
			return e
		}
	}
	if msg, ok := envelope["message"].(string); ok {
		return msg
	}
	return ""
}
