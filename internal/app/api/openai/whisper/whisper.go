// Package whisper is the transcription backend built on the go-openai SDK.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"batch-whisper/internal/app/api"
	apperrors "batch-whisper/internal/app/errors"
)

// RemoteTranscriber implements remote transcription using the OpenAI API
// shape. A client is built per call because key and base URL come with the
// request.
type RemoteTranscriber struct {
	auth       api.Auth
	httpClient *http.Client
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(auth api.Auth, httpClient *http.Client) *RemoteTranscriber {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RemoteTranscriber{auth: auth, httpClient: httpClient}
}

// NewClient builds a go-openai client for baseURL using the configured auth
// scheme. baseURL is used verbatim as the SDK base URL.
func NewClient(apiKey, baseURL string, auth api.Auth, httpClient *http.Client) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimRight(baseURL, "/")
	hc := *httpClient
	hc.Transport = auth.Transport(httpClient.Transport)
	config.HTTPClient = &hc
	return openai.NewClientWithConfig(config)
}

// Transcribe uses CreateTranscription with a text response format.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, req api.Request) (string, error) {
	file, err := req.File.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", req.File.Name, err)
	}
	defer file.Close()

	client := NewClient(req.APIKey, req.BaseURL, rt.auth, rt.httpClient)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    req.Model,
		FilePath: req.File.Name,
		Reader:   api.WithProgress(file, req.File.Size, req.OnProgress),
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", translateError(err)
	}
	return api.ParseTranscript([]byte(resp.Text)), nil
}

// translateError turns SDK status errors into *errors.APIError so the batch
// records the same messages regardless of backend.
func translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewAPIError(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperrors.NewAPIError(reqErr.HTTPStatusCode, "")
	}
	return fmt.Errorf("createTranscription failed: %w", err)
}
