package models

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"A2T_API_KEY", "OPENAI_API_KEY", "A2T_BASE_URL", "A2T_MODEL", "A2T_CATALOG_FILE", "A2T_BACKEND"} {
		t.Setenv(key, "")
	}
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestModels_Defaults(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)

	assert.Contains(t, out, "IDENTIFIER")
	assert.Contains(t, out, "*  whisper-1")
	assert.Contains(t, out, "whisper-large-v3")
}

func TestModels_Discover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[
			{"id":"gpt-4o","object":"model","owned_by":"openai"},
			{"id":"gpt-4o-transcribe","object":"model","owned_by":"openai"},
			{"id":"distil-whisper-large-v3-en","object":"model","owned_by":"groq"}
		]}`))
	}))
	defer srv.Close()

	out, err := execute(t, "--discover", "--api-key", "sk-test", "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "gpt-4o-transcribe")
	assert.Contains(t, out, "distil-whisper-large-v3-en")
	assert.NotContains(t, out, "gpt-4o  ")
}

func TestModels_DiscoverWithoutKey(t *testing.T) {
	_, err := execute(t, "--discover")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model discovery failed")
}
