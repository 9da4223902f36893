package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalud/clinic-api/internal/config"
	apperrors "github.com/agendasalud/clinic-api/pkg/errors"
)

func TestAskWithoutKeyIsUnavailable(t *testing.T) {
	svc := NewService(config.GeminiConfig{})
	assert.False(t, svc.Enabled())

	_, err := svc.Ask(context.Background(), "hola")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnavailable, appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode())
}

func TestAskForwardsQuestionAndSystemPrompt(t *testing.T) {
	var got generateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "Nuestro horario es de 8:00 a 18:00."}}}},
			},
		})
	}))
	defer ts.Close()

	svc := NewService(config.GeminiConfig{APIKey: "secret", Model: "gemini-1.5-flash"})
	svc.baseURL = ts.URL

	answer, err := svc.Ask(context.Background(), "¿Cuál es el horario de atención?")
	require.NoError(t, err)
	assert.Equal(t, "Nuestro horario es de 8:00 a 18:00.", answer)

	require.NotEmpty(t, got.SystemInstruction.Parts)
	assert.Equal(t, systemPrompt, got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "¿Cuál es el horario de atención?", got.Contents[0].Parts[0].Text)
}

func TestAskSurfacesUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer ts.Close()

	svc := NewService(config.GeminiConfig{APIKey: "bad", Model: "gemini-1.5-flash"})
	svc.baseURL = ts.URL

	_, err := svc.Ask(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestAskRejectsEmptyCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer ts.Close()

	svc := NewService(config.GeminiConfig{APIKey: "secret", Model: "gemini-1.5-flash"})
	svc.baseURL = ts.URL

	_, err := svc.Ask(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
