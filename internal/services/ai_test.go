package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskhive/internal/models"
)

func newFakeOpenAI(t *testing.T, content string) *AIService {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  openai.GPT4o,
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    openai.ChatMessageRoleAssistant,
						Content: content,
					},
					FinishReason: openai.FinishReasonStop,
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return NewAIServiceWithConfig(cfg)
}

func TestAIService_GenerateTasksFromText(t *testing.T) {
	svc := newFakeOpenAI(t, "```json\n[{\"title\":\"Write report\",\"description\":\"Q3 numbers\",\"priority\":\"high\",\"due_date\":\"2030-01-02T15:04:05Z\"},{\"title\":\"Call Bob\",\"priority\":\"low\",\"due_date\":null}]\n```")

	tasks, err := svc.GenerateTasksFromText(context.Background(), "write the report by Jan 2 and call Bob")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, 2030, tasks[0].DueDate.Year())
	assert.Nil(t, tasks[1].DueDate)
}

func TestAIService_GenerateTasksFromText_BadJSON(t *testing.T) {
	svc := newFakeOpenAI(t, "sorry, I cannot help with that")

	_, err := svc.GenerateTasksFromText(context.Background(), "anything")
	assert.ErrorContains(t, err, "failed to parse AI response")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[]", "[]"},
		{"  []\n", "[]"},
		{"```json\n[]\n```", "[]"},
		{"```\n[1]\n```", "[1]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in))
	}
}
