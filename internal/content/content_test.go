package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiServer(t *testing.T, status int, text string) (*httptest.Server, *generateRequest) {
	t.Helper()
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"quota"}`))
			return
		}
		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestClientGenerate(t *testing.T) {
	srv, got := geminiServer(t, http.StatusOK, "  Hare Krishna  ")
	c := NewClient(srv.URL+"/", "secret", "test-model")

	out, err := c.Generate(context.Background(), Prompt{Text: "hi", System: "be kind", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, "Hare Krishna", out)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be kind", got.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
}

func TestClientErrors(t *testing.T) {
	_, err := NewClient("http://unused", "", "m").Generate(context.Background(), Prompt{Text: "hi"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	srv, _ := geminiServer(t, http.StatusTooManyRequests, "")
	_, err = NewClient(srv.URL, "secret", "test-model").Generate(context.Background(), Prompt{Text: "hi"})
	assert.ErrorContains(t, err, "429")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`, ok: true},
		{in: "here: [1,2]", want: "[1,2]", ok: true},
		{in: "no json", ok: false},
		{in: "} {", ok: false},
	}
	for _, tt := range tests {
		got, ok := ExtractJSON(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

type genFunc func(ctx context.Context, p Prompt) (string, error)

func (f genFunc) Generate(ctx context.Context, p Prompt) (string, error) { return f(ctx, p) }

func failing() Generator {
	return genFunc(func(context.Context, Prompt) (string, error) { return "", errors.New("down") })
}

func returning(s string) Generator {
	return genFunc(func(context.Context, Prompt) (string, error) { return s, nil })
}

func TestDailyQuote(t *testing.T) {
	day := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	svc := NewService(failing(), nil)
	svc.now = func() time.Time { return day }
	assert.Equal(t, QuoteForDay(day), svc.DailyQuote(context.Background()))
	assert.NotEqual(t, QuoteForDay(day), QuoteForDay(day.AddDate(0, 0, 1)))

	svc = NewService(returning("```json\n{\"text\":\"Chant and be happy\",\"source\":\"Prabhupada\"}\n```"), nil)
	q := svc.DailyQuote(context.Background())
	assert.Equal(t, Quote{Text: "Chant and be happy", Source: "Prabhupada"}, q)

	svc = NewService(returning(`{"text":""}`), nil)
	svc.now = func() time.Time { return day }
	assert.Equal(t, QuoteForDay(day), svc.DailyQuote(context.Background()))
}

func TestAsk(t *testing.T) {
	assert.Equal(t, Apology, NewService(nil, nil).Ask(context.Background(), "What is bhakti?"))
	assert.Equal(t, Apology, NewService(failing(), nil).Ask(context.Background(), "What is bhakti?"))
	assert.Equal(t, Apology, NewService(returning("x"), nil).Ask(context.Background(), "  "))
	assert.Equal(t, "Loving service.", NewService(returning("Loving service."), nil).Ask(context.Background(), "What is bhakti?"))
}

func TestGenerateQuiz(t *testing.T) {
	raw := `[
		{"question":"Who spoke the Gita?","options":["Arjuna","Krishna","Sanjaya","Vyasa"],"correctIndex":1},
		{"question":"Missing option","options":["a","b","c"],"correctIndex":0},
		{"question":"Out of range","options":["a","b","c","d"],"correctIndex":7},
		{"question":"Where?","options":["Kurukshetra","Vrindavan","Mathura","Dwaraka"],"correctIndex":0,"explanation":"Battlefield"}
	]`
	got := NewService(returning(raw), nil).GenerateQuiz(context.Background(), "Gita basics")
	require.Len(t, got, 2)
	assert.Equal(t, "Who spoke the Gita?", got[0].Question)
	assert.Equal(t, "Battlefield", got[1].Explanation)

	wrapped := `{"questions":[{"question":"Q","options":["a","b","c","d"],"correctIndex":2}]}`
	assert.Len(t, NewService(returning(wrapped), nil).GenerateQuiz(context.Background(), "x"), 1)

	assert.Empty(t, NewService(failing(), nil).GenerateQuiz(context.Background(), "Gita"))
	assert.Empty(t, NewService(returning("not json"), nil).GenerateQuiz(context.Background(), "Gita"))
	assert.Empty(t, NewService(returning(raw), nil).GenerateQuiz(context.Background(), ""))
}
