package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sangha/internal/queue"
)

func TestRender(t *testing.T) {
	tests := []struct {
		typ   string
		tag   string
		title string
	}{
		{typ: queue.TypeSessionCreated, tag: "session", title: "New session: Gita class"},
		{typ: queue.TypeHomeworkCreated, tag: "homework", title: "New homework: Gita class"},
		{typ: queue.TypeQuizCreated, tag: "quiz", title: "New quiz: Gita class"},
		{typ: queue.TypeResourceCreated, tag: "resource", title: "New resource: Gita class"},
		{typ: queue.TypeMentorshipDecided, tag: "mentorship", title: "Gita class"},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			msg, err := queue.NewMessage(tt.typ, queue.Event{ID: "1", Title: "Gita class", Detail: "Sun 5 Oct"})
			require.NoError(t, err)

			n, ok, err := Render(msg)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, "Sun 5 Oct", n.Message)
			require.NotNil(t, n.Type)
			assert.Equal(t, tt.tag, *n.Type)
		})
	}

	_, ok, err := Render(queue.Message{Type: "unknown"})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Render(queue.Message{Type: queue.TypeQuizCreated, Body: []byte("{")})
	assert.Error(t, err)
}

func TestDispatcherRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &memStore{}
	q := queue.NewInMemory(4)
	d := NewDispatcher(NewService(store), nil)

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, q) }()

	queue.Emit(ctx, q, nil, queue.TypeResourceCreated, queue.Event{ID: "r1", Title: "Bhagavatam"})
	queue.Emit(ctx, q, nil, "audit.ignored", queue.Event{ID: "x"})

	assert.Eventually(t, func() bool {
		list, _ := store.List(ctx, 0)
		return len(list) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
