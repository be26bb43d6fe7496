package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSerializeRoundTrip(t *testing.T) {
	msg, err := NewMessage(TypeSessionCreated, map[string]string{"title": "Sunday | Feast"})
	require.NoError(t, err)

	got := deserialize(serialize(msg))
	assert.Equal(t, msg.Type, got.Type)

	var payload map[string]string
	require.NoError(t, got.Decode(&payload))
	assert.Equal(t, "Sunday | Feast", payload["title"])
}

func TestDeserializeWithoutType(t *testing.T) {
	got := deserialize("raw")
	assert.Equal(t, "", got.Type)
	assert.Equal(t, []byte("raw"), got.Body)
}

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	msgs, err := q.Consume(ctx)
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, Message{Type: TypeQuizCreated, Body: []byte("{}")}))

	select {
	case m := <-msgs:
		assert.Equal(t, TypeQuizCreated, m.Type)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}

	cancel()
	select {
	case _, ok := <-msgs:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestInMemoryPublishHonoursContext(t *testing.T) {
	q := NewInMemory(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, q.Publish(ctx, Message{}), context.Canceled)
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, Message) error {
	f.calls++
	return context.DeadlineExceeded
}

func TestEmitSwallowsErrors(t *testing.T) {
	pub := &failingPublisher{}
	Emit(context.Background(), pub, zap.NewNop(), TypeResourceCreated, map[string]string{"id": "r1"})
	assert.Equal(t, 1, pub.calls)

	Emit(context.Background(), nil, nil, TypeResourceCreated, nil)
}
