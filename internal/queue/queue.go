package queue

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event types published by the domain services.
const (
	TypeSessionCreated      = "session.created"
	TypeHomeworkCreated     = "homework.created"
	TypeQuizCreated         = "quiz.created"
	TypeResourceCreated     = "resource.created"
	TypeMentorshipRequested = "mentorship.requested"
	TypeMentorshipDecided   = "mentorship.decided"
)

// Event is the payload carried by every domain event.
type Event struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Message represents work to be processed.
type Message struct {
	Type string
	Body []byte
}

// NewMessage encodes payload as the JSON body of a typed message.
func NewMessage(typ string, payload any) (Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: typ, Body: body}, nil
}

// Decode unmarshals the message body into v.
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Body, v)
}

// Publisher is the write side used by the domain services.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Queue is the abstraction over different backends.
type Queue interface {
	Publisher
	Consume(ctx context.Context) (<-chan Message, error)
}

// InMemory is a minimal channel-backed queue for dev/testing.
type InMemory struct {
	ch chan Message
}

// NewInMemory creates a bounded in-memory queue.
func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan Message, size)}
}

// Publish enqueues a message.
func (q *InMemory) Publish(ctx context.Context, msg Message) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume returns a channel for workers. It closes when ctx is cancelled.
func (q *InMemory) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			select {
			case msg := <-q.ch:
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// RedisQueue implements a simple Redis list-backed queue.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue builds a queue using LPUSH/BRPOP semantics.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = "sangha:events"
	}
	return &RedisQueue{client: client, key: key}
}

// Publish enqueues a message.
func (q *RedisQueue) Publish(ctx context.Context, msg Message) error {
	return q.client.LPush(ctx, q.key, serialize(msg)).Err()
}

// Consume streams messages using BRPOP.
func (q *RedisQueue) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if err != redis.Nil {
					// back off on connection errors instead of spinning
					select {
					case <-time.After(time.Second):
					case <-ctx.Done():
						return
					}
				}
				continue
			}
			if len(res) == 2 {
				select {
				case out <- deserialize(res[1]):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// serialize stores messages as Type|Body.
func serialize(msg Message) string {
	return msg.Type + "|" + string(msg.Body)
}

func deserialize(s string) Message {
	typ, body, ok := strings.Cut(s, "|")
	if !ok {
		return Message{Body: []byte(s)}
	}
	return Message{Type: typ, Body: []byte(body)}
}

// Emit publishes payload as a typed message. Failures are logged, never returned.
func Emit(ctx context.Context, pub Publisher, log *zap.Logger, typ string, payload any) {
	if pub == nil {
		return
	}
	msg, err := NewMessage(typ, payload)
	if err == nil {
		err = pub.Publish(ctx, msg)
	}
	if err != nil && log != nil {
		log.Warn("event publish failed", zap.String("type", typ), zap.Error(err))
	}
}
