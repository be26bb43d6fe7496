package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	stats Stats
	err   error
	day   time.Time
}

func (s *stubSource) Stats(_ context.Context, today time.Time) (Stats, error) {
	s.day = today
	return s.stats, s.err
}

func TestStats(t *testing.T) {
	src := &stubSource{stats: Stats{TotalDevotees: 42, AverageQuizScore: 76.66666}}
	svc := NewService(src)
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 21, 15, 0, 0, time.UTC) }

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, st.TotalDevotees)
	assert.Equal(t, 76.7, st.AverageQuizScore)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), src.day)

	src.err = errors.New("db down")
	_, err = svc.Stats(context.Background())
	assert.Error(t, err)
}
