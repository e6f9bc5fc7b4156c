package closer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloser_ClosesInReverseOrder(t *testing.T) {
	c := NewCloser(0)
	var order []string

	c.AddCloser("db", func() error { order = append(order, "db"); return nil })
	c.AddCloser("cache", func() error { order = append(order, "cache"); return nil })
	c.AddCloser("http", func() error { order = append(order, "http"); return nil })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "cache", "db"}, order)
}

func TestCloser_CollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.AddCloser("redis", func() error { return errors.New("conn reset") })
	c.AddCloser("kafka", func() error { return nil })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: conn reset")
}

func TestCloser_CloseIsOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.AddCloser("x", func() error { calls++; return nil })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)

	var mu sync.Mutex
	forced := false
	c.Add("first", func(ctx context.Context) error {
		mu.Lock()
		forced = true
		mu.Unlock()
		return nil
	})
	c.Add("slow", func(ctx context.Context) error {
		time.Sleep(150 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted")

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, forced)
}
