package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New(8)

	_, ok := c.Get("trending:7:10")
	assert.False(t, ok)

	c.Set("trending:7:10", []byte(`{"items":[]}`), time.Minute)
	payload, ok := c.Get("trending:7:10")
	require.True(t, ok)
	assert.Equal(t, `{"items":[]}`, string(payload))

	c.Set("trending:7:10", []byte(`{"items":[1]}`), time.Minute)
	payload, ok = c.Get("trending:7:10")
	require.True(t, ok)
	assert.Equal(t, `{"items":[1]}`, string(payload), "set replaces the entry wholesale")
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := New(8)
	c.Set("categories", []byte(`{}`), 20*time.Millisecond)

	_, ok := c.Get("categories")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("categories")
	assert.False(t, ok)
}

func TestGetDoesNotExtendExpiry(t *testing.T) {
	c := New(8)
	c.Set("categories", []byte(`{}`), 60*time.Millisecond)

	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		c.Get("categories")
	}
	_, ok := c.Get("categories")
	assert.False(t, ok)
}

func TestCapacityIsBounded(t *testing.T) {
	c := New(2)
	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)
	c.Set("c", []byte("3"), time.Minute)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("c")
	assert.True(t, ok)
}

func TestServeStopsOnCancel(t *testing.T) {
	c := New(8)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	c.Set("short", []byte("x"), 10*time.Millisecond)
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond,
		"sweeper removes expired entries")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "trending", prefix("trending:7:10"))
	assert.Equal(t, "categories", prefix("categories"))
}
