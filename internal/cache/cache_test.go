package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicing-renderer/pkg/invoice"
)

type fakeRedis struct {
	data    map[string]string
	ttl     map[string]time.Duration
	failGet error
	failSet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func request(number string) Request {
	return Request{
		Invoice:  invoice.Invoice{Number: number},
		Template: invoice.TemplateClassic,
		Format:   "pdf",
		Variant:  "en-US|$",
	}
}

func TestKey(t *testing.T) {
	a, err := Key(request("INV-1"))
	require.NoError(t, err)
	b, err := Key(request("INV-1"))
	require.NoError(t, err)
	c, err := Key(request("INV-2"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "invoicing:render:pdf:"))
	assert.Len(t, strings.TrimPrefix(a, "invoicing:render:pdf:"), 64)
}

func TestGetOrRender(t *testing.T) {
	fake := newFakeRedis()
	c := NewWithClient(fake, time.Hour, nil)
	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("%PDF"), nil
	}

	data, hit, err := c.GetOrRender(context.Background(), request("INV-1"), true, render)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "%PDF", string(data))

	data, hit, err = c.GetOrRender(context.Background(), request("INV-1"), true, render)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, 1, calls)

	key, _ := Key(request("INV-1"))
	assert.Equal(t, time.Hour, fake.ttl[key])
}

func TestGetOrRenderSkipsNonDeterministic(t *testing.T) {
	fake := newFakeRedis()
	c := NewWithClient(fake, time.Hour, nil)

	for range 2 {
		_, hit, err := c.GetOrRender(context.Background(), request("INV-1"), false, func() ([]byte, error) {
			return []byte("x"), nil
		})
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Empty(t, fake.data)
}

func TestGetOrRenderSurvivesRedisErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.failGet = errors.New("connection refused")
	fake.failSet = errors.New("connection refused")
	c := NewWithClient(fake, time.Hour, nil)

	data, hit, err := c.GetOrRender(context.Background(), request("INV-1"), true, func() ([]byte, error) {
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "ok", string(data))
}

func TestGetOrRenderPropagatesRenderError(t *testing.T) {
	c := NewWithClient(newFakeRedis(), time.Hour, nil)
	boom := errors.New("boom")

	_, _, err := c.GetOrRender(context.Background(), request("INV-1"), true, func() ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestNilCacheRendersDirectly(t *testing.T) {
	var c *Cache
	data, hit, err := c.GetOrRender(context.Background(), request("INV-1"), true, func() ([]byte, error) {
		return []byte("direct"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "direct", string(data))
}
