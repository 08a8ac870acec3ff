package di

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerRegisterAndGet(t *testing.T) {
	c := New()
	c.Register("answer", 42)

	v, err := c.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, c.Has("answer"))

	_, err = c.Get("missing")
	require.EqualError(t, err, "service not found: missing")
	assert.Panics(t, func() { c.MustGet("missing") })
}

func TestContainerBuildsOnce(t *testing.T) {
	c := New()
	var builds atomic.Int32
	c.RegisterBuilder("slow", func(*Container) (interface{}, error) {
		builds.Add(1)
		return new(int), nil
	})

	var wg sync.WaitGroup
	results := make([]interface{}, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.MustGet("slow")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestContainerNestedBuilders(t *testing.T) {
	c := New()
	c.RegisterBuilder("inner", func(*Container) (interface{}, error) {
		return "inner", nil
	})
	c.RegisterBuilder("outer", func(c *Container) (interface{}, error) {
		inner, err := c.Get("inner")
		if err != nil {
			return nil, err
		}
		return inner.(string) + "+outer", nil
	})

	v, err := c.Get("outer")
	require.NoError(t, err)
	assert.Equal(t, "inner+outer", v)
}

func TestContainerBuildFailureSticks(t *testing.T) {
	c := New()
	var builds int
	c.RegisterBuilder("broken", func(*Container) (interface{}, error) {
		builds++
		return nil, errors.New("boom")
	})

	_, err := c.Get("broken")
	require.EqualError(t, err, "boom")
	_, err = c.Get("broken")
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, builds)
}

func TestContainerServiceNamesAndClear(t *testing.T) {
	c := New()
	c.Register("a", 1)
	c.RegisterBuilder("b", func(*Container) (interface{}, error) { return 2, nil })
	c.RegisterBuilder("a", func(*Container) (interface{}, error) { return 3, nil })

	names := c.ServiceNames()
	sort.Strings(names)
	assert.Equal(t, []string{"a", "b"}, names)

	c.Clear()
	assert.Empty(t, c.ServiceNames())
	assert.False(t, c.Has("a"))
}
