package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCached(t *testing.T) {
	var c Cached[int]
	_, ok := c.Get()
	assert.False(t, ok)

	calls := 0
	compute := func() int {
		calls++
		return 42
	}
	assert.Equal(t, 42, c.GetOr(compute))
	assert.Equal(t, 42, c.GetOr(compute))
	assert.Equal(t, 1, calls)

	c.Invalidate()
	assert.False(t, c.Valid())
	v, _ := c.Get()
	assert.Zero(t, v)

	c.Set(7)
	v, ok = c.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}
