package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("generates prefixed id", func(t *testing.T) {
		v, err := New(PrefixGrant)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(v, "gra_"))
		assert.Len(t, v, len("gra_")+timestampLength+randomLength)
	})

	t.Run("empty prefix fails", func(t *testing.T) {
		_, err := New("")
		assert.Error(t, err)
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			v, err := New(PrefixProject)
			require.NoError(t, err)
			assert.False(t, seen[v], "duplicate id %s", v)
			seen[v] = true
		}
	})

	t.Run("ids sort by creation time", func(t *testing.T) {
		first, err := New(PrefixPerson)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := New(PrefixPerson)
		require.NoError(t, err)
		assert.Less(t, first, second)
	})
}

func TestHasPrefix(t *testing.T) {
	v := MustNew(PrefixOrganisation)
	assert.True(t, HasPrefix(v, PrefixOrganisation))
	assert.False(t, HasPrefix(v, PrefixPerson))
}
