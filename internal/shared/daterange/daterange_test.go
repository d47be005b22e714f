package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := New(date(2012, 1, 1), date(2015, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, date(2012, 1, 1), r.Start())
		require.NotNil(t, r.End())
		assert.Equal(t, date(2015, 1, 1), *r.End())
		assert.True(t, r.Bounded())
	})

	t.Run("end before start fails", func(t *testing.T) {
		_, err := New(date(2015, 1, 1), date(2012, 1, 1))
		assert.Error(t, err)
	})

	t.Run("zero-length range fails", func(t *testing.T) {
		_, err := New(date(2012, 1, 1), date(2012, 1, 1))
		assert.Error(t, err)
	})

	t.Run("time of day is dropped", func(t *testing.T) {
		r, err := New(
			time.Date(2012, 1, 1, 13, 45, 0, 0, time.UTC),
			time.Date(2015, 1, 1, 2, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, date(2012, 1, 1), r.Start())
	})
}

func TestOpenEnded(t *testing.T) {
	r, err := New(date(2012, 1, 1), date(2015, 1, 1))
	require.NoError(t, err)

	open := r.OpenEnded()
	assert.Equal(t, date(2012, 1, 1), open.Start())
	assert.Nil(t, open.End())
	assert.False(t, open.Bounded())
	assert.Equal(t, "[2012-01-01,)", open.String())
}

func TestEqual(t *testing.T) {
	a, _ := New(date(2012, 1, 1), date(2015, 1, 1))
	b, _ := New(date(2012, 1, 1), date(2015, 1, 1))
	c, _ := New(date(2012, 1, 1), date(2016, 1, 1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a.OpenEnded()))
	assert.True(t, a.OpenEnded().Equal(NewOpenEnded(date(2012, 1, 1))))
}

func TestFromEpochMillis(t *testing.T) {
	start := date(2012, 1, 1).UnixMilli()
	end := date(2015, 1, 1).UnixMilli()

	r, err := FromEpochMillis(start, end)
	require.NoError(t, err)
	assert.Equal(t, "[2012-01-01,2015-01-01)", r.String())

	_, err = FromEpochMillis(end, start)
	assert.Error(t, err)
}

func TestReconstruct(t *testing.T) {
	e := date(2015, 1, 1)
	r := Reconstruct(date(2012, 1, 1), &e)
	assert.True(t, r.Bounded())

	open := Reconstruct(date(2012, 1, 1), nil)
	assert.False(t, open.Bounded())
}
