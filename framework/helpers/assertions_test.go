package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func becomesTrueAfter(calls int) func() bool {
	counter := 0
	return func() bool {
		counter++
		return counter > calls
	}
}

func TestPollUntil(t *testing.T) {
	t.Run("condition becomes true", func(t *testing.T) {
		assert.True(t, PollUntil(becomesTrueAfter(1), time.Second, time.Millisecond))
	})

	t.Run("condition never becomes true", func(t *testing.T) {
		assert.False(t, PollUntil(becomesTrueAfter(100), time.Millisecond*10, time.Millisecond))
	})
}

func TestRequireEventually(t *testing.T) {
	t.Run("condition becomes true", func(t *testing.T) {
		var tr TestRecorder
		RequireEventually(&tr, becomesTrueAfter(1), time.Second, time.Millisecond, "sorry %s", "no")
		assert.Len(t, tr.Errors, 0)
		assert.False(t, tr.Terminated)
	})

	t.Run("condition never becomes true", func(t *testing.T) {
		var tr TestRecorder
		RequireEventually(&tr, becomesTrueAfter(100), time.Millisecond*10, time.Millisecond, "sorry %s", "no")
		if assert.Len(t, tr.Errors, 1) {
			assert.Equal(t, "sorry no", tr.Errors[0])
		}
		assert.True(t, tr.Terminated)
	})
}
