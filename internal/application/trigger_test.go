package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kashbill/internal/infrastructure/clock"
)

func TestMomentaryTrigger(t *testing.T) {
	t.Run("resets after the delay", func(t *testing.T) {
		fake := clock.NewFake()
		trigger := NewMomentaryTrigger(fake, 0, nil)

		trigger.Trigger("pad-1")
		assert.Equal(t, "pad-1", trigger.Active())

		fake.Advance(DefaultTriggerDelay - time.Millisecond)
		assert.Equal(t, "pad-1", trigger.Active())

		fake.Advance(time.Millisecond)
		assert.Empty(t, trigger.Active())
	})

	t.Run("newer trigger supersedes the older reset", func(t *testing.T) {
		fake := clock.NewFake()
		var changes []string
		trigger := NewMomentaryTrigger(fake, 150*time.Millisecond, func(active string) {
			changes = append(changes, active)
		})

		trigger.Trigger("pad-1")
		fake.Advance(100 * time.Millisecond)
		trigger.Trigger("pad-2")
		assert.Equal(t, "pad-2", trigger.Active())
		assert.Equal(t, 1, fake.Pending())

		fake.Advance(100 * time.Millisecond)
		assert.Equal(t, "pad-2", trigger.Active(), "pad-1's reset must not clear pad-2")

		fake.Advance(50 * time.Millisecond)
		assert.Empty(t, trigger.Active())
		assert.Equal(t, []string{"pad-1", "pad-2", ""}, changes)
	})

	t.Run("stale reset is ignored even if it fires", func(t *testing.T) {
		fake := clock.NewFake()
		trigger := NewMomentaryTrigger(stubbornScheduler{fake: fake}, 150*time.Millisecond, nil)

		trigger.Trigger("pad-1")
		fake.Advance(100 * time.Millisecond)
		trigger.Trigger("pad-2")
		fake.Advance(50 * time.Millisecond)
		assert.Equal(t, "pad-2", trigger.Active())

		fake.Advance(100 * time.Millisecond)
		assert.Empty(t, trigger.Active())
	})
}
