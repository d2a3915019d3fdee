package timekeeper_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/ticker/tickertest"
	"timekeeper/internal/core/timekeeper"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(manual *tickertest.Manual) timekeeper.Options {
	return timekeeper.Options{
		Ticker: manual,
		Clock:  clockwork.NewFakeClock(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newCountdown(t *testing.T, minutes, seconds int) (*timekeeper.Countdown, *tickertest.Manual) {
	t.Helper()
	manual := tickertest.New()
	countdown := timekeeper.NewCountdown(model.CountdownConfig{
		Minutes:      minutes,
		Seconds:      seconds,
		TickInterval: time.Second,
	}, testOptions(manual))
	t.Cleanup(countdown.Close)
	return countdown, manual
}

func TestCountdownApplyConfigurationComposesTarget(t *testing.T) {
	countdown, _ := newCountdown(t, 0, 0)
	for minutes := 0; minutes <= 59; minutes++ {
		for seconds := 0; seconds <= 59; seconds++ {
			countdown.Configure(minutes, seconds)
			countdown.ApplyConfiguration()
			snapshot := countdown.Snapshot()
			if snapshot.RemainingSeconds != minutes*60+seconds {
				t.Fatalf("configure(%d, %d): remaining %d", minutes, seconds, snapshot.RemainingSeconds)
			}
			if snapshot.TargetSeconds != snapshot.RemainingSeconds {
				t.Fatalf("configure(%d, %d): target %d", minutes, seconds, snapshot.TargetSeconds)
			}
		}
	}
}

func TestCountdownConfigureClampsToBounds(t *testing.T) {
	cases := []struct {
		name            string
		minutes         int
		seconds         int
		expectedMinutes int
		expectedSeconds int
	}{
		{"in range", 12, 34, 12, 34},
		{"negative", -3, -1, 0, 0},
		{"overflow", 75, 60, 59, 59},
		{"mixed", 100, -5, 59, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			countdown, _ := newCountdown(t, 5, 0)
			countdown.Configure(tc.minutes, tc.seconds)
			snapshot := countdown.Snapshot()
			assert.Equal(t, tc.expectedMinutes, snapshot.Minutes)
			assert.Equal(t, tc.expectedSeconds, snapshot.Seconds)
			assert.Equal(t, tc.expectedMinutes*60+tc.expectedSeconds, snapshot.TargetSeconds)
		})
	}
}

func TestCountdownConfigureLeavesRemainingUntouched(t *testing.T) {
	countdown, _ := newCountdown(t, 5, 0)
	countdown.Configure(1, 30)

	snapshot := countdown.Snapshot()
	assert.Equal(t, 300, snapshot.RemainingSeconds)
	assert.Equal(t, 90, snapshot.TargetSeconds)
}

func TestCountdownNewClampsInitialTarget(t *testing.T) {
	countdown, _ := newCountdown(t, 90, -4)
	snapshot := countdown.Snapshot()
	assert.Equal(t, 59*60, snapshot.RemainingSeconds)
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
}

func TestCountdownConfigurationIgnoredWhileRunning(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 10)
	countdown.Start()
	manual.Tick(3)

	countdown.Configure(20, 0)
	countdown.AdjustMinutes(1)
	countdown.AdjustSeconds(-1)
	countdown.ApplyConfiguration()

	snapshot := countdown.Snapshot()
	assert.Equal(t, timekeeper.StateRunning, snapshot.State)
	assert.Equal(t, 0, snapshot.Minutes)
	assert.Equal(t, 10, snapshot.Seconds)
	assert.Equal(t, 7, snapshot.RemainingSeconds)
}

func TestCountdownAdjustSaturates(t *testing.T) {
	countdown, _ := newCountdown(t, 58, 1)

	countdown.AdjustMinutes(1)
	countdown.AdjustMinutes(1)
	countdown.AdjustSeconds(-1)
	countdown.AdjustSeconds(-1)

	snapshot := countdown.Snapshot()
	assert.Equal(t, 59, snapshot.Minutes)
	assert.Equal(t, 0, snapshot.Seconds)
}

func TestCountdownFinishesAfterExactlyNTicks(t *testing.T) {
	for _, n := range []int{1, 2, 5, 61, 3599} {
		countdown, manual := newCountdown(t, n/60, n%60)
		countdown.Start()
		require.Equal(t, time.Second, manual.LastPeriod())

		manual.Tick(n - 1)
		snapshot := countdown.Snapshot()
		require.Equal(t, timekeeper.StateRunning, snapshot.State, "n=%d", n)
		require.Equal(t, 1, snapshot.RemainingSeconds, "n=%d", n)

		manual.Tick(1)
		snapshot = countdown.Snapshot()
		require.Equal(t, timekeeper.StateFinished, snapshot.State, "n=%d", n)
		require.Equal(t, 0, snapshot.RemainingSeconds, "n=%d", n)
		require.True(t, snapshot.Finished)
		require.Zero(t, manual.ArmedCount(), "ticker must be disarmed on finish")
	}
}

func TestCountdownStartIsNoOpWhenDepleted(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 0)
	countdown.Start()

	assert.Equal(t, timekeeper.StateIdle, countdown.Snapshot().State)
	assert.Zero(t, manual.ArmCalls())
}

func TestCountdownStartWhileRunningDoesNotRearm(t *testing.T) {
	countdown, manual := newCountdown(t, 1, 0)
	countdown.Start()
	countdown.Start()

	assert.Equal(t, 1, manual.ArmCalls())
	assert.Equal(t, 1, manual.ArmedCount())
}

func TestCountdownStartAfterFinishIsNoOp(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 1)
	countdown.Start()
	manual.Tick(1)

	countdown.Start()
	assert.Equal(t, timekeeper.StateFinished, countdown.Snapshot().State)
	assert.Equal(t, 1, manual.ArmCalls())
}

func TestCountdownResetAfterFinishRestoresTarget(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 3)
	countdown.Start()
	manual.Tick(3)
	require.Equal(t, timekeeper.StateFinished, countdown.Snapshot().State)

	countdown.Reset()
	snapshot := countdown.Snapshot()
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
	assert.Equal(t, 3, snapshot.RemainingSeconds)
	assert.False(t, snapshot.Finished)

	countdown.Start()
	assert.Equal(t, timekeeper.StateRunning, countdown.Snapshot().State)
	assert.Equal(t, 1, manual.ArmedCount())
}

func TestCountdownResetWhileRunningDisarms(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 30)
	countdown.Start()
	manual.Tick(10)

	countdown.Reset()
	assert.Zero(t, manual.ArmedCount())
	snapshot := countdown.Snapshot()
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
	assert.Equal(t, 30, snapshot.RemainingSeconds)
}

func TestCountdownApplyConfigurationClearsFinished(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 1)
	countdown.Start()
	manual.Tick(1)

	countdown.Configure(0, 45)
	countdown.ApplyConfiguration()

	snapshot := countdown.Snapshot()
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
	assert.Equal(t, 45, snapshot.RemainingSeconds)
}

func TestCountdownPauseAndResetAreIdempotent(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 20)
	countdown.Start()
	manual.Tick(5)

	countdown.Pause()
	first := countdown.Snapshot()
	countdown.Pause()
	assert.Equal(t, first, countdown.Snapshot())
	assert.Equal(t, 15, first.RemainingSeconds)
	assert.Equal(t, timekeeper.StateIdle, first.State)

	countdown.Reset()
	first = countdown.Snapshot()
	countdown.Reset()
	assert.Equal(t, first, countdown.Snapshot())
	assert.Zero(t, manual.ArmedCount())
}

func TestCountdownDeactivateBehavesLikePause(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 20)
	countdown.Start()
	manual.Tick(4)

	countdown.Deactivate()
	snapshot := countdown.Snapshot()
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
	assert.Equal(t, 16, snapshot.RemainingSeconds)
	assert.Zero(t, manual.ArmedCount())

	countdown.Start()
	manual.Tick(1)
	assert.Equal(t, 15, countdown.Snapshot().RemainingSeconds)
}

func TestCountdownIgnoresLateTickAfterPause(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 20)
	countdown.Start()

	handles := manual.Handles()
	require.Len(t, handles, 1)
	late, ok := manual.Callback(handles[0])
	require.True(t, ok)

	countdown.Pause()
	late(handles[0])
	assert.Equal(t, 20, countdown.Snapshot().RemainingSeconds)

	// A stale handle stays ignored after re-arming.
	countdown.Start()
	late(handles[0])
	assert.Equal(t, 20, countdown.Snapshot().RemainingSeconds)
}

func TestCountdownScenarioFiveSeconds(t *testing.T) {
	countdown, manual := newCountdown(t, 5, 0)
	countdown.Configure(0, 5)
	countdown.ApplyConfiguration()
	countdown.Start()
	manual.Tick(5)

	snapshot := countdown.Snapshot()
	assert.Equal(t, timekeeper.StateFinished, snapshot.State)
	assert.Equal(t, 0, snapshot.RemainingSeconds)
	assert.Equal(t, "00:00", countdown.Display())
}

func TestCountdownEmitsFinishedEvent(t *testing.T) {
	countdown, manual := newCountdown(t, 0, 2)
	events := countdown.Subscribe(16)

	countdown.Start()
	manual.Tick(2)

	var types []timekeeper.EventType
	for len(events) > 0 {
		event := <-events
		assert.Equal(t, timekeeper.KindCountdown, event.Kind)
		types = append(types, event.Type)
	}
	assert.Equal(t, []timekeeper.EventType{
		timekeeper.EventStateChange,
		timekeeper.EventTick,
		timekeeper.EventStateChange,
		timekeeper.EventFinished,
	}, types)
}

func TestCountdownCloseClosesSubscribers(t *testing.T) {
	manual := tickertest.New()
	countdown := timekeeper.NewCountdown(model.CountdownConfig{Minutes: 1}, testOptions(manual))
	events := countdown.Subscribe(1)
	countdown.Start()

	countdown.Close()
	countdown.Close()

	for range events {
	}
	_, open := <-events
	assert.False(t, open)
	assert.Zero(t, manual.ArmedCount())

	late := countdown.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}

func TestCountdownDefaultsTickInterval(t *testing.T) {
	manual := tickertest.New()
	countdown := timekeeper.NewCountdown(model.CountdownConfig{Minutes: 1}, testOptions(manual))
	defer countdown.Close()

	countdown.Start()
	assert.Equal(t, time.Second, manual.LastPeriod())
}
