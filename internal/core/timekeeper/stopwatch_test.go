package timekeeper_test

import (
	"testing"
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/ticker/tickertest"
	"timekeeper/internal/core/timekeeper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStopwatch(t *testing.T) (*timekeeper.Stopwatch, *tickertest.Manual) {
	t.Helper()
	manual := tickertest.New()
	stopwatch := timekeeper.NewStopwatch(model.StopwatchConfig{TickInterval: 10 * time.Millisecond}, testOptions(manual))
	t.Cleanup(stopwatch.Close)
	return stopwatch, manual
}

func TestStopwatchElapsedIsTenMillisPerTick(t *testing.T) {
	for _, k := range []int{0, 1, 7, 100, 6000} {
		stopwatch, manual := newStopwatch(t)
		stopwatch.Start()
		require.Equal(t, 10*time.Millisecond, manual.LastPeriod())

		manual.Tick(k)
		assert.Equal(t, int64(10*k), stopwatch.Snapshot().ElapsedMillis, "k=%d", k)
	}
}

func TestStopwatchLapsAreMostRecentFirst(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()

	manual.Tick(12)
	stopwatch.Lap()
	manual.Tick(23)
	stopwatch.Lap()
	manual.Tick(55)
	stopwatch.Lap()

	assert.Equal(t, []int64{900, 350, 120}, stopwatch.Snapshot().Laps)
}

func TestStopwatchLapWhileIdleIsNoOp(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Lap()
	assert.Empty(t, stopwatch.Snapshot().Laps)

	stopwatch.Start()
	manual.Tick(5)
	stopwatch.Lap()
	stopwatch.Pause()

	stopwatch.Lap()
	assert.Equal(t, []int64{50}, stopwatch.Snapshot().Laps)
}

func TestStopwatchScenarioTwoLaps(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()

	manual.Tick(250)
	stopwatch.Lap()
	manual.Tick(250)
	stopwatch.Lap()

	assert.Equal(t, []int64{5000, 2500}, stopwatch.Snapshot().Laps)
	assert.Equal(t, "00:05.00", stopwatch.Display())
}

func TestStopwatchStartWhileRunningDoesNotRearm(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()
	stopwatch.Start()

	assert.Equal(t, 1, manual.ArmCalls())
	manual.Tick(1)
	assert.Equal(t, int64(10), stopwatch.Snapshot().ElapsedMillis)
}

func TestStopwatchPauseKeepsElapsedAndLaps(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()
	manual.Tick(30)
	stopwatch.Lap()

	stopwatch.Pause()
	first := stopwatch.Snapshot()
	stopwatch.Pause()
	assert.Equal(t, first, stopwatch.Snapshot())
	assert.Equal(t, timekeeper.StateIdle, first.State)
	assert.Equal(t, int64(300), first.ElapsedMillis)
	assert.Zero(t, manual.ArmedCount())

	manual.Tick(10)
	assert.Equal(t, int64(300), stopwatch.Snapshot().ElapsedMillis)

	stopwatch.Start()
	manual.Tick(10)
	assert.Equal(t, int64(400), stopwatch.Snapshot().ElapsedMillis)
}

func TestStopwatchResetClearsEverything(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()
	manual.Tick(42)
	stopwatch.Lap()

	stopwatch.Reset()
	first := stopwatch.Snapshot()
	assert.Equal(t, timekeeper.StateIdle, first.State)
	assert.Zero(t, first.ElapsedMillis)
	assert.Empty(t, first.Laps)
	assert.Zero(t, manual.ArmedCount())

	stopwatch.Reset()
	assert.Equal(t, first, stopwatch.Snapshot())
}

func TestStopwatchDeactivateKeepsElapsed(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()
	manual.Tick(15)

	stopwatch.Deactivate()
	snapshot := stopwatch.Snapshot()
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
	assert.Equal(t, int64(150), snapshot.ElapsedMillis)
	assert.Zero(t, manual.ArmedCount())
}

func TestStopwatchIgnoresLateTickAfterReset(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()
	handles := manual.Handles()
	require.Len(t, handles, 1)
	late, ok := manual.Callback(handles[0])
	require.True(t, ok)

	stopwatch.Reset()
	late(handles[0])
	assert.Zero(t, stopwatch.Snapshot().ElapsedMillis)
}

func TestStopwatchSnapshotLapsAreCopies(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	stopwatch.Start()
	manual.Tick(1)
	stopwatch.Lap()

	laps := stopwatch.Snapshot().Laps
	laps[0] = 999
	assert.Equal(t, []int64{10}, stopwatch.Snapshot().Laps)
}

func TestStopwatchEmitsLapEvents(t *testing.T) {
	stopwatch, manual := newStopwatch(t)
	events := stopwatch.Subscribe(8)
	stopwatch.Start()
	manual.Tick(2)
	stopwatch.Lap()

	var last timekeeper.Event
	for len(events) > 0 {
		last = <-events
	}
	assert.Equal(t, timekeeper.EventLap, last.Type)
	assert.Equal(t, timekeeper.KindStopwatch, last.Kind)
	assert.Equal(t, int64(20), last.ElapsedMillis)
	assert.Equal(t, 1, last.Laps)
}

func TestStopwatchTickSizeFollowsInterval(t *testing.T) {
	manual := tickertest.New()
	stopwatch := timekeeper.NewStopwatch(model.StopwatchConfig{TickInterval: 100 * time.Millisecond}, testOptions(manual))
	defer stopwatch.Close()

	stopwatch.Start()
	manual.Tick(3)
	assert.Equal(t, int64(300), stopwatch.Snapshot().ElapsedMillis)
}

func TestStopwatchFractionalIntervalDoesNotDrift(t *testing.T) {
	manual := tickertest.New()
	stopwatch := timekeeper.NewStopwatch(model.StopwatchConfig{TickInterval: 1500 * time.Microsecond}, testOptions(manual))
	defer stopwatch.Close()

	stopwatch.Start()
	manual.Tick(2)
	assert.Equal(t, int64(3), stopwatch.Snapshot().ElapsedMillis)

	manual.Tick(1)
	stopwatch.Lap()
	manual.Tick(1)
	snapshot := stopwatch.Snapshot()
	assert.Equal(t, int64(6), snapshot.ElapsedMillis)
	assert.Equal(t, []int64{4}, snapshot.Laps)
}
