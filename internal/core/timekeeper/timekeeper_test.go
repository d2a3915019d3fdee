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

type countingRecorder struct {
	transitions int
	ticks       map[string]int
	laps        int
	finished    int
	ignored     int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{ticks: map[string]int{}}
}

func (recorder *countingRecorder) IncTransition(string, string, string) { recorder.transitions++ }
func (recorder *countingRecorder) IncTick(engine string)                { recorder.ticks[engine]++ }
func (recorder *countingRecorder) IncLap()                              { recorder.laps++ }
func (recorder *countingRecorder) IncFinished()                         { recorder.finished++ }
func (recorder *countingRecorder) IncIntent(_ string, _ string, applied bool) {
	if !applied {
		recorder.ignored++
	}
}

func newSession(t *testing.T) (*timekeeper.Session, *tickertest.Manual) {
	t.Helper()
	manual := tickertest.New()
	session := timekeeper.NewSession(model.DefaultTimeKeeperConfig(), testOptions(manual))
	t.Cleanup(session.Close)
	return session, manual
}

func TestSessionStartsOnTimerTab(t *testing.T) {
	session, _ := newSession(t)

	assert.NotEmpty(t, session.ID())
	assert.Equal(t, timekeeper.TabTimer, session.ActiveTab())
	assert.Equal(t, timekeeper.KindCountdown, session.Active().Kind())
	assert.Equal(t, "05:00", session.Countdown().Display())
	assert.Equal(t, "00:00.00", session.Stopwatch().Display())
}

func TestSessionActivateDeactivatesPreviousTab(t *testing.T) {
	session, manual := newSession(t)
	session.Activate(timekeeper.TabStopwatch)
	session.Stopwatch().Start()
	manual.Tick(25)

	session.Activate(timekeeper.TabTimer)
	snapshot := session.Stopwatch().Snapshot()
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
	assert.Equal(t, int64(250), snapshot.ElapsedMillis, "tab switch must not reset accumulated time")
	assert.Zero(t, manual.ArmedCount())

	session.Activate(timekeeper.TabStopwatch)
	assert.Equal(t, int64(250), session.Stopwatch().Snapshot().ElapsedMillis)
}

func TestSessionActivateSameOrUnknownTabIsNoOp(t *testing.T) {
	session, manual := newSession(t)
	session.Countdown().Start()

	session.Activate(timekeeper.TabTimer)
	session.Activate(timekeeper.Tab("clock"))
	assert.True(t, session.Countdown().Running())
	assert.Equal(t, timekeeper.TabTimer, session.ActiveTab())
	assert.Nil(t, session.Engine(timekeeper.Tab("clock")))
	assert.Equal(t, 1, manual.ArmedCount())
}

func TestSessionEnginesOwnSeparateHandles(t *testing.T) {
	session, manual := newSession(t)
	session.Countdown().Start()
	session.Stopwatch().Start()
	require.Equal(t, 2, manual.ArmedCount())

	manual.Tick(3)
	assert.Equal(t, 297, session.Countdown().Snapshot().RemainingSeconds)
	assert.Equal(t, int64(30), session.Stopwatch().Snapshot().ElapsedMillis)

	session.Deactivate()
	assert.Zero(t, manual.ArmedCount())
	assert.False(t, session.Countdown().Running())
	assert.False(t, session.Stopwatch().Running())
}

func TestSessionReconfigureRespectsRunningCountdown(t *testing.T) {
	session, manual := newSession(t)
	config := model.DefaultTimeKeeperConfig()
	config.Countdown.Minutes = 1
	config.Countdown.Seconds = 15

	session.Countdown().Start()
	manual.Tick(1)
	session.Reconfigure(config)
	assert.Equal(t, 299, session.Countdown().Snapshot().RemainingSeconds)

	session.Countdown().Pause()
	session.Reconfigure(config)
	snapshot := session.Countdown().Snapshot()
	assert.Equal(t, 75, snapshot.TargetSeconds)
	assert.Equal(t, 299, snapshot.RemainingSeconds)
}

func TestSessionReconfigureKeepsPausedProgress(t *testing.T) {
	session, manual := newSession(t)
	countdown := session.Countdown()

	countdown.AdjustMinutes(5)
	countdown.ApplyConfiguration()
	countdown.Start()
	manual.Tick(30)
	countdown.Pause()
	require.Equal(t, 570, countdown.Snapshot().RemainingSeconds)

	config := model.DefaultTimeKeeperConfig()
	config.Countdown.Minutes = 10
	session.Reconfigure(config)
	snapshot := countdown.Snapshot()
	assert.Equal(t, 600, snapshot.TargetSeconds)
	assert.Equal(t, 570, snapshot.RemainingSeconds)

	session.Reconfigure(model.DefaultTimeKeeperConfig())
	snapshot = countdown.Snapshot()
	assert.Equal(t, 300, snapshot.TargetSeconds)
	assert.Equal(t, 570, snapshot.RemainingSeconds)
	assert.Equal(t, timekeeper.StateIdle, snapshot.State)
}

func TestSessionReconfigureUnchangedTargetIsNoOp(t *testing.T) {
	session, manual := newSession(t)
	countdown := session.Countdown()
	events := countdown.Subscribe(8)

	countdown.Start()
	manual.Tick(10)
	countdown.Pause()
	for len(events) > 0 {
		<-events
	}

	session.Reconfigure(model.DefaultTimeKeeperConfig())
	assert.Equal(t, 290, countdown.Snapshot().RemainingSeconds)
	assert.Empty(t, events)
}

func TestSessionReconfigureKeepsFinishedCountdown(t *testing.T) {
	session, manual := newSession(t)
	countdown := session.Countdown()

	countdown.Configure(0, 2)
	countdown.ApplyConfiguration()
	countdown.Start()
	manual.Tick(2)
	require.True(t, countdown.Snapshot().Finished)

	config := model.DefaultTimeKeeperConfig()
	config.Countdown.Minutes = 1
	session.Reconfigure(config)
	snapshot := countdown.Snapshot()
	assert.True(t, snapshot.Finished)
	assert.Zero(t, snapshot.RemainingSeconds)
	assert.Equal(t, 60, snapshot.TargetSeconds)
}

func TestSessionReconfigureFollowsUntouchedCountdown(t *testing.T) {
	session, _ := newSession(t)
	config := model.DefaultTimeKeeperConfig()
	config.Countdown.Minutes = 2
	config.Countdown.Seconds = 30

	session.Reconfigure(config)
	snapshot := session.Countdown().Snapshot()
	assert.Equal(t, 150, snapshot.TargetSeconds)
	assert.Equal(t, 150, snapshot.RemainingSeconds)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	session, manual := newSession(t)
	events := session.Countdown().Subscribe(4)
	session.Countdown().Start()

	session.Close()
	session.Close()
	session.Activate(timekeeper.TabStopwatch)

	assert.Zero(t, manual.ArmedCount())
	assert.Equal(t, timekeeper.TabTimer, session.ActiveTab())
	for range events {
	}
}

func TestEnginesReportToRecorder(t *testing.T) {
	manual := tickertest.New()
	recorder := newCountingRecorder()
	options := testOptions(manual)
	options.Recorder = recorder

	countdown := timekeeper.NewCountdown(model.CountdownConfig{Seconds: 2, TickInterval: time.Second}, options)
	defer countdown.Close()
	stopwatch := timekeeper.NewStopwatch(model.StopwatchConfig{}, options)
	defer stopwatch.Close()

	countdown.Start()
	stopwatch.Start()
	manual.Tick(2)
	stopwatch.Lap()
	countdown.Start()

	assert.Equal(t, 1, recorder.finished)
	assert.Equal(t, 1, recorder.laps)
	assert.Equal(t, 2, recorder.ticks["countdown"])
	assert.Equal(t, 2, recorder.ticks["stopwatch"])
	assert.Equal(t, 1, recorder.ignored)
	assert.Equal(t, 3, recorder.transitions)
}
