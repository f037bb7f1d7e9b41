package tui

import (
	"time"
)

// timerState tracks the current state of the session timer.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// sessionTimer measures a training session while it happens. Paused time
// and idle time are not counted.
type sessionTimer struct {
	state     timerState
	startTime time.Time
	elapsed   time.Duration
	pausedAt  time.Time
	pauseGap  time.Duration

	// Idle detection
	lastActivity time.Time
	idleTimeout  time.Duration
	isIdle       bool

	now func() time.Time
}

func newSessionTimer() sessionTimer {
	return sessionTimer{
		state:        timerStopped,
		lastActivity: time.Now(),
		idleTimeout:  20 * time.Minute,
		now:          time.Now,
	}
}

func (t *sessionTimer) start() {
	if t.state != timerStopped {
		return
	}
	now := t.now()
	t.state = timerRunning
	t.startTime = now
	t.elapsed = 0
	t.pauseGap = 0
	t.lastActivity = now
	t.isIdle = false
}

// stop ends the session and returns its length in whole minutes, rounded
// to the nearest minute. A session that never started returns 0.
func (t *sessionTimer) stop() int {
	if t.state == timerStopped {
		return 0
	}
	d := t.currentElapsed()
	t.state = timerStopped
	t.elapsed = 0
	return int(d.Round(time.Minute) / time.Minute)
}

func (t *sessionTimer) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pausedAt = t.now()
}

func (t *sessionTimer) resume() {
	if t.state != timerPaused {
		return
	}
	now := t.now()
	t.pauseGap += now.Sub(t.pausedAt)
	t.state = timerRunning
	t.isIdle = false
	t.lastActivity = now
}

func (t *sessionTimer) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

func (t *sessionTimer) tick() {
	if t.state != timerRunning {
		return
	}
	now := t.now()
	t.elapsed = now.Sub(t.startTime) - t.pauseGap
	if now.Sub(t.lastActivity) > t.idleTimeout && !t.isIdle {
		t.isIdle = true
		t.pause()
	}
}

func (t *sessionTimer) recordActivity() {
	t.lastActivity = t.now()
	if t.isIdle && t.state == timerPaused {
		t.resume()
		t.isIdle = false
	}
}

func (t sessionTimer) running() bool {
	return t.state != timerStopped
}

func (t sessionTimer) paused() bool {
	return t.state == timerPaused
}

func (t sessionTimer) currentElapsed() time.Duration {
	switch t.state {
	case timerStopped:
		return 0
	case timerPaused:
		return t.pausedAt.Sub(t.startTime) - t.pauseGap
	default:
		return t.now().Sub(t.startTime) - t.pauseGap
	}
}
