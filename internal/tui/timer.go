package tui

import "time"

// timerState tracks the current state of the countdown.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// countdownModel manages the focus countdown separate from display.
type countdownModel struct {
	now func() time.Time

	state     timerState
	length    time.Duration
	startTime time.Time
	pausedAt  time.Time
	pauseGap  time.Duration
	remaining time.Duration
}

func newCountdown(length time.Duration, now func() time.Time) countdownModel {
	if now == nil {
		now = time.Now
	}
	return countdownModel{
		now:       now,
		state:     timerStopped,
		length:    length,
		remaining: length,
	}
}

func (t *countdownModel) start() {
	t.state = timerRunning
	t.startTime = t.now()
	t.pauseGap = 0
	t.remaining = t.length
}

func (t *countdownModel) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pausedAt = t.now()
}

func (t *countdownModel) resume() {
	if t.state != timerPaused {
		return
	}
	t.pauseGap += t.now().Sub(t.pausedAt)
	t.state = timerRunning
}

func (t *countdownModel) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

func (t *countdownModel) reset() {
	t.state = timerStopped
	t.pauseGap = 0
	t.remaining = t.length
}

// tick advances the countdown and reports whether it just reached zero. A
// finished countdown stops itself.
func (t *countdownModel) tick() bool {
	if t.state != timerRunning {
		return false
	}
	t.remaining = t.length - (t.now().Sub(t.startTime) - t.pauseGap)
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = timerStopped
		return true
	}
	return false
}

func (t countdownModel) running() bool {
	return t.state != timerStopped
}

func (t countdownModel) paused() bool {
	return t.state == timerPaused
}

// progress is the elapsed fraction of the countdown, in [0, 1].
func (t countdownModel) progress() float64 {
	if t.length <= 0 {
		return 0
	}
	p := 1 - float64(t.remaining)/float64(t.length)
	return max(0, min(p, 1))
}
