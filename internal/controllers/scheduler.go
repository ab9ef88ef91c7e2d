package controllers

import "time"

// Scheduler runs fn once after delay
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// Handle cancels a scheduled call. Cancel reports whether the call was
// stopped before it started.
type Handle interface {
	Cancel() bool
}

// TimerScheduler schedules on runtime timers; fn runs on its own goroutine
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	return timerHandle{timer: time.AfterFunc(delay, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Cancel() bool {
	return h.timer.Stop()
}
