package localtime

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/spikeekips/mitum-timer/util"
	"github.com/spikeekips/mitum-timer/util/logging"
)

var InvalidDurationError = util.NewError("invalid duration")

type TimerID string

func (ti TimerID) String() string {
	return string(ti)
}

// Driver advances a Timer. OnStart is called once the timer is marked as
// running and OnStop once it is marked as stopped. The Control given to
// OnStart stays usable after OnStart returns; drivers keep it to move
// CurrentTime and to fire the finish notification.
type Driver interface {
	OnStart(Control) error
	OnStop(Control) error
}

// Control is handed to the Driver of a Timer. It is the only way to fire the
// finish notification of the timer.
type Control struct {
	t *Timer
}

func (c Control) Timer() *Timer {
	return c.t
}

// Finish calls the finish subscribers of the timer in subscription order.
func (c Control) Finish() {
	if c.t == nil {
		return
	}

	c.t.finish()
}

// Timer is a start/stop countdown timer with the time in seconds. Timer does
// not move CurrentTime by itself; the Driver does.
//
// The zero Timer works as NewTimer("", nil) except that it can not take a
// logger; use NewTimer for logging. Timer is not safe for concurrent use.
type Timer struct {
	*logging.Logging
	id          TimerID
	driver      Driver
	totalTime   float64
	currentTime float64
	running     bool
	subscribers subscribers
}

// NewTimer returns a stopped timer with zero TotalTime and CurrentTime. A nil
// driver makes Start and Stop only toggle the running state.
func NewTimer(id TimerID, driver Driver) *Timer {
	return &Timer{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "timer").Str("id", id.String())
		}),
		id:     id,
		driver: driver,
	}
}

// NewTimerWithTime returns a stopped timer with the given TotalTime; the
// CurrentTime is reset to it.
func NewTimerWithTime(id TimerID, driver Driver, totalTime float64) (*Timer, error) {
	t := NewTimer(id, driver)
	if err := t.SetTotalTime(totalTime); err != nil {
		return nil, err
	}

	t.Reset()

	return t, nil
}

func (t *Timer) ID() TimerID {
	return t.id
}

func (t *Timer) TotalTime() float64 {
	return t.totalTime
}

// SetTotalTime fails with InvalidDurationError when d is not greater than
// zero; the previous value is kept.
func (t *Timer) SetTotalTime(d float64) error {
	if !(d > 0) {
		return InvalidDurationError.Errorf("total time must be greater than zero, %v", d)
	}

	t.totalTime = d

	return nil
}

func (t *Timer) CurrentTime() float64 {
	return t.currentTime
}

// SetCurrentTime sets the current time; negative d is stored as zero.
func (t *Timer) SetCurrentTime(d float64) {
	if math.IsNaN(d) || d < 0 {
		d = 0
	}

	t.currentTime = d
}

func (t *Timer) IsRunning() bool {
	return t.running
}

// Start marks the timer as running and calls Driver.OnStart. Starting a
// running timer does nothing. The error of OnStart is returned as it is and
// the timer stays running.
func (t *Timer) Start() error {
	if t.running {
		return nil
	}

	t.running = true

	t.Log().Debug().
		Float64("total_time", t.totalTime).
		Float64("current_time", t.currentTime).
		Msg("timer started")

	if t.driver == nil {
		return nil
	}

	return t.driver.OnStart(Control{t: t})
}

// Stop marks the timer as stopped and calls Driver.OnStop. Stopping a stopped
// timer does nothing.
func (t *Timer) Stop() error {
	if !t.running {
		return nil
	}

	t.running = false

	t.Log().Debug().Float64("current_time", t.currentTime).Msg("timer stopped")

	if t.driver == nil {
		return nil
	}

	return t.driver.OnStop(Control{t: t})
}

// Reset sets CurrentTime back to TotalTime. The running state is not changed.
func (t *Timer) Reset() {
	t.currentTime = t.totalTime

	t.Log().Debug().Float64("current_time", t.currentTime).Msg("timer reset")
}

// Subscribe adds f to the finish subscribers. The returned id removes it by
// Unsubscribe.
func (t *Timer) Subscribe(f func()) SubscriptionID {
	return t.subscribers.add(f)
}

func (t *Timer) Unsubscribe(id SubscriptionID) bool {
	return t.subscribers.remove(id)
}

func (t *Timer) finish() {
	t.Log().Debug().Int("subscribers", t.subscribers.len()).Msg("timer finished")

	t.subscribers.call()
}
