package localtime

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/spikeekips/mitum-timer/util"
	"github.com/spikeekips/mitum-timer/util/isvalid"
	"github.com/spikeekips/mitum-timer/util/logging"
)

// Timers handles the multiple timers and controls them selectively. The zero
// Timers accepts new timers, but it can not take a logger; use NewTimers for
// logging. Like Timer, it is not safe for concurrent use.
type Timers struct {
	*logging.Logging
	timers   map[TimerID]*Timer
	allowNew bool // if allowNew is true, new timer can be added.
}

func NewTimers(ids []TimerID, allowNew bool) *Timers {
	timers := map[TimerID]*Timer{}
	for _, id := range ids {
		timers[id] = nil
	}

	return &Timers{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "timers")
		}),
		timers:   timers,
		allowNew: allowNew,
	}
}

// SetLogger also sets the logger of the timers already set. The timers set
// later get it by SetTimer.
func (ts *Timers) SetLogger(l zerolog.Logger) *logging.Logging {
	for id := range ts.timers {
		if t := ts.timers[id]; t != nil {
			_ = t.SetLogger(l)
		}
	}

	return ts.Logging.SetLogger(l)
}

// SetTimer sets the timer by it's id. The running timer of same id is stopped
// before being replaced. When stopping it fails, the timer is still replaced
// and the error of stopping is returned.
func (ts *Timers) SetTimer(timer *Timer) error {
	if timer == nil {
		return isvalid.InvalidError.Errorf("empty timer")
	}

	if ts.timers == nil {
		ts.timers = map[TimerID]*Timer{}
		ts.allowNew = true
	}

	if _, found := ts.timers[timer.ID()]; !found {
		if !ts.allowNew {
			return util.NotFoundError.Errorf("not allowed to add new timer, %q", timer.ID())
		}
	}

	var err error
	if existing := ts.timers[timer.ID()]; existing != nil && existing != timer {
		if err = existing.Stop(); err != nil {
			ts.Log().Error().Err(err).Str("timer", timer.ID().String()).Msg("failed to stop replaced timer")
		}
	}

	if ts.Logging.IsSet() && timer.Logging != nil {
		_ = timer.SetLogging(ts.Logging)
	}

	ts.timers[timer.ID()] = timer

	return err
}

func (ts *Timers) Timer(id TimerID) (*Timer, bool) {
	t, found := ts.timers[id]
	if !found || t == nil {
		return nil, false
	}

	return t, true
}

// StartTimers starts timers with the given ids in order. Before starting
// timers, the other timers are stopped if stopOthers is true.
func (ts *Timers) StartTimers(ids []TimerID, stopOthers bool) error {
	if err := ts.checkExists(ids); err != nil {
		return err
	}

	if stopOthers {
		var stopIDs []TimerID
		for _, id := range ts.ids() {
			if !inTimerIDs(id, ids) {
				stopIDs = append(stopIDs, id)
			}
		}

		if err := ts.traverse(stopIDs, (*Timer).Stop); err != nil {
			return err
		}
	}

	return ts.traverse(ids, (*Timer).Start)
}

func (ts *Timers) StopTimers(ids []TimerID) error {
	if err := ts.checkExists(ids); err != nil {
		return err
	}

	return ts.traverse(ids, (*Timer).Stop)
}

func (ts *Timers) ResetTimers(ids []TimerID) error {
	if err := ts.checkExists(ids); err != nil {
		return err
	}

	return ts.traverse(ids, func(t *Timer) error {
		t.Reset()

		return nil
	})
}

// Stop stops all the timers. Failed timers do not prevent the others from
// being stopped; the first error is returned.
func (ts *Timers) Stop() error {
	var first error

	for _, id := range ts.ids() {
		t := ts.timers[id]
		if t == nil {
			continue
		}

		if err := t.Stop(); err != nil {
			ts.Log().Error().Err(err).Str("timer", id.String()).Msg("failed to stop timer")

			if first == nil {
				first = err
			}
		}
	}

	return first
}

// Started returns the sorted ids of the running timers.
func (ts *Timers) Started() []TimerID {
	var started []TimerID

	for _, id := range ts.ids() {
		if t := ts.timers[id]; t != nil && t.IsRunning() {
			started = append(started, id)
		}
	}

	return started
}

func (ts *Timers) checkExists(ids []TimerID) error {
	for _, id := range ids {
		if _, found := ts.timers[id]; !found {
			return util.NotFoundError.Errorf("timer, %q", id)
		}
	}

	return nil
}

func (ts *Timers) traverse(ids []TimerID, f func(*Timer) error) error {
	for _, id := range ids {
		t := ts.timers[id]
		if t == nil {
			continue
		}

		if err := f(t); err != nil {
			ts.Log().Error().Err(err).Str("timer", id.String()).Msg("failed to control timer")

			return err
		}
	}

	return nil
}

func (ts *Timers) ids() []TimerID {
	ids := make([]TimerID, 0, len(ts.timers))
	for id := range ts.timers {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	return ids
}

func inTimerIDs(id TimerID, ids []TimerID) bool {
	for i := range ids {
		if ids[i] == id {
			return true
		}
	}

	return false
}
