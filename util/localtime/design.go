package localtime

import (
	"github.com/spikeekips/mitum-timer/util"
	"github.com/spikeekips/mitum-timer/util/isvalid"
)

// TimerDesign describes a timer; TotalTime is in seconds.
type TimerDesign struct {
	ID        TimerID
	TotalTime float64
}

func (de TimerDesign) IsValid() error {
	if len(de.ID) < 1 {
		return isvalid.InvalidError.Errorf("empty timer id")
	}

	if !(de.TotalTime > 0) {
		return isvalid.InvalidError.Wrap(
			InvalidDurationError.Errorf("timer, %q: total time must be greater than zero, %v", de.ID, de.TotalTime),
		)
	}

	return nil
}

func (de TimerDesign) New(driver Driver) (*Timer, error) {
	if err := de.IsValid(); err != nil {
		return nil, err
	}

	return NewTimerWithTime(de.ID, driver, de.TotalTime)
}

type TimersDesign struct {
	AllowNew bool
	Timers   []TimerDesign
}

func (de TimersDesign) IsValid() error {
	vs := make([]isvalid.IsValider, len(de.Timers))
	for i := range de.Timers {
		vs[i] = de.Timers[i]
	}

	if err := isvalid.Check(false, vs...); err != nil {
		return err
	}

	ids := map[TimerID]struct{}{}
	for i := range de.Timers {
		id := de.Timers[i].ID
		if _, found := ids[id]; found {
			return isvalid.InvalidError.Wrap(util.DuplicatedError.Errorf("timer, %q", id))
		}

		ids[id] = struct{}{}
	}

	return nil
}

// New creates Timers with every designed timer. driverFunc returns the Driver
// for each timer id.
func (de TimersDesign) New(driverFunc func(TimerID) Driver) (*Timers, error) {
	if err := de.IsValid(); err != nil {
		return nil, err
	}

	ids := make([]TimerID, len(de.Timers))
	for i := range de.Timers {
		ids[i] = de.Timers[i].ID
	}

	ts := NewTimers(ids, de.AllowNew)

	for i := range de.Timers {
		var driver Driver
		if driverFunc != nil {
			driver = driverFunc(de.Timers[i].ID)
		}

		t, err := de.Timers[i].New(driver)
		if err != nil {
			return nil, err
		}

		if err := ts.SetTimer(t); err != nil {
			return nil, err
		}
	}

	return ts, nil
}
