package localtime

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type dummyDriver struct {
	started  int
	stopped  int
	control  Control
	startErr error
	stopErr  error
	onStart  func(Control)
	onStop   func(Control)
}

func (dd *dummyDriver) OnStart(c Control) error {
	dd.started++
	dd.control = c

	if dd.onStart != nil {
		dd.onStart(c)
	}

	return dd.startErr
}

func (dd *dummyDriver) OnStop(c Control) error {
	dd.stopped++

	if dd.onStop != nil {
		dd.onStop(c)
	}

	return dd.stopErr
}

type testTimer struct {
	suite.Suite
}

func (t *testTimer) TestNew() {
	tr := NewTimer("showme", &dummyDriver{})

	t.Equal(TimerID("showme"), tr.ID())
	t.Equal(float64(0), tr.TotalTime())
	t.Equal(float64(0), tr.CurrentTime())
	t.False(tr.IsRunning())
}

func (t *testTimer) TestNewWithTime() {
	tr, err := NewTimerWithTime("showme", &dummyDriver{}, 5)
	t.NoError(err)

	t.Equal(float64(5), tr.TotalTime())
	t.Equal(float64(5), tr.CurrentTime())
	t.False(tr.IsRunning())
}

func (t *testTimer) TestNewWithInvalidTime() {
	for _, d := range []float64{0, -1, math.Inf(-1), math.NaN()} {
		tr, err := NewTimerWithTime("showme", &dummyDriver{}, d)
		t.Nil(tr)
		t.True(errors.Is(err, InvalidDurationError), "%v", d)
	}
}

func (t *testTimer) TestTotalTime() {
	tr := NewTimer("showme", nil)

	for _, d := range []float64{0.001, 1, 5.5, 3600} {
		t.NoError(tr.SetTotalTime(d))
		t.Equal(d, tr.TotalTime())
	}

	for _, d := range []float64{0, -0.001, -10} {
		err := tr.SetTotalTime(d)
		t.True(errors.Is(err, InvalidDurationError))
		t.Equal(float64(3600), tr.TotalTime())
	}
}

func (t *testTimer) TestCurrentTime() {
	tr := NewTimer("showme", nil)

	for _, d := range []float64{0, 0.5, 3, 100} {
		tr.SetCurrentTime(d)
		t.Equal(d, tr.CurrentTime())
	}

	for _, d := range []float64{-0.001, -3, math.Inf(-1), math.NaN()} {
		tr.SetCurrentTime(d)
		t.Equal(float64(0), tr.CurrentTime())
	}
}

func (t *testTimer) TestStart() {
	dd := &dummyDriver{}
	tr, err := NewTimerWithTime("showme", dd, 3)
	t.NoError(err)
	_ = tr.SetLogging(testLogging)

	t.NoError(tr.Start())
	t.True(tr.IsRunning())
	t.Equal(1, dd.started)
	t.Equal(tr, dd.control.Timer())

	t.NoError(tr.Start())
	t.True(tr.IsRunning())
	t.Equal(1, dd.started)
	t.Equal(0, dd.stopped)
}

func (t *testTimer) TestRunningBeforeOnStart() {
	var running bool

	dd := &dummyDriver{onStart: func(c Control) {
		running = c.Timer().IsRunning()
	}}

	tr := NewTimer("showme", dd)
	t.NoError(tr.Start())
	t.True(running)
}

func (t *testTimer) TestStoppedBeforeOnStop() {
	running := true

	dd := &dummyDriver{onStop: func(c Control) {
		running = c.Timer().IsRunning()
	}}

	tr := NewTimer("showme", dd)
	_ = tr.SetLogging(testLogging)

	t.NoError(tr.Start())
	t.NoError(tr.Stop())
	t.Equal(1, dd.stopped)
	t.False(running)
}

func (t *testTimer) TestZeroTimer() {
	var tr Timer

	var finished int
	tr.Subscribe(func() { finished++ })

	t.NotPanics(func() {
		t.NoError(tr.Start())
		t.True(tr.IsRunning())

		t.NoError(tr.SetTotalTime(2))
		tr.Reset()
		t.Equal(float64(2), tr.CurrentTime())

		Control{t: &tr}.Finish()

		t.NoError(tr.Stop())
		t.False(tr.IsRunning())
	})

	t.Equal(1, finished)
}

func (t *testTimer) TestStop() {
	dd := &dummyDriver{}
	tr, err := NewTimerWithTime("showme", dd, 3)
	t.NoError(err)

	t.NoError(tr.Stop())
	t.Equal(0, dd.stopped)

	t.NoError(tr.Start())
	t.NoError(tr.Stop())
	t.False(tr.IsRunning())
	t.Equal(1, dd.stopped)

	t.NoError(tr.Stop())
	t.Equal(1, dd.stopped)

	t.NoError(tr.Start())
	t.Equal(2, dd.started)
}

func (t *testTimer) TestDriverError() {
	startErr := errors.Errorf("showme")
	stopErr := errors.Errorf("findme")

	dd := &dummyDriver{startErr: startErr, stopErr: stopErr}
	tr := NewTimer("showme", dd)
	_ = tr.SetLogging(testLogging)

	t.Equal(startErr, tr.Start())
	t.True(tr.IsRunning())

	t.Equal(stopErr, tr.Stop())
	t.False(tr.IsRunning())
}

func (t *testTimer) TestNilDriver() {
	tr := NewTimer("showme", nil)

	t.NoError(tr.Start())
	t.True(tr.IsRunning())
	t.NoError(tr.Stop())
	t.False(tr.IsRunning())
}

func (t *testTimer) TestReset() {
	tr, err := NewTimerWithTime("showme", nil, 10)
	t.NoError(err)

	tr.SetCurrentTime(3)
	tr.Reset()
	t.Equal(float64(10), tr.CurrentTime())

	t.NoError(tr.Start())
	tr.SetCurrentTime(1)
	tr.Reset()
	t.Equal(float64(10), tr.CurrentTime())
	t.True(tr.IsRunning())

	t.NoError(tr.SetTotalTime(2))
	tr.Reset()
	t.Equal(float64(2), tr.CurrentTime())
}

func (t *testTimer) TestFinish() {
	dd := &dummyDriver{}
	tr, err := NewTimerWithTime("showme", dd, 1)
	t.NoError(err)

	var called []string
	tr.Subscribe(func() { called = append(called, "a") })
	tr.Subscribe(func() { called = append(called, "b") })

	t.NoError(tr.Start())
	dd.control.Finish()

	t.Equal([]string{"a", "b"}, called)
}

func (t *testTimer) TestFinishWithoutSubscribers() {
	dd := &dummyDriver{}
	tr := NewTimer("showme", dd)

	t.NoError(tr.Start())
	t.NotPanics(func() {
		dd.control.Finish()
	})

	t.NotPanics(func() {
		Control{}.Finish()
	})
}

func (t *testTimer) TestUnsubscribe() {
	dd := &dummyDriver{}
	tr := NewTimer("showme", dd)

	var called []string
	a := tr.Subscribe(func() { called = append(called, "a") })
	b := tr.Subscribe(func() { called = append(called, "b") })
	tr.Subscribe(func() { called = append(called, "c") })

	t.NotEqual(a, b)
	t.Equal(SubscriptionID(0), tr.Subscribe(nil))

	t.True(tr.Unsubscribe(b))
	t.False(tr.Unsubscribe(b))
	t.False(tr.Unsubscribe(0))

	t.NoError(tr.Start())
	dd.control.Finish()

	t.Equal([]string{"a", "c"}, called)
}

func (t *testTimer) TestSubscribeWhileFinishing() {
	dd := &dummyDriver{}
	tr := NewTimer("showme", dd)

	var called []string

	var c SubscriptionID
	tr.Subscribe(func() {
		called = append(called, "a")

		tr.Unsubscribe(c)
		tr.Subscribe(func() { called = append(called, "d") })
	})
	tr.Subscribe(func() { called = append(called, "b") })
	c = tr.Subscribe(func() { called = append(called, "c") })

	t.NoError(tr.Start())

	dd.control.Finish()
	t.Equal([]string{"a", "b", "c"}, called)

	called = nil
	dd.control.Finish()
	t.Equal([]string{"a", "b", "d"}, called)
}

func (t *testTimer) TestCountdownDriver() {
	cd := &countdownDriver{}
	tr, err := NewTimerWithTime("showme", cd, 1)
	t.NoError(err)
	_ = tr.SetLogging(testLogging)

	var finished int
	tr.Subscribe(func() { finished++ })

	cd.tick(0.5)
	t.Equal(float64(1), tr.CurrentTime())

	t.NoError(tr.Start())
	cd.tick(0.4)
	t.InDelta(0.6, tr.CurrentTime(), 0.000001)
	t.Equal(0, finished)

	cd.tick(0.7)
	t.Equal(float64(0), tr.CurrentTime())
	t.Equal(1, finished)
	t.False(tr.IsRunning())

	tr.Reset()
	t.NoError(tr.Start())
	cd.tick(1)
	t.Equal(2, finished)
}

func (t *testTimer) TestLogging() {
	var buf bytes.Buffer

	tr := NewTimer("showme", nil)
	_ = tr.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	t.NoError(tr.Start())

	t.Contains(buf.String(), `"module":"timer"`)
	t.Contains(buf.String(), `"id":"showme"`)
	t.Contains(buf.String(), "timer started")
}

func TestTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(testTimer))
}

// countdownDriver moves the timer only by tick, like a per-frame update.
type countdownDriver struct {
	control *Control
}

func (cd *countdownDriver) OnStart(c Control) error {
	cd.control = &c

	return nil
}

func (cd *countdownDriver) OnStop(Control) error {
	cd.control = nil

	return nil
}

func (cd *countdownDriver) tick(d float64) {
	if cd.control == nil {
		return
	}

	c := *cd.control
	tr := c.Timer()

	tr.SetCurrentTime(tr.CurrentTime() - d)
	if tr.CurrentTime() > 0 {
		return
	}

	_ = tr.Stop()
	c.Finish()
}
