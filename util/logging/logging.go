package logging

import "github.com/rs/zerolog"

var nop = zerolog.Nop()

// Logging holds a zerolog logger together with the context function which is
// applied whenever a new logger is set. Until SetLogger is called, it logs
// nothing. Log of nil Logging also logs nothing.
type Logging struct {
	l    zerolog.Logger
	orig zerolog.Logger
	f    func(zerolog.Context) zerolog.Context
	set  bool
}

func NewLogging(f func(zerolog.Context) zerolog.Context) *Logging {
	return &Logging{
		l:    nop,
		orig: nop,
		f:    f,
	}
}

func (lg *Logging) Log() *zerolog.Logger {
	if lg == nil {
		l := nop

		return &l
	}

	return &lg.l
}

func (lg *Logging) SetLogger(l zerolog.Logger) *Logging {
	lg.orig = l
	lg.set = true

	if lg.f != nil {
		lg.l = lg.f(lg.orig.With()).Logger()
	} else {
		lg.l = l
	}

	return lg
}

// SetLogging takes the logger of l without it's context.
func (lg *Logging) SetLogging(l *Logging) *Logging {
	return lg.SetLogger(l.orig)
}

// IsSet tells whether SetLogger has been called.
func (lg *Logging) IsSet() bool {
	return lg != nil && lg.set
}
