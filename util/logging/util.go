package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Setup creates the root Logging. With "terminal" format the output is
// human-readable and colored when stdout is a terminal or forceColor is set;
// any other format writes JSON lines. Below info level, the caller and the
// stack of the logged errors are added; the stack needs
// zerolog.ErrorStackMarshaler.
func Setup(
	output io.Writer,
	level zerolog.Level,
	format string,
	forceColor bool,
) *Logging {
	if format == "terminal" {
		useColor := forceColor
		if !useColor {
			useColor = isatty.IsTerminal(os.Stdout.Fd())
		}

		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339Nano,
			NoColor:    !useColor,
		}
	}

	z := zerolog.New(output).With().Timestamp()

	if level <= zerolog.DebugLevel {
		z = z.Caller().Stack()
	}

	return NewLogging(nil).SetLogger(z.Logger().Level(level))
}
