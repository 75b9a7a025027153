//go:build !test
// +build !test

package localtime

import "github.com/spikeekips/mitum-timer/util/logging"

var testLogging = logging.NewLogging(nil)
