package isvalid

import "github.com/spikeekips/mitum-timer/util"

var InvalidError = util.NewError("invalid")

type IsValider interface {
	IsValid() error
}
