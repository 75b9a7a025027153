package isvalid

// Check runs IsValid of every item in order and stops at the first failure.
// The failure is wrapped by InvalidError unless it already is one.
func Check(allowNil bool, vs ...IsValider) error {
	for i, v := range vs {
		if v == nil {
			if allowNil {
				continue
			}

			return InvalidError.Errorf("%dth: nil can not be checked", i)
		}

		if err := v.IsValid(); err != nil {
			return wrap(err)
		}
	}

	return nil
}

func CheckFunc(fs []func() error) error {
	for i := range fs {
		if fs[i] == nil {
			return InvalidError.Errorf("%dth: nil func", i)
		}

		if err := fs[i](); err != nil {
			return wrap(err)
		}
	}

	return nil
}

func wrap(err error) error {
	if e, ok := err.(interface{ Is(error) bool }); ok && e.Is(InvalidError) { // nolint:errorlint
		return err
	}

	return InvalidError.Wrap(err)
}
