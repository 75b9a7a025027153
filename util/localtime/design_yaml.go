package localtime

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type TimerDesignYAML struct {
	ID        string      `yaml:"id"`
	TotalTime interface{} `yaml:"total-time"`
}

func (de TimerDesign) MarshalYAML() (interface{}, error) {
	return TimerDesignYAML{
		ID:        de.ID.String(),
		TotalTime: de.TotalTime,
	}, nil
}

func (de *TimerDesign) UnmarshalYAML(value *yaml.Node) error {
	var u TimerDesignYAML
	if err := value.Decode(&u); err != nil {
		return err
	}

	d, err := parseTotalTime(u.TotalTime)
	if err != nil {
		return errors.Wrapf(err, "timer, %q", u.ID)
	}

	de.ID = TimerID(strings.TrimSpace(u.ID))
	de.TotalTime = d

	return nil
}

type TimersDesignYAML struct {
	AllowNew bool           `yaml:"allow-new,omitempty"`
	Timers   []*TimerDesign `yaml:"timers"`
}

func (de TimersDesign) MarshalYAML() (interface{}, error) {
	u := TimersDesignYAML{
		AllowNew: de.AllowNew,
		Timers:   make([]*TimerDesign, len(de.Timers)),
	}

	for i := range de.Timers {
		u.Timers[i] = &de.Timers[i]
	}

	return u, nil
}

// UnmarshalYAML fails when the timers list has empty item.
func (de *TimersDesign) UnmarshalYAML(value *yaml.Node) error {
	var u TimersDesignYAML
	if err := value.Decode(&u); err != nil {
		return err
	}

	timers := make([]TimerDesign, len(u.Timers))
	for i := range u.Timers {
		if u.Timers[i] == nil {
			return errors.Errorf("empty timer design, %dth", i)
		}

		timers[i] = *u.Timers[i]
	}

	de.AllowNew = u.AllowNew
	de.Timers = timers

	return nil
}

// LoadTimersDesign decodes and validates the yaml timers design.
func LoadTimersDesign(b []byte) (TimersDesign, error) {
	var de TimersDesign
	if err := yaml.Unmarshal(b, &de); err != nil {
		return TimersDesign{}, errors.Wrap(err, "failed to decode timers design")
	}

	if err := de.IsValid(); err != nil {
		return TimersDesign{}, err
	}

	return de, nil
}

// parseTotalTime accepts seconds as number or the duration string like "1m30s".
func parseTotalTime(i interface{}) (float64, error) {
	switch t := i.(type) {
	case nil:
		return 0, errors.Errorf("empty total time")
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case float64:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if len(s) < 1 {
			return 0, errors.Errorf("empty total time")
		}

		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}

		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, errors.Wrap(err, "invalid total time")
		}

		return d.Seconds(), nil
	default:
		return 0, errors.Errorf("invalid total time type, %T", i)
	}
}
