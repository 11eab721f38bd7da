package blocks

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidParameter is wrapped by every parameter parsing error.
var ErrInvalidParameter = errors.New("invalid block parameter")

// unknownMode is the panic value for an enum outside its declared constants.
func unknownMode(kind string, v uint8) error {
	return errors.Wrapf(ErrInvalidParameter, "unknown %s %d", kind, v)
}

// IntegralMethod selects how Integral accumulates area.
type IntegralMethod uint8

const (
	Rectangle IntegralMethod = iota
	Trapezoidal
)

func (m IntegralMethod) String() string {
	switch m {
	case Rectangle:
		return "Rectangle"
	case Trapezoidal:
		return "Trapezoidal"
	}
	return "IntegralMethod(?)"
}

// ParseIntegralMethod parses "Rectangle" or "Trapezoidal", ignoring case.
func ParseIntegralMethod(s string) (IntegralMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle":
		return Rectangle, nil
	case "trapezoidal":
		return Trapezoidal, nil
	}
	return 0, errors.Wrapf(ErrInvalidParameter, "integral method %q", s)
}

// MustParseIntegralMethod is like ParseIntegralMethod but panics on error.
func MustParseIntegralMethod(s string) IntegralMethod {
	m, err := ParseIntegralMethod(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m IntegralMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *IntegralMethod) UnmarshalText(b []byte) error {
	v, err := ParseIntegralMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// DelayControlMode selects debounce or throttle behaviour.
type DelayControlMode uint8

const (
	Debounce DelayControlMode = iota
	Throttle
)

func (m DelayControlMode) String() string {
	switch m {
	case Debounce:
		return "Debounce"
	case Throttle:
		return "Throttle"
	}
	return "DelayControlMode(?)"
}

// ParseDelayControlMode parses "Debounce" or "Throttle", ignoring case.
func ParseDelayControlMode(s string) (DelayControlMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debounce":
		return Debounce, nil
	case "throttle":
		return Throttle, nil
	}
	return 0, errors.Wrapf(ErrInvalidParameter, "delay control mode %q", s)
}

// MustParseDelayControlMode is like ParseDelayControlMode but panics on error.
func MustParseDelayControlMode(s string) DelayControlMode {
	m, err := ParseDelayControlMode(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m DelayControlMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *DelayControlMode) UnmarshalText(b []byte) error {
	v, err := ParseDelayControlMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// TimerMode selects what Timer reports while running.
type TimerMode uint8

const (
	CountDown TimerMode = iota
	StopWatch
)

func (m TimerMode) String() string {
	switch m {
	case CountDown:
		return "CountDown"
	case StopWatch:
		return "StopWatch"
	}
	return "TimerMode(?)"
}

// ParseTimerMode parses "CountDown" or "StopWatch", ignoring case. The
// spellings "count_down" and "stop_watch" are accepted too.
func ParseTimerMode(s string) (TimerMode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "") {
	case "countdown":
		return CountDown, nil
	case "stopwatch":
		return StopWatch, nil
	}
	return 0, errors.Wrapf(ErrInvalidParameter, "timer mode %q", s)
}

// MustParseTimerMode is like ParseTimerMode but panics on error.
func MustParseTimerMode(s string) TimerMode {
	m, err := ParseTimerMode(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m TimerMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *TimerMode) UnmarshalText(b []byte) error {
	v, err := ParseTimerMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
