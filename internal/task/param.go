package task

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInput marks values rejected before any record is built.
var ErrInvalidInput = errors.New("invalid input")

// Kind names the type of a task parameter as it appears in records.
type Kind string

const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
)

// Param is the typed parameter carried by a started task.
type Param interface {
	Kind() Kind
	String() string
}

// IntParam is the parameter of task 1.
type IntParam int

func (IntParam) Kind() Kind       { return KindInt }
func (p IntParam) String() string { return strconv.Itoa(int(p)) }

// FloatParam is the parameter of task 2. It is single precision and renders
// with six decimals.
type FloatParam float32

func (FloatParam) Kind() Kind       { return KindFloat }
func (p FloatParam) String() string { return fmt.Sprintf("%f", float64(p)) }

// StringParam is the parameter of task 3.
type StringParam string

func (StringParam) Kind() Kind       { return KindString }
func (p StringParam) String() string { return string(p) }

// ParseInt parses a task 1 parameter.
func ParseInt(s string) (IntParam, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	return IntParam(n), nil
}

// ParseFloat parses a task 2 parameter.
func ParseFloat(s string) (FloatParam, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a float", ErrInvalidInput, s)
	}
	return FloatParam(f), nil
}

// ParseString parses a task 3 parameter; surrounding blanks are dropped and
// the remainder must not be empty.
func ParseString(s string) (StringParam, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidInput)
	}
	return StringParam(s), nil
}

// MaxPauseMs is the longest pause a time.Duration can hold.
const MaxPauseMs = int64(math.MaxInt64 / time.Millisecond)

// ParsePause parses a pause duration in milliseconds.
func ParsePause(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidInput, s)
	}
	if int64(n) > MaxPauseMs {
		return 0, fmt.Errorf("%w: pause %d ms exceeds %d ms", ErrInvalidInput, n, MaxPauseMs)
	}
	return n, nil
}
