package task

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_ExactText(t *testing.T) {
	cases := []struct {
		name string
		got  Record
		want string
	}{
		{"int", StartedRecord(Task1, IntParam(42), 100), "Task 1 started with int parameter: 42, pause duration: 100 ms"},
		{"float", StartedRecord(Task2, FloatParam(3.5), 0), "Task 2 started with float parameter: 3.500000, pause duration: 0 ms"},
		{"string", StartedRecord(Task3, StringParam("hello world"), 25), "Task 3 started with string parameter: hello world, pause duration: 25 ms"},
		{"negative int", StartedRecord(Task1, IntParam(-7), 1), "Task 1 started with int parameter: -7, pause duration: 1 ms"},
		{"stop", StoppedRecord(Task2), "Task 2 stopped"},
		{"unknown start", StartedRecord(ID(4), IntParam(1), 1), "Unknown task started"},
		{"unknown stop", StoppedRecord(ID(0)), "Unknown task stopped"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got.String())
		})
	}
	assert.Equal(t, "Task 1 stopped\n", string(StoppedRecord(Task1).Line()))
}

func TestParse(t *testing.T) {
	i, err := ParseInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, IntParam(42), i)

	f, err := ParseFloat("3.14")
	require.NoError(t, err)
	assert.Equal(t, "3.140000", f.String())

	s, err := ParseString("  two words ")
	require.NoError(t, err)
	assert.Equal(t, StringParam("two words"), s)

	p, err := ParsePause("0")
	require.NoError(t, err)
	assert.Equal(t, 0, p)

	p, err = ParsePause(strconv.FormatInt(MaxPauseMs, 10))
	require.NoError(t, err)
	assert.Equal(t, MaxPauseMs, int64(p))
	assert.Positive(t, time.Duration(p)*time.Millisecond)

	for _, bad := range []func() error{
		func() error { _, err := ParseInt("4.2"); return err },
		func() error { _, err := ParseInt("abc"); return err },
		func() error { _, err := ParseFloat("x1"); return err },
		func() error { _, err := ParseString("   "); return err },
		func() error { _, err := ParsePause("-5"); return err },
		func() error { _, err := ParsePause("soon"); return err },
		func() error { _, err := ParsePause(strconv.FormatInt(MaxPauseMs+1, 10)); return err },
	} {
		assert.ErrorIs(t, bad(), ErrInvalidInput)
	}
}

func TestID_Kind(t *testing.T) {
	k, ok := Task3.Kind()
	assert.True(t, ok)
	assert.Equal(t, KindString, k)

	_, ok = ID(9).Kind()
	assert.False(t, ok)
}
