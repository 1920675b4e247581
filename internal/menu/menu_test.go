package menu

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivtomov/task-manager/internal/config"
	"github.com/ivtomov/task-manager/internal/pipe"
	"github.com/ivtomov/task-manager/internal/task"
	"github.com/ivtomov/task-manager/internal/ui"
)

type sink struct{ lines []string }

func (s *sink) Send(p []byte) error { s.lines = append(s.lines, string(p)); return nil }
func (s *sink) CloseWriter() error  { return nil }

type harness struct {
	menu    *Menu
	sink    *sink
	out     *bytes.Buffer
	pauses  []time.Duration
	palette *ui.Palette
}

func newHarness(t *testing.T, input, scheme string) *harness {
	t.Helper()
	return newHarnessFrom(t, strings.NewReader(input), scheme)
}

func newHarnessFrom(t *testing.T, in io.Reader, scheme string) *harness {
	t.Helper()
	h := &harness{sink: &sink{}, out: &bytes.Buffer{}}
	ctrl := task.NewController(h.sink, task.WithDelay(func(_ context.Context, d time.Duration) error {
		h.pauses = append(h.pauses, d)
		return nil
	}))
	p, err := ui.NewPalette(lipgloss.NewRenderer(&bytes.Buffer{}), config.New().Colors)
	require.NoError(t, err)
	h.palette = p
	h.menu = New(ctrl, NewLinePrompter(in, h.out), h.out, p, scheme)
	return h
}

func TestMenu_StartStopExit(t *testing.T) {
	input := strings.Join([]string{
		"1", "42", "100",
		"2", "3.5", "0",
		"3", "hello there", "7",
		"5",
		"7",
	}, "\n") + "\n"
	h := newHarness(t, input, config.SchemeTask)

	require.NoError(t, h.menu.Run(context.Background()))

	assert.Equal(t, []string{
		"Task 1 started with int parameter: 42, pause duration: 100 ms\n",
		"Task 2 started with float parameter: 3.500000, pause duration: 0 ms\n",
		"Task 3 started with string parameter: hello there, pause duration: 7 ms\n",
		"Task 2 stopped\n",
	}, h.sink.lines)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 0, 7 * time.Millisecond}, h.pauses)

	out := h.out.String()
	assert.Contains(t, out, "1. Start Task 1 (Enter Int Data)")
	assert.Contains(t, out, "Enter an integer value for Task 1: ")
	assert.Contains(t, out, "Task 2 stopped\n")
	assert.True(t, strings.HasSuffix(out, "Exiting...\n"))
}

func TestMenu_InvalidInputSendsNothing(t *testing.T) {
	input := strings.Join([]string{
		"1", "forty-two",
		"2", "abc",
		"3", "   ",
		"1", "5", "-3",
		"9",
		"x",
		"7",
	}, "\n") + "\n"
	h := newHarness(t, input, config.SchemeTask)

	require.NoError(t, h.menu.Run(context.Background()))

	assert.Empty(t, h.sink.lines)
	assert.Empty(t, h.pauses)
	out := h.out.String()
	assert.Contains(t, out, "Invalid input. Please enter an integer.")
	assert.Contains(t, out, "Invalid input. Please enter a float.")
	assert.Contains(t, out, "Invalid input. Please enter a string.")
	assert.Contains(t, out, "Invalid input. Please enter a non-negative integer.")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please select a valid option from the menu."))
}

func TestMenu_EndOfInputExits(t *testing.T) {
	h := newHarness(t, "4\n", config.SchemeTask)
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Equal(t, []string{"Task 1 stopped\n"}, h.sink.lines)
	assert.Contains(t, h.out.String(), "Exiting...")
}

func TestMenu_EndOfInputMidPrompt(t *testing.T) {
	h := newHarness(t, "1\n12\n", config.SchemeTask)
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Empty(t, h.sink.lines)
}

func TestMenu_ColorChoice(t *testing.T) {
	input := strings.Join([]string{
		"1", "1", "blue", "0",
		"2", "1.25", "purple", "0",
		"7",
	}, "\n") + "\n"
	h := newHarness(t, input, config.SchemeChoice)

	require.NoError(t, h.menu.Run(context.Background()))

	require.Len(t, h.sink.lines, 2)
	out := h.out.String()
	assert.Contains(t, out, "Enter a color for Task 1 (red/green/blue): ")
	assert.Contains(t, out, "Invalid color choice. Defaulting to red.")

	c, _ := h.palette.Color(task.Task1)
	assert.Equal(t, lipgloss.Color("4"), c)
	c, _ = h.palette.Color(task.Task2)
	assert.Equal(t, lipgloss.Color("1"), c)
}

func TestMenu_BrokenStreamEndsLoop(t *testing.T) {
	ch := pipe.New(1)
	ch.CloseReader(nil)
	ctrl := task.NewController(ch)
	p, err := ui.NewPalette(lipgloss.NewRenderer(&bytes.Buffer{}), config.New().Colors)
	require.NoError(t, err)
	var out bytes.Buffer
	m := New(ctrl, NewLinePrompter(strings.NewReader("4\n7\n"), &out), &out, p, config.SchemeTask)

	err = m.Run(context.Background())
	assert.ErrorIs(t, err, pipe.ErrReaderClosed)
}

func TestMenu_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := newHarnessFrom(t, pr, config.SchemeTask)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.menu.Run(ctx) }()

	// the choice is consumed, then the parameter prompt blocks
	_, err := pw.Write([]byte("1\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrInterrupted)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("menu kept waiting for input after cancel")
	}
	assert.Empty(t, h.sink.lines)
	assert.Contains(t, h.out.String(), "Interrupted.")
	assert.NotContains(t, h.out.String(), "Exiting...")
}

func TestMenu_CancelledBeforeFirstPrompt(t *testing.T) {
	h := newHarness(t, "4\n7\n", config.SchemeTask)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.menu.Run(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Empty(t, h.sink.lines)
	assert.NotContains(t, h.out.String(), "Menu:")
}

func TestMenu_InterruptedPause(t *testing.T) {
	h := newHarness(t, "1\n5\n100\n7\n", config.SchemeTask)
	h.menu.ctrl = task.NewController(h.sink, task.WithDelay(func(context.Context, time.Duration) error {
		return context.Canceled
	}))

	err := h.menu.Run(context.Background())
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Empty(t, h.sink.lines)
}
