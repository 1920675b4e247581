// Package tasklog is the consumer side of the record stream: it receives
// newline framed event records and appends them to the log file until the
// producer closes the stream.
package tasklog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	clog "github.com/charmbracelet/log"

	"github.com/ivtomov/task-manager/internal/pipe"
	"github.com/ivtomov/task-manager/internal/store"
	"github.com/ivtomov/task-manager/internal/system"
)

// State is the lifecycle of a Logger.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Logger appends every record received from a stream to a log file.
type Logger struct {
	path    string
	opts    options
	state   atomic.Int32
	records atomic.Int64
}

// New returns a Logger writing to path.
func New(path string, opts ...Option) *Logger {
	return &Logger{path: path, opts: buildOptions(opts)}
}

// State returns the current lifecycle state.
func (l *Logger) State() State { return State(l.state.Load()) }

// Records returns the number of records appended so far.
func (l *Logger) Records() int { return int(l.records.Load()) }

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Run consumes src until end of stream. Each complete record is written
// before the next Receive. An unterminated trailing record is written while
// draining. Open, append and receive failures end the run with an error.
func (l *Logger) Run(src pipe.Receiver) error {
	log := l.opts.log
	f, err := store.OpenLog(l.path, l.opts.sync)
	if err != nil {
		l.setState(StateTerminated)
		return fmt.Errorf("open log file: %w", err)
	}
	l.setState(StateRunning)
	log.Debug("logger running", "file", l.path)

	var pending []byte
	for {
		msg, err := src.Receive()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = f.Close()
			l.setState(StateTerminated)
			return fmt.Errorf("receive: %w", err)
		}
		pending = append(pending, msg...)
		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			if err := l.append(f, pending[:i]); err != nil {
				_ = f.Close()
				l.setState(StateTerminated)
				return err
			}
			pending = pending[i+1:]
		}
	}

	l.setState(StateDraining)
	var drainErr error
	if len(pending) > 0 {
		drainErr = l.append(f, pending)
	}
	if err := f.Close(); err != nil && drainErr == nil {
		drainErr = fmt.Errorf("close log file: %w", err)
	}
	l.setState(StateTerminated)
	log.Debug("logger terminated", "records", l.Records(), "err", drainErr)
	return drainErr
}

func (l *Logger) append(f *store.LogFile, rec []byte) error {
	if err := f.Append(rec); err != nil {
		return fmt.Errorf("append log file: %w", err)
	}
	l.records.Add(1)
	return nil
}

func (l *Logger) setState(s State) { l.state.Store(int32(s)) }

type options struct {
	sync     bool
	capacity int
	log      *clog.Logger
	fatal    func(error)
}

// Option configures a Logger and the sessions that run it.
type Option func(*options)

// WithSync fsyncs the log file after every record.
func WithSync(on bool) Option { return func(o *options) { o.sync = on } }

// WithCapacity sets the in-process channel buffer.
func WithCapacity(n int) Option { return func(o *options) { o.capacity = n } }

// WithLogger sets the diagnostics logger.
func WithLogger(l *clog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithFatal replaces the handler invoked when a running session fails.
// The default logs the error and exits the process with status 1.
func WithFatal(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.fatal = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		capacity: pipe.DefaultCapacity,
		log:      system.Component("logger"),
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.fatal == nil {
		log := o.log
		o.fatal = func(err error) {
			log.Fatal("logger failed", "err", err)
		}
	}
	return o
}
