package tasklog

import (
	"golang.org/x/sync/errgroup"

	"github.com/ivtomov/task-manager/internal/pipe"
)

// Session is the producer-facing end of a running Logger: records go in
// through Send, CloseWriter ends the stream and Wait blocks until the Logger
// has terminated.
type Session interface {
	pipe.Sender
	Wait() error
}

// localSession runs the Logger on its own goroutine behind a pipe.Channel.
type localSession struct {
	*pipe.Channel
	logger *Logger
	group  errgroup.Group
}

// Spawn starts a Logger for path on a new goroutine and returns its session.
func Spawn(path string, opts ...Option) Session {
	l := New(path, opts...)
	s := &localSession{
		Channel: pipe.New(l.opts.capacity),
		logger:  l,
	}
	s.group.Go(func() error {
		err := l.Run(s.Channel)
		if err != nil {
			s.Channel.CloseReader(err)
			l.opts.fatal(err)
		}
		return err
	})
	return s
}

// Wait blocks until the Logger goroutine has exited.
func (s *localSession) Wait() error { return s.group.Wait() }

// Logger exposes the running Logger for inspection.
func (s *localSession) Logger() *Logger { return s.logger }
