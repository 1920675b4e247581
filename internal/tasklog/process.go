package tasklog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync/atomic"

	"github.com/ivtomov/task-manager/internal/pipe"
)

// ProcessConfig describes how to launch the child log writer.
type ProcessConfig struct {
	// Path is the executable, usually os.Executable().
	Path string
	// Args are passed to the executable, e.g. "logger", "--file", name.
	Args []string
	// Env is appended to the parent environment.
	Env []string
	// Stderr receives the child's diagnostics. Defaults to os.Stderr.
	Stderr io.Writer
}

// processSession feeds a child process through its stdin. The child is
// expected to call Serve on that stream.
type processSession struct {
	*pipe.StreamSender
	cmd          *exec.Cmd
	writerClosed atomic.Bool
	done         chan struct{}
	err          error
}

// SpawnProcess starts the child described by pc. The child is not bound to a
// context: only closing the writer ends it. If it exits with a failure
// before CloseWriter, the fatal handler runs.
func SpawnProcess(pc ProcessConfig, opts ...Option) (Session, error) {
	if pc.Path == "" {
		return nil, errors.New("logger process: empty executable path")
	}
	o := buildOptions(opts)

	cmd := exec.Command(pc.Path, pc.Args...)
	cmd.Env = append(os.Environ(), pc.Env...)
	stderr := pc.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdout = stderr
	cmd.Stderr = stderr
	w, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("logger process: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("logger process: %w", err)
	}
	o.log.Debug("logger process started", "pid", cmd.Process.Pid)

	s := &processSession{
		StreamSender: pipe.NewStreamSender(w),
		cmd:          cmd,
		done:         make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		if err := cmd.Wait(); err != nil {
			s.err = fmt.Errorf("logger process: %w", err)
			if !s.writerClosed.Load() {
				o.fatal(s.err)
			}
			return
		}
		o.log.Debug("logger process exited")
	}()
	return s, nil
}

// CloseWriter closes the child's stdin, its end-of-stream signal.
func (s *processSession) CloseWriter() error {
	s.writerClosed.Store(true)
	return s.StreamSender.CloseWriter()
}

// Wait blocks until the child has exited and reports its exit status.
func (s *processSession) Wait() error {
	<-s.done
	return s.err
}

// Serve is the child side of a process session: it runs a Logger for path
// over r (the process stdin) until r reports end of stream.
func Serve(r io.Reader, path string, opts ...Option) error {
	return New(path, opts...).Run(pipe.NewStreamReceiver(r))
}
