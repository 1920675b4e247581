// Package pipe provides the one-way byte stream that connects the task
// controller to the log writer. A stream has exactly one sender and one
// receiver; closing the sending side is the only end-of-stream signal.
package pipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

var (
	// ErrWriterClosed is returned by Send after CloseWriter.
	ErrWriterClosed = errors.New("pipe: send on closed writer")
	// ErrReaderClosed is returned by Send once the receiving side has failed.
	ErrReaderClosed = errors.New("pipe: reader closed")
	// ErrConcurrentSend is returned when a second goroutine sends while
	// another send or close is in progress.
	ErrConcurrentSend = errors.New("pipe: concurrent senders are not supported")
)

// DefaultCapacity is the number of messages buffered before Send blocks.
const DefaultCapacity = 64

// Sender is the writing half of a stream.
type Sender interface {
	Send(p []byte) error
	CloseWriter() error
}

// Receiver is the reading half of a stream. Receive returns io.EOF once the
// writer has closed and every buffered message was delivered.
type Receiver interface {
	Receive() ([]byte, error)
}

// Channel is an in-process stream backed by a buffered Go channel.
type Channel struct {
	data chan []byte

	// busy guards the single-producer contract for Send and CloseWriter.
	busy   atomic.Bool
	closed bool

	broken     chan struct{}
	brokenOnce sync.Once
	brokenErr  error
}

// New creates a Channel buffering up to capacity messages.
// A non-positive capacity selects DefaultCapacity.
func New(capacity int) *Channel {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Channel{
		data:   make(chan []byte, capacity),
		broken: make(chan struct{}),
	}
}

// Send enqueues a copy of p for the receiver, blocking while the buffer is
// full. Empty writes are no-ops.
func (c *Channel) Send(p []byte) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrConcurrentSend
	}
	defer c.busy.Store(false)

	if c.closed {
		return ErrWriterClosed
	}
	select {
	case <-c.broken:
		return c.brokenErr
	default:
	}
	if len(p) == 0 {
		return nil
	}
	msg := bytes.Clone(p)
	select {
	case <-c.broken:
		return c.brokenErr
	case c.data <- msg:
		return nil
	}
}

// CloseWriter signals that no more data will be sent. Calling it again is a
// no-op.
func (c *Channel) CloseWriter() error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrConcurrentSend
	}
	defer c.busy.Store(false)

	if !c.closed {
		c.closed = true
		close(c.data)
	}
	return nil
}

// Receive blocks until a message is available or the writer has closed.
func (c *Channel) Receive() ([]byte, error) {
	msg, ok := <-c.data
	if !ok {
		return nil, io.EOF
	}
	return msg, nil
}

// CloseReader marks the receiving side as gone. Pending and future sends
// fail with an error wrapping ErrReaderClosed and cause.
func (c *Channel) CloseReader(cause error) {
	c.brokenOnce.Do(func() {
		if cause == nil {
			c.brokenErr = ErrReaderClosed
		} else {
			c.brokenErr = fmt.Errorf("%w: %w", ErrReaderClosed, cause)
		}
		close(c.broken)
	})
}
