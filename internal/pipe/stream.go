package pipe

import (
	"bytes"
	"errors"
	"io"
	"sync/atomic"
	"syscall"
)

// readChunk matches the read size of the log writer; records larger than
// this arrive in several pieces and are reassembled by the reader.
const readChunk = 1024

// StreamReceiver adapts an io.Reader (typically a process stdin) to Receiver.
type StreamReceiver struct {
	r   io.Reader
	buf []byte
}

// NewStreamReceiver wraps r.
func NewStreamReceiver(r io.Reader) *StreamReceiver {
	return &StreamReceiver{r: r, buf: make([]byte, readChunk)}
}

// Receive returns the next chunk read from the underlying reader.
func (s *StreamReceiver) Receive() ([]byte, error) {
	for {
		n, err := s.r.Read(s.buf)
		if n > 0 {
			return bytes.Clone(s.buf[:n]), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// StreamSender adapts an io.WriteCloser (typically a child stdin pipe) to
// Sender.
type StreamSender struct {
	w      io.WriteCloser
	busy   atomic.Bool
	closed bool
}

// NewStreamSender wraps w. CloseWriter closes w.
func NewStreamSender(w io.WriteCloser) *StreamSender {
	return &StreamSender{w: w}
}

// Send writes p in full.
func (s *StreamSender) Send(p []byte) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrConcurrentSend
	}
	defer s.busy.Store(false)

	if s.closed {
		return ErrWriterClosed
	}
	if len(p) == 0 {
		return nil
	}
	if _, err := s.w.Write(p); err != nil {
		if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, syscall.EPIPE) {
			return errors.Join(ErrReaderClosed, err)
		}
		return err
	}
	return nil
}

// CloseWriter closes the underlying writer once.
func (s *StreamSender) CloseWriter() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrConcurrentSend
	}
	defer s.busy.Store(false)

	if s.closed {
		return nil
	}
	s.closed = true
	return s.w.Close()
}
