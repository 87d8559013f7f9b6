package terminal

import (
	"bytes"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
)

type chunk struct {
	data []byte
	err  error
}

// SessionTty adapts a remote pty, such as an ssh session channel, to
// tcell.Tty. The underlying stream belongs to the caller: Close stops the
// tty but leaves the stream open.
type SessionTty struct {
	rw io.ReadWriter

	in      chan chunk
	closed  chan struct{}
	pumping sync.Once
	closing sync.Once

	// Read is only called from tcell's input goroutine.
	pending []byte
	readErr error

	mu   sync.Mutex
	stop chan struct{}
	size tcell.WindowSize
	cb   func()
}

func NewSessionTty(rw io.ReadWriter, cols, rows int) *SessionTty {
	return &SessionTty{
		rw:     rw,
		in:     make(chan chunk),
		closed: make(chan struct{}),
		size:   tcell.WindowSize{Width: cols, Height: rows},
	}
}

// Start begins delivering input. tcell calls it from Init and again after
// a Suspend.
func (t *SessionTty) Start() error {
	t.mu.Lock()
	if t.stop == nil {
		t.stop = make(chan struct{})
	}
	t.mu.Unlock()

	t.pumping.Do(func() { go t.pump() })
	return nil
}

// Stop makes a blocked Read return so tcell's input goroutine can exit.
func (t *SessionTty) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	return nil
}

func (t *SessionTty) Drain() error {
	return nil
}

func (t *SessionTty) Close() error {
	t.closing.Do(func() { close(t.closed) })
	return t.Stop()
}

func (t *SessionTty) pump() {
	buf := make([]byte, 4096)
	for {
		n, err := t.rw.Read(buf)
		select {
		case t.in <- chunk{data: bytes.Clone(buf[:n]), err: err}:
		case <-t.closed:
			return
		}
		if err != nil {
			return
		}
	}
}

func (t *SessionTty) Read(b []byte) (int, error) {
	if len(t.pending) == 0 {
		if t.readErr != nil {
			return 0, t.readErr
		}

		t.mu.Lock()
		stop := t.stop
		t.mu.Unlock()
		if stop == nil {
			return 0, io.EOF
		}

		select {
		case c := <-t.in:
			t.pending, t.readErr = c.data, c.err
		case <-stop:
			return 0, io.EOF
		}
	}

	n := copy(b, t.pending)
	t.pending = t.pending[n:]
	if n == 0 {
		return 0, t.readErr
	}
	return n, nil
}

func (t *SessionTty) Write(b []byte) (int, error) {
	return t.rw.Write(b)
}

func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.size, nil
}

func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cb = cb
}

// Resize records a new window size from the client and tells tcell.
func (t *SessionTty) Resize(cols, rows int) {
	t.mu.Lock()
	t.size = tcell.WindowSize{Width: cols, Height: rows}
	cb := t.cb
	t.mu.Unlock()

	if cb != nil {
		cb()
	}
}
