package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation shown while work runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows a progress indicator on stderr while a pipeline run or an
// export is in flight. It stops on its own when its context is cancelled.
type Spinner struct {
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}

	mu       sync.Mutex
	message  string
	width    int // widest line drawn so far, for clearing
	started  time.Time
	running  bool
	finished bool
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, out io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     out,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the spinner animation. Runs longer than a second show the
// elapsed time after the message.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running || s.finished {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.started = time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the message shown next to the animation.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.message
	if elapsed := time.Since(s.started); elapsed >= time.Second {
		text += fmt.Sprintf(" (%s)", elapsed.Round(time.Second))
	}
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(text)
	s.width = max(s.width, len(text)+2)
	fmt.Fprintf(s.out, "\r%s", line)
}

// Stop stops the spinner and clears the line. Calling Stop more than once,
// or on a spinner that never started, is a no-op.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	running := s.running
	s.mu.Unlock()

	s.cancel()
	close(s.done)
	if running {
		<-s.stopped
	}
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+2))
}

// StopWithError stops the spinner and prints message as an error in its
// place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	newPrinter(s.out).error("%s", message)
}

// Cancelled reports whether the spinner's parent context was cancelled.
// Stop does not count as cancellation.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	finished := s.finished
	s.mu.Unlock()
	return !finished && s.ctx.Err() != nil
}
