package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line with elapsed time while a slow stage such
// as Graphviz layout runs. It stops on stop or when its context ends.
type spinner struct {
	w      io.Writer
	label  string
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	width int
}

func startSpinner(ctx context.Context, w io.Writer, label string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:      w,
		label:  label,
		parent: ctx,
		ctx:    sctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	start := time.Now()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			elapsed := time.Since(start).Truncate(100 * time.Millisecond)
			line := styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]) + " " +
				StyleDim.Render(fmt.Sprintf("%s %s", s.label, elapsed))
			s.mu.Lock()
			fmt.Fprint(s.w, "\r"+line)
			s.width = max(s.width, lipgloss.Width(line))
			s.mu.Unlock()
		}
	}
}

// stop ends the animation and clears the line. It may be called more than
// once.
func (s *spinner) stop() {
	s.cancel()
	<-s.done
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// cancelled reports whether the caller's context ended, as opposed to a
// normal stop.
func (s *spinner) cancelled() bool {
	return s.parent.Err() != nil
}
