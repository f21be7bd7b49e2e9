package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// postedMsg carries a closure onto the Update goroutine.
type postedMsg struct {
	fn func()
}

// programPoster implements thumbnail.Poster on top of Program.Send.
//
// Post never blocks: closures are queued and a single goroutine feeds them to
// the program in order. Calling Send directly from Update would deadlock.
type programPoster struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func newProgramPoster() *programPoster {
	return &programPoster{wake: make(chan struct{}, 1)}
}

func (p *programPoster) Post(fn func()) {
	p.mu.Lock()
	p.queue = append(p.queue, fn)
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// run delivers queued closures through send until ctx is done.
func (p *programPoster) run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.wake:
		}

		p.mu.Lock()
		batch := p.queue
		p.queue = nil
		p.mu.Unlock()

		for _, fn := range batch {
			send(postedMsg{fn: fn})
		}
	}
}
