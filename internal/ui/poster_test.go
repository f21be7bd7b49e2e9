package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgramPoster_DeliversInOrder(t *testing.T) {
	p := newProgramPoster()
	var ran []int
	for i := 1; i <= 3; i++ {
		i := i
		p.Post(func() { ran = append(ran, i) })
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan tea.Msg, 8)
	go p.run(ctx, func(msg tea.Msg) { got <- msg })

	for i := 0; i < 3; i++ {
		select {
		case msg := <-got:
			posted, ok := msg.(postedMsg)
			if !ok {
				t.Fatalf("message %d is %T, want postedMsg", i, msg)
			}
			posted.fn()
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d", i)
		}
	}

	if len(ran) != 3 || ran[0] != 1 || ran[2] != 3 {
		t.Fatalf("ran = %v, want [1 2 3]", ran)
	}
}

func TestProgramPoster_PostNeverBlocks(t *testing.T) {
	p := newProgramPoster()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			p.Post(func() {})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Post blocked without a running program")
	}
}
