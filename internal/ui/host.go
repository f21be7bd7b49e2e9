package ui

import "sync/atomic"

// screen hosts the thumbnail surface. It is destroyed when the program exits.
type screen struct {
	destroyed atomic.Bool
}

func (s *screen) Destroyed() bool { return s.destroyed.Load() }

func (s *screen) destroy() { s.destroyed.Store(true) }
