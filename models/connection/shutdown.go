package connection

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"
)

type ShutdownState uint8

const (
	ShutdownArmed ShutdownState = iota
	ShutdownClosing
	ShutdownClosed
)

func (s ShutdownState) String() string {
	switch s {
	case ShutdownArmed:
		return "armed"
	case ShutdownClosing:
		return "closing"
	case ShutdownClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Shutdown holds every live connection of the process so that both the
// normal exit path and the interrupt path can close them. It moves
// armed -> closing -> closed exactly once.
type Shutdown struct {
	mu      sync.Mutex
	state   ShutdownState
	closers map[string]io.Closer
	done    chan struct{}
	signal  os.Signal
}

func NewShutdown() *Shutdown {
	initMapSize := 3

	return &Shutdown{
		state:   ShutdownArmed,
		closers: make(map[string]io.Closer, initMapSize),
		done:    make(chan struct{}),
	}
}

func (s *Shutdown) State() ShutdownState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Shutdown) Done() <-chan struct{} {
	return s.done
}

// Track registers c under name. Once the shutdown has started c is
// closed right away and false is returned.
func (s *Shutdown) Track(name string, c io.Closer) bool {
	s.mu.Lock()
	if s.state != ShutdownArmed {
		s.mu.Unlock()
		_ = c.Close()
		return false
	}
	s.closers[name] = c
	s.mu.Unlock()
	return true
}

func (s *Shutdown) Untrack(name string) {
	s.mu.Lock()
	delete(s.closers, name)
	s.mu.Unlock()
}

// Close closes every tracked connection. Only the first call does the
// work; later calls wait for it and return nil.
func (s *Shutdown) Close() error {
	s.mu.Lock()
	if s.state != ShutdownArmed {
		s.mu.Unlock()
		<-s.done
		return nil
	}
	s.state = ShutdownClosing
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for name, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Printf("closed: %s", name)
	}

	s.mu.Lock()
	s.state = ShutdownClosed
	s.mu.Unlock()
	close(s.done)

	return errors.Join(errs...)
}
