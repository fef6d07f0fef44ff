package connection

import (
	"log"
	"os"
	"os/signal"
)

// WatchSignals closes every tracked connection on the first of sigs
// and then calls onSignal, which usually exits the process. Watching
// stops once the shutdown completes through Close.
func (s *Shutdown) WatchSignals(onSignal func(os.Signal), sigs ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		defer signal.Stop(ch)
		s.watch(ch, onSignal)
	}()
}

func (s *Shutdown) watch(ch <-chan os.Signal, onSignal func(os.Signal)) {
	select {
	case sig := <-ch:
		log.Printf("received %s, shutting down...", sig)
		s.mu.Lock()
		s.signal = sig
		s.mu.Unlock()

		if err := s.Close(); err != nil {
			log.Println(err)
		}
		if onSignal != nil {
			onSignal(sig)
		}

	case <-s.done:
	}
}

// Signal returns the signal that started the shutdown, or nil.
func (s *Shutdown) Signal() os.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signal
}
