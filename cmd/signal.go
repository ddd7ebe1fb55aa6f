package cmd

import (
	"os"
	"os/signal"
)

// Stopper is anything a signal can shut down, such as a console.Console.
type Stopper interface {
	Shutdown()
}

// shutdownOnInterrupt calls s.Shutdown on the first SIGINT. The returned
// func stops listening; it reports whether the interrupt arrived.
func shutdownOnInterrupt(s Stopper) (stop func() bool) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	done := make(chan struct{})
	fired := make(chan struct{})
	go func() {
		select {
		case <-sig:
			close(fired)
			s.Shutdown()
		case <-done:
		}
	}()
	return func() bool {
		signal.Stop(sig)
		close(done)
		select {
		case <-fired:
			return true
		default:
			return false
		}
	}
}

// needsFinalFrame reports whether the last screen still has to be shown once
// Run returns. Reaching the cycle limit already drew it.
func needsFinalFrame(err error, interrupted bool, limit, cycles uint64) bool {
	return err != nil || interrupted || limit == 0 || cycles < limit
}
