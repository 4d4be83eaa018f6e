//go:build windows

package runner

import (
	"time"

	"gitlab.com/tozd/go/errors"
)

// Start starts the child process.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmd := r.newCmd()
	if err := cmd.Start(); err != nil {
		return errors.Errorf("starting %s: %w", r.command, err)
	}
	r.cmd = cmd
	r.err = nil
	r.done = make(chan struct{})
	go r.wait(cmd, r.done)
	return nil
}

// Stop kills the child process. Windows has no SIGTERM, so there is no
// graceful phase.
func (r *Runner) Stop() error {
	r.mu.Lock()
	cmd, done := r.cmd, r.done
	r.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	default:
	}

	cmd.Process.Kill()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		<-done
	}
	return nil
}
