//go:build !windows

package runner

import (
	"syscall"
	"time"

	"gitlab.com/tozd/go/errors"
)

// Start starts the child process in its own process group.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmd := r.newCmd()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return errors.Errorf("starting %s: %w", r.command, err)
	}
	r.cmd = cmd
	r.err = nil
	r.done = make(chan struct{})
	go r.wait(cmd, r.done)
	return nil
}

// Stop sends SIGTERM to the process group and kills it after a timeout.
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

	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err == nil {
		syscall.Kill(-pgid, syscall.SIGTERM)
	} else {
		cmd.Process.Signal(syscall.SIGTERM)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		if err == nil {
			syscall.Kill(-pgid, syscall.SIGKILL)
		} else {
			cmd.Process.Kill()
		}
		<-done
	}
	return nil
}
