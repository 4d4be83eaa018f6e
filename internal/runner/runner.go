// Package runner runs the follow-up command of an extraction, restarting it
// when a newer extraction finishes while it is still running.
package runner

import (
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// Runner manages one child process.
type Runner struct {
	command string
	args    []string
	workDir string
	env     []string

	// Stdout and Stderr default to the process's own.
	Stdout io.Writer
	Stderr io.Writer

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// New creates a runner for command.
func New(command string, args []string, workDir string) *Runner {
	return &Runner{
		command: command,
		args:    args,
		workDir: workDir,
	}
}

// Parse creates a runner from a command line split on whitespace
// ("pnpm run docs").
func Parse(line, workDir string) (*Runner, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	return New(fields[0], fields[1:], workDir), nil
}

func (r *Runner) String() string {
	return strings.Join(append([]string{r.command}, r.args...), " ")
}

// SetEnv sets extra KEY=value pairs for the next start.
func (r *Runner) SetEnv(kv ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.env = kv
}

func (r *Runner) newCmd() *exec.Cmd {
	cmd := exec.Command(r.command, r.args...)
	if r.workDir != "" {
		cmd.Dir = r.workDir
	}
	cmd.Env = append(os.Environ(), r.env...)
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// wait reaps cmd in the background and records its exit error.
func (r *Runner) wait(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()
	r.mu.Lock()
	if r.cmd == cmd {
		r.err = err
	}
	r.mu.Unlock()
	close(done)
}

// Restart stops the running process, if any, and starts a new one.
func (r *Runner) Restart() error {
	if err := r.Stop(); err != nil {
		return err
	}
	return r.Start()
}

// Wait blocks until the child process exits and returns its exit error.
func (r *Runner) Wait() error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return errors.Errorf("%s: %w", r.command, r.err)
	}
	return nil
}

// Running returns true if the child process is running.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}
