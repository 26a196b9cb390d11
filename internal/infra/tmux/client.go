// Package tmux provides tmux session management.
package tmux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/thinktodo/tt/internal/domain"
)

// ExecFunc is the function signature for syscall.Exec.
// It is used to allow testing of the Attach method.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Client manages tmux sessions on the default tmux server, so worker
// sessions remain visible to the operator's own tmux. It holds no state;
// every call shells out to tmux.
type Client struct {
	execFunc ExecFunc
}

// NewClient creates a new tmux client.
func NewClient() *Client {
	return &Client{execFunc: syscall.Exec}
}

// SetExecFunc sets the exec function for testing purposes.
func (c *Client) SetExecFunc(fn ExecFunc) {
	c.execFunc = fn
}

// Ensure Client implements domain.SessionManager.
var _ domain.SessionManager = (*Client)(nil)

// Start creates a detached session running the command.
// A "duplicate session" failure is downgraded to success: a second dispatch
// to the same agent name while the first is alive must be a no-op.
func (c *Client) Start(ctx context.Context, opts domain.StartSessionOptions) error {
	args := []string{
		"new-session",
		"-d",
		"-s", opts.Name,
	}
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	if opts.Command != "" {
		args = append(args, opts.Command)
	}

	cmd := exec.CommandContext(ctx, "tmux", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if strings.Contains(string(out), "duplicate session") {
			return nil
		}
		return fmt.Errorf("start session %q: %w: %s: %s",
			opts.Name, domain.ErrSessionRejected, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Kill terminates a session. Errors are swallowed: the session may already
// be gone, or the tmux server may not be running at all.
func (c *Client) Kill(name string) {
	_ = exec.Command("tmux", "kill-session", "-t", name).Run()
}

// IsRunning checks if a session is live. Any inability to query (tmux
// missing, no server socket) reads as false.
func (c *Client) IsRunning(name string) bool {
	return exec.Command("tmux", "has-session", "-t", name).Run() == nil
}

// Display shows an ephemeral message in a live session's status line.
func (c *Client) Display(name, text string) error {
	cmd := exec.Command("tmux", "display-message", "-t", name, text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("display message in %q: %w: %s: %s",
			name, domain.ErrSessionRejected, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Attach replaces the current process with an attached tmux session.
func (c *Client) Attach(name string) error {
	if !c.IsRunning(name) {
		return domain.ErrNoSession
	}

	tmuxPath, err := exec.LookPath("tmux")
	if err != nil {
		return fmt.Errorf("find tmux: %w", err)
	}

	argv := []string{"tmux", "attach-session", "-t", name}
	if err := c.execFunc(tmuxPath, argv, os.Environ()); err != nil {
		return fmt.Errorf("attach session: %w", err)
	}

	// Unreachable when execFunc is syscall.Exec.
	return nil
}
