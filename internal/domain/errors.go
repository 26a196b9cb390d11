package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskExists       = errors.New("task already exists")
	ErrNoActiveTask     = errors.New("no active task for agent")
	ErrLogNotFound      = errors.New("log file not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrRigNotFound      = errors.New("rig not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrNotInitialized   = errors.New("tt not initialized (run 'tt init' first)")
	ErrNotGitRepository = errors.New("not a git repository")
	ErrSessionRejected  = errors.New("session manager rejected the command")
	ErrNoSession        = errors.New("no running session")
)
