package domain

// Status represents the lifecycle state of a task.
// The lowercase tokens are a wire contract: every collaborator reading the
// store (CLI, web API, monitor) matches on these exact strings.
type Status string

const (
	StatusOpen       Status = "open"        // Created, awaiting dispatch
	StatusInProgress Status = "in_progress" // Agent working
	StatusClosed     Status = "closed"      // Finished or force-closed
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusClosed}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for closed tasks. Note that dispatch deliberately
// does not gate on this: re-slinging a closed task reopens it, matching the
// established behavior of the store's other writers.
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}
