package testrun

import "fmt"

// ProgressStatus is the state of one project's generation.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// ProgressEvent reports a status change for one project.
type ProgressEvent struct {
	Project string
	Status  ProgressStatus
	Path    string // written file, set on completion
	Message string // error text, set on failure
}

// FormatProgress formats a ProgressEvent as a human-readable status line.
func FormatProgress(event ProgressEvent) string {
	switch event.Status {
	case ProgressPending:
		return fmt.Sprintf("  ○ %s (pending)", event.Project)
	case ProgressWorking:
		return fmt.Sprintf("  ● %s...", event.Project)
	case ProgressComplete:
		return fmt.Sprintf("  ✓ %s -> %s", event.Project, event.Path)
	case ProgressFailed:
		return fmt.Sprintf("  ✗ %s failed: %s", event.Project, event.Message)
	default:
		return fmt.Sprintf("  ? %s (unknown status)", event.Project)
	}
}
