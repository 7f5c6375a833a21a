package menu

import "fmt"

// MenuLoadError reports that the source behind one menu mode is missing or
// malformed. Other modes keep working and the caller may retry.
type MenuLoadError struct {
	Mode   Mode
	Source string
	Err    error
}

func (e *MenuLoadError) Error() string {
	return fmt.Sprintf("menu %q unavailable (%s): %v", e.Mode, e.Source, e.Err)
}

func (e *MenuLoadError) Unwrap() error { return e.Err }

// Retryable is always true; load failures are transient from the caller's view.
func (e *MenuLoadError) Retryable() bool { return true }
