package attendance

import "errors"

var (
	// ErrInvalidState marking before the window opens, or an unknown event/student
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidInput missing or malformed event timestamps
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict the record changed between read and write; retry the toggle
	ErrConflict = errors.New("attendance record changed concurrently")
)
