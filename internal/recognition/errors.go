package recognition

import "errors"

// Domain errors for recognition operations.
var (
	ErrInvalidLabel  = errors.New("unknown emotion label")
	ErrEmptyText     = errors.New("text must not be empty")
	ErrNotReady      = errors.New("classifier not ready")
	ErrTrainFailed   = errors.New("classifier training failed")
	ErrBackendFailed = errors.New("classifier backend failed")
)
