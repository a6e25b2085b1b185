package core

import "errors"

var (
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrPublishConflict       = errors.New("another edition of this artefact is already published")
	ErrEditionImmutable      = errors.New("Published editions can't be edited")
	ErrCannotDeletePublished = errors.New("cannot delete published publication")
)
