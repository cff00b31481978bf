package pipeline

import (
	"fmt"

	"codeberg.org/snonux/phonobridge/internal/registry"
)

// Stage names the pipeline stage an outcome belongs to
type Stage string

const (
	StageSourceResolve     Stage = "SOURCE_RESOLVE"
	StageCorrespondenceMap Stage = "CORRESPONDENCE_MAP"
	StageTargetResolve     Stage = "TARGET_RESOLVE"
)

// UnknownWordError reports a dictionary miss with no fallback model in
// play. It is an expected outcome for rare words, not a fault.
type UnknownWordError struct {
	Word     string
	Language string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("word %q not in the %s dictionary", e.Word, e.Language)
}

// NoModelAvailableError reports that the registry has nothing compatible
// for a required language and direction. The request fails cleanly with
// the stage at which it occurred.
type NoModelAvailableError struct {
	Language  string
	Direction registry.Direction
	Stage     Stage
	Err       error
}

func (e *NoModelAvailableError) Error() string {
	msg := fmt.Sprintf("no compatible %s model for %s at %s", e.Direction, e.Language, e.Stage)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NoModelAvailableError) Unwrap() error { return e.Err }
