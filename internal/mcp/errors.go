package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
	"github.com/rpggio/stint/internal/domain/tracker"
	"github.com/rpggio/stint/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, tracker.ErrUnknownActivity):
		return &APIError{Code: "UNKNOWN_ACTIVITY", Message: err.Error(), RecoveryHint: "Create the activity first with create_activity"}
	case errors.Is(err, timeline.ErrNothingToFinish):
		return &APIError{Code: "NOTHING_TO_FINISH", Message: err.Error(), RecoveryHint: "Start an activity before finishing one"}
	case errors.Is(err, catalog.ErrMalformedPath):
		return &APIError{Code: "MALFORMED_PATH", Message: err.Error(), RecoveryHint: "Use an absolute path such as /work/project-x"}
	case errors.Is(err, catalog.ErrMissingAncestor):
		return &APIError{Code: "MISSING_ANCESTOR", Message: err.Error(), RecoveryHint: "Pass create_parents to create missing ancestors"}
	case errors.Is(err, timeline.ErrClockSkew):
		return &APIError{Code: "CLOCK_SKEW", Message: err.Error()}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error()}
	default:
		return err
	}
}
