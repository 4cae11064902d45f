package board

import (
	"errors"
	"fmt"

	"github.com/nfrund/signupboard/internal/activityapi"
	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

// ValidationError reports input that was rejected before any request was made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return boardview.MsgMissingInput
}

// LoadError records why the initial fetch of the activity collection failed.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load activities: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Reason is the text shown after "Could not load activities: ".
func (e *LoadError) Reason() string {
	var (
		reqErr *activityapi.RequestError
		netErr *activityapi.NetworkError
	)
	switch {
	case errors.As(e.Err, &reqErr):
		if reqErr.Message != "" {
			return reqErr.Message
		}
		return fmt.Sprintf("Failed to load activities (HTTP %d)", reqErr.Status)
	case errors.As(e.Err, &netErr):
		return "Failed to reach the activities service"
	case errors.Is(e.Err, activityapi.ErrMalformedResponse):
		return "Malformed response from the activities service"
	default:
		return e.Err.Error()
	}
}
