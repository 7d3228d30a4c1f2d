package job

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	ResourceOrganization = "organization"
	ResourceMembership   = "membership"
)

// UpstreamLookupError reports a failed or not-found collaborator lookup.
// Key is the orgId or userId that was being resolved.
type UpstreamLookupError struct {
	Resource string
	Key      string
	Err      error
}

func (e *UpstreamLookupError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s lookup failed for %q: %v", e.Resource, e.Key, e.Err)
	}
	return fmt.Sprintf("%s lookup failed for %q", e.Resource, e.Key)
}

func (e *UpstreamLookupError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
