package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"todoview/internal/service"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single task id argument.
//
// Ids are opaque, so any non-empty token without whitespace or control
// characters is accepted, except the dot segments "." and "..". Extra
// arguments are an error.
func ParseTaskID(args []string) (service.ID, error) {
	if len(args) == 0 {
		return "", ErrTaskIDRequired
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}

	id := args[0]
	if strings.TrimSpace(id) == "" {
		return "", ErrTaskIDRequired
	}
	if id == "." || id == ".." {
		return "", fmt.Errorf("invalid task id: %q", id)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", fmt.Errorf("invalid task id: %q", id)
		}
	}
	return service.ID(id), nil
}
