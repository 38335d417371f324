// Package schema defines the domain DTOs the bridge accepts and returns,
// together with their validation rules. DTOs are validated before any
// network call toward the CRM is made.
package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// MinLimit and MaxLimit bound the per-page size of list operations.
	MinLimit = 1
	MaxLimit = 100
	// DefaultLimit and DefaultPage apply when a list query leaves them unset.
	DefaultLimit = 20
	DefaultPage  = 1
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError reports a DTO that failed validation, with field-level
// messages. It is returned to callers before any CRM call is attempted.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s (%s)", e.Message, strings.Join(names, ", "))
}

// result accumulates field errors during validation.
type result struct {
	errors map[string]string
}

func (r *result) add(field, message string) {
	if r.errors == nil {
		r.errors = make(map[string]string)
	}
	r.errors[field] = message
}

// err returns nil when no field errors were recorded, otherwise a
// *ValidationError describing subject.
func (r *result) err(subject string) error {
	if len(r.errors) == 0 {
		return nil
	}
	return &ValidationError{Message: "invalid " + subject, Fields: r.errors}
}

func validEmail(s string) bool { return emailPattern.MatchString(s) }

// checkPage validates limit/page bounds shared by all list queries.
// Zero values are allowed; Normalize fills in the defaults.
func checkPage(r *result, limit, page int) {
	if limit != 0 && (limit < MinLimit || limit > MaxLimit) {
		r.add("limit", fmt.Sprintf("must be between %d and %d", MinLimit, MaxLimit))
	}
	if page != 0 && page < 1 {
		r.add("page", "must be at least 1")
	}
}
