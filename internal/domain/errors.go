package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

// ValidationError reports malformed input. Field names the offending input,
// e.g. "details[2].votes".
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError is returned when requested tables are already held by
// another delegate.
type ConflictError struct {
	Tables []int
}

func (e *ConflictError) Error() string {
	if len(e.Tables) == 0 {
		return "table already assigned to another delegate"
	}

	tables := append([]int(nil), e.Tables...)
	sort.Ints(tables)
	nums := make([]string, len(tables))
	for i, t := range tables {
		nums[i] = strconv.Itoa(t)
	}
	return fmt.Sprintf("table already assigned to another delegate: %s", strings.Join(nums, ", "))
}

func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
