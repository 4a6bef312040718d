package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskman/internal/service"
)

// ParseTaskRef parses a 1-based task position.
// Surrounding spaces are ignored. An optional leading '+' is accepted;
// anything else that is not all digits is ErrInvalidTaskRef, and zero is
// ErrTaskRefOutOfRange.
func ParseTaskRef(s string) (int, error) {
	ref := strings.TrimSpace(s)
	ref = strings.TrimPrefix(ref, "+")

	if strings.HasPrefix(ref, "-") && isAllDigits(ref[1:]) {
		return 0, fmt.Errorf("%w: %s", ErrTaskRefOutOfRange, strings.TrimSpace(s))
	}
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaskRef, s)
	}

	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTaskRef, ref)
	}
	if num < 1 {
		return 0, fmt.Errorf("%w: %d", ErrTaskRefOutOfRange, num)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// TaskAt returns the task displayed at 1-based position num.
func (s *Session) TaskAt(num int) (service.Task, error) {
	if num < 1 || num > len(s.Tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrTaskRefOutOfRange, num)
	}
	return s.Tasks[num-1], nil
}

// ResolveTaskRef parses ref and looks it up in the displayed list.
func (s *Session) ResolveTaskRef(ref string) (service.Task, error) {
	num, err := ParseTaskRef(ref)
	if err != nil {
		return service.Task{}, err
	}
	return s.TaskAt(num)
}
