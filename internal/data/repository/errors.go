package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by lookups and ticket reads when nothing matches.
var ErrNotFound = errors.New("not found")

// ErrSeatsTaken is returned by CommitAtomically when at least one seat of the
// ticket is already occupied for the session. Nothing was written.
var ErrSeatsTaken = errors.New("seats already taken")

// SeatsTakenError carries the conflicting codes, when the store knows them.
type SeatsTakenError struct {
	SessionID string
	Codes     []string
}

func (e *SeatsTakenError) Error() string {
	if len(e.Codes) == 0 {
		return fmt.Sprintf("session %s: %s", e.SessionID, ErrSeatsTaken)
	}
	return fmt.Sprintf("session %s: %s: %s", e.SessionID, ErrSeatsTaken, strings.Join(e.Codes, ", "))
}

func (e *SeatsTakenError) Is(target error) bool {
	return target == ErrSeatsTaken
}
