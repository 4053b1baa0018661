package convo

import "errors"

// ErrInvariant marks a task-lifecycle rule break. These are programming
// errors: the offending operation halts, the caller logs and refuses.
var ErrInvariant = errors.New("task invariant violation")

// ErrSequence marks a turn-alternation break (user and assistant turns must
// strictly alternate, starting with the assistant greeting).
var ErrSequence = errors.New("turn sequence violation")

// ErrSessionNotFound is returned for an unknown or already ended session id.
var ErrSessionNotFound = errors.New("session not found")
