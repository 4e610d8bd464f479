package state

import "errors"

// ErrUnmatchedGroupTag is the sticky structural failure raised by an
// EndGroup call that does not pair with a BeginGroup of the same kind.
var ErrUnmatchedGroupTag = errors.New("unmatched group tag")
