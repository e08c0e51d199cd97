package replayer

import "errors"

// ErrHashMismatch is returned (and recorded against the offending object,
// never propagated out of Replay) when a delivered descriptor's recomputed
// hash disagrees with the hash recorded in the payload (§4.3
// "Re-verification").
var ErrHashMismatch = errors.New("replayer: recomputed hash does not match recorded hash")

// ErrUnresolvedDependency marks an object skipped because one of its
// dependencies was itself never successfully delivered (its own hash
// mismatched, its sink rejected it, or it was malformed).
var ErrUnresolvedDependency = errors.New("replayer: dependency was not accepted during replay")
