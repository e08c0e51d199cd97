package pipehash

import "errors"

// ErrUnknownReference is returned when a descriptor references another
// object's handle and that handle has not been recorded (§4.1
// "Dependency-folding").
var ErrUnknownReference = errors.New("pipehash: unknown dependency reference")

// ErrUnsupportedExtension is returned when a descriptor's extension chain
// contains a record this system does not recognize. This is the intentional
// failure path exercised by tests (§4.1 "Extension-chain handling").
var ErrUnsupportedExtension = errors.New("pipehash: unsupported extension in chain")
