package recorder

import "errors"

// ErrMalformedDescriptor is returned when a descriptor is structurally
// invalid independent of hashing (e.g. a shader stage naming an empty entry
// point). The intern table is left unchanged.
var ErrMalformedDescriptor = errors.New("recorder: malformed descriptor")

// ErrSingletonConflict is returned when a second, differently-hashed
// application-info or physical-device-features record is recorded against a
// Recorder that already holds one. Each Recorder captures a single GPU
// session, so at most one of each may ever be interned.
var ErrSingletonConflict = errors.New("recorder: singleton record already set with different content")
