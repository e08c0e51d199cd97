package resource

import "strconv"

// Handle is a caller-supplied opaque identifier for an object, scoped to a
// single recorder's lifetime. It has no meaning to the archive or the
// replayer; it exists only so the application can tell the recorder which
// previously-recorded object a new descriptor depends on.
type Handle uint64

// Hash is a 64-bit content hash. Once an object is recorded, its Hash IS its
// durable identity: it is what gets stored in the archive, what dependency
// references fold into, and what a replayed object is re-verified against.
type Hash uint64

// String renders the hash as a decimal string, the wire form used in the
// serialized JSON document so parsers without 64-bit integers stay correct.
func (h Hash) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// ParseHash parses the decimal wire form back into a Hash.
func ParseHash(s string) (Hash, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Hash(v), nil
}

// NilHash is the zero value, used to mark an absent optional dependency
// (e.g. GraphicsPipeline's base pipeline).
const NilHash Hash = 0
