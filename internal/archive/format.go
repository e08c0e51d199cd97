// Package archive implements the single-file, append-only binary archive
// that stores interned pipeline-state descriptors keyed by (kind, hash)
// (§4.4), plus the multi-writer concurrent scheme and merge built on top of
// it (§4.5, §4.6).
package archive

import (
	"encoding/binary"
	"errors"

	"github.com/gpucache/pipecache/internal/resource"
)

// magic identifies the archive file format. formatVersion follows it as a
// little-endian uint32; a mismatch is ErrUnsupportedVersion.
var magic = [12]byte{'P', 'I', 'P', 'E', 'C', 'A', 'C', 'H', 'E', 'F', 'O', 'Z'}

const formatVersion uint32 = 1

// headerSize is len(magic) + 4 bytes for the version field.
const headerSize = 12 + 4

// recordHeaderSize is the fixed on-disk size of one record's header:
// kind(4) + hash(8) + storedSize(4) + uncompressedSize(4) + flags(4) + crc32(4).
const recordHeaderSize = 4 + 8 + 4 + 4 + 4 + 4

// Flags controls how WriteEntry encodes a payload and how ReadEntry
// interprets one (§4.4 "Write flags" / "Read flags").
type Flags uint32

const (
	// FlagCompress deflates the payload with klauspost/compress/flate
	// before storing it.
	FlagCompress Flags = 1 << iota
	// FlagChecksum stores a crc32 of the stored (post-compression) bytes
	// and verifies it on read.
	FlagChecksum
	// FlagRaw marks a payload that is already in its final on-disk form:
	// WriteEntry stores it verbatim with no compression, and ReadEntry
	// returns the stored bytes untouched with no decompression. Used by
	// the Merger to copy records between archives byte-for-byte.
	FlagRaw
)

var (
	ErrNotFound           = errors.New("archive: entry not found")
	ErrChecksumMismatch   = errors.New("archive: checksum mismatch")
	ErrTruncated          = errors.New("archive: file truncated")
	ErrIO                 = errors.New("archive: i/o error")
	ErrUnsupportedVersion = errors.New("archive: unsupported format version")
	ErrBufferTooSmall     = errors.New("archive: destination buffer too small")
	ErrReadOnly           = errors.New("archive: archive is read-only")
)

type entryKey struct {
	kind resource.Kind
	hash resource.Hash
}

// recordHeader is the fixed-size header preceding every record's payload.
type recordHeader struct {
	kind             uint32
	hash             uint64
	storedSize       uint32
	uncompressedSize uint32
	flags            uint32
	crc32            uint32
}

func (h recordHeader) marshal() [recordHeaderSize]byte {
	var buf [recordHeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], h.kind)
	binary.LittleEndian.PutUint64(buf[4:12], h.hash)
	binary.LittleEndian.PutUint32(buf[12:16], h.storedSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.uncompressedSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.flags)
	binary.LittleEndian.PutUint32(buf[24:28], h.crc32)
	return buf
}

func unmarshalRecordHeader(buf []byte) recordHeader {
	return recordHeader{
		kind:             binary.LittleEndian.Uint32(buf[0:4]),
		hash:             binary.LittleEndian.Uint64(buf[4:12]),
		storedSize:       binary.LittleEndian.Uint32(buf[12:16]),
		uncompressedSize: binary.LittleEndian.Uint32(buf[16:20]),
		flags:            binary.LittleEndian.Uint32(buf[20:24]),
		crc32:            binary.LittleEndian.Uint32(buf[24:28]),
	}
}

func marshalHeader() [headerSize]byte {
	var buf [headerSize]byte
	copy(buf[0:12], magic[:])
	binary.LittleEndian.PutUint32(buf[12:16], formatVersion)
	return buf
}
