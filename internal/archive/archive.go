package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/flate"

	"github.com/gpucache/pipecache/internal/resource"
)

// Mode selects how Prepare opens the backing file (§4.4 "Modes").
type Mode int

const (
	// OverWrite truncates any existing file and starts a fresh archive.
	OverWrite Mode = iota
	// Append opens an existing archive for continued writing, or creates
	// one if absent.
	Append
	// ReadOnly opens an existing archive; Prepare fails if it is absent.
	ReadOnly
)

// Archive is a single on-disk binary archive file (§4.4). It is not safe
// for concurrent use from multiple goroutines; ConcurrentArchive is the
// multi-writer scheme built on top of it.
type Archive struct {
	path     string
	mode     Mode
	f        *os.File
	index    map[entryKey]indexEntry
	writePos int64
}

// New constructs an Archive bound to path, unopened until Prepare is called.
func New(path string, mode Mode) *Archive {
	return &Archive{path: path, mode: mode}
}

// Prepare opens the backing file per Mode and builds the in-memory
// (kind, hash) → offset index by scanning any existing content.
func (a *Archive) Prepare() error {
	var flag int
	switch a.mode {
	case OverWrite:
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case Append:
		flag = os.O_RDWR | os.O_CREATE
	case ReadOnly:
		flag = os.O_RDONLY
	default:
		return fmt.Errorf("archive: invalid mode %d", a.mode)
	}

	f, err := os.OpenFile(a.path, flag, 0o644)
	if err != nil {
		if a.mode == ReadOnly && os.IsNotExist(err) {
			return fmt.Errorf("archive: open %s: %w", a.path, ErrNotFound)
		}
		return fmt.Errorf("archive: open %s: %w", a.path, err)
	}
	a.f = f

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("archive: stat %s: %w", a.path, err)
	}

	if info.Size() == 0 {
		if a.mode == ReadOnly {
			f.Close()
			return fmt.Errorf("archive: %s: %w", a.path, ErrTruncated)
		}
		hdr := marshalHeader()
		if _, err := f.Write(hdr[:]); err != nil {
			f.Close()
			return fmt.Errorf("archive: write header: %w", ErrIO)
		}
		a.index = make(map[entryKey]indexEntry)
		a.writePos = headerSize
		return nil
	}

	var hdrBuf [headerSize]byte
	if _, err := io.ReadFull(f, hdrBuf[:]); err != nil {
		f.Close()
		return fmt.Errorf("archive: %s: %w", a.path, ErrTruncated)
	}
	if !bytes.Equal(hdrBuf[0:12], magic[:]) {
		f.Close()
		return fmt.Errorf("archive: %s: %w", a.path, ErrUnsupportedVersion)
	}
	if version := binary.LittleEndian.Uint32(hdrBuf[12:16]); version != formatVersion {
		f.Close()
		return fmt.Errorf("archive: %s: version %d: %w", a.path, version, ErrUnsupportedVersion)
	}

	idx, end, err := buildIndex(f)
	if err != nil {
		f.Close()
		return err
	}
	a.index = idx
	a.writePos = end

	if a.mode != ReadOnly && end < info.Size() {
		if err := f.Truncate(end); err != nil {
			f.Close()
			return fmt.Errorf("archive: truncate trailing garbage: %w", ErrIO)
		}
	}

	return nil
}

// Close releases the backing file handle.
func (a *Archive) Close() error {
	if a.f == nil {
		return nil
	}
	return a.f.Close()
}

// HasEntry reports whether (kind, hash) is present.
func (a *Archive) HasEntry(kind resource.Kind, hash resource.Hash) bool {
	_, ok := a.index[entryKey{kind: kind, hash: hash}]
	return ok
}

// WriteEntry stores data under (kind, hash), honoring flags (§4.4 "Write
// flags"). Duplicate (kind, hash) pairs are rejected by the intern layer
// upstream, not here: Archive will happily append a second record for an
// already-stored pair, but buildIndex keeps only the first occurrence it
// scans, so the earlier record stays authoritative.
func (a *Archive) WriteEntry(kind resource.Kind, hash resource.Hash, data []byte, flags Flags) error {
	if a.mode == ReadOnly {
		return ErrReadOnly
	}

	uncompressedSize := uint32(len(data))
	stored := data

	switch {
	case flags&FlagRaw != 0:
		// Caller supplies bytes already in final on-disk form.
	case flags&FlagCompress != 0:
		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return fmt.Errorf("archive: init compressor: %w", ErrIO)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("archive: compress: %w", ErrIO)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("archive: compress: %w", ErrIO)
		}
		stored = buf.Bytes()
	}

	var checksum uint32
	if flags&FlagChecksum != 0 {
		checksum = crc32.ChecksumIEEE(stored)
	}

	return a.writeRawRecord(recordHeader{
		kind:             uint32(kind),
		hash:             uint64(hash),
		storedSize:       uint32(len(stored)),
		uncompressedSize: uncompressedSize,
		flags:            uint32(flags),
		crc32:            checksum,
	}, stored)
}

// writeRawRecord appends hdr and payload verbatim and indexes the result.
// The Merger uses this directly with a source record's own header fields so
// raw-copy semantics need no recompression or rehashing (§4.6).
func (a *Archive) writeRawRecord(hdr recordHeader, payload []byte) error {
	if a.mode == ReadOnly {
		return ErrReadOnly
	}
	if _, err := a.f.Seek(a.writePos, io.SeekStart); err != nil {
		return fmt.Errorf("archive: seek: %w", ErrIO)
	}
	buf := hdr.marshal()
	if _, err := a.f.Write(buf[:]); err != nil {
		return fmt.Errorf("archive: write record header: %w", ErrIO)
	}
	if _, err := a.f.Write(payload); err != nil {
		return fmt.Errorf("archive: write record payload: %w", ErrIO)
	}

	key := entryKey{kind: resource.Kind(hdr.kind), hash: resource.Hash(hdr.hash)}
	a.index[key] = indexEntry{payloadOffset: a.writePos + recordHeaderSize, header: hdr}
	a.writePos += recordHeaderSize + int64(len(payload))
	return nil
}

func (a *Archive) readStored(entry indexEntry) ([]byte, error) {
	stored := make([]byte, entry.header.storedSize)
	if entry.header.storedSize > 0 {
		if _, err := a.f.ReadAt(stored, entry.payloadOffset); err != nil {
			return nil, fmt.Errorf("archive: read payload: %w", ErrIO)
		}
	}
	if entry.header.flags&uint32(FlagChecksum) != 0 {
		if crc32.ChecksumIEEE(stored) != entry.header.crc32 {
			return nil, ErrChecksumMismatch
		}
	}
	return stored, nil
}

// ReadEntry returns the payload for (kind, hash). Unless flags carries
// FlagRaw, a payload stored with FlagCompress is inflated before return.
func (a *Archive) ReadEntry(kind resource.Kind, hash resource.Hash, flags Flags) ([]byte, error) {
	entry, ok := a.index[entryKey{kind: kind, hash: hash}]
	if !ok {
		return nil, ErrNotFound
	}
	stored, err := a.readStored(entry)
	if err != nil {
		return nil, err
	}
	if flags&FlagRaw != 0 || entry.header.flags&uint32(FlagCompress) == 0 {
		return stored, nil
	}
	r := flate.NewReader(bytes.NewReader(stored))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("archive: inflate: %w", ErrIO)
	}
	return out, nil
}

// EntrySize is the size-only probe form of ReadEntry: it reports the number
// of bytes ReadEntry would return for (kind, hash) without materializing
// them, matching §4.4's "two-call size probe" contract.
func (a *Archive) EntrySize(kind resource.Kind, hash resource.Hash, flags Flags) (int, error) {
	entry, ok := a.index[entryKey{kind: kind, hash: hash}]
	if !ok {
		return 0, ErrNotFound
	}
	if flags&FlagRaw != 0 || entry.header.flags&uint32(FlagCompress) == 0 {
		return int(entry.header.storedSize), nil
	}
	return int(entry.header.uncompressedSize), nil
}

// ReadEntryInto reads the payload for (kind, hash) into buf, returning the
// number of bytes written. It returns ErrBufferTooSmall without partially
// filling buf if buf cannot hold the whole payload.
func (a *Archive) ReadEntryInto(kind resource.Kind, hash resource.Hash, flags Flags, buf []byte) (int, error) {
	size, err := a.EntrySize(kind, hash, flags)
	if err != nil {
		return 0, err
	}
	if len(buf) < size {
		return 0, ErrBufferTooSmall
	}
	data, err := a.ReadEntry(kind, hash, flags)
	if err != nil {
		return 0, err
	}
	return copy(buf, data), nil
}

// HashList returns every hash stored under kind, in ascending order.
func (a *Archive) HashList(kind resource.Kind) ([]uint64, error) {
	out := make([]uint64, 0)
	for key := range a.index {
		if key.kind == kind {
			out = append(out, uint64(key.hash))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
