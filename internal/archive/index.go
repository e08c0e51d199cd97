package archive

import (
	"io"
	"os"

	"github.com/gpucache/pipecache/internal/resource"
)

type indexEntry struct {
	payloadOffset int64
	header        recordHeader
}

// buildIndex scans f from just after the format header to EOF, recording
// one indexEntry per well-formed record. A record whose header or payload is
// only partially present, the signature of a writer that crashed mid-write,
// truncates the scan; every record read before it stays in the index
// (§4.4 "Malformed trailing records... truncate the scan").
func buildIndex(f *os.File) (map[entryKey]indexEntry, int64, error) {
	idx := make(map[entryKey]indexEntry)
	offset := int64(headerSize)
	var hdrBuf [recordHeaderSize]byte

	for {
		n, err := io.ReadFull(f, hdrBuf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF || n < recordHeaderSize {
			break
		}
		if err != nil {
			return nil, 0, ErrIO
		}

		hdr := unmarshalRecordHeader(hdrBuf[:])
		payloadOffset := offset + recordHeaderSize

		if _, err := f.Seek(int64(hdr.storedSize), io.SeekCurrent); err != nil {
			return nil, 0, ErrIO
		}
		// Confirm the seek didn't run past actual file content: a trailing
		// record whose header claims more payload than was ever written.
		pos, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, 0, ErrIO
		}
		info, err := f.Stat()
		if err != nil {
			return nil, 0, ErrIO
		}
		if pos > info.Size() {
			break
		}

		key := entryKey{kind: resource.Kind(hdr.kind), hash: resource.Hash(hdr.hash)}
		if _, exists := idx[key]; !exists {
			idx[key] = indexEntry{payloadOffset: payloadOffset, header: hdr}
		}
		offset = pos
	}

	return idx, offset, nil
}
