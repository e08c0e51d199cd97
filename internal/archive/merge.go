package archive

import (
	"fmt"

	"github.com/gpucache/pipecache/internal/resource"
)

// Merge raw-copies every record from sourceBucketPaths, in order, into a
// fresh dest.foz: the first source in the list to carry a given (kind,
// hash) wins, and every later occurrence of that same pair is skipped
// (§4.6). Records are copied with their original header fields intact; no
// recompression, no recomputed checksum.
func Merge(destBase string, sourceBucketPaths []string) error {
	dest := New(destBase+".foz", OverWrite)
	if err := dest.Prepare(); err != nil {
		return fmt.Errorf("merge: open destination: %w", err)
	}
	defer dest.Close()

	for _, path := range sourceBucketPaths {
		src := New(path, ReadOnly)
		if err := src.Prepare(); err != nil {
			return fmt.Errorf("merge: open source %s: %w", path, err)
		}

		if err := copyAllKinds(dest, src); err != nil {
			src.Close()
			return fmt.Errorf("merge: copy from %s: %w", path, err)
		}
		if err := src.Close(); err != nil {
			return fmt.Errorf("merge: close source %s: %w", path, err)
		}
	}
	return nil
}

func copyAllKinds(dest, src *Archive) error {
	for _, kind := range resource.Kinds() {
		hashes, err := src.HashList(kind)
		if err != nil {
			return err
		}
		for _, h := range hashes {
			hash := resource.Hash(h)
			if dest.HasEntry(kind, hash) {
				continue
			}
			entry, ok := src.index[entryKey{kind: kind, hash: hash}]
			if !ok {
				continue
			}
			stored, err := src.readStored(entry)
			if err != nil {
				return err
			}
			if err := dest.writeRawRecord(recordHeader{
				kind:             entry.header.kind,
				hash:             entry.header.hash,
				storedSize:       entry.header.storedSize,
				uncompressedSize: entry.header.uncompressedSize,
				flags:            entry.header.flags,
				crc32:            entry.header.crc32,
			}, stored); err != nil {
				return err
			}
		}
	}
	return nil
}
