package archive

import (
	"fmt"
	"os"
	"strings"

	"github.com/gpucache/pipecache/internal/resource"
)

// ParseExtraPaths splits the ";"-separated extra-shards string of §4.5
// ("Extra-paths encoding"), ignoring empty components.
func ParseExtraPaths(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConcurrentArchive is the multi-writer logical archive of §4.5: a single
// writer-owned bucket file plus a set of read-only shards consulted before
// ever writing a duplicate. It is not itself safe for concurrent use by
// multiple goroutines in one process: the concurrency model is
// cross-process, one ConcurrentArchive per writer.
type ConcurrentArchive struct {
	base        string
	extraPaths  []string
	shards      []*Archive // consultation order: extra paths, then P.foz
	ownBucket   *Archive
	bucketIndex int
	ownDedup    map[entryKey]struct{}
}

// NewConcurrentArchive constructs a ConcurrentArchive rooted at base, with
// extraPaths in the §4.5 ";"-separated encoding.
func NewConcurrentArchive(base string, extraPaths string) *ConcurrentArchive {
	return &ConcurrentArchive{
		base:        base,
		extraPaths:  ParseExtraPaths(extraPaths),
		bucketIndex: 1,
		ownDedup:    make(map[entryKey]struct{}),
	}
}

// Prepare opens every read-only shard that exists and computes the lowest
// writer-bucket index N such that `base.N.foz` does not yet exist, without
// creating it. The bucket itself is created lazily on first real write
// (§4.5, §5).
func (c *ConcurrentArchive) Prepare() error {
	for _, p := range c.extraPaths {
		shard := New(p, ReadOnly)
		if err := shard.Prepare(); err != nil {
			return fmt.Errorf("concurrent archive: extra path %s: %w", p, err)
		}
		c.shards = append(c.shards, shard)
	}

	sharedPath := c.base + ".foz"
	if _, err := os.Stat(sharedPath); err == nil {
		shared := New(sharedPath, ReadOnly)
		if err := shared.Prepare(); err != nil {
			return fmt.Errorf("concurrent archive: shared shard %s: %w", sharedPath, err)
		}
		c.shards = append(c.shards, shared)
	}

	for {
		candidate := fmt.Sprintf("%s.%d.foz", c.base, c.bucketIndex)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			break
		}
		c.bucketIndex++
	}
	return nil
}

// Close releases every shard and the writer's own bucket, if created.
func (c *ConcurrentArchive) Close() error {
	var firstErr error
	for _, s := range c.shards {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.ownBucket != nil {
		if err := c.ownBucket.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *ConcurrentArchive) ensureOwnBucket() (*Archive, error) {
	if c.ownBucket != nil {
		return c.ownBucket, nil
	}
	for {
		path := fmt.Sprintf("%s.%d.foz", c.base, c.bucketIndex)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				c.bucketIndex++
				continue
			}
			return nil, fmt.Errorf("concurrent archive: create bucket %s: %w", path, err)
		}
		hdr := marshalHeader()
		if _, err := f.Write(hdr[:]); err != nil {
			f.Close()
			return nil, fmt.Errorf("concurrent archive: write bucket header: %w", ErrIO)
		}
		c.ownBucket = &Archive{
			path:     path,
			mode:     Append,
			f:        f,
			index:    make(map[entryKey]indexEntry),
			writePos: headerSize,
		}
		return c.ownBucket, nil
	}
}

func (c *ConcurrentArchive) shardHasEntry(kind resource.Kind, hash resource.Hash) bool {
	for _, s := range c.shards {
		if s.HasEntry(kind, hash) {
			return true
		}
	}
	return false
}

// HasEntry consults extra paths, then the shared shard, then the writer's
// own bucket; first hit wins (§4.5 "Read semantics").
func (c *ConcurrentArchive) HasEntry(kind resource.Kind, hash resource.Hash) bool {
	if c.shardHasEntry(kind, hash) {
		return true
	}
	if c.ownBucket != nil {
		return c.ownBucket.HasEntry(kind, hash)
	}
	return false
}

// WriteEntry suppresses the write if (kind, hash) is already present in any
// read-only shard or in the writer's own bucket (checked via an in-memory
// dedup set so a writer that only ever writes duplicates never creates a
// bucket file on disk), and otherwise appends it, lazily creating the
// bucket file on this, the writer's first genuinely new entry.
func (c *ConcurrentArchive) WriteEntry(kind resource.Kind, hash resource.Hash, data []byte, flags Flags) error {
	key := entryKey{kind: kind, hash: hash}
	if c.shardHasEntry(kind, hash) {
		return nil
	}
	if _, dup := c.ownDedup[key]; dup {
		return nil
	}

	bucket, err := c.ensureOwnBucket()
	if err != nil {
		return err
	}
	if err := bucket.WriteEntry(kind, hash, data, flags); err != nil {
		return err
	}
	c.ownDedup[key] = struct{}{}
	return nil
}

// ReadEntry consults the same order as HasEntry.
func (c *ConcurrentArchive) ReadEntry(kind resource.Kind, hash resource.Hash, flags Flags) ([]byte, error) {
	for _, s := range c.shards {
		if s.HasEntry(kind, hash) {
			return s.ReadEntry(kind, hash, flags)
		}
	}
	if c.ownBucket != nil && c.ownBucket.HasEntry(kind, hash) {
		return c.ownBucket.ReadEntry(kind, hash, flags)
	}
	return nil, ErrNotFound
}

// HashList returns the union of hashes for kind across every shard and the
// writer's own bucket, with duplicates across shards collapsed.
func (c *ConcurrentArchive) HashList(kind resource.Kind) ([]uint64, error) {
	seen := make(map[uint64]struct{})
	var out []uint64
	collect := func(a *Archive) error {
		hashes, err := a.HashList(kind)
		if err != nil {
			return err
		}
		for _, h := range hashes {
			if _, ok := seen[h]; !ok {
				seen[h] = struct{}{}
				out = append(out, h)
			}
		}
		return nil
	}
	for _, s := range c.shards {
		if err := collect(s); err != nil {
			return nil, err
		}
	}
	if c.ownBucket != nil {
		if err := collect(c.ownBucket); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BucketPath returns the path of the writer's own bucket file, or "" if it
// has not been created yet (every write so far was suppressed as a
// duplicate).
func (c *ConcurrentArchive) BucketPath() string {
	if c.ownBucket == nil {
		return ""
	}
	return c.ownBucket.path
}
