package archive

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpucache/pipecache/internal/resource"
)

func newTestArchive(t *testing.T, mode Mode) (*Archive, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.foz")
	a := New(path, mode)
	require.NoError(t, a.Prepare())
	t.Cleanup(func() { a.Close() })
	return a, path
}

// TestArchiveRoundTripCompressedChecksummed implements scenario 4 of
// SPEC_FULL.md §8: a payload written with Compress+ComputeChecksum reads
// back identical to the original bytes.
func TestArchiveRoundTripCompressedChecksummed(t *testing.T) {
	a, path := newTestArchive(t, OverWrite)

	payload := []byte("some shader spir-v words, repeated repeated repeated repeated")
	require.NoError(t, a.WriteEntry(resource.KindShaderModule, 42, payload, FlagCompress|FlagChecksum))

	got, err := a.ReadEntry(resource.KindShaderModule, 42, 0)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	size, err := a.EntrySize(resource.KindShaderModule, 42, 0)
	require.NoError(t, err)
	assert.Equal(t, len(payload), size)

	buf := make([]byte, len(payload))
	n, err := a.ReadEntryInto(resource.KindShaderModule, 42, 0, buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:n])

	require.NoError(t, a.Close())

	// Reopen read-only and confirm the index rebuilds identically.
	reopened := New(path, ReadOnly)
	require.NoError(t, reopened.Prepare())
	defer reopened.Close()
	got2, err := reopened.ReadEntry(resource.KindShaderModule, 42, 0)
	require.NoError(t, err)
	assert.Equal(t, payload, got2)
}

func TestArchiveReadEntryBufferTooSmall(t *testing.T) {
	a, _ := newTestArchive(t, OverWrite)
	require.NoError(t, a.WriteEntry(resource.KindSampler, 1, []byte("0123456789"), 0))

	_, err := a.ReadEntryInto(resource.KindSampler, 1, 0, make([]byte, 4))
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestArchiveNotFound(t *testing.T) {
	a, _ := newTestArchive(t, OverWrite)
	_, err := a.ReadEntry(resource.KindSampler, 999, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, a.HasEntry(resource.KindSampler, 999))
}

func TestArchiveRawFossilizeDBVerbatim(t *testing.T) {
	a, _ := newTestArchive(t, OverWrite)

	// Pre-compressed bytes from elsewhere, stored verbatim with FlagRaw:
	// WriteEntry must not attempt to compress them again.
	raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	require.NoError(t, a.WriteEntry(resource.KindShaderModule, 7, raw, FlagRaw))

	got, err := a.ReadEntry(resource.KindShaderModule, 7, FlagRaw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestArchiveTruncatedTrailingRecordIsTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.foz")
	a := New(path, OverWrite)
	require.NoError(t, a.Prepare())
	require.NoError(t, a.WriteEntry(resource.KindSampler, 1, []byte("good"), 0))
	require.NoError(t, a.Close())

	// Append a partial record header past the end, simulating a writer
	// that crashed mid-write.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened := New(path, Append)
	require.NoError(t, reopened.Prepare())
	defer reopened.Close()

	got, err := reopened.ReadEntry(resource.KindSampler, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("good"), got)

	hashes, err := reopened.HashList(resource.KindSampler)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, hashes)
}

func TestArchiveHashListSortedAscending(t *testing.T) {
	a, _ := newTestArchive(t, OverWrite)
	require.NoError(t, a.WriteEntry(resource.KindSampler, 30, []byte("c"), 0))
	require.NoError(t, a.WriteEntry(resource.KindSampler, 10, []byte("a"), 0))
	require.NoError(t, a.WriteEntry(resource.KindSampler, 20, []byte("b"), 0))

	hashes, err := a.HashList(resource.KindSampler)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 20, 30}, hashes)
}

func TestArchiveReadOnlyRejectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.foz")
	seed := New(path, OverWrite)
	require.NoError(t, seed.Prepare())
	require.NoError(t, seed.Close())

	a := New(path, ReadOnly)
	require.NoError(t, a.Prepare())
	defer a.Close()

	err := a.WriteEntry(resource.KindSampler, 1, []byte("x"), 0)
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestArchiveReadOnlyMissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.foz")
	a := New(path, ReadOnly)
	err := a.Prepare()
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestArchiveRejectsUnsupportedVersion confirms Prepare checks the version
// field, not just the magic string: a file with the correct magic but a
// newer/older version must be rejected rather than silently mis-parsed.
func TestArchiveRejectsUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "futureversion.foz")

	hdr := marshalHeader()
	binary.LittleEndian.PutUint32(hdr[12:16], formatVersion+1)
	require.NoError(t, os.WriteFile(path, hdr[:], 0o644))

	a := New(path, ReadOnly)
	err := a.Prepare()
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
