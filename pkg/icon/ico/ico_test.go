package ico

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

func fakeEntries(sizes []int) []Entry {
	entries := make([]Entry, len(sizes))
	for i, s := range sizes {
		// Payload content is opaque to the container; the builder must
		// never touch it.
		entries[i] = Entry{Size: s, Data: bytes.Repeat([]byte{byte(i + 1)}, 10+i*7)}
	}
	return entries
}

func TestBuildRoundTrip(t *testing.T) {
	sizes := []int{16, 32, 48, 64, 128, 256}
	entries := fakeEntries(sizes)

	data, err := Build(entries)
	require.NoError(t, err)

	dir, err := ParseDirectory(data)
	require.NoError(t, err)
	require.Len(t, dir, 6)

	for i, d := range dir {
		assert.Equal(t, sizes[i], d.PixelSize(), "entry %d size", i)
		assert.Equal(t, uint32(len(entries[i].Data)), d.ByteSize, "entry %d byte size", i)
		assert.Equal(t, entries[i].Data, Payload(data, d), "entry %d payload", i)
		assert.Equal(t, uint16(1), d.Planes)
		assert.Equal(t, uint16(32), d.BitCount)
	}

	// Offsets ascend strictly in directory order and start right after
	// the directory.
	assert.Equal(t, uint32(HeaderSize+6*EntrySize), dir[0].Offset)
	for i := 1; i < len(dir); i++ {
		assert.Equal(t, dir[i-1].Offset+dir[i-1].ByteSize, dir[i].Offset)
	}
}

func TestBuildHeaderLayout(t *testing.T) {
	data, err := Build(fakeEntries([]int{16, 256}))
	require.NoError(t, err)

	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[0:2]), "reserved")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[2:4]), "type")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(data[4:6]), "count")

	// 16 stays literal, 256 is encoded as the reserved zero byte.
	assert.Equal(t, byte(16), data[HeaderSize])
	assert.Equal(t, byte(0), data[HeaderSize+EntrySize])
	assert.Equal(t, byte(0), data[HeaderSize+EntrySize+1])
}

func TestBuildRejectsEmpty(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, icnerrors.ErrEmptyContainer)
}

func TestBuildRejectsBadSize(t *testing.T) {
	_, err := Build([]Entry{{Size: 300, Data: []byte{1}}})
	assert.ErrorIs(t, err, icnerrors.ErrContainerSize)

	_, err = Build([]Entry{{Size: 0, Data: []byte{1}}})
	assert.ErrorIs(t, err, icnerrors.ErrContainerSize)
}

func TestBuildRejectsMissingPayload(t *testing.T) {
	_, err := Build([]Entry{{Size: 16}})
	assert.ErrorIs(t, err, icnerrors.ErrMissingBytes)
}

func TestBuildDeterministic(t *testing.T) {
	entries := fakeEntries([]int{16, 32, 48})

	a, err := Build(entries)
	require.NoError(t, err)
	b, err := Build(entries)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestParseDirectoryTruncated(t *testing.T) {
	data, err := Build(fakeEntries([]int{16, 32}))
	require.NoError(t, err)

	_, err = ParseDirectory(data[:4])
	assert.ErrorIs(t, err, icnerrors.ErrShortContainer)

	_, err = ParseDirectory(data[:HeaderSize+EntrySize])
	assert.ErrorIs(t, err, icnerrors.ErrShortContainer)

	// Directory intact but payload cut off.
	_, err = ParseDirectory(data[:len(data)-3])
	assert.ErrorIs(t, err, icnerrors.ErrShortContainer)
}
