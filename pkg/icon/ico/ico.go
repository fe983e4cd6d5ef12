// Package ico assembles and parses the multi-image icon container
// format (the legacy Windows .ico layout, little-endian throughout):
//
//	header: 2 reserved bytes (0), uint16 type (1 = icon), uint16 count
//	count × 16-byte directory entries
//	concatenated raw PNG payloads at their declared offsets
//
// Payload bytes are stored untouched; the builder never re-encodes.
package ico

import (
	"encoding/binary"
	"fmt"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

const (
	// HeaderSize is the fixed container header size in bytes.
	HeaderSize = 6
	// EntrySize is the fixed directory entry size in bytes.
	EntrySize = 16

	iconType = 1
)

// Entry is one image in the container: its nominal square size and the
// already PNG-encoded payload.
type Entry struct {
	Size int // pixel width == height, 1..256
	Data []byte
}

// DirEntry is a decoded 16-byte directory record.
type DirEntry struct {
	Width      uint8 // 0 encodes 256
	Height     uint8 // 0 encodes 256
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	ByteSize   uint32
	Offset     uint32
}

// PixelSize returns the decoded width, mapping the reserved 0 byte back
// to 256.
func (d DirEntry) PixelSize() int {
	if d.Width == 0 {
		return 256
	}
	return int(d.Width)
}

// Build serializes the entries into one container buffer. Directory
// order follows the input order, and payloads are written in the same
// order at strictly ascending offsets.
func Build(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, icnerrors.ErrEmptyContainer
	}

	total := HeaderSize + EntrySize*len(entries)
	for i, e := range entries {
		if e.Size < 1 || e.Size > 256 {
			return nil, fmt.Errorf("%w: entry %d is %d", icnerrors.ErrContainerSize, i, e.Size)
		}
		if len(e.Data) == 0 {
			return nil, fmt.Errorf("%w: entry %d", icnerrors.ErrMissingBytes, i)
		}
		total += len(e.Data)
	}

	buf := make([]byte, total)

	// Header: reserved=0, type=1, count.
	binary.LittleEndian.PutUint16(buf[0:2], 0)
	binary.LittleEndian.PutUint16(buf[2:4], iconType)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(entries)))

	offset := uint32(HeaderSize + EntrySize*len(entries))
	for i, e := range entries {
		dim := uint8(e.Size)
		if e.Size == 256 {
			dim = 0 // 256 is encoded as the reserved zero byte
		}

		pos := HeaderSize + i*EntrySize
		buf[pos+0] = dim
		buf[pos+1] = dim
		buf[pos+2] = 0 // palette color count: truecolor
		buf[pos+3] = 0 // reserved
		binary.LittleEndian.PutUint16(buf[pos+4:pos+6], 1)  // color planes
		binary.LittleEndian.PutUint16(buf[pos+6:pos+8], 32) // bits per pixel
		binary.LittleEndian.PutUint32(buf[pos+8:pos+12], uint32(len(e.Data)))
		binary.LittleEndian.PutUint32(buf[pos+12:pos+16], offset)

		copy(buf[offset:], e.Data)
		offset += uint32(len(e.Data))
	}

	return buf, nil
}

// ParseDirectory reads the header and directory entries back from a
// container buffer. Payload bytes are left in place; use Payload to
// slice one out.
func ParseDirectory(data []byte) ([]DirEntry, error) {
	if len(data) < HeaderSize {
		return nil, icnerrors.ErrShortContainer
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != iconType {
		return nil, fmt.Errorf("%w: bad header", icnerrors.ErrShortContainer)
	}

	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if len(data) < HeaderSize+count*EntrySize {
		return nil, icnerrors.ErrShortContainer
	}

	entries := make([]DirEntry, count)
	for i := 0; i < count; i++ {
		pos := HeaderSize + i*EntrySize
		entries[i] = DirEntry{
			Width:      data[pos+0],
			Height:     data[pos+1],
			ColorCount: data[pos+2],
			Reserved:   data[pos+3],
			Planes:     binary.LittleEndian.Uint16(data[pos+4 : pos+6]),
			BitCount:   binary.LittleEndian.Uint16(data[pos+6 : pos+8]),
			ByteSize:   binary.LittleEndian.Uint32(data[pos+8 : pos+12]),
			Offset:     binary.LittleEndian.Uint32(data[pos+12 : pos+16]),
		}
		end := int64(entries[i].Offset) + int64(entries[i].ByteSize)
		if end > int64(len(data)) {
			return nil, fmt.Errorf("%w: entry %d runs past end", icnerrors.ErrShortContainer, i)
		}
	}

	return entries, nil
}

// Payload returns the raw encoded bytes of one directory entry.
func Payload(data []byte, entry DirEntry) []byte {
	return data[entry.Offset : entry.Offset+entry.ByteSize]
}
