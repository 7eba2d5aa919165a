package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// chunkOverhead is the size of the length, type and crc fields
// surrounding the data of every encoded chunk.
const chunkOverhead = 12

// Chunk is one length-prefixed, checksummed record of a png file:
// a 4-byte type code plus opaque payload bytes. A Chunk is immutable
// once constructed; editing means building a replacement.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk builds a chunk from a type code and payload bytes,
// computing the crc over the type bytes followed by the data.
func NewChunk(chunkType ChunkType, data []byte) *Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return &Chunk{
		chunkType: chunkType,
		data:      d,
		crc:       chunkCrc(chunkType, d),
	}
}

// chunkCrc computes CRC-32 (zlib polynomial) over type ++ data.
// The length field is never part of the checksum.
func chunkCrc(chunkType ChunkType, data []byte) uint32 {
	tb := chunkType.Bytes()
	h := crc32.NewIEEE()
	h.Write(tb[:])
	h.Write(data)
	return h.Sum32()
}

// DecodeChunk parses one chunk from the front of p and returns it
// along with the number of bytes consumed. The layout is a big-endian
// 32-bit length, 4 type bytes, length data bytes and a big-endian
// 32-bit crc. Fails with ErrTruncated if p is shorter than the fields
// demand and with ErrChecksumMismatch if the stored crc differs from
// the one recomputed over type and data.
func DecodeChunk(p []byte) (*Chunk, int, error) {
	if len(p) < 8 {
		return nil, 0, fmt.Errorf("%w: %d bytes is too short for a chunk header", ErrTruncated, len(p))
	}

	length := binary.BigEndian.Uint32(p[0:4])
	total := chunkOverhead + int(length)
	if len(p) < total {
		return nil, 0, fmt.Errorf("%w: chunk declares %d data bytes but only %d bytes remain",
			ErrTruncated, length, len(p))
	}

	var tb [4]byte
	copy(tb[:], p[4:8])
	chunkType := ChunkTypeFromBytes(tb)

	data := make([]byte, length)
	copy(data, p[8:8+length])

	stored := binary.BigEndian.Uint32(p[8+length : total])
	if computed := chunkCrc(chunkType, data); stored != computed {
		return nil, 0, fmt.Errorf("%w: chunk %s stores crc %08x, computed %08x",
			ErrChecksumMismatch, chunkType, stored, computed)
	}

	return &Chunk{chunkType: chunkType, data: data, crc: stored}, total, nil
}

// Length returns the payload size in bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Crc returns the chunk checksum.
func (c *Chunk) Crc() uint32 {
	return c.crc
}

// Type returns the chunk type code.
func (c *Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the payload bytes. The slice must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// DataString returns the payload as text. Fails with
// ErrInvalidEncoding unless the payload is valid utf-8.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: chunk %s", ErrInvalidEncoding, c.chunkType)
	}
	return string(c.data), nil
}

// Encode returns the canonical on-disk form of the chunk. It is the
// exact inverse of DecodeChunk for any chunk built via NewChunk.
func (c *Chunk) Encode() []byte {
	var buf bytes.Buffer
	buf.Grow(chunkOverhead + len(c.data))
	binary.Write(&buf, binary.BigEndian, c.Length())
	tb := c.chunkType.Bytes()
	buf.Write(tb[:])
	buf.Write(c.data)
	binary.Write(&buf, binary.BigEndian, c.crc)
	return buf.Bytes()
}

func (c *Chunk) String() string {
	return fmt.Sprintf("%s: length %d, data %d bytes, crc %08x",
		c.chunkType, c.Length(), len(c.data), c.crc)
}
