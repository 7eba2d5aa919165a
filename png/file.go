package png

import (
	"bytes"
	"fmt"
	"strings"

	logging "github.com/op/go-logging"
)

// Header is the 8-byte signature preceding the chunk stream of every
// png file. It is emitted on encode and checked (not retained) on
// decode.
var Header = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// HeaderSize is the size of the png signature in bytes.
const HeaderSize = len(Header)

var log = logging.MustGetLogger("pngme")

// File is an ordered container of chunks. Chunk order is file order
// and is significant: encode preserves it byte-exactly and lookups
// return the first match. File does no synchronization of its own;
// an application sharing one across goroutines must serialize access
// to AppendChunk and RemoveChunk.
type File struct {
	chunks []*Chunk
}

// FromChunks wraps an already-built chunk list verbatim, trusting the
// caller. No header or crc validation happens here.
func FromChunks(chunks []*Chunk) *File {
	return &File{chunks: chunks}
}

// Decode parses a whole png byte buffer. It fails with
// ErrInvalidHeader unless the buffer starts with the png signature,
// then decodes chunks back-to-back until the buffer is exhausted.
// Any chunk failure aborts the decode; no partial file is returned.
func Decode(p []byte) (*File, error) {
	if len(p) < HeaderSize || !bytes.Equal(p[:HeaderSize], Header[:]) {
		return nil, fmt.Errorf("%w: file does not start with the png signature", ErrInvalidHeader)
	}

	f := &File{}
	pos := HeaderSize
	for pos < len(p) {
		chunk, n, err := DecodeChunk(p[pos:])
		if err != nil {
			return nil, fmt.Errorf("chunk at offset %d: %w", pos, err)
		}
		log.Debugf("decoded chunk %s at offset %d (%d bytes)", chunk.Type(), pos, n)
		pos += n
		f.chunks = append(f.chunks, chunk)
	}
	return f, nil
}

// Encode returns the canonical byte form of the file: the signature
// followed by every chunk's encoding in order. Decode(Encode(f))
// reproduces the same chunk list.
func (f *File) Encode() []byte {
	var buf bytes.Buffer
	buf.Write(Header[:])
	for _, chunk := range f.chunks {
		buf.Write(chunk.Encode())
	}
	return buf.Bytes()
}

// Chunks returns the chunk list in file order. The slice must not be
// modified.
func (f *File) Chunks() []*Chunk {
	return f.chunks
}

// ChunkByType returns the first chunk whose type name equals name, or
// nil if there is none.
func (f *File) ChunkByType(name string) *Chunk {
	for _, chunk := range f.chunks {
		if chunk.Type().String() == name {
			return chunk
		}
	}
	return nil
}

// AppendChunk appends a chunk to the end of the file. Duplicate type
// names are permitted.
func (f *File) AppendChunk(chunk *Chunk) {
	f.chunks = append(f.chunks, chunk)
}

// RemoveChunk removes the first chunk whose type name equals name,
// preserving the relative order of the rest, and returns it. Fails
// with ErrChunkNotFound, leaving the file untouched, if no chunk
// matches.
func (f *File) RemoveChunk(name string) (*Chunk, error) {
	for i, chunk := range f.chunks {
		if chunk.Type().String() == name {
			f.chunks = append(f.chunks[:i], f.chunks[i+1:]...)
			return chunk, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, name)
}

// String renders a human-readable listing of the file contents, one
// line per chunk. Diagnostic only, never re-parsed.
func (f *File) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "png file with %d chunks:\n", len(f.chunks))
	for _, chunk := range f.chunks {
		fmt.Fprintf(&b, "  %s\n", chunk)
	}
	return b.String()
}
