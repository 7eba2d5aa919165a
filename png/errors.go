package png

import "errors"

// Decode and mutation failures are deterministic and data-dependent,
// so they are plain sentinel values meant to be matched with errors.Is.
// Call sites get the offending detail from the wrapping message.
var (
	// ErrInvalidHeader means the buffer does not start with the 8-byte
	// PNG signature (or is too short to contain one).
	ErrInvalidHeader = errors.New("invalid png header")

	// ErrTruncated means the buffer ended before a declared field did.
	ErrTruncated = errors.New("truncated chunk data")

	// ErrChecksumMismatch means a chunk's stored crc does not match the
	// crc recomputed over its type and data bytes.
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")

	// ErrInvalidTypeName means a chunk type name is not exactly 4 ascii
	// letters.
	ErrInvalidTypeName = errors.New("invalid chunk type name")

	// ErrInvalidEncoding means chunk data was requested as text but is
	// not valid utf-8.
	ErrInvalidEncoding = errors.New("chunk data is not valid utf-8")

	// ErrChunkNotFound means no chunk with the requested type name
	// exists in the file.
	ErrChunkNotFound = errors.New("chunk not found")
)
