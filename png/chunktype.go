package png

import "fmt"

// ChunkType is the 4-byte type code of a png chunk. The case of each
// byte carries the naming-convention flags described in the png spec:
// bit 5 (value 32) of bytes 0..3 encodes criticality, publicity, the
// reserved bit and the safe-to-copy bit respectively.
type ChunkType struct {
	bytes [4]byte
}

const caseBit = 0x20

// ChunkTypeFromBytes builds a ChunkType from 4 raw bytes. This is the
// decode path: existing files may carry arbitrary type codes, so no
// letter validation is performed here. IsValid reports whether the
// code follows the naming conventions.
func ChunkTypeFromBytes(b [4]byte) ChunkType {
	return ChunkType{bytes: b}
}

// ChunkTypeFromString builds a ChunkType from its name. The name must
// be exactly 4 ascii letters, upper or lower case.
func ChunkTypeFromString(name string) (ChunkType, error) {
	if len(name) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q must be exactly 4 characters long", ErrInvalidTypeName, name)
	}
	var b [4]byte
	for i := 0; i < 4; i++ {
		if !isASCIILetter(name[i]) {
			return ChunkType{}, fmt.Errorf("%w: %q must consist of ascii letters only", ErrInvalidTypeName, name)
		}
		b[i] = name[i]
	}
	return ChunkType{bytes: b}, nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Bytes returns the raw 4-byte code.
func (t ChunkType) Bytes() [4]byte {
	return t.bytes
}

// IsCritical reports whether the chunk is required for displaying the
// image (first byte uppercase).
func (t ChunkType) IsCritical() bool {
	return t.bytes[0]&caseBit == 0
}

// IsPublic reports whether the chunk type belongs to the public
// registry (second byte uppercase).
func (t ChunkType) IsPublic() bool {
	return t.bytes[1]&caseBit == 0
}

// IsReservedBitValid reports whether the reserved third byte is
// uppercase as the current png spec requires.
func (t ChunkType) IsReservedBitValid() bool {
	return t.bytes[2]&caseBit == 0
}

// IsSafeToCopy reports whether editors may copy the chunk into a
// modified file without understanding it (fourth byte lowercase).
func (t ChunkType) IsSafeToCopy() bool {
	return t.bytes[3]&caseBit != 0
}

// IsValid reports whether the code is 4 ascii letters with a valid
// reserved bit. Advisory only: decode never rejects invalid codes.
func (t ChunkType) IsValid() bool {
	for _, c := range t.bytes {
		if !isASCIILetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

func (t ChunkType) String() string {
	return string(t.bytes[:])
}
