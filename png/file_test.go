package png

import (
	"bytes"
	"errors"
	"testing"
)

func chunkFromStrings(t *testing.T, name string, data string) *Chunk {
	ct, err := ChunkTypeFromString(name)
	if err != nil {
		t.Fatal(err)
	}
	return NewChunk(ct, []byte(data))
}

func testingChunks(t *testing.T) []*Chunk {
	return []*Chunk{
		chunkFromStrings(t, "FrSt", "I am the first chunk"),
		chunkFromStrings(t, "miDl", "I am another chunk"),
		chunkFromStrings(t, "LASt", "I am the last chunk"),
	}
}

func TestFromChunks(t *testing.T) {
	f := FromChunks(testingChunks(t))
	if len(f.Chunks()) != 3 {
		t.Errorf("file is expected to hold 3 chunks, got %d instead", len(f.Chunks()))
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	chunks := testingChunks(t)
	f := FromChunks(chunks)
	encoded := f.Encode()

	expectedLen := HeaderSize
	for _, chunk := range chunks {
		expectedLen += 12 + len(chunk.Data())
	}
	if len(encoded) != expectedLen {
		t.Errorf("encoded length is expected to be %d, got %d instead", expectedLen, len(encoded))
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Chunks()) != len(chunks) {
		t.Fatalf("decoded file is expected to hold %d chunks, got %d instead",
			len(chunks), len(decoded.Chunks()))
	}
	for i, chunk := range decoded.Chunks() {
		if chunk.Type() != chunks[i].Type() {
			t.Errorf("chunk %d type %s doesn't match original %s", i, chunk.Type(), chunks[i].Type())
		}
		if !bytes.Equal(chunk.Data(), chunks[i].Data()) {
			t.Errorf("chunk %d data doesn't match original", i)
		}
		if chunk.Crc() != chunks[i].Crc() {
			t.Errorf("chunk %d crc %d doesn't match original %d", i, chunk.Crc(), chunks[i].Crc())
		}
	}
}

func TestDecodeEmptyFile(t *testing.T) {
	f, err := Decode(Header[:])
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Chunks()) != 0 {
		t.Errorf("file is expected to hold no chunks, got %d instead", len(f.Chunks()))
	}
}

func TestDecodeInvalidHeader(t *testing.T) {
	// corrupted signature
	encoded := FromChunks(testingChunks(t)).Encode()
	encoded[0] = 13
	_, err := Decode(encoded)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected ErrInvalidHeader, got %v instead", err)
	}

	// buffer shorter than the signature
	_, err = Decode([]byte{137, 80, 78})
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected ErrInvalidHeader, got %v instead", err)
	}

	// arbitrary non-png content
	_, err = Decode([]byte("this is not a png file at all"))
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected ErrInvalidHeader, got %v instead", err)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	encoded := FromChunks(testingChunks(t)).Encode()
	encoded = append(encoded, 0, 1, 2)
	_, err := Decode(encoded)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for trailing bytes, got %v instead", err)
	}
}

func TestDecodeCorruptedChunk(t *testing.T) {
	encoded := FromChunks(testingChunks(t)).Encode()
	// flip a data bit inside the second chunk
	encoded[HeaderSize+12+20+12+3] ^= 0x04
	_, err := Decode(encoded)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v instead", err)
	}
}

func TestChunkByType(t *testing.T) {
	f := FromChunks(testingChunks(t))

	chunk := f.ChunkByType("miDl")
	if chunk == nil {
		t.Fatal("chunk miDl is expected to be found")
	}
	s, err := chunk.DataString()
	if err != nil {
		t.Error(err)
	}
	if s != "I am another chunk" {
		t.Errorf("unexpected chunk data %q", s)
	}

	if f.ChunkByType("ZzZz") != nil {
		t.Error("chunk ZzZz is expected to be missing")
	}
}

func TestChunkByTypeFirstMatch(t *testing.T) {
	f := FromChunks([]*Chunk{
		chunkFromStrings(t, "TeSt", "payload one"),
		chunkFromStrings(t, "TeSt", "payload two"),
	})

	chunk := f.ChunkByType("TeSt")
	if chunk == nil {
		t.Fatal("chunk TeSt is expected to be found")
	}
	if !bytes.Equal(chunk.Data(), []byte("payload one")) {
		t.Error("lookup is expected to return the first inserted chunk")
	}
}

func TestAppendChunk(t *testing.T) {
	f := FromChunks(testingChunks(t))
	f.AppendChunk(chunkFromStrings(t, "TeSt", "appended"))
	if len(f.Chunks()) != 4 {
		t.Errorf("file is expected to hold 4 chunks, got %d instead", len(f.Chunks()))
	}
	last := f.Chunks()[3]
	if last.Type().String() != "TeSt" {
		t.Errorf("last chunk type is expected to be TeSt, got %s instead", last.Type())
	}
}

func TestRemoveChunk(t *testing.T) {
	f := FromChunks(testingChunks(t))
	removed, err := f.RemoveChunk("miDl")
	if err != nil {
		t.Fatal(err)
	}
	if removed.Type().String() != "miDl" {
		t.Errorf("removed chunk type is expected to be miDl, got %s instead", removed.Type())
	}
	if len(f.Chunks()) != 2 {
		t.Errorf("file is expected to hold 2 chunks, got %d instead", len(f.Chunks()))
	}
	if f.Chunks()[0].Type().String() != "FrSt" || f.Chunks()[1].Type().String() != "LASt" {
		t.Error("remaining chunks are expected to keep their relative order")
	}
	if f.ChunkByType("miDl") != nil {
		t.Error("chunk miDl is expected to be gone")
	}
}

func TestRemoveChunkNotFound(t *testing.T) {
	f := FromChunks(testingChunks(t))
	before := f.Encode()

	_, err := f.RemoveChunk("ZzZz")
	if !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("expected ErrChunkNotFound, got %v instead", err)
	}

	// the file must be completely unchanged
	if !bytes.Equal(f.Encode(), before) {
		t.Error("file changed after a failed removal")
	}
}

func TestEndToEndScenario(t *testing.T) {
	f := FromChunks(testingChunks(t))
	encoded := f.Encode()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}

	chunk := decoded.ChunkByType("FrSt")
	if chunk == nil {
		t.Fatal("chunk FrSt is expected to be found")
	}
	s, err := chunk.DataString()
	if err != nil {
		t.Error(err)
	}
	if s != "I am the first chunk" {
		t.Errorf("unexpected chunk data %q", s)
	}
}
