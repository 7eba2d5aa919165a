package png

import (
	"errors"
	"testing"
)

func TestChunkTypeFromBytes(t *testing.T) {
	ct := ChunkTypeFromBytes([4]byte{82, 117, 83, 116})
	if ct.Bytes() != [4]byte{82, 117, 83, 116} {
		t.Errorf("unexpected bytes: %v", ct.Bytes())
	}
	if ct.String() != "RuSt" {
		t.Errorf("string form is expected to be RuSt, got %q instead", ct.String())
	}
}

func TestChunkTypeFromString(t *testing.T) {
	ct, err := ChunkTypeFromString("RuSt")
	if err != nil {
		t.Error(err)
	}
	if ct != ChunkTypeFromBytes([4]byte{82, 117, 83, 116}) {
		t.Errorf("unexpected chunk type %v", ct)
	}
}

func TestChunkTypeFromInvalidString(t *testing.T) {
	invalid := []string{"", "Ru", "RuSty", "Ru1t", "Ru t", "Ru_t"}
	for _, name := range invalid {
		_, err := ChunkTypeFromString(name)
		if !errors.Is(err, ErrInvalidTypeName) {
			t.Errorf("name %q is expected to produce ErrInvalidTypeName, got %v instead", name, err)
		}
	}
}

func TestChunkTypeProperties(t *testing.T) {
	cases := []struct {
		name       string
		critical   bool
		public     bool
		reserved   bool
		safeToCopy bool
	}{
		{"RuSt", true, false, true, true},
		{"ruSt", false, false, true, true},
		{"RUSt", true, true, true, true},
		{"RuST", true, false, true, false},
		{"Rust", true, false, false, true},
	}

	for _, c := range cases {
		ct, err := ChunkTypeFromString(c.name)
		if err != nil {
			t.Fatal(err)
		}
		if ct.IsCritical() != c.critical {
			t.Errorf("%s: IsCritical is expected to be %v", c.name, c.critical)
		}
		if ct.IsPublic() != c.public {
			t.Errorf("%s: IsPublic is expected to be %v", c.name, c.public)
		}
		if ct.IsReservedBitValid() != c.reserved {
			t.Errorf("%s: IsReservedBitValid is expected to be %v", c.name, c.reserved)
		}
		if ct.IsSafeToCopy() != c.safeToCopy {
			t.Errorf("%s: IsSafeToCopy is expected to be %v", c.name, c.safeToCopy)
		}
	}
}

func TestChunkTypeValidity(t *testing.T) {
	ct, err := ChunkTypeFromString("RuSt")
	if err != nil {
		t.Fatal(err)
	}
	if !ct.IsValid() {
		t.Error("RuSt is expected to be valid")
	}

	// lowercase reserved byte
	ct, err = ChunkTypeFromString("Rust")
	if err != nil {
		t.Fatal(err)
	}
	if ct.IsValid() {
		t.Error("Rust is expected to be invalid due to the reserved bit")
	}

	// raw-byte construction accepts arbitrary codes but reports them
	// invalid
	ct = ChunkTypeFromBytes([4]byte{82, 117, 49, 116})
	if ct.IsValid() {
		t.Errorf("%v is expected to be invalid", ct.Bytes())
	}
}
