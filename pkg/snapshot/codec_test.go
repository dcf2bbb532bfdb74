package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"testing"
)

func TestCodec_JSONRoundTrip(t *testing.T) {
	snap := villageCapture()

	data, err := Encode(snap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Version != snap.Version {
		t.Errorf("Version = %q, want %q", got.Version, snap.Version)
	}
	if !got.CapturedAt.Equal(snap.CapturedAt) {
		t.Errorf("CapturedAt = %v, want %v", got.CapturedAt, snap.CapturedAt)
	}
	if len(got.Entities) != len(snap.Entities) {
		t.Fatalf("entities = %d, want %d", len(got.Entities), len(snap.Entities))
	}
	if got.Entities[0].ID != "tank-1" || len(got.Entities[0].Edges) != 1 {
		t.Errorf("first entity = %+v, want tank-1 with one edge", got.Entities[0])
	}
}

func TestCodec_CompressedRoundTrip(t *testing.T) {
	snap := villageCapture()

	data, err := EncodeCompressed(snap)
	if err != nil {
		t.Fatalf("EncodeCompressed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte(Magic)) {
		t.Fatalf("compressed capture does not start with %q", Magic)
	}

	got, err := DecodeCompressed(data)
	if err != nil {
		t.Fatalf("DecodeCompressed: %v", err)
	}
	if got.Version != snap.Version || len(got.Entities) != len(snap.Entities) {
		t.Errorf("round trip = %q/%d entities, want %q/%d",
			got.Version, len(got.Entities), snap.Version, len(snap.Entities))
	}
	if !got.CapturedAt.Equal(snap.CapturedAt) {
		t.Errorf("CapturedAt = %v, want %v", got.CapturedAt, snap.CapturedAt)
	}
}

func TestDecodeCompressed_Errors(t *testing.T) {
	valid, err := EncodeCompressed(villageCapture())
	if err != nil {
		t.Fatalf("EncodeCompressed: %v", err)
	}

	t.Run("wrong magic", func(t *testing.T) {
		if _, err := DecodeCompressed([]byte(`{"version":"1"}`)); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("too short", func(t *testing.T) {
		if _, err := DecodeCompressed([]byte("GC")); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("truncated checksum", func(t *testing.T) {
		frame := append([]byte(Magic), binary.AppendUvarint(nil, 100)...)
		frame = append(frame, 0x01)
		if _, err := DecodeCompressed(frame); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("error = %v, want ErrCorruptSnapshot", err)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		truncated := valid[:len(valid)-1]
		if _, err := DecodeCompressed(truncated); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("error = %v, want ErrCorruptSnapshot", err)
		}
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		corrupt := append([]byte(nil), valid...)
		corrupt[len(corrupt)-1] ^= 0xFF
		if _, err := DecodeCompressed(corrupt); !errors.Is(err, ErrChecksumMismatch) {
			t.Errorf("error = %v, want ErrChecksumMismatch", err)
		}
	})

	t.Run("valid checksum over non-snappy block", func(t *testing.T) {
		block := []byte("definitely not a snappy block")
		frame := append([]byte(Magic), binary.AppendUvarint(nil, uint64(len(block)))...)
		frame = binary.BigEndian.AppendUint32(frame, crc32.ChecksumIEEE(block))
		frame = append(frame, block...)
		if _, err := DecodeCompressed(frame); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("error = %v, want ErrCorruptSnapshot", err)
		}
	})
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode([]byte("{not json")); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("error = %v, want ErrCorruptSnapshot", err)
	}
}
