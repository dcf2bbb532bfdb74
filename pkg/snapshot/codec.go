package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/golang/snappy"
)

// Magic prefixes every compressed capture file.
const Magic = "GCSN"

const magicLen = len(Magic)

// Encode renders a capture as indented JSON, the interchange format
// captures are authored and diffed in.
func Encode(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a plain JSON capture.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &s, nil
}

// EncodeCompressed frames a capture for archival transfer:
//
//	[magic 4][uvarint block length][crc32 4, big endian][snappy block]
//
// The checksum covers the compressed block.
func EncodeCompressed(s *Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	block := snappy.Encode(nil, raw)

	buf := make([]byte, 0, magicLen+binary.MaxVarintLen64+4+len(block))
	buf = append(buf, Magic...)
	buf = binary.AppendUvarint(buf, uint64(len(block)))
	buf = binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(block))
	return append(buf, block...), nil
}

// DecodeCompressed reverses EncodeCompressed, verifying the length header
// and checksum before decompressing.
func DecodeCompressed(data []byte) (*Snapshot, error) {
	if len(data) < magicLen || string(data[:magicLen]) != Magic {
		return nil, ErrUnsupportedFormat
	}
	rest := data[magicLen:]

	blockLen, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad length header", ErrCorruptSnapshot)
	}
	rest = rest[n:]
	if len(rest) < 4 {
		return nil, fmt.Errorf("%w: truncated checksum", ErrCorruptSnapshot)
	}
	want := binary.BigEndian.Uint32(rest[:4])
	block := rest[4:]
	if uint64(len(block)) != blockLen {
		return nil, fmt.Errorf("%w: header says %d bytes, payload has %d",
			ErrCorruptSnapshot, blockLen, len(block))
	}
	if crc32.ChecksumIEEE(block) != want {
		return nil, ErrChecksumMismatch
	}

	raw, err := snappy.Decode(nil, block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return Decode(raw)
}
