package wire

import (
	"fmt"
	"strconv"
)

// FirmwareVersion is the device's "MM.mm" ASCII version string, compared
// lexicographically on (major, minor).
type FirmwareVersion struct {
	Major int
	Minor int
}

// ParseFirmwareVersion decodes the 5-byte ASCII form "NN.NN".
func ParseFirmwareVersion(b []byte) (FirmwareVersion, error) {
	if len(b) != 5 || b[2] != '.' {
		return FirmwareVersion{}, newParseError(0, "malformed firmware version %q", string(b))
	}
	major, err := strconv.Atoi(string(b[0:2]))
	if err != nil {
		return FirmwareVersion{}, newParseError(0, "malformed firmware major: %v", err)
	}
	minor, err := strconv.Atoi(string(b[3:5]))
	if err != nil {
		return FirmwareVersion{}, newParseError(0, "malformed firmware minor: %v", err)
	}
	return FirmwareVersion{Major: major, Minor: minor}, nil
}

// DecodeFirmwareVersion consumes 5 ASCII bytes from cur.
func DecodeFirmwareVersion(cur *Cursor) FirmwareVersion {
	raw := cur.Take(5)
	if cur.Err() != nil {
		return FirmwareVersion{}
	}
	fw, err := ParseFirmwareVersion(raw)
	if err != nil {
		cur.err = err
		return FirmwareVersion{}
	}
	return fw
}

// String renders the canonical "MM.mm" form.
func (f FirmwareVersion) String() string {
	return fmt.Sprintf("%02d.%02d", f.Major, f.Minor)
}

// Bytes encodes the canonical 5-byte ASCII form.
func (f FirmwareVersion) Bytes() []byte {
	return []byte(f.String())
}

// Compare returns -1, 0, or 1 comparing f to other on (major, minor).
func (f FirmwareVersion) Compare(other FirmwareVersion) int {
	if f.Major != other.Major {
		if f.Major < other.Major {
			return -1
		}
		return 1
	}
	if f.Minor != other.Minor {
		if f.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// SerialNumber is the device's 16-byte ASCII serial, carried verbatim.
type SerialNumber [16]byte

// ParseSerialNumber decodes a 16-byte ASCII serial number.
func ParseSerialNumber(b []byte) (SerialNumber, error) {
	var sn SerialNumber
	if len(b) != 16 {
		return sn, newParseError(0, "serial number must be 16 bytes, got %d", len(b))
	}
	copy(sn[:], b)
	return sn, nil
}

// DecodeSerialNumber consumes 16 ASCII bytes from cur.
func DecodeSerialNumber(cur *Cursor) SerialNumber {
	raw := cur.Take(16)
	if cur.Err() != nil {
		return SerialNumber{}
	}
	sn, err := ParseSerialNumber(raw)
	if err != nil {
		cur.err = err
	}
	return sn
}

func (s SerialNumber) String() string { return string(s[:]) }

// Bytes returns the raw 16-byte form.
func (s SerialNumber) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, s[:])
	return out
}
