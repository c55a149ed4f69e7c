package structures

import (
	"fmt"
	"strconv"
)

// FirmwareVersion is two two-digit decimals, ASCII-encoded on the wire as
// "MM.mm". Ordering is lexicographic by (Major, Minor).
type FirmwareVersion struct {
	Major uint8
	Minor uint8
}

// DecodeFirmwareVersion reads a fixed 5-byte "MM.mm" ASCII field.
func DecodeFirmwareVersion(buf []byte) (FirmwareVersion, []byte, bool) {
	c := newCursor(buf)
	raw, ok := c.takeN(5)
	if !ok {
		return FirmwareVersion{}, buf, false
	}
	if raw[2] != '.' {
		return FirmwareVersion{}, buf, false
	}
	major, err := strconv.Atoi(string(raw[0:2]))
	if err != nil {
		return FirmwareVersion{}, buf, false
	}
	minor, err := strconv.Atoi(string(raw[3:5]))
	if err != nil {
		return FirmwareVersion{}, buf, false
	}
	return FirmwareVersion{Major: uint8(major), Minor: uint8(minor)}, c.remaining(), true
}

// Encode writes the version back as "MM.mm" ASCII.
func (v FirmwareVersion) Encode() []byte {
	return []byte(fmt.Sprintf("%02d.%02d", v.Major, v.Minor))
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%02d.%02d", v.Major, v.Minor)
}

// Less reports whether v sorts before o, comparing Major then Minor.
func (v FirmwareVersion) Less(o FirmwareVersion) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	return v.Minor < o.Minor
}

// DualFirmwareVersion holds either or both earbuds' firmware. At least
// one side must be present.
type DualFirmwareVersion struct {
	Left  *FirmwareVersion
	Right *FirmwareVersion
}

// Valid reports whether the dual version has at least one side present,
// per spec: "never both absent".
func (d DualFirmwareVersion) Valid() bool {
	return d.Left != nil || d.Right != nil
}

// DecodeDualFirmwareVersion reads two consecutive 5-byte "MM.mm" fields,
// left then right. Models that can omit one side decode both anyway and
// let the caller null one out; the A3933 state snapshot always carries
// both.
func DecodeDualFirmwareVersion(buf []byte) (DualFirmwareVersion, []byte, bool) {
	left, rest, ok := DecodeFirmwareVersion(buf)
	if !ok {
		return DualFirmwareVersion{}, buf, false
	}
	right, rest, ok := DecodeFirmwareVersion(rest)
	if !ok {
		return DualFirmwareVersion{}, buf, false
	}
	return DualFirmwareVersion{Left: &left, Right: &right}, rest, true
}

// Encode writes Left then Right, each as a 5-byte "MM.mm" field. Encode
// panics if either side is nil; callers working with a DualFirmwareVersion
// that may have an absent side must substitute a zero FirmwareVersion
// first.
func (d DualFirmwareVersion) Encode() []byte {
	out := make([]byte, 0, 10)
	out = append(out, d.Left.Encode()...)
	out = append(out, d.Right.Encode()...)
	return out
}
