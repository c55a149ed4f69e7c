package structures

// BatteryLevel is a single-earbud battery reading. Most models report
// 0..=5; a handful report finer-grained 0..=9.
type BatteryLevel uint8

// DecodeBatteryLevel reads one battery level byte.
func DecodeBatteryLevel(buf []byte) (BatteryLevel, []byte, bool) {
	c := newCursor(buf)
	b, ok := c.takeByte()
	if !ok {
		return 0, buf, false
	}
	return BatteryLevel(b), c.remaining(), true
}

// Encode writes the battery level as a single byte.
func (b BatteryLevel) Encode() []byte {
	return []byte{byte(b)}
}

// DualBattery is the pair of battery readings reported by true-wireless
// earbuds.
type DualBattery struct {
	Left          BatteryLevel
	Right         BatteryLevel
	LeftCharging  bool
	RightCharging bool
}

// DecodeDualBattery reads left level, right level, left charging, right
// charging, in that order (the layout every observed model uses).
func DecodeDualBattery(buf []byte) (DualBattery, []byte, bool) {
	c := newCursor(buf)
	left, ok := c.takeByte()
	if !ok {
		return DualBattery{}, buf, false
	}
	right, ok := c.takeByte()
	if !ok {
		return DualBattery{}, buf, false
	}
	leftCharging, ok := c.takeByte()
	if !ok {
		return DualBattery{}, buf, false
	}
	rightCharging, ok := c.takeByte()
	if !ok {
		return DualBattery{}, buf, false
	}
	return DualBattery{
		Left:          BatteryLevel(left),
		Right:         BatteryLevel(right),
		LeftCharging:  leftCharging != 0,
		RightCharging: rightCharging != 0,
	}, c.remaining(), true
}

// Encode writes left level, right level, left charging, right charging.
func (d DualBattery) Encode() []byte {
	out := make([]byte, 4)
	out[0] = byte(d.Left)
	out[1] = byte(d.Right)
	if d.LeftCharging {
		out[2] = 1
	}
	if d.RightCharging {
		out[3] = 1
	}
	return out
}
