package wire

// Battery is a single cell's charge level (0-5, device-reported granularity)
// and charging state.
type Battery struct {
	Level      uint8
	IsCharging bool
}

// DualBattery holds independent left/right earbud battery state.
type DualBattery struct {
	Left  Battery
	Right Battery
}

// DecodeSingleBattery consumes one level byte and one charging byte.
func DecodeSingleBattery(cur *Cursor) Battery {
	level := cur.U8()
	charging := cur.Bool()
	return Battery{Level: level, IsCharging: charging}
}

// EncodeSingleBattery appends a single battery's wire form.
func EncodeSingleBattery(b Battery) []byte {
	return []byte{b.Level, boolByte(b.IsCharging)}
}

// DecodeDualBattery consumes two level bytes followed by two charging bytes,
// per spec §4.2: "Two bytes of level (0..=5) plus two bytes of charging (0/1)."
func DecodeDualBattery(cur *Cursor) DualBattery {
	leftLevel := cur.U8()
	rightLevel := cur.U8()
	leftCharging := cur.Bool()
	rightCharging := cur.Bool()
	return DualBattery{
		Left:  Battery{Level: leftLevel, IsCharging: leftCharging},
		Right: Battery{Level: rightLevel, IsCharging: rightCharging},
	}
}

// EncodeDualBattery appends a dual battery's wire form.
func EncodeDualBattery(b DualBattery) []byte {
	return []byte{
		b.Left.Level, b.Right.Level,
		boolByte(b.Left.IsCharging), boolByte(b.Right.IsCharging),
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
