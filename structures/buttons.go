package structures

// ButtonAction is the closed set of actions a physical button press can
// trigger.
type ButtonAction uint8

const (
	ButtonActionVolumeUp ButtonAction = iota
	ButtonActionVolumeDown
	ButtonActionPreviousSong
	ButtonActionNextSong
	ButtonActionAmbientSoundMode
	ButtonActionVoiceAssistant
	ButtonActionPlayPause
	_ // 7 unused on the wire
	_ // 8 unused on the wire
	ButtonActionGameMode
)

var buttonActionNames = map[ButtonAction]string{
	ButtonActionVolumeUp:         "volumeUp",
	ButtonActionVolumeDown:       "volumeDown",
	ButtonActionPreviousSong:     "previousSong",
	ButtonActionNextSong:         "nextSong",
	ButtonActionAmbientSoundMode: "ambientSoundMode",
	ButtonActionVoiceAssistant:   "voiceAssistant",
	ButtonActionPlayPause:        "playPause",
	ButtonActionGameMode:         "gameMode",
}

func (a ButtonAction) String() string {
	if s, ok := buttonActionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ButtonActionFromByte decodes a 4-bit action nibble, per spec's
// ButtonStatusCollection wire layout.
func ButtonActionFromByte(b byte) (ButtonAction, bool) {
	_, ok := buttonActionNames[ButtonAction(b)]
	return ButtonAction(b), ok
}

// ButtonActionFromName looks up an action by its String() name.
func ButtonActionFromName(name string) (ButtonAction, bool) {
	for id, n := range buttonActionNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// ButtonActionNames lists every known action's name, in declaration
// order, for presentation as a Select option list.
func ButtonActionNames() []string {
	order := []ButtonAction{
		ButtonActionVolumeUp, ButtonActionVolumeDown, ButtonActionPreviousSong,
		ButtonActionNextSong, ButtonActionAmbientSoundMode, ButtonActionVoiceAssistant,
		ButtonActionPlayPause, ButtonActionGameMode,
	}
	names := make([]string, len(order))
	for i, a := range order {
		names[i] = a.String()
	}
	return names
}

// ButtonStatus is one logical button's current configuration: whether
// it is enabled, and what it does. TWS-capable buttons carry distinct
// actions for when the earbud is and is not connected to its twin;
// non-TWS buttons (typically a single-click) carry one fixed action
// plus a plain enabled flag.
type ButtonStatus struct {
	IsTWS bool

	// Populated when !IsTWS.
	Enabled bool
	Action  ButtonAction

	// Populated when IsTWS.
	TWSConnectedAction    ButtonAction
	TWSDisconnectedAction ButtonAction
	// DisconnectedActive selects which of the two TWS actions is
	// presently in effect on the wire's single "action" setting call.
	DisconnectedActive bool
}

// ActiveAction returns whichever action currently governs the button.
func (b ButtonStatus) ActiveAction() ButtonAction {
	if !b.IsTWS {
		return b.Action
	}
	if b.DisconnectedActive {
		return b.TWSDisconnectedAction
	}
	return b.TWSConnectedAction
}

// decodeNoTWSButton reads [enabled, action] where action occupies the
// low nibble.
func decodeNoTWSButton(buf []byte) (ButtonStatus, []byte, bool) {
	c := newCursor(buf)
	enabled, ok := c.takeByte()
	if !ok {
		return ButtonStatus{}, buf, false
	}
	raw, ok := c.takeByte()
	if !ok {
		return ButtonStatus{}, buf, false
	}
	action, ok := ButtonActionFromByte(raw & 0x0F)
	if !ok {
		return ButtonStatus{}, buf, false
	}
	return ButtonStatus{IsTWS: false, Enabled: enabled != 0, Action: action}, c.remaining(), true
}

func (b ButtonStatus) encodeNoTWS() []byte {
	enabled := byte(0)
	if b.Enabled {
		enabled = 1
	}
	return []byte{enabled, byte(b.Action) & 0x0F}
}

// decodeTWSButton reads [disconnected_switch, packed_action] where the
// packed byte holds the disconnected action in the high nibble and the
// connected action in the low nibble.
func decodeTWSButton(buf []byte) (ButtonStatus, []byte, bool) {
	c := newCursor(buf)
	sw, ok := c.takeByte()
	if !ok {
		return ButtonStatus{}, buf, false
	}
	raw, ok := c.takeByte()
	if !ok {
		return ButtonStatus{}, buf, false
	}
	connected, ok := ButtonActionFromByte(raw & 0x0F)
	if !ok {
		return ButtonStatus{}, buf, false
	}
	disconnected, ok := ButtonActionFromByte((raw & 0xF0) >> 4)
	if !ok {
		return ButtonStatus{}, buf, false
	}
	return ButtonStatus{
		IsTWS:                 true,
		TWSConnectedAction:    connected,
		TWSDisconnectedAction: disconnected,
		DisconnectedActive:    sw != 0,
	}, c.remaining(), true
}

func (b ButtonStatus) encodeTWS() []byte {
	sw := byte(0)
	if b.DisconnectedActive {
		sw = 1
	}
	packed := (byte(b.TWSDisconnectedAction)&0x0F)<<4 | (byte(b.TWSConnectedAction) & 0x0F)
	return []byte{sw, packed}
}

// ButtonStatusCollection is the full per-model button table. The order
// and TWS-ness of entries is model-specific; A3933's layout (the
// reference model) is left-double, left-long, right-double, right-long,
// left-single, right-single, matching the wire order its firmware uses
// (single-click entries trail the TWS pairs).
type ButtonStatusCollection struct {
	LeftDoubleClick  ButtonStatus
	LeftLongPress    ButtonStatus
	RightDoubleClick ButtonStatus
	RightLongPress   ButtonStatus
	LeftSingleClick  ButtonStatus
	RightSingleClick ButtonStatus
}

// DecodeButtonStatusCollection reads the 6-entry, 12-byte A3933-layout
// button table.
func DecodeButtonStatusCollection(buf []byte) (ButtonStatusCollection, []byte, bool) {
	var col ButtonStatusCollection
	rest := buf
	var ok bool

	col.LeftDoubleClick, rest, ok = decodeTWSButton(rest)
	if !ok {
		return ButtonStatusCollection{}, buf, false
	}
	col.LeftLongPress, rest, ok = decodeTWSButton(rest)
	if !ok {
		return ButtonStatusCollection{}, buf, false
	}
	col.RightDoubleClick, rest, ok = decodeTWSButton(rest)
	if !ok {
		return ButtonStatusCollection{}, buf, false
	}
	col.RightLongPress, rest, ok = decodeTWSButton(rest)
	if !ok {
		return ButtonStatusCollection{}, buf, false
	}
	col.LeftSingleClick, rest, ok = decodeNoTWSButton(rest)
	if !ok {
		return ButtonStatusCollection{}, buf, false
	}
	col.RightSingleClick, rest, ok = decodeNoTWSButton(rest)
	if !ok {
		return ButtonStatusCollection{}, buf, false
	}
	return col, rest, true
}

// Encode is the exact inverse of DecodeButtonStatusCollection.
func (col ButtonStatusCollection) Encode() []byte {
	out := make([]byte, 0, 12)
	out = append(out, col.LeftDoubleClick.encodeTWS()...)
	out = append(out, col.LeftLongPress.encodeTWS()...)
	out = append(out, col.RightDoubleClick.encodeTWS()...)
	out = append(out, col.RightLongPress.encodeTWS()...)
	out = append(out, col.LeftSingleClick.encodeNoTWS()...)
	out = append(out, col.RightSingleClick.encodeNoTWS()...)
	return out
}
