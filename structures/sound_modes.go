package structures

// AmbientSoundMode selects the headphone's overall ambient behavior.
type AmbientSoundMode uint8

const (
	AmbientSoundModeNormal AmbientSoundMode = iota
	AmbientSoundModeTransparency
	AmbientSoundModeNoiseCanceling
)

var ambientSoundModeNames = map[AmbientSoundMode]string{
	AmbientSoundModeNormal:         "normal",
	AmbientSoundModeTransparency:   "transparency",
	AmbientSoundModeNoiseCanceling: "noiseCanceling",
}

func (m AmbientSoundMode) String() string {
	if s, ok := ambientSoundModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// AmbientSoundModeFromName looks up a mode by its String() name.
func AmbientSoundModeFromName(name string) (AmbientSoundMode, bool) {
	for id, n := range ambientSoundModeNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// AmbientSoundModeNames lists every known mode's name, in ascending id
// order, for presentation as a Select option list.
func AmbientSoundModeNames() []string {
	return []string{
		AmbientSoundModeNormal.String(),
		AmbientSoundModeTransparency.String(),
		AmbientSoundModeNoiseCanceling.String(),
	}
}

// TransparencyMode is only meaningful while AmbientSoundMode is
// Transparency.
type TransparencyMode uint8

const (
	TransparencyModeFullyTransparent TransparencyMode = iota
	TransparencyModeVocalMode
)

var transparencyModeNames = map[TransparencyMode]string{
	TransparencyModeFullyTransparent: "fullyTransparent",
	TransparencyModeVocalMode:        "vocalMode",
}

func (m TransparencyMode) String() string {
	if s, ok := transparencyModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// TransparencyModeFromName looks up a mode by its String() name.
func TransparencyModeFromName(name string) (TransparencyMode, bool) {
	for id, n := range transparencyModeNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// TransparencyModeNames lists every known mode's name, in ascending id
// order, for presentation as a Select option list.
func TransparencyModeNames() []string {
	return []string{TransparencyModeFullyTransparent.String(), TransparencyModeVocalMode.String()}
}

// NoiseCancelingMode is only meaningful while AmbientSoundMode is
// NoiseCanceling. Names match the classic Soundcore "scene" modes; newer
// model families reuse the same byte position for Manual/Adaptive/MultiScene
// and are represented by a distinct per-model type where that applies.
type NoiseCancelingMode uint8

const (
	NoiseCancelingModeTransport NoiseCancelingMode = iota
	NoiseCancelingModeOutdoor
	NoiseCancelingModeIndoor
)

var noiseCancelingModeNames = map[NoiseCancelingMode]string{
	NoiseCancelingModeTransport: "transport",
	NoiseCancelingModeOutdoor:   "outdoor",
	NoiseCancelingModeIndoor:    "indoor",
}

func (m NoiseCancelingMode) String() string {
	if s, ok := noiseCancelingModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// NoiseCancelingModeFromName looks up a mode by its String() name.
func NoiseCancelingModeFromName(name string) (NoiseCancelingMode, bool) {
	for id, n := range noiseCancelingModeNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// NoiseCancelingModeNames lists every known mode's name, in ascending id
// order, for presentation as a Select option list.
func NoiseCancelingModeNames() []string {
	return []string{
		NoiseCancelingModeTransport.String(),
		NoiseCancelingModeOutdoor.String(),
		NoiseCancelingModeIndoor.String(),
	}
}

// SoundModes is the base shape carried by most Soundcore models: an
// overall ambient mode plus the three sub-modes/levels meaningful under
// specific ambient settings.
type SoundModes struct {
	AmbientSoundMode     AmbientSoundMode
	NoiseCancelingMode   NoiseCancelingMode
	TransparencyMode     TransparencyMode
	CustomNoiseCanceling uint8 // 0..=10
}

// DecodeSoundModes reads ambient mode, noise canceling mode, transparency
// mode, and custom noise canceling level, one byte each, in that order.
func DecodeSoundModes(buf []byte) (SoundModes, []byte, bool) {
	c := newCursor(buf)
	ambient, ok := c.takeByte()
	if !ok {
		return SoundModes{}, buf, false
	}
	nc, ok := c.takeByte()
	if !ok {
		return SoundModes{}, buf, false
	}
	transparency, ok := c.takeByte()
	if !ok {
		return SoundModes{}, buf, false
	}
	customNC, ok := c.takeByte()
	if !ok {
		return SoundModes{}, buf, false
	}
	return SoundModes{
		AmbientSoundMode:     AmbientSoundMode(ambient),
		NoiseCancelingMode:   NoiseCancelingMode(nc),
		TransparencyMode:     TransparencyMode(transparency),
		CustomNoiseCanceling: clampCustomNC(customNC),
	}, c.remaining(), true
}

func clampCustomNC(v uint8) uint8 {
	if v > 10 {
		return 10
	}
	return v
}

// Encode writes ambient mode, noise canceling mode, transparency mode,
// custom noise canceling level.
func (s SoundModes) Encode() []byte {
	return []byte{
		byte(s.AmbientSoundMode),
		byte(s.NoiseCancelingMode),
		byte(s.TransparencyMode),
		clampCustomNC(s.CustomNoiseCanceling),
	}
}
