package structures

// PresetEqualizerProfile is a closed enum of the device's built-in
// 8-band equalizer presets. Each carries a canonical 8-band adjustment
// set, in tenths of a dB.
type PresetEqualizerProfile uint16

const (
	PresetEqualizerProfileSoundcoreSignature PresetEqualizerProfile = 0
	PresetEqualizerProfileAcoustic           PresetEqualizerProfile = 1
	PresetEqualizerProfileBassBooster         PresetEqualizerProfile = 2
	PresetEqualizerProfileBassReducer        PresetEqualizerProfile = 3
	PresetEqualizerProfileClassical           PresetEqualizerProfile = 4
	PresetEqualizerProfilePodcast             PresetEqualizerProfile = 5
	PresetEqualizerProfileDance                PresetEqualizerProfile = 6
	PresetEqualizerProfileDeep                 PresetEqualizerProfile = 7
	PresetEqualizerProfileElectronic           PresetEqualizerProfile = 8
	PresetEqualizerProfileFlat                 PresetEqualizerProfile = 9
	PresetEqualizerProfileHipHop                PresetEqualizerProfile = 10
	PresetEqualizerProfileJazz                 PresetEqualizerProfile = 11
	PresetEqualizerProfileLatin                 PresetEqualizerProfile = 12
	PresetEqualizerProfileLounge                PresetEqualizerProfile = 13
	PresetEqualizerProfilePiano                 PresetEqualizerProfile = 14
	PresetEqualizerProfilePop                   PresetEqualizerProfile = 15
	PresetEqualizerProfileRnB                   PresetEqualizerProfile = 16
	PresetEqualizerProfileRock                  PresetEqualizerProfile = 17
	PresetEqualizerProfileSmallSpeakers         PresetEqualizerProfile = 18
	PresetEqualizerProfileSpokenWord           PresetEqualizerProfile = 19
	PresetEqualizerProfileTrebleBooster        PresetEqualizerProfile = 20
	PresetEqualizerProfileTrebleReducer        PresetEqualizerProfile = 21
)

var presetEqualizerProfileNames = map[PresetEqualizerProfile]string{
	PresetEqualizerProfileSoundcoreSignature: "SoundcoreSignature",
	PresetEqualizerProfileAcoustic:           "Acoustic",
	PresetEqualizerProfileBassBooster:        "BassBooster",
	PresetEqualizerProfileBassReducer:        "BassReducer",
	PresetEqualizerProfileClassical:          "Classical",
	PresetEqualizerProfilePodcast:            "Podcast",
	PresetEqualizerProfileDance:              "Dance",
	PresetEqualizerProfileDeep:               "Deep",
	PresetEqualizerProfileElectronic:         "Electronic",
	PresetEqualizerProfileFlat:               "Flat",
	PresetEqualizerProfileHipHop:             "HipHop",
	PresetEqualizerProfileJazz:               "Jazz",
	PresetEqualizerProfileLatin:              "Latin",
	PresetEqualizerProfileLounge:             "Lounge",
	PresetEqualizerProfilePiano:              "Piano",
	PresetEqualizerProfilePop:                "Pop",
	PresetEqualizerProfileRnB:                "RnB",
	PresetEqualizerProfileRock:               "Rock",
	PresetEqualizerProfileSmallSpeakers:      "SmallSpeakers",
	PresetEqualizerProfileSpokenWord:         "SpokenWord",
	PresetEqualizerProfileTrebleBooster:      "TrebleBooster",
	PresetEqualizerProfileTrebleReducer:      "TrebleReducer",
}

// String renders the profile's canonical camelCase-adjacent name, as
// used for SettingId-style wire identifiers.
func (p PresetEqualizerProfile) String() string {
	if s, ok := presetEqualizerProfileNames[p]; ok {
		return s
	}
	return "unknown"
}

// PresetEqualizerProfileFromName looks up a profile by its String() name.
func PresetEqualizerProfileFromName(name string) (PresetEqualizerProfile, bool) {
	for id, n := range presetEqualizerProfileNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// PresetEqualizerProfileNames lists every known profile's name, in
// ascending id order, for presentation as a Select option list.
func PresetEqualizerProfileNames() []string {
	names := make([]string, 0, len(presetEqualizerProfileNames))
	for i := PresetEqualizerProfile(0); i < PresetEqualizerProfile(len(presetEqualizerProfileNames)); i++ {
		names = append(names, presetEqualizerProfileNames[i])
	}
	return names
}

// presetAdjustments holds each profile's canonical 8-band curve, in
// tenths of a dB. SoundcoreSignature is flat (the device's default,
// untouched curve); the rest are representative hand-tuned curves
// matching the shapes their names describe.
var presetAdjustments = map[PresetEqualizerProfile][8]int16{
	PresetEqualizerProfileSoundcoreSignature: {0, 0, 0, 0, 0, 0, 0, 0},
	PresetEqualizerProfileAcoustic:           {40, 20, 0, 0, 20, 30, 20, 0},
	PresetEqualizerProfileBassBooster:        {60, 40, 20, 0, 0, 0, 0, 0},
	PresetEqualizerProfileBassReducer:        {-60, -40, -20, 0, 0, 0, 0, 0},
	PresetEqualizerProfileClassical:          {30, 20, 0, 0, 0, -20, -20, 30},
	PresetEqualizerProfilePodcast:            {-20, 0, 30, 40, 30, 0, -10, -20},
	PresetEqualizerProfileDance:              {30, 50, 20, 0, 0, 20, 30, 20},
	PresetEqualizerProfileDeep:               {40, 30, 20, 10, 0, -10, -20, -30},
	PresetEqualizerProfileElectronic:         {40, 30, 0, -10, 0, 10, 30, 40},
	PresetEqualizerProfileFlat:               {0, 0, 0, 0, 0, 0, 0, 0},
	PresetEqualizerProfileHipHop:             {40, 30, 10, 20, -10, 0, 20, 20},
	PresetEqualizerProfileJazz:               {30, 20, 0, 10, 10, 0, 20, 30},
	PresetEqualizerProfileLatin:              {20, 10, 0, -10, -10, 0, 20, 30},
	PresetEqualizerProfileLounge:             {-10, 20, 30, 10, 0, -10, 10, 0},
	PresetEqualizerProfilePiano:              {20, 10, 10, 20, 30, 30, 20, 30},
	PresetEqualizerProfilePop:                {-10, 0, 20, 30, 30, 20, 0, -10},
	PresetEqualizerProfileRnB:                {30, 50, 20, 0, -10, 10, 20, 30},
	PresetEqualizerProfileRock:               {30, 20, 10, 0, -10, 0, 20, 30},
	PresetEqualizerProfileSmallSpeakers:      {40, 30, 20, 10, 0, 0, 0, 0},
	PresetEqualizerProfileSpokenWord:         {-20, -10, 0, 10, 20, 20, 10, -10},
	PresetEqualizerProfileTrebleBooster:      {0, 0, 0, 0, 0, 20, 40, 60},
	PresetEqualizerProfileTrebleReducer:      {0, 0, 0, 0, 0, -20, -40, -60},
}

// VolumeAdjustments returns the profile's canonical 8-band curve.
func (p PresetEqualizerProfile) VolumeAdjustments() VolumeAdjustments {
	bands, ok := presetAdjustments[p]
	if !ok {
		bands = presetAdjustments[PresetEqualizerProfileSoundcoreSignature]
	}
	return NewVolumeAdjustments(bands[:])
}

// PresetEqualizerProfileFromID resolves a wire profile id to a known
// profile. ok is false for the custom-profile sentinel (0xFEFE) or any
// unrecognized id.
func PresetEqualizerProfileFromID(id uint16) (PresetEqualizerProfile, bool) {
	if id == CustomProfileID {
		return 0, false
	}
	if _, ok := presetEqualizerProfileNames[PresetEqualizerProfile(id)]; ok {
		return PresetEqualizerProfile(id), true
	}
	return 0, false
}
