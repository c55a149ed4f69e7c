package structures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonStatusCollectionRoundTrip(t *testing.T) {
	col := ButtonStatusCollection{
		LeftDoubleClick: ButtonStatus{
			IsTWS:                 true,
			TWSConnectedAction:    ButtonActionVolumeUp,
			TWSDisconnectedAction: ButtonActionVoiceAssistant,
			DisconnectedActive:    true,
		},
		LeftLongPress: ButtonStatus{
			IsTWS:                 true,
			TWSConnectedAction:    ButtonActionPlayPause,
			TWSDisconnectedAction: ButtonActionAmbientSoundMode,
		},
		RightDoubleClick: ButtonStatus{
			IsTWS:                 true,
			TWSConnectedAction:    ButtonActionNextSong,
			TWSDisconnectedAction: ButtonActionPreviousSong,
		},
		RightLongPress: ButtonStatus{
			IsTWS:                 true,
			TWSConnectedAction:    ButtonActionGameMode,
			TWSDisconnectedAction: ButtonActionVolumeDown,
		},
		LeftSingleClick: ButtonStatus{
			Enabled: true,
			Action:  ButtonActionPlayPause,
		},
		RightSingleClick: ButtonStatus{
			Enabled: false,
			Action:  ButtonActionNextSong,
		},
	}

	encoded := col.Encode()
	assert.Len(t, encoded, 12)

	decoded, rest, ok := DecodeButtonStatusCollection(encoded)
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, col, decoded)
	assert.Equal(t, ButtonActionVoiceAssistant, decoded.LeftDoubleClick.ActiveAction())
}

func TestDecodeButtonStatusCollectionTruncated(t *testing.T) {
	_, _, ok := DecodeButtonStatusCollection(make([]byte, 11))
	assert.False(t, ok)
}
