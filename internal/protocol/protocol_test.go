package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frame wraps a type and payload the way the cube does.
func frame(msgType byte, payload ...byte) []byte {
	data := []byte{FramePrefix, byte(len(payload) + 4), msgType}
	data = append(data, payload...)
	var sum byte
	for _, b := range data {
		sum += b
	}
	return append(data, sum, FrameSuffix1, FrameSuffix2)
}

func TestParseRotationFrame(t *testing.T) {
	msg, err := Parse(frame(MsgTypeRotation, 0x08, 0x03))
	require.NoError(t, err)
	assert.Equal(t, MsgTypeRotation, msg.Type)
	assert.Equal(t, []byte{0x08, 0x03}, msg.Payload)
	assert.Equal(t, "rotation", MessageTypeName(msg.Type))
}

func TestParseIgnoresTrailingBytes(t *testing.T) {
	data := append(frame(MsgTypeBattery, 87), 0xFF, 0xFF)
	msg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{87}, msg.Payload)
}

func TestParseErrors(t *testing.T) {
	good := frame(MsgTypeBattery, 50)

	badPrefix := append([]byte{}, good...)
	badPrefix[0] = 0x00

	badChecksum := append([]byte{}, good...)
	badChecksum[4]++

	badSuffix := append([]byte{}, good...)
	badSuffix[len(badSuffix)-1] = 0x00

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte{FramePrefix, 0x01}, ErrMessageTooShort},
		{"prefix", badPrefix, ErrInvalidPrefix},
		{"checksum", badChecksum, ErrInvalidChecksum},
		{"suffix", badSuffix, ErrInvalidSuffix},
		{"truncated", good[:len(good)-1], ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand(CmdResetSolved)
	assert.Equal(t, []byte{0x2A, 0x01, 0x35, 0x60, 0x0D, 0x0A}, cmd)
}

func TestDecodeRotation(t *testing.T) {
	events, err := DecodeRotation([]byte{0x04, 0x00, 0x09, 0x06})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "white", events[0].Color)
	assert.True(t, events[0].Clockwise)
	assert.Equal(t, byte('U'), events[0].Face())

	assert.Equal(t, "red", events[1].Color)
	assert.False(t, events[1].Clockwise)
	assert.Equal(t, byte('R'), events[1].Face())
	assert.Equal(t, byte(0x06), events[1].CenterOrientation)
}

func TestDecodeRotationErrors(t *testing.T) {
	_, err := DecodeRotation([]byte{0x01})
	assert.ErrorIs(t, err, ErrPayload)

	_, err = DecodeRotation(nil)
	assert.ErrorIs(t, err, ErrPayload)

	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.ErrorIs(t, err, ErrPayload)
}

func TestDecodeBatteryAndType(t *testing.T) {
	level, err := DecodeBattery([]byte{73})
	require.NoError(t, err)
	assert.Equal(t, 73, level)

	_, err = DecodeBattery(nil)
	assert.ErrorIs(t, err, ErrPayload)

	kind, err := DecodeCubeType([]byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, "edge", kind)
}
