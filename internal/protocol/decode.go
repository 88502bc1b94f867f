package protocol

import (
	"errors"
	"fmt"
)

var ErrPayload = errors.New("protocol: malformed payload")

// Rotation is a single face turn reported by the cube.
type Rotation struct {
	FaceCode          byte // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte // Center piece orientation
	Clockwise         bool
	Color             string // blue, green, white, yellow, red or orange
}

var colorNames = [6]string{"blue", "green", "white", "yellow", "red", "orange"}

// colorFaces maps center colors to face letters for a cube held white up,
// green front.
var colorFaces = map[string]byte{
	"white":  'U',
	"yellow": 'D',
	"green":  'F',
	"blue":   'B',
	"red":    'R',
	"orange": 'L',
}

// Face returns the face letter (U, R, F, D, L or B) the rotation turned.
func (r Rotation) Face() byte {
	return colorFaces[r.Color]
}

// DecodeRotation decodes a rotation payload: pairs of [face_dir]
// [center_orientation] bytes. Even face codes are clockwise turns.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload) == 0 || len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload has %d bytes", ErrPayload, len(payload))
	}

	events := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorNames) {
			return nil, fmt.Errorf("%w: unknown face code 0x%02X", ErrPayload, code)
		}
		events = append(events, Rotation{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Clockwise:         code%2 == 0,
			Color:             colorNames[idx],
		})
	}
	return events, nil
}

// DecodeBattery returns the battery level in percent.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("%w: empty battery payload", ErrPayload)
	}
	return int(payload[0]), nil
}

// DecodeCubeType returns "standard" or "edge".
func DecodeCubeType(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", fmt.Errorf("%w: empty cube type payload", ErrPayload)
	}
	if payload[0] == 0x01 {
		return "edge", nil
	}
	return "standard", nil
}
