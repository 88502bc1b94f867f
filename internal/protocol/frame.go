// Package protocol implements the GoCube BLE wire format.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message types sent by the cube.
const (
	MsgTypeRotation byte = 0x01
	MsgTypeState    byte = 0x02
	MsgTypeBattery  byte = 0x05
	MsgTypeCubeType byte = 0x08
)

// Command codes written to the RX characteristic.
const (
	CmdRequestBattery  byte = 0x32
	CmdRequestState    byte = 0x33
	CmdReboot          byte = 0x34
	CmdResetSolved     byte = 0x35
	CmdFlashBacklight  byte = 0x41
	CmdRequestCubeType byte = 0x56
)

// Frame delimiters.
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid message prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid message suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
)

// Message is one decoded frame.
type Message struct {
	Type    byte
	Payload []byte
}

// Parse decodes a raw BLE notification.
//
// Frame format: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A].
// The length byte counts everything after itself. The checksum is the byte
// sum of everything before it.
func Parse(data []byte) (*Message, error) {
	if len(data) < 6 {
		return nil, ErrMessageTooShort
	}
	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	end := 2 + length
	if length < 4 || len(data) < end {
		return nil, fmt.Errorf("%w: length byte %d, frame has %d bytes", ErrInvalidLength, length, len(data))
	}

	checksumIdx := end - 3
	if data[end-2] != FrameSuffix1 || data[end-1] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:checksumIdx] {
		sum += b
	}
	if sum != data[checksumIdx] {
		return nil, fmt.Errorf("%w: frame carries 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[checksumIdx], sum)
	}

	return &Message{
		Type:    data[2],
		Payload: data[3:checksumIdx],
	}, nil
}

// BuildCommand frames a payload-free command. Outgoing commands carry a fixed
// length byte of 0x01 rather than the notification length rule.
func BuildCommand(cmd byte) []byte {
	const length = byte(0x01)
	checksum := FramePrefix + length + cmd
	return []byte{FramePrefix, length, cmd, checksum, FrameSuffix1, FrameSuffix2}
}

// MessageTypeName returns a short name for a message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
