package twophase

import "errors"

// Sentinel errors for the twophase package.
var (
	// Input errors
	ErrMalformedInput   = errors.New("twophase: malformed facelet layout")
	ErrInvalidCubeState = errors.New("twophase: facelet layout is not a reachable cube")
	ErrInvalidNotation  = errors.New("twophase: invalid move notation")
	ErrInvalidMaxLength = errors.New("twophase: max length must not be negative")

	// Search errors
	ErrNoSolution = errors.New("twophase: no solution within max length")

	// Connection errors
	ErrNotConnected   = errors.New("twophase: not connected to device")
	ErrDeviceNotFound = errors.New("twophase: device not found")
)
