package twophase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twophase/internal/ble"
	"github.com/SeamusWaldron/twophase/internal/protocol"
)

// Device represents a discovered GoCube device.
// Devices are returned by the Scan function and can be passed to Connect.
type Device struct {
	Name string // Device name (e.g., "GoCube_XXXX")
	UUID string // Device address
	RSSI int16  // Signal strength in dBm (higher = stronger, typical range -30 to -90)

	result ble.ScanResult
}

// GoCube is a connected GoCube smart cube. It tracks the physical cube's
// state from the rotations it reports, starting from solved.
//
//	cube, err := twophase.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//
//	cube.OnMove(func(m twophase.Move) {
//	    fmt.Println("Move:", m.Notation())
//	})
type GoCube struct {
	client *ble.Client
	device Device
	log    *zap.Logger

	mu      sync.RWMutex
	tracker *Tracker

	// Callbacks
	onMove        func(Move)
	onPhaseChange func(Phase)
	onBattery     func(int)
	onSolved      func()
}

// Scan discovers nearby GoCube devices via Bluetooth Low Energy.
// Returns all devices found within the timeout period.
//
// Note: On macOS, BLE scanning sometimes requires multiple attempts.
// Ensure the cube is not connected to another device (e.g., phone app).
func Scan(ctx context.Context, timeout time.Duration, opts ...Option) ([]Device, error) {
	cfg := newConfig(opts)
	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, UUID: r.UUID, RSSI: r.RSSI, result: r}
	}
	return devices, nil
}

// Connect connects to a specific GoCube device. The physical cube should be
// solved when connecting, since tracking starts from the solved state.
func Connect(ctx context.Context, device Device, opts ...Option) (*GoCube, error) {
	cfg := newConfig(opts)

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	g := newGoCube(device, cfg)
	g.client = client
	client.SetMessageCallback(g.handleMessage)

	if err := client.Connect(ctx, device.result); err != nil {
		return nil, err
	}
	return g, nil
}

func newGoCube(device Device, cfg *config) *GoCube {
	tracker := NewTracker()
	tracker.SetHistory(cfg.moveHistory)
	return &GoCube{
		device:  device,
		log:     cfg.logger,
		tracker: tracker,
	}
}

// ConnectFirst scans for ten seconds and connects to the first GoCube found.
func ConnectFirst(ctx context.Context, opts ...Option) (*GoCube, error) {
	devices, err := Scan(ctx, 10*time.Second, opts...)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}
	return Connect(ctx, devices[0], opts...)
}

// Close disconnects from the cube.
func (g *GoCube) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Disconnect()
}

// IsConnected returns true if still connected to the cube.
func (g *GoCube) IsConnected() bool {
	return g.client != nil && g.client.IsConnected()
}

// DeviceName returns the connected device name.
func (g *GoCube) DeviceName() string {
	return g.device.Name
}

// Event callbacks

// OnMove sets a callback that fires for each move detected.
func (g *GoCube) OnMove(cb func(Move)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onMove = cb
}

// OnPhaseChange sets a callback that fires when the phase changes.
func (g *GoCube) OnPhaseChange(cb func(Phase)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onPhaseChange = cb
}

// OnBattery sets a callback for battery level updates.
func (g *GoCube) OnBattery(cb func(int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onBattery = cb
}

// OnSolved sets a callback that fires when the cube reaches the solved state.
func (g *GoCube) OnSolved(cb func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onSolved = cb
}

// State access

// Cube returns a copy of the tracked cube state.
func (g *GoCube) Cube() *Cube {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tracker.Cube()
}

// Phase returns the current phase.
func (g *GoCube) Phase() Phase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tracker.Phase()
}

// IsSolved returns true if the cube is currently solved.
func (g *GoCube) IsSolved() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tracker.IsSolved()
}

// Battery returns the last known battery level (0-100), or -1 if unknown.
func (g *GoCube) Battery() int {
	if g.client == nil {
		return -1
	}
	return g.client.Battery()
}

// Moves returns the move history since connection or last reset.
func (g *GoCube) Moves() []Move {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tracker.Moves()
}

// Control

// Reset resets the tracked state to solved.
// Does not affect the physical cube.
func (g *GoCube) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tracker.Reset()
}

// ResetSolved declares the physical cube's current state solved, on the
// device and in the tracked state.
func (g *GoCube) ResetSolved() error {
	if g.client == nil {
		return ErrNotConnected
	}
	if err := g.client.ResetSolved(); err != nil {
		return err
	}
	g.Reset()
	return nil
}

// FlashBacklight flashes the cube backlight.
func (g *GoCube) FlashBacklight() error {
	if g.client == nil {
		return ErrNotConnected
	}
	return g.client.FlashBacklight()
}

// Internal message handling

func (g *GoCube) handleMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		g.handleRotation(msg)
	case protocol.MsgTypeBattery:
		g.handleBattery(msg)
	default:
		g.log.Debug("ignored message", zap.String("type", protocol.MessageTypeName(msg.Type)))
	}
}

func (g *GoCube) handleRotation(msg *protocol.Message) {
	rotations, err := protocol.DecodeRotation(msg.Payload)
	if err != nil {
		g.log.Warn("bad rotation payload", zap.Error(err))
		return
	}

	now := time.Now()
	for _, rot := range rotations {
		move := rotationToMove(rot, now)

		g.mu.Lock()
		changed := g.tracker.ApplyMove(move)
		phase := g.tracker.Phase()
		moveCallback := g.onMove
		phaseCallback := g.onPhaseChange
		solvedCallback := g.onSolved
		g.mu.Unlock()

		// Fire callbacks outside the lock
		if moveCallback != nil {
			moveCallback(move)
		}
		if changed && phaseCallback != nil {
			phaseCallback(phase)
		}
		if changed && phase == PhaseSolved && solvedCallback != nil {
			solvedCallback()
		}
	}
}

func (g *GoCube) handleBattery(msg *protocol.Message) {
	level, err := protocol.DecodeBattery(msg.Payload)
	if err != nil {
		return
	}

	g.mu.RLock()
	cb := g.onBattery
	g.mu.RUnlock()

	if cb != nil {
		cb(level)
	}
}

func rotationToMove(rot protocol.Rotation, t time.Time) Move {
	turn := CCW
	if rot.Clockwise {
		turn = CW
	}
	return Move{Face: Face(string(rot.Face())), Turn: turn, Time: t}
}
