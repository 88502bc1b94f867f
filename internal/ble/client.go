// Package ble talks to GoCube devices over Bluetooth Low Energy.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/twophase/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

var (
	serviceUUID = mustParseUUID(protocol.ServiceUUID)
	txCharUUID  = mustParseUUID(protocol.TxCharUUID)
	rxCharUUID  = mustParseUUID(protocol.RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("ble: bad uuid %q: %v", s, err))
	}
	return u
}

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	log     *zap.Logger
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	battery    int

	onMessage func(*protocol.Message)
}

// NewClient enables the default adapter.
func NewClient(log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{
		adapter: adapter,
		log:     log,
		battery: -1,
	}, nil
}

// SetMessageCallback sets the callback for decoded frames. It runs on the
// adapter's notification goroutine.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// Scan collects GoCube advertisements until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
	)
	done := make(chan error, 1)
	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			addr := result.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{
				Name:    name,
				UUID:    addr,
				RSSI:    result.RSSI,
				Address: result.Address,
			})
			c.log.Debug("found device", zap.String("name", name), zap.String("address", addr))
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	if err := c.adapter.StopScan(); err != nil {
		return nil, fmt.Errorf("failed to stop scan: %w", err)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// Connect connects to a device found by Scan.
func (c *Client) Connect(ctx context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.mu.Unlock()

	c.log.Info("connected", zap.String("name", result.Name), zap.String("address", result.UUID))
	return c.RequestBattery()
}

// Disconnect drops the connection. It is a no-op when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.battery = -1
	return err
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last reported level, or -1 if none arrived yet.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a framed command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		if _, err := c.rxChar.Write(data); err != nil {
			return fmt.Errorf("failed to send command 0x%02X: %w", cmd, err)
		}
	}
	return nil
}

func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// ResetSolved tells the cube its current physical state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.Parse(data)
	if err != nil {
		c.log.Debug("dropped frame", zap.Binary("data", data), zap.Error(err))
		return
	}

	if msg.Type == protocol.MsgTypeBattery {
		if level, err := protocol.DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()
	if cb != nil {
		cb(msg)
	}
}
