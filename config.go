package bipring

import (
	"encoding/json"
	"fmt"
	"io"
)

// RingConfig describes one named queue instance: its byte capacity and,
// optionally, the maximum frame size it should be sized for when used
// through the framed layer (GrantFrame reserves maxFrame + header bytes, so
// a ring meant only for framed traffic needs CapacityBytes big enough to
// hold at least one full frame).
type RingConfig struct {
	Name          string `json:"name"`
	CapacityBytes int    `json:"capacity_bytes"`
	MaxFrameBytes int    `json:"max_frame_bytes,omitempty"`
}

// Config is the top-level document: a list of ring instances to create at
// startup, the way a device's board-bring-up step declares its UARTs and
// GPIOs.
type Config struct {
	Rings []RingConfig `json:"rings"`
}

// LoadConfig decodes a Config from r. It does not validate CapacityBytes
// beyond requiring it positive — NewStorage will panic on a bad value, which
// is the correct failure mode for a misconfigured board at boot.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("bipring: decode config: %w", err)
	}
	for i, rc := range cfg.Rings {
		if rc.Name == "" {
			return Config{}, fmt.Errorf("bipring: ring %d: name is required", i)
		}
		if rc.CapacityBytes <= 0 {
			return Config{}, fmt.Errorf("bipring: ring %q: capacity_bytes must be positive", rc.Name)
		}
	}
	return cfg, nil
}

// NamedRing is a configured ring instance alongside the name it was
// registered under.
type NamedRing struct {
	Name    string
	Handle  Handle
	Ring    Ring
	MaxSize int // configured MaxFrameBytes, 0 if the ring is byte-oriented only
}

// Provision constructs and registers one Storage/Ring per entry in cfg,
// returning them alongside the names they were registered under. Callers
// typically keep the returned slice (or index it by name) to hand Rings to
// producers/consumers elsewhere in the program.
func Provision(cfg Config) []NamedRing {
	out := make([]NamedRing, 0, len(cfg.Rings))
	for _, rc := range cfg.Rings {
		h, r := NewRegistered(rc.CapacityBytes)
		out = append(out, NamedRing{Name: rc.Name, Handle: h, Ring: r, MaxSize: rc.MaxFrameBytes})
	}
	return out
}
