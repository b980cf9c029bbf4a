package config

import "time"

const (
	// Serial protocol
	BaudRate  = 9600
	Signature = "RADAR_READY"

	// Port detection
	HandshakeTimeout    = 2500 * time.Millisecond // Wait for the signature after reset
	MinHandshakeTimeout = 100 * time.Millisecond  // Shorter windows cannot outlast a reset
	DTRSettleDelay      = 80 * time.Millisecond   // Pause between DTR transitions
	PollInterval        = 10 * time.Millisecond   // Sleep between handshake polls
	ReadTimeout         = 10 * time.Millisecond   // Per-read OS timeout
	ReadChunk           = 128                     // Bytes requested per read
	LineBufferSize      = 2048                    // Accumulation buffer capacity
	MaxComPort          = 64                      // COM1..COMn fallback on Windows

	// Distance
	MinDistanceCm = -1  // "no echo"
	MaxDistanceCm = 500 // sensor ceiling

	// Radar display
	MaxRangeCm    = 300             // Distance mapped to the outer ring
	SweepSpeedDeg = 80.0            // Virtual sweep speed in degrees per second
	BlipLifetime  = 2 * time.Second // Blips vanish after this age
	BlipCapacity  = 2048            // Ring size, oldest evicted on overflow
	BlipAlphaMin  = 50.0 / 255.0    // Opacity floor for an expiring blip
	AspectRatio   = 0.5             // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 3               // Number of range rings
	SpokeStepDeg  = 15              // Angle between grid spokes
	TargetFPS     = 30              // Target frames per second

	// Demo mode
	DemoPortName     = "SIM0"
	DemoLineInterval = 60 * time.Millisecond

	// App
	AppName    = "SERIAL-RADAR"
	AppVersion = "1.0"
)
