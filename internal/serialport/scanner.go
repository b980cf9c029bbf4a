package serialport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"serial-radar.klederson.com/internal/config"
)

// Scanner finds the radar by resetting each candidate port and waiting for
// the signature line it prints on boot.
type Scanner struct {
	opener           Opener
	opts             PortOptions
	signature        []byte
	handshakeTimeout time.Duration
	settleDelay      time.Duration
	pollInterval     time.Duration
	log              *zap.SugaredLogger

	now   func() time.Time
	sleep func(time.Duration)
}

// ScannerOption customizes a Scanner.
type ScannerOption func(*Scanner)

// WithLogger sets the scanner's logger.
func WithLogger(log *zap.SugaredLogger) ScannerOption {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHandshakeTimeout bounds how long each candidate gets to answer.
func WithHandshakeTimeout(d time.Duration) ScannerOption {
	return func(s *Scanner) {
		if d > 0 {
			s.handshakeTimeout = d
		}
	}
}

// WithClock replaces the wall clock and sleep used during the handshake.
func WithClock(now func() time.Time, sleep func(time.Duration)) ScannerOption {
	return func(s *Scanner) {
		s.now = now
		s.sleep = sleep
	}
}

// NewScanner creates a scanner that opens candidates through opener.
func NewScanner(opener Opener, opts PortOptions, signature string, options ...ScannerOption) *Scanner {
	s := &Scanner{
		opener:           opener,
		opts:             opts,
		signature:        []byte(signature),
		handshakeTimeout: config.HandshakeTimeout,
		settleDelay:      config.DTRSettleDelay,
		pollInterval:     config.PollInterval,
		log:              zap.NewNop().Sugar(),
		now:              time.Now,
		sleep:            time.Sleep,
	}
	for _, o := range options {
		o(s)
	}
	s.log = s.log.With("component", "scanner")
	return s
}

// Detect tries each candidate in order and returns the first connection
// whose device printed the signature. Failed candidates are closed before
// the next one is opened.
func (s *Scanner) Detect(ctx context.Context, candidates []string) (*Conn, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidate ports", ErrNotFound)
	}

	s.log.Debugw("Scanning serial ports", "ports", candidates, "signature", string(s.signature))

	var errs []error
	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conn, err := s.probe(ctx, name)
		if err == nil {
			s.log.Infow("Found radar", "port", name)
			return conn, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		s.log.Debugw("Skipping port", "port", name, "error", err)
		errs = append(errs, err)
	}

	return nil, fmt.Errorf("%w (signature %q, tried %d ports): %w",
		ErrNotFound, s.signature, len(candidates), errors.Join(errs...))
}

func (s *Scanner) probe(ctx context.Context, name string) (*Conn, error) {
	conn, err := open(s.opener, name, s.opts, s.log)
	if err != nil {
		return nil, err
	}

	if err := s.handshake(ctx, conn); err != nil {
		if cerr := conn.Close(); cerr != nil {
			s.log.Debugw("Close failed", "port", name, "error", cerr)
		}
		return nil, err
	}
	return conn, nil
}

func (s *Scanner) handshake(ctx context.Context, conn *Conn) error {
	if err := conn.resetDevice(s.settleDelay, s.sleep); err != nil {
		return fmt.Errorf("%s: reset: %w", conn.Name(), err)
	}

	deadline := s.now().Add(s.handshakeTimeout)
	for s.now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for {
			line, ok := conn.ReadLine()
			if !ok {
				break
			}
			if bytes.Contains(line, s.signature) {
				return nil
			}
		}
		s.sleep(s.pollInterval)
	}

	return fmt.Errorf("%s: %w after %s", conn.Name(), ErrHandshakeTimeout, s.handshakeTimeout)
}
