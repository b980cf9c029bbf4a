package serialport

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"serial-radar.klederson.com/internal/config"
)

// listPorts is swapped out in tests.
var listPorts = enumerator.GetDetailedPortsList

// Candidates returns the serial endpoints to scan, in a fixed order.
func Candidates(log *zap.SugaredLogger) ([]string, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	ports, err := listPorts()
	if err != nil && runtime.GOOS != "windows" {
		return nil, fmt.Errorf("%w: enumerate serial ports: %w", ErrNotFound, err)
	}

	names := make([]string, 0, len(ports))
	for _, p := range ports {
		if p.IsUSB {
			log.Debugw("Serial port", "port", p.Name, "vid", p.VID, "pid", p.PID, "product", p.Product)
		} else {
			log.Debugw("Serial port", "port", p.Name)
		}
		names = append(names, p.Name)
	}

	if len(names) == 0 && runtime.GOOS == "windows" {
		log.Debugw("Enumeration empty, falling back to numbered COM ports", "error", err)
		return SequentialNames("COM", 1, config.MaxComPort), nil
	}

	SortNatural(names)
	return names, nil
}

// SequentialNames returns prefix+first .. prefix+last.
func SequentialNames(prefix string, first, last int) []string {
	if last < first {
		return nil
	}
	names := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		names = append(names, prefix+strconv.Itoa(i))
	}
	return names
}

// SortNatural orders names by their non-numeric stem and then by any
// trailing number, so COM2 comes before COM10.
func SortNatural(names []string) {
	slices.SortStableFunc(names, func(a, b string) int {
		as, an := splitTrailingNumber(a)
		bs, bn := splitTrailingNumber(b)
		if c := strings.Compare(as, bs); c != 0 {
			return c
		}
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
}

func splitTrailingNumber(s string) (string, int) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, -1
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, -1
	}
	return s[:i], n
}
