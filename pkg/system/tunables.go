package system

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

const (
	SwappinessPath         = "/proc/sys/vm/swappiness"
	GovernorPath           = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_governor"
	AvailableGovernorsPath = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_available_governors"
)

// ReadSwappiness returns the current vm.swappiness value.
func ReadSwappiness() (int, error) {
	raw, err := readTrimmed(SwappinessPath)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", SwappinessPath, err)
	}
	return value, nil
}

// ReadGovernor returns the scaling governor of cpu0.
func ReadGovernor() (string, error) {
	return readTrimmed(GovernorPath)
}

// AvailableGovernors lists the governors the cpufreq driver accepts.
func AvailableGovernors() ([]string, error) {
	raw, err := readTrimmed(AvailableGovernorsPath)
	if err != nil {
		return nil, err
	}
	return strings.Fields(raw), nil
}

func readTrimmed(path string) (string, error) {
	content, err := afero.ReadFile(AppFs, path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return strings.TrimSpace(string(content)), nil
}
