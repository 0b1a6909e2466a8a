package plan

import (
	"fmt"
	"slices"
	"strings"

	"maid/pkg/model"
	"maid/pkg/system"
)

// ValidateGovernor rejects unknown governors and, when the cpufreq driver
// lists what it supports, governors the driver does not offer.
func ValidateGovernor(governor string) error {
	if errs := model.ValidateGovernor("governor", governor); len(errs) > 0 {
		return errs
	}
	available, err := system.AvailableGovernors()
	if err != nil || len(available) == 0 {
		return nil
	}
	if !slices.Contains(available, governor) {
		return model.ValidationErrors{{
			Field:   "governor",
			Message: fmt.Sprintf("%q is not offered by the cpufreq driver (available: %s)", governor, strings.Join(available, ", ")),
		}}
	}
	return nil
}

// ValidateSwappiness checks value against the kernel range.
func ValidateSwappiness(value int) error {
	if errs := model.ValidateSwappiness("swappiness", value); len(errs) > 0 {
		return errs
	}
	return nil
}
