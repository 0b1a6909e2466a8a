package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Probe functions, replaced in tests.
var (
	virtualMemory = mem.VirtualMemoryWithContext
	swapMemory    = mem.SwapMemoryWithContext
	kernelVersion = host.KernelVersionWithContext
)

// MemoryInfo is a point-in-time view of RAM and swap, in bytes.
type MemoryInfo struct {
	Total     uint64 `json:"total"`
	Available uint64 `json:"available"`
	Cached    uint64 `json:"cached"`
	Buffers   uint64 `json:"buffers"`
	SwapTotal uint64 `json:"swap_total"`
	SwapUsed  uint64 `json:"swap_used"`
}

// Status is what `maid status` reports.
type Status struct {
	Kernel     string     `json:"kernel"`
	Memory     MemoryInfo `json:"memory"`
	Swappiness int        `json:"swappiness"`
	Governor   string     `json:"governor,omitempty"`
	Warnings   []string   `json:"warnings,omitempty"`
}

// MemorySnapshot reads RAM and swap usage.
func MemorySnapshot(ctx context.Context) (MemoryInfo, error) {
	vm, err := virtualMemory(ctx)
	if err != nil {
		return MemoryInfo{}, fmt.Errorf("reading memory usage: %w", err)
	}
	swap, err := swapMemory(ctx)
	if err != nil {
		return MemoryInfo{}, fmt.Errorf("reading swap usage: %w", err)
	}
	return MemoryInfo{
		Total:     vm.Total,
		Available: vm.Available,
		Cached:    vm.Cached,
		Buffers:   vm.Buffers,
		SwapTotal: swap.Total,
		SwapUsed:  swap.Used,
	}, nil
}

// InferStatus gathers memory, swappiness and governor. Only the memory
// probe is fatal; a machine without cpufreq still gets a report.
func InferStatus(ctx context.Context) (*Status, error) {
	memory, err := MemorySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	status := &Status{Memory: memory}

	if kernel, err := kernelVersion(ctx); err == nil {
		status.Kernel = kernel
	} else {
		status.Warnings = append(status.Warnings, err.Error())
	}
	if swappiness, err := ReadSwappiness(); err == nil {
		status.Swappiness = swappiness
	} else {
		status.Warnings = append(status.Warnings, err.Error())
	}
	if governor, err := ReadGovernor(); err == nil {
		status.Governor = governor
	} else {
		status.Warnings = append(status.Warnings, err.Error())
	}
	return status, nil
}
