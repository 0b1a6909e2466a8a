package console

import (
	"bytes"
	"errors"
	"testing"

	"maid/pkg/actions"
	"maid/pkg/system"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 GiB", FormatBytes(3*512*1024*1024))
}

func TestPrinter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Result("Clean RAM Caches", nil)
	p.Result("Clear Swap Area", errors.New("Clear Swap Area: exit code 1"))

	assert.Equal(t,
		"✅ Clean RAM Caches completed successfully\n"+
			"❌ Clear Swap Area failed\n"+
			"   Clear Swap Area: exit code 1\n",
		buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_Plan(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)

	p.Plan([]actions.Action{
		&actions.DeleteFilesAction{Label: "Recent", Paths: []string{"/h/a", "/h/b"}},
	})
	assert.Equal(t, "1. Recent\n   delete file /h/a\n   delete file /h/b\n", buf.String())

	buf.Reset()
	p.Plan(nil)
	assert.Equal(t, "Nothing to do.\n", buf.String())
}

func TestPrinter_Status(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)

	p.Status(&system.Status{
		Kernel:     "6.8.0",
		Memory:     system.MemoryInfo{Total: 8 << 30, Available: 4 << 30, SwapTotal: 2 << 30},
		Swappiness: 60,
		Warnings:   []string{"error reading /sys/devices/system/cpu/cpu0/cpufreq/scaling_governor"},
	})

	out := buf.String()
	assert.Contains(t, out, "--- System status ---")
	assert.Contains(t, out, "Kernel:      6.8.0\n")
	assert.Contains(t, out, "Memory:      4.0 GiB available of 8.0 GiB")
	assert.Contains(t, out, "Swap:        0 B used of 2.0 GiB\n")
	assert.Contains(t, out, "Swappiness:  60\n")
	assert.Contains(t, out, "Governor:    unknown\n")
	assert.Contains(t, out, "warning: error reading")
}
