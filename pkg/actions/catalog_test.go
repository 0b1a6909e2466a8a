package actions

import (
	"testing"

	"maid/pkg/test"

	"github.com/stretchr/testify/assert"
)

func TestCatalogCommands(t *testing.T) {
	s := *test.SampleSettings(home)

	tests := []struct {
		name    string
		action  *PrivilegedAction
		command string
		label   string
	}{
		{"autoremove", AptAutoremove(s), "/usr/bin/apt autoremove -y", LabelAutoremove},
		{"autoclean", AptAutoclean(s), "/usr/bin/apt autoclean", LabelAutoclean},
		{"defrag", Defrag(s), "/usr/bin/u4defrag -s /", LabelDefrag},
		{"drop caches", DropCaches(s), `sh -c "sync && echo 3 > /proc/sys/vm/drop_caches"`, LabelDropCaches},
		{"swap", CycleSwap(s), `sh -c "swapoff -a && swapon -a"`, LabelCycleSwap},
		{"powersave", SetGovernor(s, "powersave", "performance"), "/usr/bin/cpupower frequency-set -g powersave", "Apply Power Save Mode"},
		{"performance", SetGovernor(s, "performance", ""), "/usr/bin/cpupower frequency-set -g performance", "Restore Performance Mode"},
		{"schedutil", SetGovernor(s, "schedutil", ""), "/usr/bin/cpupower frequency-set -g schedutil", "Set CPU governor (schedutil)"},
		{"swappiness apply", SetSwappiness(s, 10, ""), "sysctl vm.swappiness=10", "Apply Swappiness (Set to 10)"},
		{"swappiness restore", SetSwappiness(s, 60, ""), "sysctl vm.swappiness=60", "Restore Swappiness (Set to 60)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.command, tt.action.Request.Command)
			assert.Equal(t, tt.label, tt.action.Request.TaskLabel)
			assert.Equal(t, tt.label, tt.action.Description())
			assert.Equal(t, "pkexec", tt.action.Frontend)
		})
	}
}

func TestSetGovernor_ConfiguredGovernorsNameTheLabel(t *testing.T) {
	s := *test.SampleSettings(home)
	s.Governor.Apply = "ondemand"
	s.Governor.Restore = "schedutil"

	assert.Equal(t, "Apply CPU governor (ondemand)", SetGovernor(s, "ondemand", "").Description())
	assert.Equal(t, "Restore CPU governor (schedutil)", SetGovernor(s, "schedutil", "").Description())
	assert.Equal(t, "Set CPU governor (powersave)", SetGovernor(s, "powersave", "").Description())
}

func TestDefragQuotesTarget(t *testing.T) {
	s := *test.SampleSettings(home)
	s.DefragTarget = "/mnt/old disk"

	assert.Equal(t, "/usr/bin/u4defrag -s '/mnt/old disk'", Defrag(s).Request.Command)
}

func TestTunableUnknownCurrent(t *testing.T) {
	a := SetGovernor(*test.SampleSettings(home), "powersave", "")
	assert.Equal(t, "unknown", a.Tunable.Current)
}
