package actions

import (
	"fmt"
	"strconv"

	"maid/pkg/model"
	"maid/pkg/runner"

	"github.com/kballard/go-shellquote"
)

const (
	LabelAutoremove = "Autoremove: Delete unnecessary dependencies"
	LabelAutoclean  = "Autoclean: Delete old downloaded package files"
	LabelDefrag     = "Start Disk Defragmentation"
	LabelDropCaches = "Clean RAM Caches"
	LabelCycleSwap  = "Clear Swap Area"
)

const (
	dropCachesCommand = `sh -c "sync && echo 3 > /proc/sys/vm/drop_caches"`
	cycleSwapCommand  = `sh -c "swapoff -a && swapon -a"`
)

func privileged(s model.Settings, label, command string) *PrivilegedAction {
	return &PrivilegedAction{
		Request:  runner.Request{Command: command, TaskLabel: label},
		Frontend: s.PrivilegeFrontend,
	}
}

func AptAutoremove(s model.Settings) *PrivilegedAction {
	return privileged(s, LabelAutoremove, shellquote.Join(s.Binaries.Apt, "autoremove", "-y"))
}

func AptAutoclean(s model.Settings) *PrivilegedAction {
	return privileged(s, LabelAutoclean, shellquote.Join(s.Binaries.Apt, "autoclean"))
}

// Defrag defragments the filesystem holding s.DefragTarget.
func Defrag(s model.Settings) *PrivilegedAction {
	return privileged(s, LabelDefrag, shellquote.Join(s.Binaries.U4defrag, "-s", s.DefragTarget))
}

func DropCaches(s model.Settings) *PrivilegedAction {
	return privileged(s, LabelDropCaches, dropCachesCommand)
}

func CycleSwap(s model.Settings) *PrivilegedAction {
	return privileged(s, LabelCycleSwap, cycleSwapCommand)
}

// SetGovernor switches the cpufreq governor. current is the value read
// before the change and may be empty when it could not be probed.
func SetGovernor(s model.Settings, governor, current string) *PrivilegedAction {
	var label string
	switch {
	case governor == s.Governor.Apply && governor == "powersave":
		label = "Apply Power Save Mode"
	case governor == s.Governor.Restore && governor == "performance":
		label = "Restore Performance Mode"
	case governor == s.Governor.Apply:
		label = fmt.Sprintf("Apply CPU governor (%s)", governor)
	case governor == s.Governor.Restore:
		label = fmt.Sprintf("Restore CPU governor (%s)", governor)
	default:
		label = fmt.Sprintf("Set CPU governor (%s)", governor)
	}
	a := privileged(s, label, shellquote.Join(s.Binaries.Cpupower, "frequency-set", "-g", governor))
	a.Tunable = &TunableChange{Name: "scaling_governor", Current: orUnknown(current), Desired: governor}
	return a
}

// SetSwappiness sets vm.swappiness until the next reboot.
func SetSwappiness(s model.Settings, value int, current string) *PrivilegedAction {
	label := fmt.Sprintf("Apply Swappiness (Set to %d)", value)
	if value == s.Swappiness.Restore && value != s.Swappiness.Apply {
		label = fmt.Sprintf("Restore Swappiness (Set to %d)", value)
	}
	a := privileged(s, label, shellquote.Join(s.Binaries.Sysctl, "vm.swappiness="+strconv.Itoa(value)))
	a.Tunable = &TunableChange{Name: "vm.swappiness", Current: orUnknown(current), Desired: strconv.Itoa(value)}
	return a
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
