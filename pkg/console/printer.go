// Package console prints plans, outcomes and status for humans.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"maid/pkg/actions"
	"maid/pkg/system"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	clrGreen = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	clrRed   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	clrCyan  = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	clrMuted = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
)

// Printer writes human-readable output, styled only on a terminal.
type Printer struct {
	w      io.Writer
	styled bool

	heading lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter styles output when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return newPrinter(w, styled)
}

func newPrinter(w io.Writer, styled bool) *Printer {
	return &Printer{
		w:       w,
		styled:  styled,
		heading: lipgloss.NewStyle().Bold(true).Foreground(clrCyan),
		ok:      lipgloss.NewStyle().Foreground(clrGreen),
		failed:  lipgloss.NewStyle().Bold(true).Foreground(clrRed),
		muted:   lipgloss.NewStyle().Foreground(clrMuted),
	}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(p.heading, fmt.Sprintf("--- "+format+" ---", args...)))
}

// Plan lists what each action would do.
func (p *Printer) Plan(plan []actions.Action) {
	if len(plan) == 0 {
		fmt.Fprintln(p.w, "Nothing to do.")
		return
	}
	for i, action := range plan {
		fmt.Fprintf(p.w, "%d. %s\n", i+1, action.Description())
		for _, detail := range action.ExecutionDetails() {
			for _, line := range strings.Split(strings.TrimRight(detail, "\n"), "\n") {
				fmt.Fprintf(p.w, "   %s\n", p.render(p.muted, line))
			}
		}
	}
}

// Result reports how a command or plan ended.
func (p *Printer) Result(label string, err error) {
	if err == nil {
		fmt.Fprintln(p.w, p.render(p.ok, "✅ "+label+" completed successfully"))
		return
	}
	fmt.Fprintln(p.w, p.render(p.failed, "❌ "+label+" failed"))
	for _, line := range strings.Split(strings.TrimRight(err.Error(), "\n"), "\n") {
		fmt.Fprintf(p.w, "   %s\n", line)
	}
}

// Status prints a memory and tunables report.
func (p *Printer) Status(status *system.Status) {
	m := status.Memory
	p.Heading("System status")
	if status.Kernel != "" {
		fmt.Fprintf(p.w, "Kernel:      %s\n", status.Kernel)
	}
	fmt.Fprintf(p.w, "Memory:      %s available of %s (cached %s, buffers %s)\n",
		FormatBytes(m.Available), FormatBytes(m.Total), FormatBytes(m.Cached), FormatBytes(m.Buffers))
	fmt.Fprintf(p.w, "Swap:        %s used of %s\n", FormatBytes(m.SwapUsed), FormatBytes(m.SwapTotal))
	fmt.Fprintf(p.w, "Swappiness:  %d\n", status.Swappiness)
	governor := status.Governor
	if governor == "" {
		governor = "unknown"
	}
	fmt.Fprintf(p.w, "Governor:    %s\n", governor)
	for _, w := range status.Warnings {
		fmt.Fprintln(p.w, p.render(p.muted, "warning: "+w))
	}
}

// FormatBytes renders n with a binary unit, e.g. "1.5 GiB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
