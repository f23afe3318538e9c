package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ascend/internal/notifier"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	celebrateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	xpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
)

// ConsoleSink renders engine notifications to stdout
type ConsoleSink struct{}

func (ConsoleSink) Send(n notifier.Notification) {
	msg := n.Message
	if n.XPGained > 0 {
		msg = fmt.Sprintf("%s %s", msg, xpStyle.Render(fmt.Sprintf("+%d XP", n.XPGained)))
	}

	switch n.Severity {
	case notifier.SeveritySuccess:
		fmt.Println(successStyle.Render("✓") + " " + msg)
	case notifier.SeverityWarning:
		fmt.Println(warningStyle.Render("!") + " " + msg)
	case notifier.SeverityCelebration:
		fmt.Println(celebrateStyle.Render("★ " + msg))
	default:
		fmt.Println(dimStyle.Render("·") + " " + msg)
	}
}

func checkbox(done bool) string {
	if done {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}
