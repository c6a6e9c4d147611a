package status

import (
	"fmt"
	"strings"

	"github.com/bnema/claude-remote-collector/internal/application"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 10

func renderView(o application.Overview, s styles) string {
	blocks := []string{
		s.title.Render("Claude Remote Collector"),
		s.section.Render(renderWrappers(o.Wrappers, s)),
		s.section.Render(renderStorage(o, s)),
		s.section.Render(renderNotify(o.Notify, s)),
	}

	if !o.InSync() {
		blocks = append(blocks, s.section.Render(s.warning.Render(fmt.Sprintf(
			"[warning] session logs disagree: %d text entries, %d records",
			o.TextEntries, o.RecordEntries,
		))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderWrappers(wrappers []application.WrapperStatus, s styles) string {
	lines := []string{s.header.Render("Shell wrappers:")}
	if len(wrappers) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("  none"))...)
	}

	for _, w := range wrappers {
		state := s.missing.Render("Not installed")
		if w.Installed {
			state = s.installed.Render("Installed")
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			"  ",
			pad(s.label.Render("["+w.Shell+"]"), 8),
			state,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStorage(o application.Overview, s styles) string {
	latest := s.empty.Render("none")
	if o.Latest != nil {
		latest = s.detail.Render(o.Latest.Timestamp + " " + o.Latest.URL)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		field("Sessions:", s.detail.Render(fmt.Sprintf("%d", o.Sessions)), s),
		field("Storage:", s.detail.Render(o.StorageDir), s),
		field("Latest:", latest, s),
	)
}

func renderNotify(n application.NotifyStatus, s styles) string {
	if !n.Enabled {
		return field("Notify:", s.empty.Render("disabled"), s)
	}

	auto := "off"
	if n.AutoNotify {
		auto = "on"
	}
	value := s.detail.Render(fmt.Sprintf("%s (enabled, auto-notify %s)", backendLabel(n.Backend), auto))
	if !n.Configured {
		value = lipgloss.JoinHorizontal(lipgloss.Top, value, " ", s.warning.Render("[not configured]"))
	}

	return field("Notify:", value, s)
}

func field(label string, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, pad(s.label.Render(label), labelWidth), value)
}

// pad right-fills a rendered string to width visible cells.
func pad(rendered string, width int) string {
	if gap := width - lipgloss.Width(rendered); gap > 0 {
		return rendered + strings.Repeat(" ", gap)
	}
	return rendered
}

func backendLabel(backend domain.Backend) string {
	if backend == "" {
		return "none"
	}

	return string(backend)
}
