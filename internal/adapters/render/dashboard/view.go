package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jiranismart/jirani-cli/internal/application"
)

const defaultAuthHint = "Sign in with `jirani auth login` or open `jirani ui`."

type RenderOptions struct {
	// Width truncates every line to this many cells. Zero leaves lines as is.
	Width int
	// Plain strips all styling from the output.
	Plain bool
	// Selected is the 1-based index of the highlighted action, 0 for none.
	Selected int
	// AuthHint replaces the signed-out hint line.
	AuthHint string
}

// View draws the whole shell for screen. It is pure: the same screen and
// options always give the same string.
func View(screen application.Screen, opts RenderOptions) string {
	out := renderView(screen, opts, newStyles())
	if opts.Plain {
		out = ansi.Strip(out)
	}

	return fit(out, opts.Width)
}

func renderView(screen application.Screen, opts RenderOptions, s styles) string {
	if screen.Mode == application.ModeAuth {
		return renderAuth(screen, opts, s)
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.title.Render(screen.Title), " ", s.badge.Render(screen.SessionLabel)),
		s.header.Render(screen.Welcome),
		renderMenu(screen.Menu, s),
	}

	if screen.Alert != "" {
		lines = append(lines, s.section.Render(s.warning.Render("! "+screen.Alert)))
	}
	if line := renderNotice(screen.Notice, s); line != "" {
		lines = append(lines, line)
	}
	if screen.Diagnostics != nil {
		lines = append(lines, renderDiagnostics(*screen.Diagnostics, s))
	}

	counter := &actionCounter{selected: opts.Selected}
	for _, section := range screen.Sections {
		lines = append(lines, s.section.Render(renderSection(section, counter, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAuth(screen application.Screen, opts RenderOptions, s styles) string {
	hint := opts.AuthHint
	if hint == "" {
		hint = defaultAuthHint
	}

	lines := []string{
		s.title.Render(screen.Title),
		s.header.Render("Not signed in."),
	}
	if line := renderNotice(screen.Notice, s); line != "" {
		lines = append(lines, line)
	}
	lines = append(lines, s.empty.Render(hint))
	if screen.Diagnostics != nil {
		lines = append(lines, renderDiagnostics(*screen.Diagnostics, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMenu(entries []application.MenuEntry, s styles) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Active {
			parts = append(parts, s.menuActive.Render("["+entry.Label+"]"))
			continue
		}
		parts = append(parts, s.menu.Render(entry.Label))
	}

	return strings.Join(parts, "  ")
}

func renderNotice(notice application.Notice, s styles) string {
	if notice.Text == "" {
		return ""
	}
	if notice.Error {
		return s.warning.Render(notice.Text)
	}

	return s.notice.Render(notice.Text)
}

func renderDiagnostics(d application.Diagnostics, s styles) string {
	lines := []string{
		s.heading.Render("Diagnostics"),
		field("API base URL", d.BaseURL, s),
		field("Backend", fmt.Sprintf("%s (%s)", d.Ping, d.Message), s),
		field("GPS", d.GPS, s),
		field("Location", d.Location, s),
	}
	if d.GeoError != "" {
		lines = append(lines, s.warning.Render(d.GeoError))
	}

	return s.panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func field(label, value string, s styles) string {
	return s.metricKey.Render(label+": ") + s.item.Render(value)
}

func renderSection(section application.Section, counter *actionCounter, s styles) string {
	var parts []string

	if section.Title != "" {
		parts = append(parts, s.heading.Render(section.Title))
	}
	if section.Subtitle != "" {
		parts = append(parts, s.subtitle.Render(section.Subtitle))
	}
	if section.Notice != nil {
		parts = append(parts, renderNotice(*section.Notice, s))
	}
	if len(section.Metrics) > 0 {
		parts = append(parts, renderMetrics(section.Metrics, s))
	}
	if len(section.Chips) > 0 {
		parts = append(parts, renderChips(section.Chips, s))
	}
	if section.Map != nil {
		parts = append(parts, renderMap(*section.Map, s))
	}
	if len(section.Actions) > 0 {
		parts = append(parts, renderActions(section.Actions, counter, s))
	}

	if section.List {
		if len(section.Items) == 0 {
			parts = append(parts, s.empty.Render(section.Empty))
		}
		for i, item := range section.Items {
			parts = append(parts, renderItem(i+1, item, counter, s))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderMetrics(metrics []application.Metric, s styles) string {
	boxes := make([]string, 0, len(metrics))
	for _, m := range metrics {
		boxes = append(boxes, s.metric.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.metricKey.Render(m.Label),
			s.metricVal.Render(m.Value),
		)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderChips(chips []application.Chip, s styles) string {
	parts := make([]string, 0, len(chips))
	for _, chip := range chips {
		if chip.Active {
			parts = append(parts, s.chipActive.Render("["+chip.Label+"]"))
			continue
		}
		parts = append(parts, s.chip.Render(chip.Label))
	}

	return strings.Join(parts, " ")
}

func renderMap(panel application.MapPanel, s styles) string {
	heading := s.metricKey.Render("Map: ") + s.item.Render(panel.Title)
	if !panel.Available {
		return lipgloss.JoinVertical(lipgloss.Left, heading, s.empty.Render("Map coordinates not available."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		s.detail.Render(panel.Coordinates),
		s.link.Render(panel.LinkURL),
	)
}

func renderItem(n int, item application.Item, counter *actionCounter, s styles) string {
	title := s.item.Render(fmt.Sprintf("%d. %s", n, item.Title))
	if item.Badge != "" {
		badge := s.badgeWarn
		if item.BadgeOK {
			badge = s.badgeOK
		}
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", badge.Render(item.Badge))
	}

	lines := []string{title}
	if item.Detail != "" {
		lines = append(lines, "   "+s.detail.Render(item.Detail))
	}
	if len(item.Actions) > 0 {
		lines = append(lines, "   "+renderActions(item.Actions, counter, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// actionCounter numbers actions in the order Screen.Actions lists them.
type actionCounter struct {
	next     int
	selected int
}

func (c *actionCounter) take() (int, bool) {
	c.next++
	return c.next, c.next == c.selected
}

func renderActions(actions []application.Action, counter *actionCounter, s styles) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		n, selected := counter.take()
		label := fmt.Sprintf("[%d] %s", n, action.Label)

		switch {
		case selected:
			parts = append(parts, s.selected.Render("> "+label))
		case action.Disabled:
			parts = append(parts, s.disabled.Render(label+" (unavailable)"))
		default:
			parts = append(parts, s.action.Render(label))
		}
	}

	return strings.Join(parts, "  ")
}

func fit(out string, width int) string {
	if width <= 0 {
		return out
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}

	return strings.Join(lines, "\n")
}
