package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	badge      lipgloss.Style
	menu       lipgloss.Style
	menuActive lipgloss.Style
	section    lipgloss.Style
	heading    lipgloss.Style
	subtitle   lipgloss.Style
	metric     lipgloss.Style
	metricKey  lipgloss.Style
	metricVal  lipgloss.Style
	chip       lipgloss.Style
	chipActive lipgloss.Style
	item       lipgloss.Style
	detail     lipgloss.Style
	badgeOK    lipgloss.Style
	badgeWarn  lipgloss.Style
	action     lipgloss.Style
	selected   lipgloss.Style
	disabled   lipgloss.Style
	notice     lipgloss.Style
	warning    lipgloss.Style
	empty      lipgloss.Style
	link       lipgloss.Style
	panel      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		badge:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("114")).Padding(0, 1),
		menu:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		menuActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section:    lipgloss.NewStyle().MarginTop(1),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		subtitle:   lipgloss.NewStyle().Faint(true),
		metric:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1).MarginRight(1),
		metricKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		metricVal:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		chip:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		chipActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		item:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		badgeOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		badgeWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		action:     lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		selected:   lipgloss.NewStyle().Bold(true).Reverse(true),
		disabled:   lipgloss.NewStyle().Faint(true).Strikethrough(true),
		notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:      lipgloss.NewStyle().Faint(true),
		link:       lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75")),
		panel:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1).MarginTop(1),
	}
}
