package main

import "github.com/charmbracelet/lipgloss"

type uiTheme struct {
	root          lipgloss.Style
	header        lipgloss.Style
	headerTitle   lipgloss.Style
	headerMeta    lipgloss.Style
	liveIdle      lipgloss.Style
	liveBusy      lipgloss.Style
	liveBusyDim   lipgloss.Style
	panel         lipgloss.Style
	panelTitle    lipgloss.Style
	badgeLive     lipgloss.Style
	agentTag      lipgloss.Style
	agentBubble   lipgloss.Style
	userBubble    lipgloss.Style
	card          lipgloss.Style
	cardLabel     lipgloss.Style
	cardRef       lipgloss.Style
	cardValue     lipgloss.Style
	cardTitle     lipgloss.Style
	cardQuote     lipgloss.Style
	price         lipgloss.Style
	stageOn       lipgloss.Style
	stageOff      lipgloss.Style
	badgeDone     lipgloss.Style
	badgeCancel   lipgloss.Style
	micIdle       lipgloss.Style
	micBusy       lipgloss.Style
	micPanel      lipgloss.Style
	footer        lipgloss.Style
	status        lipgloss.Style
	errorStatus   lipgloss.Style
	helpText      lipgloss.Style
	modal         lipgloss.Style
	modalTitle    lipgloss.Style
	progressColor string
}

func newTheme() uiTheme {
	cyan := lipgloss.Color("#22d3ee")
	cyanDeep := lipgloss.Color("#0e7490")
	emerald := lipgloss.Color("#10b981")
	red := lipgloss.Color("#ef4444")
	bg := lipgloss.Color("#020617")
	panelBg := lipgloss.Color("#0f172a")
	border := lipgloss.Color("#334155")
	text := lipgloss.Color("#e2e8f0")
	muted := lipgloss.Color("#64748b")

	return uiTheme{
		root: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		headerTitle: lipgloss.NewStyle().Foreground(cyan).Bold(true),
		headerMeta:  lipgloss.NewStyle().Foreground(muted),
		liveIdle:    lipgloss.NewStyle().Foreground(emerald).Bold(true),
		liveBusy:    lipgloss.NewStyle().Foreground(red).Bold(true),
		liveBusyDim: lipgloss.NewStyle().Foreground(lipgloss.Color("#7f1d1d")),
		panel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		badgeLive: lipgloss.NewStyle().
			Foreground(cyan).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(cyanDeep).
			Padding(0, 1),
		agentTag: lipgloss.NewStyle().Foreground(cyan).Bold(true),
		agentBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cbd5e1")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		userBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cffafe")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cyanDeep).
			Padding(0, 1),
		card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1e293b")).
			Padding(0, 1),
		cardLabel: lipgloss.NewStyle().Foreground(muted).Bold(true),
		cardRef:   lipgloss.NewStyle().Foreground(cyan),
		cardValue: lipgloss.NewStyle().Foreground(text),
		cardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#f1f5f9")).Bold(true),
		cardQuote: lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).Italic(true),
		price:     lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399")).Bold(true),
		stageOn:   lipgloss.NewStyle().Foreground(cyan),
		stageOff:  lipgloss.NewStyle().Foreground(lipgloss.Color("#475569")),
		badgeDone: lipgloss.NewStyle().
			Foreground(emerald).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(emerald).
			Align(lipgloss.Center),
		badgeCancel: lipgloss.NewStyle().
			Foreground(red).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(red).
			Align(lipgloss.Center),
		micIdle: lipgloss.NewStyle().Foreground(cyan).Bold(true),
		micBusy: lipgloss.NewStyle().Foreground(red).Bold(true),
		micPanel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Align(lipgloss.Center),
		footer: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(muted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		status:      lipgloss.NewStyle().Foreground(cyan).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(red).Bold(true),
		helpText:    lipgloss.NewStyle().Foreground(muted),
		modal: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(red).
			Padding(1, 2),
		modalTitle:    lipgloss.NewStyle().Foreground(red).Bold(true),
		progressColor: "#22d3ee",
	}
}
