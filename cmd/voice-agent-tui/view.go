package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"voiceagent/internal/results"
	"voiceagent/internal/turn"
)

// progressOffset keeps a fresh order's bar from rendering empty.
const progressOffset = 0.05

var stageLabels = []string{"Placed", "Shipped", "Tracking", "Delivered"}

func (m model) View() string {
	header := m.renderHeader()
	content := m.renderContent()
	mic := m.renderMic()
	footer := m.renderFooter()
	out := lipgloss.JoinVertical(lipgloss.Left, header, content, mic, footer)
	if m.quitConfirm {
		out = m.renderQuitModal()
	}
	return m.theme.root.Render(out)
}

func (m model) renderHeader() string {
	width := maxInt(60, m.width-4)
	indicator := m.theme.liveIdle.Render("●")
	if m.ctrl.Phase() == turn.PhaseAwaitingResponse {
		if (m.pulse/3)%2 == 0 {
			indicator = m.theme.liveBusy.Render("●")
		} else {
			indicator = m.theme.liveBusyDim.Render("●")
		}
	}
	title := indicator + " " + m.theme.headerTitle.Render("A.I. VOICE AGENT")
	meta := m.theme.headerMeta.Render("NEURAL_LINK_ACTIVE")
	gap := maxInt(1, width-4-lipgloss.Width(title)-lipgloss.Width(meta))
	return m.theme.header.Width(width - 2).Render(title + strings.Repeat(" ", gap) + meta)
}

func (m model) renderContent() string {
	leftWidth, rightWidth, panelHeight := m.layout()
	left := m.theme.panel.
		Width(leftWidth - 2).
		Height(panelHeight - 2).
		Render(m.theme.panelTitle.Render("Transcript") + "\n" + m.transcript.View())
	right := m.theme.panel.
		Width(rightWidth - 2).
		Height(panelHeight - 2).
		Render(m.theme.panelTitle.Render("Results") + "\n" + m.results.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m model) renderMic() string {
	width := maxInt(60, m.width-4)
	line := m.theme.micIdle.Render("◉  Press Enter or Space to talk")
	if m.ctrl.Phase() == turn.PhaseAwaitingResponse {
		line = m.spinner.View() + " " + m.theme.micBusy.Render("Listening… recording and thinking")
	}
	return m.theme.micPanel.Width(width - 2).Render(line)
}

func (m model) renderFooter() string {
	width := maxInt(60, m.width-4)
	status := m.theme.status.Render(m.statusLine)
	if m.statusError {
		status = m.theme.errorStatus.Render(m.statusLine)
	}
	help := m.theme.helpText.Render("enter/space talk · ↑/↓ transcript · [ ] results · q quit")
	agent := m.theme.helpText.Render("agent " + truncate(m.agentURL, 48))
	if last := m.lastActivity(); last != "" {
		status += "  " + m.theme.helpText.Render(truncate(last, maxInt(10, width-lipgloss.Width(status)-8)))
	}
	return m.theme.footer.Width(width - 2).Render(status + "\n" + help + " · " + agent)
}

func (m model) renderQuitModal() string {
	body := m.theme.modalTitle.Render("A turn is still in flight") + "\n\n" +
		"Quit anyway? (y/n)"
	return lipgloss.Place(maxInt(40, m.width-2), maxInt(10, m.height-2),
		lipgloss.Center, lipgloss.Center, m.theme.modal.Render(body))
}

func (m *model) renderTranscript(width int) string {
	bubbleWidth := maxInt(16, width*85/100)
	var b strings.Builder
	for i, u := range m.ctrl.Transcript() {
		if i > 0 {
			b.WriteString("\n")
		}
		text := wrapText(u.Text, bubbleWidth-4)
		switch u.Speaker {
		case turn.SpeakerUser:
			bubble := m.theme.userBubble.Render(text)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		default:
			b.WriteString(m.theme.agentTag.Render("AGENT // OUTPUT"))
			b.WriteString("\n")
			b.WriteString(m.theme.agentBubble.Render(text))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderResults(width int) string {
	panel := m.ctrl.Panel()
	if panel.Empty() {
		return m.theme.helpText.Render(wrapText("Awaiting structured data. Ask about your orders or the catalog.", width))
	}

	title := "Order Intelligence"
	if panel.Kind == results.KindProducts {
		title = "Catalog Matches"
	}
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Center, m.theme.cardTitle.Render(title), "  ", m.theme.badgeLive.Render("LIVE_DATA")),
		m.theme.cardLabel.Render(fmt.Sprintf("SYSTEM FOUND %d RELEVANT ENTRIES", len(panel.Entries))),
		"",
	}
	cardWidth := maxInt(20, width-2)
	switch panel.Kind {
	case results.KindProducts:
		for _, p := range panel.Products() {
			lines = append(lines, m.renderProductCard(p, cardWidth))
		}
	case results.KindOrders:
		for _, o := range panel.Orders() {
			lines = append(lines, m.renderOrderCard(o, cardWidth))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderProductCard(p results.ProductEntry, width int) string {
	inner := maxInt(12, width-4)
	id := m.theme.cardLabel.Render("ID: " + p.ID)
	price := m.theme.price.Render("$" + p.Price)
	gap := maxInt(1, inner-lipgloss.Width(id)-lipgloss.Width(price))
	rows := []string{
		id + strings.Repeat(" ", gap) + price,
		m.theme.cardTitle.Render(wrapText(p.Name, inner)),
	}
	if p.Description != "" {
		rows = append(rows, m.theme.cardQuote.Render(wrapText("\""+p.Description+"\"", inner)))
	}
	return m.theme.card.Width(width - 2).Render(strings.Join(rows, "\n"))
}

func (m *model) renderOrderCard(o results.OrderEntry, width int) string {
	inner := maxInt(12, width-4)
	ref := m.theme.cardLabel.Render("REFERENCE ") + m.theme.cardRef.Render(o.ID)
	date := m.theme.cardLabel.Render("TIMESTAMP ") + m.theme.cardValue.Render(o.DisplayDate())
	gap := maxInt(1, inner-lipgloss.Width(ref)-lipgloss.Width(date))
	rows := []string{
		ref + strings.Repeat(" ", gap) + date,
		m.theme.cardLabel.Render("ITEMS IN SHIPMENT"),
		m.theme.cardTitle.Render(truncate(o.Summary(), inner)),
		"",
	}

	switch o.Status {
	case results.StatusDelivered:
		rows = append(rows, m.theme.badgeDone.Width(inner-2).Render("Status: Successfully Delivered"))
	case results.StatusCancelled:
		rows = append(rows, m.theme.badgeCancel.Width(inner-2).Render("Status: Transaction Cancelled"))
	default:
		stage := results.StageOf(o.Status)
		bar := m.progress
		bar.Width = inner
		rows = append(rows, bar.ViewAs(displayFraction(stage)), m.renderStageLabels(stage, inner))
		if o.Status != "" && !o.Status.Known() {
			rows = append(rows, m.theme.helpText.Render("status: "+string(o.Status)))
		}
	}
	return m.theme.card.Width(width - 2).Render(strings.Join(rows, "\n"))
}

// displayFraction is the bar fill for a stage: the raw ratio plus a small
// offset, capped at full.
func displayFraction(stage int) float64 {
	f := results.FractionOf(stage) + progressOffset
	if f > 1 {
		return 1
	}
	return f
}

// renderStageLabels highlights every stage reached so far. The final label
// never lights up, since delivered orders show a badge instead.
func (m *model) renderStageLabels(stage int, width int) string {
	col := maxInt(8, width/len(stageLabels))
	parts := make([]string, 0, len(stageLabels))
	for i, label := range stageLabels {
		style := m.theme.stageOff
		if i < len(stageLabels)-1 && stage >= i {
			style = m.theme.stageOn
		}
		cell := padRight(strings.ToUpper(label), col)
		if i == len(stageLabels)-1 {
			cell = strings.ToUpper(label)
		}
		parts = append(parts, style.Render(cell))
	}
	return strings.Join(parts, "")
}
