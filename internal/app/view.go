package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/slider/internal/ui"
)

// maxDots is the most position dots drawn before falling back to a counter.
const maxDots = 20

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + status(1) + divider(1) + divider(1) + error(1) + footer(1) + padding
	reserved := 7
	return max(5, m.height-reserved)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderSlide(m.width, m.contentHeight()))
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("SLIDER")
	if m.deck.Name != "" {
		title += ui.DimStyle.Render(" — " + m.deck.Name)
	}
	return title
}

func (m Model) renderStatusBar() string {
	if !m.loaded {
		return ui.StatusStyle.Render("Loading deck...")
	}
	total := len(m.deck.Slides)
	if total == 0 {
		return ui.StatusStyle.Render("Empty deck")
	}

	var badge string
	if m.cycle.AutoAdvancing() {
		badge = ui.AutoBadgeStyle.Render(fmt.Sprintf("▶ AUTO %s", m.cycle.Period()))
	} else {
		badge = ui.PausedBadgeStyle.Render("‖ PAUSED")
	}

	position := ui.StatusStyle.Render(fmt.Sprintf("%d/%d", m.view.visible+1, total))
	line := badge + "  " + position + "  " + renderDots(m.view.visible, total)

	if m.flash != "" {
		line += "  " + ui.DimStyle.Render(m.flash)
	}
	return line
}

func renderDots(visible, total int) string {
	if total > maxDots {
		return ""
	}
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i == visible {
			b.WriteString(ui.DotActiveStyle.Render("●"))
		} else {
			b.WriteString(ui.DotInactiveStyle.Render("○"))
		}
	}
	return b.String()
}

func (m Model) renderSlide(width, height int) string {
	var lines []string

	switch {
	case !m.loaded && m.errorMessage != "":
		lines = append(lines, "")
		lines = append(lines, ui.ErrorStyle.Render("  No deck loaded."))
		lines = append(lines, ui.DimStyle.Render("  Import one with: slider import <path>"))
	case !m.loaded:
		lines = append(lines, ui.DimStyle.Render("  Loading..."))
	case len(m.deck.Slides) == 0:
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  This deck has no slides."))
	default:
		s := m.deck.Slides[m.view.visible]
		textWidth := max(10, width-4)

		lines = append(lines, "")
		lines = append(lines, "  "+ui.SlideTitleStyle.Render(truncateToWidth(s.Label(), textWidth)))
		lines = append(lines, "")
		if s.Body != "" {
			for _, wl := range wrapText(s.Body, textWidth) {
				lines = append(lines, "  "+ui.SlideBodyStyle.Render(wl))
			}
		}
		if s.Image != "" {
			info := "[image] " + filepath.Base(s.Image)
			if s.Width > 0 && s.Height > 0 {
				info += fmt.Sprintf(" (%dx%d)", s.Width, s.Height)
			}
			lines = append(lines, "")
			lines = append(lines, "  "+ui.DimStyle.Render(truncateToWidth(info, textWidth)))
		}
	}

	// Pad to height
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	for i, l := range lines {
		lines[i] = padRight(l, width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string

	if m.loaded && len(m.deck.Slides) > 0 {
		parts = append(parts, ui.FooterKeyStyle.Render("←/→")+ui.FooterDescStyle.Render(" Prev/Next"))
		if m.cycle.AutoAdvancing() {
			parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Pause"))
		} else {
			parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Resume"))
		}
		parts = append(parts, ui.FooterKeyStyle.Render("g/G")+ui.FooterDescStyle.Render(" First/Last"))
		parts = append(parts, ui.FooterKeyStyle.Render("1-9")+ui.FooterDescStyle.Render(" Jump"))
	}

	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	// Simple truncation for non-styled strings
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
