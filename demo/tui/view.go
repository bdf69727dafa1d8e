package tui

import (
	"fmt"
	"strings"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

const maxVisibleTrends = 12

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("✨ Aura Trends"))
	b.WriteString("\n\n")

	if !m.Connected && m.Err != nil {
		b.WriteString(ErrorStyle.Render("❌ No connection to the dashboard API"))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("   " + m.Err.Error()))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooter))
		return b.String()
	}

	// Category tabs
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	// Trend list
	if len(m.Trends) == 0 {
		b.WriteString(InfoStyle.Render("No trends in this category yet. Press 'r' to refresh."))
		b.WriteString("\n")
	} else {
		for i, t := range m.Trends {
			if i >= maxVisibleTrends {
				b.WriteString(InfoStyle.Render(fmt.Sprintf("   … and %d more", len(m.Trends)-maxVisibleTrends)))
				b.WriteString("\n")
				break
			}

			marker := "  "
			if i == m.Cursor {
				marker = "▸ "
			}
			saved := ""
			if m.SavedKeys[t.Key()] {
				saved = " ★"
			}

			line := fmt.Sprintf("%s%s%s", marker, truncate(t.Title, 70), saved)
			if i == m.Cursor {
				b.WriteString(HighlightStyle.Render(line))
			} else {
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Detail box for the selected trend
	if t := m.selected(); t != nil {
		b.WriteString(BoxStyle.Render(m.formatTrendDetail(*t)))
		b.WriteString("\n\n")
	}

	if m.Refreshing {
		b.WriteString(StatusStyle.Render("⏳ Curation pass requested..."))
		b.WriteString("\n")
	}
	if m.Err != nil && m.Connected {
		b.WriteString(ErrorStyle.Render("⚠ " + m.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render(TextFooter))
	return b.String()
}

// renderTabs draws the category bar with the active tab highlighted
func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.Categories))
	for i, c := range m.Categories {
		if i == m.CategoryIdx {
			tabs = append(tabs, HighlightStyle.Render(c))
		} else {
			tabs = append(tabs, InfoStyle.Render(c))
		}
	}
	return strings.Join(tabs, "  ")
}

// formatTrendDetail formats the selected trend for the detail box
func (m Model) formatTrendDetail(t types.Trend) string {
	var b strings.Builder

	b.WriteString(StatusStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%s · %s", t.Category, t.Published)))
	b.WriteString("\n\n")

	if t.Summary != "" {
		b.WriteString(truncate(t.Summary, 300))
		b.WriteString("\n\n")
	}
	if t.WhyItMatters != "" {
		b.WriteString(StatusStyle.Render("Por qué importa: "))
		b.WriteString(t.WhyItMatters)
		b.WriteString("\n")
	}
	for _, idea := range t.ActivationIdeas {
		b.WriteString(InfoStyle.Render("  • " + idea))
		b.WriteString("\n")
	}
	if t.Link != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(t.Link))
	}

	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
