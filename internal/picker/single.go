package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the Bubble Tea model for choosing one package
type Model struct {
	title       string
	items       []Item
	cursor      int
	offset      int // scroll offset
	done        bool
	quitting    bool
	searchInput textinput.Model
	searching   bool
}

// New creates a picker model
func New(title string, items []Item) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.CharLimit = 50
	ti.Width = 40

	return Model{
		title:       title,
		items:       items,
		searchInput: ti,
	}
}

// Selected returns the ID under the cursor, or "" when nothing matches
func (m Model) Selected() string {
	filtered := m.filtered()
	if len(filtered) > 0 && m.cursor < len(filtered) {
		return filtered[m.cursor].ID
	}
	return ""
}

// IsQuitting returns true if the user quit without choosing
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) filtered() []Item {
	if m.searchInput.Value() == "" {
		return m.items
	}

	query := strings.ToLower(m.searchInput.Value())
	var out []Item
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.ID), query) ||
			strings.Contains(strings.ToLower(item.Detail), query) {
			out = append(out, item)
		}
	}
	return out
}

// adjustScroll keeps the cursor inside the viewport
func (m *Model) adjustScroll() {
	count := len(m.filtered())

	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisibleItems {
		m.offset = m.cursor - maxVisibleItems + 1
	}

	maxOffset := count - maxVisibleItems
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch keyMsg.String() {
		case "esc":
			m.searching = false
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.cursor, m.offset = 0, 0
			return m, nil
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		default:
			m.searchInput, cmd = m.searchInput.Update(keyMsg)
			m.cursor, m.offset = 0, 0
			return m, cmd
		}
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(keyMsg, keys.Up):
		if n := len(m.filtered()); m.cursor > 0 {
			m.cursor--
		} else if n > 0 {
			m.cursor = n - 1
		}
		m.adjustScroll()

	case key.Matches(keyMsg, keys.Down):
		if n := len(m.filtered()); m.cursor < n-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
		m.adjustScroll()

	case key.Matches(keyMsg, keys.Confirm):
		if m.Selected() == "" {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faint := lipgloss.NewStyle().Faint(true)

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if m.searching {
		b.WriteString("\nSearch: ")
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	} else if m.searchInput.Value() != "" {
		b.WriteString("\n")
		b.WriteString(faint.Render("Filter: " + m.searchInput.Value() + " (press / to edit, esc to clear)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	items := m.filtered()
	if len(items) == 0 {
		b.WriteString(faint.Render("  (no matching packages)"))
		b.WriteString("\n")
	} else {
		if m.offset > 0 {
			b.WriteString(faint.Render(fmt.Sprintf("  ↑ %d more above", m.offset)))
			b.WriteString("\n")
		}

		end := m.offset + maxVisibleItems
		if end > len(items) {
			end = len(items)
		}

		for i := m.offset; i < end; i++ {
			item := items[i]
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> "))
				b.WriteString(selectedStyle.Render(item.Label))
			} else {
				b.WriteString("  ")
				b.WriteString(item.Label)
			}
			b.WriteString("\n")
		}

		if remaining := len(items) - end; remaining > 0 {
			b.WriteString(faint.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
			b.WriteString("\n")
		}

		if m.cursor < len(items) && items[m.cursor].Detail != "" {
			b.WriteString("\n")
			b.WriteString(faint.Render(items[m.cursor].Detail))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(faint.Render("↑/↓: navigate • /: search • enter: select • q: quit"))

	return b.String()
}

// Run shows the picker and returns the chosen package name, or "" when the user quit
func Run(title string, items []Item, opts ...tea.ProgramOption) (string, error) {
	p := tea.NewProgram(New(title, items), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	fm := finalModel.(Model)
	if fm.IsQuitting() {
		return "", nil
	}
	return fm.Selected(), nil
}
