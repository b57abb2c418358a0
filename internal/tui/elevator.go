// Package tui holds the bubbletea screens for the elevator panel and the
// appraisal counter.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LanS10t/geminiMiner/internal/elevator"
)

// ElevatorModel is the floor picker. Enter on an unlocked floor travels
// there and quits; locked floors cannot be chosen.
type ElevatorModel struct {
	Panel  *elevator.Panel
	Keys   KeyMap
	Cursor int

	// Traveled is the depth chosen, or 0 if the panel was closed.
	Traveled int
	// Notice is shown under the list after a refused travel.
	Notice string

	floors []elevator.Floor
}

// NewElevatorModel wraps p. The panel's OnTravel callback still fires on
// a successful travel.
func NewElevatorModel(p *elevator.Panel) ElevatorModel {
	m := ElevatorModel{
		Panel:  p,
		Keys:   DefaultKeyMap(),
		floors: p.Floors(),
	}
	for i, f := range m.floors {
		if f.Unlocked {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m ElevatorModel) Init() tea.Cmd { return nil }

func (m ElevatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.Keys.Quit), key.Matches(km, m.Keys.Back):
		return m, tea.Quit
	case key.Matches(km, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.Notice = ""
	case key.Matches(km, m.Keys.Down):
		if m.Cursor < len(m.floors)-1 {
			m.Cursor++
		}
		m.Notice = ""
	case key.Matches(km, m.Keys.Enter):
		if len(m.floors) == 0 {
			return m, nil
		}
		depth := m.floors[m.Cursor].Depth
		err := m.Panel.Travel(depth)
		switch {
		case err == nil:
			m.Traveled = depth
			return m, tea.Quit
		case errors.Is(err, elevator.ErrLocked):
			m.Notice = fmt.Sprintf("%s is locked", elevator.Label(depth))
		default:
			m.Notice = err.Error()
		}
	}
	return m, nil
}

func (m ElevatorModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(iconDown + " Deep Descent Elevator"))
	b.WriteString("\n\n")

	for i, f := range m.floors {
		indicator := "  "
		if i == m.Cursor {
			indicator = selectionIndicator + " "
		}
		label := fmt.Sprintf("%-7s", f.Label)

		var row string
		switch {
		case !f.Unlocked:
			row = styleRowLocked.Render(label + " " + iconLock)
		case i == m.Cursor:
			row = styleRowSelected.Render(label) + " " + styleReady.Render(iconReady)
		default:
			row = styleRowNormal.Render(label) + " " + styleReady.Render(iconReady)
		}
		b.WriteString(indicator + row + "\n")
	}

	if m.Notice != "" {
		b.WriteString("\n" + styleError.Render(m.Notice) + "\n")
	}
	b.WriteString("\n" + styleHint.Render(elevator.Footer) + "\n")
	b.WriteString(helpLine(m.Keys.Up, m.Keys.Down, m.Keys.Enter, m.Keys.Back))

	return styleBox.Render(b.String())
}
