package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fbkclanna/msrvcheck/internal/workspace"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// crateItem is a list entry for the crate picker.
type crateItem struct {
	crate  workspace.Crate
	picked bool
}

func (i crateItem) Title() string {
	box := "[ ]"
	if i.picked {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s", box, i.crate.Name)
}

func (i crateItem) Description() string { return i.crate.RelDir }
func (i crateItem) FilterValue() string { return i.crate.Name }

// pickModel is the bubbletea model for interactive crate selection.
type pickModel struct {
	list    list.Model
	done    bool
	aborted bool
}

func newPickModel(crates []workspace.Crate) pickModel {
	items := make([]list.Item, len(crates))
	for i, cr := range crates {
		items[i] = crateItem{crate: cr, picked: true}
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Select crates to check (space toggles, enter confirms)"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return pickModel{list: l}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		// Keep toggle keys out of the way while the user is typing a filter.
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "ctrl+c", "esc":
				m.aborted = true
				return m, tea.Quit
			case "enter":
				m.done = true
				return m, tea.Quit
			case " ":
				if it, ok := m.list.SelectedItem().(crateItem); ok {
					it.picked = !it.picked
					return m, m.list.SetItem(m.list.Index(), it)
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return m.list.View()
}

// pickCrates runs the interactive picker and returns the selected crates.
func pickCrates(crates []workspace.Crate) ([]workspace.Crate, error) {
	result, err := tea.NewProgram(newPickModel(crates)).Run()
	if err != nil {
		return nil, err
	}

	rm := result.(pickModel)
	if rm.aborted {
		return nil, fmt.Errorf("user aborted")
	}

	var picked []workspace.Crate
	for _, it := range rm.list.Items() {
		if ci, ok := it.(crateItem); ok && ci.picked {
			picked = append(picked, ci.crate)
		}
	}
	if len(picked) == 0 {
		return nil, fmt.Errorf("no crates selected")
	}
	return picked, nil
}
