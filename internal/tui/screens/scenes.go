package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skarby/dirigera-tui/internal/models"
	"github.com/skarby/dirigera-tui/internal/provision"
	"github.com/skarby/dirigera-tui/internal/tui/messages"
	"github.com/skarby/dirigera-tui/internal/tui/styles"
)

// ScenesModel is the scenes screen model. User scenes come first;
// provisioned event scenes are grouped per controller below them and
// rendered as decoded button identities rather than raw names.
type ScenesModel struct {
	scenes []*models.Scene

	flatList []sceneItem
	selected int

	width  int
	height int
}

type sceneItem struct {
	scene    *models.Scene
	isHeader bool
	header   string

	// Set for provisioned event scenes
	event *provision.ButtonEvent
}

// NewScenesModel creates a new scenes screen model
func NewScenesModel() ScenesModel {
	return ScenesModel{}
}

// SetSize sets the terminal size
func (m *ScenesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetScenes sets the scene data and rebuilds the list
func (m *ScenesModel) SetScenes(scenes []*models.Scene) {
	m.scenes = scenes
	m.rebuildFlatList()
}

func (m *ScenesModel) rebuildFlatList() {
	m.flatList = nil

	var user []sceneItem
	provisionedByController := make(map[string][]sceneItem)
	var controllerOrder []string

	for _, scene := range m.scenes {
		ev, ok := provision.ParseSceneName(scene.Name)
		if !ok {
			user = append(user, sceneItem{scene: scene})
			continue
		}
		evCopy := ev
		if _, seen := provisionedByController[ev.ControllerID]; !seen {
			controllerOrder = append(controllerOrder, ev.ControllerID)
		}
		provisionedByController[ev.ControllerID] = append(
			provisionedByController[ev.ControllerID],
			sceneItem{scene: scene, event: &evCopy},
		)
	}

	if len(user) > 0 {
		m.flatList = append(m.flatList, sceneItem{isHeader: true, header: "Your scenes"})
		m.flatList = append(m.flatList, user...)
	}

	for _, controllerID := range controllerOrder {
		m.flatList = append(m.flatList, sceneItem{
			isHeader: true,
			header:   "Event scenes · " + controllerID,
		})
		m.flatList = append(m.flatList, provisionedByController[controllerID]...)
	}

	// Reset selection to the first scene, skipping headers
	m.selected = 0
	for i, item := range m.flatList {
		if !item.isHeader {
			m.selected = i
			break
		}
	}
}

// SelectedScene returns the currently selected scene, if any
func (m *ScenesModel) SelectedScene() *models.Scene {
	if m.selected < 0 || m.selected >= len(m.flatList) {
		return nil
	}
	item := m.flatList[m.selected]
	if item.isHeader {
		return nil
	}
	return item.scene
}

// Update handles messages
func (m ScenesModel) Update(msg tea.Msg) (ScenesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "s", "q":
			return m, func() tea.Msg { return messages.HideScenesMsg{} }

		case "up", "k":
			m.movePrev()

		case "down", "j":
			m.moveNext()

		case "enter":
			if scene := m.SelectedScene(); scene != nil {
				sceneID := scene.ID
				return m, func() tea.Msg {
					return messages.SceneTriggeredMsg{SceneID: sceneID}
				}
			}

		case "u":
			if scene := m.SelectedScene(); scene != nil {
				sceneID := scene.ID
				return m, func() tea.Msg {
					return messages.SceneTriggeredMsg{SceneID: sceneID, Undo: true}
				}
			}

		case "d":
			if scene := m.SelectedScene(); scene != nil {
				sceneID := scene.ID
				return m, func() tea.Msg {
					return messages.DeleteSceneMsg{SceneID: sceneID}
				}
			}

		case "D":
			return m, func() tea.Msg { return messages.DeprovisionAllMsg{} }
		}
	}

	return m, nil
}

func (m *ScenesModel) moveNext() {
	for i := m.selected + 1; i < len(m.flatList); i++ {
		if !m.flatList[i].isHeader {
			m.selected = i
			return
		}
	}
}

func (m *ScenesModel) movePrev() {
	for i := m.selected - 1; i >= 0; i-- {
		if !m.flatList[i].isHeader {
			m.selected = i
			return
		}
	}
}

// View renders the scenes screen
func (m ScenesModel) View() string {
	var b strings.Builder

	b.WriteString(styles.StyleModalTitle.Render("Scenes"))
	b.WriteString("\n\n")

	for i, item := range m.flatList {
		if item.isHeader {
			b.WriteString(styles.StyleRoomTitle.Render(item.header))
			b.WriteString("\n")
			continue
		}

		style := styles.StyleSceneItem
		cursor := "  "
		if i == m.selected {
			style = styles.StyleSceneItemSelected
			cursor = "> "
		}

		label := item.scene.Name
		if item.event != nil {
			label = fmt.Sprintf("button %d · %s", item.event.ButtonIndex, item.event.ClickPattern)
			if item.event.ControllerType == provision.TriggerShortcutController {
				label = "legacy · " + item.event.ClickPattern
			}
		}

		b.WriteString(cursor + style.Render(label) + "\n")
	}

	if len(m.flatList) == 0 {
		b.WriteString(styles.StyleTextMuted.Render("No scenes available"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.StyleHelp.Render("↑/↓ navigate • enter trigger • u undo • d delete • D remove all event scenes • esc close"))

	content := b.String()
	modalWidth := m.width * 70 / 100
	if modalWidth < 44 {
		modalWidth = 44
	}
	if modalWidth > 70 {
		modalWidth = 70
	}
	modal := styles.StyleModal.Width(modalWidth).Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
