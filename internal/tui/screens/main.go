package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/models"
	"github.com/skarby/dirigera-tui/internal/provision"
	"github.com/skarby/dirigera-tui/internal/tui/components"
	"github.com/skarby/dirigera-tui/internal/tui/messages"
	"github.com/skarby/dirigera-tui/internal/tui/styles"
)

// Direction mirrors the pending tracker's direction values
type Direction int

const (
	DirExact Direction = iota
	DirUp
	DirDown
)

// PendingAdder registers an in-flight device update with the app's
// pending tracker.
type PendingAdder func(deviceID, field string, value interface{}, dir Direction)

const levelStep = 10
const tempStep = 200

type itemKind int

const (
	itemRoomHeader itemKind = iota
	itemLight
	itemController
	itemMotionSensor
	itemEnvSensor
)

type listItem struct {
	kind       itemKind
	room       *models.Room
	light      *models.Light
	controller *models.Controller
	motion     *models.MotionSensor
	env        *models.EnvironmentSensor
}

// MainModel is the main device list screen
type MainModel struct {
	rooms  []*models.Room
	scenes []*models.Scene

	// Provisioned event scene count per controller id
	provisioned map[string]int

	items  []listItem
	cursor int
	scroll int

	loading bool
	spinner spinner.Model

	// Transient status line content
	status     string
	lastButton string

	width  int
	height int
}

// NewMainModel creates the main screen model
func NewMainModel() MainModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	return MainModel{
		loading: true,
		spinner: sp,
	}
}

// Init initializes the main screen
func (m MainModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize sets the terminal size
func (m *MainModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetLoading toggles the loading spinner
func (m *MainModel) SetLoading(loading bool) {
	m.loading = loading
}

// SetStatus sets a transient status line
func (m *MainModel) SetStatus(status string) {
	m.status = status
}

// SetButtonEvent records the most recent decoded button press for the
// status bar.
func (m *MainModel) SetButtonEvent(ev provision.ButtonEvent) {
	if ev.ControllerType == provision.TriggerShortcutController {
		m.lastButton = fmt.Sprintf("%s · %s", ev.ControllerID, ev.ClickPattern)
		return
	}
	m.lastButton = fmt.Sprintf("%s · button %d · %s", ev.ControllerID, ev.ButtonIndex, ev.ClickPattern)
}

// SetData sets the room and scene data
func (m *MainModel) SetData(rooms []*models.Room, scenes []*models.Scene) {
	m.rooms = rooms
	m.scenes = scenes
	m.loading = false

	m.provisioned = make(map[string]int)
	for _, room := range rooms {
		for _, c := range room.Controllers {
			m.provisioned[c.ID] = provision.CountProvisioned(scenes, c.ID)
		}
	}

	m.rebuildItems()
}

func (m *MainModel) rebuildItems() {
	m.items = nil
	for _, room := range m.rooms {
		m.items = append(m.items, listItem{kind: itemRoomHeader, room: room})
		for _, light := range room.Lights {
			m.items = append(m.items, listItem{kind: itemLight, room: room, light: light})
		}
		for _, c := range room.Controllers {
			m.items = append(m.items, listItem{kind: itemController, room: room, controller: c})
		}
		for _, s := range room.MotionSensors {
			m.items = append(m.items, listItem{kind: itemMotionSensor, room: room, motion: s})
		}
		for _, s := range room.EnvironmentSensors {
			m.items = append(m.items, listItem{kind: itemEnvSensor, room: room, env: s})
		}
	}

	if m.cursor >= len(m.items) {
		m.cursor = 0
	}
	if len(m.items) > 0 && m.items[m.cursor].kind == itemRoomHeader {
		m.moveNext()
	}
	m.ensureVisible()
}

// SelectedItem returns the item under the cursor
func (m *MainModel) SelectedItem() *listItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

func (m *MainModel) moveNext() {
	for i := m.cursor + 1; i < len(m.items); i++ {
		if m.items[i].kind != itemRoomHeader {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

func (m *MainModel) movePrev() {
	for i := m.cursor - 1; i >= 0; i-- {
		if m.items[i].kind != itemRoomHeader {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

func (m *MainModel) visibleLines() int {
	// Header, status bar and help line take up the rest
	lines := m.height - 6
	if lines < 3 {
		lines = 3
	}
	return lines
}

func (m *MainModel) ensureVisible() {
	visible := m.visibleLines()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// Update handles messages
func (m MainModel) Update(msg tea.Msg, hub api.HubClient, addPending PendingAdder) (MainModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.movePrev()

		case "down", "j":
			m.moveNext()

		case "enter", " ":
			if item := m.SelectedItem(); item != nil && item.kind == itemLight {
				light := item.light
				newState := !light.IsOn
				light.IsOn = newState
				item.room.UpdateState()
				if addPending != nil {
					addPending(light.ID, "isOn", newState, DirExact)
				}
				cmds = append(cmds, m.setLightOnCmd(hub, light.ID, newState))
			}

		case "+", "=", "right", "l":
			if cmd := m.adjustLevel(hub, addPending, levelStep); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case "-", "left", "h":
			if cmd := m.adjustLevel(hub, addPending, -levelStep); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case "]":
			if cmd := m.adjustColorTemp(hub, addPending, tempStep); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case "[":
			if cmd := m.adjustColorTemp(hub, addPending, -tempStep); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case "p":
			if item := m.SelectedItem(); item != nil && item.kind == itemController {
				c := item.controller
				m.status = fmt.Sprintf("Provisioning event scenes for %s...", c.Name)
				return m, func() tea.Msg {
					return messages.ProvisionMsg{
						ControllerID:  c.ID,
						ClickPatterns: c.ClickPatterns,
						ButtonCount:   c.ButtonCount,
					}
				}
			}

		case "s":
			return m, func() tea.Msg { return messages.ShowScenesMsg{} }

		case "r":
			m.loading = true
			m.status = ""
			return m, func() tea.Msg { return messages.RefreshMsg{} }
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *MainModel) adjustLevel(hub api.HubClient, addPending PendingAdder, delta int) tea.Cmd {
	item := m.SelectedItem()
	if item == nil || item.kind != itemLight || !item.light.IsOn {
		return nil
	}

	light := item.light
	target := light.LightLevel + delta
	light.SetLevel(target)
	target = light.LightLevel

	if addPending != nil {
		dir := DirUp
		if delta < 0 {
			dir = DirDown
		}
		addPending(light.ID, "lightLevel", target, dir)
	}
	return m.setLightLevelCmd(hub, light.ID, target)
}

func (m *MainModel) adjustColorTemp(hub api.HubClient, addPending PendingAdder, delta int) tea.Cmd {
	item := m.SelectedItem()
	if item == nil || item.kind != itemLight {
		return nil
	}
	light := item.light
	if !light.SupportsColorTemperature() || !light.IsOn {
		return nil
	}

	target := *light.ColorTemperature + delta
	if target < light.ColorTemperatureMin {
		target = light.ColorTemperatureMin
	}
	if target > light.ColorTemperatureMax {
		target = light.ColorTemperatureMax
	}
	*light.ColorTemperature = target

	if addPending != nil {
		dir := DirUp
		if delta < 0 {
			dir = DirDown
		}
		addPending(light.ID, "colorTemperature", target, dir)
	}
	return m.setColorTempCmd(hub, light.ID, target)
}

// View renders the main screen
func (m MainModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderHeader(m.width, m.connectionStatus()))
	b.WriteString("\n")

	if m.loading {
		loading := fmt.Sprintf("%s Loading devices...", m.spinner.View())
		b.WriteString(lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, loading))
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
		return b.String()
	}

	panelWidth := 36
	listWidth := m.width - panelWidth - 2
	if listWidth < 40 {
		listWidth = m.width
		panelWidth = 0
	}

	list := m.renderList(listWidth)

	if panelWidth > 0 {
		panel := m.renderPanel()
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, panel))
	} else {
		b.WriteString(list)
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m MainModel) connectionStatus() string {
	if m.loading {
		return "Connecting..."
	}
	return "Connected"
}

func (m MainModel) renderList(width int) string {
	var b strings.Builder

	visible := m.visibleLines()
	end := m.scroll + visible
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := m.scroll; i < end; i++ {
		item := m.items[i]
		selected := i == m.cursor

		switch item.kind {
		case itemRoomHeader:
			b.WriteString(components.RenderRoomHeader(item.room, false))
		case itemLight:
			b.WriteString(components.RenderLightRow(item.light, selected, width))
		case itemController:
			b.WriteString(components.RenderControllerRow(item.controller, selected, m.provisioned[item.controller.ID], width))
		case itemMotionSensor:
			b.WriteString(components.RenderMotionSensorRow(item.motion, selected, width))
		case itemEnvSensor:
			b.WriteString(components.RenderEnvironmentSensorRow(item.env, selected, width))
		}
		b.WriteString("\n")
	}

	if len(m.items) == 0 {
		b.WriteString(styles.StyleTextMuted.Render("No devices found"))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// renderPanel renders the detail side panel for the selected device
func (m MainModel) renderPanel() string {
	item := m.SelectedItem()
	if item == nil {
		return ""
	}

	var b strings.Builder
	switch item.kind {
	case itemLight:
		m.renderLightPanel(&b, item.light)
	case itemController:
		m.renderControllerPanel(&b, item.controller)
	case itemMotionSensor:
		m.renderMotionPanel(&b, item.motion)
	case itemEnvSensor:
		m.renderEnvPanel(&b, item.env)
	default:
		return ""
	}

	return styles.StyleSidePanel.Render(b.String())
}

func (m MainModel) renderLightPanel(b *strings.Builder, light *models.Light) {
	b.WriteString(styles.StyleSidePanelTitle.Render(light.Name))
	b.WriteString("\n")
	b.WriteString(styles.StyleTextMuted.Render(light.Model))
	b.WriteString("\n\n")

	state := styles.StyleStatusOff.Render("off")
	if light.IsOn {
		state = styles.StyleStatusOn.Render("on")
	}
	b.WriteString("State  " + state + "\n")
	b.WriteString(fmt.Sprintf("Level  %s %d%%\n", components.RenderLevelBar(light.LightLevel, light.IsOn), light.LightLevel))

	if light.SupportsColorTemperature() {
		b.WriteString(fmt.Sprintf("Temp   %dK (%d-%dK)\n",
			*light.ColorTemperature, light.ColorTemperatureMin, light.ColorTemperatureMax))
	}
	if !light.Reachable {
		b.WriteString("\n" + styles.StyleError.Render("unreachable"))
	}
}

func (m MainModel) renderControllerPanel(b *strings.Builder, c *models.Controller) {
	b.WriteString(styles.StyleSidePanelTitle.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(styles.StyleTextMuted.Render(c.Model))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Buttons   %d\n", c.ButtonCount))
	b.WriteString("Gestures  " + strings.Join(c.ClickPatterns, ", ") + "\n")
	if c.BatteryPercentage != nil {
		b.WriteString("Battery   " + components.RenderBatteryBar(*c.BatteryPercentage) + "\n")
	}
	if c.SwitchLabel != nil {
		b.WriteString("Label     " + *c.SwitchLabel + "\n")
	}

	b.WriteString("\n")
	count := m.provisioned[c.ID]
	if count > 0 {
		b.WriteString(styles.StyleSuccess.Render(fmt.Sprintf("Button events active (%d scenes)", count)))
	} else {
		b.WriteString(styles.StyleTextMuted.Render("Button events not provisioned"))
		b.WriteString("\n")
		b.WriteString(styles.StyleHelp.Render("press p to enable"))
	}
}

func (m MainModel) renderMotionPanel(b *strings.Builder, s *models.MotionSensor) {
	b.WriteString(styles.StyleSidePanelTitle.Render(s.Name))
	b.WriteString("\n")
	b.WriteString(styles.StyleTextMuted.Render(s.Model))
	b.WriteString("\n\n")

	state := styles.StyleTextMuted.Render("clear")
	if s.IsDetected {
		state = styles.StyleStatusOn.Render("motion detected")
	}
	b.WriteString("State    " + state + "\n")
	if s.LightLevel != nil {
		b.WriteString(fmt.Sprintf("Light    %.1f lux\n", *s.LightLevel))
	}
	if s.IsOn != nil {
		enabled := "disabled"
		if *s.IsOn {
			enabled = "enabled"
		}
		b.WriteString("Sensor   " + enabled + "\n")
	}
	if s.BatteryPercentage != nil {
		b.WriteString("Battery  " + components.RenderBatteryBar(*s.BatteryPercentage) + "\n")
	}
}

func (m MainModel) renderEnvPanel(b *strings.Builder, s *models.EnvironmentSensor) {
	b.WriteString(styles.StyleSidePanelTitle.Render(s.Name))
	b.WriteString("\n")
	b.WriteString(styles.StyleTextMuted.Render(s.Model))
	b.WriteString("\n\n")

	if s.CurrentTemperature != nil {
		b.WriteString(fmt.Sprintf("Temp      %.1f°C\n", *s.CurrentTemperature))
	}
	if s.CurrentRH != nil {
		b.WriteString(fmt.Sprintf("Humidity  %d%%\n", *s.CurrentRH))
	}
	if s.CurrentCO2 != nil {
		b.WriteString(fmt.Sprintf("CO2       %d ppm\n", *s.CurrentCO2))
	}
	if s.CurrentPM25 != nil {
		b.WriteString(fmt.Sprintf("PM2.5     %d µg/m³\n", *s.CurrentPM25))
		if s.MinMeasuredPM25 != nil && s.MaxMeasuredPM25 != nil {
			b.WriteString(fmt.Sprintf("          (min %d, max %d)\n", *s.MinMeasuredPM25, *s.MaxMeasuredPM25))
		}
	}
	if s.VOCIndex != nil {
		b.WriteString(fmt.Sprintf("VOC       %d\n", *s.VOCIndex))
	}
	if s.BatteryPercentage != nil {
		b.WriteString("Battery   " + components.RenderBatteryBar(*s.BatteryPercentage) + "\n")
	}
}

func (m MainModel) renderStatusBar() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, styles.StylePrimary.Render(m.status))
	}
	if m.lastButton != "" {
		parts = append(parts, styles.StyleStatusOn.Render("⏺ "+m.lastButton))
	}
	if len(parts) == 0 {
		return styles.StyleTextMuted.Render(" ready")
	}
	return " " + strings.Join(parts, "   ")
}

func (m MainModel) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"↑/↓", "navigate"},
		{"enter", "toggle"},
		{"+/-", "level"},
		{"[/]", "temp"},
		{"p", "provision events"},
		{"s", "scenes"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, styles.StyleHelpKey.Render(k.key)+" "+k.desc)
	}
	return styles.StyleHelp.Render(" " + strings.Join(parts, " • "))
}

// Commands

func (m MainModel) setLightOnCmd(hub api.HubClient, lightID string, on bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := hub.SetLightOn(ctx, lightID, on); err != nil {
			return messages.ErrorMsg{Err: err}
		}
		return nil
	}
}

func (m MainModel) setLightLevelCmd(hub api.HubClient, lightID string, level int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := hub.SetLightLevel(ctx, lightID, level); err != nil {
			return messages.ErrorMsg{Err: err}
		}
		return nil
	}
}

func (m MainModel) setColorTempCmd(hub api.HubClient, lightID string, kelvin int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := hub.SetColorTemperature(ctx, lightID, kelvin); err != nil {
			return messages.ErrorMsg{Err: err}
		}
		return nil
	}
}
