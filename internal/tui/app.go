package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/config"
	"github.com/skarby/dirigera-tui/internal/models"
	"github.com/skarby/dirigera-tui/internal/provision"
	"github.com/skarby/dirigera-tui/internal/tui/messages"
	"github.com/skarby/dirigera-tui/internal/tui/screens"
)

// Screen represents the current screen state
type Screen int

const (
	ScreenSetup Screen = iota
	ScreenMain
	ScreenScenes
)

// Model is the main application model
type Model struct {
	config *config.Config

	hub         api.HubClient
	events      *api.EventSubscription
	eventCh     chan []api.Event
	provisioner *provision.Provisioner
	pending     *PendingTracker

	rooms  []*models.Room
	scenes []*models.Scene

	screen Screen

	setupScreen  screens.SetupModel
	mainScreen   screens.MainModel
	scenesScreen screens.ScenesModel

	width  int
	height int

	err error

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a new application model. With demo set, a built-in
// in-memory hub is used and no pairing or network access happens.
func NewModel(cfg *config.Config, demo bool) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		config:  cfg,
		pending: NewPendingTracker(),
		eventCh: make(chan []api.Event, 16),
		ctx:     ctx,
		cancel:  cancel,
	}

	switch {
	case demo:
		m.screen = ScreenMain
		m.hub = api.NewDemoHub()
	case cfg.HasHubs():
		m.screen = ScreenMain
		hubCfg, _ := cfg.GetLastHub()
		if hubCfg != nil {
			m.hub = api.NewDirigeraHub(hubCfg.Host, hubCfg.Token, hubCfg.HubID)
		}
	default:
		m.screen = ScreenSetup
	}

	if m.hub != nil {
		m.provisioner = provision.New(m.hub)
	}

	m.setupScreen = screens.NewSetupModel()
	m.mainScreen = screens.NewMainModel()
	m.scenesScreen = screens.NewScenesModel()

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("dirigera-tui"),
	}

	switch m.screen {
	case ScreenSetup:
		cmds = append(cmds, m.setupScreen.Init())
	case ScreenMain:
		cmds = append(cmds, m.mainScreen.Init(), m.fetchDataCmd())
	}

	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mainScreen.SetSize(msg.Width, msg.Height)
		m.setupScreen.SetSize(msg.Width, msg.Height)
		m.scenesScreen.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "q":
			if m.screen == ScreenMain {
				m.shutdown()
				return m, tea.Quit
			}
		}

	case messages.HubConnectedMsg:
		m.hub = msg.Hub
		m.provisioner = provision.New(m.hub)
		m.config.AddHub(config.HubConfig{
			Host:  msg.Hub.Host(),
			Token: msg.Token,
			HubID: msg.Hub.HubID(),
		})
		m.config.LastHubID = msg.Hub.HubID()
		if err := m.config.Save(); err != nil {
			m.err = err
		}

		m.screen = ScreenMain
		m.mainScreen.SetLoading(true)
		cmds = append(cmds, m.mainScreen.Init(), m.fetchDataCmd())

	case messages.DataFetchedMsg:
		m.rooms = msg.Rooms
		m.scenes = msg.Scenes
		m.mainScreen.SetData(m.rooms, m.scenes)
		m.scenesScreen.SetScenes(m.scenes)

		cmds = append(cmds, m.startEventsCmd())

	case messages.ErrorMsg:
		m.err = msg.Err
		m.mainScreen.SetStatus("error: " + msg.Err.Error())

	case messages.ShowScenesMsg:
		m.screen = ScreenScenes
		return m, nil

	case messages.HideScenesMsg:
		m.screen = ScreenMain
		return m, nil

	case messages.SceneTriggeredMsg:
		if m.hub != nil {
			cmds = append(cmds, m.triggerSceneCmd(msg.SceneID, msg.Undo))
		}

	case messages.DeleteSceneMsg:
		if m.hub != nil {
			cmds = append(cmds, m.deleteSceneCmd(msg.SceneID))
		}

	case messages.ProvisionMsg:
		if m.provisioner != nil {
			cmds = append(cmds, m.provisionCmd(msg))
		}

	case messages.ProvisionDoneMsg:
		m.mainScreen.SetStatus("Event scenes ready for " + msg.ControllerID)
		cmds = append(cmds, m.fetchDataCmd())

	case messages.DeprovisionAllMsg:
		if m.provisioner != nil {
			cmds = append(cmds, m.deprovisionCmd())
		}

	case messages.DeprovisionDoneMsg:
		m.screen = ScreenMain
		m.mainScreen.SetStatus(pluralScenes(msg.Deleted) + " removed")
		cmds = append(cmds, m.fetchDataCmd())

	case messages.RefreshMsg:
		m.mainScreen.SetLoading(true)
		cmds = append(cmds, m.fetchDataCmd())

	case messages.HubEventsMsg:
		cmds = append(cmds, m.handleHubEvents(msg.Events), m.waitForEventsCmd())
	}

	switch m.screen {
	case ScreenSetup:
		var cmd tea.Cmd
		m.setupScreen, cmd = m.setupScreen.Update(msg)
		cmds = append(cmds, cmd)

	case ScreenMain:
		var cmd tea.Cmd
		m.mainScreen, cmd = m.mainScreen.Update(msg, m.hub, m.addPending)
		cmds = append(cmds, cmd)

	case ScreenScenes:
		var cmd tea.Cmd
		m.scenesScreen, cmd = m.scenesScreen.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the current screen
func (m Model) View() string {
	switch m.screen {
	case ScreenSetup:
		return m.setupScreen.View()
	case ScreenMain:
		return m.mainScreen.View()
	case ScreenScenes:
		return m.scenesScreen.View()
	default:
		return "Unknown screen"
	}
}

func (m *Model) shutdown() {
	if m.events != nil {
		m.events.Stop()
	}
	m.cancel()
}

// addPending bridges the screens' pending callback to the tracker
func (m Model) addPending(deviceID, field string, value interface{}, dir screens.Direction) {
	switch dir {
	case screens.DirUp:
		m.pending.AddWithDirection(deviceID, field, value, DirUp)
	case screens.DirDown:
		m.pending.AddWithDirection(deviceID, field, value, DirDown)
	default:
		m.pending.Add(deviceID, field, value)
	}
}

// startEventsCmd starts the websocket subscription once and begins
// forwarding event batches into the bubbletea loop.
func (m *Model) startEventsCmd() tea.Cmd {
	if m.events != nil {
		return nil
	}
	hub, ok := m.hub.(*api.DirigeraHub)
	if !ok {
		// Demo hub has no event stream
		return nil
	}

	ch := m.eventCh
	m.events = api.NewEventSubscription(hub, func(events []api.Event) {
		select {
		case ch <- events:
		default:
			// Drop the batch rather than block the read loop
		}
	})
	if err := m.events.Start(m.ctx); err != nil {
		m.err = err
		m.events = nil
		return nil
	}
	return m.waitForEventsCmd()
}

// waitForEventsCmd blocks until the next event batch arrives
func (m Model) waitForEventsCmd() tea.Cmd {
	ch := m.eventCh
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case events := <-ch:
			return messages.HubEventsMsg{Events: events}
		case <-ctx.Done():
			return nil
		}
	}
}

// handleHubEvents applies an event batch: button presses update the
// status bar, device updates patch local state, structural changes
// trigger a refetch.
func (m *Model) handleHubEvents(events []api.Event) tea.Cmd {
	refetch := false

	for _, event := range events {
		if ev, ok := provision.ParseButtonEvent(event); ok {
			m.mainScreen.SetButtonEvent(ev)
			continue
		}

		switch event.Type {
		case api.EventDeviceStateChanged:
			m.applyDeviceUpdate(event)
		case api.EventDeviceAdded, api.EventDeviceRemoved,
			api.EventSceneCreated, api.EventSceneDeleted:
			refetch = true
		}
	}

	m.pending.Cleanup()

	if refetch {
		return m.fetchDataCmd()
	}
	return nil
}

// applyDeviceUpdate patches the in-memory light state from an event,
// unless the change is an echo of our own in-flight update.
func (m *Model) applyDeviceUpdate(event api.Event) {
	update, err := api.ParseDeviceUpdate(event)
	if err != nil || update == nil {
		return
	}

	for _, room := range m.rooms {
		light := room.LightByID(update.ID)
		if light == nil {
			continue
		}
		if update.IsOn != nil && !m.pending.ShouldIgnore(light.ID, FieldIsOn, *update.IsOn) {
			light.IsOn = *update.IsOn
		}
		if update.LightLevel != nil && !m.pending.ShouldIgnore(light.ID, FieldLightLevel, *update.LightLevel) {
			light.LightLevel = *update.LightLevel
		}
		if update.ColorTemperature != nil && light.ColorTemperature != nil &&
			!m.pending.ShouldIgnore(light.ID, FieldColorTemperature, *update.ColorTemperature) {
			*light.ColorTemperature = *update.ColorTemperature
		}
		room.UpdateState()
		return
	}
}

// Commands

func (m Model) fetchDataCmd() tea.Cmd {
	hub := m.hub
	ctx := m.ctx
	return func() tea.Msg {
		if hub == nil {
			return messages.ErrorMsg{Err: config.ErrNoHubs}
		}

		rooms, scenes, err := hub.FetchAll(ctx)
		if err != nil {
			return messages.ErrorMsg{Err: err}
		}

		return messages.DataFetchedMsg{Rooms: rooms, Scenes: scenes}
	}
}

func (m Model) triggerSceneCmd(sceneID string, undo bool) tea.Cmd {
	hub := m.hub
	ctx := m.ctx
	return func() tea.Msg {
		var err error
		if undo {
			err = hub.UndoScene(ctx, sceneID)
		} else {
			err = hub.TriggerScene(ctx, sceneID)
		}
		if err != nil {
			return messages.ErrorMsg{Err: err}
		}
		return nil
	}
}

func (m Model) deleteSceneCmd(sceneID string) tea.Cmd {
	hub := m.hub
	ctx := m.ctx
	return func() tea.Msg {
		if err := hub.DeleteScene(ctx, sceneID); err != nil {
			return messages.ErrorMsg{Err: err}
		}
		return messages.RefreshMsg{}
	}
}

func (m Model) provisionCmd(msg messages.ProvisionMsg) tea.Cmd {
	p := m.provisioner
	ctx := m.ctx
	return func() tea.Msg {
		err := p.Provision(ctx, msg.ControllerID, msg.ClickPatterns, msg.ButtonCount)
		if err != nil {
			return messages.ErrorMsg{Err: err}
		}
		return messages.ProvisionDoneMsg{ControllerID: msg.ControllerID}
	}
}

func (m Model) deprovisionCmd() tea.Cmd {
	p := m.provisioner
	ctx := m.ctx
	return func() tea.Msg {
		deleted, err := p.DeprovisionAll(ctx)
		if err != nil {
			return messages.ErrorMsg{Err: err}
		}
		return messages.DeprovisionDoneMsg{Deleted: deleted}
	}
}

func pluralScenes(n int) string {
	if n == 1 {
		return "1 event scene"
	}
	return fmt.Sprintf("%d event scenes", n)
}
