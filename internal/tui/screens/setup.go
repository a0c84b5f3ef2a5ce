package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/tui/messages"
	"github.com/skarby/dirigera-tui/internal/tui/styles"
)

// SetupState represents the current setup state
type SetupState int

const (
	StateDiscovering SetupState = iota
	StateHubList
	StateManualEntry
	StatePairing
	StateSuccess
	StateError
)

// pairingAppName identifies this client to the hub during pairing
const pairingAppName = "dirigera-tui"

// SetupModel is the setup screen model
type SetupModel struct {
	state    SetupState
	hubs     []api.DiscoveredHub
	selected int
	input    textinput.Model
	spinner  spinner.Model
	err      error
	message  string

	// Pairing state
	pairingHost  string
	pairingHubID string

	width  int
	height int
}

// NewSetupModel creates a new setup screen model
func NewSetupModel() SetupModel {
	ti := textinput.New()
	ti.Placeholder = "192.168.1.x"
	ti.CharLimit = 45

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	return SetupModel{
		state:   StateDiscovering,
		input:   ti,
		spinner: sp,
	}
}

// Init initializes the setup screen
func (m SetupModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.discoverCmd(),
	)
}

// SetSize sets the terminal size
func (m *SetupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case StateHubList:
			switch msg.String() {
			case "up", "k":
				if m.selected > 0 {
					m.selected--
				}
			case "down", "j":
				if m.selected < len(m.hubs) {
					m.selected++
				}
			case "enter":
				if m.selected < len(m.hubs) {
					hub := m.hubs[m.selected]
					m.state = StatePairing
					m.pairingHost = hub.Host
					m.pairingHubID = hub.HubID
					cmds = append(cmds, m.pairCmd())
				} else {
					m.state = StateManualEntry
					m.input.Focus()
					cmds = append(cmds, textinput.Blink)
				}
			case "m":
				m.state = StateManualEntry
				m.input.Focus()
				cmds = append(cmds, textinput.Blink)
			case "r":
				m.state = StateDiscovering
				cmds = append(cmds, m.discoverCmd())
			}

		case StateManualEntry:
			switch msg.String() {
			case "enter":
				host := strings.TrimSpace(m.input.Value())
				if host != "" {
					m.state = StatePairing
					m.pairingHost = host
					cmds = append(cmds, m.pairCmd())
				}
			case "esc":
				m.state = StateHubList
				m.input.Blur()
			}

		case StateError:
			switch msg.String() {
			case "enter", "esc":
				m.state = StateHubList
				m.err = nil
			}
		}

	case HubsDiscoveredMsg:
		m.hubs = msg.Hubs
		m.state = StateHubList

	case PairingSuccessMsg:
		m.state = StateSuccess
		m.message = "Successfully paired with hub!"
		return m, func() tea.Msg {
			return messages.HubConnectedMsg{
				Hub:   msg.Hub,
				Token: msg.Token,
			}
		}

	case PairingErrorMsg:
		m.state = StateError
		m.err = msg.Err

	case DiscoveryErrorMsg:
		m.state = StateHubList
		m.err = msg.Err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.state == StateManualEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the setup screen
func (m SetupModel) View() string {
	var b strings.Builder

	header := styles.StyleHeader.Render("  DIRIGERA Setup  ")
	b.WriteString(lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Top, header))
	b.WriteString("\n\n")

	var content string
	switch m.state {
	case StateDiscovering:
		content = m.renderDiscovering()
	case StateHubList:
		content = m.renderHubList()
	case StateManualEntry:
		content = m.renderManualEntry()
	case StatePairing:
		content = m.renderPairing()
	case StateSuccess:
		content = m.renderSuccess()
	case StateError:
		content = m.renderError()
	}

	b.WriteString(lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, content))

	return b.String()
}

func (m SetupModel) renderDiscovering() string {
	return fmt.Sprintf("%s Searching for DIRIGERA hubs...", m.spinner.View())
}

func (m SetupModel) renderHubList() string {
	var b strings.Builder

	if len(m.hubs) == 0 {
		b.WriteString(styles.StyleTextMuted.Render("No hubs found.\n\n"))
	} else {
		b.WriteString("Found hubs:\n\n")
		for i, hub := range m.hubs {
			cursor := "  "
			style := styles.StyleDeviceName
			if i == m.selected {
				cursor = "> "
				style = styles.StyleSceneItemSelected
			}
			name := hub.Host
			if hub.Name != "" {
				name = fmt.Sprintf("%s (%s)", hub.Name, hub.Host)
			}
			b.WriteString(cursor + style.Render(name) + "\n")
		}
	}

	cursor := "  "
	style := styles.StyleDeviceName
	if m.selected >= len(m.hubs) {
		cursor = "> "
		style = styles.StyleSceneItemSelected
	}
	b.WriteString("\n" + cursor + style.Render("Enter IP manually...") + "\n")

	if m.err != nil {
		b.WriteString("\n" + styles.StyleError.Render("discovery failed: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + styles.StyleHelp.Render("↑/↓ navigate • enter select • r refresh • m manual"))

	return b.String()
}

func (m SetupModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString("Enter hub IP address:\n\n")
	b.WriteString(styles.StyleInputFocused.Render(m.input.View()))
	b.WriteString("\n\n" + styles.StyleHelp.Render("enter confirm • esc back"))

	return b.String()
}

func (m SetupModel) renderPairing() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s Pairing with %s...\n\n", m.spinner.View(), m.pairingHost))
	b.WriteString(styles.StylePrimary.Render("Press the action button on the bottom of your DIRIGERA hub"))

	return b.String()
}

func (m SetupModel) renderSuccess() string {
	return styles.StyleSuccess.Render("✓ " + m.message)
}

func (m SetupModel) renderError() string {
	return styles.StyleError.Render("✗ Error: "+m.err.Error()) +
		"\n\n" + styles.StyleHelp.Render("enter back")
}

// Commands

func (m SetupModel) discoverCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		hubs, err := api.DiscoverMDNS(ctx, 5*time.Second)
		if err != nil {
			return DiscoveryErrorMsg{Err: err}
		}
		return HubsDiscoveredMsg{Hubs: hubs}
	}
}

func (m SetupModel) pairCmd() tea.Cmd {
	host := m.pairingHost
	hubID := m.pairingHubID
	return func() tea.Msg {
		// Pairing waits for a physical button press, allow plenty of time
		ctx, cancel := context.WithTimeout(context.Background(), 65*time.Second)
		defer cancel()

		if err := api.Probe(ctx, host, 5*time.Second); err != nil {
			return PairingErrorMsg{Err: err}
		}

		token, err := api.PairHub(ctx, host, pairingAppName, 60*time.Second)
		if err != nil {
			return PairingErrorMsg{Err: err}
		}

		// mDNS may not have given us the hub id
		if hubID == "" {
			status, err := api.GetHubStatus(ctx, host, token)
			if err != nil {
				return PairingErrorMsg{Err: err}
			}
			hubID = status.ID
		}

		hub := api.NewDirigeraHub(host, token, hubID)

		return PairingSuccessMsg{
			Hub:   hub,
			Token: token,
		}
	}
}

// Messages

type HubsDiscoveredMsg struct {
	Hubs []api.DiscoveredHub
}

type DiscoveryErrorMsg struct {
	Err error
}

type PairingSuccessMsg struct {
	Hub   *api.DirigeraHub
	Token string
}

type PairingErrorMsg struct {
	Err error
}
