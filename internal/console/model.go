package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yuchengtw/duty-roster-bot/internal/domain"
	"github.com/yuchengtw/duty-roster-bot/internal/rotation"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

type logLevel int

const (
	logInfo logLevel = iota
	logOK
	logError
)

type logLine struct {
	level logLevel
	text  string
}

// sendResultMsg carries the outcome of a remote trigger back into Update.
type sendResultMsg struct {
	resp *TriggerResponse
	err  error
}

// Model is the console's full state: persisted settings plus the live
// session values (preview date, suspend flag, log panel).
type Model struct {
	settings     *Settings
	settingsPath string
	client       *Client
	loc          *time.Location

	previewTime  time.Time
	forceSuspend bool

	confirming bool
	sending    bool
	spinner    spinner.Model

	logs []logLine

	width  int
	height int
}

// New loads the settings file and builds the console model.
func New(settingsPath string) (*Model, error) {
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(settings.RotationTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid rotation timezone %q: %w", settings.RotationTZ, err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = warnStyle

	return &Model{
		settings:     settings,
		settingsPath: settingsPath,
		client:       NewClient(),
		loc:          loc,
		previewTime:  time.Now().In(loc),
		spinner:      sp,
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sendResultMsg:
		m.sending = false
		if msg.err != nil {
			m.log(logError, "✗ Dispatch failed: %v", msg.err)
			m.log(logError, "  Check the endpoint URL, CRON_SECRET, and the server's bot token.")
			return m, nil
		}
		if msg.resp.Duty != "" {
			m.log(logOK, "✓ Announcement sent, on duty: %s", msg.resp.Duty)
		} else {
			m.log(logOK, "✓ Announcement sent")
		}
		m.log(logInfo, "  Server time: %s", msg.resp.Timestamp)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			m.confirming = false
			return m, m.startSend()
		case "n", "N", "esc":
			m.confirming = false
			m.log(logInfo, "Send cancelled")
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left":
		m.previewTime = m.previewTime.AddDate(0, 0, -1)
	case "right":
		m.previewTime = m.previewTime.AddDate(0, 0, 1)
	case "up":
		m.previewTime = m.previewTime.AddDate(0, 0, -7)
	case "down":
		m.previewTime = m.previewTime.AddDate(0, 0, 7)
	case "t":
		m.previewTime = time.Now().In(m.loc)

	case "+", "=":
		m.settings.Offset++
		m.save()
	case "-", "_":
		m.settings.Offset--
		m.save()

	case "s":
		m.forceSuspend = !m.forceSuspend

	case "g":
		if len(m.settings.Groups) > 0 {
			m.settings.GroupIndex = (m.settings.GroupIndex + 1) % len(m.settings.Groups)
			m.save()
		}

	case "m":
		if m.settings.AuthMode == AuthBearer {
			m.settings.AuthMode = AuthManual
		} else {
			m.settings.AuthMode = AuthBearer
		}
		m.save()

	case "enter":
		if !m.sending {
			m.confirming = true
		}
	}

	return m, nil
}

// startSend clears the log panel and fires the remote trigger, logging each
// step as the original console did.
func (m *Model) startSend() tea.Cmd {
	m.logs = nil
	m.sending = true

	params := m.triggerParams()
	m.log(logInfo, "Auth mode: %s", m.settings.AuthMode)

	resolved, err := BuildURL(m.settings.Endpoint, params)
	if err != nil {
		m.sending = false
		m.log(logError, "✗ %v", err)
		return nil
	}
	m.log(logInfo, "Resolved URL: %s", resolved)
	m.log(logInfo, "Calling cron endpoint...")

	endpoint := m.settings.Endpoint
	secret := m.settings.CronSecret
	client := m.client

	send := func() tea.Msg {
		resp, err := client.Trigger(context.Background(), endpoint, secret, params)
		return sendResultMsg{resp: resp, err: err}
	}
	return tea.Batch(send, m.spinner.Tick)
}

func (m *Model) triggerParams() TriggerParams {
	kind := "weekly"
	reason := ""
	if m.forceSuspend {
		kind = "suspend"
		reason = "Suspended by the duty console"
	}
	return TriggerParams{
		Manual:    m.settings.AuthMode == AuthManual,
		Type:      kind,
		Date:      m.previewTime,
		Reason:    reason,
		GroupID:   m.settings.Group().GroupID,
		Shift:     m.settings.Offset,
		StaffList: m.settings.StaffList,
	}
}

// preview recomputes the duty decision for the console's current inputs.
func (m *Model) preview() (rotation.Decision, error) {
	calc := rotation.Calculator{
		Roster:      m.settings.StaffList,
		AnchorDate:  domain.AnchorDate(m.loc),
		AnchorIndex: domain.AnchorIndex,
		Offset:      m.settings.Offset,
	}
	return calc.Decide(m.previewTime, domain.SkipWeeks, m.forceSuspend)
}

func (m *Model) save() {
	if err := m.settings.Save(m.settingsPath); err != nil {
		m.log(logError, "Failed to save settings: %v", err)
	}
}

func (m *Model) log(level logLevel, format string, args ...any) {
	m.logs = append(m.logs, logLine{level: level, text: fmt.Sprintf(format, args...)})
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("⏱  Duty Roster Console"))
	b.WriteString("\n\n")

	b.WriteString(borderStyle.Render(m.previewView()))
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(m.configView()))
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(m.logView()))
	b.WriteString("\n")

	if m.confirming {
		b.WriteString(warnStyle.Render(fmt.Sprintf("Send announcement to %q now? (y/n)", m.settings.Group().Name)))
	} else if m.sending {
		b.WriteString(m.spinner.View() + " sending...")
	} else {
		b.WriteString(labelStyle.Render("←/→ day · ↑/↓ week · t today · +/- offset · s suspend · g group · m auth · enter send · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m *Model) previewView() string {
	var b strings.Builder

	weekday := int(m.previewTime.Weekday())
	if weekday == 0 {
		weekday = domain.Sunday
	}
	b.WriteString(fmt.Sprintf("%s %s (%s)\n",
		labelStyle.Render("Preview date:"),
		valueStyle.Render(m.previewTime.Format("2006-01-02 15:04")),
		domain.WeekdayNames[weekday],
	))

	dec, err := m.preview()
	if err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Cannot compute duty: %v", err)))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Week of:     "),
		dec.WeekStart.Format(domain.DateKeyLayout),
	))

	switch dec.Status {
	case rotation.SystemSuspended:
		b.WriteString(errStyle.Render("Rotation suspended (holiday week, cannot be overridden)"))
	case rotation.ManuallySuspended:
		b.WriteString(warnStyle.Render("Rotation suspended (manual)"))
	default:
		b.WriteString(fmt.Sprintf("%s %s",
			labelStyle.Render("On duty:     "),
			okStyle.Render(dec.Duty),
		))
	}
	return b.String()
}

func (m *Model) configView() string {
	group := m.settings.Group()
	lines := []string{
		fmt.Sprintf("%s %+d", labelStyle.Render("Calibration offset:"), m.settings.Offset),
		fmt.Sprintf("%s %s (%s)", labelStyle.Render("Target group:      "), group.Name, group.GroupID),
		fmt.Sprintf("%s %s", labelStyle.Render("Auth mode:         "), m.settings.AuthMode),
		fmt.Sprintf("%s %s", labelStyle.Render("Endpoint:          "), m.settings.Endpoint),
		fmt.Sprintf("%s %s %s", labelStyle.Render("Weekly trigger:    "),
			domain.WeekdayNames[m.settings.TriggerDay], m.settings.TriggerTime),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) logView() string {
	if len(m.logs) == 0 {
		return labelStyle.Render("(log empty)")
	}

	lines := make([]string, 0, len(m.logs))
	for _, l := range m.logs {
		switch l.level {
		case logOK:
			lines = append(lines, okStyle.Render(l.text))
		case logError:
			lines = append(lines, errStyle.Render(l.text))
		default:
			lines = append(lines, l.text)
		}
	}
	return strings.Join(lines, "\n")
}
