// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live status dashboard",
	Long: `A terminal dashboard showing the clock's state and all alarms, refreshed
once a second and immediately on the device's state change notification.

Keys:
  l  toggle the lamp
  i  toggle the inhibit flag
  s  press the stop button
  r  re-read the alarms
  q  quit

Supports both serial and WebSocket connections.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// deviceRequest is one unit of work for the device goroutine. The serial
// session cannot be shared, so every tea.Cmd goes through this queue.
type deviceRequest struct {
	fn    func(*alarmclock.Client) tea.Msg
	reply chan tea.Msg
}

type deviceWorker struct {
	requests chan deviceRequest
}

func newDeviceWorker(client *alarmclock.Client) *deviceWorker {
	w := &deviceWorker{requests: make(chan deviceRequest)}
	go func() {
		for req := range w.requests {
			req.reply <- req.fn(client)
		}
	}()
	return w
}

// do returns a tea.Cmd that runs fn on the device goroutine.
func (w *deviceWorker) do(fn func(*alarmclock.Client) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		req := deviceRequest{fn: fn, reply: make(chan tea.Msg, 1)}
		w.requests <- req
		return <-req.reply
	}
}

// Messages
type tickMsg time.Time
type statusMsg struct {
	status  alarmclock.ClockStatus
	changed bool
	err     error
}
type alarmsMsg struct {
	alarms []alarm
	err    error
}
type actionMsg struct {
	err error
}

type alarm struct {
	index int
	alarmclock.Alarm
}

// TUI model
type dashboardModel struct {
	worker   *deviceWorker
	connInfo string
	build    string

	status    alarmclock.ClockStatus
	haveAlarm bool
	alarms    table.Model
	lastErr   error
	width     int
	height    int
	quitting  bool
}

func initialDashboardModel(worker *deviceWorker, connInfo, build string) dashboardModel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "State", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Days", Width: 34},
		{Title: "Snooze", Width: 8},
		{Title: "Signal", Width: 14},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("12"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return dashboardModel{
		worker:   worker,
		connInfo: connInfo,
		build:    build,
		alarms:   t,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.fetchStatus(), m.fetchAlarms(), dashboardTick())
}

func dashboardTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m dashboardModel) fetchStatus() tea.Cmd {
	return m.worker.do(func(c *alarmclock.Client) tea.Msg {
		changed, err := c.StateChanged()
		if err != nil {
			return statusMsg{err: err}
		}
		status, err := c.Status()
		return statusMsg{status: status, changed: changed, err: err}
	})
}

func (m dashboardModel) fetchAlarms() tea.Cmd {
	return m.worker.do(func(c *alarmclock.Client) tea.Msg {
		all, err := c.ReadAlarms()
		if err != nil {
			return alarmsMsg{err: err}
		}
		alarms := make([]alarm, len(all))
		for i, a := range all {
			alarms[i] = alarm{index: i, Alarm: a}
		}
		return alarmsMsg{alarms: alarms}
	})
}

func (m dashboardModel) action(fn func(*alarmclock.Client) error) tea.Cmd {
	return m.worker.do(func(c *alarmclock.Client) tea.Msg {
		return actionMsg{err: fn(c)}
	})
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "l":
			lamp := m.status.Lamp
			return m, m.action(func(c *alarmclock.Client) error {
				return c.SetLamp(!lamp)
			})
		case "i":
			inhibit := m.status.Inhibit
			return m, m.action(func(c *alarmclock.Client) error {
				return c.SetInhibit(!inhibit)
			})
		case "s":
			return m, m.action((*alarmclock.Client).PressStop)
		case "r":
			return m, m.fetchAlarms()
		}

	case tickMsg:
		return m, tea.Batch(m.fetchStatus(), dashboardTick())

	case statusMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.status = msg.status
		if msg.status.AlarmsChanged || msg.changed {
			return m, m.fetchAlarms()
		}
		return m, nil

	case alarmsMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.haveAlarm = true
		rows := make([]table.Row, len(msg.alarms))
		for i, a := range msg.alarms {
			rows[i] = table.Row{
				fmt.Sprintf("%d", a.index),
				a.Enabled.String(),
				a.Time.String(),
				a.Days.String(),
				fmt.Sprintf("%dm x%d", a.Snooze.Time, a.Snooze.Count),
				fmt.Sprintf("a%d l%d b%d", a.Signalization.Ambient,
					boolDigit(a.Signalization.Lamp), a.Signalization.Buzzer),
			}
		}
		m.alarms.SetRows(rows)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		// Pick up the new state right away
		return m, m.fetchStatus()
	}

	var cmd tea.Cmd
	m.alarms, cmd = m.alarms.Update(msg)
	return m, cmd
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	header := titleStyle.Render("Chime Dashboard") + "  " +
		labelStyle.Render(m.connInfo+"  firmware built "+m.build)

	statusLine := fmt.Sprintf("%s %s   %s %s   %s %d (target %d)   %s %s",
		labelStyle.Render("lamp:"), valueStyle.Render(onOffStr(m.status.Lamp)),
		labelStyle.Render("inhibit:"), valueStyle.Render(onOffStr(m.status.Inhibit)),
		labelStyle.Render("ambient:"), m.status.Ambient.Current, m.status.Ambient.Target,
		labelStyle.Render("backlight:"), valueStyle.Render(m.status.Backlight.String()),
	)
	ringing := fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("ringing:"), idList(m.status.ActiveAlarms),
		labelStyle.Render("ambient from:"), idList(m.status.AmbientAlarms),
	)

	alarmsView := "reading alarms..."
	if m.haveAlarm {
		alarmsView = m.alarms.View()
	}

	footer := labelStyle.Render("l lamp  i inhibit  s stop  r reload  q quit")
	if m.lastErr != nil {
		footer = errorStyle.Render(fmt.Sprintf("error: %v", m.lastErr))
	}

	return header + "\n\n" +
		boxStyle.Render(statusLine+"\n"+ringing) + "\n" +
		boxStyle.Render(alarmsView) + "\n" +
		footer + "\n"
}

func boolDigit(v bool) int {
	if v {
		return 1
	}
	return 0
}

func runDashboard(cmd *cobra.Command, args []string) error {
	client, connInfo, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	worker := newDeviceWorker(client)
	m := initialDashboardModel(worker, connInfo, client.BuildTime())

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
