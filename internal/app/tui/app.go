// Package tui is the terminal dashboard over a churn report.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/pkg/tui/components"
	"github.com/emiliopalmerini/churnboard/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/churnboard/internal/ports"
	"github.com/emiliopalmerini/churnboard/internal/util"
)

// Screen identifies the current screen
type Screen int

const (
	ScreenOverview Screen = iota
	ScreenAcceptance
	ScreenRevenue
	ScreenFlows
	ScreenReactivation
)

var screenLabels = []string{"Overview", "Acceptance", "Revenue", "Flows", "Reactivation"}

var flowPartitions = []domain.Partition{domain.PartitionAll, domain.PartitionFlow1, domain.PartitionFlow2}

type reportLoadedMsg struct{ report *domain.Report }

type reportErrorMsg struct{ err error }

// App is the dashboard TUI model.
type App struct {
	gen     ports.ReportGenerator
	report  *domain.Report
	loading bool
	err     error

	screen Screen
	period domain.Granularity
	flow   int

	table  table.Model
	styles *theme.Styles
	width  int
	height int
}

func NewApp(gen ports.ReportGenerator) *App {
	return &App{
		gen:     gen,
		loading: true,
		screen:  ScreenOverview,
		period:  domain.Weekly,
		styles:  theme.Default(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.load()
}

func (a *App) load() tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		r, err := gen.Generate(context.Background())
		if err != nil {
			return reportErrorMsg{fmt.Errorf("load report: %w", err)}
		}
		return reportLoadedMsg{r}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1", "2", "3", "4", "5":
			a.screen = Screen(key[0] - '1')
			a.rebuild()
			return a, nil
		case "tab":
			a.screen = (a.screen + 1) % Screen(len(screenLabels))
			a.rebuild()
			return a, nil
		case "p":
			if a.period == domain.Weekly {
				a.period = domain.Monthly
			} else {
				a.period = domain.Weekly
			}
			a.rebuild()
			return a, nil
		case "f":
			if a.screen == ScreenFlows {
				a.flow = (a.flow + 1) % len(flowPartitions)
				a.rebuild()
			}
			return a, nil
		case "r":
			a.loading = true
			a.err = nil
			return a, a.load()
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.rebuild()
		return a, nil

	case reportLoadedMsg:
		a.loading = false
		a.report = msg.report
		a.rebuild()
		return a, nil

	case reportErrorMsg:
		a.loading = false
		a.err = msg.err
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// rebuild recreates the table for the current screen and period.
func (a *App) rebuild() {
	if a.report == nil || a.screen == ScreenOverview {
		return
	}
	tables := a.report.Tables(a.period)

	var cols []table.Column
	var rows []table.Row
	switch a.screen {
	case ScreenAcceptance:
		cols, rows = acceptanceTable(a.period, tables.Combined)
	case ScreenRevenue:
		cols, rows = revenueTable(a.period, tables.Combined)
	case ScreenFlows:
		buckets, _ := tables.Buckets(flowPartitions[a.flow])
		cols, rows = acceptanceTable(a.period, buckets)
	case ScreenReactivation:
		cols, rows = reactivationTable(a.period, tables.Reactivation)
	}

	a.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(a.height-12, 5)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(theme.Gray400).BorderForeground(theme.Gray700).BorderBottom(true)
	st.Selected = st.Selected.Foreground(theme.White).Background(theme.DeepTeal)
	a.table.SetStyles(st)
}

// View implements tea.Model
func (a *App) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.NewStyle().Bold(true).Foreground(theme.White).Render("CHURNBOARD"),
		"  ",
		a.styles.Muted.Render("Cancel flow analytics"),
	)
	sep := lipgloss.NewStyle().Foreground(theme.Gray700).Render("────────────────────────────────────────────────────────────────")

	return lipgloss.JoinVertical(lipgloss.Left, header, a.renderNav(), sep, "", a.content(), a.help())
}

func (a *App) renderNav() string {
	items := make([]NavItem, len(screenLabels))
	for i, label := range screenLabels {
		items[i] = NavItem{Key: fmt.Sprint(i + 1), Label: label, Active: Screen(i) == a.screen}
	}
	return NewNavBar(items).View()
}

func (a *App) content() string {
	switch {
	case a.loading:
		return a.styles.Muted.Render("Loading report...")
	case a.err != nil:
		return a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err))
	case a.report == nil:
		return ""
	}

	if a.screen == ScreenOverview {
		return a.overview()
	}

	title := screenLabels[a.screen] + " · " + periodTitle(a.period) + "ly"
	if a.screen == ScreenFlows {
		title += " · " + a.flowLabel()
	}
	if len(a.table.Rows()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, a.styles.Title.Render(title), a.styles.Muted.Render("No sessions in this window."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.styles.Title.Render(title), a.table.View())
}

func (a *App) flowLabel() string {
	flows := a.report.Flows
	switch flowPartitions[a.flow] {
	case domain.PartitionFlow1:
		if flows.Flow1 != nil {
			return "Flow 1 (" + flows.Flow1.BlueprintID + ")"
		}
		return "Flow 1"
	case domain.PartitionFlow2:
		if flows.Flow2 != nil {
			return "Flow 2 (" + flows.Flow2.BlueprintID + ")"
		}
		return "Flow 2"
	}
	return "Combined"
}

func (a *App) overview() string {
	t := a.report.Totals
	cards := []components.MetricCard{
		{Title: "Sessions", Value: util.FormatNumber(t.TotalSessions)},
		{Title: "Acceptance", Value: util.FormatPercent(t.OverallAcceptanceRate), Grade: util.AcceptanceGrade(t.OverallAcceptanceRate)},
		{Title: "Cancellation", Value: util.FormatPercent(t.OverallCancellationRate), Grade: util.CancellationGrade(t.OverallCancellationRate)},
		{Title: "Revenue saved", Value: util.FormatMoney(t.TotalRevenueSaved), Grade: "good"},
		{Title: "Revenue lost", Value: util.FormatMoney(t.TotalRevenueLost), Grade: "low"},
		{Title: "Reactivation", Value: util.FormatPercent(t.OverallReactivationRate), Grade: util.ReactivationGrade(t.OverallReactivationRate)},
	}

	buckets := a.report.Tables(a.period).Combined
	rates := make([]float64, 0, len(buckets))
	for i := len(buckets) - 1; i >= 0; i-- {
		rates = append(rates, buckets[i].AcceptanceRate)
	}
	trend := a.styles.Muted.Render(periodTitle(a.period)+"ly acceptance  ") + components.Sparkline(rates)

	lines := []string{components.RenderCards(cards, a.width), "", trend}
	if t.ExcludedSessions > 0 {
		lines = append(lines, a.styles.Muted.Render(fmt.Sprintf("%d sessions without a valid date are left out of period tables", t.ExcludedSessions)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) help() string {
	bindings := []components.KeyBinding{
		{Key: "1-5", Desc: "screen"},
		{Key: "p", Desc: "week/month"},
	}
	if a.screen == ScreenFlows {
		bindings = append(bindings, components.KeyBinding{Key: "f", Desc: "flow"})
	}
	bindings = append(bindings,
		components.KeyBinding{Key: "r", Desc: "refresh"},
		components.KeyBinding{Key: "q", Desc: "quit"},
	)
	return components.NewHelpBar(bindings...).View()
}
