package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "swordgame/internal/cli"
	"swordgame/internal/db"
	"swordgame/internal/game"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v <= min {
			printWarn(fmt.Sprintf("Value must be > %g", min))
			continue
		}
		return v, nil
	}
}

func renderTrades(trades []db.Trade) {
	accent.Println("\n== LEVERAGE TRADES ==")
	if len(trades) == 0 {
		printInfo("No trades recorded yet.")
		return
	}
	fmt.Printf("%-38s %-12s %-10s %8s %10s %-12s %s\n", "ID", "COMPANY", "TYPE", "LEV", "QTY", "USER", "CREATED")
	for _, t := range trades {
		created := time.UnixMilli(t.CreatedAt).Format("2006-01-02 15:04:05")
		fmt.Printf("%-38s %-12s %-10s %8g %10g %-12s %s\n",
			t.ID, t.Company, t.Type, t.Leverage, t.Quantity, t.User, created)
	}
}

func renderClubRankings(rankings []game.ClubRanking) {
	accent.Println("\n== CLUB RANKINGS ==")
	if len(rankings) == 0 {
		printInfo("No clubs ranked yet.")
		return
	}
	fmt.Printf("%4s %-20s %14s\n", "RANK", "CLUB", "TOTAL ASSETS")
	for i, r := range rankings {
		fmt.Printf("%4d %-20s %14g\n", i+1, r.ClubName, r.TotalAssets)
	}
}

func renderUserRankings(rankings []game.UserRanking) {
	accent.Println("\n== USER RANKINGS ==")
	if len(rankings) == 0 {
		printInfo("No users ranked yet.")
		return
	}
	fmt.Printf("%4s %-20s %14s\n", "RANK", "USER", "TOTAL ASSETS")
	for i, r := range rankings {
		fmt.Printf("%4d %-20s %14g\n", i+1, r.Username, r.TotalAssets)
	}
}

// Live leaderboard view.

const watchRefreshEvery = 5 * time.Second

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	watchHelpStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	watchErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	watchBoxStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8"))
)

type rankingsMsg struct {
	clubs []game.ClubRanking
	users []game.UserRanking
}

type watchErrMsg struct{ err error }

type watchTickMsg time.Time

type watchModel struct {
	client    *cl.Client
	tbl       table.Model
	clubs     []game.ClubRanking
	users     []game.UserRanking
	showUsers bool
	err       error
}

func runRankingsWatch(client *cl.Client) error {
	tbl := table.New(
		table.WithColumns(watchColumns()),
		table.WithHeight(12),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	m := watchModel{client: client, tbl: tbl}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func watchColumns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Total Assets", Width: 14},
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), watchTick())
}

func watchTick() tea.Cmd {
	return tea.Tick(watchRefreshEvery, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) fetch() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		clubs, err := client.ClubRankings(ctx)
		if err != nil {
			return watchErrMsg{err: err}
		}
		users, err := client.UserRankings(ctx)
		if err != nil {
			return watchErrMsg{err: err}
		}
		return rankingsMsg{clubs: clubs, users: users}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "u", "c":
			m.showUsers = !m.showUsers
			m.refreshRows()
			return m, nil
		case "r":
			return m, m.fetch()
		}
	case rankingsMsg:
		m.clubs = msg.clubs
		m.users = msg.users
		m.err = nil
		m.refreshRows()
		return m, nil
	case watchErrMsg:
		m.err = msg.err
		return m, nil
	case watchTickMsg:
		return m, tea.Batch(m.fetch(), watchTick())
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m *watchModel) refreshRows() {
	var rows []table.Row
	if m.showUsers {
		for i, r := range m.users {
			rows = append(rows, table.Row{strconv.Itoa(i + 1), r.Username, fmt.Sprintf("%g", r.TotalAssets)})
		}
	} else {
		for i, r := range m.clubs {
			rows = append(rows, table.Row{strconv.Itoa(i + 1), r.ClubName, fmt.Sprintf("%g", r.TotalAssets)})
		}
	}
	m.tbl.SetRows(rows)
}

func (m watchModel) View() string {
	title := "Club Rankings"
	if m.showUsers {
		title = "User Rankings"
	}
	out := watchTitleStyle.Render(title) + "\n"
	out += watchBoxStyle.Render(m.tbl.View()) + "\n"
	if m.err != nil {
		out += watchErrStyle.Render("error: "+m.err.Error()) + "\n"
	}
	out += watchHelpStyle.Render("tab: clubs/users • r: refresh • q: quit")
	return out
}
