// Package tui provides the interactive Bubble Tea dashboard for pawtally.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pawtally/internal/config"
	"pawtally/internal/model"
	"pawtally/internal/pipeline"
	"pawtally/internal/store"
	"pawtally/internal/tui/components"
	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the collections finish loading from the store.
type DataLoadedMsg struct {
	Pets      []model.Pet
	Expenses  []model.Expense
	Budgets   []model.Budget
	Recurring []model.RecurringExpense
	Err       error
	LoadTime  time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	pets      []model.Pet
	expenses  []model.Expense
	budgets   []model.Budget
	recurring []model.RecurringExpense
	loaded    bool
	loadErr   error
	loadTime  time.Duration

	// Pre-computed for the current pet filter
	month     model.Snapshot
	streak    model.StreakInfo
	level     model.LevelInfo
	petTotals []model.PetTotal
	days      []model.DayTotal
	visible   []model.Expense // pet-filtered expenses, most recent first

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	expCursor int

	spinner spinner.Model

	// Load context
	dbPath   string
	petID    string
	currency config.Currency
}

const (
	minTerminalWidth = 70
	compactWidth     = 110
	maxContentWidth  = 140

	chartDays        = 30
	minContentHeight = 5
)

// NewApp creates a new TUI app model. petID filters every tab to one
// pet; "" shows all pets.
func NewApp(dbPath, petID string, currency config.Currency) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		dbPath:   dbPath,
		petID:    petID,
		currency: currency,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath),
		a.spinner.Tick,
	)
}

// loadDataCmd reads all collections from the store in a background command.
func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		s, err := store.Open(dbPath)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		defer s.Close()

		tr, err := store.NewTracker(s)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		return DataLoadedMsg{
			Pets:      tr.Pets(),
			Expenses:  tr.Expenses(),
			Budgets:   tr.Budgets(),
			Recurring: tr.Recurring(),
			LoadTime:  time.Since(start),
		}
	}
}

func (a *App) recompute() {
	now := time.Now()
	monthStart, monthEnd := pipeline.MonthRange(now)

	a.month = pipeline.Aggregate(a.expenses, a.budgets, pipeline.Options{
		PetID: a.petID,
		Since: monthStart,
		Until: monthEnd,
	})

	// Streak, XP, and level always cover the whole household.
	a.streak = pipeline.ComputeStreak(a.expenses, now)
	xp := pipeline.ComputeTotalXP(a.pets, a.expenses, a.budgets, a.streak, now)
	a.level = pipeline.ResolveLevel(xp)

	petFiltered := pipeline.FilterByPet(a.expenses, a.petID)
	a.petTotals = pipeline.AggregatePets(petFiltered, a.pets)
	a.days = pipeline.AggregateDays(petFiltered, now.AddDate(0, 0, -(chartDays-1)), now)

	a.visible = make([]model.Expense, len(petFiltered))
	copy(a.visible, petFiltered)
	sort.Slice(a.visible, func(i, j int) bool {
		return a.visible[i].Date.After(a.visible[j].Date)
	})

	if a.expCursor >= len(a.visible) {
		a.expCursor = len(a.visible) - 1
	}
	if a.expCursor < 0 {
		a.expCursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == 2 && a.expCursor > 0 {
				a.expCursor--
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == 2 && a.expCursor < len(a.visible)-1 {
				a.expCursor++
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		if key == "r" {
			return a, loadDataCmd(a.dbPath)
		}

		// Expense list navigation
		if a.activeTab == 2 {
			switch key {
			case "j", "down":
				if a.expCursor < len(a.visible)-1 {
					a.expCursor++
				}
				return a, nil
			case "k", "up":
				if a.expCursor > 0 {
					a.expCursor--
				}
				return a, nil
			case "g":
				a.expCursor = 0
				return a, nil
			case "G":
				a.expCursor = len(a.visible) - 1
				if a.expCursor < 0 {
					a.expCursor = 0
				}
				return a, nil
			}
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		if msg.Err == nil {
			a.pets = msg.Pets
			a.expenses = msg.Expenses
			a.budgets = msg.Budgets
			a.recurring = msg.Recurring
			a.recompute()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return a.viewLoadError()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  pawtally needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("🐾 pawtally"))
	b.WriteString(subtitleStyle.Render(" · Pet Expense Tracker"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading collections..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 3)

	errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := errStyle.Render("Could not load data") + "\n\n" +
		truncStr(a.loadErr.Error(), a.width-10) + "\n\n" +
		dimStyle.Render("[r]etry  [q]uit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("🐾 Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o b e p", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move through expenses"},
		{"g G", "First / Last expense"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"r", "Reload data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar plus a filter pill line
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pillAccentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	scope := "all pets"
	if a.petID != "" {
		scope = a.petName(a.petID)
	}
	filterStr := pillStyle.Render(" ") +
		pillAccentStyle.Render(scope) +
		pillStyle.Render(" │ ") +
		pillAccentStyle.Render(time.Now().Format("January 2006"))

	header := components.RenderTabBar(a.activeTab, w) + "\n" + filterStr

	right := fmt.Sprintf("%d expenses · %.0fms", len(a.visible), float64(a.loadTime.Microseconds())/1000)
	statusBar := components.RenderStatusBar(w, right)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderBudgetsTab(cw)
	case 2:
		content = a.renderExpensesTab(cw, contentH)
	case 3:
		content = a.renderPetsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func (a App) petName(id string) string {
	for _, p := range a.pets {
		if p.ID == id {
			return p.Name
		}
	}
	return "Unknown"
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space before the first tab
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
