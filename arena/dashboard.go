package arena

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"snakearena/sim"
)

// StatsSource 看板读取的数据源，*Runner 实现它
type StatsSource interface {
	Stats() Stats
	Leaderboard() []sim.Rank
	Updates() <-chan DeathUpdate
}

type model struct {
	src       StatsSource
	stats     Stats
	board     []sim.Rank
	recent    []string
	startTime time.Time
}

// NewDashboard 返回 bubbletea 看板模型
func NewDashboard(src StatsSource) tea.Model {
	return model{src: src, startTime: time.Now()}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForUpdate(updates <-chan DeathUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.src.Updates()), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.stats = m.src.Stats()
		m.board = m.src.Leaderboard()
		return m, tickCmd()
	case DeathUpdate:
		line := fmt.Sprintf("tick %6d  %-8s died  score %5d  length %5.1f", msg.Tick, msg.Name, int(msg.Score), msg.Length)
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > 10 {
			m.recent = m.recent[:10]
		}
		return m, waitForUpdate(m.src.Updates())
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	duration := time.Since(m.startTime)
	ticksPerSec := 0.0
	if duration.Seconds() >= 1 {
		ticksPerSec = float64(m.stats.Ticks) / duration.Seconds()
	}

	fmt.Fprintf(&b, "Ticks:       %d\n", m.stats.Ticks)
	fmt.Fprintf(&b, "Ticks/Sec:   %.1f\n", ticksPerSec)
	fmt.Fprintf(&b, "Bots alive:  %d\n", m.stats.Bots)
	fmt.Fprintf(&b, "Food eaten:  %d\n", m.stats.FoodEaten)
	fmt.Fprintf(&b, "Deaths:      %d (archived %d)\n", m.stats.Deaths, m.stats.Recorded)
	fmt.Fprintf(&b, "Duration:    %s\n\n", duration.Round(time.Second))

	b.WriteString("Leaderboard:\n")
	for i, r := range m.board {
		fmt.Fprintf(&b, "  %d. %-10s %d\n", i+1, r.Name, int(r.Score))
	}

	b.WriteString("\nRecent deaths:\n")
	for _, l := range m.recent {
		b.WriteString("  " + l + "\n")
	}

	b.WriteString("\nPress q to quit.\n")
	return b.String()
}
