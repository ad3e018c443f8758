package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mabhi256/havbench/internal/haversine"
	"github.com/mabhi256/havbench/utils"
)

type genProgressMsg struct{ done, total int }
type genDoneMsg struct {
	corpus haversine.Corpus
	err    error
}

type genProgressModel struct {
	bar      progress.Model
	done     int
	total    int
	finished bool
	result   genDoneMsg
}

func newGenProgressModel(total int) genProgressModel {
	return genProgressModel{
		bar:   progress.New(progress.WithGradient("#228B22", "#4682B4")),
		total: total,
	}
}

func (m genProgressModel) Init() tea.Cmd {
	return nil
}

func (m genProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
	case genProgressMsg:
		m.done, m.total = msg.done, msg.total
		cmd := m.bar.SetPercent(float64(m.done) / float64(m.total))
		return m, cmd
	case genDoneMsg:
		m.finished = true
		m.result = msg
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m genProgressModel) View() string {
	return fmt.Sprintf("%s\n%d / %d pairs\n", m.bar.View(), m.done, m.total)
}

// runGenWithLiveProgress runs GenerateCorpus on a background goroutine
// and drives a Bubble Tea progress bar from its OnProgress callback,
// in the same producer-goroutine/tea.Program-consumer split the
// reference infgo dashboard uses for its stat collection.
func runGenWithLiveProgress(cfg haversine.GenConfig) (haversine.Corpus, error) {
	model := newGenProgressModel(cfg.Count)
	program := tea.NewProgram(model)

	cfg.OnProgress = func(done, total int) {
		program.Send(genProgressMsg{done: done, total: total})
	}

	go func() {
		corpus, err := haversine.GenerateCorpus(cfg)
		program.Send(genDoneMsg{corpus: corpus, err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return haversine.Corpus{}, fmt.Errorf("gen: live progress: %w", err)
	}

	result := final.(genProgressModel).result
	if result.err != nil {
		return haversine.Corpus{}, result.err
	}
	fmt.Println(utils.GoodStyle.Render("✓ generation complete"))
	return result.corpus, nil
}
