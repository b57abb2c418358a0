package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LanS10t/geminiMiner/internal/appraisal"
	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// MsgAppraised carries a finished appraisal back into the update loop.
type MsgAppraised struct {
	Appraisal appraisal.Appraisal
	Elapsed   time.Duration
}

// AppraiseFunc is satisfied by (*appraisal.Dispatcher).AppraiseDetailed.
type AppraiseFunc func(ctx context.Context, inv mineral.Inventory, useDelegated bool) appraisal.Appraisal

// AppraisalModel shows a spinner while the appraiser thinks, then the
// verdict.
type AppraisalModel struct {
	Keys    KeyMap
	Spinner spinner.Model
	Summary string

	Done   bool
	Result MsgAppraised

	appraise     AppraiseFunc
	inv          mineral.Inventory
	useDelegated bool
	ctx          context.Context
}

// NewAppraisalModel prepares a screen that appraises inv once on Init.
func NewAppraisalModel(ctx context.Context, fn AppraiseFunc, inv mineral.Inventory, useDelegated bool) AppraisalModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return AppraisalModel{
		Keys:         DefaultKeyMap(),
		Spinner:      s,
		Summary:      appraisal.SummarizeInventory(inv),
		appraise:     fn,
		inv:          inv.Clone(),
		useDelegated: useDelegated,
		ctx:          ctx,
	}
}

func (m AppraisalModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.run())
}

func (m AppraisalModel) run() tea.Cmd {
	fn, ctx, inv, delegated := m.appraise, m.ctx, m.inv, m.useDelegated
	return func() tea.Msg {
		start := time.Now()
		a := fn(ctx, inv, delegated)
		return MsgAppraised{Appraisal: a, Elapsed: time.Since(start)}
	}
}

func (m AppraisalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgAppraised:
		m.Done = true
		m.Result = msg
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) || (m.Done && key.Matches(msg, m.Keys.Back)) {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.Done {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppraisalModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Assay Office"))
	b.WriteString("\n\n")

	summary := m.Summary
	if summary == "" {
		summary = "(empty sack)"
	}
	b.WriteString(styleRowNormal.Render("You hand over: "+summary) + "\n\n")

	if !m.Done {
		b.WriteString(fmt.Sprintf("%s The appraiser squints at your haul...", m.Spinner.View()))
		b.WriteString("\n\n" + helpLine(m.Keys.Quit))
		return styleBox.Render(b.String())
	}

	b.WriteString(styleVerdict.Render("“"+m.Result.Appraisal.Text+"”") + "\n")
	b.WriteString(styleHint.Render(fmt.Sprintf("%s · %.1fs", m.Result.Appraisal.Path, m.Result.Elapsed.Seconds())))
	b.WriteString("\n\n" + helpLine(m.Keys.Back, m.Keys.Quit))
	return styleBox.Render(b.String())
}
