package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mlapinski/openmemo/internal/domain"
)

const (
	sidebarWidth  = 32
	sidebarHeight = 10
)

// sidebarItem is one entry in the upcoming-reviews sidebar.
type sidebarItem struct {
	question string
}

func (i sidebarItem) Title() string       { return i.question }
func (i sidebarItem) Description() string { return "" }
func (i sidebarItem) FilterValue() string { return i.question }

var (
	reviewQuestionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ebdbb2"))
	reviewAnswerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	reviewHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	reviewErrStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
)

func newReviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Run the interactive review loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("review requires an interactive terminal")
			}

			m := newReviewModel(cmd.Context(), app)
			p := tea.NewProgram(m)
			finalModel, err := p.Run()
			if err != nil {
				return fmt.Errorf("running review: %w", err)
			}
			if rm, ok := finalModel.(reviewModel); ok && rm.err != nil {
				return rm.err
			}
			return nil
		},
	}
}

// cardsLoadedMsg carries the result of fetching today's due cards.
type cardsLoadedMsg struct {
	cards []*domain.Card
	err   error
}

// gradeSubmittedMsg signals that a grade was recorded for the current card.
type gradeSubmittedMsg struct {
	err error
}

// reviewModel drives one interactive review session: present a due card's
// question, reveal its answer on request, collect a grade, and advance.
type reviewModel struct {
	ctx context.Context
	app *App

	cards    []*domain.Card
	idx      int
	revealed bool
	graded   int

	sidebar list.Model

	err      error
	quitting bool
}

func newReviewModel(ctx context.Context, app *App) reviewModel {
	delegate := list.NewDefaultDelegate()
	sidebar := list.New(nil, delegate, sidebarWidth, sidebarHeight)
	sidebar.Title = "up next"
	sidebar.SetShowHelp(false)
	sidebar.SetShowStatusBar(false)
	return reviewModel{ctx: ctx, app: app, sidebar: sidebar}
}

// refreshSidebar rebuilds the sidebar's item list from every card after the
// one currently being reviewed.
func (m *reviewModel) refreshSidebar() {
	upcoming := m.cards[m.idx+1:]
	items := make([]list.Item, 0, len(upcoming))
	for _, c := range upcoming {
		items = append(items, sidebarItem{question: c.Question})
	}
	m.sidebar.SetItems(items)
}

func (m reviewModel) Init() tea.Cmd {
	return m.loadDueCards
}

func (m reviewModel) loadDueCards() tea.Msg {
	cards, err := m.app.Review.DueCards(m.ctx, nil)
	return cardsLoadedMsg{cards: cards, err: err}
}

func (m reviewModel) submitGrade(cardID string, grade domain.Grade) tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.Review.SubmitGrade(m.ctx, cardID, grade, nil)
		return gradeSubmittedMsg{err: err}
	}
}

func (m reviewModel) currentCard() *domain.Card {
	if m.idx >= len(m.cards) {
		return nil
	}
	return m.cards[m.idx]
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading due cards: %w", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
		m.cards = msg.cards
		m.idx = 0
		if len(m.cards) == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		m.refreshSidebar()
		return m, nil

	case gradeSubmittedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("submitting grade: %w", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
		m.graded++
		m.idx++
		m.revealed = false
		if m.idx >= len(m.cards) {
			// Re-query: cards graded 0-2 are now in final drill and due again.
			return m, m.loadDueCards
		}
		m.refreshSidebar()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

		if m.currentCard() == nil {
			return m, nil
		}

		if !m.revealed {
			switch msg.String() {
			case "enter", " ":
				m.revealed = true
			}
			return m, nil
		}

		if grade, ok := parseGradeKey(msg.String()); ok {
			card := m.currentCard()
			return m, m.submitGrade(card.ID, grade)
		}
		return m, nil
	}

	return m, nil
}

func (m reviewModel) View() string {
	if m.err != nil {
		return reviewErrStyle.Render(m.err.Error()) + "\n"
	}

	if m.quitting {
		return fmt.Sprintf("reviewed %d card(s)\n", m.graded)
	}

	card := m.currentCard()
	if card == nil {
		return "loading...\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "(%d/%d)\n\n", m.idx+1, len(m.cards))
	b.WriteString(reviewQuestionStyle.Render(card.Question))
	b.WriteString("\n\n")

	if !m.revealed {
		b.WriteString(reviewHintStyle.Render("space/enter to reveal the answer"))
	} else {
		b.WriteString(reviewAnswerStyle.Render(card.Answer))
		b.WriteString("\n\n")
		b.WriteString(reviewHintStyle.Render("grade 0-5 (0 not recognized, 5 instant recall), q to quit"))
	}
	b.WriteString("\n")

	main := lipgloss.NewStyle().Width(60).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, main, m.sidebar.View())
}

func parseGradeKey(s string) (domain.Grade, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 5 {
		return 0, false
	}
	return domain.Grade(n), true
}
