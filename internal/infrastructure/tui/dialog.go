package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/pkg/application"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

// submitResultMsg carries the outcome of a request started by the dialog.
type submitResultMsg struct {
	sub *rating.Submission
	err error
}

// DialogModel renders a RatingDialog and turns keys into star clicks,
// submit and close actions.
type DialogModel struct {
	ctx       context.Context
	dialog    *application.RatingDialog
	questions []rating.Question
	copy      config.CopyConfig

	focus   int
	cursor  int
	notice  *rating.Notice
	spinner spinner.Model
	help    help.Model
}

// NewDialogModel mounts a RatingDialog on handle. Notices raised by the
// dialog are shown inline instead of a blocking alert.
func NewDialogModel(ctx context.Context, handle rating.Handle, submitter rating.Submitter, cfg *config.WidgetConfig, opts ...application.DialogOption) (*DialogModel, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &DialogModel{
		ctx:       ctx,
		questions: cfg.QuestionList(),
		copy:      cfg.Copy,
		cursor:    rating.MinScore,
		spinner:   s,
		help:      help.New(),
	}

	opts = append(opts, application.WithNotifier(rating.NotifierFunc(func(n rating.Notice) {
		m.notice = &n
	})))
	d, err := application.NewRatingDialog(handle, submitter, opts...)
	if err != nil {
		return nil, err
	}
	m.dialog = d
	return m, nil
}

// Dialog exposes the controller behind the view.
func (m *DialogModel) Dialog() *application.RatingDialog { return m.dialog }

// Notice returns the notice currently on screen, if any.
func (m *DialogModel) Notice() *rating.Notice { return m.notice }

// Reset clears view-local state. The page calls it when reopening.
func (m *DialogModel) Reset() {
	m.focus = 0
	m.cursor = rating.MinScore
	m.notice = nil
}

func (m *DialogModel) Init() tea.Cmd { return nil }

func (m *DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		if err := m.dialog.FinishSubmit(msg.sub, msg.err); err == nil {
			m.Reset()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.dialog.IsSubmitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.dialog.State() == rating.StateClosed {
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *DialogModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, dialogKeys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, dialogKeys.Close):
		if err := m.dialog.Close(); err == nil {
			m.Reset()
		}
	case key.Matches(msg, dialogKeys.Submit):
		return m.submit()
	case key.Matches(msg, dialogKeys.Up):
		m.focus = (m.focus + len(m.questions) - 1) % len(m.questions)
		m.cursor = m.clampCursor()
	case key.Matches(msg, dialogKeys.Down):
		m.focus = (m.focus + 1) % len(m.questions)
		m.cursor = m.clampCursor()
	case key.Matches(msg, dialogKeys.Left):
		if m.cursor > rating.MinScore {
			m.cursor--
		}
	case key.Matches(msg, dialogKeys.Right):
		if m.cursor < rating.MaxScore {
			m.cursor++
		}
	case key.Matches(msg, dialogKeys.Select):
		m.click(m.cursor)
	case key.Matches(msg, dialogKeys.Stars):
		k := int(msg.String()[0] - '0')
		m.cursor = k
		m.click(k)
	}
	return nil
}

func (m *DialogModel) click(k int) {
	m.dialog.Star(m.questions[m.focus].ID).Click(k)
	if m.notice != nil && m.notice.Kind == rating.NoticeIncomplete && m.dialog.Ratings().IsComplete() {
		m.notice = nil
	}
}

// clampCursor starts the cursor on the focused question's current score.
func (m *DialogModel) clampCursor() int {
	if v := m.dialog.Ratings().Get(m.questions[m.focus].ID); v != rating.Unanswered {
		return v
	}
	return rating.MinScore
}

func (m *DialogModel) submit() tea.Cmd {
	sub, err := m.dialog.BeginSubmit()
	if err != nil {
		return nil
	}
	m.notice = nil
	submitter := m.dialog.Submitter()
	ctx := m.ctx
	send := func() tea.Msg {
		return submitResultMsg{sub: sub, err: submitter.Submit(ctx, sub)}
	}
	return tea.Batch(m.spinner.Tick, send)
}

func (m *DialogModel) View() string {
	if m.dialog.State() == rating.StateClosed {
		return ""
	}
	submitting := m.dialog.IsSubmitting()
	ratings := m.dialog.Ratings()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.copy.Title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.copy.Subtitle))
	b.WriteString("\n\n")

	for i, q := range m.questions {
		style := questionStyle
		if i == m.focus && !submitting {
			style = focusedQuestionStyle
		}
		stars := m.renderStars(ratings.Get(q.ID), i == m.focus && !submitting)
		b.WriteString(style.Render(lipgloss.JoinVertical(lipgloss.Left, q.Prompt, stars)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderActions(submitting))

	if m.notice != nil {
		b.WriteString("\n\n")
		b.WriteString(noticeStyle.Render(m.notice.Message))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(dialogKeys)))
	return dialogStyle.Render(b.String())
}

func (m *DialogModel) renderStars(value int, focused bool) string {
	input := rating.StarRating{Value: value}
	cells := make([]string, 0, rating.MaxScore)
	for _, s := range input.Stars() {
		glyph := "☆"
		style := starEmpty
		if s.Filled {
			glyph = "★"
			style = starFilled
		}
		cell := style.Render(fmt.Sprintf("%s%d", glyph, s.Value))
		if focused && s.Value == m.cursor {
			cell = starCursor.Render(cell)
		}
		cells = append(cells, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *DialogModel) renderActions(submitting bool) string {
	if submitting {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			disabledButton.Render(m.spinner.View()+" "+m.copy.Submitting),
			" ",
			disabledButton.Render(m.copy.Close),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		primaryButton.Render(m.copy.Submit),
		" ",
		secondaryButton.Render(m.copy.Close),
	)
}
