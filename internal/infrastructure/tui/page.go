package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/pkg/application"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

// PageModel is the studio page: social links plus a button that opens the
// rating dialog. It owns the dialog handle.
type PageModel struct {
	cfg    *config.WidgetConfig
	handle *application.DialogHandle
	dialog *DialogModel
	logger *zap.Logger

	focus   int
	average *rating.Average
	linkErr error
	help    help.Model
}

// NewPageModel wires a page around submitter. Extra options are passed to
// the underlying RatingDialog.
func NewPageModel(ctx context.Context, cfg *config.WidgetConfig, submitter rating.Submitter, logger *zap.Logger, opts ...application.DialogOption) (*PageModel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PageModel{
		cfg:    cfg,
		handle: application.NewDialogHandle(),
		logger: logger,
		help:   help.New(),
	}
	opts = append(opts, application.WithOnComplete(func(avg rating.Average) {
		p.average = &avg
		p.logger.Info("rating completed", zap.Stringer("average", avg))
	}))
	dialog, err := NewDialogModel(ctx, p.handle, submitter, cfg, opts...)
	if err != nil {
		return nil, err
	}
	p.dialog = dialog
	return p, nil
}

// Handle is the page-owned open/close capability.
func (p *PageModel) Handle() *application.DialogHandle { return p.handle }

// Dialog is the mounted dialog view.
func (p *PageModel) Dialog() *DialogModel { return p.dialog }

// LastAverage is the average of the most recent accepted submission.
func (p *PageModel) LastAverage() (rating.Average, bool) {
	if p.average == nil {
		return 0, false
	}
	return *p.average, true
}

func (p *PageModel) Init() tea.Cmd { return nil }

func (p *PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey || p.dialogActive() {
		_, cmd := p.dialog.Update(msg)
		return p, cmd
	}

	switch {
	case key.Matches(keyMsg, pageKeys.Quit):
		return p, tea.Quit
	case key.Matches(keyMsg, pageKeys.Rate):
		p.dialog.Reset()
		p.handle.Open()
	case key.Matches(keyMsg, pageKeys.Next):
		if n := len(p.cfg.Social); n > 0 {
			p.focus = (p.focus + 1) % n
		}
	case key.Matches(keyMsg, pageKeys.Prev):
		if n := len(p.cfg.Social); n > 0 {
			p.focus = (p.focus + n - 1) % n
		}
	case key.Matches(keyMsg, pageKeys.Open):
		p.openFocused()
	}
	return p, nil
}

func (p *PageModel) dialogActive() bool {
	return p.handle.IsOpen() || p.dialog.Dialog().IsSubmitting()
}

func (p *PageModel) openFocused() {
	if p.focus >= len(p.cfg.Social) {
		return
	}
	b := p.cfg.Social[p.focus]
	p.linkErr = openBrowser(b.Href)
	if p.linkErr != nil {
		p.logger.Warn("open social link failed", zap.String("href", b.Href), zap.Error(p.linkErr))
	}
}

func (p *PageModel) View() string {
	if p.dialogActive() {
		return p.dialog.View()
	}

	sections := []string{titleStyle.Render(p.cfg.StudioName), ""}
	if len(p.cfg.Social) > 0 {
		sections = append(sections, RenderSocialRow(p.cfg.Social, p.focus), "")
	}
	sections = append(sections, primaryButton.Render(p.cfg.Copy.Open))
	if p.average != nil {
		sections = append(sections, "", successStyle.Render(fmt.Sprintf("%s %s", p.cfg.Copy.Thanks, p.average)))
	}
	if p.linkErr != nil {
		sections = append(sections, "", noticeStyle.Render(p.linkErr.Error()))
	}
	sections = append(sections, "", helpStyle.Render(p.help.View(pageKeys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
