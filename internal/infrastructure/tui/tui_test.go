package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
	"github.com/felixgeelhaar/studiorate/pkg/domain/social"
)

type recordingSubmitter struct {
	mu    sync.Mutex
	calls []*rating.Submission
	err   error
}

func (s *recordingSubmitter) Submit(_ context.Context, sub *rating.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sub)
	return s.err
}

func (s *recordingSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain executes cmd and any batched children, returning their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findResult(msgs []tea.Msg) (submitResultMsg, bool) {
	for _, m := range msgs {
		if r, ok := m.(submitResultMsg); ok {
			return r, true
		}
	}
	return submitResultMsg{}, false
}

func newPage(t *testing.T, sub rating.Submitter) *PageModel {
	t.Helper()
	p, err := NewPageModel(context.Background(), config.Default(), sub, nil)
	require.NoError(t, err)
	return p
}

// rateAll answers every question with score via number keys.
func rateAll(p *PageModel, score string) {
	for i := 0; i < rating.QuestionCount; i++ {
		p.Update(runes(score))
		p.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
}

func TestPage_OpenRateSubmit(t *testing.T) {
	sub := &recordingSubmitter{}
	p := newPage(t, sub)

	p.Update(runes("r"))
	require.True(t, p.Handle().IsOpen())
	assert.Equal(t, rating.StateIdle, p.Dialog().Dialog().State())

	rateAll(p, "4")
	assert.True(t, p.Dialog().Dialog().Ratings().IsComplete())

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, p.Dialog().Dialog().IsSubmitting())
	assert.Contains(t, ansi.Strip(p.View()), "שולח...")

	res, ok := findResult(drain(cmd))
	require.True(t, ok)
	p.Update(res)

	assert.Equal(t, 1, sub.count())
	assert.False(t, p.Handle().IsOpen())
	avg, ok := p.LastAverage()
	require.True(t, ok)
	assert.Equal(t, "4.0", avg.String())
	assert.Contains(t, ansi.Strip(p.View()), "4.0")
}

func TestPage_IncompleteShowsNotice(t *testing.T) {
	sub := &recordingSubmitter{}
	p := newPage(t, sub)
	p.Update(runes("r"))

	p.Update(runes("5"))
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Zero(t, sub.count())
	require.NotNil(t, p.Dialog().Notice())
	assert.Equal(t, rating.NoticeIncomplete, p.Dialog().Notice().Kind)
	assert.Contains(t, ansi.Strip(p.View()), "נא לדרג את כל 5 השאלות")
	assert.Equal(t, rating.StateIdle, p.Dialog().Dialog().State())
}

func TestPage_FailureKeepsInput(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("network down")}
	p := newPage(t, sub)
	p.Update(runes("r"))
	rateAll(p, "2")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res, ok := findResult(drain(cmd))
	require.True(t, ok)
	p.Update(res)

	assert.True(t, p.Handle().IsOpen())
	assert.Equal(t, rating.StateIdle, p.Dialog().Dialog().State())
	assert.Equal(t, []int{2, 2, 2, 2, 2}, p.Dialog().Dialog().Ratings().Values())
	require.NotNil(t, p.Dialog().Notice())
	assert.Equal(t, rating.NoticeFailed, p.Dialog().Notice().Kind)
	_, ok = p.LastAverage()
	assert.False(t, ok)
}

func TestPage_EscapeClosesWithoutSubmitting(t *testing.T) {
	sub := &recordingSubmitter{}
	p := newPage(t, sub)
	p.Update(runes("r"))
	rateAll(p, "3")

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, p.Handle().IsOpen())
	assert.Zero(t, sub.count())
	_, ok := p.LastAverage()
	assert.False(t, ok)

	p.Update(runes("r"))
	assert.Zero(t, p.Dialog().Dialog().Ratings().Answered())
}

func TestPage_EscapeIgnoredWhileSubmitting(t *testing.T) {
	p := newPage(t, &recordingSubmitter{})
	p.Update(runes("r"))
	rateAll(p, "5")
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, p.Handle().IsOpen())
	assert.True(t, p.Dialog().Dialog().IsSubmitting())
}

func TestDialog_ArrowsAndSpaceSelectStar(t *testing.T) {
	p := newPage(t, &recordingSubmitter{})
	p.Update(runes("r"))

	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	p.Update(tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, 3, p.Dialog().Dialog().Ratings().Get(rating.Q1))
}

func TestPage_LinkFocusAndOpen(t *testing.T) {
	var opened []string
	orig := openBrowser
	openBrowser = func(u string) error {
		opened = append(opened, u)
		return nil
	}
	defer func() { openBrowser = orig }()

	p := newPage(t, &recordingSubmitter{})
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, opened, 1)
	assert.Equal(t, config.Default().Social[1].Href, opened[0])

	p.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	p.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(config.Default().Social)-1, p.focus)
}

func TestPage_QuitWhenClosed(t *testing.T) {
	p := newPage(t, &recordingSubmitter{})
	_, cmd := p.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderSocialButton_Hyperlink(t *testing.T) {
	b := social.Button{Href: "https://example.com/studio", Label: "Site", Icon: "*", Color: "#000000"}
	out := RenderSocialButton(b, false)

	assert.True(t, strings.HasPrefix(out, ansi.SetHyperlink(b.Href)))
	assert.True(t, strings.HasSuffix(out, ansi.ResetHyperlink()))
	assert.Contains(t, ansi.Strip(out), "* Site")
}

func TestIsValidBrowserURL(t *testing.T) {
	cases := map[string]bool{
		"https://wa.me/972500000000": true,
		"http://example.com":         true,
		"file:///etc/passwd":         false,
		"javascript:alert(1)":        false,
		"https://x.com/a;rm -rf":     false,
		"https://x.com/\nfoo":        false,
		"":                           false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, isValidBrowserURL(raw), raw)
	}
}
