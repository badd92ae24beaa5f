package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/felixgeelhaar/studiorate/pkg/application"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

// fakeSubmitter records submissions and answers with err.
type fakeSubmitter struct {
	mu    sync.Mutex
	calls []*rating.Submission
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, sub *rating.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sub)
	return f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type harness struct {
	handle    *application.DialogHandle
	submitter *fakeSubmitter
	dialog    *application.RatingDialog
	notices   []rating.Notice
	completed []rating.Average
}

func newHarness(t *testing.T, opts ...application.DialogOption) *harness {
	t.Helper()
	h := &harness{
		handle:    application.NewDialogHandle(),
		submitter: &fakeSubmitter{},
	}
	base := []application.DialogOption{
		application.WithNotifier(rating.NotifierFunc(func(n rating.Notice) { h.notices = append(h.notices, n) })),
		application.WithOnComplete(func(avg rating.Average) {
			assert.False(t, h.handle.IsOpen(), "dialog must be closed before completion is reported")
			h.completed = append(h.completed, avg)
		}),
		application.WithClock(func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }),
	}
	d, err := application.NewRatingDialog(h.handle, h.submitter, append(base, opts...)...)
	require.NoError(t, err)
	h.dialog = d
	h.handle.Open()
	return h
}

func (h *harness) rateAll(t *testing.T, scores ...int) {
	t.Helper()
	for i, s := range scores {
		require.NoError(t, h.dialog.Rate(rating.QuestionIDs[i], s))
	}
}

func TestRatingDialog_StartsClosedUntilHandleOpens(t *testing.T) {
	handle := application.NewDialogHandle()
	d, err := application.NewRatingDialog(handle, &fakeSubmitter{})
	require.NoError(t, err)

	assert.Equal(t, rating.StateClosed, d.State())
	assert.ErrorIs(t, d.Rate(rating.Q1, 3), rating.ErrDialogClosed)

	handle.Open()
	assert.Equal(t, rating.StateIdle, d.State())
	assert.NoError(t, d.Rate(rating.Q1, 3))
}

func TestRatingDialog_IncompleteSubmitNeverCallsEndpoint(t *testing.T) {
	partials := [][]int{
		{0, 0, 0, 0, 0},
		{5, 5, 5, 5, 0},
		{0, 1, 2, 3, 4},
		{3, 0, 3, 0, 3},
	}

	for _, scores := range partials {
		h := newHarness(t)
		h.rateAll(t, scores...)

		err := h.dialog.Submit(context.Background())

		var vErr *rating.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.ErrorIs(t, err, rating.ErrIncomplete)
		assert.Equal(t, 0, h.submitter.count())
		assert.Equal(t, rating.StateIdle, h.dialog.State())
		assert.True(t, h.handle.IsOpen())
		assert.Empty(t, h.completed)
		require.Len(t, h.notices, 1)
		assert.Equal(t, rating.NoticeIncomplete, h.notices[0].Kind)
		assert.Equal(t, application.DefaultCopy.Incomplete, h.notices[0].Message)
		assert.Equal(t, scores, h.dialog.Ratings().Values(), "input survives a rejected submit")
	}
}

func TestRatingDialog_SuccessClosesAndReportsAverageOnce(t *testing.T) {
	tests := []struct {
		scores []int
		want   float64
	}{
		{[]int{5, 5, 5, 5, 5}, 5.0},
		{[]int{1, 2, 3, 4, 5}, 3.0},
		{[]int{4, 4, 5, 5, 5}, 4.6},
	}

	for _, tt := range tests {
		h := newHarness(t, application.WithStudioName("Studio X"), application.WithLocale("en-GB"))
		h.rateAll(t, tt.scores...)

		require.NoError(t, h.dialog.Submit(context.Background()))

		require.Equal(t, 1, h.submitter.count())
		sub := h.submitter.calls[0]
		assert.Equal(t, tt.scores, sub.Ratings.Values())
		assert.Equal(t, "Studio X", sub.StudioName)
		assert.Equal(t, "en-GB", sub.Locale)
		assert.NotEmpty(t, sub.ID)

		require.Len(t, h.completed, 1)
		assert.InDelta(t, tt.want, float64(h.completed[0]), 1e-9)
		assert.Equal(t, rating.StateClosed, h.dialog.State())
		assert.False(t, h.handle.IsOpen())
		assert.Empty(t, h.notices)
	}
}

func TestRatingDialog_FailureKeepsInputAndAllowsResubmit(t *testing.T) {
	for _, sendErr := range []error{
		&rating.SubmissionError{StatusCode: 500},
		errors.New("connection refused"),
	} {
		h := newHarness(t)
		h.submitter.err = sendErr
		h.rateAll(t, 4, 4, 4, 4, 4)

		err := h.dialog.Submit(context.Background())

		assert.ErrorIs(t, err, rating.ErrSubmissionFailed)
		assert.Empty(t, h.completed)
		assert.Equal(t, rating.StateIdle, h.dialog.State())
		assert.True(t, h.handle.IsOpen())
		assert.Equal(t, []int{4, 4, 4, 4, 4}, h.dialog.Ratings().Values())
		require.Len(t, h.notices, 1)
		assert.Equal(t, rating.NoticeFailed, h.notices[0].Kind)

		h.submitter.err = nil
		require.NoError(t, h.dialog.Submit(context.Background()))
		assert.Equal(t, 2, h.submitter.count())
		require.Len(t, h.completed, 1)
		assert.InDelta(t, 4.0, float64(h.completed[0]), 1e-9)
	}
}

func TestRatingDialog_FailureAfterExternalCloseKeepsInputForReopen(t *testing.T) {
	h := newHarness(t)
	h.rateAll(t, 5, 4, 3, 2, 1)

	sub, err := h.dialog.BeginSubmit()
	require.NoError(t, err)
	h.handle.Close()
	assert.True(t, h.dialog.IsSubmitting(), "closing the handle does not cancel the request")

	err = h.dialog.FinishSubmit(sub, errors.New("connection reset"))
	assert.ErrorIs(t, err, rating.ErrSubmissionFailed)

	assert.Equal(t, rating.StateClosed, h.dialog.State())
	assert.False(t, h.handle.IsOpen())
	assert.ErrorIs(t, h.dialog.Rate(rating.Q1, 1), rating.ErrDialogClosed)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, h.dialog.Ratings().Values())
	require.Len(t, h.notices, 1)
	assert.Equal(t, rating.NoticeFailed, h.notices[0].Kind)

	h.handle.Open()
	assert.Equal(t, rating.StateIdle, h.dialog.State())
	assert.Equal(t, []int{5, 4, 3, 2, 1}, h.dialog.Ratings().Values())

	h.handle.Close()
	h.handle.Open()
	assert.Equal(t, 0, h.dialog.Ratings().Answered(), "kept input survives one reopen only")
}

func TestRatingDialog_CloseNeverSubmits(t *testing.T) {
	for _, scores := range [][]int{{0, 0, 0, 0, 0}, {1, 2, 0, 0, 0}, {5, 5, 5, 5, 5}} {
		h := newHarness(t)
		h.rateAll(t, scores...)

		require.NoError(t, h.dialog.Close())

		assert.Equal(t, 0, h.submitter.count())
		assert.Empty(t, h.completed)
		assert.Equal(t, rating.StateClosed, h.dialog.State())
		assert.False(t, h.handle.IsOpen())
		assert.Equal(t, 0, h.dialog.Ratings().Answered(), "close discards input")
	}
}

func TestRatingDialog_ReopenRemountsWithZeros(t *testing.T) {
	h := newHarness(t)
	h.rateAll(t, 3, 3, 3, 0, 0)

	h.handle.Close()
	assert.Equal(t, rating.StateClosed, h.dialog.State())

	h.handle.Open()
	assert.Equal(t, rating.StateIdle, h.dialog.State())
	assert.Equal(t, 0, h.dialog.Ratings().Answered())
}

func TestRatingDialog_TwoPhaseSubmitGuardsReentry(t *testing.T) {
	h := newHarness(t)
	h.rateAll(t, 2, 3, 4, 5, 1)

	sub, err := h.dialog.BeginSubmit()
	require.NoError(t, err)
	assert.True(t, h.dialog.IsSubmitting())

	_, err = h.dialog.BeginSubmit()
	assert.ErrorIs(t, err, rating.ErrSubmissionInFlight)
	assert.ErrorIs(t, h.dialog.Rate(rating.Q1, 5), rating.ErrSubmissionInFlight)
	assert.ErrorIs(t, h.dialog.Close(), rating.ErrSubmissionInFlight)

	require.NoError(t, h.dialog.FinishSubmit(sub, nil))
	require.Len(t, h.completed, 1)
	assert.InDelta(t, 3.0, float64(h.completed[0]), 1e-9)

	var tErr *rating.TransitionError
	assert.ErrorAs(t, h.dialog.FinishSubmit(sub, nil), &tErr)
	assert.Len(t, h.completed, 1, "a settled submission cannot complete twice")
}

func TestRatingDialog_StarClicksRate(t *testing.T) {
	h := newHarness(t)

	h.dialog.Star(rating.Q2).Click(4)
	h.dialog.Star(rating.Q2).Click(2)

	assert.Equal(t, 2, h.dialog.Ratings().Get(rating.Q2))
	assert.True(t, h.dialog.Star(rating.Q2).Stars()[1].Filled)
	assert.False(t, h.dialog.Star(rating.Q2).Stars()[2].Filled)
}

func TestRatingDialog_CustomCopy(t *testing.T) {
	h := newHarness(t, application.WithCopy(application.Copy{Incomplete: "Please rate all 5"}))

	_ = h.dialog.Submit(context.Background())

	require.Len(t, h.notices, 1)
	assert.Equal(t, "Please rate all 5", h.notices[0].Message)
}

func TestRatingDialog_LogsSubmissionLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := newHarness(t, application.WithLogger(zap.New(core)))
	h.rateAll(t, 5, 5, 5, 5, 5)

	require.NoError(t, h.dialog.Submit(context.Background()))

	assert.Equal(t, 1, logs.FilterMessage("submitting ratings").Len())
	accepted := logs.FilterMessage("submission accepted").All()
	require.Len(t, accepted, 1)
	assert.Equal(t, "5.0", accepted[0].ContextMap()["average"])
}

func TestRatingDialog_Detach(t *testing.T) {
	h := newHarness(t)
	h.dialog.Detach()

	h.handle.Close()
	assert.Equal(t, rating.StateIdle, h.dialog.State(), "detached dialog no longer follows the handle")
}

func TestNewRatingDialog_RequiresCollaborators(t *testing.T) {
	_, err := application.NewRatingDialog(nil, &fakeSubmitter{})
	assert.Error(t, err)
	_, err = application.NewRatingDialog(application.NewDialogHandle(), nil)
	assert.Error(t, err)
}
