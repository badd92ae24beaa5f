package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

// Copy holds the user-facing notice texts.
type Copy struct {
	Incomplete string
	Failed     string
}

// DefaultCopy is the studio's Hebrew wording.
var DefaultCopy = Copy{
	Incomplete: "נא לדרג את כל 5 השאלות",
	Failed:     "אירעה שגיאה בשליחת הדעה",
}

// RatingDialog orchestrates the five-question rating flow and its single
// outbound submission. Each instance owns its RatingSet and state; nothing
// is shared between dialogs.
type RatingDialog struct {
	mu sync.Mutex

	handle     rating.Handle
	submitter  rating.Submitter
	notifier   rating.Notifier
	onComplete func(rating.Average)
	logger     *zap.Logger
	copy       Copy

	studio string
	locale string
	now    func() time.Time
	newID  func() string

	fsm         *rating.DialogStateMachine
	ratings     rating.RatingSet
	unsubscribe func()

	// retained marks input kept after a failed submission; the next open
	// shows it instead of a fresh set.
	retained bool
}

// DialogOption configures a RatingDialog.
type DialogOption func(*RatingDialog)

// WithOnComplete sets the callback invoked once per successful submission,
// after the dialog has closed itself.
func WithOnComplete(fn func(rating.Average)) DialogOption {
	return func(d *RatingDialog) { d.onComplete = fn }
}

func WithNotifier(n rating.Notifier) DialogOption {
	return func(d *RatingDialog) { d.notifier = n }
}

func WithStudioName(name string) DialogOption {
	return func(d *RatingDialog) {
		if name != "" {
			d.studio = name
		}
	}
}

func WithLocale(locale string) DialogOption {
	return func(d *RatingDialog) {
		if locale != "" {
			d.locale = locale
		}
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) DialogOption {
	return func(d *RatingDialog) { d.now = now }
}

func WithLogger(l *zap.Logger) DialogOption {
	return func(d *RatingDialog) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithCopy overrides notice texts; empty fields keep the defaults.
func WithCopy(c Copy) DialogOption {
	return func(d *RatingDialog) {
		if c.Incomplete != "" {
			d.copy.Incomplete = c.Incomplete
		}
		if c.Failed != "" {
			d.copy.Failed = c.Failed
		}
	}
}

// NewRatingDialog mounts a dialog on handle. The dialog starts idle when the
// handle is already open and closed otherwise.
func NewRatingDialog(handle rating.Handle, submitter rating.Submitter, opts ...DialogOption) (*RatingDialog, error) {
	if handle == nil {
		return nil, errors.New("rating dialog requires a handle")
	}
	if submitter == nil {
		return nil, errors.New("rating dialog requires a submitter")
	}

	d := &RatingDialog{
		handle:    handle,
		submitter: submitter,
		notifier:  rating.NotifierFunc(func(rating.Notice) {}),
		logger:    zap.NewNop(),
		copy:      DefaultCopy,
		studio:    rating.DefaultStudioName,
		locale:    rating.DefaultLocale,
		now:       time.Now,
		newID:     uuid.NewString,
		ratings:   rating.NewRatingSet(),
	}
	for _, opt := range opts {
		opt(d)
	}

	initial := rating.StateClosed
	if handle.IsOpen() {
		initial = rating.StateIdle
	}
	// The guard reads the live set; it runs with d.mu already held.
	fsm, err := rating.NewDialogStateMachine(initial, func() bool { return d.ratings.IsComplete() })
	if err != nil {
		return nil, err
	}
	d.fsm = fsm

	d.unsubscribe = handle.OnChange(d.handleChanged)
	return d, nil
}

// Detach stops following the handle. Call it when the host drops the dialog.
func (d *RatingDialog) Detach() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// State returns closed, idle or submitting.
func (d *RatingDialog) State() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fsm.Current()
}

// IsSubmitting reports whether a submission is in flight.
func (d *RatingDialog) IsSubmitting() bool {
	return d.State() == rating.StateSubmitting
}

// Ratings returns a copy of the current scores.
func (d *RatingDialog) Ratings() rating.RatingSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ratings
}

// Rate records score for question id. Input is only accepted while idle.
func (d *RatingDialog) Rate(id rating.QuestionID, score int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.editableLocked(); err != nil {
		return err
	}
	return d.ratings.Set(id, score)
}

// Star returns the controlled star input for question id.
func (d *RatingDialog) Star(id rating.QuestionID) rating.StarRating {
	d.mu.Lock()
	value := d.ratings.Get(id)
	d.mu.Unlock()

	return rating.StarRating{
		Value: value,
		OnChange: func(v int) {
			if err := d.Rate(id, v); err != nil {
				d.logger.Debug("star click ignored", zap.String("question", string(id)), zap.Error(err))
			}
		},
	}
}

// Submit validates, sends and settles one submission. It blocks until the
// submitter returns; there is no timeout and no retry.
func (d *RatingDialog) Submit(ctx context.Context) error {
	sub, err := d.BeginSubmit()
	if err != nil {
		return err
	}
	return d.FinishSubmit(sub, d.submitter.Submit(ctx, sub))
}

// Submitter exposes the dialog's submitter so event-loop hosts can run the
// request off their loop between BeginSubmit and FinishSubmit.
func (d *RatingDialog) Submitter() rating.Submitter {
	return d.submitter
}

// BeginSubmit validates the RatingSet and moves the dialog to submitting.
// An incomplete set raises the incomplete notice and leaves the dialog idle.
func (d *RatingDialog) BeginSubmit() (*rating.Submission, error) {
	d.mu.Lock()

	if err := d.editableLocked(); err != nil {
		d.mu.Unlock()
		return nil, err
	}

	if !d.ratings.IsComplete() {
		answered := d.ratings.Answered()
		d.mu.Unlock()
		d.logger.Info("submission rejected: incomplete ratings", zap.Int("answered", answered))
		d.notifier.Notify(rating.Notice{Kind: rating.NoticeIncomplete, Message: d.copy.Incomplete})
		return nil, &rating.ValidationError{Answered: answered}
	}

	sub, err := rating.NewSubmission(d.newID(), d.ratings, d.studio, d.now(), d.locale)
	if err != nil {
		d.mu.Unlock()
		return nil, err
	}
	if err := d.fsm.Transition(rating.EventSubmit); err != nil {
		d.mu.Unlock()
		return nil, err
	}
	d.mu.Unlock()

	d.logger.Info("submitting ratings",
		zap.String("submission_id", sub.ID),
		zap.Ints("ratings", sub.Ratings.Values()),
		zap.Stringer("average", sub.Average),
	)
	return sub, nil
}

// FinishSubmit settles the in-flight submission with the submitter's result.
// On success the dialog closes its handle and then reports the average. On
// failure the input is kept and the failure notice raised; the dialog
// returns to idle, or to closed when the handle was closed meanwhile, in
// which case the next open shows the kept input.
func (d *RatingDialog) FinishSubmit(sub *rating.Submission, sendErr error) error {
	if sub == nil {
		return errors.New("finish submit: nil submission")
	}

	d.mu.Lock()
	if d.fsm.Current() != rating.StateSubmitting {
		from := d.fsm.Current()
		d.mu.Unlock()
		return &rating.TransitionError{From: from, Event: rating.EventSucceed}
	}

	if sendErr != nil {
		_ = d.fsm.Transition(rating.EventFail)
		d.retained = true
		if !d.handle.IsOpen() {
			_ = d.fsm.Transition(rating.EventClose)
		}
		d.mu.Unlock()

		err := asSubmissionError(sendErr)
		d.logger.Warn("submission failed",
			zap.String("submission_id", sub.ID),
			zap.Error(err),
		)
		d.notifier.Notify(rating.Notice{Kind: rating.NoticeFailed, Message: d.copy.Failed})
		return err
	}

	_ = d.fsm.Transition(rating.EventSucceed)
	d.clearLocked()
	d.mu.Unlock()

	d.logger.Info("submission accepted",
		zap.String("submission_id", sub.ID),
		zap.Stringer("average", sub.Average),
	)

	if d.handle.IsOpen() {
		d.handle.Close()
	}
	if d.onComplete != nil {
		d.onComplete(sub.Average)
	}
	return nil
}

// Close is the explicit cancel action: it discards input and closes without
// submitting or reporting. It is refused while a submission is in flight.
func (d *RatingDialog) Close() error {
	d.mu.Lock()
	switch d.fsm.Current() {
	case rating.StateSubmitting:
		d.mu.Unlock()
		return rating.ErrSubmissionInFlight
	case rating.StateIdle:
		if err := d.fsm.Transition(rating.EventClose); err != nil {
			d.mu.Unlock()
			return err
		}
	}
	d.clearLocked()
	d.mu.Unlock()

	d.logger.Debug("rating dialog closed without submitting")
	d.handle.Close()
	return nil
}

// handleChanged follows the parent's handle. Opening remounts the dialog
// with a fresh RatingSet unless input was kept from a failed submission; an
// external close while idle discards input. A close during submission
// leaves the request to run to completion.
func (d *RatingDialog) handleChanged(open bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.fsm.Current()
	if open {
		if state == rating.StateSubmitting {
			return
		}
		if d.retained {
			d.retained = false
		} else {
			d.ratings = rating.NewRatingSet()
		}
		if state == rating.StateClosed {
			_ = d.fsm.Transition(rating.EventOpen)
		}
		return
	}

	switch state {
	case rating.StateIdle:
		_ = d.fsm.Transition(rating.EventClose)
		d.clearLocked()
	case rating.StateClosed:
		if !d.retained {
			d.ratings = rating.NewRatingSet()
		}
	}
}

func (d *RatingDialog) clearLocked() {
	d.ratings = rating.NewRatingSet()
	d.retained = false
}

func (d *RatingDialog) editableLocked() error {
	switch d.fsm.Current() {
	case rating.StateClosed:
		return rating.ErrDialogClosed
	case rating.StateSubmitting:
		return rating.ErrSubmissionInFlight
	}
	return nil
}

func asSubmissionError(err error) error {
	var subErr *rating.SubmissionError
	if errors.As(err, &subErr) {
		return err
	}
	return &rating.SubmissionError{Err: err}
}
