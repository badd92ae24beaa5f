package rating

import "context"

// Handle is the open/close capability the parent hands to a dialog. The
// parent owns it and decides when to open; the dialog closes it on success
// or cancel.
type Handle interface {
	Open()
	Close()
	IsOpen() bool
	// OnChange registers fn to be called after every open/close transition.
	// The returned func removes the registration.
	OnChange(fn func(open bool)) (unsubscribe func())
}

// Submitter delivers a submission to the form endpoint. Implementations
// must not retry: one call is one request.
type Submitter interface {
	Submit(ctx context.Context, sub *Submission) error
}

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeIncomplete NoticeKind = "incomplete"
	NoticeFailed     NoticeKind = "failed"
)

// Notice is a message shown to the person filling in the dialog.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier surfaces notices to the user, the way the browser alert did.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }
