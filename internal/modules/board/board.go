package board

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nfrund/signupboard/internal/activityapi"
	"github.com/nfrund/signupboard/internal/domain"
	"github.com/nfrund/signupboard/internal/middleware"
	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

// ActivityService is the remote activities API as the board uses it.
type ActivityService interface {
	ListActivities(ctx context.Context) (*domain.Collection, error)
	Signup(ctx context.Context, activity, email string) (activityapi.Result, error)
	Unregister(ctx context.Context, activity, email string) (activityapi.Result, error)
}

// Outcome is what a submission produced for the page.
type Outcome struct {
	Message Message
	// ClearForm is set after a successful sign-up.
	ClearForm bool
}

// Board is one page's view of the activities: it owns the mirror of server
// state and the status message. Network calls run without holding the lock;
// the mirror only changes after the service confirms a write.
type Board struct {
	id        string
	api       ActivityService
	validator *CustomValidator
	notifier  *Notifier

	mu      sync.RWMutex
	mirror  *domain.Collection
	loadErr *LoadError
	loaded  bool

	lastSeen time.Time
}

// Options configures a new Board.
type Options struct {
	HideAfter time.Duration
	// OnMessage observes every change of the status message.
	OnMessage func(boardID string, msg Message)
	Validator *CustomValidator
}

// New creates an empty, unloaded board.
func New(id string, api ActivityService, opts Options) *Board {
	b := &Board{
		id:        id,
		api:       api,
		validator: opts.Validator,
		mirror:    domain.NewCollection(),
		lastSeen:  time.Now(),
	}
	if b.validator == nil {
		b.validator = NewValidator()
	}

	var onChange func(Message)
	if opts.OnMessage != nil {
		onChange = func(m Message) { opts.OnMessage(id, m) }
	}
	b.notifier = NewNotifier(opts.HideAfter, onChange)
	return b
}

// ID returns the board identifier.
func (b *Board) ID() string {
	return b.id
}

// LoadActivities fetches the collection and replaces the mirror. On failure
// the board keeps a LoadError and its view shows it instead of the list.
func (b *Board) LoadActivities(ctx context.Context) error {
	collection, err := b.api.ListActivities(context.WithoutCancel(ctx))

	b.mu.Lock()
	defer b.mu.Unlock()

	b.loaded = true
	if err != nil {
		b.loadErr = &LoadError{Err: err}
		middleware.FromContext(ctx).Warn("Could not load activities", "board_id", b.id, "error", err)
		return b.loadErr
	}
	b.mirror = collection
	b.loadErr = nil
	return nil
}

// View renders the current mirror, or the load error.
func (b *Board) View() boardview.View {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.loadErr != nil {
		return boardview.RenderLoadError(b.loadErr.Reason())
	}
	return boardview.Render(b.mirror)
}

// Snapshot returns a copy of the mirror.
func (b *Board) Snapshot() *domain.Collection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mirror.Clone()
}

// Loaded reports whether LoadActivities has completed, successfully or not.
func (b *Board) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Message returns the current status message.
func (b *Board) Message() Message {
	return b.notifier.Current()
}

// ShowMessage displays a transient status message.
func (b *Board) ShowMessage(text string, kind Kind) Message {
	return b.notifier.Show(text, kind)
}

// SubmitSignup signs email up for activity. Empty input is rejected with a
// ValidationError and no request is made.
func (b *Board) SubmitSignup(ctx context.Context, email, activity string) (Outcome, error) {
	req := SignupRequest{Email: strings.TrimSpace(email), Activity: activity}
	if err := b.validator.checkInput(req); err != nil {
		return Outcome{Message: b.notifier.Show(boardview.MsgMissingInput, KindError)}, err
	}

	b.notifier.Show(boardview.MsgSigningUp, KindInfo)

	res, err := b.api.Signup(context.WithoutCancel(ctx), req.Activity, req.Email)
	if err != nil {
		return Outcome{Message: b.notifier.Show(failureText(err, boardview.MsgSignupFailed), KindError)}, err
	}

	b.mu.Lock()
	b.mirror.AddParticipant(req.Activity, req.Email)
	b.mu.Unlock()

	return Outcome{
		Message:   b.notifier.Show(orDefault(res.Message, boardview.MsgSignupOK), KindSuccess),
		ClearForm: true,
	}, nil
}

// SubmitRemoval unregisters email from activity. Removing an email the
// mirror does not list is a no-op locally; the service decides the outcome.
func (b *Board) SubmitRemoval(ctx context.Context, email, activity string) (Outcome, error) {
	req := RemovalRequest{Activity: activity, Email: email}
	if err := b.validator.checkInput(req); err != nil {
		return Outcome{Message: b.notifier.Show(boardview.MsgMissingInput, KindError)}, err
	}

	res, err := b.api.Unregister(context.WithoutCancel(ctx), req.Activity, req.Email)
	if err != nil {
		return Outcome{Message: b.notifier.Show(failureText(err, boardview.MsgUnregisterFailed), KindError)}, err
	}

	b.mu.Lock()
	b.mirror.RemoveParticipant(req.Activity, req.Email)
	b.mu.Unlock()

	return Outcome{Message: b.notifier.Show(orDefault(res.Message, boardview.MsgUnregisterOK), KindSuccess)}, nil
}

// Close stops the board's timers.
func (b *Board) Close() {
	b.notifier.Stop()
}

func (b *Board) touch(now time.Time) {
	b.mu.Lock()
	b.lastSeen = now
	b.mu.Unlock()
}

func (b *Board) idleSince() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastSeen
}

// failureText picks the service's own error text when it sent one.
func failureText(err error, fallback string) string {
	if msg, ok := activityapi.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
