package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fundry/console/internal/console/api"
	"github.com/fundry/console/internal/console/models"
	"github.com/fundry/console/internal/logging"
)

// Viewport is what the View drives on the rendering side. The terminal
// renderer implements it in production; tests install a fake.
type Viewport interface {
	// AtBottom reports whether the user was at (or within tolerance of)
	// the bottom of the message list. Measured before each update.
	AtBottom() bool
	// Render replaces the displayed message list.
	Render(msgs []models.Message)
	// ScrollToBottom moves the viewport to the newest message.
	ScrollToBottom(animated bool)
	// ShowNewMessages surfaces the "new messages" affordance.
	ShowNewMessages()
}

// ViewConfig identifies the conversation and the local sender for
// optimistic entries.
type ViewConfig struct {
	ConversationID string
	PollInterval   time.Duration
	// Visible reports whether the chat screen is the active one; ticks
	// while it is not are dropped.
	Visible  func() bool
	SelfID   string
	SelfType string
}

// View owns one polled conversation: it fetches, reconciles, and applies
// the scroll policy. All state mutations happen under mu so a reconcile
// always sees the exact result of the previous one.
type View struct {
	cfg    ViewConfig
	client api.Client
	vp     Viewport
	log    logging.Logger

	rec    *Reconciler
	policy Policy
	poller *Poller

	mu        sync.Mutex
	messages  []models.Message
	firstLoad bool
	loadErr   error
	closed    bool
}

func NewView(client api.Client, vp Viewport, cfg ViewConfig, log logging.Logger) *View {
	v := &View{
		cfg:       cfg,
		client:    client,
		vp:        vp,
		log:       log.With("conversation", cfg.ConversationID),
		rec:       NewReconciler(),
		firstLoad: true,
	}
	v.poller = NewPoller(cfg.PollInterval, cfg.Visible, v.refresh)
	return v
}

// Open performs the initial loading fetch and starts background polling.
// An error here is the visible error state; polling continues regardless,
// so a later tick can recover.
func (v *View) Open(ctx context.Context) error {
	return v.poller.Start(ctx)
}

// Close stops polling and marks the view dead. Results of any still-pending
// fetch are discarded on arrival. Idempotent.
func (v *View) Close() {
	v.poller.Stop()
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

// Resume signals that the chat screen became active again.
func (v *View) Resume() {
	v.poller.Resume()
}

func (v *View) refresh(ctx context.Context, initial bool) error {
	notFound := false
	msgs, err := v.client.ListMessages(ctx, v.cfg.ConversationID)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrNotFound):
			// conversation gone or empty: a valid empty state, not an error
			msgs, notFound = nil, true
		case initial:
			v.mu.Lock()
			v.loadErr = err
			v.mu.Unlock()
			return err
		default:
			// background failures are swallowed; the next tick retries
			v.log.Debug(ctx, "background refresh failed", "err", err)
			return nil
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}

	wasAtBottom := v.vp.AtBottom()
	current := v.messages
	if notFound {
		// the merge would keep stale entries alive; a vanished resource
		// displays as empty instead
		current = nil
	}
	res := v.rec.Reconcile(msgs, current)
	v.messages = res.Merged
	first := v.firstLoad
	v.firstLoad = false
	v.loadErr = nil

	if first || res.Changed {
		v.vp.Render(res.Merged)
	}
	v.applyAction(v.policy.Decide(first, res.Changed, wasAtBottom))
	return nil
}

func (v *View) applyAction(a Action) {
	switch a {
	case ActionJumpToBottom:
		v.vp.ScrollToBottom(false)
	case ActionAnimateToBottom:
		v.vp.ScrollToBottom(true)
	case ActionShowIndicator:
		v.vp.ShowNewMessages()
	}
}

// Send posts a message. On failure the error is returned and nothing else
// happens, so the caller can keep the composed text for resubmission. On
// success an optimistic entry is shown immediately, the viewport is forced
// to the bottom, and a fetch is triggered to obtain authoritative state.
func (v *View) Send(ctx context.Context, body string) error {
	if err := v.client.SendMessage(ctx, v.cfg.ConversationID, body); err != nil {
		return err
	}

	v.mu.Lock()
	if !v.closed {
		optimistic := models.Message{
			SenderID:   v.cfg.SelfID,
			SenderType: v.cfg.SelfType,
			Body:       body,
			CreatedAt:  time.Now(),
		}
		res := v.rec.Reconcile([]models.Message{optimistic}, v.messages)
		v.messages = res.Merged
		v.vp.Render(res.Merged)
		v.applyAction(v.policy.AfterSend())
	}
	v.mu.Unlock()

	v.poller.Resume()
	return nil
}

// AcknowledgeNewMessages is the user activating the affordance.
func (v *View) AcknowledgeNewMessages() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.policy.IndicatorVisible() {
		return
	}
	v.applyAction(v.policy.AcknowledgeIndicator())
}

// Messages returns a copy of the current merged list.
func (v *View) Messages() []models.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Message, len(v.messages))
	copy(out, v.messages)
	return out
}

// LoadError reports the visible error state from the initial load, nil once
// any fetch has succeeded.
func (v *View) LoadError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}
