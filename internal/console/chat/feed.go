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

// Feed polls the notification endpoint. Independent of any chat view: no
// ordering is guaranteed between polled resources.
type Feed struct {
	client   api.Client
	log      logging.Logger
	poller   *Poller
	onUpdate func(unread int)

	mu     sync.Mutex
	items  []models.Notification
	closed bool
}

// NewFeed builds a notification feed. onUpdate fires whenever the unread
// count changes; it may be nil.
func NewFeed(client api.Client, interval time.Duration, visible func() bool, onUpdate func(unread int), log logging.Logger) *Feed {
	f := &Feed{
		client:   client,
		log:      log,
		onUpdate: onUpdate,
	}
	f.poller = NewPoller(interval, visible, f.refresh)
	return f
}

func (f *Feed) Open(ctx context.Context) error {
	return f.poller.Start(ctx)
}

func (f *Feed) Close() {
	f.poller.Stop()
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *Feed) Resume() {
	f.poller.Resume()
}

func (f *Feed) refresh(ctx context.Context, initial bool) error {
	items, err := f.client.ListNotifications(ctx)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrNotFound):
			items = nil
		case initial:
			return err
		default:
			f.log.Debug(ctx, "notification refresh failed", "err", err)
			return nil
		}
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	prevUnread := unreadCount(f.items)
	f.items = items
	unread := unreadCount(items)
	f.mu.Unlock()

	if f.onUpdate != nil && (initial || unread != prevUnread) {
		f.onUpdate(unread)
	}
	return nil
}

func unreadCount(items []models.Notification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}

// Items returns a copy of the last fetched notifications.
func (f *Feed) Items() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Unread returns the current unread count.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return unreadCount(f.items)
}
