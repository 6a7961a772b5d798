package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundry/console/internal/console/models"
)

func TestFeed_InitialLoadAndUnreadCount(t *testing.T) {
	fc := &fakeClient{notifItems: []models.Notification{
		{ID: "n1", Subject: "pledge accepted", Read: false},
		{ID: "n2", Subject: "old news", Read: true},
		{ID: "n3", Subject: "new handshake", Read: false},
	}}

	var updates []int
	f := NewFeed(fc, time.Hour, nil, func(unread int) { updates = append(updates, unread) }, testLogger())
	defer f.Close()

	require.NoError(t, f.Open(context.Background()))
	require.Equal(t, 2, f.Unread())
	require.Len(t, f.Items(), 3)
	require.Equal(t, []int{2}, updates)
}

func TestFeed_InitialErrorReturned(t *testing.T) {
	fc := &fakeClient{notifErr: errors.New("offline")}
	f := NewFeed(fc, time.Hour, nil, nil, testLogger())
	defer f.Close()

	require.Error(t, f.Open(context.Background()))
}

func TestFeed_BackgroundErrorSwallowed(t *testing.T) {
	fc := &fakeClient{notifItems: []models.Notification{{ID: "n1"}}}
	f := NewFeed(fc, time.Hour, func() bool { return true }, nil, testLogger())
	defer f.Close()

	require.NoError(t, f.Open(context.Background()))

	fc.mu.Lock()
	fc.notifErr = errors.New("flaky")
	fc.mu.Unlock()

	f.Resume()
	require.Eventually(t, func() bool {
		fc.mu.Lock()
		defer fc.mu.Unlock()
		return fc.notifCalls >= 2
	}, time.Second, time.Millisecond)

	require.Len(t, f.Items(), 1, "stale items survive a failed refresh")
}
