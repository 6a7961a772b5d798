package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundry/console/internal/console/api"
	"github.com/fundry/console/internal/console/models"
	"github.com/fundry/console/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient implements api.Client; only the chat methods carry behavior.
type fakeClient struct {
	mu          sync.Mutex
	messages    []models.Message
	listErr     error
	sendErr     error
	listCalls   int
	sentBodies  []string
	notifItems  []models.Notification
	notifErr    error
	notifCalls  int
	echoOnFetch bool // append an id-bearing echo of the last send to fetches
}

func (f *fakeClient) setMessages(msgs []models.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = msgs
}

func (f *fakeClient) setListErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *fakeClient) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Message, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeClient) SendMessage(ctx context.Context, conversationID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentBodies = append(f.sentBodies, body)
	if f.echoOnFetch {
		f.messages = append(f.messages, models.Message{
			ID: "echo-1", SenderID: "me", SenderType: "investor", Body: body,
			CreatedAt: time.Now(),
		})
	}
	return nil
}

func (f *fakeClient) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifCalls++
	if f.notifErr != nil {
		return nil, f.notifErr
	}
	out := make([]models.Notification, len(f.notifItems))
	copy(out, f.notifItems)
	return out, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	return "", nil
}
func (f *fakeClient) Register(ctx context.Context, email, password, name, role string) error {
	return nil
}
func (f *fakeClient) Me(ctx context.Context) (models.Profile, error) { return models.Profile{}, nil }
func (f *fakeClient) ListFunds(ctx context.Context) ([]models.Fund, error) {
	return nil, nil
}
func (f *fakeClient) GetFund(ctx context.Context, id string) (models.Fund, error) {
	return models.Fund{}, nil
}
func (f *fakeClient) CreateFund(ctx context.Context, fund models.Fund) (models.Fund, error) {
	return fund, nil
}
func (f *fakeClient) UpdateFund(ctx context.Context, fund models.Fund) (models.Fund, error) {
	return fund, nil
}
func (f *fakeClient) ListPledges(ctx context.Context) ([]models.Pledge, error) { return nil, nil }
func (f *fakeClient) CreatePledge(ctx context.Context, p models.Pledge) (models.Pledge, error) {
	return p, nil
}
func (f *fakeClient) AcceptPledge(ctx context.Context, id string) (models.Handshake, error) {
	return models.Handshake{}, nil
}
func (f *fakeClient) ListHandshakes(ctx context.Context) ([]models.Handshake, error) {
	return nil, nil
}
func (f *fakeClient) ListDocuments(ctx context.Context) ([]models.OwnerDocument, error) {
	return nil, nil
}
func (f *fakeClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return nil, nil
}

var _ api.Client = (*fakeClient)(nil)

// fakeViewport records viewport interactions.
type fakeViewport struct {
	mu            sync.Mutex
	atBottom      bool
	rendered      [][]models.Message
	scrolls       []bool // animated flag per ScrollToBottom call
	indicatorHits int
}

func (f *fakeViewport) AtBottom() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.atBottom
}

func (f *fakeViewport) Render(msgs []models.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rendered = append(f.rendered, msgs)
}

func (f *fakeViewport) ScrollToBottom(animated bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrolls = append(f.scrolls, animated)
}

func (f *fakeViewport) ShowNewMessages() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indicatorHits++
}

func (f *fakeViewport) snapshot() (renders int, scrolls []bool, indicators int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rendered), append([]bool{}, f.scrolls...), f.indicatorHits
}

func newTestView(fc *fakeClient, vp *fakeViewport) *View {
	return NewView(fc, vp, ViewConfig{
		ConversationID: "conv-1",
		PollInterval:   time.Hour, // ticks driven manually via Resume
		Visible:        func() bool { return true },
		SelfID:         "me",
		SelfType:       "investor",
	}, testLogger())
}

func TestView_FirstLoadRendersAndJumpsToBottom(t *testing.T) {
	fc := &fakeClient{}
	fc.setMessages([]models.Message{{ID: "1", Body: "hi", CreatedAt: ts(1)}})
	vp := &fakeViewport{}
	v := newTestView(fc, vp)
	defer v.Close()

	require.NoError(t, v.Open(context.Background()))

	renders, scrolls, _ := vp.snapshot()
	require.Equal(t, 1, renders)
	require.Equal(t, []bool{false}, scrolls, "first load jumps without animation")
	require.Len(t, v.Messages(), 1)
	require.NoError(t, v.LoadError())
}

func TestView_InitialLoadFailureSurfacesError(t *testing.T) {
	fc := &fakeClient{}
	fc.setListErr(errors.New("connection reset"))
	vp := &fakeViewport{}
	v := newTestView(fc, vp)
	defer v.Close()

	err := v.Open(context.Background())
	require.Error(t, err)
	require.Error(t, v.LoadError())

	renders, _, _ := vp.snapshot()
	require.Zero(t, renders)
}

func TestView_BackgroundFailureSwallowed(t *testing.T) {
	fc := &fakeClient{}
	fc.setMessages([]models.Message{{ID: "1", Body: "hi", CreatedAt: ts(1)}})
	vp := &fakeViewport{atBottom: true}
	v := newTestView(fc, vp)
	defer v.Close()

	require.NoError(t, v.Open(context.Background()))

	fc.setListErr(errors.New("flaky network"))
	v.Resume()
	require.Eventually(t, func() bool {
		fc.mu.Lock()
		defer fc.mu.Unlock()
		return fc.listCalls >= 2
	}, time.Second, time.Millisecond)

	require.NoError(t, v.LoadError())
	require.Len(t, v.Messages(), 1)
}

func TestView_NotFoundShowsEmptyList(t *testing.T) {
	fc := &fakeClient{}
	fc.setMessages([]models.Message{{ID: "1", Body: "hi", CreatedAt: ts(1)}})
	vp := &fakeViewport{atBottom: true}
	v := newTestView(fc, vp)
	defer v.Close()

	require.NoError(t, v.Open(context.Background()))
	require.Len(t, v.Messages(), 1)

	fc.setListErr(api.ErrNotFound)
	v.Resume()
	require.Eventually(t, func() bool { return len(v.Messages()) == 0 }, time.Second, time.Millisecond)
	require.NoError(t, v.LoadError())
}

func TestView_NewMessageWhileScrolledUpShowsIndicator(t *testing.T) {
	fc := &fakeClient{}
	fc.setMessages([]models.Message{{ID: "1", Body: "hi", CreatedAt: ts(1)}})
	vp := &fakeViewport{atBottom: true}
	v := newTestView(fc, vp)
	defer v.Close()

	require.NoError(t, v.Open(context.Background()))

	vp.mu.Lock()
	vp.atBottom = false
	vp.mu.Unlock()

	fc.setMessages([]models.Message{
		{ID: "1", Body: "hi", CreatedAt: ts(1)},
		{ID: "2", Body: "new one", CreatedAt: ts(2)},
	})
	v.Resume()

	require.Eventually(t, func() bool {
		_, _, indicators := vp.snapshot()
		return indicators == 1
	}, time.Second, time.Millisecond)

	_, scrolls, _ := vp.snapshot()
	require.Equal(t, []bool{false}, scrolls, "no scroll while the user reads history")

	// activating the affordance scrolls down and clears it
	v.AcknowledgeNewMessages()
	_, scrolls, _ = vp.snapshot()
	require.Equal(t, []bool{false, true}, scrolls)

	// a second acknowledge is a no-op
	v.AcknowledgeNewMessages()
	_, scrolls, _ = vp.snapshot()
	require.Equal(t, []bool{false, true}, scrolls)
}

func TestView_UnchangedPollDoesNotRenderOrScroll(t *testing.T) {
	fc := &fakeClient{}
	fc.setMessages([]models.Message{{ID: "1", Body: "hi", CreatedAt: ts(1)}})
	vp := &fakeViewport{atBottom: true}
	v := newTestView(fc, vp)
	defer v.Close()

	require.NoError(t, v.Open(context.Background()))
	renders0, scrolls0, _ := vp.snapshot()

	v.Resume()
	require.Eventually(t, func() bool {
		fc.mu.Lock()
		defer fc.mu.Unlock()
		return fc.listCalls >= 2
	}, time.Second, time.Millisecond)

	renders1, scrolls1, _ := vp.snapshot()
	require.Equal(t, renders0, renders1)
	require.Equal(t, scrolls0, scrolls1)
}

func TestView_SendFailureLeavesStateAlone(t *testing.T) {
	fc := &fakeClient{sendErr: errors.New("rejected")}
	vp := &fakeViewport{}
	v := newTestView(fc, vp)
	defer v.Close()

	require.NoError(t, v.Open(context.Background()))
	renders0, scrolls0, _ := vp.snapshot()

	err := v.Send(context.Background(), "draft text")
	require.Error(t, err)
	require.Empty(t, v.Messages())

	renders1, scrolls1, _ := vp.snapshot()
	require.Equal(t, renders0, renders1)
	require.Equal(t, scrolls0, scrolls1)
}

func TestView_SendShowsOptimisticEntryAndForcesBottom(t *testing.T) {
	fc := &fakeClient{echoOnFetch: true}
	vp := &fakeViewport{} // not at bottom: send must still force the scroll

	// visibility gate keeps the send-triggered fetch parked until the
	// optimistic state has been asserted
	var visible atomic.Bool
	v := NewView(fc, vp, ViewConfig{
		ConversationID: "conv-1",
		PollInterval:   time.Hour,
		Visible:        visible.Load,
		SelfID:         "me",
		SelfType:       "investor",
	}, testLogger())
	defer v.Close()

	require.NoError(t, v.Open(context.Background()))

	require.NoError(t, v.Send(context.Background(), "hello"))

	msgs := v.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "hello", msgs[0].Body)
	require.Empty(t, msgs[0].ID, "optimistic entry has no server id yet")

	_, scrolls, _ := vp.snapshot()
	require.Contains(t, scrolls, true)

	// the triggered fetch replaces the optimistic entry with the echo
	visible.Store(true)
	v.Resume()
	require.Eventually(t, func() bool {
		m := v.Messages()
		return len(m) == 1 && m[0].ID == "echo-1"
	}, time.Second, time.Millisecond)
}

func TestView_ResultsAfterCloseDiscarded(t *testing.T) {
	fc := &fakeClient{}
	fc.setMessages([]models.Message{{ID: "1", Body: "hi", CreatedAt: ts(1)}})
	vp := &fakeViewport{}
	v := newTestView(fc, vp)

	require.NoError(t, v.Open(context.Background()))
	v.Close()

	// direct refresh simulates an in-flight response landing after unmount
	fc.setMessages([]models.Message{{ID: "2", Body: "late", CreatedAt: ts(2)}})
	_ = v.refresh(context.Background(), false)

	require.Len(t, v.Messages(), 1)
	require.Equal(t, "1", v.Messages()[0].ID)
}
