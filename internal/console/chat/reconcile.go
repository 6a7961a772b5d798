// Package chat carries the polling-synchronization core of the console:
// a cancellable interval poller, a merge/dedupe reconciler for message
// lists, and the scroll policy that keeps the viewport out of the user's
// way while new messages arrive.
package chat

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fundry/console/internal/console/models"
)

// Result is the outcome of one reconciliation pass. Changed is a cheap
// approximation: it catches arrivals and wholesale disappearance, not
// in-place edits to old messages.
type Result struct {
	Merged  []models.Message
	Changed bool
}

// Reconciler merges freshly fetched message lists with the currently
// displayed one. The only state it keeps between calls is the pair used by
// the changed heuristic, so one Reconciler belongs to exactly one view.
type Reconciler struct {
	prevCount   int
	prevLastKey string
}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// dedupeKey identifies a message for merging: the server id when present,
// else a composite of sender, body and timestamp, else a random token.
// Randomly keyed entries never collide with each other but also never keep
// identity across calls.
func dedupeKey(m models.Message) string {
	if m.ID != "" {
		return "id:" + m.ID
	}
	if m.SenderID != "" || m.Body != "" || !m.CreatedAt.IsZero() {
		return "c:" + strings.Join([]string{
			m.SenderID, m.SenderType, m.Body, m.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z"),
		}, "|")
	}
	return "r:" + uuid.NewString()
}

type keyedMessage struct {
	key string
	msg models.Message
}

// Reconcile merges incoming into current and reports whether the visible
// content changed since the previous call.
//
// Rules:
//   - on a key collision the incoming (fetched) value wins
//   - a current entry without an id is dropped once an id-bearing incoming
//     entry matches its sender and body (the server echoed an optimistic send)
//   - the merged set sorts ascending by timestamp; entries without a
//     timestamp sort first, keeping their relative order (stable sort)
//
// Inputs are never mutated; nil slices are treated as empty.
func (r *Reconciler) Reconcile(incoming, current []models.Message) Result {
	confirmed := make(map[string]struct{}, len(incoming))
	for _, m := range incoming {
		if m.ID != "" {
			confirmed[m.SenderID+"\x00"+m.Body] = struct{}{}
		}
	}

	index := make(map[string]int, len(current)+len(incoming))
	merged := make([]keyedMessage, 0, len(current)+len(incoming))

	for _, m := range current {
		if m.ID == "" {
			if _, ok := confirmed[m.SenderID+"\x00"+m.Body]; ok {
				// optimistic entry superseded by the server echo
				continue
			}
		}
		k := dedupeKey(m)
		if _, ok := index[k]; ok {
			continue
		}
		index[k] = len(merged)
		merged = append(merged, keyedMessage{key: k, msg: m})
	}

	for _, m := range incoming {
		k := dedupeKey(m)
		if i, ok := index[k]; ok {
			merged[i].msg = m
			continue
		}
		index[k] = len(merged)
		merged = append(merged, keyedMessage{key: k, msg: m})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].msg.CreatedAt, merged[j].msg.CreatedAt
		if a.IsZero() || b.IsZero() {
			return a.IsZero() && !b.IsZero()
		}
		return a.Before(b)
	})

	out := make([]models.Message, len(merged))
	lastKey := ""
	for i, km := range merged {
		out[i] = km.msg
		lastKey = km.key
	}

	changed := len(out) != r.prevCount || lastKey != r.prevLastKey
	r.prevCount = len(out)
	r.prevLastKey = lastKey

	return Result{Merged: out, Changed: changed}
}
