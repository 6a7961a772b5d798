package chat

// Action is what the viewport should do after a reconciliation pass.
type Action int

const (
	// ActionNone leaves the viewport alone.
	ActionNone Action = iota
	// ActionJumpToBottom scrolls to the bottom instantly (first load).
	ActionJumpToBottom
	// ActionAnimateToBottom scrolls to the bottom smoothly.
	ActionAnimateToBottom
	// ActionShowIndicator surfaces a "new messages" affordance instead of
	// yanking the viewport away from what the user is reading.
	ActionShowIndicator
)

// Policy decides post-update scroll behavior and latches the "new messages"
// indicator until it is acknowledged or the view reaches the bottom again.
type Policy struct {
	indicator bool
}

// Decide applies the decision table:
//
//	first load            -> jump to bottom
//	no change             -> nothing (never re-triggers the indicator)
//	changed, at bottom    -> animate to bottom
//	changed, scrolled up  -> show indicator
func (p *Policy) Decide(firstLoad, changed, wasAtBottom bool) Action {
	switch {
	case firstLoad:
		p.indicator = false
		return ActionJumpToBottom
	case !changed:
		return ActionNone
	case wasAtBottom:
		p.indicator = false
		return ActionAnimateToBottom
	default:
		p.indicator = true
		return ActionShowIndicator
	}
}

// IndicatorVisible reports whether the affordance is currently latched.
func (p *Policy) IndicatorVisible() bool {
	return p.indicator
}

// AcknowledgeIndicator is the user activating the affordance: clear it and
// scroll down.
func (p *Policy) AcknowledgeIndicator() Action {
	p.indicator = false
	return ActionAnimateToBottom
}

// AfterSend treats a local send as an implicit "user is at bottom" event:
// force a scroll-to-bottom regardless of prior position.
func (p *Policy) AfterSend() Action {
	p.indicator = false
	return ActionAnimateToBottom
}
