// Package models holds the wire shapes exchanged with the platform REST API.
// Field names follow the external contract; none of these types carry
// behavior beyond JSON mapping.
package models

import "time"

// Fund is a fundraising campaign run by a business.
type Fund struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"businessId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetCents int64     `json:"targetCents"`
	RaisedCents int64     `json:"raisedCents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Pledge is an investor's commitment offer against a fund. Accepting a
// pledge produces a Handshake.
type Pledge struct {
	ID          string    `json:"id"`
	FundID      string    `json:"fundId"`
	InvestorID  string    `json:"investorId"`
	AmountCents int64     `json:"amountCents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Handshake is the platform's term for a confirmed investment commitment
// between investor and business once a pledge is accepted.
type Handshake struct {
	ID          string    `json:"id"`
	PledgeID    string    `json:"pledgeId"`
	FundID      string    `json:"fundId"`
	InvestorID  string    `json:"investorId"`
	BusinessID  string    `json:"businessId"`
	AmountCents int64     `json:"amountCents"`
	SignedAt    time.Time `json:"signedAt"`
}

// OwnerDocument is a KYC/ownership document attached to a business owner.
type OwnerDocument struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Kind       string    `json:"kind"`
	FileName   string    `json:"fileName"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Notification is one entry in the internal notification feed.
type Notification struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Conversation is a chat thread between two platform parties.
type Conversation struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	PeerID    string    `json:"peerId"`
	PeerName  string    `json:"peerName"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is one chat entry. ID may be empty for optimistic local entries
// the server has not yet confirmed; CreatedAt may be zero for the same
// reason. SenderType distinguishes "mine" from "theirs" in the view.
type Message struct {
	ID         string    `json:"id,omitempty"`
	SenderID   string    `json:"senderId"`
	SenderType string    `json:"senderType"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// Profile is the signed-in user's identity record.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
