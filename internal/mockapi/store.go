// Package mockapi is an in-memory stand-in for the investment platform
// backend. It serves the same REST contract the console speaks, seeded with
// one account per role, so the console can be exercised end to end without
// the real platform.
package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fundry/console/internal/console/models"
)

// User is an account record. Password hashes are bcrypt.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash []byte
}

// Store keeps all platform state in memory behind one mutex. Good enough
// for a development fixture; not meant for concurrency-heavy load.
type Store struct {
	mu sync.Mutex

	users         []User
	funds         []models.Fund
	pledges       []models.Pledge
	handshakes    []models.Handshake
	documents     []models.OwnerDocument
	notifications map[string][]models.Notification
	conversations map[string][]models.Conversation
	messages      map[string][]models.Message
}

// NewStore returns a store seeded with one account per role (password
// "password" for all three) and a small data set wired between them.
func NewStore() *Store {
	s := &Store{
		notifications: make(map[string][]models.Notification),
		conversations: make(map[string][]models.Conversation),
		messages:      make(map[string][]models.Message),
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	admin := s.addUser("admin@fundry.dev", "Platform Admin", "ADMIN", "password")
	biz := s.addUser("business@fundry.dev", "Acme Robotics", "BUSINESS", "password")
	inv := s.addUser("investor@fundry.dev", "Jordan Vance", "INVESTOR", "password")

	now := time.Now().UTC()

	fund := models.Fund{
		ID:          uuid.NewString(),
		BusinessID:  biz.ID,
		Title:       "Series A round",
		Description: "Warehouse automation expansion",
		TargetCents: 50_000_000,
		RaisedCents: 12_500_000,
		Status:      "OPEN",
		CreatedAt:   now.Add(-30 * 24 * time.Hour),
	}
	s.funds = append(s.funds, fund)

	s.pledges = append(s.pledges, models.Pledge{
		ID:          uuid.NewString(),
		FundID:      fund.ID,
		InvestorID:  inv.ID,
		AmountCents: 2_500_000,
		Status:      "PENDING",
		CreatedAt:   now.Add(-2 * 24 * time.Hour),
	})

	s.documents = append(s.documents, models.OwnerDocument{
		ID:         uuid.NewString(),
		OwnerID:    biz.ID,
		Kind:       "INCORPORATION",
		FileName:   "articles.pdf",
		Status:     "VERIFIED",
		UploadedAt: now.Add(-60 * 24 * time.Hour),
	})

	for _, uid := range []string{admin.ID, biz.ID, inv.ID} {
		s.notifications[uid] = []models.Notification{{
			ID:        uuid.NewString(),
			Subject:   "Welcome to Fundry",
			Body:      "Your account is ready.",
			CreatedAt: now.Add(-7 * 24 * time.Hour),
		}}
	}

	conv := models.Conversation{
		ID:        uuid.NewString(),
		Subject:   "Series A round",
		UpdatedAt: now.Add(-time.Hour),
	}
	for uid, peer := range map[string]User{biz.ID: inv, inv.ID: biz} {
		c := conv
		c.PeerID = peer.ID
		c.PeerName = peer.Name
		s.conversations[uid] = []models.Conversation{c}
	}
	s.messages[conv.ID] = []models.Message{
		{
			ID:         uuid.NewString(),
			SenderID:   inv.ID,
			SenderType: "investor",
			Body:       "Hi, I'd like to discuss the terms.",
			CreatedAt:  now.Add(-2 * time.Hour),
		},
		{
			ID:         uuid.NewString(),
			SenderID:   biz.ID,
			SenderType: "business",
			Body:       "Happy to walk you through the deck.",
			CreatedAt:  now.Add(-time.Hour),
		},
	}
}

func (s *Store) addUser(email, name, role, password string) User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	}
	s.users = append(s.users, u)
	return u
}

// Authenticate checks credentials and returns the matching account.
func (s *Store) Authenticate(email, password string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil {
				return u, true
			}
			return User{}, false
		}
	}
	return User{}, false
}

// CreateUser registers a new account. Duplicate emails are rejected.
func (s *Store) CreateUser(email, name, role, password string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return User{}, false
		}
	}
	return s.addUser(email, name, role, password), true
}

func (s *Store) UserByID(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) Funds() []models.Fund {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Fund(nil), s.funds...)
}

func (s *Store) FundByID(id string) (models.Fund, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.funds {
		if f.ID == id {
			return f, true
		}
	}
	return models.Fund{}, false
}

func (s *Store) CreateFund(f models.Fund) models.Fund {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = uuid.NewString()
	f.CreatedAt = time.Now().UTC()
	if f.Status == "" {
		f.Status = "OPEN"
	}
	s.funds = append(s.funds, f)
	return f
}

func (s *Store) UpdateFund(f models.Fund) (models.Fund, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.funds {
		if s.funds[i].ID == f.ID {
			s.funds[i] = f
			return f, true
		}
	}
	return models.Fund{}, false
}

func (s *Store) Pledges() []models.Pledge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Pledge(nil), s.pledges...)
}

func (s *Store) CreatePledge(p models.Pledge) (models.Pledge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, f := range s.funds {
		if f.ID == p.FundID {
			found = true
			break
		}
	}
	if !found {
		return models.Pledge{}, false
	}
	p.ID = uuid.NewString()
	p.Status = "PENDING"
	p.CreatedAt = time.Now().UTC()
	s.pledges = append(s.pledges, p)
	return p, true
}

// AcceptPledge flips a pending pledge to accepted, records the handshake,
// and moves the pledged amount into the fund's raised total.
func (s *Store) AcceptPledge(id string) (models.Handshake, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pledges {
		if s.pledges[i].ID != id {
			continue
		}
		if s.pledges[i].Status != "PENDING" {
			return models.Handshake{}, false
		}
		s.pledges[i].Status = "ACCEPTED"

		var businessID string
		for j := range s.funds {
			if s.funds[j].ID == s.pledges[i].FundID {
				s.funds[j].RaisedCents += s.pledges[i].AmountCents
				businessID = s.funds[j].BusinessID
			}
		}

		h := models.Handshake{
			ID:          uuid.NewString(),
			PledgeID:    s.pledges[i].ID,
			FundID:      s.pledges[i].FundID,
			InvestorID:  s.pledges[i].InvestorID,
			BusinessID:  businessID,
			AmountCents: s.pledges[i].AmountCents,
			SignedAt:    time.Now().UTC(),
		}
		s.handshakes = append(s.handshakes, h)
		return h, true
	}
	return models.Handshake{}, false
}

func (s *Store) Handshakes() []models.Handshake {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Handshake(nil), s.handshakes...)
}

func (s *Store) Documents(ownerID string) []models.OwnerDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OwnerDocument
	for _, d := range s.documents {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) Notifications(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications[userID]...)
}

func (s *Store) Conversations(userID string) []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Conversation(nil), s.conversations[userID]...)
}

// Messages returns the conversation history in ascending timestamp order.
// The second return reports whether the conversation exists at all.
func (s *Store) Messages(conversationID string) ([]models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.messages[conversationID]
	if !ok {
		return nil, false
	}
	out := append([]models.Message(nil), msgs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, true
}

// AppendMessage adds a message to an existing conversation.
func (s *Store) AppendMessage(conversationID string, m models.Message) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[conversationID]; !ok {
		return models.Message{}, false
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	s.messages[conversationID] = append(s.messages[conversationID], m)
	for uid, convs := range s.conversations {
		for i := range convs {
			if convs[i].ID == conversationID {
				s.conversations[uid][i].UpdatedAt = m.CreatedAt
			}
		}
	}
	return m, true
}
