package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fundry/console/internal/console/models"
	"github.com/fundry/console/internal/console/session"
)

// RESTClient implements Client over HTTP+JSON. The bearer token is read
// fresh from the session store on every request; a 401 response clears the
// store so the routing layer falls back to sign-in on the next navigation.
type RESTClient struct {
	baseURL string
	http    *http.Client
	store   session.Store
}

func NewRESTClient(baseURL string, timeout time.Duration, store session.Store) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		store:   store,
	}
}

// errorBody is the shape the platform uses for non-2xx responses.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one JSON round-trip. in may be nil for body-less requests;
// out may be nil when the response body is irrelevant.
func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.Get().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.store.Clear()
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Error != "" {
			return fmt.Errorf("api: %s (status %d)", eb.Error, resp.StatusCode)
		}
		return fmt.Errorf("api: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (c *RESTClient) Register(ctx context.Context, email, password, name, role string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", registerRequest{
		Email: email, Password: password, Name: name, Role: role,
	}, nil)
}

func (c *RESTClient) Me(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &p)
	return p, err
}

func (c *RESTClient) ListFunds(ctx context.Context) ([]models.Fund, error) {
	var out []models.Fund
	err := c.do(ctx, http.MethodGet, "/api/funds", nil, &out)
	return out, err
}

func (c *RESTClient) GetFund(ctx context.Context, id string) (models.Fund, error) {
	var out models.Fund
	err := c.do(ctx, http.MethodGet, "/api/funds/"+id, nil, &out)
	return out, err
}

func (c *RESTClient) CreateFund(ctx context.Context, f models.Fund) (models.Fund, error) {
	var out models.Fund
	err := c.do(ctx, http.MethodPost, "/api/funds", f, &out)
	return out, err
}

func (c *RESTClient) UpdateFund(ctx context.Context, f models.Fund) (models.Fund, error) {
	var out models.Fund
	err := c.do(ctx, http.MethodPut, "/api/funds/"+f.ID, f, &out)
	return out, err
}

func (c *RESTClient) ListPledges(ctx context.Context) ([]models.Pledge, error) {
	var out []models.Pledge
	err := c.do(ctx, http.MethodGet, "/api/pledges", nil, &out)
	return out, err
}

func (c *RESTClient) CreatePledge(ctx context.Context, p models.Pledge) (models.Pledge, error) {
	var out models.Pledge
	err := c.do(ctx, http.MethodPost, "/api/pledges", p, &out)
	return out, err
}

func (c *RESTClient) AcceptPledge(ctx context.Context, id string) (models.Handshake, error) {
	var out models.Handshake
	err := c.do(ctx, http.MethodPost, "/api/pledges/"+id+"/accept", nil, &out)
	return out, err
}

func (c *RESTClient) ListHandshakes(ctx context.Context) ([]models.Handshake, error) {
	var out []models.Handshake
	err := c.do(ctx, http.MethodGet, "/api/handshakes", nil, &out)
	return out, err
}

func (c *RESTClient) ListDocuments(ctx context.Context) ([]models.OwnerDocument, error) {
	var out []models.OwnerDocument
	err := c.do(ctx, http.MethodGet, "/api/documents", nil, &out)
	return out, err
}

func (c *RESTClient) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &out)
	return out, err
}

func (c *RESTClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var out []models.Conversation
	err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &out)
	return out, err
}

func (c *RESTClient) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var out []models.Message
	err := c.do(ctx, http.MethodGet, "/api/conversations/"+conversationID+"/messages", nil, &out)
	return out, err
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (c *RESTClient) SendMessage(ctx context.Context, conversationID, body string) error {
	return c.do(ctx, http.MethodPost, "/api/conversations/"+conversationID+"/messages",
		sendMessageRequest{Body: body}, nil)
}
