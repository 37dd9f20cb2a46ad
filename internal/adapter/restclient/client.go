package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"loan-ledger/internal/adapter/middleware"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/ledger"

	"github.com/google/uuid"
)

var (
	_ ledger.Gateway     = (*Client)(nil)
	_ ledger.AuthGateway = (*Client)(nil)
)

// Client talks to the ledger API. Calls under /clients carry the session's
// bearer token; mutating ones also carry a fresh X-Request-Id and X-Request-At.
type Client struct {
	base    string
	hc      *http.Client
	session *ledger.Session
	newID   func() string
	now     func() time.Time
}

func New(baseURL string, timeout time.Duration, session *ledger.Session) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		session: session,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// WithHTTPClient swaps the underlying transport, e.g. for httptest servers.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.hc = hc
	return c
}

type errorBody struct {
	Error   string `json:"error"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type call struct {
	method     string
	path       string
	in         any
	out        any
	auth       bool
	idempotent bool
}

func (c *Client) do(ctx context.Context, k call) error {
	var body io.Reader
	if k.in != nil {
		b, err := json.Marshal(k.in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", k.method, k.path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, k.method, c.base+k.path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if k.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if k.auth {
		if tok := c.session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if k.idempotent {
		req.Header.Set(middleware.HeaderRequestID, c.newID())
		req.Header.Set(middleware.HeaderRequestAt, c.now().UTC().Format(time.RFC3339))
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ledger.ErrTransport, k.method, k.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ledger.ErrTransport, k.method, k.path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if k.out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, k.out); err != nil {
			return fmt.Errorf("%w: decode %s %s: %v", ledger.ErrTransport, k.method, k.path, err)
		}
		return nil
	}
	return remoteError(resp.StatusCode, raw)
}

func remoteError(status int, raw []byte) error {
	var kind error
	switch {
	case status == http.StatusConflict:
		kind = ledger.ErrConflict
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ledger.ErrUnauthorized
	case status == http.StatusNotFound:
		kind = ledger.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = ledger.ErrRejected
	default:
		kind = ledger.ErrTransport
	}

	var eb errorBody
	detail := ""
	if json.Unmarshal(raw, &eb) == nil {
		parts := []string{}
		if eb.Error != "" {
			parts = append(parts, eb.Error)
		}
		for _, d := range eb.Details {
			parts = append(parts, d.Field+": "+d.Message)
		}
		detail = strings.Join(parts, "; ")
	}
	return &ledger.RemoteError{Kind: kind, Status: status, Detail: detail}
}

func (c *Client) List(ctx context.Context) ([]loan.Record, error) {
	return c.Search(ctx, loan.NoFilter())
}

// Search lists the records the server filters by cr.
func (c *Client) Search(ctx context.Context, cr loan.Criteria) ([]loan.Record, error) {
	path := "/clients"
	if !cr.IsZero() {
		q := url.Values{}
		for k, v := range map[string]string{"name": cr.Name, "status": string(cr.Status), "date": cr.Date} {
			if v != "" {
				q.Set(k, v)
			}
		}
		path += "?" + q.Encode()
	}
	var out []loan.Record
	if err := c.do(ctx, call{method: http.MethodGet, path: path, out: &out, auth: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (loan.Record, error) {
	var out loan.Record
	err := c.do(ctx, call{method: http.MethodGet, path: "/clients/" + url.PathEscape(id), out: &out, auth: true})
	return out, err
}

func (c *Client) Create(ctx context.Context, r loan.Record) (loan.Record, error) {
	r.ClientID = ""
	var out loan.Record
	err := c.do(ctx, call{method: http.MethodPost, path: "/clients", in: r, out: &out, auth: true, idempotent: true})
	return out, err
}

func (c *Client) Update(ctx context.Context, id string, r loan.Record) (loan.Record, error) {
	if id == "" {
		return loan.Record{}, errors.New("update: empty id")
	}
	r.ClientID = ""
	var out loan.Record
	err := c.do(ctx, call{method: http.MethodPut, path: "/clients/" + url.PathEscape(id), in: r, out: &out, auth: true, idempotent: true})
	return out, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/clients/" + url.PathEscape(id), auth: true, idempotent: true})
}

type loginResp struct {
	Token string          `json:"token"`
	User  ledger.Operator `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, ledger.Operator, error) {
	var out loginResp
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/login", in: in, out: &out}); err != nil {
		return "", ledger.Operator{}, err
	}
	return out.Token, out.User, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (ledger.Operator, error) {
	var out ledger.Operator
	in := map[string]string{"name": name, "email": email, "password": password}
	err := c.do(ctx, call{method: http.MethodPost, path: "/users", in: in, out: &out})
	return out, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/forgot-password", in: map[string]string{"email": email}})
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	in := map[string]string{"token": token, "password": password}
	return c.do(ctx, call{method: http.MethodPost, path: "/reset-password", in: in})
}
