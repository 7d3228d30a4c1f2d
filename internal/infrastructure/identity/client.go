// Package identity talks to the hosted identity provider (WorkOS User
// Management) for organizations, memberships and AuthKit sign-in.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"job-board/internal/config"
	domain "job-board/internal/domain/identity"
)

const membershipPageLimit = 100

// APIError is a non-2xx provider response other than 404.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("identity provider HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("identity provider HTTP %d", e.StatusCode)
}

type Client struct {
	baseURL string
	apiKey  string
	oauth   *oauth2.Config
	http    *http.Client
	logger  *log.Logger
}

func NewClient(cfg config.IdentityConfig, logger *log.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.APIKey,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   baseURL + "/user_management/authorize",
				TokenURL:  baseURL + "/user_management/authenticate",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type organizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type membershipResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Status         string `json:"status"`
	Role           struct {
		Slug string `json:"slug"`
	} `json:"role"`
}

type membershipListResponse struct {
	Data         []membershipResponse `json:"data"`
	ListMetadata struct {
		After string `json:"after"`
	} `json:"list_metadata"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c *Client) GetOrganization(ctx context.Context, orgID string) (domain.Organization, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return domain.Organization{}, fmt.Errorf("get organization: %w", domain.ErrNotFound)
	}
	var out organizationResponse
	if err := c.do(ctx, http.MethodGet, "/organizations/"+url.PathEscape(orgID), nil, &out); err != nil {
		return domain.Organization{}, fmt.Errorf("get organization %s: %w", orgID, err)
	}
	return domain.Organization{ID: out.ID, Name: out.Name}, nil
}

func (c *Client) CreateOrganization(ctx context.Context, name string) (domain.Organization, error) {
	body := map[string]any{"name": strings.TrimSpace(name)}
	var out organizationResponse
	if err := c.do(ctx, http.MethodPost, "/organizations", body, &out); err != nil {
		return domain.Organization{}, fmt.Errorf("create organization: %w", err)
	}
	return domain.Organization{ID: out.ID, Name: out.Name}, nil
}

// ListMemberships follows list_metadata.after until every page is read.
func (c *Client) ListMemberships(ctx context.Context, userID, orgID string) ([]domain.Membership, error) {
	out := make([]domain.Membership, 0)
	after := ""
	for {
		q := url.Values{}
		q.Set("user_id", userID)
		if orgID != "" {
			q.Set("organization_id", orgID)
		}
		q.Set("limit", fmt.Sprint(membershipPageLimit))
		if after != "" {
			q.Set("after", after)
		}

		var page membershipListResponse
		if err := c.do(ctx, http.MethodGet, "/user_management/organization_memberships?"+q.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("list memberships for %s: %w", userID, err)
		}
		for _, m := range page.Data {
			out = append(out, toMembership(m))
		}
		if page.ListMetadata.After == "" || len(page.Data) == 0 {
			return out, nil
		}
		after = page.ListMetadata.After
	}
}

func (c *Client) CreateMembership(ctx context.Context, userID, orgID, role string) (domain.Membership, error) {
	body := map[string]any{
		"user_id":         userID,
		"organization_id": orgID,
		"role_slug":       role,
	}
	var out membershipResponse
	if err := c.do(ctx, http.MethodPost, "/user_management/organization_memberships", body, &out); err != nil {
		return domain.Membership{}, fmt.Errorf("create membership: %w", err)
	}
	return toMembership(out), nil
}

// AuthorizationURL builds the hosted AuthKit sign-in (or sign-up) URL.
func (c *Client) AuthorizationURL(state string, signUp bool) (string, error) {
	if c == nil || c.oauth == nil {
		return "", errors.New("nil identity client")
	}
	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("provider", "authkit")}
	if signUp {
		opts = append(opts, oauth2.SetAuthURLParam("screen_hint", "sign-up"))
	}
	return c.oauth.AuthCodeURL(state, opts...), nil
}

// AuthenticateWithCode exchanges an AuthKit code. The provider returns the
// signed-in user next to the access token.
func (c *Client) AuthenticateWithCode(ctx context.Context, code string) (domain.User, error) {
	if c == nil || c.oauth == nil {
		return domain.User{}, errors.New("nil identity client")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			if c.logger != nil {
				c.logger.Printf("[Identity] authenticate error status=%d body=%q", re.Response.StatusCode, strings.TrimSpace(string(re.Body)))
			}
			return domain.User{}, fmt.Errorf("authenticate with code: %w", &APIError{StatusCode: re.Response.StatusCode, Body: strings.TrimSpace(string(re.Body))})
		}
		return domain.User{}, fmt.Errorf("authenticate with code: %w", err)
	}

	var out userResponse
	raw, err := json.Marshal(tok.Extra("user"))
	if err != nil {
		return domain.User{}, fmt.Errorf("authenticate with code: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.User{}, fmt.Errorf("authenticate with code: decode user: %w", err)
	}
	if out.ID == "" {
		return domain.User{}, errors.New("authenticate with code: empty user")
	}
	return domain.User{
		ID:        out.ID,
		Email:     out.Email,
		FirstName: out.FirstName,
		LastName:  out.LastName,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c == nil || c.http == nil {
		return errors.New("nil identity client")
	}
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[Identity] request error method=%s path=%s status=%d body=%q", method, stripQuery(path), resp.StatusCode, bodyStr)
		}
		return &APIError{StatusCode: resp.StatusCode, Body: bodyStr}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func toMembership(m membershipResponse) domain.Membership {
	return domain.Membership{
		ID:             m.ID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Status:         m.Status,
		Role:           m.Role.Slug,
	}
}

func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

var (
	_ domain.OrganizationDirectory = (*Client)(nil)
	_ domain.MembershipDirectory   = (*Client)(nil)
	_ domain.Authenticator         = (*Client)(nil)
)
