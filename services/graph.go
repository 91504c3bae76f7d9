package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
)

// GraphClient is a narrow adapter over the Microsoft Graph REST API used for
// Teams provisioning: user lookup, team and channel creation, membership.
// It authenticates app-only with the client-credentials grant and caches the
// token until shortly before expiry.
type GraphClient struct {
	cfg    *config.Config
	client *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewGraphClient(cfg *config.Config) *GraphClient {
	return &GraphClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// === Graph wire structs ===

type graphTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// GraphUser is a directory user as returned by /users
type GraphUser struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail"`
}

type graphCreateTeamRequest struct {
	TemplateBind string `json:"template@odata.bind"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description,omitempty"`
}

type graphCreateChannelRequest struct {
	DisplayName    string `json:"displayName"`
	MembershipType string `json:"membershipType"`
}

type graphChannelResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type graphAddMemberRequest struct {
	ODataType string   `json:"@odata.type"`
	Roles     []string `json:"roles"`
	UserBind  string   `json:"user@odata.bind"`
}

// acquireToken fetches (or reuses) an app-only access token from the tenant's
// token endpoint.
func (g *GraphClient) acquireToken() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Reuse the cached token with a minute of clock skew allowance
	if g.token != "" && time.Now().Add(time.Minute).Before(g.tokenExpiry) {
		return g.token, nil
	}

	form := url.Values{}
	form.Set("client_id", g.cfg.GraphClientID)
	form.Set("client_secret", g.cfg.GraphClientSecret)
	form.Set("scope", "https://graph.microsoft.com/.default")
	form.Set("grant_type", "client_credentials")

	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", g.cfg.GraphLoginURL, g.cfg.GraphTenantID)
	resp, err := g.client.PostForm(tokenURL, form)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request returned status %d: %s", resp.StatusCode, string(body))
	}

	var token graphTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	g.token = token.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return g.token, nil
}

// do issues an authenticated Graph request and returns the raw response.
func (g *GraphClient) do(method, path string, payload interface{}) (*http.Response, error) {
	token, err := g.acquireToken()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, g.cfg.GraphBaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// GetUser looks up a directory user by principal name or object id.
// Returns (nil, nil) when the user does not exist.
func (g *GraphClient) GetUser(principalName string) (*GraphUser, error) {
	resp, err := g.do(http.MethodGet, "/users/"+url.PathEscape(principalName), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("user lookup returned status %d: %s", resp.StatusCode, string(body))
	}

	var user GraphUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	return &user, nil
}

// CreateTeam creates a standard team and returns its id. Team creation is
// asynchronous on the Graph side: the id is parsed from the Content-Location
// header of the 202 response ("/teams('<id>')/operations/...").
func (g *GraphClient) CreateTeam(displayName, description string) (string, error) {
	payload := graphCreateTeamRequest{
		TemplateBind: "https://graph.microsoft.com/v1.0/teamsTemplates('standard')",
		DisplayName:  displayName,
		Description:  description,
	}

	resp, err := g.do(http.MethodPost, "/teams", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("team creation returned status %d: %s", resp.StatusCode, string(body))
	}

	location := resp.Header.Get("Content-Location")
	teamID := parseTeamID(location)
	if teamID == "" {
		return "", fmt.Errorf("could not parse team id from Content-Location %q", location)
	}
	return teamID, nil
}

// parseTeamID extracts the quoted id from a header like "/teams('abc')/operations('xyz')".
func parseTeamID(location string) string {
	start := strings.Index(location, "('")
	if start == -1 {
		return ""
	}
	rest := location[start+2:]
	end := strings.Index(rest, "')")
	if end == -1 {
		return ""
	}
	return rest[:end]
}

// CreateChannel adds a standard channel to a team and returns the channel id.
func (g *GraphClient) CreateChannel(teamID, displayName string) (string, error) {
	payload := graphCreateChannelRequest{
		DisplayName:    displayName,
		MembershipType: "standard",
	}

	resp, err := g.do(http.MethodPost, fmt.Sprintf("/teams/%s/channels", teamID), payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("channel creation returned status %d: %s", resp.StatusCode, string(body))
	}

	var channel graphChannelResponse
	if err := json.NewDecoder(resp.Body).Decode(&channel); err != nil {
		return "", fmt.Errorf("failed to decode channel response: %w", err)
	}
	return channel.ID, nil
}

// AddMember adds a directory user to a team as a regular member.
func (g *GraphClient) AddMember(teamID, userID string) error {
	payload := graphAddMemberRequest{
		ODataType: "#microsoft.graph.aadUserConversationMember",
		Roles:     []string{},
		UserBind:  fmt.Sprintf("https://graph.microsoft.com/v1.0/users('%s')", userID),
	}

	resp, err := g.do(http.MethodPost, fmt.Sprintf("/teams/%s/members", teamID), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("member add returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
