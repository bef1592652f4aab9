package console

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TriggerParams are the console's current preview parameters, passed to the
// cron endpoint as query parameters so the server recomputes the same duty.
type TriggerParams struct {
	Manual    bool
	Type      string
	Date      time.Time
	Reason    string
	Content   string
	GroupID   string
	Shift     int
	StaffList []string
	Person    string
}

// TriggerResponse mirrors the cron endpoint's JSON body.
type TriggerResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Duty      string `json:"duty"`
	Timestamp string `json:"timestamp"`
}

// Client calls the bot's cron endpoint on the operator's behalf.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// BuildURL resolves the full trigger URL for the given parameters. Exposed
// separately so the console can log it before the network call.
func BuildURL(endpoint string, p TriggerParams) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	q := u.Query()
	if p.Manual {
		q.Set("manual", "true")
	}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if !p.Date.IsZero() {
		q.Set("date", p.Date.Format("2006-01-02T15:04"))
	}
	if p.Reason != "" {
		q.Set("reason", p.Reason)
	}
	if p.Content != "" {
		q.Set("content", p.Content)
	}
	if p.GroupID != "" {
		q.Set("groupId", p.GroupID)
	}
	if p.Shift != 0 {
		q.Set("shift", strconv.Itoa(p.Shift))
	}
	if len(p.StaffList) > 0 {
		q.Set("staffList", strings.Join(p.StaffList, ","))
	}
	if p.Person != "" {
		q.Set("person", p.Person)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Trigger fires one announcement. The returned response may be non-nil even
// on error, carrying the server's diagnostic message.
func (c *Client) Trigger(ctx context.Context, endpoint, secret string, p TriggerParams) (*TriggerResponse, error) {
	fullURL, err := BuildURL(endpoint, p)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if !p.Manual && secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var out TriggerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	if !out.Success {
		return &out, fmt.Errorf("server returned HTTP %d: %s", resp.StatusCode, out.Message)
	}
	return &out, nil
}
