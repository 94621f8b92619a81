// Package clockify is a minimal client for the Clockify REST API.
package clockify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the production Clockify API endpoint.
const DefaultBaseURL = "https://api.clockify.me/api/v1"

// listPageSize is the page size for paginated project listing.
const listPageSize = 50

// Client talks to the Clockify API. The base URL is injectable for tests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New returns a Client for the production API.
func New(apiKey string) *Client {
	return NewWithBaseURL(apiKey, DefaultBaseURL)
}

// NewWithBaseURL returns a Client pointed at an alternate endpoint.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Project is a Clockify project as returned by the projects listing.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

type timeEntryRequest struct {
	ProjectID   string `json:"projectId"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

type timeEntryResponse struct {
	ID string `json:"id"`
}

// statusHint maps an HTTP status code to actionable guidance.
func statusHint(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "invalid project ID or request parameters"
	case http.StatusUnauthorized:
		return "check your API key"
	case http.StatusForbidden:
		return "access forbidden - check workspace/project permissions"
	case http.StatusNotFound:
		return "project or workspace not found"
	case http.StatusUnprocessableEntity:
		return "invalid request - check time range and project ID"
	default:
		return "unexpected error"
	}
}

// PostTimeEntry creates a time entry and returns its Clockify identifier.
func (c *Client) PostTimeEntry(projectID string, start, end time.Time, workspaceID string) (string, error) {
	body, err := json.Marshal(timeEntryRequest{
		ProjectID:   projectID,
		Start:       start.UTC().Format(time.RFC3339),
		End:         end.UTC().Format(time.RFC3339),
		Description: "Development",
	})
	if err != nil {
		return "", fmt.Errorf("clockify: marshal time entry: %w", err)
	}

	url := fmt.Sprintf("%s/workspaces/%s/time-entries", c.baseURL, workspaceID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("clockify: build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("clockify: post time entry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("clockify: post time entry: HTTP %d: %s", resp.StatusCode, statusHint(resp.StatusCode))
	}

	var entry timeEntryResponse
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return "", fmt.Errorf("clockify: decode time entry response: %w", err)
	}
	return entry.ID, nil
}

// ListProjects returns every project in the workspace, following pagination.
func (c *Client) ListProjects(workspaceID string) ([]Project, error) {
	var all []Project

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/workspaces/%s/projects?page-size=%d&page=%d",
			c.baseURL, workspaceID, listPageSize, page)
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("clockify: build request: %w", err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("clockify: list projects: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("clockify: list projects: HTTP %d: %s", resp.StatusCode, statusHint(resp.StatusCode))
		}

		var projects []Project
		err = json.NewDecoder(resp.Body).Decode(&projects)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("clockify: decode projects response: %w", err)
		}

		all = append(all, projects...)
		if len(projects) < listPageSize {
			return all, nil
		}
	}
}
