package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultHost = "jsearch.p.rapidapi.com"

	DatePostedMonth = "month"
)

// Job is one raw posting as returned by the JSearch API.
type Job struct {
	ID             string `json:"job_id"`
	Title          string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	City           string `json:"job_city"`
	Country        string `json:"job_country"`
	Description    string `json:"job_description"`
	ApplyLink      string `json:"job_apply_link"`
	PostedAt       string `json:"job_posted_at_datetime_utc"`
	EmploymentType string `json:"job_employment_type"`
	IsRemote       bool   `json:"job_is_remote"`
}

type searchResponse struct {
	Status string `json:"status"`
	Data   []Job  `json:"data"`
}

type Query struct {
	Text       string
	Page       int
	NumPages   int
	DatePosted string
}

func (q Query) values() url.Values {
	page, numPages := q.Page, q.NumPages
	if page < 1 {
		page = 1
	}
	if numPages < 1 {
		numPages = 1
	}

	v := url.Values{}
	v.Set("query", q.Text)
	v.Set("page", strconv.Itoa(page))
	v.Set("num_pages", strconv.Itoa(numPages))
	if q.DatePosted != "" {
		v.Set("date_posted", q.DatePosted)
	}
	return v
}

// Searcher is the contract the opportunity service depends on.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Job, error)
}

type Client struct {
	apiKey  string
	host    string
	baseURL string
	client  *http.Client
}

var _ Searcher = &Client{}

// NewClient builds a RapidAPI JSearch client. baseURL is empty outside tests.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://" + DefaultHost
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		host:    DefaultHost,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Search(ctx context.Context, q Query) ([]Job, error) {
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, q.values().Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jsearch error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return out.Data, nil
}
