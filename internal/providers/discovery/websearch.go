package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stylist/internal/domain"
)

const (
	webSearchName           = "websearch"
	webSearchDefaultBaseURL = "https://serpapi.com"
	webSearchDefaultTimeout = 12 * time.Second
	webSearchDefaultLimit   = 10
)

type WebSearchOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// WebSearch turns generic web-search results into low-confidence candidates:
// title and URL only, with the retailer inferred from the result host.
type WebSearch struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewWebSearch(opts WebSearchOptions) (*WebSearch, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("web search api key is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = webSearchDefaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: webSearchDefaultTimeout}
	}
	return &WebSearch{apiKey: opts.APIKey, baseURL: baseURL, client: client}, nil
}

func (w *WebSearch) Name() string { return webSearchName }

type webSearchResponse struct {
	OrganicResults []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Source    string `json:"source"`
		Thumbnail string `json:"thumbnail"`
	} `json:"organic_results"`
}

func (w *WebSearch) Search(ctx context.Context, query string, opts Options) ([]domain.Candidate, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = webSearchDefaultLimit
	}
	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", limit))
	params.Set("api_key", w.apiKey)
	if opts.Region != "" {
		params.Set("gl", strings.ToLower(opts.Region))
	}
	endpoint := w.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websearch: build request: %w", err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("websearch: status %d: %w", resp.StatusCode, domain.ErrProviderFailure)
	}
	var out webSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("websearch: decode response: %w", err)
	}

	var candidates []domain.Candidate
	for _, r := range out.OrganicResults {
		title := strings.TrimSpace(r.Title)
		link := strings.TrimSpace(r.Link)
		if title == "" || link == "" {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Title:        title,
			URL:          link,
			AffiliateURL: link,
			ImageURL:     strings.TrimSpace(r.Thumbnail),
			Retailer:     retailerFromLink(r.Source, link),
			Slot:         opts.Slot,
			Source:       webSearchName,
		})
		if len(candidates) >= limit {
			break
		}
	}
	return candidates, nil
}

func retailerFromLink(source, link string) string {
	if s := strings.ToLower(strings.TrimSpace(source)); s != "" {
		return s
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

var _ Adapter = (*WebSearch)(nil)
