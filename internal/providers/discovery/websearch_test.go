package discovery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type stubTransport struct {
	lastURL string
	status  int
	payload any
	err     error
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.lastURL = req.URL.String()
	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	body, _ := json.Marshal(s.payload)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(string(body))),
		Header:     http.Header{},
	}, nil
}

func TestWebSearchRequiresAPIKey(t *testing.T) {
	if _, err := NewWebSearch(WebSearchOptions{}); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestWebSearchMapsResults(t *testing.T) {
	transport := &stubTransport{payload: map[string]any{
		"organic_results": []any{
			map[string]any{
				"title":     "Red Carpet Gown",
				"link":      "https://www.zalando.nl/red-carpet-gown.html",
				"source":    "Zalando",
				"thumbnail": "https://img.zalando.nl/gown.jpg",
			},
			map[string]any{"title": "", "link": "https://skip.me/x"},
			map[string]any{
				"title": "Strappy Sandals",
				"link":  "https://www.asos.com/sandals/prd/100.html",
			},
		},
	}}
	ws, err := NewWebSearch(WebSearchOptions{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})
	if err != nil {
		t.Fatalf("new websearch: %v", err)
	}
	got, err := ws.Search(context.Background(), "Zendaya red carpet gala", Options{Slot: "dress", Region: "NL"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	first := got[0]
	if first.Title != "Red Carpet Gown" || first.Retailer != "zalando" || first.Slot != "dress" {
		t.Fatalf("unexpected candidate: %+v", first)
	}
	if first.Price != nil {
		t.Fatalf("web search candidates carry no price")
	}
	if got[1].Retailer != "asos.com" {
		t.Fatalf("retailer fallback from host = %q, want asos.com", got[1].Retailer)
	}
	if !strings.Contains(transport.lastURL, "gl=nl") {
		t.Fatalf("region not propagated: %q", transport.lastURL)
	}
}

func TestWebSearchNon200(t *testing.T) {
	transport := &stubTransport{status: http.StatusTooManyRequests, payload: map[string]any{}}
	ws, _ := NewWebSearch(WebSearchOptions{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})
	if _, err := ws.Search(context.Background(), "anything", Options{}); err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestWebSearchHonorsLimit(t *testing.T) {
	var results []any
	for i := 0; i < 8; i++ {
		results = append(results, map[string]any{
			"title": "Item",
			"link":  "https://shop.example/item.html",
		})
	}
	transport := &stubTransport{payload: map[string]any{"organic_results": results}}
	ws, _ := NewWebSearch(WebSearchOptions{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})
	got, err := ws.Search(context.Background(), "q", Options{Limit: 3})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d, want 3", len(got))
	}
}
