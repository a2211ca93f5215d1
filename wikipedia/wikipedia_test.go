package wikipedia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// rerouteTransport redirects every request to a local test server while
// preserving the original path and query.
type rerouteTransport struct {
	serverURL string
}

func (t *rerouteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u, err := url.Parse(t.serverURL)
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.URL.Scheme = u.Scheme
	clone.URL.Host = u.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(context.Background(), WithHTTPClient(&http.Client{
		Transport: &rerouteTransport{serverURL: server.URL},
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		wantDescription string
		wantThumbnail   string
		wantNil         bool
	}{
		{
			name:            "full entry",
			status:          http.StatusOK,
			body:            `{"description":"Polish-French physicist and chemist","thumbnail":{"source":"https://upload.wikimedia.org/marie.jpg"}}`,
			wantDescription: "Polish-French physicist and chemist",
			wantThumbnail:   "https://upload.wikimedia.org/marie.jpg",
		},
		{
			name:            "entry without thumbnail",
			status:          http.StatusOK,
			body:            `{"description":"English mathematician"}`,
			wantDescription: "English mathematician",
		},
		{
			name:    "disambiguation entry",
			status:  http.StatusOK,
			body:    `{"description":"Topics referred to by the same term","type":"disambiguation"}`,
			wantNil: true,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"type":"https://mediawiki.org/wiki/HyperSwitch/errors/not_found","title":"Not found."}`,
			wantNil: true,
		},
		{
			name:    "non-JSON error page",
			status:  http.StatusServiceUnavailable,
			body:    `<html>upstream unavailable</html>`,
			wantNil: true,
		},
		{
			name:    "empty description",
			status:  http.StatusOK,
			body:    `{"description":""}`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Path; got != "/api/rest_v1/page/summary/Marie Curie" {
					t.Errorf("request path = %q, want summary path with escaped title", got)
				}
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Fatal(err)
				}
			})

			bio, err := client.Summary(context.Background(), "Marie Curie")
			if err != nil {
				t.Fatalf("Summary() error = %v", err)
			}
			if tt.wantNil {
				if bio != nil {
					t.Fatalf("Summary() = %+v, want nil", bio)
				}
				return
			}
			if bio == nil {
				t.Fatal("Summary() = nil, want bio")
			}
			if bio.Description != tt.wantDescription {
				t.Errorf("Description = %q, want %q", bio.Description, tt.wantDescription)
			}
			switch {
			case tt.wantThumbnail == "" && bio.Thumbnail != nil:
				t.Errorf("Thumbnail = %+v, want nil", bio.Thumbnail)
			case tt.wantThumbnail != "" && (bio.Thumbnail == nil || bio.Thumbnail.Source != tt.wantThumbnail):
				t.Errorf("Thumbnail = %+v, want source %q", bio.Thumbnail, tt.wantThumbnail)
			}
		})
	}
}

func TestSummaryTransportError(t *testing.T) {
	client, err := New(context.Background(), WithHTTPClient(&http.Client{
		Transport: &failingTransport{},
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := client.Summary(context.Background(), "Marie Curie"); err == nil {
		t.Fatal("Summary() error = nil, want transport error")
	}
}

type failingTransport struct{}

func (*failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}
