package twstalker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestExtractHandle(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"bare profile", "https://twitter.com/realmarie", "realmarie"},
		{"trailing slash", "https://twitter.com/realmarie/", "realmarie"},
		{"status page", "https://twitter.com/realmarie/status/123", "realmarie"},
		{"query string", "https://twitter.com/realmarie?lang=en", "realmarie"},
		{"http scheme", "http://twitter.com/a_b", "a_b"},
		{"x.com not recognized", "https://x.com/realmarie", ""},
		{"not a profile URL", "https://example.com/realmarie", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractHandle(tt.url); got != tt.want {
				t.Errorf("ExtractHandle(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

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

func newTestClient(t *testing.T, page string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/realmarie" {
			t.Errorf("request path = %q, want /realmarie", r.URL.Path)
		}
		if _, err := w.Write([]byte(page)); err != nil {
			t.Fatal(err)
		}
	}))
	t.Cleanup(server.Close)

	client, err := New(context.Background(), WithHTTPClient(&http.Client{
		Transport: &rerouteTransport{serverURL: server.URL},
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

const profilePage = `<html><body>
	<div class="profile">
		<h1>Marie Curie</h1>
		<span>Science. Radium. Two Nobel Prizes.</span>
		<span>@realmarie</span>
		<span>Paris, France</span>
	</div>
	<img class="banner" src="https://cdn.example/banner.jpg">
	<img class="img-thumbnail" src="https://cdn.example/marie.jpg">
</body></html>`

func TestBio(t *testing.T) {
	client := newTestClient(t, profilePage)

	bio, err := client.Bio(context.Background(), "realmarie")
	if err != nil {
		t.Fatalf("Bio() error = %v", err)
	}
	if bio.Description != "Science. Radium. Two Nobel Prizes." {
		t.Errorf("Description = %q, want first span after h1", bio.Description)
	}
	if bio.Thumbnail == nil || bio.Thumbnail.Source != "https://cdn.example/marie.jpg" {
		t.Errorf("Thumbnail = %+v, want thumbnail-class img src", bio.Thumbnail)
	}
}

func TestBioMissingStructure(t *testing.T) {
	client := newTestClient(t, `<html><body><p>profile unavailable</p></body></html>`)

	bio, err := client.Bio(context.Background(), "realmarie")
	if err != nil {
		t.Fatalf("Bio() error = %v", err)
	}
	if bio.Description != "" {
		t.Errorf("Description = %q, want empty for missing structure", bio.Description)
	}
	if bio.Thumbnail != nil {
		t.Errorf("Thumbnail = %+v, want nil", bio.Thumbnail)
	}
}

func TestLocation(t *testing.T) {
	client := newTestClient(t, profilePage)

	location, err := client.Location(context.Background(), "realmarie")
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if location != "Paris, France" {
		t.Errorf("Location() = %q, want %q", location, "Paris, France")
	}
}

func TestLocationChainTooShort(t *testing.T) {
	// Only two spans follow the h1: the chain must break and yield "".
	client := newTestClient(t, `<html><body>
		<h1>Marie Curie</h1>
		<span>bio</span>
		<span>@realmarie</span>
	</body></html>`)

	location, err := client.Location(context.Background(), "realmarie")
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if location != "" {
		t.Errorf("Location() = %q, want empty for short sibling chain", location)
	}
}

func TestLocationChainInterrupted(t *testing.T) {
	// A non-span element in the chain must break it.
	client := newTestClient(t, `<html><body>
		<h1>Marie Curie</h1>
		<span>bio</span>
		<b>@realmarie</b>
		<span>Paris, France</span>
	</body></html>`)

	location, err := client.Location(context.Background(), "realmarie")
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if location != "" {
		t.Errorf("Location() = %q, want empty for interrupted sibling chain", location)
	}
}

func TestBioFetchFailure(t *testing.T) {
	client, err := New(context.Background(), WithHTTPClient(&http.Client{
		Transport: &failingTransport{},
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := client.Bio(context.Background(), "realmarie"); err == nil {
		t.Fatal("Bio() error = nil, want fetch error")
	}
}

type failingTransport struct{}

func (*failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}
