package scraper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestFetchPage(t *testing.T) {
	fixture, err := os.ReadFile("testdata/listing_page.html")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantError   bool
		wantSlots   int
		wantLast    bool
	}{
		{
			name:        "listing page with courts",
			htmlContent: string(fixture),
			statusCode:  http.StatusOK,
			wantSlots:   13,
		},
		{
			name:        "last page without court tables",
			htmlContent: `<html><body><div id="main-content-tabs"></div></body></html>`,
			statusCode:  http.StatusOK,
			wantSlots:   0,
			wantLast:    true,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusInternalServerError,
			wantError:  true,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "zhs-crawler") {
					t.Errorf("User-Agent = %q, should contain 'zhs-crawler'", userAgent)
				}
				q := r.URL.Query()
				if q.Get("action") != "showReservations" || q.Get("type_id") != "1" {
					t.Errorf("query = %q, missing listing parameters", r.URL.RawQuery)
				}
				if q.Get("date") != "2022-10-15" || q.Get("page") != "2" {
					t.Errorf("query = %q, wrong date/page", r.URL.RawQuery)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			s := New(server.URL)
			slots, lastPage, err := s.FetchPage("2022-10-15", 2)

			if tt.wantError {
				if err == nil {
					t.Error("FetchPage() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchPage() unexpected error: %v", err)
			}
			if len(slots) != tt.wantSlots {
				t.Errorf("FetchPage() returned %d slots, want %d", len(slots), tt.wantSlots)
			}
			if lastPage != tt.wantLast {
				t.Errorf("FetchPage() lastPage = %v, want %v", lastPage, tt.wantLast)
			}
		})
	}
}

func TestFetchPageRejectsInvalidPageNumber(t *testing.T) {
	s := New("https://test.example.com/reservations.php")
	if _, _, err := s.FetchPage("2022-10-15", 0); err == nil {
		t.Error("FetchPage(0) expected error")
	}
}
