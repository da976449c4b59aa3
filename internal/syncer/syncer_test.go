package syncer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"shelfsync/internal/config"
	"shelfsync/internal/komga"
	"shelfsync/internal/syncer"
)

// fakeKomga serves just enough of the catalog API for orchestrator tests.
type fakeKomga struct {
	mu            sync.Mutex
	series        []komga.Series
	books         map[string][]komga.Book
	cover         []byte
	coverFetches  int
	seriesPatches map[string]json.RawMessage
	bookPatches   map[string]json.RawMessage
	failSeries    map[string]bool
}

func newFakeKomga() *fakeKomga {
	return &fakeKomga{
		books:         map[string][]komga.Book{},
		cover:         []byte("jpeg-bytes"),
		seriesPatches: map[string]json.RawMessage{},
		bookPatches:   map[string]json.RawMessage{},
		failSeries:    map[string]bool{},
	}
}

func (f *fakeKomga) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/series/list", func(w http.ResponseWriter, r *http.Request) {
		writeContent(w, f.series)
	})
	mux.HandleFunc("/api/v1/books/list", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Condition struct {
				AllOf []map[string]struct {
					Operator string `json:"operator"`
					Value    string `json:"value"`
				} `json:"allOf"`
			} `json:"condition"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var seriesID string
		for _, clause := range body.Condition.AllOf {
			if cond, ok := clause["seriesId"]; ok {
				seriesID = cond.Value
			}
		}
		writeContent(w, f.books[seriesID])
	})
	mux.HandleFunc("/api/v1/series/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/series/")
		parts := strings.Split(rest, "/")
		switch {
		case len(parts) == 2 && parts[1] == "thumbnail" && r.Method == http.MethodGet:
			f.mu.Lock()
			f.coverFetches++
			f.mu.Unlock()
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(f.cover)
		case len(parts) == 2 && parts[1] == "metadata" && r.Method == http.MethodPatch:
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failSeries[parts[0]] {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			raw, _ := readAll(r)
			f.seriesPatches[parts[0]] = raw
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/v1/books/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/books/")
		parts := strings.Split(rest, "/")
		if len(parts) == 2 && parts[1] == "metadata" && r.Method == http.MethodPatch {
			f.mu.Lock()
			defer f.mu.Unlock()
			raw, _ := readAll(r)
			f.bookPatches[parts[0]] = raw
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	})
	return mux
}

func writeContent(w http.ResponseWriter, items any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"content": items})
}

func readAll(r *http.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	err := json.NewDecoder(r.Body).Decode(&raw)
	return raw, err
}

func newTestSyncer(t *testing.T, fake *fakeKomga, cfg *config.Config) *syncer.Syncer {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	client, err := komga.New(server.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	s, err := syncer.New(cfg, client, nil, nil)
	if err != nil {
		t.Fatalf("syncer: %v", err)
	}
	return s
}

func testSeries(id, name, url string, count int) komga.Series {
	return komga.Series{
		ID:         id,
		Name:       name,
		URL:        url,
		BooksCount: count,
		Metadata: komga.SeriesMetadata{
			Title:          name,
			Status:         "ONGOING",
			TotalBookCount: count,
		},
	}
}
