package areena

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/mtuomela/areena/internal/catalog"
)

// listServer serves a content list of total programs, honoring limit/offset,
// and records how many requests it saw.
func listServer(t *testing.T, total int) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		type pointer struct {
			Type string `json:"type"`
			URI  string `json:"uri"`
		}
		type entry struct {
			Title   string  `json:"title"`
			Pointer pointer `json:"pointer"`
		}
		var data []entry
		for i := offset; i < offset+limit && i < total; i++ {
			data = append(data, entry{
				Title:   fmt.Sprintf("Ohjelma %d", i),
				Pointer: pointer{Type: "program", URI: fmt.Sprintf("yleareena://items/1-%d", i)},
			})
		}
		resp := map[string]any{
			"data": data,
			"meta": map[string]any{"count": total},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func testClient(apiHost string) *Client {
	c := NewClient(http.DefaultClient)
	c.APIHost = apiHost
	// No pacing in tests.
	c.limiter.SetLimit(1e6)
	return c
}

func TestFetchSeriesPagination(t *testing.T) {
	srv, requests := listServer(t, 250)
	c := testClient(srv.URL)

	records, err := c.FetchSeries(context.Background(), LocaleFi, "tok", 0, 2000)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(records) != 250 {
		t.Fatalf("got %d records, want 250", len(records))
	}
	// 250 items at page size 100: exactly three pages, over-ask or not.
	if *requests != 3 {
		t.Errorf("server saw %d requests, want 3", *requests)
	}
	if records[0].Name != "Ohjelma 0" || records[249].Name != "Ohjelma 249" {
		t.Errorf("unexpected page order: first=%q last=%q", records[0].Name, records[249].Name)
	}
}

func TestFetchSeriesOffset(t *testing.T) {
	srv, _ := listServer(t, 250)
	c := testClient(srv.URL)

	records, err := c.FetchSeries(context.Background(), LocaleFi, "tok", 240, 100)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	// The server total trims the requested count only below it, so a window
	// past the end simply returns what the offset still reaches.
	if len(records) != 10 {
		t.Fatalf("got %d records, want 10", len(records))
	}
	if records[0].Name != "Ohjelma 240" {
		t.Errorf("first record = %q, want Ohjelma 240", records[0].Name)
	}
}

func TestFetchSeriesEmpty(t *testing.T) {
	srv, requests := listServer(t, 0)
	c := testClient(srv.URL)

	records, err := c.FetchSeries(context.Background(), LocaleFi, "tok", 0, 2000)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
	// The emptiness is only learned from the first response.
	if *requests != 1 {
		t.Errorf("server saw %d requests, want 1", *requests)
	}
}

func TestFetchSeriesZeroCount(t *testing.T) {
	srv, requests := listServer(t, 250)
	c := testClient(srv.URL)

	records, err := c.FetchSeries(context.Background(), LocaleFi, "tok", 0, 0)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(records) != 0 || *requests != 0 {
		t.Errorf("got %d records and %d requests, want none", len(records), *requests)
	}
}

func TestFetchSeriesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	c := testClient(srv.URL)

	if _, err := c.FetchSeries(context.Background(), LocaleFi, "tok", 0, 100); err == nil {
		t.Fatal("want error for failing page")
	}
}

func TestFetchSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		fmt.Fprint(w, `{"data":[
			{"title":"Osuma","pointer":{"type":"program","uri":"yleareena://items/1-1"}}
		],"meta":{"count":1}}`)
	}))
	t.Cleanup(srv.Close)
	c := testClient(srv.URL)

	records, err := c.FetchSearch(context.Background(), "uutiset tänään", LocaleFi)
	if err != nil {
		t.Fatalf("FetchSearch: %v", err)
	}
	if gotQuery != "uutiset tänään" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(records) != 1 || records[0].Name != "Osuma" {
		t.Errorf("records = %+v", records)
	}
}

func TestFetchCategoryRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv" {
			t.Errorf("path = %q, want /tv", r.URL.Path)
		}
		fmt.Fprint(w, rootMenuPage)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(http.DefaultClient)
	c.SiteHost = srv.URL

	records, err := c.FetchCategory(context.Background(), "/tv", LocaleFi)
	if err != nil {
		t.Fatalf("FetchCategory: %v", err)
	}
	if len(records) != 2 || records[0].Locator.Kind != catalog.KindCategory {
		t.Errorf("records = %+v", records)
	}
}

func TestFetchEpisodesSeasons(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tv/ohjelmat/1-100", func(w http.ResponseWriter, r *http.Request) {
		w.Write(seriesPage(`{"props":{"pageProps":{"view":{"tabs":[{"content":[
			{"source":{"uri":"list?token=tok-base"},
			 "filters":[{"options":[
				{"title":"Kausi 1","destination":{"uri":"list?token=tok-k1"}},
				{"title":"Kausi 2","destination":{"uri":"list?token=tok-k2"}}
			 ]}]}
		]}]}}}}`))
	})
	tokens := map[string]int{}
	mux.HandleFunc("/v1/ui/content/list", func(w http.ResponseWriter, r *http.Request) {
		tokens[r.URL.Query().Get("token")]++
		fmt.Fprint(w, `{"data":[
			{"title":"Jakso","pointer":{"type":"program","uri":"yleareena://items/1-1"}}
		],"meta":{"count":1}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := testClient(srv.URL)
	c.SiteHost = srv.URL

	records, err := c.FetchEpisodes(context.Background(), "/tv/ohjelmat/1-100", LocaleFi, false)
	if err != nil {
		t.Fatalf("FetchEpisodes: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want one per season", len(records))
	}
	if records[0].Season != "Kausi 1" || records[1].Season != "Kausi 2" {
		t.Errorf("season labels = %q, %q", records[0].Season, records[1].Season)
	}
	if tokens["tok-k1"] != 1 || tokens["tok-k2"] != 1 || tokens["tok-base"] != 0 {
		t.Errorf("token fetch counts = %v", tokens)
	}
}
