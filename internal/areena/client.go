package areena

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mtuomela/areena/internal/catalog"
	"github.com/mtuomela/areena/internal/httpclient"
)

const (
	// pageSize is the maximum items one list request may ask for.
	pageSize = 100
	// episodesMax caps a per-season episode fetch when the caller has no
	// better estimate; the server count trims it on the first page.
	episodesMax = 2000
	// pageInterval paces successive list requests so multi-page fetches
	// don't hammer the API.
	pageInterval = 200 * time.Millisecond
)

// Client fetches and parses Areena catalog data. Methods are safe for
// concurrent use; every entity they return is request-scoped.
type Client struct {
	// SiteHost, APIHost and PreviewHost override the production endpoints
	// when non-empty. Tests point them at local servers.
	SiteHost    string
	APIHost     string
	PreviewHost string

	http    *http.Client
	limiter *rate.Limiter
}

// NewClient returns a catalog client. A nil httpClient uses the shared
// default.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = httpclient.Default()
	}
	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Every(pageInterval), 1),
	}
}

// FetchCategory lists the categories under path: the root menu for "/tv",
// the embedded subcategory tabs for anything deeper.
func (c *Client) FetchCategory(ctx context.Context, path string, locale Locale) ([]catalog.Record, error) {
	page, err := httpclient.Get(ctx, c.http, c.siteURL(locale, path))
	if err != nil {
		return nil, err
	}
	if path == "/tv" {
		return ParseRootCategories(page)
	}
	return ParseSubcategories(page)
}

// FetchSeries lists series or films for a pre-signed token, aggregating
// pages from offset until count (or the server total) is exhausted.
func (c *Client) FetchSeries(ctx context.Context, locale Locale, token string, offset, count int) ([]catalog.Record, error) {
	return c.fetchPages(ctx, c.listURL(token, locale), locale, offset, count)
}

// FetchAlphabetical lists every alphabet bucket with pre-computed pagination
// offsets in server storage order.
func (c *Client) FetchAlphabetical(ctx context.Context, locale Locale) ([]catalog.Record, error) {
	body, err := httpclient.Get(ctx, c.http, c.listURL(AlphabeticalToken(locale), locale))
	if err != nil {
		return nil, err
	}
	return ParseAlphabetical(body, locale)
}

// FetchEpisodes lists a series' episodes season by season. The series page
// supplies the listing token and season filters; each season is fetched as
// its own paginated listing and tagged with the season label.
func (c *Client) FetchEpisodes(ctx context.Context, path string, locale Locale, includeClips bool) ([]catalog.Record, error) {
	page, err := httpclient.Get(ctx, c.http, c.siteURL(locale, "/"+strings.TrimPrefix(path, "/")))
	if err != nil {
		return nil, err
	}
	base, seasons, err := ParseSeasons(page, includeClips)
	if err != nil {
		return nil, err
	}
	var out []catalog.Record
	for _, season := range seasons {
		tok := season.Token
		if tok == "" {
			tok = base
		}
		records, err := c.fetchPages(ctx, c.listURL(tok, locale), locale, 0, episodesMax)
		if err != nil {
			return nil, err
		}
		for i := range records {
			records[i].Season = season.Label
		}
		out = append(out, records...)
	}
	return out, nil
}

// FetchSearch lists results for a search query. The search API returns one
// page; no aggregation needed.
func (c *Client) FetchSearch(ctx context.Context, query string, locale Locale) ([]catalog.Record, error) {
	body, err := httpclient.Get(ctx, c.http, c.searchURL(query, locale))
	if err != nil {
		return nil, err
	}
	records, _, err := ParseContentList(body, locale)
	return records, err
}

// fetchPages aggregates list pages of up to pageSize items. The remaining
// total is re-read from every response: the loop runs until the requested
// count or the server's authoritative count is exhausted, whichever is
// smaller, so over-asking still terminates. The offset advances by the
// number of items requested per page, not the number returned. A failed
// page is fatal; partial listings are never returned.
func (c *Client) fetchPages(ctx context.Context, baseURL string, locale Locale, offset, count int) ([]catalog.Record, error) {
	var out []catalog.Record
	total := count
	for total > 0 {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		requested := total
		if requested > pageSize {
			requested = pageSize
		}
		body, err := httpclient.Get(ctx, c.http, pageQuery(baseURL, requested, offset))
		if err != nil {
			return nil, err
		}
		records, serverCount, err := ParseContentList(body, locale)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
		if serverCount < total {
			total = serverCount
		}
		total -= requested
		offset += requested
	}
	return out, nil
}
