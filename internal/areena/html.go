package areena

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mtuomela/areena/internal/catalog"
)

// categorySkipMarkers exclude menu entries that are not browsable categories:
// absolute links and live channels (":"), query-parameter views ("?"), and
// the per-locale "all programs" aliases which duplicate the alphabetical
// listing. Exclusion list, not a generic filter.
var categorySkipMarkers = []string{":", "?", "kaikki", "alla"}

// ParseRootCategories scrapes the home page menu bar for the category list.
func ParseRootCategories(page []byte) ([]catalog.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse category page: %w", err)
	}
	var out []catalog.Record
	doc.Find("li.menu__item a").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		href, _ := s.Attr("href")
		if name == "" || hasSkipMarker(href) {
			return
		}
		out = append(out, catalog.Record{
			Name: name,
			Locator: catalog.Locator{
				Kind:      catalog.KindCategory,
				ContentID: href,
			},
		})
	})
	return out, nil
}

func hasSkipMarker(href string) bool {
	for _, m := range categorySkipMarkers {
		if strings.Contains(href, m) {
			return true
		}
	}
	return false
}

// packageView is the embedded JSON a category page stores in the
// package-view element's data-view attribute.
type packageView struct {
	Tabs []struct {
		Content []viewEntry `json:"content"`
	} `json:"tabs"`
}

type viewEntry struct {
	Title    string `json:"title"`
	Controls []struct {
		Destination struct {
			URI string `json:"uri"`
		} `json:"destination"`
	} `json:"controls"`
	Source struct {
		URI string `json:"uri"`
	} `json:"source"`
	Filters []struct {
		Options []struct {
			Title       string `json:"title"`
			Destination struct {
				URI string `json:"uri"`
			} `json:"destination"`
		} `json:"options"`
	} `json:"filters"`
}

// ParseSubcategories extracts the subcategory tabs from a category page's
// embedded view payload. Entries missing a destination or source token are
// skipped, not failed: one broken tab must not hide the rest.
func ParseSubcategories(page []byte) ([]catalog.Record, error) {
	view, err := extractPackageView(page)
	if err != nil {
		return nil, err
	}
	if len(view.Tabs) == 0 {
		return nil, fmt.Errorf("%w: no tabs", ErrNoViewData)
	}
	var out []catalog.Record
	for _, entry := range view.Tabs[0].Content {
		if entry.Title == "" || len(entry.Controls) == 0 {
			continue
		}
		dest := entry.Controls[0].Destination.URI
		if dest == "" {
			continue
		}
		id := lastPathSegment(dest)
		tok := tokenFromURI(entry.Source.URI)
		if id == "" || tok == "" {
			continue
		}
		out = append(out, catalog.Record{
			Name: entry.Title,
			Locator: catalog.Locator{
				Kind:      catalog.KindSubcategory,
				ContentID: id,
				Token:     tok,
			},
		})
	}
	return out, nil
}

// extractPackageView locates the package-view element and decodes its
// data-view JSON attribute.
func extractPackageView(page []byte) (*packageView, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse category page: %w", err)
	}
	raw, ok := doc.Find("div.package-view").Attr("data-view")
	if !ok || raw == "" {
		return nil, ErrNoViewData
	}
	var view packageView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, fmt.Errorf("decode view data: %w", err)
	}
	return &view, nil
}

// Season is one selectable season filter on a series page. An empty Token
// means "fetch the unfiltered series listing".
type Season struct {
	Label string
	Token string
}

// ParseSeasons reads the series page's script-embedded page data blob and
// returns the base listing token plus the season filter list. When the page
// defines no seasons and clip inclusion was requested, one pseudo-season
// with an empty token stands for the unfiltered listing.
func ParseSeasons(page []byte, includeClips bool) (string, []Season, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", nil, fmt.Errorf("parse series page: %w", err)
	}
	raw := doc.Find("script#__NEXT_DATA__").Text()
	if raw == "" {
		return "", nil, ErrNoViewData
	}
	var blob struct {
		Props struct {
			PageProps struct {
				View struct {
					Tabs []struct {
						Content []viewEntry `json:"content"`
					} `json:"tabs"`
				} `json:"view"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return "", nil, fmt.Errorf("decode page data: %w", err)
	}

	var base string
	var seasons []Season
	for _, tab := range blob.Props.PageProps.View.Tabs {
		for _, entry := range tab.Content {
			if base == "" {
				base = tokenFromURI(entry.Source.URI)
			}
			for _, f := range entry.Filters {
				for _, opt := range f.Options {
					tok := tokenFromURI(opt.Destination.URI)
					if opt.Title == "" || tok == "" {
						continue
					}
					seasons = append(seasons, Season{Label: opt.Title, Token: tok})
				}
			}
		}
	}
	if base == "" {
		return "", nil, fmt.Errorf("%w: no listing token", ErrNoViewData)
	}
	if len(seasons) == 0 && includeClips {
		seasons = []Season{{}}
	}
	return base, seasons, nil
}

// tokenFromURI extracts a list token from a URI, or "" when the URI carries
// none. Unlike ExtractToken this is strict: scraped view entries routinely
// point at non-API destinations.
func tokenFromURI(uri string) string {
	if !strings.Contains(uri, "token=") {
		return ""
	}
	return ExtractToken(uri)
}

// lastPathSegment returns the final segment of a URI path.
func lastPathSegment(uri string) string {
	uri = strings.TrimSuffix(uri, "/")
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
