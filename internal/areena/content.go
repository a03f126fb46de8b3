package areena

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mtuomela/areena/internal/catalog"
)

// listResponse mirrors the content-list / search API envelope. Image and
// labels stay raw: both arrive in structurally inconsistent shapes and are
// decoded per record with silent degradation.
type listResponse struct {
	Data []contentEntry `json:"data"`
	Meta struct {
		Count        int `json:"count"`
		ResultGroups []struct {
			Key   string `json:"key"`
			Count int    `json:"count"`
		} `json:"resultGroups"`
	} `json:"meta"`
}

type contentEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Pointer     struct {
		Type string `json:"type"`
		URI  string `json:"uri"`
	} `json:"pointer"`
	Image  json.RawMessage `json:"image"`
	Labels json.RawMessage `json:"labels"`
}

// pointerKinds maps the API's pointer.type tag onto the closed locator kind
// set. Packages need further scraping, so they browse like categories.
var pointerKinds = map[string]catalog.Kind{
	"program": catalog.KindProgram,
	"clip":    catalog.KindClip,
	"series":  catalog.KindSeries,
	"package": catalog.KindCategory,
	"live":    catalog.KindLive,
}

// ParseContentList maps one content-list or search response to records plus
// the server-authoritative total count. Records with an unknown pointer type
// are skipped; optional fields degrade to empty values, never abort a record.
func ParseContentList(data []byte, locale Locale) ([]catalog.Record, int, error) {
	var res listResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, 0, fmt.Errorf("decode content list: %w", err)
	}
	out := make([]catalog.Record, 0, len(res.Data))
	for _, entry := range res.Data {
		kind, ok := pointerKinds[entry.Pointer.Type]
		if !ok {
			continue
		}
		id := lastPathSegment(entry.Pointer.URI)
		if id == "" {
			continue
		}
		if entry.Pointer.Type == "package" {
			// Packages are scraped from the site, not listed from the API,
			// so the locator needs the full locale-specific path.
			id = PackagePath(locale) + id
		}
		out = append(out, catalog.Record{
			Name:            entry.Title,
			Description:     entry.Description,
			DurationSeconds: durationFromLabels(entry.Labels),
			ImageURL:        imageFromRaw(entry.Image),
			Locator: catalog.Locator{
				Kind:      kind,
				ContentID: id,
			},
		})
	}
	return out, res.Meta.Count, nil
}

// imageFromRaw builds the artwork URL from an image blob, or "" when the
// version/id metadata is missing or malformed.
func imageFromRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var img struct {
		Version int64  `json:"version"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(raw, &img); err != nil || img.Version == 0 || img.ID == "" {
		return ""
	}
	return ImageURL(img.Version, img.ID)
}

// durationFromLabels scans the label list for the first duration-typed entry
// and parses its raw ISO-8601 value. Any structural surprise degrades to "".
func durationFromLabels(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var labels []struct {
		Type string `json:"type"`
		Raw  string `json:"raw"`
	}
	if err := json.Unmarshal(raw, &labels); err != nil {
		return ""
	}
	for _, l := range labels {
		if strings.EqualFold(l.Type, "duration") {
			return DurationSeconds(l.Raw)
		}
	}
	return ""
}

// ParseAlphabetical maps the grouped all-programs response to one bucket
// record per letter, re-sequenced into server storage order with cumulative
// offsets (see Sequence).
func ParseAlphabetical(data []byte, locale Locale) ([]catalog.Record, error) {
	var res listResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode alphabetical list: %w", err)
	}
	tok := AlphabeticalToken(locale)
	out := make([]catalog.Record, 0, len(res.Meta.ResultGroups))
	for _, g := range res.Meta.ResultGroups {
		out = append(out, catalog.Record{
			Name: g.Key,
			Locator: catalog.Locator{
				Kind:      catalog.KindSubcategory,
				ContentID: "-",
				Token:     tok,
				Count:     g.Count,
			},
		})
	}
	if err := Sequence(out); err != nil {
		return nil, err
	}
	return out, nil
}
