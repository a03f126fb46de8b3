// Package catalog defines the canonical media record produced by the Areena
// catalog parsers, independent of which page or API response it came from.
// Records are request-scoped: built fresh from network responses, handed to
// the caller, and discarded (or serialized into the listing cache).
package catalog

// Kind tags the navigation/playback role of a record. The set is closed;
// dispatch on it happens once, at the driver boundary.
type Kind string

const (
	KindCategory    Kind = "category"
	KindSubcategory Kind = "subcategory"
	KindSeries      Kind = "series"
	KindProgram     Kind = "program"
	KindClip        Kind = "clip"
	KindVideo       Kind = "video"
	KindLive        Kind = "live"
	KindResults     Kind = "results"
	KindSearch      Kind = "search"
	KindSettings    Kind = "settings"
	KindDownload    Kind = "download"
	KindChannel     Kind = "channel"
	KindMenu        Kind = "menu"
)

// Locator is the opaque navigation/resolution key attached to a record.
// ContentID mostly mirrors the site path (e.g. "1-12345" for
// areena.yle.fi/1-12345); KalturaID is only set when the publication event
// already named the secondary provider's entry.
type Locator struct {
	Kind      Kind   `json:"kind"`
	ContentID string `json:"content_id,omitempty"`
	Token     string `json:"token,omitempty"`  // pre-signed API list token
	Offset    int    `json:"offset,omitempty"` // pagination offset for the next fetch
	Count     int    `json:"count,omitempty"`  // expected result count for the next fetch
	KalturaID string `json:"kaltura_id,omitempty"`
}

// Record is one normalized listing item.
type Record struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationSeconds string  `json:"duration_seconds,omitempty"` // decimal seconds, e.g. "5400.0"
	ImageURL        string  `json:"image_url,omitempty"`
	Season          string  `json:"season,omitempty"`
	Episode         string  `json:"episode,omitempty"`
	Locator         Locator `json:"locator"`
}

// placeholderKinds are the locator kinds that stand for a local action rather
// than remote content and therefore carry no content id.
var placeholderKinds = map[Kind]bool{
	KindMenu:     true,
	KindSearch:   true,
	KindSettings: true,
}

// Valid reports whether the locator satisfies the record invariant:
// a non-empty kind, and a content id for every kind that addresses content.
func (l Locator) Valid() bool {
	if l.Kind == "" {
		return false
	}
	if placeholderKinds[l.Kind] {
		return true
	}
	return l.ContentID != ""
}
