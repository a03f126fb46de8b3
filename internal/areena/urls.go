// Package areena talks to the primary provider: it scrapes the Areena site
// for categories and tokens, queries the list/search/preview APIs, and
// normalizes every response shape into catalog records.
package areena

import (
	"fmt"
	"net/url"
)

// Locale selects the Finnish or Swedish catalog. It changes base URLs,
// package path prefixes and the alphabetical collation table.
type Locale string

const (
	LocaleFi Locale = "fi"
	LocaleSv Locale = "sv"
)

// ParseLocale validates s as a supported locale.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleFi, LocaleSv:
		return Locale(s), nil
	}
	return "", fmt.Errorf("unsupported locale %q (want fi or sv)", s)
}

// Production endpoints. Clients may override these per instance (tests do).
const (
	defaultSiteHostFi  = "https://areena.yle.fi"
	defaultSiteHostSv  = "https://arenan.yle.fi"
	defaultAPIHost     = "https://areena.api.yle.fi"
	defaultPreviewHost = "https://player.api.yle.fi"
)

// App credentials are public: they ship in the Areena web player. Each API
// surface uses its own pair.
const (
	playerAppID    = "player_static_prod"
	playerAppKey   = "8930d72170e48303cf5f3867780d549b"
	personalAppID  = "areena_web_personal_prod"
	personalAppKey = "6c64d890124735033c50099ca25dd2fe"
	searchAppID    = "areena_web_frontend_prod"
	searchAppKey   = "4622a8f8505bb056c956832a70c105d4"
)

// PackagePath returns the path prefix for package/series content,
// e.g. areena.yle.fi/tv/ohjelmat/30-123.
func PackagePath(locale Locale) string {
	if locale == LocaleSv {
		return "/tv/program/"
	}
	return "/tv/ohjelmat/"
}

// LiveTVURL returns the resolution-specific live channel manifest URL.
func LiveTVURL(mediaID string, bandwidth int) string {
	return fmt.Sprintf("https://yletv-lh.akamaihd.net/i/%s/index_%d_av-p.m3u8", mediaID, bandwidth)
}

// ImageURL constructs the artwork CDN URL for a (version, id) image pair.
func ImageURL(version int64, id string) string {
	return fmt.Sprintf("https://images.cdn.yle.fi/image/upload/"+
		"ar_16:9,w_720,c_fit,d_yle-areena.jpg,f_auto,fl_lossy,q_auto:eco/"+
		"v%d/%s.jpg", version, id)
}

// siteURL joins a site path onto the locale's site root.
func (c *Client) siteURL(locale Locale, path string) string {
	host := c.SiteHost
	if host == "" {
		if locale == LocaleSv {
			host = defaultSiteHostSv
		} else {
			host = defaultSiteHostFi
		}
	}
	return host + path
}

func (c *Client) apiHost() string {
	if c.APIHost != "" {
		return c.APIHost
	}
	return defaultAPIHost
}

func (c *Client) previewHost() string {
	if c.PreviewHost != "" {
		return c.PreviewHost
	}
	return defaultPreviewHost
}

// playerURL is the players API URL used to look up the flagship live
// broadcast descriptor.
func (c *Client) playerURL(mediaID string, locale Locale) string {
	return fmt.Sprintf("%s/v1/ui/players/%s.json?language=%s&v=9&app_id=%s&app_key=%s",
		c.apiHost(), url.PathEscape(mediaID), locale, playerAppID, playerAppKey)
}

// previewURL is the stream preview API URL for a media id.
func (c *Client) previewURL(mediaID string) string {
	return fmt.Sprintf("%s/v1/preview/%s.json?"+
		"language=fin&ssl=true&countryCode=FI&host=areenaylefi&app_id=%s&app_key=%s",
		c.previewHost(), url.PathEscape(mediaID), playerAppID, playerAppKey)
}

// listURL is the content-list API URL for a pre-signed token. The token is a
// server-issued JWT naming the query; it is carried verbatim.
func (c *Client) listURL(token string, locale Locale) string {
	return fmt.Sprintf("%s/v1/ui/content/list?token=%s&language=%s&v=9&app_id=%s&app_key=%s",
		c.apiHost(), token, locale, personalAppID, personalAppKey)
}

// searchURL is the search API URL for a query.
func (c *Client) searchURL(query string, locale Locale) string {
	return fmt.Sprintf("%s/v1/ui/search?"+
		"app_id=%s&app_key=%s&client=yle-areena-web&language=%s&v=9&"+
		"episodes=true&packages=true&query=%s&service=tv&offset=0&limit=999",
		c.apiHost(), searchAppID, searchAppKey, locale, url.QueryEscape(query))
}

// pageQuery appends the page size and offset for one list request.
func pageQuery(baseURL string, limit, offset int) string {
	return fmt.Sprintf("%s&limit=%d&offset=%d", baseURL, limit, offset)
}

// AlphabeticalToken returns the locale-specific pre-signed token for the
// all-programs-by-letter package. Signed server-side; opaque here.
func AlphabeticalToken(locale Locale) string {
	if locale == LocaleSv {
		return "eyJhbGciOiJIUzI1NiJ9.eyJzb3VyY2UiOiJodHRwczovL3Byb2dyYW1zLmFwaS55bGUuZmkvdjMvc2NoZW1hL" +
			"3YxL3BhY2thZ2VzLzMwLTQ4OC9hbz9ncm91cGluZz10aXRsZS5zdiZsYW5ndWFnZT1zdiIsInByZXNlbnRhdGl" +
			"vbk92ZXJyaWRlIjoibGlzdENhcmQiLCJhbmFseXRpY3MiOnsiY29udGV4dCI6eyJjb21zY29yZSI6eyJ5bGVfc" +
			"mVmZXJlciI6InR2LnZpZXcuNTctUnl5Sm53YjliLmFsbGFfdHZfcHJvZ3JhbS5hX28udW50aXRsZWRfbGlzdCI" +
			"sInlsZV9wYWNrYWdlX2lkIjoiMzAtNDg4In19fX0.v4kayxYaMtPxseJCAKrueSHwNca7nVmvjECwMdhQMkQ"
	}
	return "eyJhbGciOiJIUzI1NiJ9.eyJzb3VyY2UiOiJodHRwczovL3BhY2thZ2VzLmFwaS55bGUuZmkvdjQvcGFja2Fn" +
		"ZXMvMzAtNDg4L2FvLmpzb24_Z3JvdXBpbmc9dGl0bGUuZmkmbGFuZ3VhZ2U9ZmkiLCJwcmVzZW50YXRpb25Pd" +
		"mVycmlkZSI6Imxpc3RDYXJkIiwiYW5hbHl0aWNzIjp7ImNvbnRleHQiOnsiY29tc2NvcmUiOnsieWxlX3JlZm" +
		"VyZXIiOiJ0di52aWV3LjU3LVJ5eUpud2I5Yi5rYWlra2lfdHZfb2hqZWxtYXQuYV9vLnVudGl0bGVkX2xpc3Q" +
		"iLCJ5bGVfcGFja2FnZV9pZCI6IjMwLTQ4OCJ9fX19.3aS55Qzc98NXw3s_05dwspnKO5uKWktr8FYaDOzo1P0"
}
