package areena

import (
	"strings"
	"testing"
)

func TestParseLocale(t *testing.T) {
	if l, err := ParseLocale("fi"); err != nil || l != LocaleFi {
		t.Errorf("ParseLocale(fi) = %v, %v", l, err)
	}
	if l, err := ParseLocale("sv"); err != nil || l != LocaleSv {
		t.Errorf("ParseLocale(sv) = %v, %v", l, err)
	}
	if _, err := ParseLocale("en"); err == nil {
		t.Error("ParseLocale(en) should fail")
	}
}

func TestSiteURLPerLocale(t *testing.T) {
	var c Client
	if got := c.siteURL(LocaleFi, "/tv"); got != "https://areena.yle.fi/tv" {
		t.Errorf("fi site url = %q", got)
	}
	if got := c.siteURL(LocaleSv, "/tv"); got != "https://arenan.yle.fi/tv" {
		t.Errorf("sv site url = %q", got)
	}
	c.SiteHost = "http://127.0.0.1:9"
	if got := c.siteURL(LocaleSv, "/tv"); got != "http://127.0.0.1:9/tv" {
		t.Errorf("overridden site url = %q", got)
	}
}

func TestPackagePath(t *testing.T) {
	if got := PackagePath(LocaleFi); got != "/tv/ohjelmat/" {
		t.Errorf("fi package path = %q", got)
	}
	if got := PackagePath(LocaleSv); got != "/tv/program/" {
		t.Errorf("sv package path = %q", got)
	}
}

func TestLiveTVURL(t *testing.T) {
	got := LiveTVURL("yle_tv1", 2500)
	want := "https://yletv-lh.akamaihd.net/i/yle_tv1/index_2500_av-p.m3u8"
	if got != want {
		t.Errorf("LiveTVURL = %q, want %q", got, want)
	}
}

func TestPageQuery(t *testing.T) {
	got := pageQuery("http://api.test/list?token=t", 100, 200)
	if got != "http://api.test/list?token=t&limit=100&offset=200" {
		t.Errorf("pageQuery = %q", got)
	}
}

func TestSearchURLEscapesQuery(t *testing.T) {
	var c Client
	got := c.searchURL("täti & setä", LocaleFi)
	if strings.Contains(got, " ") || !strings.Contains(got, "query=t%C3%A4ti+%26+set%C3%A4") {
		t.Errorf("searchURL = %q", got)
	}
}

func TestAlphabeticalTokenPerLocale(t *testing.T) {
	fi := AlphabeticalToken(LocaleFi)
	sv := AlphabeticalToken(LocaleSv)
	if fi == "" || sv == "" || fi == sv {
		t.Error("locale tokens must be distinct and non-empty")
	}
}
