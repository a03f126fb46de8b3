package areena

import (
	"testing"

	"github.com/mtuomela/areena/internal/catalog"
)

const contentListBody = `{
	"data": [
		{
			"title": "Eräkausi",
			"description": "Jakso 5",
			"pointer": {"type": "program", "uri": "yleareena://items/1-50552121"},
			"image": {"version": 1663056000, "id": "39-1234abcd"},
			"labels": [
				{"type": "releaseDate", "raw": "2022-09-13"},
				{"type": "duration", "raw": "PT28M49S"}
			]
		},
		{
			"title": "Sarjakokonaisuus",
			"pointer": {"type": "series", "uri": "yleareena://items/1-3339547"}
		},
		{
			"title": "Teemapaketti",
			"pointer": {"type": "package", "uri": "yleareena://items/30-888"}
		},
		{
			"title": "Tuntematon",
			"pointer": {"type": "banner", "uri": "yleareena://items/1-999"}
		},
		{
			"title": "Rikki",
			"pointer": {"type": "clip", "uri": "yleareena://items/1-777"},
			"image": "not-an-object",
			"labels": {"type": "duration"}
		}
	],
	"meta": {"count": 245}
}`

func TestParseContentList(t *testing.T) {
	records, count, err := ParseContentList([]byte(contentListBody), LocaleFi)
	if err != nil {
		t.Fatalf("ParseContentList: %v", err)
	}
	if count != 245 {
		t.Errorf("count = %d, want 245", count)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4: %+v", len(records), records)
	}

	first := records[0]
	if first.Name != "Eräkausi" || first.Description != "Jakso 5" {
		t.Errorf("first record = %+v", first)
	}
	if first.DurationSeconds != "1729.0" {
		t.Errorf("duration = %q, want 1729.0", first.DurationSeconds)
	}
	if first.ImageURL != ImageURL(1663056000, "39-1234abcd") {
		t.Errorf("image url = %q", first.ImageURL)
	}
	if first.Locator.Kind != catalog.KindProgram || first.Locator.ContentID != "1-50552121" {
		t.Errorf("first locator = %+v", first.Locator)
	}

	if records[1].Locator.Kind != catalog.KindSeries {
		t.Errorf("series kind = %v", records[1].Locator.Kind)
	}

	// Packages browse like categories and carry the locale site path.
	pkg := records[2]
	if pkg.Locator.Kind != catalog.KindCategory || pkg.Locator.ContentID != "/tv/ohjelmat/30-888" {
		t.Errorf("package locator = %+v", pkg.Locator)
	}

	// Malformed optional fields degrade, never drop the record.
	broken := records[3]
	if broken.Name != "Rikki" || broken.ImageURL != "" || broken.DurationSeconds != "" {
		t.Errorf("broken record = %+v", broken)
	}
}

func TestParseContentListPackagePathSwedish(t *testing.T) {
	body := `{"data":[{"title":"Tema","pointer":{"type":"package","uri":"yleareena://items/30-888"}}],"meta":{"count":1}}`
	records, _, err := ParseContentList([]byte(body), LocaleSv)
	if err != nil {
		t.Fatalf("ParseContentList: %v", err)
	}
	if records[0].Locator.ContentID != "/tv/program/30-888" {
		t.Errorf("content id = %q, want /tv/program/30-888", records[0].Locator.ContentID)
	}
}

func TestParseContentListMalformed(t *testing.T) {
	if _, _, err := ParseContentList([]byte(`<html>`), LocaleFi); err == nil {
		t.Fatal("want decode error for non-JSON body")
	}
}

func TestParseAlphabetical(t *testing.T) {
	body := `{"data":[],"meta":{"count":6,"resultGroups":[
		{"key":"B","count":3},
		{"key":"0-9","count":1},
		{"key":"A","count":2}
	]}}`
	records, err := ParseAlphabetical([]byte(body), LocaleFi)
	if err != nil {
		t.Fatalf("ParseAlphabetical: %v", err)
	}
	wantNames := []string{"0-9", "A", "B"}
	wantOffsets := []int{0, 1, 3}
	if len(records) != len(wantNames) {
		t.Fatalf("got %d records, want %d", len(records), len(wantNames))
	}
	tok := AlphabeticalToken(LocaleFi)
	for i, r := range records {
		if r.Name != wantNames[i] {
			t.Errorf("record %d name = %q, want %q", i, r.Name, wantNames[i])
		}
		if r.Locator.Offset != wantOffsets[i] {
			t.Errorf("record %q offset = %d, want %d", r.Name, r.Locator.Offset, wantOffsets[i])
		}
		if r.Locator.Token != tok {
			t.Errorf("record %q token differs from locale token", r.Name)
		}
	}
}
