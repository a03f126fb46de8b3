package areena

import (
	"regexp"
	"strconv"
	"strings"
)

// iso8601Period matches an ISO-8601 duration. Adapted from the isodate
// module's period regex; comma decimal separators are accepted.
var iso8601Period = regexp.MustCompile(
	`^(?P<sign>[+-])?` +
		`P` +
		`(?:(?P<years>[0-9]+(?:[,.][0-9]+)?)Y)?` +
		`(?:(?P<months>[0-9]+(?:[,.][0-9]+)?)M)?` +
		`(?:(?P<weeks>[0-9]+(?:[,.][0-9]+)?)W)?` +
		`(?:(?P<days>[0-9]+(?:[,.][0-9]+)?)D)?` +
		`(?:T` +
		`(?:(?P<hours>[0-9]+(?:[,.][0-9]+)?)H)?` +
		`(?:(?P<minutes>[0-9]+(?:[,.][0-9]+)?)M)?` +
		`(?:(?P<seconds>[0-9]+(?:[,.][0-9]+)?)S)?` +
		`)?$`)

// DurationSeconds parses an ISO-8601 duration into a decimal total-seconds
// string, e.g. "PT1H30M" -> "5400.0". Only hours, minutes and seconds
// contribute: catalog durations are short-form media lengths, so date
// components are ignored. Malformed input degrades to "".
func DurationSeconds(stamp string) string {
	m := iso8601Period.FindStringSubmatch(stamp)
	if m == nil || stamp == "P" {
		return ""
	}
	part := func(name string) float64 {
		s := m[iso8601Period.SubexpIndex(name)]
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0
		}
		return f
	}
	seconds := part("hours")*3600 + part("minutes")*60 + part("seconds")
	return formatSeconds(seconds)
}

// formatSeconds renders f the way the listing layer expects: integral values
// keep one trailing decimal ("45.0"), fractional values print exactly.
func formatSeconds(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
