package areena

import (
	"fmt"
	"sort"

	"github.com/mtuomela/areena/internal/catalog"
)

// storageAlphabet is the order alphabetical buckets are stored server-side,
// which is what pagination offsets must be computed against. It is not the
// order the site lists them (A-Z, Ä, Å, Ö, Þ, Ž) nor naive code-point order:
// Þ sits between T and U, and Ž/Å/Ä/Ö trail the Latin letters.
var storageAlphabet = []string{
	"0-9", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "Þ", "U", "V", "W", "X", "Y", "Z",
	"Ž", "Å", "Ä", "Ö",
}

var alphabetRank = func() map[string]int {
	m := make(map[string]int, len(storageAlphabet))
	for i, s := range storageAlphabet {
		m[s] = i
	}
	return m
}()

// Sequence reorders bucket records into storage order and assigns each a
// cumulative pagination offset equal to the item count of all preceding
// buckets. A bucket label missing from the table is a configuration error:
// the table must stay exhaustive, or every later offset silently shifts.
func Sequence(buckets []catalog.Record) error {
	for _, b := range buckets {
		if _, ok := alphabetRank[b.Name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBucket, b.Name)
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return alphabetRank[buckets[i].Name] < alphabetRank[buckets[j].Name]
	})
	offset := 0
	for i := range buckets {
		buckets[i].Locator.Offset = offset
		offset += buckets[i].Locator.Count
	}
	return nil
}
