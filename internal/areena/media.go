package areena

import (
	"fmt"
	"strings"
)

// Media ids from publication events encode their hosting provider in a
// numeric prefix, e.g. "29-1_ab12xy" is Kaltura entry 1_ab12xy while
// "55-..."/"67-..." live on Yle's own CDNs (yleawodamd.akamaized.net,
// yleawsmpodamdip4v) whose preview manifest is already authoritative.
const (
	hostKaltura = "29"
	hostYleAWS  = "55"
	hostYlePOD  = "67"
)

// SplitMediaID routes a publication media id to its provider. It returns the
// Kaltura entry id when the secondary provider applies, "" when the primary
// manifest is authoritative, and ErrUnknownMediaHost for any prefix not yet
// known. An empty input means the event named no media at all and resolves
// to "" (primary authoritative).
func SplitMediaID(mediaID string) (string, error) {
	if mediaID == "" {
		return "", nil
	}
	host, rest, _ := strings.Cut(mediaID, "-")
	switch host {
	case hostKaltura:
		return rest, nil
	case hostYleAWS, hostYlePOD:
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMediaHost, mediaID)
}
