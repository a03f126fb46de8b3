// Package resolve composes the two provider resolvers into a final playable
// manifest. Each branch runs at most once per request: this is a state
// machine over (playback mode, secondary id known?), not a retry mechanism.
package resolve

import (
	"context"
	"log"

	"github.com/mtuomela/areena/internal/areena"
	"github.com/mtuomela/areena/internal/kaltura"
)

// Format tells the caller how to play or save a manifest; nothing downstream
// infers it from the URL.
type Format string

const (
	FormatHLS Format = "hls"
	FormatMPD Format = "mpd"
)

// Result is a fully resolved stream. Subtitles is nil outside download mode.
type Result struct {
	ManifestURL string
	Format      Format
	Subtitles   map[string]string
}

// Resolver orchestrates the primary (Areena) and secondary (Kaltura)
// resolvers.
type Resolver struct {
	Areena  *areena.Client
	Kaltura *kaltura.Client

	// LiveBandwidth selects the live channel variant; URLs are
	// resolution-specific. Zero means DefaultLiveBandwidth.
	LiveBandwidth int
}

// DefaultLiveBandwidth is the 720p tier; live channels top out there.
const DefaultLiveBandwidth = 4096

// flagshipChannel is the one live channel whose manifest must be looked up
// through the players API instead of the fixed URL pattern.
const flagshipChannel = "yle-areena"

// New returns a resolver over the given provider clients.
func New(areenaClient *areena.Client, kalturaClient *kaltura.Client) *Resolver {
	return &Resolver{Areena: areenaClient, Kaltura: kalturaClient}
}

// VOD resolves an on-demand manifest. When no secondary id is known the
// primary preview supplies the manifest and possibly a secondary id; a known
// or returned secondary id always supersedes the primary manifest, because
// the primary's HLS rendition of Kaltura-hosted media tops out at 720p while
// the secondary's MPD carries 1080p. mode must be ModeVOD or ModeDownload.
func (r *Resolver) VOD(ctx context.Context, yleID, kalturaID string, mode kaltura.Mode) (Result, error) {
	res := Result{Format: FormatHLS}
	if kalturaID == "" {
		manifest, err := r.Areena.FetchManifest(ctx, yleID)
		if err != nil {
			// The unknown-host condition is a forward-compatibility
			// signal; log it loudly before surfacing.
			log.Printf("resolve %s: %v", yleID, err)
			return Result{}, err
		}
		res.ManifestURL = manifest.URL
		kalturaID = manifest.KalturaID
	}
	if kalturaID != "" {
		k, err := r.Kaltura.Resolve(ctx, kalturaID, mode)
		if err != nil {
			return Result{}, err
		}
		res.ManifestURL = k.ManifestURL
		res.Format = FormatMPD
		res.Subtitles = k.Subtitles
	}
	return res, nil
}

// Live resolves a live channel manifest. Regular channels use the fixed URL
// pattern; the flagship broadcast needs a players-API lookup for its current
// media id, which then flows through the ordinary preview resolution.
func (r *Resolver) Live(ctx context.Context, channelID string, locale areena.Locale) (Result, error) {
	if channelID != flagshipChannel {
		bw := r.LiveBandwidth
		if bw == 0 {
			bw = DefaultLiveBandwidth
		}
		return Result{ManifestURL: areena.LiveTVURL(channelID, bw), Format: FormatHLS}, nil
	}
	mediaID, err := r.Areena.FetchLiveMediaID(ctx, channelID, locale)
	if err != nil {
		return Result{}, err
	}
	manifest, err := r.Areena.FetchManifest(ctx, mediaID)
	if err != nil {
		log.Printf("resolve live %s: %v", mediaID, err)
		return Result{}, err
	}
	return Result{ManifestURL: manifest.URL, Format: FormatHLS}, nil
}
