package areena

import (
	"context"
	"fmt"

	"github.com/mtuomela/areena/internal/httpclient"
)

// previewItem is one ongoing stream in a preview response.
type previewItem struct {
	ManifestURL string `json:"manifest_url"`
	MediaID     string `json:"media_id"`
}

// previewResponse carries exactly one of the two ongoing shapes; the API
// populates ongoing_ondemand for on-demand media and ongoing_event for live
// events, never both.
type previewResponse struct {
	Data struct {
		OngoingOndemand *previewItem `json:"ongoing_ondemand"`
		OngoingEvent    *previewItem `json:"ongoing_event"`
	} `json:"data"`
}

func (r *previewResponse) item() (*previewItem, error) {
	switch {
	case r.Data.OngoingOndemand != nil:
		return r.Data.OngoingOndemand, nil
	case r.Data.OngoingEvent != nil:
		return r.Data.OngoingEvent, nil
	}
	return nil, ErrNoStream
}

// Manifest holds the primary provider's resolution of a media id: its own
// manifest URL plus the secondary provider's entry id when one applies.
type Manifest struct {
	URL       string
	KalturaID string
}

// FetchManifest asks the preview API for mediaID's stream. The returned
// KalturaID is "" when the primary manifest is authoritative; an unknown
// media host prefix is a hard error (see SplitMediaID).
func (c *Client) FetchManifest(ctx context.Context, mediaID string) (Manifest, error) {
	var res previewResponse
	if err := httpclient.GetJSON(ctx, c.http, c.previewURL(mediaID), &res); err != nil {
		return Manifest{}, err
	}
	item, err := res.item()
	if err != nil {
		return Manifest{}, fmt.Errorf("preview %s: %w", mediaID, err)
	}
	if item.ManifestURL == "" {
		return Manifest{}, fmt.Errorf("preview %s: %w", mediaID, ErrNoStream)
	}
	kalturaID, err := SplitMediaID(item.MediaID)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{URL: item.ManifestURL, KalturaID: kalturaID}, nil
}

// FetchLiveMediaID resolves the flagship live broadcast's current media id
// from the players API.
func (c *Client) FetchLiveMediaID(ctx context.Context, mediaID string, locale Locale) (string, error) {
	var res struct {
		Data struct {
			Live struct {
				Item struct {
					ID string `json:"id"`
				} `json:"item"`
			} `json:"live"`
		} `json:"data"`
	}
	if err := httpclient.GetJSON(ctx, c.http, c.playerURL(mediaID, locale), &res); err != nil {
		return "", err
	}
	if res.Data.Live.Item.ID == "" {
		return "", fmt.Errorf("player %s: %w", mediaID, ErrNoLiveMedia)
	}
	return res.Data.Live.Item.ID, nil
}
