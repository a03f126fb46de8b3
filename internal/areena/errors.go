package areena

import "errors"

var (
	// ErrUnknownMediaHost marks a media id whose numeric host prefix is not
	// one of the known providers. Surfaced, never swallowed: a new prefix
	// means a new upstream provider type to support.
	ErrUnknownMediaHost = errors.New("unknown stream media host")

	// ErrNoStream means the preview response carried neither an on-demand
	// nor a live event item, so no manifest can be resolved.
	ErrNoStream = errors.New("no ongoing stream in preview response")

	// ErrNoLiveMedia means the live page descriptor had no media id for the
	// flagship broadcast.
	ErrNoLiveMedia = errors.New("no live media id in player response")

	// ErrUnknownBucket marks an alphabet bucket label missing from the
	// collation table. The table must be exhaustive for supported locales;
	// silently mis-sorting would corrupt every subsequent offset.
	ErrUnknownBucket = errors.New("alphabet bucket not in collation table")

	// ErrNoViewData means a category page had no parseable embedded view
	// payload.
	ErrNoViewData = errors.New("no view data payload in page")
)
