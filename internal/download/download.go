// Package download saves resolved streams and their subtitles to disk. It is
// the local-filesystem collaborator of the resolution pipeline: resume is a
// plain Range request from the current file size, and a 416 response means
// the file is already complete, not an error.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mtuomela/areena/internal/httpclient"
)

// Fetch downloads url to path, appending from the current file size when the
// file already partially exists. Returns nil on 416 Range Not Satisfiable:
// resuming a completed download has nothing left to do.
func Fetch(ctx context.Context, client *http.Client, url, path string) error {
	if client == nil {
		client = httpclient.Default()
	}
	var offset int64
	if fi, err := os.Stat(path); err == nil {
		offset = fi.Size()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	httpclient.SetHeaders(req)
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable {
		return nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("get %s: %s", url, resp.Status)
	}
	if offset > 0 && resp.StatusCode == http.StatusOK {
		// Server ignored the range; start over rather than append a
		// duplicate prefix.
		offset = 0
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if offset == 0 {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}

// Subtitles downloads every subtitle next to videoPath, replacing existing
// files. The map key is the per-language file suffix from the resolver
// (e.g. ".suomi-fin.sub").
func Subtitles(ctx context.Context, client *http.Client, subs map[string]string, videoPath string) error {
	for suffix, url := range subs {
		path := SubtitlePath(videoPath, suffix)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		if err := Fetch(ctx, client, url, path); err != nil {
			return fmt.Errorf("subtitle %s: %w", suffix, err)
		}
	}
	return nil
}

// SubtitlePath replaces videoPath's extension with the subtitle suffix.
func SubtitlePath(videoPath, suffix string) string {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return base + suffix
}

// FilePath builds the destination path for a download, replacing path
// separators in the title so it stays a single file name.
func FilePath(dir, title, ext string) string {
	name := strings.ReplaceAll(title+ext, "/", ":")
	return filepath.Join(dir, name)
}
