// Command areena browses the Yle Areena catalog and resolves playable stream
// manifests.
//
//	category [path]       list categories (root menu for /tv, tabs otherwise)
//	series <token>        list series/films for a pre-signed listing token
//	alphabetical          list alphabet buckets with pre-computed offsets
//	episodes <path>       list a series' episodes season by season
//	search <query>        list search results
//	live <channel-id>     resolve a live channel manifest
//	vod <yle-id>          resolve an on-demand manifest
//	download <yle-id>     resolve in download mode and save to disk
//	downloads             list completed downloads
//	clear-cache           evict every cached listing
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mtuomela/areena/internal/areena"
	"github.com/mtuomela/areena/internal/catalog"
	"github.com/mtuomela/areena/internal/config"
	"github.com/mtuomela/areena/internal/download"
	"github.com/mtuomela/areena/internal/httpclient"
	"github.com/mtuomela/areena/internal/kaltura"
	"github.com/mtuomela/areena/internal/memcache"
	"github.com/mtuomela/areena/internal/resolve"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: areena <command> [flags] [args]

Commands:
  category [path]        list categories (default /tv)
  series <token>         list series/films (-offset, -count)
  alphabetical           list alphabet buckets with offsets
  episodes <path>        list episodes (-clips includes clips)
  search <query>         list search results
  live <channel-id>      resolve live manifest
  vod <yle-id>           resolve on-demand manifest (-kaltura id)
  download <yle-id>      download media (-title name, -kaltura id)
  downloads              list completed downloads
  clear-cache            evict cached listings
`)
	os.Exit(2)
}

type app struct {
	cfg      *config.Config
	locale   areena.Locale
	client   *areena.Client
	resolver *resolve.Resolver
	cache    *memcache.Cache
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	locale, err := areena.ParseLocale(cfg.Language)
	if err != nil {
		log.Fatal(err)
	}

	hc := httpclient.WithTimeout(cfg.HTTPTimeout)
	a := &app{
		cfg:      cfg,
		locale:   locale,
		client:   areena.NewClient(hc),
		cache:    memcache.New(cfg.CacheSize, cfg.CacheTTL),
	}
	a.resolver = resolve.New(a.client, kaltura.NewClient(hc))
	a.resolver.LiveBandwidth = cfg.LiveBandwidth

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]
	if err := a.run(ctx, cmd, args); err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "category":
		path := "/tv"
		if len(args) > 0 {
			path = args[0]
		}
		return a.listing(ctx, "category "+path, func() ([]catalog.Record, error) {
			return a.client.FetchCategory(ctx, path, a.locale)
		})

	case "series":
		fs := flag.NewFlagSet("series", flag.ExitOnError)
		offset := fs.Int("offset", 0, "starting offset")
		count := fs.Int("count", 2000, "expected result count")
		fs.Parse(args)
		if fs.NArg() < 1 {
			usage()
		}
		token := fs.Arg(0)
		key := fmt.Sprintf("series %s %d %d", token, *offset, *count)
		return a.listing(ctx, key, func() ([]catalog.Record, error) {
			return a.client.FetchSeries(ctx, a.locale, token, *offset, *count)
		})

	case "alphabetical":
		return a.listing(ctx, "alphabetical", func() ([]catalog.Record, error) {
			return a.client.FetchAlphabetical(ctx, a.locale)
		})

	case "episodes":
		fs := flag.NewFlagSet("episodes", flag.ExitOnError)
		clips := fs.Bool("clips", a.cfg.IncludeClips, "include clips")
		fs.Parse(args)
		if fs.NArg() < 1 {
			usage()
		}
		path := fs.Arg(0)
		key := fmt.Sprintf("episodes %s clips=%v", path, *clips)
		return a.listing(ctx, key, func() ([]catalog.Record, error) {
			return a.client.FetchEpisodes(ctx, path, a.locale, *clips)
		})

	case "search":
		if len(args) < 1 {
			usage()
		}
		query := strings.Join(args, " ")
		return a.listing(ctx, "search "+query, func() ([]catalog.Record, error) {
			return a.client.FetchSearch(ctx, query, a.locale)
		})

	case "live":
		if len(args) < 1 {
			usage()
		}
		res, err := a.resolver.Live(ctx, args[0], a.locale)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", res.Format, res.ManifestURL)
		return nil

	case "vod":
		fs := flag.NewFlagSet("vod", flag.ExitOnError)
		kalturaID := fs.String("kaltura", "", "known secondary-provider entry id")
		fs.Parse(args)
		if fs.NArg() < 1 {
			usage()
		}
		res, err := a.resolver.VOD(ctx, fs.Arg(0), *kalturaID, kaltura.ModeVOD)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", res.Format, res.ManifestURL)
		return nil

	case "download":
		fs := flag.NewFlagSet("download", flag.ExitOnError)
		kalturaID := fs.String("kaltura", "", "known secondary-provider entry id")
		title := fs.String("title", "", "file title (defaults to the media id)")
		fs.Parse(args)
		if fs.NArg() < 1 {
			usage()
		}
		return a.downloadMedia(ctx, fs.Arg(0), *kalturaID, *title)

	case "downloads":
		ix, err := download.OpenIndex(a.cfg.DownloadIndexPath)
		if err != nil {
			return err
		}
		defer ix.Close()
		entries, err := ix.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\t%s\n", e.CompletedAt.Format("2006-01-02"), e.Title, e.Path)
		}
		return nil

	case "clear-cache":
		n := a.cache.Len()
		a.cache.ClearAll()
		log.Printf("cleared %d listings", n)
		return nil

	default:
		usage()
		return nil
	}
}

// listing runs fetch with a cache consult/populate around it and prints the
// records. Cache keys hash the locale plus the full parameter string, so
// distinct requests cannot collide.
func (a *app) listing(ctx context.Context, params string, fetch func() ([]catalog.Record, error)) error {
	key := memcache.Key(string(a.locale), params)
	if data, ok := a.cache.Get(key); ok {
		var records []catalog.Record
		if err := json.Unmarshal(data, &records); err == nil {
			return printRecords(records)
		}
	}
	records, err := fetch()
	if err != nil {
		return err
	}
	if data, err := json.Marshal(records); err == nil {
		a.cache.Put(key, data)
	}
	return printRecords(records)
}

func printRecords(records []catalog.Record) error {
	enc := json.NewEncoder(os.Stdout)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// downloadMedia resolves yleID in download mode and saves the stream plus
// subtitles, recording the result in the download index.
func (a *app) downloadMedia(ctx context.Context, yleID, kalturaID, title string) error {
	res, err := a.resolver.VOD(ctx, yleID, kalturaID, kaltura.ModeDownload)
	if err != nil {
		return err
	}
	if res.Format == resolve.FormatHLS {
		return fmt.Errorf("stream format %s not supported for download", res.Format)
	}
	if title == "" {
		title = yleID
	}
	if err := os.MkdirAll(a.cfg.DownloadDir, 0o755); err != nil {
		return err
	}
	path := download.FilePath(a.cfg.DownloadDir, title, ".mp4")
	log.Printf("downloading %s -> %s", title, path)
	hc := httpclient.WithTimeout(0) // no overall timeout on bulk transfers
	if err := download.Fetch(ctx, hc, res.ManifestURL, path); err != nil {
		return err
	}
	if err := download.Subtitles(ctx, hc, res.Subtitles, path); err != nil {
		return err
	}
	ix, err := download.OpenIndex(a.cfg.DownloadIndexPath)
	if err != nil {
		return err
	}
	defer ix.Close()
	if err := ix.Add(title, path); err != nil {
		return err
	}
	log.Printf("download of %s completed", title)
	return nil
}
