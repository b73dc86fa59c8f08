// thumbgen renders PNG thumbnails for a list of image files.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/pagethumbs/internal/config"
	"github.com/llehouerou/pagethumbs/internal/errmsg"
	"github.com/llehouerou/pagethumbs/internal/gallery"
	"github.com/llehouerou/pagethumbs/internal/source"
	"github.com/llehouerou/pagethumbs/internal/state"
	"github.com/llehouerou/pagethumbs/internal/thumbcache"
	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

type options struct {
	size    int
	out     string
	workers int
	noCache bool
	files   []string
}

func main() {
	var opts options
	flag.IntVar(&opts.size, "size", 0, "thumbnail size in pixels, 64-1024 (default: saved preference)")
	flag.StringVar(&opts.out, "out", "", "output directory (default: output_folder from config, else cwd)")
	flag.IntVar(&opts.workers, "workers", 0, "concurrent renders (default: thumbnail.workers from config)")
	flag.BoolVar(&opts.noCache, "no-cache", false, "always render, ignoring the thumbnail cache")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: thumbgen [flags] image...")
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.files = flag.Args()
	if len(opts.files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	thumbCfg := cfg.GetThumbnailConfig()

	rendererOpts, err := thumbCfg.RendererOptions()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	var sizes thumbnail.SizeSource = thumbnail.FixedSize(thumbCfg.Size)
	if opts.size == 0 {
		stateMgr, err := state.Open()
		if err != nil {
			log.Println(errmsg.Format(errmsg.OpStateOpen, err))
		} else {
			defer stateMgr.Close()
			stateMgr.SetFallbackSize(thumbCfg.Size)
			sizes = stateMgr
		}
	}

	files := source.FileProvider{}
	svc := thumbnail.NewService(thumbnail.New(rendererOpts...), files, sizes)

	size := opts.size
	if size == 0 {
		size = svc.DefaultSize()
	}
	if size < thumbnail.MinSize || size > thumbnail.MaxSize {
		return errors.New(errmsg.Format(errmsg.OpThumbnailRender, fmt.Errorf("%w: %d", thumbnail.ErrInvalidSize, size)))
	}

	outDir := opts.out
	if outDir == "" {
		outDir = cfg.OutputFolder
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpThumbnailSave, outDir, err))
	}

	var renderer gallery.Renderer = svc
	if !opts.noCache {
		cache, err := thumbcache.New("")
		if err != nil {
			log.Println(errmsg.Format(errmsg.OpCacheOpen, err))
		}
		renderer = thumbcache.NewRenderer(svc, cache, files.ModTime)
	}

	refs := make([]thumbnail.Ref, 0, len(opts.files))
	for _, f := range opts.files {
		if !source.IsSupported(f) {
			log.Printf("skipping %s: unsupported format", f)
			continue
		}
		refs = append(refs, thumbnail.Ref(f))
	}

	workers := opts.workers
	if workers <= 0 {
		workers = thumbCfg.Workers
	}

	start := time.Now()
	results := gallery.Build(ctx, renderer, refs, size, workers)

	var written int
	var total uint64
	for _, res := range results {
		if res.Err != nil {
			log.Println(errmsg.FormatWith(errmsg.OpThumbnailRender, string(res.Ref), res.Err))
			continue
		}
		path := outputPath(outDir, res.Ref)
		n, err := writePNG(path, res.Image)
		if err != nil {
			log.Println(errmsg.FormatWith(errmsg.OpThumbnailSave, path, err))
			continue
		}
		written++
		total += n
		log.Printf("%s -> %s (%s)", res.Ref, path, humanize.Bytes(n))
	}

	log.Printf("%d/%d thumbnails at %dpx, %s total, in %s",
		written, len(refs), size, humanize.Bytes(total), time.Since(start).Round(time.Millisecond))

	if failed := len(refs) - written; failed > 0 {
		return fmt.Errorf("%d of %d thumbnails failed", failed, len(refs))
	}
	return nil
}

// outputPath returns where the thumbnail for ref is written.
func outputPath(outDir string, ref thumbnail.Ref) string {
	base := filepath.Base(string(ref))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, name+".thumb.png")
}

func writePNG(path string, img image.Image) (uint64, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // thumbnails are meant to be shared
		return 0, err
	}
	return uint64(buf.Len()), nil
}
