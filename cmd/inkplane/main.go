package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"libdb.so/inkplane"
	"libdb.so/inkplane/internal/epd"

	_ "image/jpeg"
	_ "image/png"
)

var (
	config  = "inkplane.toml"
	verbose = false
	dryRun  = false
)

func init() {
	pflag.StringVarP(&config, "config", "c", config, "configuration file")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
	pflag.BoolVar(&dryRun, "dry-run", dryRun, "encode only, do not upload")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <image>\n", os.Args[0])
		pflag.PrintDefaults()
	}
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if pflag.NArg() != 1 {
		pflag.Usage()
		return errors.New("expected exactly one image argument")
	}

	cfg, err := readConfig()
	if err != nil {
		return err
	}

	img, err := loadImage(pflag.Arg(0))
	if err != nil {
		return err
	}

	uploader, err := inkplane.NewUploader(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create uploader: %w", err)
	}

	if dryRun {
		return printStats(cfg, img)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := uploader.Upload(ctx, img); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("upload failed: %w", err)
	}

	return nil
}

func readConfig() (*inkplane.Config, error) {
	f, err := os.Open(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return inkplane.ParseConfig(f)
}

// loadImage decodes the image and composites it centered onto an opaque
// white panel-sized canvas. Scaling is left to whatever produced the image;
// anything larger than the panel is rejected.
func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	if b.Dx() > epd.PanelWidth || b.Dy() > epd.PanelHeight {
		return nil, fmt.Errorf(
			"image is %dx%d, larger than the %dx%d panel",
			b.Dx(), b.Dy(), epd.PanelWidth, epd.PanelHeight)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, epd.PanelWidth, epd.PanelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	offset := image.Pt((epd.PanelWidth-b.Dx())/2, (epd.PanelHeight-b.Dy())/2)
	draw.Draw(canvas, b.Sub(b.Min).Add(offset), src, b.Min, draw.Over)

	return canvas, nil
}

func printStats(cfg *inkplane.Config, img *image.RGBA) error {
	mode, err := epd.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	for _, panel := range cfg.Panels {
		model, err := epd.ParseModel(panel.Model)
		if err != nil {
			return err
		}
		frame, err := inkplane.Encode(img, model, mode)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s): dark %d chars, accent %d chars, %d load chunks\n",
			panel.Address, model.ID(), len(frame.Dark), len(frame.Accent), frame.Chunks())
	}

	return nil
}
