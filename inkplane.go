// Package inkplane renders RGBA frames for 12.48" tri-color e-paper panels
// and uploads them over the driver board's chunked HTTP protocol.
package inkplane

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"libdb.so/inkplane/epdhttp"
	"libdb.so/inkplane/internal/epd"
)

// Frame is a fully encoded device frame for one panel model, ready to be
// chunked onto the wire.
type Frame struct {
	// Dark is the reordered dark-plane stream.
	Dark string
	// Accent is the reordered accent-plane stream. It is empty for
	// monochrome renders, which skip the accent load step entirely.
	Accent string
}

// Chunks returns the total number of load requests the frame needs.
func (f *Frame) Chunks() int {
	return epdhttp.NumChunks(len(f.Dark)) + epdhttp.NumChunks(len(f.Accent))
}

// Encode runs the render pipeline for one panel model without touching the
// network: quantize, separate ink planes, pack and reorder. The image must
// be exactly panel-sized.
func Encode(img *image.RGBA, model epd.Model, mode epd.Mode) (*Frame, error) {
	b := img.Bounds()
	if b.Dx() != epd.PanelWidth || b.Dy() != epd.PanelHeight {
		return nil, errors.Errorf(
			"image is %dx%d, panel is %dx%d",
			b.Dx(), b.Dy(), epd.PanelWidth, epd.PanelHeight)
	}

	quantized := epd.Quantize(img, epd.PaletteFor(model, mode), mode)
	dark, accent := epd.SeparatePlanes(quantized, model, mode)

	darkFrame, err := epd.Reorder(dark.Pack())
	if err != nil {
		return nil, errors.Wrap(err, "dark plane")
	}

	frame := &Frame{Dark: darkFrame}

	if _, hasAccent := model.Accent(); hasAccent && !mode.Mono() {
		accentFrame, err := epd.Reorder(accent.Pack())
		if err != nil {
			return nil, errors.Wrap(err, "accent plane")
		}
		frame.Accent = accentFrame
	}

	return frame, nil
}

// Uploader renders frames and uploads them to the configured panels.
type Uploader struct {
	cfg    *Config
	logger *slog.Logger
	mode   epd.Mode
}

// NewUploader creates a new uploader.
func NewUploader(cfg *Config, logger *slog.Logger) (*Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	mode, err := epd.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	return &Uploader{
		cfg:    cfg,
		logger: logger,
		mode:   mode,
	}, nil
}

// Upload encodes img for every configured panel and uploads the frames.
// Distinct panels are uploaded concurrently; the request sequence for each
// individual panel stays strictly ordered. An upload either completes fully
// for a panel or fails; there is no partial resume, so on error the caller
// retries the whole upload.
func (u *Uploader) Upload(ctx context.Context, img *image.RGBA) error {
	errg, ctx := errgroup.WithContext(ctx)

	for _, panel := range u.cfg.Panels {
		panel := panel
		errg.Go(func() error {
			return u.uploadPanel(ctx, panel, img)
		})
	}

	return errg.Wait()
}

func (u *Uploader) uploadPanel(ctx context.Context, panel PanelConfig, img *image.RGBA) error {
	model, err := epd.ParseModel(panel.Model)
	if err != nil {
		return err
	}

	frame, err := Encode(img, model, u.mode)
	if err != nil {
		return errors.Wrapf(err, "panel %s", panel.Address)
	}

	u.logger.Debug(
		"frame encoded",
		"panel", panel.Address,
		"model", model.ID(),
		"mode", u.mode.String(),
		"chunks", frame.Chunks())

	var opts []epdhttp.Option
	if timeout := time.Duration(u.cfg.Timeout); timeout > 0 {
		opts = append(opts, epdhttp.WithTimeout(timeout))
	}

	client := epdhttp.NewClient(panel.Address, opts...)
	if err := client.Upload(ctx, model.ID(), frame.Dark, frame.Accent); err != nil {
		return errors.Wrapf(err, "panel %s", panel.Address)
	}

	u.logger.Info(
		"panel updated",
		"panel", panel.Address,
		"model", model.ID())

	return nil
}
