package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Prober extracts type-specific metadata from local media files before they
// are uploaded. All methods are best-effort; callers treat failures as
// missing metadata, not as upload errors.
type Prober interface {
	ImageDimensions(path string) (width, height int, err error)
	AudioDuration(ctx context.Context, path string) (float64, error)
}

// Compile-time check that mediaProber implements Prober.
var _ Prober = (*mediaProber)(nil)

type mediaProber struct{}

// NewProber returns the default Prober, which decodes image headers with the
// standard image codecs and asks ffprobe for audio durations.
func NewProber() Prober {
	return &mediaProber{}
}

// ImageDimensions reads the image header and returns its pixel size.
// Formats outside the registered codecs (e.g. webp) return an error and the
// attachment keeps zero dimensions.
func (p *mediaProber) ImageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header of %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// AudioDuration shells out to ffprobe for the duration in seconds.
func (p *mediaProber) AudioDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return duration, nil
}
