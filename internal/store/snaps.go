package store

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/mj1618/desktop-rpa/internal/logger"
)

// Snapshots persists raster screen captures as PNG files and hands back the
// file path as the snapshot reference stored on a step.
type Snapshots struct {
	dir   string
	scale float64
}

// NewSnapshots creates the snapshot directory if needed. scale in (0, 1)
// downsizes stored captures to save disk; 0 or 1 stores them as captured.
func NewSnapshots(dir string, scale float64) (*Snapshots, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Snapshots{dir: dir, scale: scale}, nil
}

// Save encodes img to a timestamped PNG named after prefix ("click",
// "type") and returns its path.
func (s *Snapshots) Save(img image.Image, prefix string) (string, error) {
	if s.scale > 0 && s.scale < 1 {
		img = downscale(img, s.scale)
	}

	now := time.Now().UTC()
	name := fmt.Sprintf("%s_%s_%06d.png", prefix, now.Format("20060102_150405"), now.Nanosecond()/1000)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// Clean removes snapshot files older than maxAge. Best-effort housekeeping;
// failures are logged and skipped.
func (s *Snapshots) Clean(maxAge time.Duration) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Debug().Err(err).Msg("snapshot cleanup: read dir failed")
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
}

func downscale(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 || h < 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
