package compose

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/shelfworks/promoframe/internal/config"
)

// CreateThumbnail produces a reduced copy of an existing image. With
// keepAspect the image is fitted inside the box and centered on a
// transparent canvas of exactly the box size; otherwise it is stretched
// to the box. The output follows the same extension rules as composites.
func (c *Compositor) CreateThumbnail(sourcePath, thumbPath string, box config.Dimensions, keepAspect bool) error {
	if _, err := os.Stat(sourcePath); err != nil {
		c.logErrorf("thumbnail source missing: %s", sourcePath)
		return fmt.Errorf("thumbnail source %s: %w", sourcePath, err)
	}

	img, err := imaging.Open(sourcePath)
	if err != nil {
		c.logErrorf("thumbnail decode %s: %v", sourcePath, err)
		return err
	}

	var thumb *image.NRGBA
	if keepAspect {
		fitted := imaging.Fit(img, box.Width, box.Height, imaging.Lanczos)
		thumb = imaging.OverlayCenter(
			imaging.New(box.Width, box.Height, color.NRGBA{}), fitted, 1.0)
	} else {
		thumb = imaging.Resize(img, box.Width, box.Height, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(thumbPath), 0o755); err != nil {
		c.logErrorf("create thumbnail dir for %s: %v", thumbPath, err)
		return err
	}
	if err := c.save(thumb, thumbPath); err != nil {
		c.logErrorf("save thumbnail %s: %v", thumbPath, err)
		return err
	}
	c.logInfof("thumbnail saved: %s", thumbPath)
	return nil
}
