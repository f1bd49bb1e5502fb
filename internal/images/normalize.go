// Package images copies case photos into the results tree, downscaling
// oversized ones along the way.
package images

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	"golang.org/x/image/draw"

	_ "image/png" // registered for image.Decode
)

// jpegQuality matches the original capture-quality/size tradeoff.
const jpegQuality = 85

// Normalize writes a JPEG copy of src at dst, downscaling so the longest
// edge does not exceed maxEdgePx. Formats the stdlib cannot decode (webp,
// heic, corrupt files) are copied byte-for-byte instead; a bad photo never
// fails its case.
func Normalize(src, dst string, maxEdgePx int) error {
	img, err := decode(src)
	if err != nil {
		return copyFile(src, dst)
	}

	img = downscale(img, maxEdgePx)

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("failed to encode %s: %w", dst, err)
	}
	return nil
}

func decode(src string) (image.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// downscale resizes img so its longest edge is at most maxEdgePx,
// preserving aspect ratio. Images already within bounds pass through.
func downscale(img image.Image, maxEdgePx int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	longest := max(width, height)
	if longest <= maxEdgePx {
		return img
	}

	ratio := float64(maxEdgePx) / float64(longest)
	newWidth := max(1, int(float64(width)*ratio))
	newHeight := max(1, int(float64(height)*ratio))

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
