package debug

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sms-core/smsemu/core/sink"
)

// SaveFramePNGToDir encodes a w x h RGB frame (row-major, as Paint would
// have received it) as a timestamped PNG in directory (or the working
// directory, if empty).
func SaveFramePNGToDir(frame []sink.RGB, w, h int, baseName, directory string) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := frame[y*w+x]
			idx := img.PixOffset(x, y)
			img.Pix[idx] = c.R
			img.Pix[idx+1] = c.G
			img.Pix[idx+2] = c.B
			img.Pix[idx+3] = 0xFF
		}
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("debug: get working directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("debug: create %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("debug: encode PNG: %w", err)
	}

	slog.Info("snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", w, h))
	return nil
}
