package ffmpeg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os/exec"
)

type FFmpeg struct{ Path string }

func NewFFmpeg(path string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{Path: path}
}

// ExtractFrame seeks to atSec and decodes the first frame at or after
// that timestamp, bilinearly scaled to w x h. The frame travels back as
// PNG over a pipe, so no temp files are involved.
func (f *FFmpeg) ExtractFrame(filePath string, atSec float64, w, h int) (image.Image, error) {
	cmd := exec.Command(f.Path,
		"-ss", fmt.Sprintf("%.3f", atSec),
		"-i", filePath,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=bilinear", w, h),
		"-f", "image2pipe",
		"-vcodec", "png",
		"-v", "quiet",
		"-",
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction at %.3fs failed: %w", atSec, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no frame at %.3fs", atSec)
	}
	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame: %w", err)
	}
	return img, nil
}

// Available reports whether the ffmpeg binary can be resolved.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.Path)
	return err == nil
}
