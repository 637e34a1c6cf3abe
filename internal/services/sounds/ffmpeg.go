package sounds

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// FfmpegTrimmer shells out to ffmpeg for cutting the clip out of
// the downloaded audio track.
type FfmpegTrimmer struct {
	Path string
}

var _ Trimmer = (*FfmpegTrimmer)(nil)

func (t *FfmpegTrimmer) Trim(ctx context.Context, in, out string, start, duration float64) error {
	cmd := exec.CommandContext(ctx, t.Path,
		"-y",
		"-ss", strconv.FormatFloat(start, 'f', 3, 64),
		"-t", strconv.FormatFloat(duration, 'f', 3, 64),
		"-i", in,
		"-vn",
		"-f", "mp4",
		out)

	outp, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: %v: %s", err, outp)
	}

	return nil
}
