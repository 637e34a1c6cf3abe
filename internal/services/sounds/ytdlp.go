package sounds

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
)

var youtubeRegex = regexp.MustCompile(`^(https?://)?(www\.|music\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]{11}`)

// YtdlpDownloader shells out to yt-dlp for fetching the audio
// track of a video.
type YtdlpDownloader struct {
	Path string
}

var _ Downloader = (*YtdlpDownloader)(nil)

func (d *YtdlpDownloader) Validate(url string) bool {
	return youtubeRegex.MatchString(url)
}

func (d *YtdlpDownloader) Fetch(ctx context.Context, url, dest string) error {
	cmd := exec.CommandContext(ctx, d.Path,
		"-f", "bestaudio[ext=m4a]/bestaudio",
		"--no-playlist",
		"-o", dest,
		url)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("yt-dlp: %v: %s", err, out)
	}

	return nil
}
