package playback

import "github.com/jonas747/dca"

// dcaEncoder transcodes clip files to opus via ffmpeg, with the
// volume applied as a linear gain at encode time (256 = 1.0).
type dcaEncoder struct{}

func NewDCAEncoder() Encoder {
	return dcaEncoder{}
}

func (dcaEncoder) Encode(path string, volume float64) (FrameSource, error) {
	opts := *dca.StdEncodeOptions
	opts.Volume = int(volume * 256)

	return dca.EncodeFile(path, &opts)
}
