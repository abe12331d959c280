package metadata

import (
	"strconv"

	"github.com/veridict/veridict/internal/probe"
)

// NormalizeVideo maps an ffprobe output tree into canonical video metadata.
// When a container holds multiple streams of a type, the first stream of
// each type in probe order wins; this is a fixed first-wins tie-break, not
// a quality pick.
func NormalizeVideo(tree probe.Tree) *Video {
	m := &Video{}

	if format, ok := tree.Sub("format"); ok {
		m.Format = treeString(format, "format_name")
		m.Duration = treeString(format, "duration")
		m.BitRate = treeInt64(format, "bit_rate")

		if tags, ok := format.Sub("tags"); ok {
			m.Encoder = treeString(tags, "encoder")
			m.CreationTime = treeString(tags, "creation_time")
		}
	}

	streams, _ := tree.List("streams")
	for _, raw := range streams {
		stream, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		s := probe.Tree(stream)

		codecType, _ := s.String("codec_type")
		switch codecType {
		case "video":
			if m.VideoCodec != nil {
				continue
			}
			m.VideoCodec = treeString(s, "codec_name")
			m.Width = treeInt(s, "width")
			m.Height = treeInt(s, "height")
			m.RFrameRate = treeString(s, "r_frame_rate")
			m.AvgFrameRate = treeString(s, "avg_frame_rate")
			// Encoders like x264 write their tag on the stream rather
			// than the container; the container value wins when both
			// are present. Same fallback for bit_rate.
			if tags, ok := s.Sub("tags"); ok && m.Encoder == nil {
				m.Encoder = treeString(tags, "encoder")
			}
			if m.BitRate == nil {
				m.BitRate = treeInt64(s, "bit_rate")
			}
		case "audio":
			if m.AudioCodec != nil {
				continue
			}
			m.AudioCodec = treeString(s, "codec_name")
		}
	}

	return m
}

// treeInt64 returns the first present key's value as an int64 pointer.
// ffprobe renders numeric fields like bit_rate as decimal strings.
func treeInt64(tree probe.Tree, keys ...string) *int64 {
	for _, key := range keys {
		if s, ok := tree.String(key); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
		if f, ok := tree.Float(key); ok {
			n := int64(f)
			return &n
		}
	}
	return nil
}
