package probe

import (
	"context"
	"image"
	"os"
	"strconv"

	"github.com/bep/imagemeta"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// nativeTags maps (source, tag-name) → raw tree key for every tag the
// normalizer consumes. Keys mirror exiftool's naming so both image probers
// produce interchangeable trees.
var nativeTags = map[imagemeta.Source]map[string]string{
	imagemeta.EXIF: {
		"Software":         "Software",
		"Artist":           "Artist",
		"Make":             "Make",
		"Model":            "Model",
		"DateTimeOriginal": "DateTimeOriginal",
		"DateTime":         "ModifyDate",
		"GPSLatitude":      "GPSLatitude",
		"GPSLongitude":     "GPSLongitude",
		"ColorSpace":       "ColorSpace",
		"Compression":      "Compression",
		"Copyright":        "Copyright",
	},
	imagemeta.XMP: {
		"CreatorTool":       "CreatorTool",
		"CreateDate":        "CreateDate",
		"Credit":            "Credit",
		"DigitalSourceType": "DigitalSourceType",
	},
	imagemeta.IPTC: {
		"Credit": "IPTCCredit",
		"Source": "IPTCSource",
	},
}

// Native extracts image tags in-process with bep/imagemeta, avoiding an
// external probe process. Used for embedded document images and as the
// image prober when no exiftool binary is configured. Never unavailable.
type Native struct{}

// NewNative creates the in-process image prober.
func NewNative() *Native {
	return &Native{}
}

// Probe decodes EXIF, XMP, and IPTC tags plus pixel dimensions from the
// image at path. Undecodable input yields an empty tree, never an error:
// "no tags" is a valid result.
func (n *Native) Probe(ctx context.Context, path string) (Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree := Tree{}

	_, _ = imagemeta.Decode(imagemeta.Options{
		R:       f,
		Sources: imagemeta.EXIF | imagemeta.XMP | imagemeta.IPTC,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := nativeTags[ti.Source]; ok {
				_, want := tags[ti.Tag]
				return want
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			key := nativeTags[ti.Source][ti.Tag]
			if _, taken := tree[key]; taken {
				return nil
			}
			if s := tagString(ti.Value); s != "" {
				tree[key] = s
			}
			return nil
		},
	})

	if _, err := f.Seek(0, 0); err == nil {
		if cfg, _, err := image.DecodeConfig(f); err == nil {
			tree["ImageWidth"] = cfg.Width
			tree["ImageHeight"] = cfg.Height
		}
	}

	return tree, nil
}

// tagString extracts a string from a tag value. XMP values may arrive as
// string slices from alt/seq lists.
func tagString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return ""
}
