// Package metadata defines the canonical, format-agnostic metadata record
// derived from raw probe output, and the per-family normalizers that
// produce it. One normalizer exists per container family; adding a family
// means adding a normalizer, never modifying an existing one.
package metadata

// Family identifies a container format family.
type Family string

// Container format families.
const (
	FamilyImage    Family = "image"
	FamilyVideo    Family = "video"
	FamilyDocument Family = "document"
)

// Meta is the canonical metadata for one scorable item. Detector rules
// switch on the concrete type; optional fields are pointers so absence is
// explicit. Timestamps stay in their format-native string representation.
type Meta interface {
	Family() Family
}

// Image is canonical metadata for a standalone or embedded image.
type Image struct {
	Creator           *string `json:"creator,omitempty"`
	Software          *string `json:"software,omitempty"`
	CreatorTool       *string `json:"creator_tool,omitempty"`
	CreateDate        *string `json:"create_date,omitempty"`
	ModifyDate        *string `json:"modify_date,omitempty"`
	CameraMake        *string `json:"camera_make,omitempty"`
	CameraModel       *string `json:"camera_model,omitempty"`
	GPSLatitude       *string `json:"gps_latitude,omitempty"`
	GPSLongitude      *string `json:"gps_longitude,omitempty"`
	ColorSpace        *string `json:"color_space,omitempty"`
	Compression       *string `json:"compression,omitempty"`
	Width             *int    `json:"width,omitempty"`
	Height            *int    `json:"height,omitempty"`
	Copyright         *string `json:"copyright,omitempty"`
	Credit            *string `json:"credit,omitempty"`
	DigitalSourceType *string `json:"digital_source_type,omitempty"`
}

// Family implements Meta.
func (*Image) Family() Family { return FamilyImage }

// Video is canonical metadata for a video container.
type Video struct {
	Format       *string `json:"format,omitempty"`
	Duration     *string `json:"duration,omitempty"`
	BitRate      *int64  `json:"bit_rate,omitempty"`
	Encoder      *string `json:"encoder,omitempty"`
	CreationTime *string `json:"creation_time,omitempty"`
	VideoCodec   *string `json:"video_codec,omitempty"`
	AudioCodec   *string `json:"audio_codec,omitempty"`
	Width        *int    `json:"width,omitempty"`
	Height       *int    `json:"height,omitempty"`
	RFrameRate   *string `json:"r_frame_rate,omitempty"`
	AvgFrameRate *string `json:"avg_frame_rate,omitempty"`
}

// Family implements Meta.
func (*Video) Family() Family { return FamilyVideo }

// DocumentKind distinguishes supported OOXML package kinds.
type DocumentKind string

// Supported OOXML package kinds.
const (
	KindWord       DocumentKind = "word"
	KindPowerPoint DocumentKind = "powerpoint"
)

// Document is canonical metadata for an OOXML office package.
type Document struct {
	Kind           DocumentKind `json:"kind"`
	Creator        *string      `json:"creator,omitempty"`
	LastModifiedBy *string      `json:"last_modified_by,omitempty"`
	Application    *string      `json:"application,omitempty"`
	AppVersion     *string      `json:"app_version,omitempty"`
	Created        *string      `json:"created,omitempty"`
	Modified       *string      `json:"modified,omitempty"`
	LastPrinted    *string      `json:"last_printed,omitempty"`
	Pages          *int         `json:"pages,omitempty"`
	Slides         *int         `json:"slides,omitempty"`
	Words          *int         `json:"words,omitempty"`
	Revision       *string      `json:"revision,omitempty"`
	Template       *string      `json:"template,omitempty"`
	Company        *string      `json:"company,omitempty"`
}

// Family implements Meta.
func (*Document) Family() Family { return FamilyDocument }
