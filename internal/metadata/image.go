package metadata

import "github.com/veridict/veridict/internal/probe"

// NormalizeImage maps a raw image tag tree into canonical image metadata.
// Total: unknown or absent keys map to absent fields, and values are copied
// through without reformatting. Tag keys follow exiftool naming, which the
// native prober mirrors.
func NormalizeImage(tree probe.Tree) *Image {
	m := &Image{}

	m.Creator = treeString(tree, "Artist", "Creator")
	m.Software = treeString(tree, "Software")
	m.CreatorTool = treeString(tree, "CreatorTool")
	m.CreateDate = treeString(tree, "DateTimeOriginal", "CreateDate")
	m.ModifyDate = treeString(tree, "ModifyDate")
	m.CameraMake = treeString(tree, "Make")
	m.CameraModel = treeString(tree, "Model")
	m.GPSLatitude = treeString(tree, "GPSLatitude")
	m.GPSLongitude = treeString(tree, "GPSLongitude")
	m.ColorSpace = treeString(tree, "ColorSpace")
	m.Compression = treeString(tree, "Compression")
	m.Width = treeInt(tree, "ImageWidth")
	m.Height = treeInt(tree, "ImageHeight")
	m.Copyright = treeString(tree, "Copyright")
	m.Credit = treeString(tree, "Credit", "IPTCCredit")
	m.DigitalSourceType = treeString(tree, "DigitalSourceType")

	return m
}

// treeString returns the first present key's value as a string pointer.
func treeString(tree probe.Tree, keys ...string) *string {
	for _, key := range keys {
		if s, ok := tree.String(key); ok {
			return &s
		}
	}
	return nil
}

// treeInt returns the first present key's value as an int pointer.
func treeInt(tree probe.Tree, keys ...string) *int {
	for _, key := range keys {
		if f, ok := tree.Float(key); ok {
			n := int(f)
			return &n
		}
	}
	return nil
}
