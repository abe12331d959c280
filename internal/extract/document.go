package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/veridict/veridict/internal/metadata"
	"github.com/veridict/veridict/internal/probe"
)

const (
	corePropsPath = "docprops/core.xml"
	appPropsPath  = "docprops/app.xml"
)

// imageExtensions are the embedded media extensions treated as image items.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Package is an opened OOXML office package.
type Package struct {
	Kind   metadata.DocumentKind
	reader *zip.ReadCloser
}

// EmbeddedImage is one image entry inside a package's media directory, in
// archive enumeration order.
type EmbeddedImage struct {
	Name string
	file *zip.File
}

// Open returns a reader over the entry's decompressed bytes.
func (e EmbeddedImage) Open() (io.ReadCloser, error) {
	return e.file.Open()
}

// OpenPackage opens the named file as an OOXML package. An invalid zip
// signature yields ErrNotAPackage. The package kind is classified by the
// presence of a word/ or ppt/ top-level path; when both occur, word wins
// by fixed priority.
func OpenPackage(name string) (*Package, error) {
	reader, err := zip.OpenReader(name)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, ErrNotAPackage
		}
		return nil, err
	}

	kind, err := classify(reader)
	if err != nil {
		reader.Close()
		return nil, err
	}

	return &Package{Kind: kind, reader: reader}, nil
}

// Close releases the underlying archive.
func (p *Package) Close() error {
	return p.reader.Close()
}

// Properties extracts the package's core and extended properties into one
// raw tree. A missing or unparsable XML member contributes nothing; the
// result is an all-absent tree in the worst case, never an error.
func (p *Package) Properties() probe.Tree {
	tree := probe.Tree{}

	if member := p.find(corePropsPath); member != nil {
		mergeCoreProperties(tree, member)
	}
	if member := p.find(appPropsPath); member != nil {
		mergeAppProperties(tree, member)
	}

	return tree
}

// Images returns the package's embedded image entries: members under the
// kind's media path with an image extension, matched case-insensitively
// and independent of archive path separator style, in enumeration order.
func (p *Package) Images() []EmbeddedImage {
	prefix := "word/media/"
	if p.Kind == metadata.KindPowerPoint {
		prefix = "ppt/media/"
	}

	var images []EmbeddedImage
	for _, f := range p.reader.File {
		name := normalizeName(f.Name)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !imageExtensions[path.Ext(name)] {
			continue
		}
		images = append(images, EmbeddedImage{Name: f.Name, file: f})
	}
	return images
}

func classify(reader *zip.ReadCloser) (metadata.DocumentKind, error) {
	var hasWord, hasPpt bool
	for _, f := range reader.File {
		name := normalizeName(f.Name)
		switch {
		case strings.HasPrefix(name, "word/"):
			hasWord = true
		case strings.HasPrefix(name, "ppt/"):
			hasPpt = true
		}
	}

	switch {
	case hasWord:
		return metadata.KindWord, nil
	case hasPpt:
		return metadata.KindPowerPoint, nil
	default:
		return "", ErrUnknownPackageKind
	}
}

func (p *Package) find(normalized string) *zip.File {
	for _, f := range p.reader.File {
		if normalizeName(f.Name) == normalized {
			return f
		}
	}
	return nil
}

// normalizeName lowercases a member name and converts backslash separators,
// which some producers emit, to forward slashes.
func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, `\`, "/"))
}

type coreProperties struct {
	Creator        string `xml:"creator"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
	LastPrinted    string `xml:"lastPrinted"`
	Revision       string `xml:"revision"`
}

type appProperties struct {
	Application string `xml:"Application"`
	AppVersion  string `xml:"AppVersion"`
	Pages       string `xml:"Pages"`
	Slides      string `xml:"Slides"`
	Words       string `xml:"Words"`
	Template    string `xml:"Template"`
	Company     string `xml:"Company"`
}

func mergeCoreProperties(tree probe.Tree, member *zip.File) {
	var props coreProperties
	if !decodeMember(member, &props) {
		return
	}

	setString(tree, "creator", props.Creator)
	setString(tree, "lastModifiedBy", props.LastModifiedBy)
	setString(tree, "created", props.Created)
	setString(tree, "modified", props.Modified)
	setString(tree, "lastPrinted", props.LastPrinted)
	setString(tree, "revision", props.Revision)
}

func mergeAppProperties(tree probe.Tree, member *zip.File) {
	var props appProperties
	if !decodeMember(member, &props) {
		return
	}

	setString(tree, "Application", props.Application)
	setString(tree, "AppVersion", props.AppVersion)
	setString(tree, "Template", props.Template)
	setString(tree, "Company", props.Company)
	setInt(tree, "Pages", props.Pages)
	setInt(tree, "Slides", props.Slides)
	setInt(tree, "Words", props.Words)
}

func decodeMember(member *zip.File, dst any) bool {
	rc, err := member.Open()
	if err != nil {
		return false
	}
	defer rc.Close()

	return xml.NewDecoder(rc).Decode(dst) == nil
}

func setString(tree probe.Tree, key, value string) {
	if value != "" {
		tree[key] = value
	}
}

func setInt(tree probe.Tree, key, value string) {
	if value == "" {
		return
	}
	if n, err := strconv.Atoi(value); err == nil {
		tree[key] = n
	}
}
