package extract_test

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/metadata"
)

const coreXML = `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
    xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:creator>Jane Author</dc:creator>
  <cp:lastModifiedBy>Jane Author</cp:lastModifiedBy>
  <cp:revision>3</cp:revision>
</cp:coreProperties>`

const appXML = `<?xml version="1.0"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
  <Application>Microsoft Office Word</Application>
  <Pages>12</Pages>
  <Words>3400</Words>
</Properties>`

// writeZip builds a zip file on disk from member name/content pairs.
func writeZip(t *testing.T, members map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "package.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create member %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write member %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return path
}

func TestOpenPackageNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := extract.OpenPackage(path)
	if !errors.Is(err, extract.ErrNotAPackage) {
		t.Errorf("err = %v, want ErrNotAPackage", err)
	}
}

func TestOpenPackageUnknownKind(t *testing.T) {
	path := writeZip(t, map[string]string{
		"random/content.txt": "hello",
	})

	_, err := extract.OpenPackage(path)
	if !errors.Is(err, extract.ErrUnknownPackageKind) {
		t.Errorf("err = %v, want ErrUnknownPackageKind", err)
	}
}

func TestOpenPackageClassification(t *testing.T) {
	tests := []struct {
		name    string
		members map[string]string
		want    metadata.DocumentKind
	}{
		{
			name:    "word package",
			members: map[string]string{"word/document.xml": "<w/>"},
			want:    metadata.KindWord,
		},
		{
			name:    "powerpoint package",
			members: map[string]string{"ppt/presentation.xml": "<p/>"},
			want:    metadata.KindPowerPoint,
		},
		{
			name: "word wins over powerpoint",
			members: map[string]string{
				"ppt/presentation.xml": "<p/>",
				"word/document.xml":    "<w/>",
			},
			want: metadata.KindWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := extract.OpenPackage(writeZip(t, tt.members))
			if err != nil {
				t.Fatalf("OpenPackage: %v", err)
			}
			defer pkg.Close()

			if pkg.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", pkg.Kind, tt.want)
			}
		})
	}
}

func TestPackageProperties(t *testing.T) {
	pkg, err := extract.OpenPackage(writeZip(t, map[string]string{
		"word/document.xml": "<w/>",
		"docProps/core.xml": coreXML,
		"docProps/app.xml":  appXML,
	}))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	tree := pkg.Properties()

	if got, _ := tree.String("creator"); got != "Jane Author" {
		t.Errorf("creator = %q", got)
	}
	if got, _ := tree.String("Application"); got != "Microsoft Office Word" {
		t.Errorf("Application = %q", got)
	}
	if got, ok := tree.Float("Pages"); !ok || got != 12 {
		t.Errorf("Pages = %v (%v)", got, ok)
	}
}

func TestPackagePropertiesMissingMembers(t *testing.T) {
	pkg, err := extract.OpenPackage(writeZip(t, map[string]string{
		"word/document.xml": "<w/>",
	}))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	tree := pkg.Properties()
	if len(tree) != 0 {
		t.Errorf("tree = %v, want empty for missing property members", tree)
	}
}

func TestPackagePropertiesUnparsableXML(t *testing.T) {
	pkg, err := extract.OpenPackage(writeZip(t, map[string]string{
		"word/document.xml": "<w/>",
		"docProps/core.xml": "<<< not xml",
		"docProps/app.xml":  appXML,
	}))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	tree := pkg.Properties()
	if _, ok := tree.String("creator"); ok {
		t.Error("unparsable core.xml must contribute nothing")
	}
	if got, _ := tree.String("Application"); got != "Microsoft Office Word" {
		t.Errorf("Application = %q, app.xml should still merge", got)
	}
}

func TestPackageImages(t *testing.T) {
	pkg, err := extract.OpenPackage(writeZip(t, map[string]string{
		"word/document.xml":     "<w/>",
		"word/media/image1.png": "png-bytes",
		"word/media/image2.JPG": "jpg-bytes",
		"word/media/notes.txt":  "not an image",
		"word/styles.xml":       "<s/>",
	}))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	images := pkg.Images()
	if len(images) != 2 {
		t.Fatalf("images = %d, want 2", len(images))
	}
	if images[0].Name != "word/media/image1.png" {
		t.Errorf("images[0] = %q", images[0].Name)
	}
	if images[1].Name != "word/media/image2.JPG" {
		t.Errorf("images[1] = %q, extension match must be case-insensitive", images[1].Name)
	}
}

func TestPackageImagesBackslashSeparators(t *testing.T) {
	pkg, err := extract.OpenPackage(writeZip(t, map[string]string{
		"word/document.xml":     "<w/>",
		`word\media\image1.png`: "png-bytes",
	}))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	if got := len(pkg.Images()); got != 1 {
		t.Errorf("images = %d, want 1 with backslash separators", got)
	}
}

func TestPackageImagesWrongMediaDir(t *testing.T) {
	pkg, err := extract.OpenPackage(writeZip(t, map[string]string{
		"word/document.xml":    "<w/>",
		"ppt/media/image1.png": "png-bytes",
	}))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	if got := len(pkg.Images()); got != 0 {
		t.Errorf("images = %d, want 0 outside the word media path", got)
	}
}
