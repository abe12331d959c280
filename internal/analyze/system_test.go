package analyze

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/metadata"
	"github.com/veridict/veridict/internal/probe"
)

func pngBytes() []byte {
	return []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
}

func aviBytes() []byte {
	return []byte("RIFF\x00\x00\x00\x00AVI LIST")
}

func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("<w/>"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		family   metadata.Family
		wantErr  bool
	}{
		{
			name:   "png image",
			data:   pngBytes(),
			family: metadata.FamilyImage,
		},
		{
			name:   "avi video",
			data:   aviBytes(),
			family: metadata.FamilyVideo,
		},
		{
			name:    "plain text rejected",
			data:    []byte("hello world, definitely not media"),
			wantErr: true,
		},
		{
			name:    "empty rejected",
			data:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			family, _, err := sniff(tt.data, tt.declared)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedType) {
					t.Errorf("err = %v, want ErrUnsupportedType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("sniff: %v", err)
			}
			if family != tt.family {
				t.Errorf("family = %q, want %q", family, tt.family)
			}
		})
	}
}

func TestSniffZipIsDocument(t *testing.T) {
	family, _, err := sniff(zipBytes(t), "")
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if family != metadata.FamilyDocument {
		t.Errorf("family = %q, want document", family)
	}
}

func TestSniffContentType(t *testing.T) {
	_, ct, err := sniff(pngBytes(), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if ct != "image/png" {
		t.Errorf("declared type not kept: %q", ct)
	}

	_, ct, err = sniff(pngBytes(), "application/octet-stream")
	if err != nil {
		t.Fatal(err)
	}
	if ct != "image/png" {
		t.Errorf("generic declared type not replaced: %q", ct)
	}
}

func TestSpill(t *testing.T) {
	path, cleanup, err := spill([]byte("payload"), "art.png")
	if err != nil {
		t.Fatalf("spill: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read spilled file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q", data)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cleanup did not remove the temp file")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNoFile, http.StatusBadRequest},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{extract.ErrNotAPackage, http.StatusBadRequest},
		{probe.ErrUnavailable, http.StatusServiceUnavailable},
		{probe.ErrTimeout, http.StatusGatewayTimeout},
		{probe.ErrProbeFailed, http.StatusUnprocessableEntity},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
