package photo

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestEncode_ProducesPayloadWithoutHeader(t *testing.T) {
	enc := NewEncoder()
	task := enc.Encode(context.Background(), []Source{FromBytes("me.png", pngHeader)})

	got, err := task.Wait(context.Background())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := base64.StdEncoding.EncodeToString(pngHeader)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, ",") || strings.HasPrefix(got, "data:") {
		t.Fatalf("payload must not carry the data URL header: %q", got)
	}
}

func TestEncode_UsesFirstFileOnly(t *testing.T) {
	enc := NewEncoder()
	task := enc.Encode(context.Background(), []Source{
		FromBytes("a.bin", []byte("first")),
		FromBytes("b.bin", []byte("second")),
	})
	got, err := task.Wait(context.Background())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != base64.StdEncoding.EncodeToString([]byte("first")) {
		t.Fatalf("expected first file payload, got %q", got)
	}
}

func TestEncode_NoFileIsNoop(t *testing.T) {
	task := NewEncoder().Encode(context.Background(), nil)
	if !task.Completed() {
		t.Fatalf("empty selection must resolve immediately")
	}
	if _, err := task.Wait(context.Background()); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
}

func TestEncode_ReadsFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.png")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := NewEncoder().Encode(context.Background(), []Source{FromPath(path)}).Wait(context.Background())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != base64.StdEncoding.EncodeToString(pngHeader) {
		t.Fatalf("unexpected payload %q", got)
	}
}

func TestEncode_ReadFailure(t *testing.T) {
	missing := FromPath(filepath.Join(t.TempDir(), "missing.png"))
	_, err := NewEncoder().Encode(context.Background(), []Source{missing}).Wait(context.Background())
	if err == nil {
		t.Fatalf("expected read error")
	}

	_, err = NewEncoder().Encode(context.Background(), []Source{failingSource{}}).Wait(context.Background())
	if err == nil || !strings.Contains(err.Error(), "broken.png") {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestEncode_MaxBytes(t *testing.T) {
	enc := NewEncoder(WithMaxBytes(4))
	_, err := enc.Encode(context.Background(), []Source{FromBytes("big.png", pngHeader)}).Wait(context.Background())
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestStripDataURLHeader(t *testing.T) {
	cases := map[string]string{
		"data:image/png;base64,iVBOR":   "iVBOR",
		"data:text/plain;base64,YQ==,x": "YQ==,x",
		"no-comma":                      "no-comma",
		"":                              "",
	}
	for in, want := range cases {
		if got := StripDataURLHeader(in); got != want {
			t.Errorf("StripDataURLHeader(%q) = %q, want %q", in, got, want)
		}
	}
	if got := DataURL("image/png", []byte("a")); got != "data:image/png;base64,YQ==" {
		t.Fatalf("unexpected data URL %q", got)
	}
}

func TestContentTypeFallsBackToSniffing(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if got := contentType("avatar", png); got != "image/png" {
		t.Fatalf("contentType(no ext) = %q, want image/png", got)
	}
	if got := contentType("avatar.jpg", png); got != "image/jpeg" {
		t.Fatalf("contentType(.jpg) = %q, want image/jpeg", got)
	}
}

type failingSource struct{}

func (failingSource) Name() string { return "broken.png" }

func (failingSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(errReader{}), nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }
