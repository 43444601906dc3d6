package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessFitsLargeImages(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 200, MaxHeight: 200, Quality: 80})

	out, err := p.Process(encodePNG(t, 800, 400))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Width != 200 || out.Height != 100 {
		t.Fatalf("expected 200x100, got %dx%d", out.Width, out.Height)
	}
	if out.ContentType != "image/jpeg" {
		t.Fatalf("expected jpeg, got %s", out.ContentType)
	}
	if _, format, err := image.DecodeConfig(bytes.NewReader(out.Data)); err != nil || format != "jpeg" {
		t.Fatalf("output is not a jpeg: %s %v", format, err)
	}
}

func TestProcessKeepsSmallImages(t *testing.T) {
	out, err := NewProcessor(DefaultConfig()).Process(encodePNG(t, 40, 30))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Width != 40 || out.Height != 30 {
		t.Fatalf("expected 40x30, got %dx%d", out.Width, out.Height)
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	if _, err := NewProcessor(DefaultConfig()).Process([]byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}
