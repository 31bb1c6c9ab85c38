package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/tubemap/pkg/errors"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><circle cx="5" cy="5" r="4" fill="#DC241F"/></svg>`

func TestConvert(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()

	png, err := ToPNG(ctx, []byte(testSVG), 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG() output is not a PNG")
	}

	pdf, err := ToPDF(ctx, []byte(testSVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF() output is not a PDF")
	}
}

func TestConvertMissingTool(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPDF(context.Background(), []byte(testSVG))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}
