package service

import (
	"context"

	"github.com/propbase/ocr-gateway/types"
)

// LocalEngine is an OCR engine running on the same host, no network
// dependency. Implementations must be safe for concurrent use.
type LocalEngine interface {
	ExtractFile(ctx context.Context, imagePath string) (string, error)
	ExtractBytes(ctx context.Context, data []byte) (string, error)
}

// CloudEngine is a remote OCR API reached over the network. Configured
// reports whether credentials were provided at startup; every caller must
// check it before ExtractBytes instead of assuming initialization succeeded.
type CloudEngine interface {
	ExtractBytes(ctx context.Context, data []byte) (string, error)
	Configured() bool
}

// Rasterizer converts raw PDF bytes into one page image per page. The
// returned cleanup func removes every intermediate file and must be called
// on all exit paths.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfBytes []byte) ([]types.PageImage, func(), error)
}

// runWithContext runs a blocking extraction under ctx. The tesseract C API
// has no cancellation hook, so on timeout the in-flight call is abandoned
// and its result discarded.
func runWithContext(ctx context.Context, fn func() (string, error)) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := fn()
		ch <- result{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}
