package service

import (
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/propbase/ocr-gateway/config"
	"github.com/propbase/ocr-gateway/types"
)

// SupportedTypes lists the MIME types /upload accepts, in the order they are
// reported back on rejection.
var SupportedTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/tiff",
	"image/bmp",
}

var extToKind = map[string]types.DocumentKind{
	".pdf":  types.KindPDF,
	".jpg":  types.KindImage,
	".jpeg": types.KindImage,
	".png":  types.KindImage,
	".tif":  types.KindImage,
	".tiff": types.KindImage,
	".bmp":  types.KindImage,
}

// OCRService decides which engine reads an uploaded document and stitches
// per-page output back together. It is read-only after construction and safe
// for concurrent requests.
type OCRService struct {
	policy     string
	threshold  int
	timeout    time.Duration
	local      LocalEngine
	cloud      CloudEngine
	rasterizer Rasterizer
}

func NewOCRService(cfg *config.Config, local LocalEngine, cloud CloudEngine, rasterizer Rasterizer) *OCRService {
	timeout := cfg.OCRTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &OCRService{
		policy:     cfg.Policy,
		threshold:  cfg.FallbackThreshold,
		timeout:    timeout,
		local:      local,
		cloud:      cloud,
		rasterizer: rasterizer,
	}
}

// Classify maps the declared content type onto a document kind, consulting
// the file extension when the declared type is missing or generic.
func Classify(filename, contentType string) (types.DocumentKind, error) {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case "application/pdf":
		return types.KindPDF, nil
	case "image/jpeg", "image/png", "image/tiff", "image/bmp":
		return types.KindImage, nil
	case "", "application/octet-stream":
		if kind, ok := extToKind[strings.ToLower(filepath.Ext(filename))]; ok {
			return kind, nil
		}
	}

	rejected := contentType
	if rejected == "" {
		rejected = filepath.Ext(filename)
	}
	return types.KindUnsupported, types.NewClientInputError(
		"unsupported content type %q, supported types: %s",
		rejected, strings.Join(SupportedTypes, ", "))
}

// Extract runs the configured selection policy over one uploaded document.
// forceCloud carries the caller's use_google_vision flag; only the
// explicit-choice policy honors it.
func (s *OCRService) Extract(ctx context.Context, doc types.UploadedDocument, forceCloud bool) (types.ExtractionResult, error) {
	kind, err := Classify(doc.Filename, doc.ContentType)
	if err != nil {
		return types.ExtractionResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.policy == config.PolicyExplicitChoice {
		return s.extractExplicit(ctx, doc, kind, forceCloud)
	}
	return s.extractWithFallback(ctx, doc, kind)
}

// extractWithFallback always tries tesseract first. A local engine failure
// is deliberately converted to empty output in this one place, so the length
// test below decides whether the cloud engine sees the document; the caller
// cannot tell "found no text" apart from "engine crashed", matching the
// deployed behavior this policy reproduces.
func (s *OCRService) extractWithFallback(ctx context.Context, doc types.UploadedDocument, kind types.DocumentKind) (types.ExtractionResult, error) {
	text, err := s.runLocal(ctx, doc, kind)
	if err != nil {
		log.Printf("Local OCR failed, treating output as empty: %v", err)
		text = ""
	}
	if len(text) >= s.threshold {
		return types.ExtractionResult{Text: text, Source: types.SourceTesseract}, nil
	}

	log.Println("Falling back to Google Cloud Vision")
	if !s.cloud.Configured() {
		return types.ExtractionResult{}, &types.EngineExecutionError{
			Stage: "cloud OCR",
			Err:   fmt.Errorf("fallback triggered but Google Vision is not configured"),
		}
	}
	// One call over the original upload bytes, never over page images.
	cloudText, err := s.cloud.ExtractBytes(ctx, doc.Data)
	if err != nil {
		return types.ExtractionResult{}, &types.EngineExecutionError{Stage: "cloud OCR", Err: err}
	}
	return types.ExtractionResult{Text: cloudText, Source: types.SourceGoogleVision}, nil
}

// extractExplicit runs exactly the engine the caller asked for. Requesting
// the cloud engine while it is unconfigured fails the request before any
// local OCR work happens.
func (s *OCRService) extractExplicit(ctx context.Context, doc types.UploadedDocument, kind types.DocumentKind, forceCloud bool) (types.ExtractionResult, error) {
	if forceCloud {
		if !s.cloud.Configured() {
			return types.ExtractionResult{}, &types.EngineConfigError{Engine: "google-vision"}
		}
		text, err := s.cloud.ExtractBytes(ctx, doc.Data)
		if err != nil {
			return types.ExtractionResult{}, &types.EngineExecutionError{Stage: "cloud OCR", Err: err}
		}
		return types.ExtractionResult{Text: text, Source: types.SourceGoogleVision}, nil
	}

	text, err := s.runLocal(ctx, doc, kind)
	if err != nil {
		return types.ExtractionResult{}, &types.EngineExecutionError{Stage: "local OCR", Err: err}
	}
	return types.ExtractionResult{Text: text, Source: types.SourceTesseract}, nil
}

// runLocal OCRs the document with the local engine: directly for images,
// page by page for PDFs. Each non-empty page is preceded by a 1-based page
// marker; empty pages are omitted.
func (s *OCRService) runLocal(ctx context.Context, doc types.UploadedDocument, kind types.DocumentKind) (string, error) {
	if kind == types.KindImage {
		return s.local.ExtractBytes(ctx, doc.Data)
	}

	pages, cleanup, err := s.rasterizer.Rasterize(ctx, doc.Data)
	if err != nil {
		return "", fmt.Errorf("rasterization failed: %w", err)
	}
	defer cleanup()

	var sb strings.Builder
	for _, page := range pages {
		pageText, err := s.local.ExtractFile(ctx, page.Path)
		if err != nil {
			return "", fmt.Errorf("OCR failed on page %d: %w", page.Index, err)
		}
		if pageText == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n--- Page %d ---\n%s", page.Index, pageText)
	}
	return strings.TrimSpace(sb.String()), nil
}
