package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine runs OCR through the tesseract C API. A fresh client is
// created per call because gosseract clients are not safe for concurrent use.
type TesseractEngine struct {
	language string
}

func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

func (e *TesseractEngine) ExtractFile(ctx context.Context, imagePath string) (string, error) {
	return runWithContext(ctx, func() (string, error) {
		client := e.newClient()
		defer client.Close()
		if err := client.SetImage(imagePath); err != nil {
			return "", fmt.Errorf("failed to load image %s: %w", imagePath, err)
		}
		text, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", imagePath, err)
		}
		return strings.TrimSpace(text), nil
	})
}

func (e *TesseractEngine) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	return runWithContext(ctx, func() (string, error) {
		client := e.newClient()
		defer client.Close()
		if err := client.SetImageFromBytes(data); err != nil {
			return "", fmt.Errorf("failed to load image: %w", err)
		}
		text, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("failed to extract text: %w", err)
		}
		return strings.TrimSpace(text), nil
	})
}

func (e *TesseractEngine) newClient() *gosseract.Client {
	client := gosseract.NewClient()
	client.SetLanguage(e.language)
	client.SetPageSegMode(gosseract.PSM_AUTO)
	return client
}
