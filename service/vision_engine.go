package service

import (
	"bytes"
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/apiv1"
	"google.golang.org/api/option"
)

// VisionEngine wraps Google Cloud Vision document text detection. The client
// handle stays nil when no credentials were provided, and Configured reports
// that, so no caller ever dereferences an uninitialized client.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionEngine builds the cloud engine from an inline credentials JSON
// blob or a credentials file path, preferring the blob. With neither present
// the engine comes up unconfigured instead of failing startup.
func NewVisionEngine(ctx context.Context, credentialsJSON, credentialsFile string) (*VisionEngine, error) {
	var opts []option.ClientOption
	switch {
	case credentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	case credentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	default:
		return &VisionEngine{}, nil
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision client: %w", err)
	}
	return &VisionEngine{client: client}, nil
}

func (e *VisionEngine) Configured() bool {
	return e != nil && e.client != nil
}

// ExtractBytes sends the raw upload to document text detection. Vision
// accepts both image and PDF bytes here, so PDFs do not need rasterizing on
// this path.
func (e *VisionEngine) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	if !e.Configured() {
		return "", fmt.Errorf("vision client not configured")
	}

	img, err := vision.NewImageFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build vision image: %w", err)
	}
	annotation, err := e.client.DetectDocumentText(ctx, img, nil)
	if err != nil {
		return "", fmt.Errorf("document text detection failed: %w", err)
	}
	if annotation == nil {
		return "", nil
	}
	return annotation.GetText(), nil
}
