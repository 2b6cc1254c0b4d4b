package service

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/propbase/ocr-gateway/types"
)

// PopplerRasterizer renders PDF pages to PNG with poppler's pdftoppm, the
// same collaborator used for page counting via pdfinfo.
type PopplerRasterizer struct {
	dpi int
}

func NewPopplerRasterizer(dpi int) *PopplerRasterizer {
	if dpi <= 0 {
		dpi = 300
	}
	return &PopplerRasterizer{dpi: dpi}
}

var pagesRe = regexp.MustCompile(`Pages:\s+(\d+)`)

// PageCount uses pdfinfo to get the total number of pages in a PDF file.
func (r *PopplerRasterizer) PageCount(ctx context.Context, pdfPath string) (int, error) {
	cmd := exec.CommandContext(ctx, "pdfinfo", pdfPath)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := pagesRe.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}

	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

// Rasterize writes pdfBytes into a fresh temp dir, renders every page to PNG
// and returns the pages in page order. The returned cleanup removes the temp
// dir with everything in it and must run on every exit path, including
// failures partway through OCR.
func (r *PopplerRasterizer) Rasterize(ctx context.Context, pdfBytes []byte) ([]types.PageImage, func(), error) {
	tempDir, err := os.MkdirTemp("", "ocr-gateway-*")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(tempDir) }

	pdfPath := filepath.Join(tempDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o600); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	if total, err := r.PageCount(ctx, pdfPath); err == nil {
		log.Println("Total pages: ", total)
	}

	convertCmd := exec.CommandContext(ctx, "pdftoppm",
		"-r", strconv.Itoa(r.dpi),
		"-png", pdfPath, filepath.Join(tempDir, "page"))
	if out, err := convertCmd.CombinedOutput(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm failed: %w: %s", err, string(out))
	}

	files, err := filepath.Glob(filepath.Join(tempDir, "page-*.png"))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to read page images: %w", err)
	}
	if len(files) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm produced no page images")
	}
	// pdftoppm zero-pads page numbers to a fixed width, so lexicographic
	// order is page order.
	sort.Strings(files)

	pages := make([]types.PageImage, 0, len(files))
	for i, f := range files {
		pages = append(pages, types.PageImage{Index: i + 1, Path: f})
	}
	return pages, cleanup, nil
}
