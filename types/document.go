package types

// Source tags identifying which engine produced an extraction. These two
// values are the only ones that ever appear in a response.
const (
	SourceTesseract    = "tesseract"
	SourceGoogleVision = "gcv"
)

// DocumentKind classifies an upload by what the dispatcher must do with it.
type DocumentKind int

const (
	KindUnsupported DocumentKind = iota
	KindPDF
	KindImage
)

// UploadedDocument holds one upload for the duration of a single request.
type UploadedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PageImage is one rasterized PDF page on disk. Index is 1-based and the
// file lives in a per-request temp dir removed when the request finishes.
type PageImage struct {
	Index int
	Path  string
}

// ExtractionResult is what the dispatcher hands back to the HTTP layer.
// Text may be empty; Source is always one of the source tags above.
type ExtractionResult struct {
	Text   string
	Source string
}
