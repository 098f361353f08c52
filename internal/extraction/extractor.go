package extraction

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	ErrExtraction        = errors.New("resume text extraction failed")
)

// Document is a resume handed to the extractor either as a path on disk or
// as a byte stream. When Reader is set it takes precedence over Path and is
// materialized to a temporary file for the duration of the call.
type Document struct {
	Path   string
	Reader io.Reader
	Format Format
}

// FormatFromFilename resolves the declared format from a file extension.
// Legacy .doc uploads go through the docx path, matching upload validation.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx", ".doc":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

type Extractor struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{logger: logger}
}

// Extract converts a resume document into plain text. Pages or paragraphs
// without extractable text are skipped without failing the call.
func (e *Extractor) Extract(doc Document) (string, error) {
	if doc.Format != FormatPDF && doc.Format != FormatDOCX {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}

	path := doc.Path
	if doc.Reader != nil {
		tmpPath, cleanup, err := materialize(doc.Reader, doc.Format)
		if err != nil {
			return "", err
		}
		defer cleanup()
		path = tmpPath
	}
	if path == "" {
		return "", fmt.Errorf("%w: no path or stream", ErrExtraction)
	}

	switch doc.Format {
	case FormatPDF:
		return e.extractPDF(path)
	default:
		return e.extractDOCX(path)
	}
}

func (e *Extractor) extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", ErrExtraction, err)
	}
	defer func() { _ = f.Close() }()

	lines := make([]string, 0, r.NumPage())
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Scanned-image or malformed page; the rest may still be readable.
			e.logger.Printf("[Extractor] skipping unreadable pdf page %d: %v", pageIndex, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), nil
}

func (e *Extractor) extractDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open docx: %v", ErrExtraction, err)
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat docx: %v", ErrExtraction, err)
	}

	doc, err := docx.Parse(f, st.Size())
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %v", ErrExtraction, err)
	}

	lines := make([]string, 0, len(doc.Document.Body.Items))
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(para.String()); text != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// materialize copies a stream to a scoped temporary file. The returned
// cleanup must run on every exit path so no temp files or handles leak.
func materialize(r io.Reader, format Format) (string, func(), error) {
	tmp, err := os.CreateTemp("", "resume-*."+string(format))
	if err != nil {
		return "", nil, fmt.Errorf("%w: create temp file: %v", ErrExtraction, err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("%w: buffer stream: %v", ErrExtraction, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("%w: flush temp file: %v", ErrExtraction, err)
	}

	name := tmp.Name()
	return name, func() { _ = os.Remove(name) }, nil
}
