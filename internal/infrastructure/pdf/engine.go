package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"docsign/internal/domain/entity"
)

// Derived artifact suffixes. A stamp never overwrites its source and a merge
// never overwrites a stamped file, so retries and audits always have the
// prior artifact available.
const (
	signedSuffix = "_signed"
	mergedSuffix = "_merged"
)

// Engine stamps signature images onto existing PDFs and concatenates footer
// pages, via pdfcpu.
type Engine struct {
	conf   *model.Configuration
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	conf := model.NewDefaultConfiguration()
	return &Engine{
		conf:   conf,
		logger: logger,
	}
}

// Stamp draws the decoded signature image onto the block's page of the source
// PDF and writes the result to a new file next to the source, named with the
// _signed suffix. The image is applied as an on-top watermark, which appends
// drawing instructions to the page's existing content stream and leaves all
// prior page content untouched.
//
// All input validation happens before any output file is created. On a write
// failure the partially written output is removed.
func (e *Engine) Stamp(sourcePath string, imageBytes []byte, block entity.SignatureBlock) (string, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrPdfNotFound, filepath.Base(sourcePath))
	}

	pageCount, err := pdfapi.PageCountFile(sourcePath)
	if err != nil {
		return "", &ProcessingError{Op: "page count", Err: err}
	}
	if block.PageNumber < 0 || block.PageNumber >= pageCount {
		return "", fmt.Errorf("%w: page %d, document has %d pages", ErrPageOutOfRange, block.PageNumber, pageCount)
	}

	dims, err := pdfapi.PageDimsFile(sourcePath)
	if err != nil {
		return "", &ProcessingError{Op: "page dimensions", Err: err}
	}
	dim := dims[block.PageNumber]

	rect, err := BlockRect(block, dim.Width, dim.Height)
	if err != nil {
		return "", err
	}

	imgWidth, _, err := imageSize(imageBytes)
	if err != nil {
		return "", err
	}

	// pdfcpu scales images proportionally from their natural size (1px = 1pt),
	// so the stamp is fitted to the block width and anchored at the block's
	// bottom-left corner. Callers submit captures proportioned to the block.
	scale := rect.Width / float64(imgWidth)

	outputPath := derivedPath(sourcePath, signedSuffix)
	if err := copyFile(sourcePath, outputPath); err != nil {
		return "", &ProcessingError{Op: "copy source", Err: err}
	}

	desc := fmt.Sprintf("scale:%.4f abs, pos:bl, rot:0, op:1", scale)
	wm, err := pdfapi.ImageWatermarkForReader(bytes.NewReader(imageBytes), desc, true, false, types.POINTS)
	if err != nil {
		os.Remove(outputPath)
		return "", &ProcessingError{Op: "build watermark", Err: err}
	}
	wm.Dx = rect.X
	wm.Dy = rect.Y

	pages := []string{strconv.Itoa(block.PageNumber + 1)}
	if err := pdfapi.AddWatermarksFile(outputPath, "", pages, wm, e.conf); err != nil {
		os.Remove(outputPath)
		return "", &ProcessingError{Op: "apply stamp", Err: err}
	}

	e.logger.Info("Signature stamped onto PDF",
		zap.String("output", filepath.Base(outputPath)),
		zap.Int("page", block.PageNumber),
		zap.Float64("x", rect.X),
		zap.Float64("y", rect.Y),
		zap.Float64("width", rect.Width),
		zap.Float64("height", rect.Height),
	)

	return outputPath, nil
}

// Merge appends the footer PDF's pages after all pages of the original,
// writing the result to a new _merged file next to the original. Page content
// is copied without re-rendering, so earlier stamps keep full fidelity.
func (e *Engine) Merge(originalPath string, footerPdf []byte) (string, error) {
	if _, err := os.Stat(originalPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrPdfNotFound, filepath.Base(originalPath))
	}
	if len(footerPdf) == 0 {
		return "", ErrFooterGeneration
	}

	footerFile, err := os.CreateTemp("", "footer-*.pdf")
	if err != nil {
		return "", &ProcessingError{Op: "write footer", Err: err}
	}
	footerPath := footerFile.Name()
	defer os.Remove(footerPath)

	if _, err := footerFile.Write(footerPdf); err != nil {
		footerFile.Close()
		return "", &ProcessingError{Op: "write footer", Err: err}
	}
	if err := footerFile.Close(); err != nil {
		return "", &ProcessingError{Op: "write footer", Err: err}
	}

	outputPath := derivedPath(originalPath, mergedSuffix)
	if err := pdfapi.MergeCreateFile([]string{originalPath, footerPath}, outputPath, false, e.conf); err != nil {
		os.Remove(outputPath)
		return "", &ProcessingError{Op: "merge", Err: err}
	}

	e.logger.Info("PDF merged with footer",
		zap.String("output", filepath.Base(outputPath)),
	)

	return outputPath, nil
}

// PageCount returns the number of pages in the PDF at path.
func (e *Engine) PageCount(path string) (int, error) {
	n, err := pdfapi.PageCountFile(path)
	if err != nil {
		return 0, &ProcessingError{Op: "page count", Err: err}
	}
	return n, nil
}

// derivedPath appends suffix to the file's base name, keeping directory and
// extension: /x/doc.pdf -> /x/doc_signed.pdf.
func derivedPath(sourcePath, suffix string) string {
	dir := filepath.Dir(sourcePath)
	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(filepath.Base(sourcePath), ext)
	return filepath.Join(dir, base+suffix+ext)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
