package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docsign/internal/domain/entity"
)

// writeSamplePdf builds a minimal but well-formed PDF with one page per
// given [width, height] pair and writes it to path.
func writeSamplePdf(t *testing.T, path string, dims ...[2]float64) {
	t.Helper()
	require.NotEmpty(t, dims)

	kids := make([]string, len(dims))
	for i := range dims {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(dims)),
	}
	for i, d := range dims {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << >> /Contents %d 0 R >>", d[0], d[1], 4+2*i),
			"<< /Length 0 >>\nstream\nendstream",
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xrefOffset)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func a4Pages(n int) [][2]float64 {
	dims := make([][2]float64, n)
	for i := range dims {
		dims[i] = [2]float64{a4Width, a4Height}
	}
	return dims
}

func testBlock(page int) entity.SignatureBlock {
	return entity.SignatureBlock{
		ID:            "block-1",
		PageNumber:    page,
		XPercent:      10,
		YPercent:      70,
		WidthPercent:  25,
		HeightPercent: 8,
		SignerRole:    "Bên A",
	}
}

func TestStampCreatesSignedVariant(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, source, a4Pages(2)...)

	engine := NewEngine(zap.NewNop())

	output, err := engine.Stamp(source, pngBytes(t, 200, 80), testBlock(1))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "doc_signed.pdf"), output)

	// The stamped file is a new variant; the source is untouched.
	count, err := engine.PageCount(output)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	sourceCount, err := engine.PageCount(source)
	require.NoError(t, err)
	require.Equal(t, 2, sourceCount)
}

func TestStampLandscapePage(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, source, [2]float64{a4Height, a4Width})

	engine := NewEngine(zap.NewNop())

	output, err := engine.Stamp(source, pngBytes(t, 200, 80), testBlock(0))
	require.NoError(t, err)

	count, err := engine.PageCount(output)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestStampPageOutOfRange(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, source, a4Pages(2)...)

	engine := NewEngine(zap.NewNop())

	for _, page := range []int{-1, 2, 5} {
		_, err := engine.Stamp(source, pngBytes(t, 200, 80), testBlock(page))
		require.True(t, errors.Is(err, ErrPageOutOfRange), "page %d", page)
	}

	// No partial output must be left behind.
	_, err := os.Stat(filepath.Join(dir, "doc_signed.pdf"))
	require.True(t, os.IsNotExist(err))
}

func TestStampMissingSource(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	_, err := engine.Stamp(filepath.Join(t.TempDir(), "missing.pdf"), pngBytes(t, 10, 10), testBlock(0))
	require.True(t, errors.Is(err, ErrPdfNotFound))
}

func TestStampRejectsInvalidGeometry(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, source, a4Pages(1)...)

	engine := NewEngine(zap.NewNop())

	block := testBlock(0)
	block.YPercent = 98
	block.HeightPercent = 10

	_, err := engine.Stamp(source, pngBytes(t, 10, 10), block)
	require.True(t, errors.Is(err, ErrInvalidGeometry))

	_, err = os.Stat(filepath.Join(dir, "doc_signed.pdf"))
	require.True(t, os.IsNotExist(err))
}

func TestStampRejectsNonImagePayload(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, source, a4Pages(1)...)

	engine := NewEngine(zap.NewNop())

	_, err := engine.Stamp(source, []byte("definitely not an image"), testBlock(0))
	require.True(t, errors.Is(err, ErrUnsupportedImageFormat))

	_, err = os.Stat(filepath.Join(dir, "doc_signed.pdf"))
	require.True(t, os.IsNotExist(err))
}

func TestStampTwiceProducesChainedVariant(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, source, a4Pages(1)...)

	engine := NewEngine(zap.NewNop())

	first, err := engine.Stamp(source, pngBytes(t, 200, 80), testBlock(0))
	require.NoError(t, err)

	second := testBlock(0)
	second.ID = "block-2"
	second.XPercent = 60

	output, err := engine.Stamp(first, pngBytes(t, 200, 80), second)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "doc_signed_signed.pdf"), output)
}

func TestMergeAppendsFooter(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, original, a4Pages(2)...)

	footerPath := filepath.Join(dir, "footer.pdf")
	writeSamplePdf(t, footerPath, a4Pages(1)...)
	footerBytes, err := os.ReadFile(footerPath)
	require.NoError(t, err)

	engine := NewEngine(zap.NewNop())

	output, err := engine.Merge(original, footerBytes)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "doc_merged.pdf"), output)

	count, err := engine.PageCount(output)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestMergeEmptyFooter(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "doc.pdf")
	writeSamplePdf(t, original, a4Pages(1)...)

	engine := NewEngine(zap.NewNop())

	_, err := engine.Merge(original, nil)
	require.True(t, errors.Is(err, ErrFooterGeneration))
}

func TestMergeMissingOriginal(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	_, err := engine.Merge(filepath.Join(t.TempDir(), "missing.pdf"), []byte("%PDF-1.4"))
	require.True(t, errors.Is(err, ErrPdfNotFound))
}

func TestDerivedPath(t *testing.T) {
	require.Equal(t, "/data/pdfs/doc_signed.pdf", derivedPath("/data/pdfs/doc.pdf", signedSuffix))
	require.Equal(t, "/data/pdfs/doc_merged.pdf", derivedPath("/data/pdfs/doc.pdf", mergedSuffix))
	require.Equal(t, "/data/pdfs/doc_signed_merged.pdf", derivedPath("/data/pdfs/doc_signed.pdf", mergedSuffix))
}
