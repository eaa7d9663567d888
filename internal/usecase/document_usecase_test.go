package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docsign/internal/config"
	"docsign/internal/domain/entity"
)

func newTestDocumentUsecase(docRepo *fakeDocRepo, sigRepo *fakeSigRepo, opLog *fakeOpLogRepo) DocumentUsecase {
	return NewDocumentUsecase(
		&config.Config{},
		docRepo,
		sigRepo,
		opLog,
		&fakeStorage{basePath: "/tmp/pdfs", files: map[string]string{}},
		unreachableRedis(),
		&sequenceIDs{},
		zap.NewNop(),
	)
}

func TestCreateDocumentDefaults(t *testing.T) {
	docRepo := newFakeDocRepo()
	uc := newTestDocumentUsecase(docRepo, &fakeSigRepo{}, &fakeOpLogRepo{})

	doc, err := uc.Create(context.Background(), &entity.CreateDocumentRequest{Title: "Hợp đồng"})
	require.NoError(t, err)

	require.NotEmpty(t, doc.ID)
	require.Equal(t, entity.DocumentTypePdf, doc.Type)
	require.Equal(t, entity.DocumentStatusDraft, doc.Status)
	require.Contains(t, docRepo.docs, doc.ID)
}

func TestGetDocumentNotFound(t *testing.T) {
	uc := newTestDocumentUsecase(newFakeDocRepo(), &fakeSigRepo{}, &fakeOpLogRepo{})

	_, err := uc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestUploadPdfPointsDocumentAtFile(t *testing.T) {
	doc := pdfDocument()
	doc.PdfURL = ""
	doc.Type = entity.DocumentTypeContract
	docRepo := newFakeDocRepo(doc)
	opLog := &fakeOpLogRepo{}
	uc := newTestDocumentUsecase(docRepo, &fakeSigRepo{}, opLog)

	updated, err := uc.UploadPdf(context.Background(), doc.ID, "application/pdf", 100, strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	require.Equal(t, entity.DocumentTypePdf, updated.Type)
	require.Equal(t, "/api/v1/documents/pdf/doc-1_upload.pdf", updated.PdfURL)

	require.Len(t, opLog.entries, 1)
	require.Equal(t, entity.OperationUpload, opLog.entries[0].Operation)
	require.Equal(t, "success", opLog.entries[0].Outcome)
}

func TestUpdateSignatureBlocksAssignsIDs(t *testing.T) {
	doc := pdfDocument()
	uc := newTestDocumentUsecase(newFakeDocRepo(doc), &fakeSigRepo{}, &fakeOpLogRepo{})

	updated, err := uc.UpdateSignatureBlocks(context.Background(), doc.ID, []entity.SignatureBlock{
		{PageNumber: 0, XPercent: 10, YPercent: 10, WidthPercent: 20, HeightPercent: 10, SignerRole: "Bên A"},
		{ID: "keep-me", PageNumber: 1, XPercent: 50, YPercent: 50, WidthPercent: 20, HeightPercent: 10, SignerRole: "Bên B"},
	})
	require.NoError(t, err)

	require.Len(t, updated.SignatureBlocks, 2)
	require.NotEmpty(t, updated.SignatureBlocks[0].ID)
	require.Equal(t, "keep-me", updated.SignatureBlocks[1].ID)
}

func TestUpdateSignatureBlocksPreservesSignedState(t *testing.T) {
	doc := pdfDocument(entity.SignatureBlock{
		ID: "b1", PageNumber: 0, XPercent: 10, YPercent: 10, WidthPercent: 20, HeightPercent: 10,
		IsSigned: true, SignatureID: "s1",
	})
	uc := newTestDocumentUsecase(newFakeDocRepo(doc), &fakeSigRepo{}, &fakeOpLogRepo{})

	// A client resubmitting the block layout must not be able to wipe the
	// signed flag, even if it sends isSigned false.
	updated, err := uc.UpdateSignatureBlocks(context.Background(), doc.ID, []entity.SignatureBlock{
		{ID: "b1", PageNumber: 0, XPercent: 15, YPercent: 12, WidthPercent: 20, HeightPercent: 10, IsSigned: false},
	})
	require.NoError(t, err)

	require.True(t, updated.SignatureBlocks[0].IsSigned)
	require.Equal(t, "s1", updated.SignatureBlocks[0].SignatureID)
	require.InDelta(t, 15, updated.SignatureBlocks[0].XPercent, 0.001)
}

func TestUpdateSignatureBlocksRequiresPdfType(t *testing.T) {
	doc := pdfDocument()
	doc.Type = entity.DocumentTypeContract
	uc := newTestDocumentUsecase(newFakeDocRepo(doc), &fakeSigRepo{}, &fakeOpLogRepo{})

	_, err := uc.UpdateSignatureBlocks(context.Background(), doc.ID, nil)
	require.ErrorIs(t, err, ErrNotPdfDocument)
}

func TestTrackViewIncrements(t *testing.T) {
	doc := pdfDocument()
	docRepo := newFakeDocRepo(doc)
	uc := newTestDocumentUsecase(docRepo, &fakeSigRepo{}, &fakeOpLogRepo{})

	require.NoError(t, uc.TrackView(context.Background(), doc.ID))
	require.NoError(t, uc.TrackView(context.Background(), doc.ID))
	require.Equal(t, 2, docRepo.docs[doc.ID].ViewCount)
}

func TestDeleteDocumentCascades(t *testing.T) {
	doc := pdfDocument(entity.SignatureBlock{ID: "b1", IsSigned: true})
	docRepo := newFakeDocRepo(doc)
	sigRepo := &fakeSigRepo{sigs: []entity.Signature{
		{ID: "s1", DocumentID: doc.ID, SignerID: "b1"},
		{ID: "s2", DocumentID: "other-doc", SignerID: "x"},
	}}
	opLog := &fakeOpLogRepo{}
	uc := newTestDocumentUsecase(docRepo, sigRepo, opLog)

	require.NoError(t, uc.Delete(context.Background(), doc.ID))

	require.NotContains(t, docRepo.docs, doc.ID)
	require.Len(t, sigRepo.sigs, 1)
	require.Equal(t, "other-doc", sigRepo.sigs[0].DocumentID)

	require.Len(t, opLog.entries, 1)
	require.Equal(t, entity.OperationDelete, opLog.entries[0].Operation)
}
