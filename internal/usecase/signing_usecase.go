package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"docsign/internal/config"
	"docsign/internal/domain/entity"
	"docsign/internal/domain/repository"
	"docsign/internal/infrastructure/idgen"
	"docsign/internal/infrastructure/pdf"
	"docsign/internal/infrastructure/redis"
	"docsign/internal/infrastructure/renderer"
	"docsign/internal/infrastructure/storage"
)

// SignerMeta carries request-level signer forensics stored with the
// signature record.
type SignerMeta struct {
	IPAddress string
	UserAgent string
}

type SigningUsecase interface {
	// ApplySignature stamps one signature block of the document's current
	// PDF with the submitted image, flips the block to signed, repoints the
	// document at the new _signed file and records the signature.
	ApplySignature(ctx context.Context, documentID string, req *entity.ApplyPdfSignatureRequest, meta SignerMeta) (*entity.Document, error)

	// ExportSigned renders the signature summary footer, merges it after
	// the document's current PDF and returns the merged file's path along
	// with the suggested download filename.
	ExportSigned(ctx context.Context, documentID string) (string, string, error)
}

type signingUsecase struct {
	config      *config.Config
	docRepo     repository.DocumentRepository
	sigRepo     repository.SignatureRepository
	opLogRepo   repository.OperationLogRepository
	engine      *pdf.Engine
	storage     storage.Service
	renderer    renderer.HtmlToPdf
	redisClient *redis.RedisClient
	ids         idgen.Generator
	locks       *keyedMutex
	logger      *zap.Logger
}

func NewSigningUsecase(
	cfg *config.Config,
	docRepo repository.DocumentRepository,
	sigRepo repository.SignatureRepository,
	opLogRepo repository.OperationLogRepository,
	engine *pdf.Engine,
	storageSvc storage.Service,
	htmlRenderer renderer.HtmlToPdf,
	redisClient *redis.RedisClient,
	ids idgen.Generator,
	logger *zap.Logger,
) SigningUsecase {
	return &signingUsecase{
		config:      cfg,
		docRepo:     docRepo,
		sigRepo:     sigRepo,
		opLogRepo:   opLogRepo,
		engine:      engine,
		storage:     storageSvc,
		renderer:    htmlRenderer,
		redisClient: redisClient,
		ids:         ids,
		locks:       newKeyedMutex(),
		logger:      logger,
	}
}

func (u *signingUsecase) ApplySignature(ctx context.Context, documentID string, req *entity.ApplyPdfSignatureRequest, meta SignerMeta) (*entity.Document, error) {
	// Stamps on the same document are serialized so concurrent signers each
	// stamp the latest file instead of racing on a stale snapshot.
	unlock := u.locks.Lock(documentID)
	defer unlock()

	doc, err := u.loadPdfDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	block := doc.FindBlock(req.SignatureBlockID)
	if block == nil {
		u.logger.Warn("Signature block not found",
			zap.String("document_id", documentID),
			zap.String("block_id", req.SignatureBlockID),
			zap.Int("blocks", len(doc.SignatureBlocks)),
		)
		return nil, ErrBlockNotFound
	}
	if block.IsSigned {
		return nil, ErrBlockAlreadySigned
	}

	// All input validation happens before any PDF is touched.
	imageBytes, err := pdf.DecodeSignatureImage(req.SignatureImageBase64)
	if err != nil {
		return nil, err
	}

	sourcePath, err := u.storage.Resolve(doc.PdfURL)
	if err != nil {
		return nil, fmt.Errorf("%w: current pdf missing", pdf.ErrPdfNotFound)
	}

	start := time.Now()
	outputPath, err := u.engine.Stamp(sourcePath, imageBytes, *block)
	recordOperation(ctx, u.opLogRepo, u.logger, doc.ID, entity.OperationStamp, start, err)
	if err != nil {
		u.logger.Error("Failed to stamp signature",
			zap.String("document_id", doc.ID),
			zap.String("block_id", block.ID),
			zap.Int("page", block.PageNumber),
			zap.Error(err),
		)
		return nil, err
	}

	// The pointer moves only after the new file is fully written.
	sigID := u.ids.NewID()
	block.IsSigned = true
	block.SignatureID = sigID
	doc.PdfURL = pdfURLPrefix + filepath.Base(outputPath)
	if doc.AllBlocksSigned() {
		doc.Status = entity.DocumentStatusSigned
	} else {
		doc.Status = entity.DocumentStatusPartiallySigned
	}
	doc.UpdatedAt = time.Now()

	if err := u.docRepo.Update(ctx, doc); err != nil {
		u.logger.Error("Failed to update document after stamp",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := u.saveSignatureRecord(ctx, doc, block, sigID, req, meta); err != nil {
		return nil, err
	}

	cacheMapping(ctx, u.redisClient, u.logger, doc)

	u.logger.Info("Signature applied",
		zap.String("document_id", doc.ID),
		zap.String("block_id", block.ID),
		zap.String("signer_role", block.SignerRole),
		zap.String("status", doc.Status),
	)
	return doc, nil
}

func (u *signingUsecase) ExportSigned(ctx context.Context, documentID string) (string, string, error) {
	// The export reads the current pointer and writes a merged derivative;
	// it takes the document lock so a concurrent stamp cannot slip between
	// the read and the merge.
	unlock := u.locks.Lock(documentID)
	defer unlock()

	doc, err := u.loadPdfDocument(ctx, documentID)
	if err != nil {
		return "", "", err
	}

	signatures, err := u.sigRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return "", "", err
	}

	footerHTML := buildFooterHTML(doc, signatures)

	footerPdf, err := u.renderer.Render(ctx, footerHTML)
	if err != nil || len(footerPdf) == 0 {
		// The merge path requires a footer; a render failure here is fatal,
		// unlike ad hoc renders where the caller proceeds without one.
		u.logger.Error("Footer render failed during export",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
		return "", "", pdf.ErrFooterGeneration
	}

	sourcePath, err := u.storage.Resolve(doc.PdfURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: current pdf missing", pdf.ErrPdfNotFound)
	}

	start := time.Now()
	mergedPath, err := u.engine.Merge(sourcePath, footerPdf)
	recordOperation(ctx, u.opLogRepo, u.logger, doc.ID, entity.OperationMerge, start, err)
	if err != nil {
		u.logger.Error("Failed to merge footer",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
		return "", "", err
	}

	doc.PdfURL = pdfURLPrefix + filepath.Base(mergedPath)
	doc.UpdatedAt = time.Now()
	if err := u.docRepo.Update(ctx, doc); err != nil {
		u.logger.Error("Failed to update document after merge",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
		return "", "", err
	}

	cacheMapping(ctx, u.redisClient, u.logger, doc)

	downloadName := fmt.Sprintf("%s_signed_%s.pdf", doc.ID, time.Now().UTC().Format("20060102150405"))

	u.logger.Info("Document exported with signature footer",
		zap.String("document_id", doc.ID),
		zap.Int("signatures", len(signatures)),
	)
	return mergedPath, downloadName, nil
}

func (u *signingUsecase) loadPdfDocument(ctx context.Context, documentID string) (*entity.Document, error) {
	doc, err := u.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	if doc.Type != entity.DocumentTypePdf || doc.PdfURL == "" {
		return nil, ErrNotPdfDocument
	}
	return doc, nil
}

// saveSignatureRecord persists the signature row backing the block. A row
// that already exists is tolerated, the PDF is already stamped and a repeated
// click must not fail the request.
func (u *signingUsecase) saveSignatureRecord(ctx context.Context, doc *entity.Document, block *entity.SignatureBlock, sigID string, req *entity.ApplyPdfSignatureRequest, meta SignerMeta) error {
	exists, err := u.sigRepo.ExistsForBlock(ctx, doc.ID, block.ID)
	if err != nil {
		return err
	}
	if exists {
		u.logger.Warn("Signature record already exists, continuing",
			zap.String("document_id", doc.ID),
			zap.String("block_id", block.ID),
		)
		return nil
	}

	sig := &entity.Signature{
		ID:          sigID,
		DocumentID:  doc.ID,
		SignerID:    block.ID,
		SignerRole:  block.SignerRole,
		SignerName:  req.SignerName,
		SignerEmail: req.SignerEmail,
		Data: entity.SignatureData{
			Type:  entity.SignatureTypeDraw,
			Data:  req.SignatureImageBase64,
			Color: "#000000",
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		SignedAt:  time.Now(),
	}
	return u.sigRepo.Save(ctx, sig)
}
