package usecase

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"docsign/internal/config"
	"docsign/internal/domain/entity"
	"docsign/internal/domain/repository"
	"docsign/internal/infrastructure/idgen"
	"docsign/internal/infrastructure/redis"
	"docsign/internal/infrastructure/storage"
)

const (
	// Redis key prefix for the document mapping cache
	documentKeyPrefix = "docsign:document:"

	pdfURLPrefix = "/api/v1/documents/pdf/"
)

// DocumentMapping mirrors a document's current PDF pointer and signing
// progress in redis, so export and download paths can be traced without a
// database round trip.
type DocumentMapping struct {
	CurrentPdf   string    `json:"current_pdf"`
	Status       string    `json:"status"`
	SignedBlocks int       `json:"signed_blocks"`
	TotalBlocks  int       `json:"total_blocks"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DocumentUsecase interface {
	Create(ctx context.Context, req *entity.CreateDocumentRequest) (*entity.Document, error)
	Get(ctx context.Context, id string) (*entity.Document, error)
	// UploadPdf stores the uploaded file and points the document at it.
	UploadPdf(ctx context.Context, id, contentType string, size int64, r io.Reader) (*entity.Document, error)
	// UpdateSignatureBlocks replaces the document's block list wholesale.
	// Supplied block IDs are preserved so in-flight signing flows stay
	// valid; blocks without an ID get a generated one.
	UpdateSignatureBlocks(ctx context.Context, id string, blocks []entity.SignatureBlock) (*entity.Document, error)
	TrackView(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// ResolvePdf maps a bare stored filename to its on-disk path.
	ResolvePdf(name string) (string, error)
}

type documentUsecase struct {
	config      *config.Config
	docRepo     repository.DocumentRepository
	sigRepo     repository.SignatureRepository
	opLogRepo   repository.OperationLogRepository
	storage     storage.Service
	redisClient *redis.RedisClient
	ids         idgen.Generator
	logger      *zap.Logger
}

func NewDocumentUsecase(
	cfg *config.Config,
	docRepo repository.DocumentRepository,
	sigRepo repository.SignatureRepository,
	opLogRepo repository.OperationLogRepository,
	storageSvc storage.Service,
	redisClient *redis.RedisClient,
	ids idgen.Generator,
	logger *zap.Logger,
) DocumentUsecase {
	return &documentUsecase{
		config:      cfg,
		docRepo:     docRepo,
		sigRepo:     sigRepo,
		opLogRepo:   opLogRepo,
		storage:     storageSvc,
		redisClient: redisClient,
		ids:         ids,
		logger:      logger,
	}
}

func (u *documentUsecase) Create(ctx context.Context, req *entity.CreateDocumentRequest) (*entity.Document, error) {
	docType := req.Type
	if docType == "" {
		docType = entity.DocumentTypePdf
	}

	now := time.Now()
	doc := &entity.Document{
		ID:        u.ids.NewID(),
		Title:     req.Title,
		Type:      docType,
		Status:    entity.DocumentStatusDraft,
		Location:  req.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.docRepo.Create(ctx, doc); err != nil {
		u.logger.Error("Failed to create document", zap.Error(err))
		return nil, err
	}

	u.logger.Info("Document created",
		zap.String("document_id", doc.ID),
		zap.String("type", doc.Type),
	)
	return doc, nil
}

func (u *documentUsecase) Get(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := u.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (u *documentUsecase) UploadPdf(ctx context.Context, id, contentType string, size int64, r io.Reader) (*entity.Document, error) {
	doc, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	path, err := u.storage.Save(doc.ID, contentType, size, r)
	recordOperation(ctx, u.opLogRepo, u.logger, doc.ID, entity.OperationUpload, start, err)
	if err != nil {
		return nil, err
	}

	doc.Type = entity.DocumentTypePdf
	doc.PdfURL = pdfURLPrefix + filepath.Base(path)
	doc.UpdatedAt = time.Now()

	if err := u.docRepo.Update(ctx, doc); err != nil {
		u.logger.Error("Failed to update document after upload",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
		return nil, err
	}

	cacheMapping(ctx, u.redisClient, u.logger, doc)

	u.logger.Info("PDF uploaded for document",
		zap.String("document_id", doc.ID),
		zap.String("file", filepath.Base(path)),
	)
	return doc, nil
}

func (u *documentUsecase) UpdateSignatureBlocks(ctx context.Context, id string, blocks []entity.SignatureBlock) (*entity.Document, error) {
	doc, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Type != entity.DocumentTypePdf {
		return nil, ErrNotPdfDocument
	}

	existing := make(map[string]entity.SignatureBlock, len(doc.SignatureBlocks))
	for _, b := range doc.SignatureBlocks {
		existing[b.ID] = b
	}

	next := make([]entity.SignatureBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.ID == "" {
			b.ID = u.ids.NewID()
		}
		// A placement edit never unsigns a block that a signer already
		// stamped; the signed state follows the block ID.
		if prev, ok := existing[b.ID]; ok && prev.IsSigned {
			b.IsSigned = true
			b.SignatureID = prev.SignatureID
		}
		next = append(next, b)
	}

	doc.SignatureBlocks = next
	doc.UpdatedAt = time.Now()

	if err := u.docRepo.Update(ctx, doc); err != nil {
		u.logger.Error("Failed to update signature blocks",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
		return nil, err
	}

	u.logger.Info("Signature blocks updated",
		zap.String("document_id", doc.ID),
		zap.Int("count", len(next)),
	)
	return doc, nil
}

func (u *documentUsecase) TrackView(ctx context.Context, id string) error {
	doc, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	return u.docRepo.IncrementViewCount(ctx, doc.ID)
}

func (u *documentUsecase) Delete(ctx context.Context, id string) error {
	doc, err := u.Get(ctx, id)
	if err != nil {
		return err
	}

	start := time.Now()

	if err := u.sigRepo.DeleteByDocument(ctx, doc.ID); err != nil {
		recordOperation(ctx, u.opLogRepo, u.logger, doc.ID, entity.OperationDelete, start, err)
		return err
	}
	if err := u.docRepo.Delete(ctx, doc.ID); err != nil {
		recordOperation(ctx, u.opLogRepo, u.logger, doc.ID, entity.OperationDelete, start, err)
		return err
	}

	// File and cache cleanup is best effort; the rows are already gone and a
	// leftover file must not fail the delete.
	if err := u.storage.Purge(doc.ID); err != nil {
		u.logger.Warn("Failed to purge document files",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
	}
	if err := u.redisClient.Del(ctx, documentKeyPrefix+doc.ID); err != nil {
		u.logger.Warn("Failed to drop document mapping from redis",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
	}

	recordOperation(ctx, u.opLogRepo, u.logger, doc.ID, entity.OperationDelete, start, nil)

	u.logger.Info("Document deleted", zap.String("document_id", doc.ID))
	return nil
}

func (u *documentUsecase) ResolvePdf(name string) (string, error) {
	return u.storage.Resolve(name)
}
