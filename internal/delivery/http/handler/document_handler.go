package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docsign/internal/domain/entity"
	"docsign/internal/usecase"
)

type DocumentHandler struct {
	documents usecase.DocumentUsecase
	signing   usecase.SigningUsecase
	logger    *zap.Logger
}

func NewDocumentHandler(documents usecase.DocumentUsecase, signing usecase.SigningUsecase, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		signing:   signing,
		logger:    logger,
	}
}

// CreateDocument godoc
// @Summary Create a document
// @Description Create a new document record, initially without a PDF
// @Tags documents
// @Accept json
// @Produce json
// @Param request body entity.CreateDocumentRequest true "Document to create"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/documents [post]
func (h *DocumentHandler) CreateDocument(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "Invalid request body"),
		)
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "Title is required"),
		)
	}

	doc, err := h.documents.Create(ctx, &req)
	if err != nil {
		h.logger.Error("Failed to create document", zap.Error(err))
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(doc, "Document created successfully"),
	)
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	doc, err := h.documents.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(doc, "Document retrieved successfully"))
}

// UploadPdf godoc
// @Summary Upload a PDF for a document
// @Description Store the uploaded PDF and point the document at it
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Document ID"
// @Param file formData file true "PDF file"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 413 {object} entity.APIResponse
// @Router /api/v1/documents/{id}/pdf [post]
func (h *DocumentHandler) UploadPdf(c *fiber.Ctx) error {
	ctx := c.UserContext()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "Multipart field 'file' is required"),
		)
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return respondError(c, err)
	}
	defer f.Close()

	doc, err := h.documents.UploadPdf(ctx, c.Params("id"),
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, f)
	if err != nil {
		h.logger.Error("Failed to upload pdf",
			zap.String("document_id", c.Params("id")),
			zap.Error(err),
		)
		return respondError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(doc, "PDF uploaded successfully"))
}

// UpdateSignatureBlocks godoc
// @Summary Replace a document's signature blocks
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body []entity.SignatureBlock true "Signature blocks"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/documents/{id}/pdf-signature-blocks [put]
func (h *DocumentHandler) UpdateSignatureBlocks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var blocks []entity.SignatureBlock
	if err := c.BodyParser(&blocks); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "Invalid request body"),
		)
	}

	doc, err := h.documents.UpdateSignatureBlocks(ctx, c.Params("id"), blocks)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(doc, "Signature blocks updated successfully"))
}

// ApplySignature godoc
// @Summary Apply a signature to one block
// @Description Stamp the submitted signature image onto the block's page region
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body entity.ApplyPdfSignatureRequest true "Signature payload"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/documents/{id}/apply-pdf-signature [post]
func (h *DocumentHandler) ApplySignature(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.ApplyPdfSignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "Invalid request body"),
		)
	}
	if req.SignatureBlockID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "signature_block_id is required"),
		)
	}

	meta := usecase.SignerMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}

	doc, err := h.signing.ApplySignature(ctx, c.Params("id"), &req, meta)
	if err != nil {
		h.logger.Error("Failed to apply signature",
			zap.String("document_id", c.Params("id")),
			zap.String("block_id", req.SignatureBlockID),
			zap.Error(err),
		)
		return respondError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(doc, "Signature applied successfully"))
}

// ExportPdf godoc
// @Summary Export the signed document
// @Description Merge the signature summary footer after the current PDF and download it
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/documents/{id}/export-pdf [get]
func (h *DocumentHandler) ExportPdf(c *fiber.Ctx) error {
	ctx := c.UserContext()

	path, downloadName, err := h.signing.ExportSigned(ctx, c.Params("id"))
	if err != nil {
		h.logger.Error("Failed to export document",
			zap.String("document_id", c.Params("id")),
			zap.Error(err),
		)
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, downloadName))
	return c.SendFile(path)
}

// GetPdfFile godoc
// @Summary Download a stored PDF by filename
// @Tags documents
// @Produce application/pdf
// @Param name path string true "Stored PDF filename"
// @Success 200 {file} file
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/documents/pdf/{name} [get]
func (h *DocumentHandler) GetPdfFile(c *fiber.Ctx) error {
	path, err := h.documents.ResolvePdf(c.Params("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.SendFile(path)
}

// TrackView godoc
// @Summary Record one view of the document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/documents/{id}/track-view [post]
func (h *DocumentHandler) TrackView(c *fiber.Ctx) error {
	if err := h.documents.TrackView(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "View recorded"))
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Remove the document, its signatures, stored files and cache entry
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	if err := h.documents.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.logger.Error("Failed to delete document",
			zap.String("document_id", c.Params("id")),
			zap.Error(err),
		)
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Document deleted successfully"))
}
