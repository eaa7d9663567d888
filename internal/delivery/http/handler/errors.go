package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docsign/internal/domain/entity"
	"docsign/internal/infrastructure/pdf"
	"docsign/internal/infrastructure/storage"
	"docsign/internal/usecase"
)

// respondError maps domain and processing errors to the API envelope. Input
// errors keep their sentinel message; anything else is reported as a generic
// processing failure so internal paths never leak to clients.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrDocumentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse(entity.ErrCodeNotFound, "Document not found"),
		)
	case errors.Is(err, usecase.ErrBlockNotFound):
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse(entity.ErrCodeNotFound, "Signature block not found"),
		)
	case errors.Is(err, usecase.ErrBlockAlreadySigned):
		return c.Status(fiber.StatusConflict).JSON(
			entity.NewErrorResponse(entity.ErrCodeAlreadySigned, "Signature block already signed"),
		)
	case errors.Is(err, usecase.ErrNotPdfDocument):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "Document has no PDF attached"),
		)
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(
			entity.NewErrorResponse(entity.ErrCodeFileTooLarge, "File exceeds maximum upload size"),
		)
	case errors.Is(err, storage.ErrInvalidContentType):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "Only PDF uploads are accepted"),
		)
	case errors.Is(err, storage.ErrFileNotFound), errors.Is(err, pdf.ErrPdfNotFound):
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse(entity.ErrCodeNotFound, "PDF file not found"),
		)
	case pdf.IsInputError(err):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeInvalidInput, err.Error()),
		)
	case errors.Is(err, pdf.ErrFooterGeneration):
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse(entity.ErrCodeProcessingError, "Failed to generate signature footer"),
		)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse(entity.ErrCodeProcessingError, "PDF processing failed"),
		)
	}
}
