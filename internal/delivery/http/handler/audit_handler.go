package handler

import (
	"github.com/gofiber/fiber/v2"

	"docsign/internal/domain/entity"
	"docsign/internal/usecase"
)

type AuditHandler struct {
	audit usecase.AuditUsecase
}

func NewAuditHandler(audit usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GetLogs returns recent PDF operation logs, newest first.
func (h *AuditHandler) GetLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	logs, err := h.audit.GetLogs(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse(entity.ErrCodeProcessingError, "Failed to load operation logs"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(logs, "Operation logs retrieved successfully"))
}

// SearchLogs filters operation logs by document ID or operation name.
func (h *AuditHandler) SearchLogs(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse(entity.ErrCodeBadRequest, "q parameter required"),
		)
	}
	limit := c.QueryInt("limit", 100)

	logs, err := h.audit.SearchLogs(c.UserContext(), query, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse(entity.ErrCodeProcessingError, "Failed to search operation logs"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(logs, "Operation logs retrieved successfully"))
}
