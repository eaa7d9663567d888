package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docsign/internal/domain/entity"
	"docsign/internal/usecase"
)

type stubSigningUsecase struct {
	gotBlockID string
	err        error
}

func (s *stubSigningUsecase) ApplySignature(ctx context.Context, documentID string, req *entity.ApplyPdfSignatureRequest, meta usecase.SignerMeta) (*entity.Document, error) {
	s.gotBlockID = req.SignatureBlockID
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Document{ID: documentID}, nil
}

func (s *stubSigningUsecase) ExportSigned(ctx context.Context, documentID string) (string, string, error) {
	return "", "", s.err
}

func signApp(signing usecase.SigningUsecase) *fiber.App {
	h := NewDocumentHandler(nil, signing, zap.NewNop())
	app := fiber.New()
	app.Post("/api/v1/documents/:id/apply-pdf-signature", h.ApplySignature)
	return app
}

func TestApplySignatureBindsDocumentedFieldName(t *testing.T) {
	signing := &stubSigningUsecase{}
	app := signApp(signing)

	body := `{"signature_block_id":"b1","signer_name":"Nguyễn Văn A","signature_image_base64":"aGk="}`
	req := httptest.NewRequest("POST", "/api/v1/documents/doc-1/apply-pdf-signature", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "b1", signing.gotBlockID)
}

func TestApplySignatureMissingBlockIDMessageMatchesField(t *testing.T) {
	app := signApp(&stubSigningUsecase{})

	req := httptest.NewRequest("POST", "/api/v1/documents/doc-1/apply-pdf-signature", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body entity.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.False(t, body.Success)
	// The message must name the field exactly as the request contract tags
	// it, so a client fixing the error sends a field that binds.
	require.Contains(t, body.Message, "signature_block_id")
}
