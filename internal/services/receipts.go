package services

import (
	"context"
	"net/url"
	"slices"
	"time"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/errs"
	"github.com/basaam0/receipt-roundup/internal/models"
	"github.com/basaam0/receipt-roundup/pkg/logger"
)

type analysisPipeline interface {
	Analyze(ctx context.Context, imageURL string) (dto.AnalysisResult, error)
}

type receiptCreateStore interface {
	Create(ctx context.Context, uid string, r *models.Receipt) (string, error)
}

type imageStore interface {
	CreateUploadURL(ctx context.Context, filename string) (uploadURL, imageRef string, err error)
	ValidateUpload(ctx context.Context, imageRef string) error
}

type receiptService struct {
	analysis analysisPipeline
	receipts receiptCreateStore
	images   imageStore
	baseURL  string // externally reachable base URL for serving images
	now      func() time.Time
}

func NewReceiptService(analysis analysisPipeline, receipts receiptCreateStore, images imageStore, externalBaseURL string) *receiptService {
	return &receiptService{
		analysis: analysis,
		receipts: receipts,
		images:   images,
		baseURL:  externalBaseURL,
		now:      time.Now,
	}
}

// CreateUploadURL hands out a signed URL the client uploads the receipt
// image to, plus the reference it echoes back to finalize the upload.
func (s *receiptService) CreateUploadURL(ctx context.Context, filename string) (dto.UploadURLResponse, error) {
	uploadURL, imageRef, err := s.images.CreateUploadURL(ctx, filename)
	if err != nil {
		return dto.UploadURLResponse{}, err
	}
	return dto.UploadURLResponse{UploadURL: uploadURL, ImageRef: imageRef}, nil
}

// UploadReceipt finalizes an upload: validates the stored image, extracts
// its transcript through the analysis pipeline, and creates the immutable
// receipt record. Analysis must complete before anything is written, so a
// failed upload leaves no partial record behind.
func (s *receiptService) UploadReceipt(ctx context.Context, uid string, req dto.UploadReceiptRequest) (*models.Receipt, error) {
	log := logger.FromContext(ctx)

	if req.ImageRef == "" {
		return nil, errs.NewValidationError("imageRef is required")
	}
	if req.Price < 0 {
		return nil, errs.NewValidationError("price must be non-negative")
	}

	if err := s.images.ValidateUpload(ctx, req.ImageRef); err != nil {
		return nil, err
	}

	servingPath := "/serve-image?image-ref=" + url.QueryEscape(req.ImageRef)
	result, err := s.analysis.Analyze(ctx, s.baseURL+servingPath)
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		UserID:     uid,
		Timestamp:  s.now().UTC().UnixMilli(),
		ImageURL:   servingPath,
		Price:      req.Price,
		Store:      req.Store,
		Categories: dedupeCategories(req.Categories),
		RawText:    result.RawText,
		Label:      req.Label,
	}

	id, err := s.receipts.Create(ctx, uid, receipt)
	if err != nil {
		return nil, err
	}
	receipt.ID = id

	log.Info("receipt created", "receipt_id", id, "store", receipt.Store)
	return receipt, nil
}

func dedupeCategories(raw []string) []string {
	var categories []string
	for _, c := range raw {
		if c == "" || slices.Contains(categories, c) {
			continue
		}
		categories = append(categories, c)
	}
	return categories
}
