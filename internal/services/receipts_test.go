package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/errs"
	"github.com/basaam0/receipt-roundup/internal/models"
	"github.com/basaam0/receipt-roundup/pkg/helpers"
)

type fakeAnalysis struct {
	result  dto.AnalysisResult
	err     error
	lastURL string
	calls   int
}

func (f *fakeAnalysis) Analyze(ctx context.Context, imageURL string) (dto.AnalysisResult, error) {
	f.calls++
	f.lastURL = imageURL
	return f.result, f.err
}

type fakeCreateStore struct {
	created *models.Receipt
	id      string
	err     error
}

func (f *fakeCreateStore) Create(ctx context.Context, uid string, r *models.Receipt) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	clone := *r
	f.created = &clone
	return f.id, nil
}

type fakeImageStore struct {
	uploadURL   string
	imageRef    string
	urlErr      error
	validateErr error
	validated   []string
}

func (f *fakeImageStore) CreateUploadURL(ctx context.Context, filename string) (string, string, error) {
	if f.urlErr != nil {
		return "", "", f.urlErr
	}
	return f.uploadURL, f.imageRef, nil
}

func (f *fakeImageStore) ValidateUpload(ctx context.Context, imageRef string) error {
	f.validated = append(f.validated, imageRef)
	return f.validateErr
}

func TestUploadReceiptCreatesRecord(t *testing.T) {
	analysis := &fakeAnalysis{result: dto.AnalysisResult{RawText: "raw text"}}
	rstore := &fakeCreateStore{id: "receipt-1"}
	images := &fakeImageStore{}
	svc := NewReceiptService(analysis, rstore, images, "https://receipts.example.com")

	now := time.Date(2020, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got, err := svc.UploadReceipt(helpers.TestCtx(), "123", dto.UploadReceiptRequest{
		ImageRef:   "receipts/abc.jpg",
		Price:      26.12,
		Store:      "Walmart",
		Categories: []string{"candy", "drink", "candy", ""},
		Label:      "groceries",
	})
	if err != nil {
		t.Fatalf("UploadReceipt error: %v", err)
	}

	if got.ID != "receipt-1" {
		t.Fatalf("id mismatch: %q", got.ID)
	}
	if got.UserID != "123" || got.Price != 26.12 || got.Store != "Walmart" || got.Label != "groceries" {
		t.Fatalf("record fields mismatch: %+v", got)
	}
	if got.Timestamp != now.UnixMilli() {
		t.Fatalf("timestamp mismatch: %d", got.Timestamp)
	}
	if got.RawText != "raw text" {
		t.Fatalf("rawText mismatch: %q", got.RawText)
	}
	if len(got.Categories) != 2 || got.Categories[0] != "candy" || got.Categories[1] != "drink" {
		t.Fatalf("categories not deduplicated: %v", got.Categories)
	}
	if got.ImageURL != "/serve-image?image-ref=receipts%2Fabc.jpg" {
		t.Fatalf("imageUrl mismatch: %q", got.ImageURL)
	}

	if analysis.lastURL != "https://receipts.example.com/serve-image?image-ref=receipts%2Fabc.jpg" {
		t.Fatalf("analysis called with wrong URL: %q", analysis.lastURL)
	}
	if len(images.validated) != 1 || images.validated[0] != "receipts/abc.jpg" {
		t.Fatalf("image not validated: %v", images.validated)
	}
	if rstore.created == nil || rstore.created.RawText != "raw text" {
		t.Fatalf("record not persisted with transcript: %+v", rstore.created)
	}
}

func TestUploadReceiptFailedAnalysisWritesNothing(t *testing.T) {
	analysis := &fakeAnalysis{err: errs.NewEmptyTextAnnotationsError()}
	rstore := &fakeCreateStore{id: "receipt-1"}
	svc := NewReceiptService(analysis, rstore, &fakeImageStore{}, "https://receipts.example.com")

	_, err := svc.UploadReceipt(helpers.TestCtx(), "123", dto.UploadReceiptRequest{
		ImageRef: "receipts/abc.jpg",
	})

	var annErr *errs.EmptyTextAnnotationsError
	if !errors.As(err, &annErr) {
		t.Fatalf("expected analysis failure, got %v", err)
	}
	if rstore.created != nil {
		t.Fatal("no record may exist after a failed analysis")
	}
}

func TestUploadReceiptRejectsBadInput(t *testing.T) {
	analysis := &fakeAnalysis{}
	rstore := &fakeCreateStore{id: "receipt-1"}
	svc := NewReceiptService(analysis, rstore, &fakeImageStore{}, "https://receipts.example.com")

	cases := []dto.UploadReceiptRequest{
		{ImageRef: "", Price: 5},
		{ImageRef: "receipts/abc.jpg", Price: -0.01},
	}
	for _, req := range cases {
		_, err := svc.UploadReceipt(helpers.TestCtx(), "123", req)
		var valErr *errs.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected ValidationError for %+v, got %v", req, err)
		}
	}
	if analysis.calls != 0 {
		t.Fatal("analysis should not run for invalid input")
	}
	if rstore.created != nil {
		t.Fatal("no record may be created for invalid input")
	}
}

func TestUploadReceiptRejectedImageStopsPipeline(t *testing.T) {
	analysis := &fakeAnalysis{}
	images := &fakeImageStore{validateErr: errs.NewValidationError("uploaded image size 0 is out of bounds")}
	svc := NewReceiptService(analysis, &fakeCreateStore{}, images, "https://receipts.example.com")

	_, err := svc.UploadReceipt(helpers.TestCtx(), "123", dto.UploadReceiptRequest{
		ImageRef: "receipts/abc.jpg",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if analysis.calls != 0 {
		t.Fatal("analysis should not run for a rejected upload")
	}
}

func TestCreateUploadURL(t *testing.T) {
	images := &fakeImageStore{uploadURL: "https://storage.example.com/signed", imageRef: "receipts/xyz.jpeg"}
	svc := NewReceiptService(&fakeAnalysis{}, &fakeCreateStore{}, images, "https://receipts.example.com")

	got, err := svc.CreateUploadURL(helpers.TestCtx(), "dinner.jpeg")
	if err != nil {
		t.Fatalf("CreateUploadURL error: %v", err)
	}
	if got.UploadURL != "https://storage.example.com/signed" || got.ImageRef != "receipts/xyz.jpeg" {
		t.Fatalf("unexpected response: %+v", got)
	}
}
