package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/errs"
	"github.com/basaam0/receipt-roundup/internal/middleware"
	"github.com/basaam0/receipt-roundup/internal/models"
	"github.com/basaam0/receipt-roundup/internal/response"
)

type ReceiptService interface {
	CreateUploadURL(ctx context.Context, filename string) (dto.UploadURLResponse, error)
	UploadReceipt(ctx context.Context, uid string, req dto.UploadReceiptRequest) (*models.Receipt, error)
}

type SearchService interface {
	Search(ctx context.Context, uid string, req dto.SearchRequest) (dto.SearchResult, error)
}

type AnalyticsService interface {
	ComputeAnalytics(ctx context.Context, uid string) (dto.SpendingAnalytics, error)
}

type ImageStore interface {
	Open(ctx context.Context, imageRef string) (io.ReadCloser, error)
}

type receiptHandlers struct {
	ResponseHandler response.ResponseHandler
	ReceiptSvc      ReceiptService
	SearchSvc       SearchService
	AnalyticsSvc    AnalyticsService
	Images          ImageStore
}

func NewReceiptHandlers(deps *Deps) *receiptHandlers {
	return &receiptHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReceiptSvc:      deps.ReceiptSvc,
		SearchSvc:       deps.SearchSvc,
		AnalyticsSvc:    deps.AnalyticsSvc,
		Images:          deps.Images,
	}
}

func (h *receiptHandlers) ReceiptRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/upload-receipt", h.GetUploadURL)
	r.Post("/upload-receipt", h.UploadReceipt)
	r.Get("/search-receipts", h.SearchReceipts)
	r.Get("/spending-analytics", h.SpendingAnalytics)
	return r
}

// GetUploadURL returns a signed URL the client uploads the receipt image to.
func (h *receiptHandlers) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	resp, err := h.ReceiptSvc.CreateUploadURL(r.Context(), filename)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

// UploadReceipt finalizes an upload: analyzes the stored image and creates
// the receipt record.
func (h *receiptHandlers) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	uid := middleware.UID(r.Context())
	receipt, err := h.ReceiptSvc.UploadReceipt(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, receipt)
}

func (h *receiptHandlers) SearchReceipts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	isNewSearch, _ := strconv.ParseBool(q.Get("isNewSearch"))
	req := dto.SearchRequest{
		TimeZoneID:  q.Get("timeZoneId"),
		DateRange:   q.Get("dateRange"),
		Category:    q.Get("category"),
		Store:       q.Get("store"),
		MinPrice:    q.Get("min"),
		MaxPrice:    q.Get("max"),
		IsNewSearch: isNewSearch,
		PageToken:   q.Get("pageToken"),
	}

	uid := middleware.UID(r.Context())
	result, err := h.SearchSvc.Search(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *receiptHandlers) SpendingAnalytics(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	analytics, err := h.AnalyticsSvc.ComputeAnalytics(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, analytics)
}

// ServeImage streams a stored receipt image. Mounted outside the auth group
// because the recognition fetch reads it back over plain HTTP.
func (h *receiptHandlers) ServeImage(w http.ResponseWriter, r *http.Request) {
	imageRef := r.URL.Query().Get("image-ref")
	if imageRef == "" {
		http.Error(w, "missing image-ref", http.StatusBadRequest)
		return
	}

	rc, err := h.Images.Open(r.Context(), imageRef)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	io.Copy(w, rc)
}
