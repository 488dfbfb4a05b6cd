package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/errs"
	"github.com/basaam0/receipt-roundup/pkg/logger"
)

type recognitionAdapter interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)
}

type analysisService struct {
	vision recognitionAdapter
	client *http.Client
}

func NewAnalysisService(vision recognitionAdapter, client *http.Client) *analysisService {
	if client == nil {
		client = http.DefaultClient
	}
	return &analysisService{
		vision: vision,
		client: client,
	}
}

// Analyze fetches the image at imageURL, runs text detection over it and
// returns the full-image transcript. Each way the recognition exchange can
// go wrong maps to its own terminal error kind; nothing is retried here, a
// caller may retry the whole operation.
func (s *analysisService) Analyze(ctx context.Context, imageURL string) (dto.AnalysisResult, error) {
	log := logger.FromContext(ctx)

	imageBytes, err := s.fetchImage(ctx, imageURL)
	if err != nil {
		log.Warn("receipt image fetch failed", "error", err)
		return dto.AnalysisResult{}, errs.NewSourceUnreadableError(err)
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageBytes},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	batch, err := s.vision.BatchAnnotateImages(ctx, req)
	if err != nil {
		log.Warn("image annotation request failed", "error", err)
		return dto.AnalysisResult{}, errs.NewRequestFailedError(err)
	}

	responses := batch.GetResponses()
	if len(responses) == 0 {
		return dto.AnalysisResult{}, errs.NewEmptyBatchResponseError()
	}

	response := responses[0]
	if response.GetError() != nil {
		log.Warn("image annotation response carried error status",
			"code", response.GetError().GetCode(),
			"message", response.GetError().GetMessage())
		return dto.AnalysisResult{}, errs.NewResponseError()
	}

	annotations := response.GetTextAnnotations()
	if len(annotations) == 0 {
		return dto.AnalysisResult{}, errs.NewEmptyTextAnnotationsError()
	}

	// By provider convention the first annotation is the whole-image
	// transcript; the rest are individual tokens.
	return dto.AnalysisResult{RawText: annotations[0].GetDescription()}, nil
}

func (s *analysisService) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
