package visionclient

import (
	"context"
	"log/slog"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

// Adapter wraps the Cloud Vision image annotator. It owns no state beyond
// the client handle: one call in, the provider's raw response (or fault) out,
// unchanged. Classifying the response is the analysis pipeline's job.
type Adapter struct {
	client *vision.ImageAnnotatorClient
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger) (*Adapter, error) {
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vision adapter close failed", "error", err)
	}
	return err
}

func (a *Adapter) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
	return a.client.BatchAnnotateImages(ctx, req)
}
