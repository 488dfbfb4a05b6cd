package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"firebase.google.com/go/v4/auth"

	visionclient "github.com/basaam0/receipt-roundup/internal/client/vision"
	"github.com/basaam0/receipt-roundup/internal/config"
	"github.com/basaam0/receipt-roundup/pkg/logger"
)

type Bootstrap struct {
	Log           *slog.Logger
	Firestore     *firestore.Client
	Firebase      *auth.Client
	Storage       *storage.Client
	VisionAdapter *visionclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx)
	if err != nil {
		return bs, err
	}
	bs.Storage, err = storage.NewClient(applicationCtx)
	if err != nil {
		return bs, err
	}
	bs.VisionAdapter, err = visionclient.NewAdapter(applicationCtx, bs.Log)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.VisionAdapter != nil {
		bs.VisionAdapter.Close()
	}
	if bs.Storage != nil {
		bs.Storage.Close()
	}
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
}
