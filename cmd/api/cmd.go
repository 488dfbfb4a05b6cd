package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/basaam0/receipt-roundup/internal/bootstrap"
	gcsclient "github.com/basaam0/receipt-roundup/internal/client/gcs"
	"github.com/basaam0/receipt-roundup/internal/config"
	"github.com/basaam0/receipt-roundup/internal/handlers"
	"github.com/basaam0/receipt-roundup/internal/response"
	"github.com/basaam0/receipt-roundup/internal/router"
	"github.com/basaam0/receipt-roundup/internal/services"
	"github.com/basaam0/receipt-roundup/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	rstore := store.NewReceiptStore(bs.Firestore)
	images := gcsclient.NewAdapter(bs.Storage, cfg.ImageBucket, bs.Log)

	// services
	anserv := services.NewAnalysisService(bs.VisionAdapter, nil)
	reserv := services.NewReceiptService(anserv, rstore, images, cfg.ExternalBaseURL)
	seserv := services.NewSearchService(rstore, cfg.PageSize)
	spserv := services.NewAnalyticsService(rstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.ReceiptSvc = reserv
	deps.SearchSvc = seserv
	deps.AnalyticsSvc = spserv
	deps.Images = images

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":8080", r)
	exitOnError("server start failed", err, bs.Log)
}
