package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/basaam0/receipt-roundup/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	ReceiptSvc      ReceiptService
	SearchSvc       SearchService
	AnalyticsSvc    AnalyticsService
	Images          ImageStore
}
