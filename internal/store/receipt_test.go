package store

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/models"
	"github.com/basaam0/receipt-roundup/pkg/helpers"
)

func TestReceiptStoreWithEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	defer client.Close()

	rstore := NewReceiptStore(client)
	uid := "user"

	receipts := []models.Receipt{
		{UserID: uid, Timestamp: 1045237591000, Store: "walmart", Price: 26.12, Categories: []string{"candy", "drink"}, RawText: "raw"},
		{UserID: uid, Timestamp: 1491582960000, Store: "main street restaurant", Price: 29.01, Categories: []string{"food"}, RawText: "raw"},
		{UserID: uid, Timestamp: 1560193140000, Store: "contoso", Price: 14.51, Categories: []string{"cappuccino"}, RawText: "raw"},
	}
	for i := range receipts {
		id, err := rstore.Create(ctx, uid, &receipts[i])
		if err != nil {
			t.Fatalf("create error: %v", err)
		}
		if id == "" {
			t.Fatal("expected assigned id")
		}
	}

	var scanned int
	err = rstore.ScanAll(ctx, uid, func(r *models.Receipt) error {
		if r.ID == "" {
			t.Fatal("scanned receipt missing id")
		}
		scanned++
		return nil
	})
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if scanned != 3 {
		t.Fatalf("expected 3 receipts, got %d", scanned)
	}

	// Timestamp interval [1491582960000, 1560193140000) keeps only the
	// restaurant receipt.
	page, next, err := rstore.QueryPage(ctx, uid, dto.ReceiptQuery{
		Start: helpers.Ptr(int64(1491582960000)),
		End:   helpers.Ptr(int64(1560193140000)),
	}, nil, 10)
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(page) != 1 || page[0].Store != "main street restaurant" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if next != nil {
		t.Fatalf("expected exhausted interval, got cursor %+v", next)
	}

	// Unbounded query pages through in descending-timestamp order.
	page, next, err = rstore.QueryPage(ctx, uid, dto.ReceiptQuery{}, nil, 2)
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(page) != 2 || page[0].Store != "contoso" || page[1].Store != "main street restaurant" {
		t.Fatalf("unexpected first page: %+v", page)
	}
	if next == nil {
		t.Fatal("expected continuation cursor")
	}

	page, _, err = rstore.QueryPage(ctx, uid, dto.ReceiptQuery{}, next, 2)
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(page) != 1 || page[0].Store != "walmart" {
		t.Fatalf("unexpected second page: %+v", page)
	}
}
