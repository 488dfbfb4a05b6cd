package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/errs"
	"github.com/basaam0/receipt-roundup/internal/models"
)

type receiptStore struct {
	client *firestore.Client
}

func NewReceiptStore(client *firestore.Client) *receiptStore {
	return &receiptStore{client: client}
}

func (s *receiptStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("receipts")
}

// Create persists a new receipt atomically and returns the id the store
// assigned to it. A record is never partially visible: either the single
// document write succeeds or nothing exists.
func (s *receiptStore) Create(ctx context.Context, uid string, r *models.Receipt) (string, error) {
	doc := s.collection(uid).NewDoc()
	if _, err := doc.Create(ctx, r); err != nil {
		return "", errs.NewStorageUnavailableError("create", "failed to create receipt", err)
	}
	return doc.ID, nil
}

// ScanAll streams every receipt owned by uid through handle, in no
// particular order. Consumers impose ordering themselves when they need it.
func (s *receiptStore) ScanAll(ctx context.Context, uid string, handle func(*models.Receipt) error) error {
	iter := s.collection(uid).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errs.NewStorageUnavailableError("scan", "failed to scan receipts", err)
		}

		var r models.Receipt
		if err := doc.DataTo(&r); err != nil {
			return errs.NewStorageUnavailableError("scan", "failed to parse receipt data", err)
		}
		r.ID = doc.Ref.ID
		if err := handle(&r); err != nil {
			return err
		}
	}
}

// QueryPage returns up to limit receipts in (timestamp desc, id asc) order,
// restricted to the query's timestamp interval when set, resuming strictly
// after the cursor position. The id ordering on equal timestamps makes the
// ordering total, so pagination is stable across repeated calls against an
// unchanging collection. Predicates the store cannot evaluate (store name,
// categories, price bounds) are the caller's to apply.
func (s *receiptStore) QueryPage(ctx context.Context, uid string, q dto.ReceiptQuery, cursor *dto.PageCursor, limit int) ([]models.Receipt, *dto.PageCursor, error) {
	query := s.collection(uid).Query
	if q.Start != nil {
		query = query.Where("timestamp", ">=", *q.Start)
	}
	if q.End != nil {
		query = query.Where("timestamp", "<", *q.End)
	}
	query = query.
		OrderBy("timestamp", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Limit(limit)
	if cursor != nil {
		query = query.StartAfter(cursor.Timestamp, cursor.ID)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, nil, errs.NewStorageUnavailableError("query", "failed to query receipts", err)
	}

	receipts := make([]models.Receipt, 0, len(docs))
	for _, doc := range docs {
		var r models.Receipt
		if err := doc.DataTo(&r); err != nil {
			return nil, nil, errs.NewStorageUnavailableError("query", "failed to parse receipt data", err)
		}
		r.ID = doc.Ref.ID
		receipts = append(receipts, r)
	}

	// A short page means the interval is exhausted.
	if len(receipts) < limit {
		return receipts, nil, nil
	}
	last := receipts[len(receipts)-1]
	return receipts, &dto.PageCursor{Timestamp: last.Timestamp, ID: last.ID}, nil
}
