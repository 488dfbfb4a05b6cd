package services

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/models"
	"github.com/basaam0/receipt-roundup/pkg/helpers"
	"github.com/basaam0/receipt-roundup/pkg/logger"
)

const defaultPageSize = 10

type receiptQueryStore interface {
	QueryPage(ctx context.Context, uid string, q dto.ReceiptQuery, cursor *dto.PageCursor, limit int) ([]models.Receipt, *dto.PageCursor, error)
}

type searchService struct {
	receipts receiptQueryStore
	pageSize int
	now      func() time.Time
}

func NewSearchService(receipts receiptQueryStore, pageSize int) *searchService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &searchService{
		receipts: receipts,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Search normalizes the raw request into criteria and assembles one page of
// matching receipts in (timestamp desc, id asc) order. The timestamp
// interval is delegated to the store; store name, categories and price
// bounds are evaluated here on each returned page, re-requesting further
// store pages until the page quota is filled or the collection is exhausted.
func (s *searchService) Search(ctx context.Context, uid string, req dto.SearchRequest) (dto.SearchResult, error) {
	criteria := s.normalize(req)

	var cursor *dto.PageCursor
	if !req.IsNewSearch {
		if c, ok := dto.DecodePageCursor(req.PageToken); ok {
			cursor = &c
		} else if req.PageToken != "" {
			logger.FromContext(ctx).Debug("ignoring malformed page token", "token", req.PageToken)
		}
	}

	query := dto.ReceiptQuery{Start: criteria.Start, End: criteria.End}
	matched := make([]models.Receipt, 0, s.pageSize)
	for {
		page, next, err := s.receipts.QueryPage(ctx, uid, query, cursor, s.pageSize)
		if err != nil {
			return dto.SearchResult{}, err
		}

		for _, r := range page {
			if !matchesCriteria(criteria, r) {
				continue
			}
			matched = append(matched, r)
			if len(matched) == s.pageSize {
				// Resume after the last record handed out rather than the
				// last one scanned, so follow-up pages can neither skip nor
				// repeat a match.
				token := dto.PageCursor{Timestamp: r.Timestamp, ID: r.ID}.Encode()
				return dto.SearchResult{Receipts: matched, NextPageToken: token}, nil
			}
		}

		if next == nil {
			return dto.SearchResult{Receipts: matched}, nil
		}
		cursor = next
	}
}

// normalize coerces the raw parameters into criteria. Malformed input is a
// user error, not a pipeline fault: unparseable numbers, unknown presets and
// unknown time zones all clamp to permissive defaults so a search always
// returns a (possibly empty) result.
func (s *searchService) normalize(req dto.SearchRequest) dto.SearchCriteria {
	criteria := dto.SearchCriteria{MaxPrice: math.Inf(1)}

	loc, err := time.LoadLocation(req.TimeZoneID)
	if err != nil || req.TimeZoneID == "" {
		loc = time.UTC
	}
	criteria.Start, criteria.End = resolveDateRange(req.DateRange, s.now().In(loc))

	criteria.Store = strings.ToLower(strings.TrimSpace(req.Store))
	criteria.Categories = splitCategories(req.Category)

	if min, err := strconv.ParseFloat(strings.TrimSpace(req.MinPrice), 64); err == nil && min > 0 {
		criteria.MinPrice = min
	}
	if max, err := strconv.ParseFloat(strings.TrimSpace(req.MaxPrice), 64); err == nil && max >= 0 {
		criteria.MaxPrice = max
	}

	return criteria
}

// resolveDateRange turns a named preset or an explicit
// "<startMillis>,<endMillis>" pair into a half-open [start, end) instant
// interval. Presets resolve relative to now in the caller's zone; anything
// unrecognized means no bound.
func resolveDateRange(raw string, now time.Time) (start, end *int64) {
	nowMs := now.UnixMilli()

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all time":
		return nil, nil
	case "today":
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return helpers.Ptr(startOfDay.UnixMilli()), helpers.Ptr(nowMs)
	case "last 7 days":
		return helpers.Ptr(now.AddDate(0, 0, -7).UnixMilli()), helpers.Ptr(nowMs)
	case "last 30 days":
		return helpers.Ptr(now.AddDate(0, 0, -30).UnixMilli()), helpers.Ptr(nowMs)
	case "this month":
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return helpers.Ptr(firstOfMonth.UnixMilli()), helpers.Ptr(nowMs)
	case "last month":
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		lastOfPrev := firstOfMonth.AddDate(0, 0, -1)
		firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, now.Location())
		return helpers.Ptr(firstOfPrev.UnixMilli()), helpers.Ptr(firstOfMonth.UnixMilli())
	case "this year":
		firstOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return helpers.Ptr(firstOfYear.UnixMilli()), helpers.Ptr(nowMs)
	}

	// Explicit ranges are used verbatim.
	if from, to, ok := strings.Cut(raw, ","); ok {
		fromMs, fromErr := strconv.ParseInt(strings.TrimSpace(from), 10, 64)
		toMs, toErr := strconv.ParseInt(strings.TrimSpace(to), 10, 64)
		if fromErr == nil && toErr == nil && fromMs < toMs {
			return helpers.Ptr(fromMs), helpers.Ptr(toMs)
		}
	}

	return nil, nil
}

func splitCategories(raw string) []string {
	var categories []string
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(categories, c) {
			continue
		}
		categories = append(categories, c)
	}
	return categories
}

// matchesCriteria is the full filter predicate: timestamp within the
// half-open interval, case-insensitive store equality, every requested
// category present, and price within the inclusive bounds.
func matchesCriteria(c dto.SearchCriteria, r models.Receipt) bool {
	if c.Start != nil && r.Timestamp < *c.Start {
		return false
	}
	if c.End != nil && r.Timestamp >= *c.End {
		return false
	}
	if c.Store != "" && strings.ToLower(r.Store) != c.Store {
		return false
	}
	for _, want := range c.Categories {
		if !slices.Contains(r.Categories, want) {
			return false
		}
	}
	return r.Price >= c.MinPrice && r.Price <= c.MaxPrice
}
