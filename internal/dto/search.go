package dto

import (
	"encoding/base64"
	"encoding/json"

	"github.com/basaam0/receipt-roundup/internal/models"
)

// SearchRequest carries the raw, unvalidated query parameters of a search
// call. Everything is a string straight off the wire; normalization into
// SearchCriteria is the search service's job.
type SearchRequest struct {
	TimeZoneID  string
	DateRange   string
	Category    string
	Store       string
	MinPrice    string
	MaxPrice    string
	IsNewSearch bool
	PageToken   string
}

// SearchCriteria is the normalized filter a search executes against.
// Zero values mean "unset": a nil interval bound leaves that side open,
// an empty store or category set matches everything.
type SearchCriteria struct {
	Start      *int64 // inclusive, ms since epoch
	End        *int64 // exclusive
	Store      string // trimmed and lower-cased
	Categories []string
	MinPrice   float64
	MaxPrice   float64 // +Inf when unbounded
}

// ReceiptQuery is the subset of SearchCriteria the record store can evaluate
// itself; the rest is applied by the search engine on returned pages.
type ReceiptQuery struct {
	Start *int64
	End   *int64
}

// SearchResult is one page of matching receipts in descending-timestamp
// order plus the token for the next page, empty when the collection is
// exhausted.
type SearchResult struct {
	Receipts      []models.Receipt `json:"receipts"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}

// PageCursor marks the position of the last record handed out, so a
// follow-up query can resume strictly after it in the
// (timestamp desc, id asc) total order.
type PageCursor struct {
	Timestamp int64  `json:"ts"`
	ID        string `json:"id"`
}

// Encode serializes the cursor into an opaque page token.
func (c PageCursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodePageCursor parses a page token. A missing or mangled token reports
// ok=false, which callers treat as "start from the beginning".
func DecodePageCursor(token string) (PageCursor, bool) {
	if token == "" {
		return PageCursor{}, false
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return PageCursor{}, false
	}
	var c PageCursor
	if err := json.Unmarshal(b, &c); err != nil || c.ID == "" {
		return PageCursor{}, false
	}
	return c, true
}
