package models

// Receipt is one analyzed, persisted purchase receipt. Records are created
// once at upload-completion time and never mutated afterwards; the document
// id is assigned by the store on creation.
type Receipt struct {
	ID         string   `firestore:"-" json:"id"`
	UserID     string   `firestore:"userId" json:"userId"`
	Timestamp  int64    `firestore:"timestamp" json:"timestamp"` // purchase time, ms since epoch, UTC
	ImageURL   string   `firestore:"imageUrl" json:"imageUrl"`
	Price      float64  `firestore:"price" json:"price"`
	Store      string   `firestore:"store" json:"store"` // case-preserved, matched case-insensitively
	Categories []string `firestore:"categories" json:"categories,omitempty"`
	RawText    string   `firestore:"rawText" json:"rawText,omitempty"`
	Label      string   `firestore:"label" json:"label,omitempty"`
}
