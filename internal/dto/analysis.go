package dto

// AnalysisResult is the transient payload produced by the analysis pipeline.
// It is not persisted directly; the upload flow consumes it to build a
// receipt record.
type AnalysisResult struct {
	RawText string
}
