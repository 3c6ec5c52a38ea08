package models

import "time"

// Asset is one row of the pipeline's asset table (rdt_assets):
// one processed audio file and its transcript.
type Asset struct {
	ID            int64
	FileID        string
	Filename      string
	FileSize      int64
	Status        string
	Transcription string
	CreatedAt     time.Time
}

// ParagraphRow is one row of the paragraph table (rdt_paragraphs),
// keyed by the asset's file identifier.
type ParagraphRow struct {
	ID             int64
	FileID         string
	ParagraphIndex int
	Speaker        int
	Text           string
	CreatedAt      time.Time
}

// SentenceRow is one row of the sentence table (rdt_sentences).
type SentenceRow struct {
	ID            int64
	ParagraphID   int64
	SentenceIndex int
	Text          string
}

// TableColumn describes one column of a table as reported by
// INFORMATION_SCHEMA, in ordinal order.
type TableColumn struct {
	Name     string
	DataType string
	Nullable bool
}
