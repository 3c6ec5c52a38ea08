package models

// TranscriptEvent is the payload published to the transcript topic.
// The diagnostics publish probe events with this shape to verify the
// broker path end to end.
type TranscriptEvent struct {
	EventType        string  `json:"eventType"`
	FileID           string  `json:"fileId"`
	Filename         string  `json:"filename"`
	Language         string  `json:"language"`
	Confidence       float64 `json:"confidence"`
	TranscriptLength int     `json:"transcriptLength"`
	Timestamp        int64   `json:"timestamp"`
	Probe            bool    `json:"probe,omitempty"`
}
