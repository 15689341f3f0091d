package entity

import "fmt"

type SourceKind int

const (
	SourceURL SourceKind = iota
	SourceFile
)

// SkipReason classifies a candidate that produced no output.
type SkipReason string

const (
	SkipFetchFailed     SkipReason = "fetch failed"
	SkipDecodeFailed    SkipReason = "decode failed"
	SkipUnsupportedType SkipReason = "unsupported type"
	SkipDuplicateName   SkipReason = "duplicate name"
	SkipEmpty           SkipReason = "empty"
	SkipWriteFailed     SkipReason = "write failed"
)

// Candidate is one image-to-process unit, sourced from a CSV cell or an uploaded file.
type Candidate struct {
	Index    int
	Source   string
	Kind     SourceKind
	Data     []byte
	FetchErr error
}

// Label is the user-facing name of the candidate in reports.
func (c *Candidate) Label() string {
	if c.Source == "" {
		return fmt.Sprintf("row %d", c.Index+1)
	}
	return c.Source
}

// Outcome is the terminal result of one candidate.
type Outcome struct {
	Index     int
	Source    string
	Processed bool
	FinalName string
	Size      int64
	Reason    SkipReason
}

type BatchResult struct {
	FolderKey string
	Outcomes  []Outcome
}

func (r *BatchResult) ProcessedNames() []string {
	names := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Processed {
			names = append(names, o.FinalName)
		}
	}
	return names
}

func (r *BatchResult) SkippedEntries() []string {
	entries := make([]string, 0)
	for _, o := range r.Outcomes {
		if !o.Processed {
			entries = append(entries, fmt.Sprintf("%s (%s)", o.Source, o.Reason))
		}
	}
	return entries
}

// BatchEvent is published to the broker after every completed batch.
type BatchEvent struct {
	Source     string `json:"source"`
	FolderKey  string `json:"folder_key"`
	Processed  int    `json:"processed"`
	Skipped    int    `json:"skipped"`
	DurationMs int64  `json:"duration_ms"`
}
