package journal

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a fetch request.
type Status string

const (
	StatusPending     Status = "pending"
	StatusSubmitted   Status = "submitted"
	StatusDownloading Status = "downloading"
	StatusMigrated    Status = "migrated"
	StatusFailed      Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusSubmitted,
	StatusDownloading,
	StatusMigrated,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ValidStatus reports whether the value is a known lifecycle status.
func ValidStatus(status Status) bool {
	_, ok := statusSet[status]
	return ok
}

// Terminal reports whether the status ends the lifecycle.
func (s Status) Terminal() bool {
	return s == StatusMigrated || s == StatusFailed
}

// Record is one fetch request persisted in SQLite.
type Record struct {
	ID           int64
	RequestID    string
	Target       string
	Frame        string
	Lon          float64
	Lat          float64
	RadiusArcmin float64
	Bands        string
	Status       Status
	ErrorMessage string
	MovedFiles   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BandList splits the comma-separated band column.
func (r *Record) BandList() []string {
	if strings.TrimSpace(r.Bands) == "" {
		return nil
	}
	parts := strings.Split(r.Bands, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// MovedFileList splits the comma-separated moved-files column.
func (r *Record) MovedFileList() []string {
	if strings.TrimSpace(r.MovedFiles) == "" {
		return nil
	}
	parts := strings.Split(r.MovedFiles, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
