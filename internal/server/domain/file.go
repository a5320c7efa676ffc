package domain

import "time"

// FileRecord is a stored upload together with its download bookkeeping.
type FileRecord struct {
	ID            int64  `json:"id"`
	FileID        string `json:"fileId"`
	FileName      string `json:"fileName"`
	FileSize      int64  `json:"fileSize"`
	MimeType      string `json:"mimeType"`
	Content       string `json:"content"`
	UploaderID    string `json:"uploaderId"`
	UploadTime    string `json:"uploadTime"`
	Downloaded    bool   `json:"downloaded"`
	DownloadCount int64  `json:"downloadCount"`

	// DownloadedAt is set on the first downloaded notification.
	DownloadedAt *time.Time `json:"-"`
}

// NewFile carries the uploader-supplied fields of a record plus its generated FileID.
type NewFile struct {
	FileID     string
	FileName   string
	FileSize   int64
	MimeType   string
	Content    string
	UploaderID string
	UploadTime string
}

// FileMetrics is the owner-facing aggregate view of a record.
type FileMetrics struct {
	TotalDownloads int64   `json:"totalDownloads"`
	DownloadTime   *string `json:"downloadTime"`
	UploadTime     string  `json:"uploadTime"`
}

// NewFileRecord builds a fresh record with zeroed download state.
func NewFileRecord(id int64, in NewFile) *FileRecord {
	return &FileRecord{
		ID:         id,
		FileID:     in.FileID,
		FileName:   in.FileName,
		FileSize:   in.FileSize,
		MimeType:   in.MimeType,
		Content:    in.Content,
		UploaderID: in.UploaderID,
		UploadTime: in.UploadTime,
	}
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (r *FileRecord) Clone() *FileRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.DownloadedAt != nil {
		t := *r.DownloadedAt
		c.DownloadedAt = &t
	}
	return &c
}

// MarkDownloaded flips Downloaded and stamps DownloadedAt on the first call only.
func (r *FileRecord) MarkDownloaded(now time.Time) {
	if r.Downloaded {
		return
	}
	r.Downloaded = true
	t := now.UTC()
	r.DownloadedAt = &t
}

// Metrics derives the aggregate view.
func (r *FileRecord) Metrics() *FileMetrics {
	m := &FileMetrics{
		TotalDownloads: r.DownloadCount,
		UploadTime:     r.UploadTime,
	}
	if r.Downloaded && r.DownloadedAt != nil {
		s := r.DownloadedAt.Format(time.RFC3339)
		m.DownloadTime = &s
	}
	return m
}

// IsOwner reports whether uploaderID created this record.
func (r *FileRecord) IsOwner(uploaderID string) bool {
	return uploaderID != "" && r.UploaderID == uploaderID
}
