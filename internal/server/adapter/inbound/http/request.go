package http_handler

import "github.com/anthanhphan/go-fileshare/internal/server/domain"

// createFileRequest is the POST /api/files body. Every key must be present,
// but strings may be empty: browsers report "" as the type of unknown files.
// Any fileId sent by the client is ignored; the server generates one.
type createFileRequest struct {
	FileName   *string `json:"fileName" validate:"required"`
	FileSize   *int64  `json:"fileSize" validate:"required,min=0"`
	MimeType   *string `json:"mimeType" validate:"required"`
	Content    *string `json:"content" validate:"required"`
	UploaderID *string `json:"uploaderId" validate:"required"`
	UploadTime *string `json:"uploadTime" validate:"required"`
}

func (r *createFileRequest) toNewFile() domain.NewFile {
	return domain.NewFile{
		FileName:   *r.FileName,
		FileSize:   *r.FileSize,
		MimeType:   *r.MimeType,
		Content:    *r.Content,
		UploaderID: *r.UploaderID,
		UploadTime: *r.UploadTime,
	}
}
