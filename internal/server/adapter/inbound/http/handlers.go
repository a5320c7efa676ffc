package http_handler

import (
	"errors"
	"fmt"
	"mime"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidFileData   = "Invalid file data"
	msgFileNotFound      = "File not found"
	msgNotOwner          = "Not the file owner"
	msgUnsupportedFormat = "Unsupported content encoding"
	msgInternal          = "Internal server error"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleCreateFile(c *fiber.Ctx) error {
	var req createFileRequest
	if err := c.BodyParser(&req); err != nil {
		sdklogger.Warnw("Create file: bad body", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusBadRequest, msgInvalidFileData)
	}
	if err := s.validate.Struct(&req); err != nil {
		sdklogger.Warnw("Create file: validation failed", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusBadRequest, msgInvalidFileData)
	}

	rec, err := s.service.CreateFile(c.UserContext(), req.toNewFile())
	if err != nil {
		return s.internalError(c, "Create file failed", "", err)
	}
	return c.JSON(rec)
}

func (s *Server) handleGetFile(c *fiber.Ctx) error {
	fileID := c.Params("fileId")

	rec, err := s.service.GetFile(c.UserContext(), fileID)
	if err != nil {
		if errors.Is(err, port.ErrFileNotFound) {
			return s.sendJSONError(c, fiber.StatusNotFound, msgFileNotFound)
		}
		return s.internalError(c, "Get file failed", fileID, err)
	}
	return c.JSON(rec)
}

func (s *Server) handleDownloaded(c *fiber.Ctx) error {
	fileID := c.Params("fileId")

	if err := s.service.MarkDownloaded(c.UserContext(), fileID); err != nil {
		return s.internalError(c, "Mark downloaded failed", fileID, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) handleContent(c *fiber.Ctx) error {
	fileID := c.Params("fileId")

	rec, content, err := s.service.OpenContent(c.UserContext(), fileID)
	if err != nil {
		switch {
		case errors.Is(err, port.ErrFileNotFound):
			return s.sendJSONError(c, fiber.StatusNotFound, msgFileNotFound)
		case errors.Is(err, domain.ErrInvalidContent):
			sdklogger.Warnw("Stored content is not a data uri", "file_id", fileID)
			return s.sendJSONError(c, fiber.StatusUnprocessableEntity, msgUnsupportedFormat)
		default:
			return s.internalError(c, "Open content failed", fileID, err)
		}
	}

	c.Set(fiber.HeaderContentType, content.MimeType)
	disposition := "attachment"
	if d := mime.FormatMediaType("attachment", map[string]string{"filename": rec.FileName}); rec.FileName != "" && d != "" {
		disposition = d
	}
	c.Set(fiber.HeaderContentDisposition, disposition)
	return c.SendStream(content.Reader, int(content.Size))
}

func (s *Server) handleFileMetrics(c *fiber.Ctx) error {
	fileID := c.Params("fileId")

	rec, err := s.service.GetFile(c.UserContext(), fileID)
	if err != nil {
		if errors.Is(err, port.ErrFileNotFound) {
			return s.sendJSONError(c, fiber.StatusNotFound, msgFileNotFound)
		}
		return s.internalError(c, "Get file failed", fileID, err)
	}
	if !rec.IsOwner(c.Get(UploaderHeader)) {
		return s.sendJSONError(c, fiber.StatusForbidden, msgNotOwner)
	}

	metrics, err := s.service.GetFileMetrics(c.UserContext(), fileID)
	if err != nil {
		if errors.Is(err, port.ErrFileNotFound) {
			return s.sendJSONError(c, fiber.StatusNotFound, msgFileNotFound)
		}
		return s.internalError(c, "Get file metrics failed", fileID, err)
	}
	return c.JSON(metrics)
}

func (s *Server) internalError(c *fiber.Ctx, msg string, fileID string, err error) error {
	sdklogger.Errorw(msg,
		"file_id", fileID,
		"request_id", fmt.Sprint(c.Locals("requestid")),
		"error", err.Error(),
	)
	return s.sendJSONError(c, fiber.StatusInternalServerError, msgInternal)
}
