package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/service"
)

// ListDocuments godoc
// @Summary List ingested documents
// @Description One summary per filename with overall file and chunk counts.
// @Tags documents
// @Produce json
// @Success 200 {object} model.DocumentList
// @Failure 503 {object} errorPayload
// @Router /api/v1/documents/ [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListAll(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// SearchDocuments godoc
// @Summary Search documents by filename
// @Description Case-insensitive substring match.
// @Tags documents
// @Produce json
// @Param filename query string true "Filename fragment"
// @Success 200 {array} model.DocumentSummary
// @Failure 422 {object} errorPayload
// @Router /api/v1/documents/search [get]
func SearchDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.SearchByFilename(c.UserContext(), c.Query("filename"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// DocumentStats godoc
// @Summary Document store statistics
// @Tags documents
// @Produce json
// @Success 200 {object} model.DocumentStats
// @Failure 503 {object} errorPayload
// @Router /api/v1/documents/stats [get]
func DocumentStats(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

// SnapshotDocuments godoc
// @Summary Snapshot the document store
// @Description Exports every chunk to object storage and returns a time-limited download URL.
// @Tags documents
// @Produce json
// @Success 201 {object} model.Snapshot
// @Failure 503 {object} errorPayload
// @Router /api/v1/documents/snapshot [post]
func SnapshotDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Snapshot(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(snap)
	}
}

// DeleteDocumentBySource godoc
// @Summary Delete one document
// @Description Removes every chunk whose filename matches exactly.
// @Tags documents
// @Produce json
// @Param filename path string true "Filename"
// @Success 200 {object} model.DeleteResult
// @Failure 404 {object} errorPayload
// @Router /api/v1/documents/source/{filename} [delete]
func DeleteDocumentBySource(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename, err := url.PathUnescape(c.Params("filename"))
		if err != nil {
			return writeServiceError(c, service.NewValidationError(map[string]string{"filename": "invalid escaping"}))
		}

		res, err := svc.DeleteBySource(c.UserContext(), filename)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteAllDocuments godoc
// @Summary Delete every document
// @Description Irreversible. A snapshot is stored first when object storage is configured.
// @Tags documents
// @Produce json
// @Success 200 {object} model.DeleteResult
// @Failure 503 {object} errorPayload
// @Router /api/v1/documents/ [delete]
func DeleteAllDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.DeleteAll(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
