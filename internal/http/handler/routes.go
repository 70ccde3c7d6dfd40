package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"imageapi/internal/service"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes attaches the file API and health routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, store Pinger, fileSvc service.FileService, log logrus.FieldLogger) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	files := app.Group("/api/files")
	files.Post("/upload", UploadFile(fileSvc, log))
	files.Get("/", ListFiles(fileSvc, log))
	files.Get("/:fileId", GetFile(fileSvc, log))
}

// HealthCheck pings the metadata store.
func HealthCheck(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return respond(c, errUnavailable)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadFile handles multipart/form-data uploads, field name: file.
//
// @Summary Upload an image
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "image file"
// @Success 200 {object} model.FileRecord
// @Failure 400 {object} errorPayload
// @Router /api/files/upload [post]
func UploadFile(fileSvc service.FileService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return respond(c, errFileRequired)
		}

		f, err := fh.Open()
		if err != nil {
			return respond(c, errFileOpen)
		}
		defer f.Close()

		in, err := service.NewUploadInput(f, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			if e, ok := fromService(err); ok {
				return respond(c, e)
			}
			return respond(c, errBadRequest)
		}

		rec, err := fileSvc.Upload(c.UserContext(), in)
		if err != nil {
			e, known := fromService(err)
			if !known {
				log.WithError(err).WithField("request_id", requestIDFromCtx(c)).Error("upload_failed")
			}
			return respond(c, e)
		}
		return c.Status(fiber.StatusOK).JSON(rec)
	}
}

// ListFiles returns every stored record.
//
// @Summary List files
// @Produce json
// @Success 200 {array} model.FileRecord
// @Router /api/files [get]
func ListFiles(fileSvc service.FileService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := fileSvc.List(c.UserContext())
		if err != nil {
			log.WithError(err).WithField("request_id", requestIDFromCtx(c)).Error("list_files_failed")
			return respond(c, errInternal)
		}
		return c.JSON(items)
	}
}

// GetFile streams a stored file.
//
// @Summary Download a file
// @Produce image/jpeg
// @Param fileId path string true "file id"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /api/files/{fileId} [get]
func GetFile(fileSvc service.FileService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("fileId")
		fc, err := fileSvc.Open(c.UserContext(), id)
		if err != nil {
			e, known := fromService(err)
			if !known {
				log.WithError(err).WithFields(logrus.Fields{
					"request_id": requestIDFromCtx(c),
					"file_id":    id,
				}).Error("open_file_failed")
			}
			return respond(c, e)
		}

		c.Set(fiber.HeaderContentType, fc.ContentType)
		size := -1
		if fc.Size >= 0 {
			size = int(fc.Size)
		}
		// fasthttp closes the body once it has been streamed.
		return c.Status(fiber.StatusOK).SendStream(fc.Body, size)
	}
}
