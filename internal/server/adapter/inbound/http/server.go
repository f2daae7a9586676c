package http_handler

import (
	"context"
	_ "embed"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/anthanhphan/go-file-uploader/internal/server/config"
	"github.com/anthanhphan/go-file-uploader/internal/server/domain"
	"github.com/anthanhphan/go-file-uploader/internal/server/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Multipart field names accepted by the upload route.
const (
	FieldFile  = "file"
	FieldFiles = "files"
)

const (
	msgNoFiles        = "No file(s) provided."
	msgInvalidName    = "Invalid file name."
	msgFileStored     = "File uploaded successfully."
	msgFilesStored    = "Files uploaded successfully."
	msgFileFailed     = "Error uploading file."
	msgFilesFailed    = "Error uploading files."
	uploadPathPattern = "{{UPLOAD_PATH}}"
)

//go:embed web/index.html
var indexPage string

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.FileService
	page    []byte
}

func NewServer(cfg *config.Config, service port.FileService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(cfg.Server.BodyLimit),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
		page:    []byte(strings.ReplaceAll(indexPage, uploadPathPattern, cfg.Server.UploadPath)),
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.handlePage)
	s.app.Post(s.cfg.Server.UploadPath, s.handleUpload)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func (s *Server) handlePage(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(s.page)
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		sdklogger.Debugw("Upload body is not a multipart form", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusBadRequest, msgNoFiles)
	}

	// Repeated "files" entries take precedence; otherwise the first "file" entry is used.
	headers := form.File[FieldFiles]
	single := false
	if len(headers) == 0 {
		if file := form.File[FieldFile]; len(file) > 0 {
			headers = file[:1]
			single = true
		}
	}
	if len(headers) == 0 {
		return s.sendJSONError(c, fiber.StatusBadRequest, msgNoFiles)
	}

	result, err := s.service.StoreFiles(c.UserContext(), incomingFiles(headers))
	if err != nil {
		return s.sendStoreError(c, err, single, result)
	}

	if single {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":  msgFileStored,
			"fileName": result.Stored[0],
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": msgFilesStored,
		"files":   result.Stored,
	})
}

// sendStoreError maps service errors to replies. Storage details stay in the log.
func (s *Server) sendStoreError(c *fiber.Ctx, err error, single bool, result domain.UploadResult) error {
	switch {
	case errors.Is(err, port.ErrNoFiles):
		return s.sendJSONError(c, fiber.StatusBadRequest, msgNoFiles)
	case errors.Is(err, port.ErrInvalidFileName):
		return s.sendJSONError(c, fiber.StatusBadRequest, msgInvalidName)
	}

	sdklogger.Errorw("Upload request failed", "stored", len(result.Stored), "error", err.Error())
	if single {
		return s.sendJSONError(c, fiber.StatusInternalServerError, msgFileFailed)
	}
	return s.sendJSONError(c, fiber.StatusInternalServerError, msgFilesFailed)
}

func incomingFiles(headers []*multipart.FileHeader) []domain.IncomingFile {
	files := make([]domain.IncomingFile, 0, len(headers))
	for _, h := range headers {
		files = append(files, domain.IncomingFile{
			Name: h.Filename,
			Size: h.Size,
			Open: func() (io.ReadCloser, error) {
				return h.Open()
			},
		})
	}
	return files
}
