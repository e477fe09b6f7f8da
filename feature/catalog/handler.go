package catalog

import (
	"bytes"
	"errors"

	"dat-manager/core/datfile"
	"dat-manager/core/formats"
	"dat-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stored catalogs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleImport)
	group.Get("/:name", h.HandleGet)
	group.Get("/:name/stats", h.HandleStats)
	group.Get("/:name/export", h.HandleExport)
	group.Delete("/:name", h.HandleDelete)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrExists):
		status = fiber.StatusConflict
	case errors.Is(err, ErrNoDatabase):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, formats.ErrUnknownFormat):
		status = fiber.StatusBadRequest
	default:
		l.Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleList lists stored catalogs.
// @Summary List Catalogs
// @Description Lists every catalog stored in the database.
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.Catalog "Catalogs"
// @Failure 503 {object} map[string]string "Database not configured"
// @Router /catalog [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	cats, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, l, "Catalog list failed", err)
	}
	return c.JSON(cats)
}

// HandleGet returns one catalog header.
// @Summary Get Catalog
// @Tags catalog
// @Produce json
// @Param name path string true "Catalog name"
// @Success 200 {object} catalog.Catalog "Catalog"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	cat, err := h.service.Get(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, l, "Catalog lookup failed", err)
	}
	return c.JSON(cat)
}

// HandleStats returns aggregate counts for one catalog.
// @Summary Catalog Statistics
// @Description Counts items per type and status, machines, total size and hash coverage.
// @Tags catalog
// @Produce json
// @Param name path string true "Catalog name"
// @Success 200 {object} catalog.Stats "Statistics"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/{name}/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	stats, err := h.service.Stats(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, l, "Catalog stats failed", err)
	}
	return c.JSON(stats)
}

// HandleImport parses the request body and stores it.
// @Summary Import Catalog
// @Description Parses the body in the given format and stores it under its header name.
// @Tags catalog
// @Accept xml
// @Produce json
// @Param format query string false "Body format (logiqx, json, yaml)" default(logiqx)
// @Param replace query boolean false "Replace an existing catalog of the same name"
// @Success 201 {object} catalog.Catalog "Stored catalog"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Conflict"
// @Router /catalog [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.Context()

	f, err := formats.Lookup(c.Query("format", "logiqx"))
	if err != nil {
		return h.fail(c, l, "Catalog import failed", err)
	}
	stream, err := f.Parse(ctx, bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	items, err := datfile.Collect(ctx, stream, nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	dat := datfile.New(stream.Header)
	dat.Items.AddRange(items)
	if name := c.Query("name"); name != "" {
		dat.Header.Name = name
	}

	cat, err := h.service.Import(ctx, dat, c.QueryBool("replace"))
	if err != nil {
		return h.fail(c, l, "Catalog import failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// HandleExport serializes a stored catalog.
// @Summary Export Catalog
// @Tags catalog
// @Produce xml
// @Param name path string true "Catalog name"
// @Param format query string false "Output format (logiqx, json, yaml)" default(logiqx)
// @Success 200 {string} string "Serialized catalog"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/{name}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.Context()

	f, err := formats.Lookup(c.Query("format", "logiqx"))
	if err != nil {
		return h.fail(c, l, "Catalog export failed", err)
	}
	dat, err := h.service.Export(ctx, c.Params("name"))
	if err != nil {
		return h.fail(c, l, "Catalog export failed", err)
	}

	var buf bytes.Buffer
	if err := f.Write(ctx, &buf, dat, c.QueryBool("ignore_blanks")); err != nil {
		return h.fail(c, l, "Catalog export failed", err)
	}
	c.Attachment(formats.OutputName(f, dat.Header.FileName))
	return c.Send(buf.Bytes())
}

// HandleDelete removes a stored catalog.
// @Summary Delete Catalog
// @Tags catalog
// @Param name path string true "Catalog name"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	if err := h.service.Delete(c.Context(), c.Params("name")); err != nil {
		return h.fail(c, l, "Catalog delete failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
