package update

import (
	"errors"
	"os"

	"dat-manager/core/formats"
	"dat-manager/core/logger"
	"dat-manager/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for update runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the update routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/update")
	group.Get("/modes", h.HandleModes)
	group.Post("/", h.HandleUpdate)
	group.Post("/plan", h.HandlePlan)
	group.Post("/stats", h.HandleStats)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownMode),
		errors.Is(err, ErrNoInputs),
		errors.Is(err, ErrNoBases),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, formats.ErrUnknownFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fiber.StatusNotFound
	case errors.Is(err, catalog.ErrNoDatabase):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleModes lists the supported modes.
// @Summary List Update Modes
// @Tags update
// @Produce json
// @Success 200 {array} string "Modes"
// @Router /update/modes [get]
func (h *Handler) HandleModes(c *fiber.Ctx) error {
	return c.JSON(Modes)
}

// HandleUpdate runs a reconcile operation and uploads the outputs.
// @Summary Run Update
// @Description Reconciles the inputs with the requested mode and writes every non-empty output to object storage. Inputs and bases must be s3:// or db:// references.
// @Tags update
// @Accept json
// @Produce json
// @Param request body update.Request true "Update request"
// @Success 200 {object} update.Response "Run result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /update [post]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	return h.run(c, false)
}

// HandlePlan runs a reconcile operation without writing anything.
// @Summary Plan Update
// @Description Same as /update with dry_run forced, returning the planned outputs.
// @Tags update
// @Accept json
// @Produce json
// @Param request body update.Request true "Update request"
// @Success 200 {object} update.Response "Planned result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /update/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	return h.run(c, true)
}

// StatsRequest lists the catalogs to summarize.
type StatsRequest struct {
	Inputs []string `json:"inputs"`
}

// HandleStats reports item counters per input catalog.
// @Summary Catalog Statistics
// @Description Parses each input and returns counts per item type, hash and status.
// @Tags update
// @Accept json
// @Produce json
// @Param request body update.StatsRequest true "Inputs"
// @Success 200 {array} update.CatalogStats "Statistics"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /update/stats [post]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req StatsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := RemoteOnly(req.Inputs); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := h.service.Stats(c.Context(), req.Inputs)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			l.Error("Stats failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

func (h *Handler) run(c *fiber.Ctx, dryRun bool) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	req.DryRun = req.DryRun || dryRun
	if err := RemoteOnly(req.Inputs, req.Bases); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Update requested", zap.String("mode", string(req.Mode)), zap.Strings("inputs", req.Inputs))

	resp, err := h.service.Run(c.Context(), req, nil)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			l.Error("Update failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}
