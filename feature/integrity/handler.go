package integrity

import (
	"asset-bridge/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/models", h.HandleModelsCheck)
	group.Get("/history", h.HandleHistoryCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the storage structure, stored models and import history checks.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["storage"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if models, err := h.service.CheckModels(ctx); err != nil {
		report["models"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["models"] = models
	}

	if hist, err := h.service.CheckHistory(); err != nil {
		report["history"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["history"] = hist
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the bucket structure.
// @Summary Check Storage Structure
// @Description Checks if the required asset folders exist in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleModelsCheck reports stored models the engine cannot import.
// @Summary Check Stored Models
// @Description Lists objects under models/ and reports unsupported formats.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ModelReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/models [get]
func (h *Handler) HandleModelsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckModels(c.Context())
	if err != nil {
		l.Error("Models check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(report.Unsupported) > 0 {
		l.Warn("Unsupported models detected", zap.Strings("unsupported", report.Unsupported))
	}
	return c.JSON(report)
}

// HandleHistoryCheck checks the import history schema.
// @Summary Check History Schema
// @Description Checks that the import history table exists with the expected columns.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.HistoryReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/history [get]
func (h *Handler) HandleHistoryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting history schema check")

	report, err := h.service.CheckHistory()
	if err != nil {
		l.Error("History schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
