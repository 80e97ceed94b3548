package contexts

import (
	"strings"

	"asset-bridge/core/bridge"
	"asset-bridge/core/logger"
	"asset-bridge/core/middleware/rayid"
	"asset-bridge/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CallerHeader names the host caller a request acts for.
const CallerHeader = "X-Caller-ID"

// PropertyRequest is the body of a property update.
type PropertyRequest struct {
	Type  string `json:"type" example:"float"`
	Value any    `json:"value" swaggertype:"string" example:"2.5"`
}

// LoadRequest is the body of a load call.
type LoadRequest struct {
	Path  string `json:"path" example:"s3://assets/models/cube.obj"`
	Flags uint32 `json:"flags" example:"8"`
}

// Handler handles HTTP requests for import contexts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the contexts routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/contexts")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Get("/history", h.HandleHistory)
	group.Delete("/:handle", h.HandleFree)
	group.Put("/:handle/properties/:name", h.HandleSetProperty)
	group.Post("/:handle/load", h.HandleLoad)
	group.Get("/:handle/scene", h.HandleScene)
	group.Get("/:handle/history", h.HandleSessionHistory)
}

func headerCaller(c *fiber.Ctx) string {
	return strings.Clone(c.Get(CallerHeader))
}

func caller(c *fiber.Ctx) string {
	if id := headerCaller(c); id != "" {
		return id
	}
	if rid := rayid.Get(c); rid != "" {
		return rid
	}
	return "anonymous"
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parseHandle(c *fiber.Ctx) (bridge.Handle, error) {
	return bridge.ParseHandle(c.Params("handle"))
}

// HandleCreate opens a new import context.
// @Summary Create Context
// @Description Creates an import session for the calling host and returns its handle.
// @Tags contexts
// @Produce json
// @Param X-Caller-ID header string false "Host caller identity"
// @Success 201 {object} map[string]string "Handle"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 507 {object} map[string]string "Session limit reached"
// @Router /contexts [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	id := caller(c)
	l := logger.WithRayID(h.service.logger, c).With(zap.String("caller", id))

	handle, err := h.service.Create(c.Context(), id)
	if err != nil {
		return h.fail(c, l, "Failed to create context", err)
	}
	l.Info("Context created", zap.Stringer("handle", handle))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"handle": handle.String()})
}

// HandleList lists live contexts.
// @Summary List Contexts
// @Description Lists live handles with registry and log hub counters.
// @Tags contexts
// @Produce json
// @Success 200 {object} Overview
// @Router /contexts [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleFree destroys a context.
// @Summary Free Context
// @Description Destroys the session and releases its log hub reference.
// @Tags contexts
// @Produce json
// @Param handle path string true "Context handle"
// @Param X-Caller-ID header string false "Host caller identity, defaults to the creating caller"
// @Success 200 {object} map[string]string "Freed"
// @Failure 404 {object} map[string]string "Invalid handle"
// @Router /contexts/{handle} [delete]
func (h *Handler) HandleFree(c *fiber.Ctx) error {
	id := headerCaller(c)
	l := logger.WithRayID(h.service.logger, c)
	if id != "" {
		l = l.With(zap.String("caller", id))
	}

	handle, err := parseHandle(c)
	if err != nil {
		return h.fail(c, l, "Failed to free context", err)
	}
	if err := h.service.Free(c.Context(), id, handle); err != nil {
		return h.fail(c, l, "Failed to free context", err)
	}
	return c.JSON(fiber.Map{"status": "freed", "handle": handle.String()})
}

// HandleSetProperty stores a property for the next load.
// @Summary Set Property
// @Description Stores a typed importer property that applies to the next load on the context.
// @Tags contexts
// @Accept json
// @Produce json
// @Param handle path string true "Context handle"
// @Param name path string true "Property name"
// @Param body body PropertyRequest true "Typed value"
// @Success 200 {object} map[string]interface{} "Stored property"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Invalid handle"
// @Router /contexts/{handle}/properties/{name} [put]
func (h *Handler) HandleSetProperty(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	handle, err := parseHandle(c)
	if err != nil {
		return h.fail(c, l, "Failed to set property", err)
	}

	var req PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	name := strings.Clone(c.Params("name"))
	v, err := h.service.SetProperty(handle, name, req.Type, req.Value)
	if err != nil {
		return h.fail(c, l, "Failed to set property", err)
	}
	return c.JSON(fiber.Map{"name": v.Name, "type": v.Type.String(), "value": v.Value()})
}

// HandleLoad imports an asset into a context.
// @Summary Load Asset
// @Description Imports a local path or s3://bucket/key object with the pending properties and publishes the scene.
// @Tags contexts
// @Accept json
// @Produce json
// @Param handle path string true "Context handle"
// @Param body body LoadRequest true "Asset path and flags"
// @Success 200 {object} bridge.SceneSummary
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Invalid handle"
// @Failure 422 {object} map[string]string "Import failed"
// @Failure 507 {object} map[string]string "Scene too large"
// @Router /contexts/{handle}/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	handle, err := parseHandle(c)
	if err != nil {
		return h.fail(c, l, "Failed to load asset", err)
	}

	var req LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	summary, err := h.service.Load(c.Context(), handle, req.Path, req.Flags)
	if err != nil {
		return h.fail(c, l, "Failed to load asset", err)
	}
	return c.JSON(summary)
}

// HandleScene returns the current scene.
// @Summary Get Scene
// @Description Returns the scene of the last successful load. Pass full=true for the complete scene.
// @Tags contexts
// @Produce json
// @Param handle path string true "Context handle"
// @Param full query boolean false "Return meshes and nodes"
// @Success 200 {object} bridge.SceneSummary
// @Failure 404 {object} map[string]string "Invalid handle"
// @Failure 409 {object} map[string]string "No asset loaded"
// @Router /contexts/{handle}/scene [get]
func (h *Handler) HandleScene(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	handle, err := parseHandle(c)
	if err != nil {
		return h.fail(c, l, "Failed to get scene", err)
	}
	scene, err := h.service.Scene(handle)
	if err != nil {
		return h.fail(c, l, "Failed to get scene", err)
	}
	if utils.ToBool(c.Query("full")) {
		return c.JSON(scene)
	}
	return c.JSON(scene.Summary())
}

// HandleHistory returns recent imports.
// @Summary Import History
// @Description Lists recent import outcomes, newest first.
// @Tags contexts
// @Produce json
// @Param limit query int false "Maximum records"
// @Success 200 {array} history.ImportRecord
// @Failure 503 {object} map[string]string "History disabled"
// @Router /contexts/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.History(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, l, "Failed to list history", err)
	}
	return c.JSON(records)
}

// HandleSessionHistory returns the imports of one handle.
// @Summary Context History
// @Description Lists the import outcomes recorded for one handle, oldest first. Freed handles keep their records.
// @Tags contexts
// @Produce json
// @Param handle path string true "Context handle"
// @Success 200 {array} history.ImportRecord
// @Failure 404 {object} map[string]string "Invalid handle"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /contexts/{handle}/history [get]
func (h *Handler) HandleSessionHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	handle, err := parseHandle(c)
	if err != nil {
		return h.fail(c, l, "Failed to list context history", err)
	}
	records, err := h.service.SessionHistory(c.Context(), handle)
	if err != nil {
		return h.fail(c, l, "Failed to list context history", err)
	}
	return c.JSON(records)
}
