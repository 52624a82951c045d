package refseq

import (
	"bytes"
	"encoding/json"

	"refseq-assign/core/logger"
	"refseq-assign/feature/refseq/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reference sequence assignment.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the refseq routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/refseq")
	group.Post("/filter", h.HandleFilter)
	group.Get("/summary", h.HandleSummary)
	group.Post("/tables/reload", h.HandleReload)
}

// HandleFilter runs the assignment stages over one record or an array of records.
// A single record answers with a single result.
func (h *Handler) HandleFilter(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body is empty",
		})
	}

	batch := body[0] == '['
	var records []*models.EntityRecord
	if batch {
		if err := json.Unmarshal(body, &records); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid record array: " + err.Error(),
			})
		}
	} else {
		var rec models.EntityRecord
		if err := json.Unmarshal(body, &rec); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid record: " + err.Error(),
			})
		}
		records = []*models.EntityRecord{&rec}
	}

	results, err := h.service.Filter(c.Context(), records)
	if err != nil {
		l.Error("Filter failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	failed := 0
	for _, res := range results {
		if !res.OK {
			failed++
		}
	}
	l.Info("Filtered records", zap.Int("records", len(results)), zap.Int("failed", failed))

	if batch {
		return c.JSON(results)
	}
	return c.JSON(results[0])
}

// HandleSummary returns the match table tally.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Summary(c.Context())
	if err != nil {
		l.Error("Summary failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleReload reloads the lookup tables.
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Reload(c.Context())
	if err != nil {
		l.Error("Tables reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	l.Info("Tables reloaded", zap.Any("tables", stats))
	return c.JSON(fiber.Map{
		"status": "reloaded",
		"tables": stats,
	})
}
