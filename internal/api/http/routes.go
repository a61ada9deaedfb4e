package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/floatchat/floatchat/internal/chat"
)

var validate = validator.New()

// queryRequest is the body of POST /api/v1/query.
type queryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *chat.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/query", func(c *fiber.Ctx) error {
		var req queryRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resp := service.Process(c.Context(), req.Query, req.SessionID, req.UserID)
		return c.JSON(resp)
	})

	v1.Get("/variables", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"variables": service.Variables(),
		})
	})

	v1.Get("/sessions/:id/history", func(c *fiber.Ctx) error {
		sessionID := c.Params("id")
		history, err := service.History(c.Context(), sessionID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to retrieve session history")
		}
		return c.JSON(fiber.Map{
			"session_id": sessionID,
			"history":    history,
		})
	})

	v1.Get("/sessions/:id/stats", func(c *fiber.Ctx) error {
		sessionID := c.Params("id")
		stats, err := service.Stats(c.Context(), sessionID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute session stats")
		}
		return c.JSON(stats)
	})

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		if err := service.DeleteSession(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete session history")
		}
		return c.JSON(fiber.Map{"deleted": true})
	})

	v1.Get("/export/:query_id", func(c *fiber.Ctx) error {
		queryID := c.Params("query_id")
		format := c.Query("format", "csv")

		url, err := service.ExportURL(c.Context(), queryID, format)
		if err != nil {
			if errors.Is(err, chat.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no results for requested query id")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "export failed")
		}

		return c.JSON(fiber.Map{
			"query_id":     queryID,
			"format":       format,
			"download_url": url,
		})
	})
}
