package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/callscopeco/callscope/pkg/llm"
	"github.com/callscopeco/callscope/pkg/rag"
)

// AskRequest is the JSON body for POST /v1/ask.
type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// handleAskEndpoint handles POST /v1/ask requests: retrieve the most
// similar transcripts and generate a grounded answer citing them.
func (s *Server) handleAskEndpoint(c *fiber.Ctx) error {
	if s.pipeline == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(llm.ErrorResponse{
			Error: "ask is not configured: vector driver and embedder are required",
		})
	}

	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
			Error: "question is required",
		})
	}

	output, err := s.pipeline.Ask(c.Context(), req.Question, req.TopK)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyQuestion) {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
				Error: err.Error(),
			})
		}
		// Store unavailable: no documents, no fabricated answer.
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(output)
}
