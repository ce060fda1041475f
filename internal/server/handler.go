package server

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/skyhire/matchengine/match"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	modelID := s.svc.ModelID()
	return c.JSON(HealthResponse{
		Status:      "healthy",
		ModelLoaded: modelID != "",
		ModelID:     modelID,
	})
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	result, err := s.svc.Evaluate(c.Context(), req.pair())
	if err != nil {
		s.logger.Warn("evaluation failed",
			zap.String("request_id", requestIDFrom(c)),
			zap.Error(err),
		)
		return mapError(err)
	}
	return c.JSON(toResponse(result))
}

func (s *Server) handleBatch(c *fiber.Ctx) error {
	pairs, err := s.parseBatch(c)
	if err != nil {
		return err
	}
	results, err := s.svc.EvaluateBatch(c.Context(), pairs)
	if err != nil {
		s.logger.Warn("batch evaluation failed",
			zap.String("request_id", requestIDFrom(c)),
			zap.Error(err),
		)
		return mapError(err)
	}
	resp := BatchResponse{Results: make([]AnalyzeResponse, len(results))}
	for i, result := range results {
		resp.Results[i] = toResponse(result)
	}
	return c.JSON(resp)
}

// handleReport evaluates the submitted pairs and streams the tabular
// projection back as a CSV attachment.
func (s *Server) handleReport(c *fiber.Ctx) error {
	pairs, err := s.parseBatch(c)
	if err != nil {
		return err
	}
	results, err := s.svc.EvaluateBatch(c.Context(), pairs)
	if err != nil {
		return mapError(err)
	}
	var buf bytes.Buffer
	if err := match.WriteCSV(&buf, match.ToRows(results)); err != nil {
		return mapError(err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume_job_match_report.csv"`)
	return c.Send(buf.Bytes())
}

func (s *Server) parseBatch(c *fiber.Ctx) ([]match.Pair, error) {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	pairs := make([]match.Pair, len(req.Pairs))
	for i, r := range req.Pairs {
		pairs[i] = r.pair()
	}
	return pairs, nil
}
