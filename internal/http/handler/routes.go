package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"docreport/internal/service"
)

const healthTimeout = 5 * time.Second

// RegisterRoutes attaches the report API to app.
func RegisterRoutes(app *fiber.App, svc service.ReportService) {
	app.Get("/health", HealthCheck(svc))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api/documentos")
	api.Post("/consultar", ConsultDocuments(svc))
	api.Post("/preview", PreviewReport(svc))
	api.Post("/enviar", SendReports(svc))
}

// HealthCheck pings the warehouse.
//
//	@Summary	Warehouse connectivity check
//	@Tags		health
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	errorPayload
//	@Router		/health [get]
func HealthCheck(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			return writeErrorDetails(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "warehouse unavailable", err.Error())
		}
		return c.JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ConsultDocuments lists the contracts of a period that can receive a report.
//
//	@Summary	List contracts of a period
//	@Tags		documentos
//	@Accept		json
//	@Produce	json
//	@Param		body	body		consultRequest	true	"period"
//	@Success	200		{object}	service.ConsultResult
//	@Failure	400		{object}	errorPayload
//	@Failure	500		{object}	errorPayload
//	@Router		/api/documentos/consultar [post]
func ConsultDocuments(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req consultRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}

		res, err := svc.Consult(c.UserContext(), req.Period)
		if err != nil {
			return serviceError(c, err, "Erro ao consultar documentos")
		}
		return c.JSON(res)
	}
}

// PreviewReport renders one contract report without sending it.
//
//	@Summary	Preview a contract report
//	@Tags		documentos
//	@Accept		json
//	@Produce	json
//	@Param		body	body		previewRequest	true	"contract and period"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Failure	500		{object}	errorPayload
//	@Router		/api/documentos/preview [post]
func PreviewReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req previewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}

		html, err := svc.Preview(c.UserContext(), req.key(), req.Period)
		if err != nil {
			return serviceError(c, err, "Erro ao gerar prévia do e-mail")
		}
		return c.JSON(fiber.Map{"success": true, "html": html})
	}
}

// SendReports renders and mails the requested contract reports.
//
//	@Summary	Send contract reports
//	@Tags		documentos
//	@Accept		json
//	@Produce	json
//	@Param		body	body		sendRequest	true	"dispatch list"
//	@Success	200		{object}	model.BatchResult
//	@Failure	400		{object}	errorPayload
//	@Failure	500		{object}	errorPayload
//	@Router		/api/documentos/enviar [post]
func SendReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sendRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}

		res, err := svc.SendBatch(c.UserContext(), req.Dispatches)
		if err != nil {
			return serviceError(c, err, "Erro ao processar envio de e-mails")
		}
		return c.JSON(res)
	}
}

// serviceError maps service errors to responses. Unknown errors are 500 with the
// cause in details.
func serviceError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrInvalidPeriod), errors.Is(err, service.ErrEmptyBatch):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrContractNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "Nenhum documento encontrado para este contrato")
	default:
		return writeErrorDetails(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", message, err.Error())
	}
}
