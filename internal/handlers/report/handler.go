package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medsched/infras/otel"
	"medsched/internal/domains/report/model"
	"medsched/internal/scheduling"
	"medsched/shared/constant"
	"medsched/transport/http/response"
)

type Handler struct {
	engine *scheduling.Facade
	otel   otel.Otel
}

func New(engine *scheduling.Facade, otel otel.Otel) Handler {
	return Handler{
		engine: engine,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/status", handler.GetStatusReport)
		routerGroup.Get("/", handler.GetReports)
		routerGroup.Get("/{id}", handler.GetReportByID)
	})
}

// GetStatusReport renders the current scheduling status.
// @Summary Get the status report
// @Description Render the current room and appointment state as text or HTML.
// @Tags Report
// @Accept json
// @Produce plain
// @Param format query string false "Report format (text or html)"
// @Success 200 {string} string "Rendered report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/status [get]
func (handler *Handler) GetStatusReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatusReport")
	defer scope.End()

	format := model.FormatText
	if v := r.URL.Query().Get(constant.RequestParamFormat); v != constant.Empty {
		format = model.Format(v)
	}

	res, err := handler.engine.StatusReport(ctx, format)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate status report")

		response.WithError(w, err)

		return
	}

	contentType := constant.ContentTypeText
	if format == model.FormatHTML {
		contentType = constant.ContentTypeHTML
	}

	response.WithContent(w, http.StatusOK, contentType, res.Content)
}

// GetReports lists generated reports.
// @Summary Get all reports
// @Description List every generated report, oldest first.
// @Tags Report
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetReportsResponse] "List of reports"
// @Failure 500 {object} response.Error
// @Router /v1/reports [get]
func (handler *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReports")
	defer scope.End()

	res, err := handler.engine.GetReports(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reports")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReportByID retrieves a stored report.
// @Summary Get a report by ID
// @Description Retrieve a previously generated report.
// @Tags Report
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Data[dto.ReportResponse] "Report details"
// @Failure 404 {object} response.Error
// @Router /v1/reports/{id} [get]
func (handler *Handler) GetReportByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReportByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.engine.GetReport(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("report", id).Msg("failed to get report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
