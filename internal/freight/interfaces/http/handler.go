// Package http is the Gin HTTP boundary of SPEC_FULL.md §4.12: a thin JSON
// translation layer over application.Engine, with no optimization logic of
// its own.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/freightroute/internal/freight/application"
	"github.com/wyfcoding/freightroute/internal/freight/domain"
)

// Handler exposes application.Engine's four operations as JSON routes.
type Handler struct {
	engine *application.Engine
	logger *slog.Logger
}

// NewHandler binds a Handler to an existing engine.
func NewHandler(engine *application.Engine, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers the four routes of SPEC_FULL.md §4.12 under r.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/routing")
	{
		group.POST("/optimize", h.Optimize)
		group.POST("/constraints/evaluate", h.EvaluateConstraints)
		group.GET("/status", h.Status)
		group.POST("/reload", h.Reload)
	}
}

// Optimize handles POST /api/v1/routing/optimize.
func (h *Handler) Optimize(c *gin.Context) {
	var dto optimizeRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req, err := dto.toDomain()
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.engine.OptimizeRoutes(c.Request.Context(), req)
	if err != nil {
		h.handleEngineError(c, err)
		return
	}

	out := make([]candidateRouteDTO, len(result.Routes))
	for i, r := range result.Routes {
		out[i] = fromCandidateRoute(r)
	}
	success(c, http.StatusOK, "routes optimized", optimizeResponseDTO{
		Routes:                 out,
		CandidatesEvaluated:    result.CandidatesEvaluated,
		OptimizationTimeMillis: result.OptimizationTimeMillis,
	})
}

// EvaluateConstraints handles POST /api/v1/routing/constraints/evaluate. It
// expects a body with both the route to evaluate and the originating
// request's parameters, since evaluation needs both.
func (h *Handler) EvaluateConstraints(c *gin.Context) {
	var body struct {
		Route   candidateRouteDTO  `json:"route" binding:"required"`
		Request optimizeRequestDTO `json:"request" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req, err := body.Request.toDomain()
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	route := toDomainRoute(body.Route)
	results := h.engine.EvaluateConstraints(c.Request.Context(), route, req)
	route.ConstraintResults = results

	out := make([]constraintResultDTO, len(results))
	for i, r := range results {
		out[i] = constraintResultDTO{ID: r.ID, Type: r.Type, Passed: r.Passed, IsHard: r.IsHard, Score: r.Score, Message: r.Message}
	}
	success(c, http.StatusOK, "constraints evaluated", evaluateConstraintsResponseDTO{
		Results:       out,
		AllHardPassed: route.AllHardPassed(),
		OverallScore:  route.OverallScore(),
	})
}

// Status handles GET /api/v1/routing/status.
func (h *Handler) Status(c *gin.Context) {
	status := h.engine.GetGraphStatus()

	counts := make([]modeCountDTO, 0, len(status.EdgeCountByMode))
	for mode, count := range status.EdgeCountByMode {
		counts = append(counts, modeCountDTO{Mode: mode.String(), Count: count})
	}

	success(c, http.StatusOK, "graph status", graphStatusDTO{
		NodeCount:       status.NodeCount,
		EdgeCount:       status.EdgeCount,
		EdgeCountByMode: counts,
		LoadedAt:        status.LoadedAt,
		LoadTimeMillis:  status.LoadTimeMillis,
	})
}

// Reload handles POST /api/v1/routing/reload.
func (h *Handler) Reload(c *gin.Context) {
	if err := h.engine.ReloadGraph(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, "reload failed", err)
		return
	}
	status := h.engine.GetGraphStatus()
	success(c, http.StatusOK, "graph reloaded", reloadResponseDTO{LoadTimeMillis: status.LoadTimeMillis})
}

func (h *Handler) handleEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownOrigin), errors.Is(err, domain.ErrUnknownDestination),
		errors.Is(err, domain.ErrInvalidWeight), errors.Is(err, domain.ErrInvertedWindow):
		fail(c, http.StatusBadRequest, "invalid request", err)
	default:
		h.logger.Error("optimize failed", "error", err)
		fail(c, http.StatusInternalServerError, "optimize failed", err)
	}
}

// toDomainRoute rebuilds the subset of a CandidateRoute that
// EvaluateConstraints actually reads (segments and totals), from the JSON
// shape a caller would have received from Optimize.
func toDomainRoute(dto candidateRouteDTO) *domain.CandidateRoute {
	segments := make([]domain.RouteSegment, len(dto.Segments))
	for i, s := range dto.Segments {
		mode, _ := domain.ParseTransportMode(s.Mode)
		cost, _ := decimal.NewFromString(s.CostUSD)
		segments[i] = domain.RouteSegment{
			Sequence:         s.Sequence,
			FromCode:         s.FromCode,
			ToCode:           s.ToCode,
			Mode:             mode,
			CarrierCode:      s.CarrierCode,
			CarrierName:      s.CarrierName,
			CostUSD:          cost,
			DistanceKm:       s.DistanceKm,
			TransitHours:     s.TransitHours,
			CarbonKg:         s.CarbonKg,
			CarrierWageCents: s.CarrierWageCents,
			LaborScore:       s.LaborScore,
			DepartureTime:    s.DepartureTime,
			ArrivalTime:      s.ArrivalTime,
		}
	}

	totalCost, _ := decimal.NewFromString(dto.TotalCostUSD)

	return &domain.CandidateRoute{
		ID:              dto.ID,
		Segments:        segments,
		TotalCostUSD:    totalCost,
		TotalTimeHours:  dto.TotalTimeHours,
		TotalCarbonKg:   dto.TotalCarbonKg,
		TotalDistanceKm: dto.TotalDistanceKm,
		LaborScore:      dto.LaborScore,
	}
}
