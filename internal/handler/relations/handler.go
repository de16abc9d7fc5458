package relations

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-core/internal/model"
	"github.com/jwalitptl/vetclinic-core/internal/repository"
	"github.com/jwalitptl/vetclinic-core/internal/service/enrichment"
	"github.com/jwalitptl/vetclinic-core/internal/service/integrity"
	"github.com/jwalitptl/vetclinic-core/internal/service/query"
	"github.com/jwalitptl/vetclinic-core/internal/service/repair"
	apperrors "github.com/jwalitptl/vetclinic-core/pkg/errors"
	"github.com/jwalitptl/vetclinic-core/pkg/metrics"
)

// Handler exposes the relation engine over HTTP. It is the persistence
// adapter around the pure engine: every request loads fresh snapshots from
// the store, runs the engine and, for repairs, commits the result back.
type Handler struct {
	store     repository.Store
	enricher  *enrichment.Service
	validator *integrity.Validator
	repairer  *repair.Engine
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewHandler(store repository.Store, enricher *enrichment.Service, validator *integrity.Validator, repairer *repair.Engine, m *metrics.Metrics) *Handler {
	return &Handler{
		store:     store,
		enricher:  enricher,
		validator: validator,
		repairer:  repairer,
		metrics:   m,
		now:       time.Now,
	}
}

func respondError(c *gin.Context, status int, err *apperrors.AppError) {
	c.JSON(status, gin.H{"status": "error", "code": err.Code, "message": err.Message})
}

type listRequest struct {
	OwnerID string `form:"owner_id"`
	Species string `form:"species"`
	Urgency string `form:"urgency" binding:"omitempty,oneof=all high medium low"`
	Status  string `form:"status"`
	Vet     string `form:"vet"`
	From    string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To      string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Search  string `form:"search"`
	Sort    string `form:"sort" binding:"omitempty,oneof=date_asc date_desc urgency pet_name owner_name"`
}

func (h *Handler) ListRelations(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, apperrors.BadRequest(err.Error(), err))
		return
	}

	records, err := h.enrichSnapshot(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apperrors.Internal(err))
		return
	}

	criteria := query.Criteria{
		OwnerID: req.OwnerID,
		Species: req.Species,
		Urgency: req.Urgency,
		Status:  req.Status,
		VetName: req.Vet,
		Search:  req.Search,
	}
	if req.From != "" {
		from, _ := time.Parse("2006-01-02", req.From)
		criteria.From = &from
	}
	if req.To != "" {
		to, _ := time.Parse("2006-01-02", req.To)
		// Inclusive upper bound: cover the whole day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		criteria.To = &to
	}

	records = query.Filter(records, criteria)
	if req.Sort != "" {
		records = query.Sort(records, query.SortKey(req.Sort))
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": records})
}

func (h *Handler) GetStats(c *gin.Context) {
	records, err := h.enrichSnapshot(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apperrors.Internal(err))
		return
	}

	stats := query.ComputeStats(records, h.now())
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
}

func (h *Handler) GetIntegrityReport(c *gin.Context) {
	ctx := c.Request.Context()
	apts, pets, owners, records, err := h.loadSnapshot(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apperrors.Internal(err))
		return
	}

	report := h.validator.Validate(apts, pets, owners, records)
	for _, entry := range report.Invalid {
		h.metrics.IntegrityDefects.WithLabelValues(string(entry.Issue)).Inc()
	}
	for _, entry := range report.Fixable {
		h.metrics.IntegrityDefects.WithLabelValues(string(entry.Issue)).Inc()
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": report})
}

func (h *Handler) RunAutoRepair(c *gin.Context) {
	ctx := c.Request.Context()
	apts, pets, owners, _, err := h.loadSnapshot(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apperrors.Internal(err))
		return
	}

	result := h.repairer.AutoFix(apts, pets, owners)

	if err := h.store.CommitRepairs(ctx, result); err != nil {
		respondError(c, http.StatusInternalServerError, apperrors.Internal(err))
		return
	}

	for _, fix := range result.AppliedFixes {
		h.metrics.RepairsApplied.WithLabelValues(fix.Action).Inc()
	}
	for range result.Errors {
		h.metrics.RepairErrors.Inc()
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": result})
}

func (h *Handler) enrichSnapshot(c *gin.Context) ([]model.RelationRecord, error) {
	apts, pets, owners, records, err := h.loadSnapshot(c.Request.Context())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	enriched := h.enricher.EnrichAll(apts, pets, owners, records)
	h.metrics.EnrichmentLatency.Observe(time.Since(start).Seconds())
	h.metrics.RelationsEnriched.Add(float64(len(enriched)))
	return enriched, nil
}

func (h *Handler) loadSnapshot(ctx context.Context) ([]model.Appointment, []model.Pet, []model.Owner, []model.MedicalRecord, error) {
	apts, err := h.store.Appointments(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	pets, err := h.store.Pets(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	owners, err := h.store.Owners(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	records, err := h.store.MedicalRecords(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return apts, pets, owners, records, nil
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	relations := r.Group("/relations")
	{
		relations.GET("", h.ListRelations)
		relations.GET("/stats", h.GetStats)
	}
	integrityGroup := r.Group("/integrity")
	{
		integrityGroup.GET("", h.GetIntegrityReport)
		integrityGroup.POST("/repair", h.RunAutoRepair)
	}
}
