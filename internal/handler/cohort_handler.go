package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/service"
	"github.com/noah-isme/cohort-tools-api/pkg/response"
)

type cohortService interface {
	Create(ctx context.Context, req service.CohortRequest) (*models.Cohort, error)
	List(ctx context.Context) ([]models.Cohort, error)
	Get(ctx context.Context, id string) (*models.Cohort, error)
	Update(ctx context.Context, id string, req service.CohortRequest) (*models.Cohort, error)
	Delete(ctx context.Context, id string) (*models.Cohort, error)
}

type rosterService interface {
	Roster(ctx context.Context, cohortID, format string) (*service.RosterFile, error)
}

// CohortHandler exposes cohort endpoints.
type CohortHandler struct {
	cohorts cohortService
	roster  rosterService
}

// NewCohortHandler constructs CohortHandler.
func NewCohortHandler(cohorts cohortService, roster rosterService) *CohortHandler {
	return &CohortHandler{cohorts: cohorts, roster: roster}
}

// Create godoc
// @Summary Create cohort
// @Tags Cohorts
// @Accept json
// @Produce json
// @Param payload body service.CohortRequest true "Cohort payload"
// @Success 200 {object} models.Cohort
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/cohorts [post]
func (h *CohortHandler) Create(c *gin.Context) {
	var req service.CohortRequest
	if err := bindPayload(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	cohort, err := h.cohorts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cohort)
}

// List godoc
// @Summary List cohorts
// @Tags Cohorts
// @Produce json
// @Success 200 {array} models.Cohort
// @Router /api/cohorts [get]
func (h *CohortHandler) List(c *gin.Context) {
	cohorts, err := h.cohorts.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cohorts)
}

// Get godoc
// @Summary Get cohort
// @Tags Cohorts
// @Produce json
// @Param cohortId path string true "Cohort ID"
// @Success 200 {object} models.Cohort
// @Failure 400 {object} response.Envelope
// @Router /api/cohorts/{cohortId} [get]
func (h *CohortHandler) Get(c *gin.Context) {
	cohort, err := h.cohorts.Get(c.Request.Context(), c.Param("cohortId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cohort)
}

// Update godoc
// @Summary Update cohort
// @Tags Cohorts
// @Accept json
// @Produce json
// @Param cohortId path string true "Cohort ID"
// @Param payload body service.CohortRequest true "Fields to change"
// @Success 200 {object} models.Cohort
// @Failure 400 {object} response.Envelope
// @Router /api/cohorts/{cohortId} [put]
func (h *CohortHandler) Update(c *gin.Context) {
	var req service.CohortRequest
	if err := bindPayload(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	cohort, err := h.cohorts.Update(c.Request.Context(), c.Param("cohortId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cohort)
}

// Delete godoc
// @Summary Delete cohort
// @Tags Cohorts
// @Produce json
// @Param cohortId path string true "Cohort ID"
// @Success 200 {object} models.Cohort
// @Failure 409 {object} response.Envelope
// @Router /api/cohorts/{cohortId} [delete]
func (h *CohortHandler) Delete(c *gin.Context) {
	cohort, err := h.cohorts.Delete(c.Request.Context(), c.Param("cohortId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cohort)
}

// Roster godoc
// @Summary Download cohort roster
// @Tags Cohorts
// @Produce text/csv
// @Produce application/pdf
// @Param cohortId path string true "Cohort ID"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/cohorts/{cohortId}/roster [get]
func (h *CohortHandler) Roster(c *gin.Context) {
	file, err := h.roster.Roster(c.Request.Context(), c.Param("cohortId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
