package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/service"
	"github.com/noah-isme/cohort-tools-api/pkg/response"
)

type studentService interface {
	Create(ctx context.Context, req service.StudentRequest) (*models.Student, error)
	List(ctx context.Context) ([]models.StudentDetail, error)
	ListByCohort(ctx context.Context, cohortID string) ([]models.StudentDetail, error)
	Get(ctx context.Context, id string) (*models.StudentDetail, error)
	Update(ctx context.Context, id string, req service.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) (*models.Student, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.StudentRequest true "Student payload"
// @Success 200 {object} models.Student
// @Failure 400 {object} response.Envelope
// @Router /api/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.StudentRequest
	if err := bindPayload(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// List godoc
// @Summary List students with their cohort
// @Tags Students
// @Produce json
// @Success 200 {array} models.StudentDetail
// @Router /api/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// ListByCohort godoc
// @Summary List the students of a cohort
// @Tags Students
// @Produce json
// @Param cohortId path string true "Cohort ID"
// @Success 200 {array} models.StudentDetail
// @Failure 400 {object} response.Envelope
// @Router /api/students/cohort/{cohortId} [get]
func (h *StudentHandler) ListByCohort(c *gin.Context) {
	students, err := h.students.ListByCohort(c.Request.Context(), c.Param("cohortId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// Get godoc
// @Summary Get student with its cohort
// @Tags Students
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} models.StudentDetail
// @Failure 400 {object} response.Envelope
// @Router /api/students/{studentId} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param payload body service.StudentRequest true "Fields to change"
// @Success 200 {object} models.Student
// @Failure 400 {object} response.Envelope
// @Router /api/students/{studentId} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.StudentRequest
	if err := bindPayload(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} models.Student
// @Router /api/students/{studentId} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	student, err := h.students.Delete(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}
