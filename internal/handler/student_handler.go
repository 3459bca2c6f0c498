package handler

import (
	"net/http"
	"strconv"

	"anoa.com/tutorcabinet/internal/service"
	"anoa.com/tutorcabinet/pkg/apperror"
	"anoa.com/tutorcabinet/pkg/response"
	"anoa.com/tutorcabinet/pkg/validator"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService service.StudentService
}

func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.CreateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	id, err := h.studentService.CreateStudent(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *StudentHandler) DeactivateStudent(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	if err := h.studentService.DeactivateStudent(c.Request.Context(), actor, uint(id)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student deactivated"})
}
