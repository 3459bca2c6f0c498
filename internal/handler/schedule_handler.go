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

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (h *ScheduleHandler) ListSchedule(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	view, err := h.scheduleService.ListSchedule(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.CreateSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	slot, err := h.scheduleService.CreateWeeklySlot(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *ScheduleHandler) RecordLesson(c *gin.Context) {
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

	lesson, err := h.scheduleService.RecordLesson(c.Request.Context(), actor, uint(id))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lesson)
}
