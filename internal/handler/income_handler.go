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

type IncomeHandler struct {
	incomeService service.IncomeService
}

func NewIncomeHandler(incomeService service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

func (h *IncomeHandler) ListIncome(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	records, err := h.incomeService.List(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": records})
}

func (h *IncomeHandler) AddIncome(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.AddIncomeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	record, err := h.incomeService.Add(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *IncomeHandler) UpdateIncomeStatus(c *gin.Context) {
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

	var input service.UpdateIncomeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.incomeService.UpdateStatus(c.Request.Context(), actor, uint(id), input.Status); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (h *IncomeHandler) ResetIncome(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.incomeService.Reset(c.Request.Context(), actor); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "income reset"})
}
