package handler

import (
	"errors"
	"net/http"

	"anoa.com/tutorcabinet/internal/testgen"
	"anoa.com/tutorcabinet/pkg/response"
	"anoa.com/tutorcabinet/pkg/validator"
	"github.com/gin-gonic/gin"
)

type GenerateTestInput struct {
	Material string `json:"material" binding:"required,max=100"`
}

type TestGenHandler struct {
	client *testgen.Client
}

func NewTestGenHandler(client *testgen.Client) *TestGenHandler {
	return &TestGenHandler{client: client}
}

func (h *TestGenHandler) GenerateTest(c *gin.Context) {
	if _, err := response.GetActor(c); err != nil {
		response.ResponseError(c, err)
		return
	}

	var input GenerateTestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	content, err := h.client.GenerateTest(c.Request.Context(), input.Material)
	if err != nil {
		var genErr *testgen.Error
		if errors.As(err, &genErr) {
			c.JSON(generationStatus(genErr.Kind), gin.H{
				"error": genErr.Message(),
				"kind":  genErr.Kind.String(),
			})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"test": content})
}

func generationStatus(kind testgen.Kind) int {
	switch kind {
	case testgen.KindMaterialMissing, testgen.KindModelNotFound:
		return http.StatusNotFound
	case testgen.KindTimeout:
		return http.StatusGatewayTimeout
	case testgen.KindModelUnavailable, testgen.KindServerError, testgen.KindConnectionFailed, testgen.KindEmptyResponse:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
