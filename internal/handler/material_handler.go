package handler

import (
	"net/http"
	"strconv"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/internal/service"
	"anoa.com/tutorcabinet/pkg/apperror"
	"anoa.com/tutorcabinet/pkg/response"
	"anoa.com/tutorcabinet/pkg/validator"
	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	materialService service.MaterialService
}

func NewMaterialHandler(materialService service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	filter := repository.MaterialFilter{
		Category: c.Query("category"),
		ExamType: model.MaterialExam(c.Query("exam_type")),
	}

	materials, err := h.materialService.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

func (h *MaterialHandler) UploadMaterial(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.UploadMaterialInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer f.Close()

	material, err := h.materialService.Upload(c.Request.Context(), actor, input, service.MaterialFile{
		Reader:   f,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
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

	if err := h.materialService.Delete(c.Request.Context(), actor, uint(id)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "material deleted"})
}

func (h *MaterialHandler) DownloadMaterial(c *gin.Context) {
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

	result, err := h.materialService.Download(c.Request.Context(), actor, uint(id))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MaterialHandler) SearchToken(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	token, err := h.materialService.SearchToken(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
