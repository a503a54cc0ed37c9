package image

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ordinacija/patients-api/internal/handler"
	"github.com/ordinacija/patients-api/internal/service/image"
)

type Handler struct {
	service *image.Service
}

func NewHandler(service *image.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/visits/:id/images", h.UploadImage)
	r.GET("/visits/:id/images", h.ListImageURLs)
	r.DELETE("/images/:id", h.DeleteImage)
}

// UploadImage accepts a multipart form with a single "file" part and attaches
// it to the visit.
func (h *Handler) UploadImage(c *gin.Context) {
	visitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("missing file upload"))
		return
	}
	if fileHeader.Size > image.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, handler.NewErrorResponse("file exceeds maximum allowed size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	defer file.Close()

	res := h.service.Upload(c.Request.Context(), visitID, file, fileHeader.Filename)
	if !res.IsSuccess() {
		c.JSON(handler.FromResult(res))
		return
	}
	c.JSON(http.StatusCreated, handler.NewMessageResponse("image uploaded"))
}

func (h *Handler) ListImageURLs(c *gin.Context) {
	visitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}

	urls, err := h.service.URLsForVisit(c.Request.Context(), visitID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(urls))
}

func (h *Handler) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid image ID"))
		return
	}
	c.JSON(handler.FromResult(h.service.Delete(c.Request.Context(), id)))
}
