package visit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordinacija/patients-api/internal/handler"
	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/service/visit"
	"github.com/ordinacija/patients-api/internal/viewmodel"
)

type Handler struct {
	service *visit.Service
}

func NewHandler(service *visit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/patients/:id/visits", h.ListVisits)
	r.POST("/patients/:id/visits", h.CreateVisit)

	visits := r.Group("/visits")
	{
		visits.GET("/types", h.ListVisitTypes)
		visits.GET("/:id", h.GetVisit)
		visits.PUT("/:id", h.UpdateVisit)
		visits.DELETE("/:id", h.DeleteVisit)
	}
}

type visitRequest struct {
	Type         model.VisitType `json:"type" binding:"required"`
	Date         time.Time       `json:"date" binding:"required"`
	DoctorsNotes string          `json:"doctors_notes" binding:"required"`
}

func (h *Handler) ListVisits(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	views, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(views))
}

func (h *Handler) ListVisitTypes(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.VisitTypes))
}

func (h *Handler) GetVisit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(handler.FromError(err))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) CreateVisit(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req visitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res := h.service.Add(c.Request.Context(), viewmodel.VisitView{
		PatientID:    patientID,
		Type:         req.Type,
		Date:         req.Date,
		DoctorsNotes: req.DoctorsNotes,
	})
	if !res.IsSuccess() {
		c.JSON(handler.FromResult(res))
		return
	}
	c.JSON(http.StatusCreated, handler.NewMessageResponse("visit created"))
}

func (h *Handler) UpdateVisit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}

	var req visitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res := h.service.Update(c.Request.Context(), id, viewmodel.VisitView{
		VisitID:      id,
		Type:         req.Type,
		Date:         req.Date,
		DoctorsNotes: req.DoctorsNotes,
	})
	c.JSON(handler.FromResult(res))
}

func (h *Handler) DeleteVisit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}
	c.JSON(handler.FromResult(h.service.Delete(c.Request.Context(), id)))
}
