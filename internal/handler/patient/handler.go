package patient

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordinacija/patients-api/internal/handler"
	"github.com/ordinacija/patients-api/internal/service/patient"
	"github.com/ordinacija/patients-api/internal/viewmodel"
	"github.com/ordinacija/patients-api/pkg/csvexport"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
		patients.GET("/:id/export", h.ExportPatient)
		patients.GET("/oib/:oib", h.GetPatientByOib)
	}
}

type patientRequest struct {
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
	IsMale    bool      `json:"is_male"`
	Oib       string    `json:"oib" binding:"required"`
	Birthday  time.Time `json:"birthday" binding:"required"`
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(handler.FromError(err))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) GetPatientByOib(c *gin.Context) {
	view, err := h.service.GetByOib(c.Request.Context(), c.Param("oib"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res := h.service.Add(c.Request.Context(), viewmodel.PatientView{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsMale:    req.IsMale,
		Oib:       req.Oib,
		Birthday:  req.Birthday,
	})
	if !res.IsSuccess() {
		c.JSON(handler.FromResult(res))
		return
	}
	c.JSON(http.StatusCreated, handler.NewMessageResponse("patient created"))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res := h.service.Update(c.Request.Context(), viewmodel.PatientView{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsMale:    req.IsMale,
		Oib:       req.Oib,
		Birthday:  req.Birthday,
	})
	c.JSON(handler.FromResult(res))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}
	c.JSON(handler.FromResult(h.service.Delete(c.Request.Context(), id)))
}

// ExportPatient streams the patient's full record as a CSV download.
func (h *Handler) ExportPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(handler.FromError(err))
		return
	}

	fileName := csvexport.FileName(view.ID, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(csvexport.PatientRecord(*view)))
}
