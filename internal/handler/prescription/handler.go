package prescription

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordinacija/patients-api/internal/handler"
	"github.com/ordinacija/patients-api/internal/service/prescription"
	"github.com/ordinacija/patients-api/internal/viewmodel"
)

type Handler struct {
	service *prescription.Service
}

func NewHandler(service *prescription.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/patients/:id/prescriptions", h.ListPrescriptions)
	r.POST("/patients/:id/prescriptions", h.CreatePrescription)

	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.PUT("/:id", h.UpdatePrescription)
		prescriptions.DELETE("/:id", h.DeletePrescription)
	}
}

type prescriptionRequest struct {
	MedicationName string     `json:"medication_name" binding:"required"`
	DatePrescribed time.Time  `json:"date_prescribed" binding:"required"`
	DateEnding     *time.Time `json:"date_ending"`
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
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

func (h *Handler) CreatePrescription(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req prescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res := h.service.Add(c.Request.Context(), viewmodel.PrescriptionView{
		PatientID:      patientID,
		MedicationName: req.MedicationName,
		DatePrescribed: req.DatePrescribed,
		DateEnding:     req.DateEnding,
	})
	if !res.IsSuccess() {
		c.JSON(handler.FromResult(res))
		return
	}
	c.JSON(http.StatusCreated, handler.NewMessageResponse("prescription created"))
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prescription ID"))
		return
	}

	var req prescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res := h.service.Update(c.Request.Context(), id, viewmodel.PrescriptionView{
		PrescriptionID: id,
		MedicationName: req.MedicationName,
		DatePrescribed: req.DatePrescribed,
		DateEnding:     req.DateEnding,
	})
	c.JSON(handler.FromResult(res))
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prescription ID"))
		return
	}
	c.JSON(handler.FromResult(h.service.Delete(c.Request.Context(), id)))
}
