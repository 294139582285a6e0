package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"ClinicCare360/models"
	"ClinicCare360/services"
)

type PatientController struct {
	svc *services.PatientService
}

// Patient registers the visit-record routes. Static segments like
// /analytics and /by-date take precedence over the :id parameter.
func Patient(router *gin.Engine, svc *services.PatientService) {
	ctrl := &PatientController{svc: svc}
	patients := router.Group("/api/patients")
	{
		patients.GET("/analytics", ctrl.GetAnalytics)
		patients.GET("", ctrl.ListPatients)
		patients.GET("/by-date/:date", ctrl.GetVisitsByDate)
		patients.GET("/visits/:name/:phone", ctrl.GetPatientVisits)
		patients.GET("/:id", ctrl.GetVisitByID)
		patients.POST("", ctrl.AddVisit)
		patients.PUT("/update-demographics", ctrl.UpdateDemographics)
		patients.PUT("/:id", ctrl.UpdateVisit)
		patients.DELETE("/by-name-and-phone/:name/:phone", ctrl.DeleteIdentity)
	}
}

// VisitRequest is the JSON body for creating a visit. Dates come in either as
// RFC3339 timestamps or plain calendar dates, so they are carried as strings
// and parsed here.
type VisitRequest struct {
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	Condition    string  `json:"condition"`
	Treatment    string  `json:"treatment"`
	VisitDate    string  `json:"visitDate"`
	FollowUpDate string  `json:"followUpDate"`
	Diabetes     string  `json:"diabetes"`
	AmountPaid   float64 `json:"amountPaid"`
}

func (r *VisitRequest) ToVisit() (*models.Visit, error) {
	visit := &models.Visit{
		Name:       r.Name,
		Age:        r.Age,
		Gender:     r.Gender,
		Phone:      r.Phone,
		Email:      r.Email,
		Condition:  r.Condition,
		Treatment:  r.Treatment,
		Diabetes:   r.Diabetes,
		AmountPaid: r.AmountPaid,
	}
	if r.VisitDate != "" {
		t, err := models.ParseDate(r.VisitDate)
		if err != nil {
			return nil, models.ErrInvalidRange
		}
		visit.VisitDate = t
	}
	if r.FollowUpDate != "" {
		t, err := models.ParseDate(r.FollowUpDate)
		if err != nil {
			return nil, models.ErrInvalidRange
		}
		visit.FollowUpDate = &t
	}
	return visit, nil
}

func (ctrl *PatientController) ListPatients(c *gin.Context) {
	patients, err := ctrl.svc.ListPatients(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch patients")
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (ctrl *PatientController) GetVisitByID(c *gin.Context) {
	visit, err := ctrl.svc.GetVisit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch patient")
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (ctrl *PatientController) GetPatientVisits(c *gin.Context) {
	name := pathParam(c, "name")
	phone := pathParam(c, "phone")
	visits, err := ctrl.svc.ListVisitsForIdentity(c.Request.Context(), name, phone)
	if err != nil {
		respondError(c, err, "Failed to fetch visits")
		return
	}
	c.JSON(http.StatusOK, visits)
}

func (ctrl *PatientController) GetVisitsByDate(c *gin.Context) {
	visits, err := ctrl.svc.ListAppointmentsOnDate(c.Request.Context(), c.Param("date"))
	if errors.Is(err, models.ErrInvalidRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date."})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to fetch appointments.")
		return
	}
	c.JSON(http.StatusOK, visits)
}

func (ctrl *PatientController) GetAnalytics(c *gin.Context) {
	analytics, err := ctrl.svc.GetAnalytics(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, err, "Failed to fetch analytics data.")
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (ctrl *PatientController) AddVisit(c *gin.Context) {
	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	visit, err := req.ToVisit()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format."})
		return
	}
	created, err := ctrl.svc.AddVisit(c.Request.Context(), visit)
	if err != nil {
		respondError(c, err, "Failed to add patient")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctrl *PatientController) UpdateVisit(c *gin.Context) {
	patch := make(map[string]interface{})
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := ctrl.svc.UpdateVisit(c.Request.Context(), c.Param("id"), patch)
	if errors.Is(err, models.ErrInvalidRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format."})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to update visit record.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

type demographicsRequest struct {
	OriginalName       string                 `json:"originalName"`
	OriginalPhone      string                 `json:"originalPhone"`
	UpdatedPatientInfo map[string]interface{} `json:"updatedPatientInfo"`
}

func (ctrl *PatientController) UpdateDemographics(c *gin.Context) {
	var req demographicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	modified, err := ctrl.svc.UpdateDemographics(c.Request.Context(), req.OriginalName, req.OriginalPhone, req.UpdatedPatientInfo)
	if errors.Is(err, models.ErrInvalidRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format."})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to update patient information.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Successfully updated %d records.", modified)})
}

func (ctrl *PatientController) DeleteIdentity(c *gin.Context) {
	name := pathParam(c, "name")
	phone := pathParam(c, "phone")
	deleted, err := ctrl.svc.DeleteIdentity(c.Request.Context(), name, phone)
	if err != nil {
		respondError(c, err, "Failed to delete patient records.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Successfully deleted %d records for patient %s.", deleted, name)})
}

// pathParam unescapes a path segment so names and phone numbers round-trip
// through the URL the same way the frontend encodes them.
func pathParam(c *gin.Context, key string) string {
	raw := c.Param(key)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
