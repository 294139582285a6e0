package routes

import (
	"github.com/gin-gonic/gin"

	"ClinicCare360/controllers"
	"ClinicCare360/monitoring"
	"ClinicCare360/services"
)

func Routes(r *gin.Engine, patientSvc *services.PatientService, authSvc *services.AuthService, ping controllers.PingFunc) {
	controllers.Health(r, ping)
	controllers.Auth(r, authSvc)
	controllers.Patient(r, patientSvc)
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))
}
