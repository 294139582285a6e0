package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicCare360/models"
	"ClinicCare360/services"
)

type AuthController struct {
	svc *services.AuthService
}

func Auth(router *gin.Engine, svc *services.AuthService) {
	ctrl := &AuthController{svc: svc}
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", ctrl.Register)
		auth.POST("/login", ctrl.Login)
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide username and password"})
		return
	}
	user, err := ctrl.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide username and password"})
		case errors.Is(err, models.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		default:
			log.Println("Error from Register:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    gin.H{"username": user.Username},
	})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide username and password"})
		return
	}
	user, err := ctrl.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide username and password"})
		case errors.Is(err, models.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			log.Println("Error from Login:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    gin.H{"username": user.Username},
	})
}
