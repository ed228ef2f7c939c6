package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

type AuthController struct {
	Auth    *services.AuthService
	Clients *services.ClientService
}

func NewAuthController(auth *services.AuthService, clients *services.ClientService) *AuthController {
	return &AuthController{Auth: auth, Clients: clients}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLogin handles POST /api/auth/login.
func (ctrl *AuthController) StaffLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	token, admin, err := ctrl.Auth.StaffLogin(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}

// ClientLogin handles POST /api/auth/client/login.
func (ctrl *AuthController) ClientLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	token, client, err := ctrl.Auth.ClientLogin(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "client": client})
}

// Register handles POST /api/auth/register for guest sign-up.
func (ctrl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	client, err := ctrl.Clients.Register(req.FullName, req.Email, req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, client)
}
