package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type adminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/admin/create
func (h Handler) CreateAdmin(c *gin.Context) {
	var req adminCredentials
	if !BindJSONOrError(c, &req) {
		return
	}
	admin, err := h.Auth.CreateAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin created", "admin": admin})
}

// POST /api/admin/login
func (h Handler) Login(c *gin.Context) {
	var req adminCredentials
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
