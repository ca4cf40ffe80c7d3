package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"divyakart/models"
	"divyakart/services"
)

type ProfileController struct {
	users *services.UserService
}

func NewProfileController(users *services.UserService) *ProfileController {
	return &ProfileController{users: users}
}

func (p *ProfileController) Get(c *gin.Context) {
	user, err := p.users.GetByPhone(c.Request.Context(), c.GetString("phoneNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user, "profileComplete": user.ProfileComplete()})
}

func (p *ProfileController) Update(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "name and a valid email are required")
		return
	}

	user, err := p.users.UpdateProfile(c.Request.Context(), c.GetString("phoneNumber"), input.Name, input.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user, "profileComplete": user.ProfileComplete()})
}

func (p *ProfileController) AddAddress(c *gin.Context) {
	var addr models.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		respondError(c, http.StatusBadRequest, "invalid address")
		return
	}

	phone := c.GetString("phoneNumber")
	if err := p.users.AddAddress(c.Request.Context(), phone, addr); err != nil {
		respondServiceError(c, err)
		return
	}
	user, err := p.users.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"addresses": user.Addresses})
}
