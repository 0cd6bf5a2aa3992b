// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"cartalk/internal/services"
	"cartalk/internal/transport/httpdto"
	cartalk_errors "cartalk/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("All fields (name, email, password) are required."))
		return
	}

	err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, cartalk_errors.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Email already registered."))
		case errors.Is(err, cartalk_errors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("All fields (name, email, password) are required."))
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Internal server error"))
		}
		return
	}

	c.JSON(http.StatusCreated, httpdto.MessageResponse{Message: "User registered successfully!"})
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Email and password are required."))
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, cartalk_errors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Email and password are required."))
		case errors.Is(err, cartalk_errors.ErrUnauthorized):
			// Same message for unknown email and wrong password.
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("Invalid email or password."))
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Internal server error"))
		}
		return
	}

	c.JSON(http.StatusOK, httpdto.LoginResponse{
		Message: "Login successful!",
		Token:   res.Token,
		User: httpdto.UserDTO{
			Name:  res.User.Name,
			Email: res.User.Email,
		},
	})
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	info, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, cartalk_errors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
			return
		}
		c.Error(err)
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, httpdto.MeResponse{
		User: httpdto.UserDTO{Name: info.Name, Email: info.Email},
	})
}
