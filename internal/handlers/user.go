package handlers

import (
	"errors"

	"smartwallet/internal/repositories"
	"smartwallet/internal/services/auth"
	"smartwallet/internal/services/user"
	"smartwallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
	authService *auth.Service
}

func NewUserHandler(userService user.Service, authService *auth.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Country  string `json:"country"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	registered, err := h.userService.Register(c.Context(), user.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Country:  req.Country,
	})
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to register user")
	}

	registered.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"data":    registered,
	})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	loggedIn, err := h.userService.Login(c.Context(), user.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Incorrect username or password")
	}

	access, refresh, err := h.authService.GenerateTokens(loggedIn)
	if err != nil {
		return response.ServerError(c, "Failed to generate tokens")
	}

	loggedIn.Password = ""
	return response.Success(c, "login successful", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          loggedIn,
	})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	profile, err := h.userService.GetByIDWithRelations(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.ServerError(c, "Failed to get profile")
	}
	profile.Password = ""
	return response.Success(c, "profile", profile)
}

func (h *UserHandler) EditProfile(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req struct {
		FirstName         string `json:"first_name"`
		LastName          string `json:"last_name"`
		Email             string `json:"email"`
		ProfilePictureURL string `json:"profile_picture_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	updated, err := h.userService.EditProfile(c.Context(), claims.UserID, user.EditRequest{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.ServerError(c, "Failed to update profile")
	}
	updated.Password = ""
	return response.Success(c, "profile updated", updated)
}
