package main

import (
	"errors"
	"net/http"

	"github.com/giftofhope10-tech/gift-of-hope/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type dataDeletionRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

func registerContactRoutes(api *echo.Group, cs *services.ContactService, log zerolog.Logger) {

	api.POST("/contact", func(c echo.Context) error {
		var req contactRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		err := cs.Submit(c.Request().Context(), req.Name, req.Email, req.Subject, req.Message)
		if err != nil {
			if errors.Is(err, services.ErrMissingContactFields) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields are required"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit contact form"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Thank you for contacting us. We will get back to you soon!",
		})
	})

	// GDPR intake: the request is acknowledged and logged; actual deletion
	// happens through the admin user-data endpoint.
	api.POST("/data-deletion-request", func(c echo.Context) error {
		var req dataDeletionRequest
		if err := c.Bind(&req); err != nil || req.Email == "" || req.Type == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Email and type are required",
			})
		}

		log.Info().
			Str("email", req.Email).
			Str("type", req.Type).
			Msg("data deletion request received")

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Data deletion request received. We will process it within 30 days as per GDPR requirements.",
		})
	})
}
