package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"
	"github.com/giftofhope10-tech/gift-of-hope/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCampaignRoutes(api *echo.Group, cs *services.CampaignService, cronSecret string) {

	api.GET("/campaigns", func(c echo.Context) error {
		list, err := cs.ListActive(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":     "Failed to fetch campaigns",
				"campaigns": []model.Campaign{},
			})
		}
		if list == nil {
			list = []model.Campaign{}
		}
		return c.JSON(http.StatusOK, echo.Map{"campaigns": list})
	})

	api.GET("/campaigns/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid campaign id"})
		}

		campaign, err := cs.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch campaign"})
		}
		if campaign == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Campaign not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"campaign": campaign})
	})

	// Invoked by an external scheduler; the hourly in-process ticker covers
	// deployments without one.
	api.POST("/cleanup-campaigns", func(c echo.Context) error {
		if cronSecret != "" {
			if c.Request().Header.Get("Authorization") != "Bearer "+cronSecret {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
		}

		deleted, err := cs.DeleteExpired(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"error":   "Cleanup failed",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success":   true,
			"deleted":   deleted,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
