package main

import (
	"net/http"

	"github.com/giftofhope10-tech/gift-of-hope/internal/services"

	"github.com/labstack/echo/v4"
)

func registerStatsRoutes(api *echo.Group, ss *services.StatsService) {

	api.GET("/stats", func(c echo.Context) error {
		overview, err := ss.Overview(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch stats"})
		}
		return c.JSON(http.StatusOK, overview)
	})

	api.GET("/recent-donations", func(c echo.Context) error {
		donations, total, err := ss.RecentDonations(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch donations"})
		}
		if donations == nil {
			donations = []services.RecentDonation{}
		}
		return c.JSON(http.StatusOK, echo.Map{
			"donations": donations,
			"total":     total,
		})
	}, noStore)
}
