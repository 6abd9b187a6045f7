package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/internal/middleware"
	"github.com/giftofhope10-tech/gift-of-hope/internal/model"
	"github.com/giftofhope10-tech/gift-of-hope/internal/services"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const adminSessionTTL = 24 * time.Hour

type adminLoginRequest struct {
	Password string `json:"password"`
}

type campaignRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	GoalAmount  amountString `json:"goalAmount"`
	ImageURL    string       `json:"imageUrl"`
	EndDate     string       `json:"endDate"`
}

type contactStatusRequest struct {
	Status string `json:"status"`
}

type campaignActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

func adminCookie(token string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func registerAdminRoutes(
	api *echo.Group,
	ds *services.DonationService,
	cs *services.CampaignService,
	contacts *services.ContactService,
	jwtSecret []byte,
	adminPasswordHash string,
	secureCookies bool,
) {
	admin := api.Group("/admin")

	admin.POST("/login", func(c echo.Context) error {
		var req adminLoginRequest
		if err := c.Bind(&req); err != nil || req.Password == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}

		if err := bcrypt.CompareHashAndPassword(
			[]byte(adminPasswordHash), []byte(req.Password),
		); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}

		token, err := middleware.GenerateAdminToken(jwtSecret, adminSessionTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server configuration error"})
		}

		c.SetCookie(adminCookie(token, int(adminSessionTTL.Seconds()), secureCookies))
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Logged in successfully",
		})
	})

	admin.POST("/logout", func(c echo.Context) error {
		c.SetCookie(adminCookie("", -1, secureCookies))
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Logged out successfully",
		})
	})

	admin.Use(middleware.AdminAuth(jwtSecret))

	admin.GET("/donations", func(c echo.Context) error {
		list, err := ds.ListRecent(c.Request().Context(), 100)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch donations"})
		}
		if list == nil {
			list = []model.Donation{}
		}
		return c.JSON(http.StatusOK, list)
	})

	admin.GET("/contacts", func(c echo.Context) error {
		list, err := contacts.ListRecent(c.Request().Context(), 100)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch contacts"})
		}
		if list == nil {
			list = []model.Contact{}
		}
		return c.JSON(http.StatusOK, echo.Map{"contacts": list})
	})

	admin.PATCH("/contacts/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}
		var req contactStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}
		if err := contacts.MarkStatus(c.Request().Context(), id, req.Status); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	admin.GET("/campaigns", func(c echo.Context) error {
		list, err := cs.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch campaigns"})
		}
		if list == nil {
			list = []model.Campaign{}
		}
		return c.JSON(http.StatusOK, echo.Map{"campaigns": list})
	})

	admin.POST("/campaigns", func(c echo.Context) error {
		var req campaignRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}

		campaign, err := cs.Create(c.Request().Context(), services.CampaignInput{
			Title:       req.Title,
			Description: req.Description,
			GoalAmount:  string(req.GoalAmount),
			ImageURL:    req.ImageURL,
			EndDate:     req.EndDate,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"campaign": campaign})
	})

	admin.PUT("/campaigns/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}
		var req campaignRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}

		campaign, err := cs.Update(c.Request().Context(), id, services.CampaignInput{
			Title:       req.Title,
			Description: req.Description,
			GoalAmount:  string(req.GoalAmount),
			ImageURL:    req.ImageURL,
			EndDate:     req.EndDate,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"campaign": campaign})
	})

	admin.PATCH("/campaigns/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}
		var req campaignActiveRequest
		if err := c.Bind(&req); err != nil || req.IsActive == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}
		if err := cs.SetActive(c.Request().Context(), id, *req.IsActive); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update campaign"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	admin.DELETE("/campaigns/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
		}
		if err := cs.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete campaign"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	admin.DELETE("/user-data/:email", func(c echo.Context) error {
		email := c.Param("email")

		donationsDeleted, err := ds.DeleteDonorData(c.Request().Context(), email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Invalid email",
			})
		}
		contactsDeleted, err := contacts.DeleteByEmail(c.Request().Context(), email)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "Failed to delete contact data",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": fmt.Sprintf("Deleted %d donations and %d contacts", donationsDeleted, contactsDeleted),
			"deleted": echo.Map{
				"donations": donationsDeleted,
				"contacts":  contactsDeleted,
			},
		})
	})
}
