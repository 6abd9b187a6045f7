package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giftofhope10-tech/gift-of-hope/internal/services"

	"github.com/labstack/echo/v4"
)

// amountString accepts a JSON number or string; the donation form has sent
// both over time.
type amountString string

func (a *amountString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = amountString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amountString(n.String())
	return nil
}

type createOrderRequest struct {
	DonorName     string       `json:"donorName"`
	DonorEmail    string       `json:"donorEmail"`
	Amount        amountString `json:"amount"`
	Currency      string       `json:"currency"`
	LocalAmount   amountString `json:"localAmount"`
	LocalCurrency string       `json:"localCurrency"`
	CampaignID    *int64       `json:"campaignId"`
}

// noStore keeps intermediaries from caching payment responses.
func noStore(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		h.Set("Pragma", "no-cache")
		return next(c)
	}
}

// Order routes live at the root, not under /api: the donor-facing PayPal
// flow has always called them there.
func registerOrderRoutes(e *echo.Echo, ds *services.DonationService, paypalClientID string) {

	e.GET("/paypal-client-id", func(c echo.Context) error {
		if paypalClientID == "" {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "PayPal configuration missing",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"clientId": paypalClientID})
	})

	e.POST("/order", func(c echo.Context) error {
		var req createOrderRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		payload, err := ds.CreateOrder(c.Request().Context(), services.CreateOrderInput{
			DonorName:     req.DonorName,
			DonorEmail:    req.DonorEmail,
			Amount:        string(req.Amount),
			Currency:      req.Currency,
			LocalAmount:   string(req.LocalAmount),
			LocalCurrency: req.LocalCurrency,
			CampaignID:    req.CampaignID,
		})
		if err != nil {
			return orderError(c, err)
		}

		return c.JSONBlob(http.StatusOK, payload)
	}, noStore)

	e.POST("/order/:orderID/capture", func(c echo.Context) error {
		payload, err := ds.CaptureOrder(c.Request().Context(), c.Param("orderID"))
		if err != nil {
			return orderError(c, err)
		}
		return c.JSONBlob(http.StatusOK, payload)
	}, noStore)
}

// orderError translates workflow errors into transport responses. Messages
// are fixed strings; wrapped diagnostic detail never leaves the process.
func orderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid donation amount"})
	case errors.Is(err, services.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found or expired"})
	case errors.Is(err, services.ErrOrderAlreadyProcessed):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Order already processed"})
	case errors.Is(err, services.ErrOrderExpired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Order has expired"})
	case errors.Is(err, services.ErrAmountCurrencyMismatch):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Payment amount/currency mismatch"})
	case errors.Is(err, services.ErrCaptureFailed):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "PayPal capture failed"})
	case errors.Is(err, services.ErrInvalidProviderResponse):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Invalid PayPal response"})
	case errors.Is(err, services.ErrOrderPersistence):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store order details"})
	case errors.Is(err, services.ErrPaymentProvider):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment processing failed"})
	}
}
