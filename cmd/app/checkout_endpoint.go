package main

import (
	"errors"
	"net/http"

	"ZeeCrownAPI/internal/middleware"
	"ZeeCrownAPI/internal/model"
	"ZeeCrownAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type placeOrderRequest struct {
	AddressID     int64  `json:"addressid"`
	PaymentMethod string `json:"paymentmethod"`
	Origin        string `json:"origin"`
	ProductID     int64  `json:"productid,omitempty"`
	Quantity      int    `json:"quantity,omitempty"`
}

func registerCheckoutRoutes(g *echo.Group, cs *services.CheckoutService) {
	p := g.Group("/checkout")
	p.Use(middleware.JWTMiddleware())

	// GET /checkout/quote — pre-flight pricing for the checkout screen
	p.GET("/quote", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		quote, err := cs.QuoteCart(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not price cart"})
		}
		return c.JSON(http.StatusOK, quote)
	})

	// POST /checkout — one checkout attempt
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}

		req := new(placeOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}

		origin := model.CartOrigin(req.Origin)
		if origin == "" {
			origin = model.OriginCart
		}

		result, err := cs.PlaceOrder(c.Request().Context(), model.PlaceOrderInput{
			UserID:        claims.UserID,
			AddressID:     req.AddressID,
			PaymentMethod: model.PaymentMethod(req.PaymentMethod),
			Origin:        origin,
			ProductID:     req.ProductID,
			Quantity:      req.Quantity,
		})
		if err != nil {
			return checkoutError(c, err)
		}
		if result.State == model.CheckoutStateCancelled {
			// not an error: the shopper backed out of the payment UI
			return c.JSON(http.StatusOK, result)
		}
		return c.JSON(http.StatusCreated, result)
	})
}

// checkoutError maps the typed checkout errors onto HTTP responses.
func checkoutError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNoAddressSelected),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidOrigin),
		errors.Is(err, services.ErrInvalidPayment),
		errors.Is(err, services.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrCheckoutInProgress):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	var pf *services.PaymentFailedError
	if errors.As(err, &pf) {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": pf.Error()})
	}

	// storage and partial-commit failures surface as a generic order error
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "order could not be placed"})
}
