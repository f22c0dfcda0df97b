package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"jubili-gateway/internal/checkout"
	"jubili-gateway/internal/models"
)

type paymentRequest struct {
	AddressID string `json:"addressId"`
}

// selectAddress resolves the destination for a checkout: the explicitly
// selected address when an id is given, otherwise the user's default.
// Returns nil when the user has no usable address.
func selectAddress(ctx context.Context, db *mongo.Database, userID, addressID string) *models.Address {
	user, err := findUser(ctx, db, userID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("[CHECKOUT] [ERROR] address lookup failed:", err)
		}
		return nil
	}

	if addressID != "" {
		return user.AddressByID(addressID)
	}
	return user.DefaultAddress()
}

// CheckoutPreview returns the checkout page payload for cart mode
// (:type == "cart") or single-item mode (:type == product id): resolved line
// items with attributed delivery charges, totals, and the selected address.
func CheckoutPreview(db *mongo.Database, service *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "CHECKOUT")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		mode := checkout.ModeFromParam(strings.TrimSpace(c.Param("type")))
		address := selectAddress(ctx, db, id.UserID, strings.TrimSpace(c.Query("addressId")))

		preview := service.BuildPreview(ctx, mode, id, address)
		c.JSON(http.StatusOK, gin.H{"data": preview})
	}
}

// InitiatePayment runs the payment sequence and returns the payment-widget
// options the client opens. Precondition failures are reported before any
// order-creation call goes out.
func InitiatePayment(db *mongo.Database, service *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "PAYMENT")
		if !ok {
			return
		}

		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[PAYMENT] [ERROR] invalid payment body:", err)
			respondWithError(c, http.StatusBadRequest, "PAYMENT", "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		mode := checkout.ModeFromParam(strings.TrimSpace(c.Param("type")))
		address := selectAddress(ctx, db, id.UserID, strings.TrimSpace(req.AddressID))

		options, err := service.InitiatePayment(ctx, mode, id, address)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrNoAddressSelected):
				respondWithError(c, http.StatusBadRequest, "PAYMENT", "please select a delivery address to continue")
			case errors.Is(err, checkout.ErrGatewayNotReady):
				respondWithError(c, http.StatusServiceUnavailable, "PAYMENT", "payment gateway is not available, try again in a moment")
			case errors.Is(err, checkout.ErrNothingToCheckOut):
				respondWithError(c, http.StatusConflict, "PAYMENT", "nothing to check out")
			case errors.Is(err, checkout.ErrOrderCreationFailed):
				respondWithError(c, http.StatusBadGateway, "PAYMENT", "order creation failed")
			default:
				log.Println("[PAYMENT] [ERROR] payment initiation failed:", err)
				respondWithError(c, http.StatusInternalServerError, "PAYMENT", "payment error")
			}
			return
		}

		log.Println("[PAYMENT] [INFO] gateway order created:", options.OrderID)
		c.JSON(http.StatusOK, gin.H{"success": true, "options": options})
	}
}

// VerifyPayment forwards the widget's completion payload to the
// verification endpoint and reports the outcome.
func VerifyPayment(service *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "VERIFY")
		if !ok {
			return
		}

		var req models.VerificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[VERIFY] [ERROR] invalid verification body:", err)
			respondWithError(c, http.StatusBadRequest, "VERIFY", "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		result, err := service.VerifyPayment(ctx, id, req)
		if err != nil {
			log.Println("[VERIFY] [ERROR] verification call failed:", err)
			respondWithError(c, http.StatusBadGateway, "VERIFY", "verification error")
			return
		}
		if !result.Success {
			respondWithError(c, http.StatusPaymentRequired, "VERIFY", "payment verification failed")
			return
		}

		log.Println("[VERIFY] [INFO] payment verified for order:", req.GatewayID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
