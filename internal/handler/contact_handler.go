package handler

import (
	"net/http"

	"catalog-service/internal/forms"
	"catalog-service/internal/model"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BuyerStore persists contact-form messages
type BuyerStore interface {
	CreateBuyer(buyer *model.Buyer) error
}

type ContactHandler struct {
	store BuyerStore
}

func NewContactHandler(store BuyerStore) *ContactHandler {
	return &ContactHandler{store: store}
}

// Form renders the contact page
func (h *ContactHandler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", echo.Map{
		"Errors": forms.Errors{},
	})
}

// Submit validates and stores a contact message, then redirects home.
// Buyer records are write-only: no read-back, no deduplication.
func (h *ContactHandler) Submit(c echo.Context) error {
	log := logger.FromContext(c)

	values, err := c.FormParams()
	if err != nil {
		log.Error("Invalid form data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	form := forms.BindContactForm(values)
	errs := forms.Errors{}
	form.Validate(errs)

	if errs.Any() {
		return c.Render(http.StatusOK, "contact.html", echo.Map{
			"Form":   form,
			"Errors": errs,
		})
	}

	buyer := form.Buyer()
	if err := h.store.CreateBuyer(buyer); err != nil {
		log.Error("Failed to store contact message", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to send your message",
		})
	}

	prometheus.ContactMessagesCounter.Inc()
	log.Info("Contact message stored",
		zap.Uint("buyer_id", buyer.ID),
		zap.String("name", buyer.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}
