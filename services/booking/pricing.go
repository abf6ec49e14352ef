package booking

import (
	"context"
	"errors"

	"homeserve/models"
)

// AddonSelection is a requested add-on. A nil Quantity means one.
type AddonSelection struct {
	AddonID  string `json:"addonId" validate:"required"`
	Quantity *int   `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}

// PriceQuote is a computed booking total with its resolved add-on lines.
type PriceQuote struct {
	Total float64               `json:"total"`
	Lines []models.BookingAddon `json:"lines"`
}

// ComputeTotal prices basePrice plus every selected add-on at the add-on's
// current price. Lines keep the request order.
func (s *DefaultBookingService) ComputeTotal(ctx context.Context, basePrice float64, selections []AddonSelection) (*PriceQuote, error) {
	if basePrice < 0 {
		return nil, newError(ErrValidation, "base price must not be negative")
	}

	quote := &PriceQuote{Total: basePrice, Lines: make([]models.BookingAddon, 0, len(selections))}
	for _, sel := range selections {
		quantity := 1
		if sel.Quantity != nil {
			quantity = *sel.Quantity
		}
		if quantity < 1 {
			return nil, newError(ErrValidation, "quantity for addon %s must be at least 1", sel.AddonID)
		}

		addon, err := s.Catalog.GetAddonByID(ctx, sel.AddonID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, &BookingError{Kind: ErrInvalidAddon, Message: "addon " + sel.AddonID + " does not exist", Err: err}
			}
			return nil, storageError(err, "failed to load addon %s", sel.AddonID)
		}
		if !addon.Active {
			return nil, newError(ErrInvalidAddon, "addon %s is not available", sel.AddonID)
		}

		lineTotal := addon.Price * float64(quantity)
		quote.Lines = append(quote.Lines, models.BookingAddon{
			AddonID:  addon.ID,
			Name:     addon.Name,
			Quantity: quantity,
			Price:    lineTotal,
		})
		quote.Total += lineTotal
	}
	return quote, nil
}
