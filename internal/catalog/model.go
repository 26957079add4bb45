package catalog

import "github.com/glowbook/salon-backend/internal/pkg/apperror"

var ErrNotFound = apperror.NotFound("service not found")

// Service is a bookable offering. Deactivation hides it from clients
// without breaking historical bookings that reference it.
type Service struct {
	ID               string
	Name             string
	ShortDescription string
	Description      string
	DurationMinutes  int
	Price            float64
	IsActive         bool
}
