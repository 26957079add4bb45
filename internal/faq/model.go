package faq

import "github.com/glowbook/salon-backend/internal/pkg/apperror"

var ErrNotFound = apperror.NotFound("faq item not found")

// Item is one question/answer pair. Items list in order_index order so
// staff control the presentation.
type Item struct {
	ID         string
	Question   string
	Answer     string
	OrderIndex int
}
