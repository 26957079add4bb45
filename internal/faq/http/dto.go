package http

import "github.com/glowbook/salon-backend/internal/faq"

type CreateItemRequest struct {
	Question   string `json:"question" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	OrderIndex int    `json:"order_index"`
}

type UpdateItemRequest struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	OrderIndex *int    `json:"order_index"`
}

type ItemResponse struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	OrderIndex int    `json:"order_index"`
}

func NewItemResponse(item *faq.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		Question:   item.Question,
		Answer:     item.Answer,
		OrderIndex: item.OrderIndex,
	}
}

func NewItemListResponse(items []*faq.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}
