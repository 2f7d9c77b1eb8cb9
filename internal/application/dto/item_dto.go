package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Unit        string          `json:"unit,omitempty"` // default "pcs"
	Price       decimal.Decimal `json:"price,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. Solo campos descriptivos;
// la cantidad en mano no es editable por esta vía (solo el ledger la muta).
type UpdateItemRequest struct {
	Code        *string          `json:"code,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ItemResponse representación de un ítem en la API.
type ItemResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// NewItemResponse mapea la entidad al DTO de salida.
func NewItemResponse(i *entity.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:            i.ID,
		Code:          i.Code,
		Name:          i.Name,
		Description:   i.Description,
		Category:      i.Category,
		Unit:          i.Unit,
		Price:         i.Price,
		StockQuantity: i.StockQuantity,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
