package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// DefaultUnit unidad de medida por defecto cuando el alta no la indica.
const DefaultUnit = "pcs"

// ItemUseCase casos de uso CRUD para ítems. StockQuantity no es editable por esta
// vía: solo el commit del ledger la muta.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem nuevo. StockQuantity inicia en 0.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateCode
	}
	if in.Unit == "" {
		in.Unit = DefaultUnit
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Unit:          in.Unit,
		Price:         in.Price,
		StockQuantity: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewItemResponse(item), nil
}

// Update actualiza campos descriptivos de un ítem. Un cambio de código a uno ya
// usado por otro ítem falla con ErrDuplicateCode. Nunca toca StockQuantity.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil && *in.Code != item.Code {
		if *in.Code == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != item.ID {
			return nil, domain.ErrDuplicateCode
		}
		item.Code = *in.Code
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil && *in.Unit != "" {
		item.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

// List lista ítems con búsqueda por nombre/código y filtro por categoría.
func (uc *ItemUseCase) List(search, category string, limit, offset int) (*dto.ItemListResponse, error) {
	if limit <= 0 {
		limit = 15
	}
	list, err := uc.repo.List(search, category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *dto.NewItemResponse(i))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Categories devuelve las categorías no vacías en uso (para filtros de UI).
func (uc *ItemUseCase) Categories() ([]string, error) {
	return uc.repo.Categories()
}
