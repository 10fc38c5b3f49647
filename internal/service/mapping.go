package service

import (
	"slices"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/repository"
)

func toDomainBook(r repository.Book, categoryIDs []int64) domain.Book {
	if categoryIDs == nil {
		categoryIDs = []int64{}
	}
	return domain.Book{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.Isbn,
		Price:       repository.Decimal(r.Price),
		Description: r.Description.String,
		CoverImage:  r.CoverImage.String,
		CategoryIDs: categoryIDs,
	}
}

func toDomainCategory(r repository.Category) domain.Category {
	return domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
	}
}

func toDomainOrder(r repository.Order, items []domain.OrderItem) domain.Order {
	if items == nil {
		items = []domain.OrderItem{}
	}
	return domain.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		Items:           items,
		OrderDate:       r.OrderDate.Time,
		Total:           repository.Decimal(r.Total),
		Status:          domain.OrderStatus(r.Status),
		ShippingAddress: r.ShippingAddress,
	}
}

func toDomainOrderItem(r repository.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ID:       r.ID,
		BookID:   r.BookID,
		Quantity: r.Quantity,
		Price:    repository.Decimal(r.Price),
	}
}

func sortedCopy(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
