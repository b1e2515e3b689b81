package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

type itemLess func(a, b model.Item) bool

var comparators = map[model.SortKey]itemLess{
	model.SortByTitle: func(a, b model.Item) bool {
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	},
	model.SortByAuthor: func(a, b model.Item) bool {
		return strings.ToLower(a.Author) < strings.ToLower(b.Author)
	},
	model.SortByYear: func(a, b model.Item) bool {
		return a.Year < b.Year
	},
}

// Search filters the catalog and sorts the result. Ties keep id order.
func (s *Service) Search(ctx context.Context, filter model.ItemFilter, key model.SortKey, order model.SortOrder) ([]model.Item, error) {
	items, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	less, ok := comparators[key]
	if !ok {
		less = comparators[model.SortByTitle]
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order == model.Desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
	return items, nil
}
