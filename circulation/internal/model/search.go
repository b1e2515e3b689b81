package model

import (
	"fmt"
	"strings"
)

type SortKey int

const (
	SortByTitle SortKey = iota
	SortByAuthor
	SortByYear
)

var sortKeyNames = map[string]SortKey{
	"title":  SortByTitle,
	"author": SortByAuthor,
	"year":   SortByYear,
}

// ParseSortKey maps a query value to a SortKey; empty means title.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByTitle, nil
	}
	k, ok := sortKeyNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

func (k SortKey) String() string {
	for name, key := range sortKeyNames {
		if key == k {
			return name
		}
	}
	return "unknown"
}

type SortOrder int

const (
	Asc SortOrder = iota
	Desc
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return 0, fmt.Errorf("unknown sort order %q", s)
	}
}

// ItemFilter is the predicate the catalog store scans with. Zero fields
// do not constrain.
type ItemFilter struct {
	Query         string
	Authors       []string
	ExcludeIDs    []int64
	AvailableOnly bool
	YearFrom      int
	YearTo        int
	Limit         int
}

type SearchQuery struct {
	Query         string `query:"query"`
	AvailableOnly bool   `query:"availableOnly"`
	YearFrom      int    `query:"yearFrom" validate:"gte=0"`
	YearTo        int    `query:"yearTo" validate:"gte=0"`
	SortBy        string `query:"sortBy" validate:"omitempty,oneof=title author year"`
	Order         string `query:"order" validate:"omitempty,oneof=asc desc"`
}

type LimitQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}
