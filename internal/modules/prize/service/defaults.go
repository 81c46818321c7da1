package service

import "desideri.com/pugliaclub/internal/entity"

const (
	MinPosition = 1
	MaxPosition = 3
)

var defaultPrizes = map[int]entity.Prize{
	1: {
		Position:    1,
		Title:       "Soggiorno in Masseria",
		Description: "Un weekend per due persone in una masseria tipica pugliese",
	},
	2: {
		Position:    2,
		Title:       "Cena Tipica Pugliese",
		Description: "Una cena per due con i piatti della tradizione pugliese",
	},
	3: {
		Position:    3,
		Title:       "Kit Prodotti Tipici",
		Description: "Una selezione di olio, taralli e prodotti locali",
	},
}

// DefaultPrize returns the built-in prize for a position in monthYear.
func DefaultPrize(monthYear string, position int) entity.Prize {
	p := defaultPrizes[position]
	p.MonthYear = monthYear
	return p
}
