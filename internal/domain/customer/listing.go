package customer

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName    SortKey = "name"
	SortByBalance SortKey = "balance"
	SortByEMI     SortKey = "emi"
	SortByRate    SortKey = "rate"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey maps a raw key to a SortKey, falling back to SortByName.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByBalance, SortByEMI, SortByRate:
		return k
	default:
		return SortByName
	}
}

// ParseDirection maps a raw direction to a Direction, falling back to Ascending.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(strings.TrimSpace(s))) == Descending {
		return Descending
	}
	return Ascending
}

// ToggleSort returns the sort state after the user selects key: re-selecting
// the active key flips the direction, a new key starts ascending.
func ToggleSort(active SortKey, dir Direction, selected SortKey) (SortKey, Direction) {
	if active == selected {
		if dir == Ascending {
			return active, Descending
		}
		return active, Ascending
	}
	return selected, Ascending
}

// Transform filters customers by a case-insensitive substring of name or
// account number and orders the result by key and dir. The sort is stable
// and the input slice is never modified.
func Transform(customers []Customer, query string, key SortKey, dir Direction) []Customer {
	q := strings.ToLower(query)

	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.AccountNumber), q) {
			out = append(out, c)
		}
	}

	compare := comparator(key)
	slices.SortStableFunc(out, func(a, b Customer) int {
		if dir == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func comparator(key SortKey) func(a, b Customer) int {
	switch key {
	case SortByBalance:
		return func(a, b Customer) int { return cmp.Compare(a.Outstanding(), b.Outstanding()) }
	case SortByEMI:
		return func(a, b Customer) int { return cmp.Compare(a.EMIDue(), b.EMIDue()) }
	case SortByRate:
		return func(a, b Customer) int { return cmp.Compare(a.Rate(), b.Rate()) }
	default:
		// Collators are not safe for concurrent use.
		col := collate.New(language.English)
		return func(a, b Customer) int {
			return col.CompareString(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
}
