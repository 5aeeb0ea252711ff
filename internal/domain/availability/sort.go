package availability

import (
	"sort"
	"strconv"
	"strings"

	"hotelpremier/internal/domain/room"
)

// SortRooms orders rooms for stable grid display: alphabetic non-digit
// prefix first, then the numeric suffix as an integer, falling back to
// plain lexical comparison when either suffix does not parse. The order
// is total and deterministic; it carries no availability semantics.
func SortRooms(rooms []*room.Room) []*room.Room {
	sorted := append([]*room.Room(nil), rooms...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessRoomName(sorted[i].Name, sorted[j].Name)
	})
	return sorted
}

func lessRoomName(a, b string) bool {
	prefixA, prefixB := stripDigits(a), stripDigits(b)
	if prefixA != prefixB {
		return prefixA < prefixB
	}
	numA, okA := numericSuffix(a)
	numB, okB := numericSuffix(b)
	if okA && okB {
		if numA != numB {
			return numA < numB
		}
		return a < b
	}
	return a < b
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

func numericSuffix(s string) (int, bool) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
