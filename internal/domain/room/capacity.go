package room

// defaultCapacity applies to categories the table does not know about.
const defaultCapacity = 2

// MaxOccupants returns the maximum occupant count for a room category.
// The table is static: no registration, no failure path.
func MaxOccupants(category Category) int {
	switch category {
	case CategorySingleStandard:
		return 1
	case CategoryDoubleStandard:
		return 2
	case CategoryDoubleSuperior:
		return 2
	case CategorySuperiorFamilyPlan:
		return 5
	case CategoryDoubleSuite:
		return 2
	default:
		return defaultCapacity
	}
}
