package handlers

import "backend/internal/models"

// applyDefault enforces the single-default invariant: when the incoming
// address claims the default slot, every sibling loses it first. Index -1
// appends; an in-range index replaces.
func applyDefault(addresses []models.Address, incoming models.Address, index int) []models.Address {
	out := make([]models.Address, len(addresses))
	copy(out, addresses)

	if incoming.IsDefault {
		for i := range out {
			out[i].IsDefault = false
		}
	}

	if index >= 0 && index < len(out) {
		out[index] = incoming
		return out
	}
	return append(out, incoming)
}

// findAddressIndex locates an address by its sub-id; -1 when absent.
func findAddressIndex(addresses []models.Address, id string) int {
	for i, addr := range addresses {
		if addr.ID == id {
			return i
		}
	}
	return -1
}

func defaultCount(addresses []models.Address) int {
	count := 0
	for _, addr := range addresses {
		if addr.IsDefault {
			count++
		}
	}
	return count
}
