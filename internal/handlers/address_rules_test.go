package handlers

import (
	"testing"

	"backend/internal/models"
)

func addressList() []models.Address {
	return []models.Address{
		{ID: "a", FullName: "A", IsDefault: true},
		{ID: "b", FullName: "B"},
		{ID: "c", FullName: "C"},
	}
}

func TestApplyDefaultMovesFlag(t *testing.T) {
	addresses := addressList()
	incoming := addresses[1]
	incoming.IsDefault = true

	updated := applyDefault(addresses, incoming, 1)

	if defaultCount(updated) != 1 {
		t.Fatalf("expected exactly one default, got %d", defaultCount(updated))
	}
	if !updated[1].IsDefault {
		t.Fatal("expected address b to be the default")
	}
	if updated[0].IsDefault {
		t.Fatal("expected address a to lose the default flag")
	}
}

func TestApplyDefaultAppendsNewDefault(t *testing.T) {
	updated := applyDefault(addressList(), models.Address{ID: "d", IsDefault: true}, -1)

	if len(updated) != 4 {
		t.Fatalf("expected 4 addresses, got %d", len(updated))
	}
	if defaultCount(updated) != 1 || !updated[3].IsDefault {
		t.Fatalf("expected the appended address to be the only default, got %+v", updated)
	}
}

func TestApplyDefaultNonDefaultUpdateKeepsExistingDefault(t *testing.T) {
	addresses := addressList()
	incoming := addresses[2]
	incoming.FullName = "C2"

	updated := applyDefault(addresses, incoming, 2)

	if !updated[0].IsDefault {
		t.Fatal("expected address a to keep the default flag")
	}
	if updated[2].FullName != "C2" {
		t.Fatalf("expected update applied, got %+v", updated[2])
	}
}

func TestApplyDefaultDoesNotMutateInput(t *testing.T) {
	addresses := addressList()
	incoming := addresses[1]
	incoming.IsDefault = true

	_ = applyDefault(addresses, incoming, 1)

	if !addresses[0].IsDefault {
		t.Fatal("input slice must not be mutated")
	}
}

func TestFindAddressIndex(t *testing.T) {
	addresses := addressList()
	if idx := findAddressIndex(addresses, "b"); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := findAddressIndex(addresses, "missing"); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}
