package models

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The profile endpoints serialize these structs straight into responses, so
// the password hash must never survive JSON marshaling.
func TestPrincipalJSONOmitsPassword(t *testing.T) {
	id := primitive.NewObjectID()
	principals := []interface{}{
		User{ID: id, FullName: "Jordan Reed", Email: "jordan@gmail.com", Password: "hashed", Role: "user"},
		Admin{ID: id, FullName: "Site Admin", Email: "admin@company.com", Password: "hashed", Role: "admin"},
		ClothPartner{ID: id, FullName: "Partner Co", Email: "partner@company.com", Password: "hashed", Role: "clothPartner"},
	}

	for _, p := range principals {
		out, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %T: %v", p, err)
		}
		if strings.Contains(string(out), "password") || strings.Contains(string(out), "hashed") {
			t.Errorf("%T JSON leaks password: %s", p, out)
		}
	}
}
