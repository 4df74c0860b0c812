package model_test

import (
	"testing"

	"github.com/Diba-Dev/leafora-marketplace/model"
)

func TestRoleOrdering(t *testing.T) {
	if !model.RoleSuperAdmin.AtLeast(model.RoleAdmin) {
		t.Fatal("super_admin should outrank admin")
	}
	if !model.RoleAdmin.AtLeast(model.RoleUser) {
		t.Fatal("admin should outrank user")
	}
	if model.RoleUser.AtLeast(model.RoleAdmin) {
		t.Fatal("user should not reach admin")
	}
	if !model.RoleUser.AtLeast(model.RoleUser) {
		t.Fatal("AtLeast should be inclusive")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []model.Role{model.RoleUser, model.RoleAdmin, model.RoleSuperAdmin} {
		if !r.Valid() {
			t.Fatalf("%q should be valid", r)
		}
	}
	if model.Role("root").Valid() {
		t.Fatal("unknown role should be invalid")
	}
	if model.Role("").Valid() {
		t.Fatal("empty role should be invalid")
	}
}
