package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateRecipe(t *testing.T) {
	tests := []struct {
		name    string
		recipe  *Recipe
		wantErr error
	}{
		{
			name:    "valid recipe",
			recipe:  &Recipe{ID: "r1", Name: "Soup", Category: CategorySoup},
			wantErr: nil,
		},
		{
			name:    "valid recipe with dangling refs",
			recipe:  &Recipe{ID: "r1", Name: "Soup", Category: CategoryOther, Ingredients: []Ref{{ID: "missing"}}},
			wantErr: nil,
		},
		{
			name:    "nil recipe",
			recipe:  nil,
			wantErr: ErrInvalidRecipe,
		},
		{
			name:    "empty id",
			recipe:  &Recipe{Name: "Soup", Category: CategorySoup},
			wantErr: ErrEmptyID,
		},
		{
			name:    "empty name",
			recipe:  &Recipe{ID: "r1", Category: CategorySoup},
			wantErr: ErrEmptyName,
		},
		{
			name:    "unknown category",
			recipe:  &Recipe{ID: "r1", Name: "Soup", Category: "starter"},
			wantErr: ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecipe(tt.recipe)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecipe() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecipe() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRecipe) {
				t.Errorf("ValidateRecipe() error = %v, should wrap ErrInvalidRecipe", err)
			}
		})
	}
}

func TestValidateMenuDate(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"2025-03-10", true},
		{"2024-02-29", true},
		{"2025-02-30", false},
		{"10.03.2025", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateMenuDate(tt.key)
			if tt.valid && err != nil {
				t.Errorf("ValidateMenuDate(%q) error = %v", tt.key, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidMenuDate) {
				t.Errorf("ValidateMenuDate(%q) error = %v, want ErrInvalidMenuDate", tt.key, err)
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	for _, slot := range Slots {
		if err := ValidateSlot(slot); err != nil {
			t.Errorf("ValidateSlot(%q) error = %v", slot, err)
		}
	}
	if err := ValidateSlot("slot5"); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("ValidateSlot(slot5) error = %v, want ErrInvalidSlot", err)
	}
}

func TestMenuKey(t *testing.T) {
	got := MenuKey(time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC))
	if got != "2025-03-07" {
		t.Errorf("MenuKey() = %q, want 2025-03-07", got)
	}
}
