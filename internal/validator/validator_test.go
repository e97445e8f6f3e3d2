package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidateHexColor(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("hex_color", validateHexColor); err != nil {
		t.Fatalf("failed to register validator: %v", err)
	}

	tests := []struct {
		color string
		valid bool
	}{
		{"#000000", true},
		{"#FFF", true},
		{"#a1b2c3", true},
		{"000000", false},
		{"#GGGGGG", false},
		{"#12345", false},
		{"", false},
	}

	for _, tt := range tests {
		err := v.Var(tt.color, "hex_color")
		if tt.valid && err != nil {
			t.Errorf("expected %q to be valid, got %v", tt.color, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("expected %q to be invalid", tt.color)
		}
	}
}

func TestValidateCategoryType(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("category_type", validateCategoryType); err != nil {
		t.Fatalf("failed to register validator: %v", err)
	}

	tests := []struct {
		value string
		valid bool
	}{
		{"INCOME", true},
		{"EXPENSE", true},
		{"income", false},
		{"TRANSFER", false},
		{"", false},
	}

	for _, tt := range tests {
		err := v.Var(tt.value, "category_type")
		if tt.valid && err != nil {
			t.Errorf("expected %q to be valid, got %v", tt.value, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("expected %q to be invalid", tt.value)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		t.Fatalf("failed to register validator: %v", err)
	}

	tests := []struct {
		password string
		valid    bool
	}{
		{"Password1!", true},
		{"aB3$xyzq", true},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigitsHere!", false},
		{"NoSpecials123", false},
	}

	for _, tt := range tests {
		err := v.Var(tt.password, "password")
		if tt.valid && err != nil {
			t.Errorf("expected %q to be valid, got %v", tt.password, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("expected %q to be invalid", tt.password)
		}
	}
}
