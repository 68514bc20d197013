package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		strong   bool
	}{
		{"all classes present", "Cliente@123", true},
		{"too short", "Ab1@xyz", false},
		{"no uppercase", "cliente@123", false},
		{"no lowercase", "CLIENTE@123", false},
		{"no digit", "Cliente@abc", false},
		{"no symbol", "Cliente1234", false},
		{"empty", "", false},
		{"unicode letters count", "Coração@12", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.strong, IsStrongPassword(tc.password))
		})
	}
}
