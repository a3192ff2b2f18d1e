package validation

import (
	"testing"

	"fitcoin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+tag@sub.domain.io"}
	for _, email := range valid {
		v := New()
		v.Email("email", email)
		assert.True(t, v.Valid(), "expected %q to validate", email)
	}

	invalid := []string{"", "plainaddress", "@missing-local.com", "user@", "user@domain"}
	for _, email := range invalid {
		v := New()
		v.Email("email", email)
		assert.False(t, v.Valid(), "expected %q to fail", email)
	}
}

func TestPassword(t *testing.T) {
	v := New()
	v.Password("password", "Str0ng!pass")
	assert.True(t, v.Valid())

	weak := map[string]string{
		"short":      "S1!a",
		"no upper":   "str0ng!pass",
		"no number":  "Strong!pass",
		"no special": "Str0ngpass1",
	}
	for name, password := range weak {
		t.Run(name, func(t *testing.T) {
			v := New()
			v.Password("password", password)
			assert.False(t, v.Valid())
			assert.Contains(t, v.Errors, "password")
		})
	}
}

func TestPositiveAmount(t *testing.T) {
	for amount, ok := range map[int64]bool{50: true, 1: true, 0: false, -10: false} {
		v := New()
		v.PositiveAmount("amount", amount)
		assert.Equal(t, ok, v.Valid(), "amount %d", amount)
	}
}

func TestUserRegistration(t *testing.T) {
	v := New()
	v.UserRegistration(&models.CreateUserInput{
		Email:    "runner@example.com",
		Password: "Str0ng!pass",
		Name:     "Runner",
	})
	assert.True(t, v.Valid())

	v = New()
	v.UserRegistration(&models.CreateUserInput{})
	assert.False(t, v.Valid())
	assert.Contains(t, v.Errors, "email")
	assert.Contains(t, v.Errors, "password")
	assert.Contains(t, v.Errors, "name")
}
