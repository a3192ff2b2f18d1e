package validation

import "fitcoin/internal/models"

// UserRegistration validates a registration payload.
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.Required("name", input.Name)
	v.MaxLength("name", input.Name, 100)
	v.Required("email", input.Email)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	v.Password("password", input.Password)
	if input.Role != "" && input.Role != "user" && input.Role != "admin" {
		v.AddError("role", "must be either 'user' or 'admin'")
	}
}
