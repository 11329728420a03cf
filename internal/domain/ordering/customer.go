package ordering

import (
	"fmt"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// Customer holds the checkout contact and shipping details embedded into an
// order. All fields are required.
type Customer struct {
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Address   string `gorm:"type:varchar(500);not null" json:"address"`
	City      string `gorm:"type:varchar(100);not null" json:"city"`
	State     string `gorm:"type:varchar(100);not null" json:"state"`
	Zip       string `gorm:"type:varchar(20);not null" json:"zip"`
	Country   string `gorm:"type:varchar(100);not null" json:"country"`
	Phone     string `gorm:"type:varchar(50);not null" json:"phone"`
}

// NewCustomer validates and constructs checkout customer details.
// Every missing field is reported by name.
func NewCustomer(firstName, lastName, email, address, city, state, zip, country, phone string) (Customer, error) {
	c := Customer{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Address:   strings.TrimSpace(address),
		City:      strings.TrimSpace(city),
		State:     strings.TrimSpace(state),
		Zip:       strings.TrimSpace(zip),
		Country:   strings.TrimSpace(country),
		Phone:     strings.TrimSpace(phone),
	}

	required := []struct {
		name  string
		value string
	}{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"email", c.Email},
		{"address", c.Address},
		{"city", c.City},
		{"state", c.State},
		{"zip", c.Zip},
		{"country", c.Country},
		{"phone", c.Phone},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return Customer{}, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
	}

	if !strings.Contains(c.Email, "@") {
		return Customer{}, shared.NewDomainError("INVALID_INPUT", "Invalid email address")
	}

	return c, nil
}

// FullName returns the customer's display name
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
