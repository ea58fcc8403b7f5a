package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Vehicle struct {
	ID         int64
	ClientID   int64
	Brand      string
	Model      string
	Year       int
	Plate      string
	OdometerKm int
}

// NewVehicle creates a vehicle for a client. The plate is normalized
// before it is stored anywhere.
func NewVehicle(clientID int64, brand, model string, year int, plate string, odometerKm int) *Vehicle {
	return &Vehicle{
		ClientID:   clientID,
		Brand:      strings.TrimSpace(brand),
		Model:      strings.TrimSpace(model),
		Year:       year,
		Plate:      NormalizePlate(plate),
		OdometerKm: odometerKm,
	}
}

// NormalizePlate uppercases the plate and strips everything outside A-Z0-9,
// so "ab-12 34" becomes "AB1234".
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate returns an error if the vehicle is invalid
func (v *Vehicle) Validate() error {
	if v.ClientID <= 0 {
		return errors.New("vehicle must belong to a client")
	}
	if strings.TrimSpace(v.Brand) == "" {
		return errors.New("vehicle brand is required")
	}
	if v.Plate == "" {
		return errors.New("vehicle plate is required")
	}
	if v.OdometerKm < 0 {
		return errors.New("odometer cannot be negative")
	}
	return nil
}

// Label returns a short display name like "Chevrolet Aveo (2015)"
func (v *Vehicle) Label() string {
	label := strings.TrimSpace(fmt.Sprintf("%s %s", v.Brand, v.Model))
	if v.Year > 0 {
		label = fmt.Sprintf("%s (%d)", label, v.Year)
	}
	return label
}
