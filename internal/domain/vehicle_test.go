package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	cases := map[string]string{
		"ab-12 34":  "AB1234",
		"ABC1234":   "ABC1234",
		"abc.12-34": "ABC1234",
		"  gye 881 ": "GYE881",
		"":          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePlate(in), "plate %q", in)
	}
}

func TestVehicleValidate(t *testing.T) {
	v := NewVehicle(1, "Chevrolet", "Aveo", 2015, "abc-1234", 145000)
	assert.NoError(t, v.Validate())
	assert.Equal(t, "ABC1234", v.Plate)

	assert.Error(t, NewVehicle(0, "Chevrolet", "", 0, "ABC1234", 0).Validate())
	assert.Error(t, NewVehicle(1, "", "", 0, "ABC1234", 0).Validate())
	assert.Error(t, NewVehicle(1, "Chevrolet", "", 0, "---", 0).Validate())
}

func TestClientMatches(t *testing.T) {
	c := NewClient("María Pérez", "0912345678", "0990000000")
	assert.True(t, c.Matches("pérez"))
	assert.True(t, c.Matches("0912"))
	assert.False(t, c.Matches("lopez"))
}

func TestPartMatches(t *testing.T) {
	p := NewPart("FLT-001", "Filtro de aceite", 8.5, 12)
	assert.True(t, p.Matches("filtro"))
	assert.True(t, p.Matches("flt"))
	assert.False(t, p.Matches("bujía"))
}
