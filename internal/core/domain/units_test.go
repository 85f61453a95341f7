package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestWaterConversions(t *testing.T) {
	assert.InDelta(t, 250.0, domain.ServingsToWater(1, domain.WaterML), 1e-9)
	assert.InDelta(t, 8.4535, domain.ServingsToWater(1, domain.WaterFlOz), 1e-3)
	assert.InDelta(t, 1.0567, domain.ServingsToWater(1, domain.WaterCup), 1e-3)

	t.Run("Property: Round trip is consistent", func(t *testing.T) {
		units := []domain.WaterUnit{domain.WaterML, domain.WaterCup, domain.WaterFlOz}
		for _, u := range units {
			for servings := 0.0; servings <= 16; servings += 0.5 {
				back := domain.ServingsFromWater(domain.ServingsToWater(servings, u), u)
				assert.InDelta(t, servings, back, 1e-9, "unit %s", u)
			}
		}
	})

	assert.Equal(t, domain.WaterFlOz, domain.WaterUnitFor(domain.UnitImperial))
	assert.Equal(t, domain.WaterML, domain.WaterUnitFor(domain.UnitMetric))
	assert.Equal(t, "fl oz", domain.WaterFlOz.Label())
}

func TestBodyConversions(t *testing.T) {
	assert.InDelta(t, 165.35, domain.KilogramsToDisplay(75, domain.UnitImperial), 0.01)
	assert.Equal(t, 75.0, domain.KilogramsToDisplay(75, domain.UnitMetric))

	t.Run("Property: Round trip for both systems", func(t *testing.T) {
		for _, system := range []domain.UnitSystem{domain.UnitMetric, domain.UnitImperial} {
			for v := 1.0; v < 300; v += 13.7 {
				assert.InDelta(t, v, domain.KilogramsFromDisplay(domain.KilogramsToDisplay(v, system), system), 1e-9)
				assert.InDelta(t, v, domain.CentimetersFromDisplay(domain.CentimetersToDisplay(v, system), system), 1e-9)
			}
		}
	})

	feet, inches := domain.CentimetersToFeetInches(180)
	assert.Equal(t, 5, feet)
	assert.InDelta(t, 10.87, inches, 0.01)
	assert.InDelta(t, 180.0, domain.FeetInchesToCentimeters(feet, inches), 1e-9)
}

func TestBMI(t *testing.T) {
	bmi, ok := domain.BMI(70, 175)
	assert.True(t, ok)
	assert.Equal(t, 22.9, bmi)
	assert.Equal(t, "Normal weight", domain.BMICategory(bmi))

	_, ok = domain.BMI(70, 0)
	assert.False(t, ok)

	assert.Equal(t, "Underweight", domain.BMICategory(18.4))
	assert.Equal(t, "Overweight", domain.BMICategory(25))
	assert.Equal(t, "Obese", domain.BMICategory(30))
}

func TestUnitPreferences(t *testing.T) {
	p := domain.DefaultUnitPreferences()
	assert.NoError(t, p.Validate())
	assert.Equal(t, domain.UnitMetric, p.System())

	p.Weight = "lbs"
	assert.Equal(t, domain.UnitImperial, p.System())

	p.Water = "gallon"
	assert.ErrorIs(t, p.Validate(), domain.ErrInvalidWaterUnit)

	_, err := domain.ParseUnitSystem("furlongs")
	assert.ErrorIs(t, err, domain.ErrInvalidUnitSystem)

	s, err := domain.ParseUnitSystem("")
	assert.NoError(t, err)
	assert.Equal(t, domain.UnitMetric, s)
}
