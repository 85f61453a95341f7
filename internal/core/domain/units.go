package domain

import (
	"errors"
	"math"
)

type UnitSystem string

const (
	UnitMetric   UnitSystem = "metric"
	UnitImperial UnitSystem = "imperial"
)

type WaterUnit string

const (
	WaterML   WaterUnit = "ml"
	WaterCup  WaterUnit = "cup"
	WaterFlOz WaterUnit = "fl_oz"
)

const (
	mlPerFluidOunce = 29.5735295625
	mlPerCup        = 236.5882365
	lbsPerKg        = 2.2046226218
	cmPerInch       = 2.54
	inchesPerFoot   = 12
)

var (
	ErrInvalidUnitSystem = errors.New("unit system must be metric or imperial")
	ErrInvalidWaterUnit  = errors.New("water unit must be ml, cup or fl_oz")
	ErrInvalidUnit       = errors.New("invalid unit preference")
)

func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case UnitMetric, UnitImperial:
		return UnitSystem(s), nil
	case "":
		return UnitMetric, nil
	}
	return "", ErrInvalidUnitSystem
}

func ParseWaterUnit(s string) (WaterUnit, error) {
	switch WaterUnit(s) {
	case WaterML, WaterCup, WaterFlOz:
		return WaterUnit(s), nil
	}
	return "", ErrInvalidWaterUnit
}

// WaterUnitFor maps a unit system onto the water unit shown by default.
func WaterUnitFor(system UnitSystem) WaterUnit {
	if system == UnitImperial {
		return WaterFlOz
	}
	return WaterML
}

func (u WaterUnit) Label() string {
	switch u {
	case WaterCup:
		return "cups"
	case WaterFlOz:
		return "fl oz"
	default:
		return "ml"
	}
}

func mlPer(unit WaterUnit) float64 {
	switch unit {
	case WaterCup:
		return mlPerCup
	case WaterFlOz:
		return mlPerFluidOunce
	default:
		return 1
	}
}

// ServingsToWater converts canonical servings into a display unit. Conversions
// are linear so ServingsFromWater(ServingsToWater(x)) == x up to float error.
func ServingsToWater(servings float64, unit WaterUnit) float64 {
	return servings * GlassSizeML / mlPer(unit)
}

func ServingsFromWater(amount float64, unit WaterUnit) float64 {
	return amount * mlPer(unit) / GlassSizeML
}

func KilogramsToDisplay(kg float64, system UnitSystem) float64 {
	if system == UnitImperial {
		return kg * lbsPerKg
	}
	return kg
}

func KilogramsFromDisplay(v float64, system UnitSystem) float64 {
	if system == UnitImperial {
		return v / lbsPerKg
	}
	return v
}

func CentimetersToDisplay(cm float64, system UnitSystem) float64 {
	if system == UnitImperial {
		return cm / cmPerInch
	}
	return cm
}

func CentimetersFromDisplay(v float64, system UnitSystem) float64 {
	if system == UnitImperial {
		return v * cmPerInch
	}
	return v
}

func CentimetersToFeetInches(cm float64) (int, float64) {
	totalInches := cm / cmPerInch
	feet := int(totalInches / inchesPerFoot)
	return feet, totalInches - float64(feet*inchesPerFoot)
}

func FeetInchesToCentimeters(feet int, inches float64) float64 {
	return (float64(feet)*inchesPerFoot + inches) * cmPerInch
}

func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// BMI is computed in metric. ok is false when height or weight is not positive.
func BMI(weightKg, heightCm float64) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	m := heightCm / 100
	return RoundTo(weightKg/(m*m), 1), true
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

type UnitPreferences struct {
	Weight   string    `json:"weight"`
	Height   string    `json:"height"`
	Distance string    `json:"distance"`
	Energy   string    `json:"energy"`
	Water    WaterUnit `json:"water"`
}

func DefaultUnitPreferences() UnitPreferences {
	return UnitPreferences{
		Weight:   "kg",
		Height:   "cm",
		Distance: "km",
		Energy:   "kcal",
		Water:    WaterML,
	}
}

func (p UnitPreferences) Validate() error {
	if p.Weight != "kg" && p.Weight != "lbs" {
		return ErrInvalidUnit
	}
	if p.Height != "cm" && p.Height != "ft_in" {
		return ErrInvalidUnit
	}
	if p.Distance != "km" && p.Distance != "mi" {
		return ErrInvalidUnit
	}
	if p.Energy != "kcal" && p.Energy != "kj" {
		return ErrInvalidUnit
	}
	if _, err := ParseWaterUnit(string(p.Water)); err != nil {
		return err
	}
	return nil
}

// System is imperial when the weight unit is, which is how the profile screen
// decides which inputs to show.
func (p UnitPreferences) System() UnitSystem {
	if p.Weight == "lbs" {
		return UnitImperial
	}
	return UnitMetric
}
