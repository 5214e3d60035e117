package models

// Car type, fuel and transmission values used by the catalog filters.
const (
	TypeSUV       = "SUV"
	TypeSedan     = "Sedan"
	TypeHatchback = "Hatchback"

	FuelPetrol   = "Petrol"
	FuelDiesel   = "Diesel"
	FuelElectric = "Electric"

	TransmissionManual    = "Manual"
	TransmissionAutomatic = "Automatic"
)

// Car represents a rentable car in the catalog.
//
// PricePerDay is charged per booked hour throughout the storefront.
type Car struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Type         string  `json:"type"`
	FuelType     string  `json:"fuelType"`
	Transmission string  `json:"transmission"`
	Rating       float64 `json:"rating"`
	PricePerDay  float64 `json:"pricePerDay"`
}

// CarTypes lists the catalog car types in filter order.
var CarTypes = []string{TypeSUV, TypeSedan, TypeHatchback}

// FuelTypes lists the catalog fuel types in filter order.
var FuelTypes = []string{FuelPetrol, FuelDiesel, FuelElectric}

// Transmissions lists the catalog transmissions in filter order.
var Transmissions = []string{TransmissionManual, TransmissionAutomatic}
