package booking

import (
	"strings"
	"time"

	"biteaffair/internal/guests"
	"biteaffair/internal/menu"
)

// Step is a 0-indexed wizard position.
type Step int

const (
	StepLocation Step = iota
	StepMenuSelection
	StepPrice
	StepPayment
)

var stepTitles = [...]string{"Choose Location", "Select Menu", "Get Price", "Payment"}

func (s Step) Title() string {
	if s < StepLocation || s > StepPayment {
		return ""
	}
	return stepTitles[s]
}

// Occasion keys offered in step 0.
var Occasions = []Option{
	{Key: "birthday", Label: "Birthday"},
	{Key: "house_party", Label: "House Party"},
	{Key: "pooja", Label: "Pooja"},
	{Key: "pre_wedding", Label: "Pre Wedding"},
	{Key: "office_party", Label: "Office Party"},
	{Key: "others", Label: "Others"},
}

// Locations are labels only; nothing downstream depends on them.
var Locations = []string{"Delhi", "Gurgaon", "Noida", "Faridabad", "Ghaziabad"}

// MealTypes offered in step 1, keyed by the seed shape they produce.
var MealTypes = []Option{
	{Key: MealVeg, Label: "Veg"},
	{Key: MealVegNonVeg, Label: "Veg + NonVeg"},
	{Key: MealJain, Label: "Jain"},
}

const (
	MealVeg       = "veg"
	MealVegNonVeg = "veg_nonveg"
	MealJain      = "jain"
)

type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Data is what the wizard has collected so far.
type Data struct {
	Location  string       `json:"location,omitempty"`
	Occasion  string       `json:"occasion,omitempty"`
	Date      string       `json:"date,omitempty"`
	StartTime string       `json:"start_time,omitempty"`
	EndTime   string       `json:"end_time,omitempty"`
	TimeRange string       `json:"time_range,omitempty"`
	MealType  string       `json:"meal_type,omitempty"`
	Guests    guests.Count `json:"guests"`
}

// Config is the completed booking. It is stored under biteAffairs_bookingConfig
// and stays read-only until an explicit re-booking.
type Config struct {
	Location    string       `json:"location"`
	Occasion    string       `json:"occasion"`
	EventDate   string       `json:"eventDate"`
	EventTime   string       `json:"eventTime"`
	Menu        menu.Mode    `json:"menu"`
	MealType    string       `json:"mealType"`
	Guests      guests.Count `json:"guestCounts"`
	CompletedAt time.Time    `json:"completedAt"`
}

// NormalizeMeal maps a meal-type label onto a menu mode key:
// Jain -> jain, Veg -> veg, Veg + NonVeg -> customized, anything else is
// lower-cased as is.
func NormalizeMeal(label string) menu.Mode {
	trimmed := strings.TrimSpace(label)
	switch strings.ToLower(trimmed) {
	case "jain":
		return menu.ModeJain
	case "veg":
		return menu.ModeVegPackage
	case "veg + nonveg", "veg+nonveg", MealVegNonVeg:
		return menu.ModeCustomized
	}
	return menu.Mode(strings.ToLower(trimmed))
}

// mealKey maps a label onto MealVeg, MealVegNonVeg or MealJain.
func mealKey(label string) (string, bool) {
	switch NormalizeMeal(label) {
	case menu.ModeJain:
		return MealJain, true
	case menu.ModeVegPackage:
		return MealVeg, true
	case menu.ModeCustomized:
		return MealVegNonVeg, true
	}
	return "", false
}

// SeedFor keeps only the buckets the meal type uses.
func SeedFor(meal string, c guests.Count) guests.Count {
	switch meal {
	case MealVeg:
		return guests.Count{Veg: c.Veg}
	case MealVegNonVeg:
		return guests.Count{Veg: c.Veg, NonVeg: c.NonVeg}
	case MealJain:
		return guests.Count{Jain: c.Jain}
	}
	return c
}
