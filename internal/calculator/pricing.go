package calculator

import (
	"time"

	"github.com/shopspring/decimal"
)

// Villa nightly rates in USD, keyed by the weekday of the night's start.
const (
	villaWeekdayRate  int64 = 350
	villaFridayRate   int64 = 380
	villaSaturdayRate int64 = 500

	// maxVillaNights caps a single stay.
	maxVillaNights = 365
)

func villaNightlyRate(day time.Weekday) int64 {
	switch day {
	case time.Friday:
		return villaFridayRate
	case time.Saturday:
		return villaSaturdayRate
	default:
		return villaWeekdayRate
	}
}

// Route keys accepted in vehicle selections.
const (
	RouteCity            = "city"
	RouteOneway          = "oneway"
	RouteRoundtrip       = "roundtrip"
	RouteHochamOneway    = "hocham_oneway"
	RoutePhanthietOneway = "phanthiet_oneway"
	RouteCityPickupDrop  = "city_pickup_drop"
)

var routeLabels = map[string]string{
	RouteCity:            "City tour",
	RouteOneway:          "One way",
	RouteRoundtrip:       "Round trip",
	RouteHochamOneway:    "Ho Tram one way",
	RoutePhanthietOneway: "Phan Thiet one way",
	RouteCityPickupDrop:  "City pickup & drop-off",
}

// vehicleRates holds the base USD price per route class for one vehicle type.
type vehicleRates struct {
	City      int64
	Oneway    int64
	Roundtrip int64
}

var vehiclePrices = map[string]vehicleRates{
	"7_seater":  {City: 100, Oneway: 80, Roundtrip: 150},
	"9_limo":    {City: 130, Oneway: 110, Roundtrip: 200},
	"16_seater": {City: 140, Oneway: 120, Roundtrip: 220},
	"29_seater": {City: 200, Oneway: 170, Roundtrip: 310},
	"45_seater": {City: 260, Oneway: 220, Roundtrip: 400},
}

var (
	// Phan Thiet is 1.6x the one-way distance, sold at a 15% discount.
	phanthietDistance = decimal.RequireFromString("1.6")
	phanthietDiscount = decimal.RequireFromString("0.85")
	pickupDropFactor  = decimal.RequireFromString("1.5")
)

// phanthietOverrides are fixed Phan Thiet prices that bypass the multiplier.
var phanthietOverrides = map[string]int64{
	"7_seater": 130,
}

// vehiclePrice returns the price of one vehicle for one route.
// ok is false when the vehicle type or route is unknown.
func vehiclePrice(vehicleType, route string) (price int64, ok bool) {
	rates, ok := vehiclePrices[vehicleType]
	if !ok {
		return 0, false
	}

	switch route {
	case RouteCity:
		return rates.City, true
	case RouteOneway, RouteHochamOneway:
		return rates.Oneway, true
	case RouteRoundtrip:
		return rates.Roundtrip, true
	case RoutePhanthietOneway:
		if override, ok := phanthietOverrides[vehicleType]; ok {
			return override, true
		}
		return roundUSD(decimal.NewFromInt(rates.Oneway).Mul(phanthietDistance).Mul(phanthietDiscount)), true
	case RouteCityPickupDrop:
		return roundUSD(decimal.NewFromInt(rates.City).Mul(pickupDropFactor)), true
	default:
		return 0, false
	}
}

// roundUSD rounds half away from zero to a whole dollar.
func roundUSD(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// golfCourse describes green fees for one course.
type golfCourse struct {
	Name        string
	Weekday     int64
	Weekend     int64
	CaddyTipVND string
}

var golfCourses = map[string]golfCourse{
	"paradise": {Name: "Paradise Golf", Weekday: 90, Weekend: 110, CaddyTipVND: "400,000 VND"},
	"chouduc":  {Name: "Chou Duc Golf", Weekday: 80, Weekend: 120, CaddyTipVND: "500,000 VND"},
	"hocham":   {Name: "Ho Tram Golf", Weekday: 70, Weekend: 100, CaddyTipVND: "400,000 VND"},
}

func (c golfCourse) rate(day time.Weekday) int64 {
	if day == time.Saturday || day == time.Sunday {
		return c.Weekend
	}
	return c.Weekday
}

const (
	ecoGirlNightlyRate int64 = 220

	guideBaseDailyRate   int64 = 120
	guideBaseGroupSize   int64 = 4
	guideExtraPersonRate int64 = 20
)
