package calculator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in quote requests.
const DateLayout = "2006-01-02"

// descriptionSeparator joins per-selection description lines.
const descriptionSeparator = " | "

// QuoteRequest describes everything a customer asked to be priced.
// Each category is optional; a nil category contributes nothing.
type QuoteRequest struct {
	Villa   *VillaRequest   `json:"villa,omitempty"`
	Vehicle *VehicleRequest `json:"vehicle,omitempty"`
	Golf    *GolfRequest    `json:"golf,omitempty"`
	EcoGirl *EcoGirlRequest `json:"ecoGirl,omitempty"`
	Guide   *GuideRequest   `json:"guide,omitempty"`
}

// VillaRequest is a villa stay; nights run from CheckInDate up to but
// excluding CheckOutDate.
type VillaRequest struct {
	Enabled      bool   `json:"enabled"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// VehicleRequest lists one vehicle booking per selection.
type VehicleRequest struct {
	Enabled    bool               `json:"enabled"`
	Selections []VehicleSelection `json:"selections"`
}

// VehicleSelection is one vehicle on one day for one route.
type VehicleSelection struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Route string `json:"route"`
}

// GolfRequest lists one round per selection.
type GolfRequest struct {
	Enabled    bool            `json:"enabled"`
	Selections []GolfSelection `json:"selections"`
}

// GolfSelection is one round at one course for a number of players.
type GolfSelection struct {
	Date    string `json:"date"`
	Course  string `json:"course"`
	Players Count  `json:"players"`
}

// EcoGirlRequest is the escort option.
type EcoGirlRequest struct {
	Enabled bool  `json:"enabled"`
	Count   Count `json:"count"`
	Nights  Count `json:"nights"`
}

// GuideRequest is the tour guide option.
type GuideRequest struct {
	Enabled   bool  `json:"enabled"`
	Days      Count `json:"days"`
	GroupSize Count `json:"groupSize"`
}

// NightRate is the price of a single villa night.
type NightRate struct {
	Day   string `json:"day"`
	Price int64  `json:"price"`
}

// VillaBreakdown is the villa portion of a quote.
type VillaBreakdown struct {
	Price   int64       `json:"price"`
	Details []NightRate `json:"details"`
}

// LineBreakdown is a priced category with a human-readable description.
type LineBreakdown struct {
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// QuoteBreakdown is the full priced result of a QuoteRequest.
// Total always equals the sum of the five category prices.
type QuoteBreakdown struct {
	Villa   VillaBreakdown `json:"villa"`
	Vehicle LineBreakdown  `json:"vehicle"`
	Golf    LineBreakdown  `json:"golf"`
	EcoGirl LineBreakdown  `json:"ecoGirl"`
	Guide   LineBreakdown  `json:"guide"`
	Total   int64          `json:"total"`
}

// CalculateQuote prices a request. It never fails: a malformed category is
// logged and contributes zero while the other categories are still priced.
func CalculateQuote(req QuoteRequest) QuoteBreakdown {
	b := QuoteBreakdown{
		Villa: VillaBreakdown{Details: []NightRate{}},
	}

	if req.Villa != nil && req.Villa.Enabled {
		guard("villa", func() { b.Villa = priceVilla(*req.Villa) })
	}
	if req.Vehicle != nil && req.Vehicle.Enabled {
		guard("vehicle", func() { b.Vehicle = priceVehicles(req.Vehicle.Selections) })
	}
	if req.Golf != nil && req.Golf.Enabled {
		guard("golf", func() { b.Golf = priceGolf(req.Golf.Selections) })
	}
	if req.EcoGirl != nil && req.EcoGirl.Enabled {
		guard("ecoGirl", func() { b.EcoGirl = priceEcoGirl(*req.EcoGirl) })
	}
	if req.Guide != nil && req.Guide.Enabled {
		guard("guide", func() { b.Guide = priceGuide(*req.Guide) })
	}

	b.Total = b.Villa.Price + b.Vehicle.Price + b.Golf.Price + b.EcoGirl.Price + b.Guide.Price
	return b
}

// guard runs one category calculation and swallows a panic so that a single
// category cannot fail the whole quote. The category keeps its zero value.
func guard(category string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Quote category calculation panicked", "category", category, "panic", r)
		}
	}()
	fn()
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// priceVilla walks each night in [check-in, check-out) and prices it by weekday.
func priceVilla(req VillaRequest) VillaBreakdown {
	out := VillaBreakdown{Details: []NightRate{}}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		slog.Warn("Villa check-in date invalid, skipping villa", "check_in", req.CheckInDate, "error", err)
		return out
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		slog.Warn("Villa check-out date invalid, skipping villa", "check_out", req.CheckOutDate, "error", err)
		return out
	}
	if !checkIn.Before(checkOut) {
		return out
	}
	if checkOut.Sub(checkIn) > maxVillaNights*24*time.Hour {
		slog.Warn("Villa stay too long, skipping villa",
			"check_in", req.CheckInDate,
			"check_out", req.CheckOutDate,
			"max_nights", maxVillaNights,
		)
		return out
	}

	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		rate := villaNightlyRate(night.Weekday())
		out.Price += rate
		out.Details = append(out.Details, NightRate{
			Day:   night.Format("2006-01-02 (Mon)"),
			Price: rate,
		})
	}
	return out
}

func priceVehicles(selections []VehicleSelection) LineBreakdown {
	var out LineBreakdown
	var lines []string

	for _, sel := range selections {
		date := strings.TrimSpace(sel.Date)
		if date == "" || sel.Type == "" || sel.Route == "" {
			continue
		}
		price, ok := vehiclePrice(sel.Type, sel.Route)
		if !ok {
			slog.Debug("Skipping vehicle selection with unknown type or route",
				"type", sel.Type,
				"route", sel.Route,
			)
			continue
		}
		out.Price += price
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", date, sel.Type, routeLabels[sel.Route]))
	}

	out.Description = strings.Join(lines, descriptionSeparator)
	return out
}

func priceGolf(selections []GolfSelection) LineBreakdown {
	var out LineBreakdown
	var lines []string

	for _, sel := range selections {
		if sel.Course == "" {
			continue
		}
		day, err := parseDate(sel.Date)
		if err != nil {
			slog.Warn("Golf date invalid, skipping round", "date", sel.Date, "error", err)
			continue
		}
		course, ok := golfCourses[sel.Course]
		if !ok {
			slog.Debug("Skipping golf selection with unknown course", "course", sel.Course)
			continue
		}

		players := sel.Players.Int()
		if players < 1 {
			players = 1
		}
		rate := course.rate(day.Weekday())
		subtotal := rate * players
		out.Price += subtotal
		lines = append(lines, fmt.Sprintf("%s %s: $%d x %d =$%d (caddy tip %s/person)",
			day.Format(DateLayout), course.Name, rate, players, subtotal, course.CaddyTipVND))
	}

	out.Description = strings.Join(lines, descriptionSeparator)
	return out
}

func priceEcoGirl(req EcoGirlRequest) LineBreakdown {
	count, nights := req.Count.Int(), req.Nights.Int()
	return LineBreakdown{
		Price:       ecoGirlNightlyRate * count * nights,
		Description: fmt.Sprintf("$%d x %d person(s) x %d night(s)", ecoGirlNightlyRate, count, nights),
	}
}

// priceGuide charges a daily rate that grows with every person above the
// base group size; the surcharge is per day, not per extra day.
func priceGuide(req GuideRequest) LineBreakdown {
	days, groupSize := req.Days.Int(), req.GroupSize.Int()

	daily := guideBaseDailyRate
	if groupSize > guideBaseGroupSize {
		daily += (groupSize - guideBaseGroupSize) * guideExtraPersonRate
	}
	return LineBreakdown{
		Price:       daily * days,
		Description: fmt.Sprintf("$%d/day x %d day(s) (group of %d)", daily, days, groupSize),
	}
}
