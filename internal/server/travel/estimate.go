// Package travel estimates trip durations between catalog destinations.
package travel

import (
	"fmt"
	"math"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// AlreadyThere is the travel time reported for a zero distance.
const AlreadyThere = "You're already there!"

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerYear   = 31536000
)

type Estimate struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Vehicle         string  `json:"vehicle"`
	Multiplier      float64 `json:"multiplier"`
	DistanceKm      float64 `json:"distanceKm"`
	SpeedKmS        float64 `json:"effectiveSpeedKmPerSecond"`
	Seconds         float64 `json:"seconds"`
	TravelTime      string  `json:"travelTime"`
	DistanceLabel   string  `json:"distanceLabel"`
	SpeedLabel      string  `json:"speedLabel"`
	MultiplierLabel string  `json:"multiplierLabel"`
}

// Calculate estimates the trip from one destination to another. The
// effective speed is vehicle.Speed * multiplier * vehicle.Multiplier in
// km/s; multiplier must be positive.
func Calculate(from, to models.Destination, vehicle models.Vehicle, multiplier float64) (*Estimate, error) {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return nil, fmt.Errorf("%w: multiplier must be positive", common.ErrorValidation)
	}

	speed := vehicle.Speed * multiplier * vehicle.Multiplier
	distance := math.Abs(to.Distance - from.Distance)

	p := message.NewPrinter(language.English)
	e := &Estimate{
		From:            from.ID,
		To:              to.ID,
		Vehicle:         vehicle.ID,
		Multiplier:      multiplier,
		DistanceKm:      distance,
		SpeedKmS:        speed,
		DistanceLabel:   p.Sprintf("%v km", number.Decimal(distance, number.MaxFractionDigits(0))),
		SpeedLabel:      p.Sprintf("%v km/s", number.Decimal(vehicle.Speed, number.MaxFractionDigits(2))),
		MultiplierLabel: p.Sprintf("%vx", number.Decimal(multiplier*vehicle.Multiplier, number.MaxFractionDigits(2))),
	}

	if distance == 0 {
		e.TravelTime = AlreadyThere
		return e, nil
	}
	if speed <= 0 {
		return nil, fmt.Errorf("%w: vehicle %q has no positive speed", common.ErrorValidation, vehicle.ID)
	}

	e.Seconds = distance / speed
	e.TravelTime = Humanize(e.Seconds)
	return e, nil
}

// Humanize renders a duration in seconds using the largest fitting unit:
// seconds, minutes, hours, days, then years, switching to thousand and
// million years for very long trips.
func Humanize(seconds float64) string {
	switch {
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%d seconds", roundInt(seconds))
	case seconds < secondsPerHour:
		return fmt.Sprintf("%d minutes", roundInt(seconds/secondsPerMinute))
	case seconds < secondsPerDay:
		return fmt.Sprintf("%d hours", roundInt(seconds/secondsPerHour))
	case seconds < secondsPerYear:
		return fmt.Sprintf("%d days", roundInt(seconds/secondsPerDay))
	}

	years := seconds / secondsPerYear
	switch {
	case years > 1e6:
		return fmt.Sprintf("%.1f million years", years/1e6)
	case years > 1e3:
		return fmt.Sprintf("%.1f thousand years", years/1e3)
	default:
		return fmt.Sprintf("%d years", roundInt(years))
	}
}

func roundInt(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
