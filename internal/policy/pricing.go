package policy

import (
	"math"
	"time"

	"smartbooking/internal/pkg/timeslot"
)

type PricingKey string

const (
	PricingDefault     PricingKey = "DEFAULT"
	PricingPeakHours   PricingKey = "PEAK_HOURS"
	PricingWeekend     PricingKey = "WEEKEND"
	PricingPeakWeekend PricingKey = "PEAK_WEEKEND"
)

const (
	peakMultiplier    = 1.2
	weekendMultiplier = 1.15
	peakStartHour     = 18
	peakEndHour       = 22
)

// ParsePricingKey maps a resource's pricing policy key to the closed enum.
// Unknown keys fall back to DEFAULT.
func ParsePricingKey(key string) PricingKey {
	switch PricingKey(key) {
	case PricingPeakHours, PricingWeekend, PricingPeakWeekend:
		return PricingKey(key)
	default:
		return PricingDefault
	}
}

// Price computes basePricePerHour x fractional hours x policy multiplier,
// rounded to two decimals. The multiplier applies uniformly to the whole
// booking: peak when any part of [start,end) falls inside 18:00-22:00 on a
// day the booking spans, weekend when the start date is Saturday or Sunday.
func Price(basePricePerHour float64, start, end time.Time, key PricingKey) float64 {
	hours := end.Sub(start).Hours()
	price := basePricePerHour * hours * Multiplier(start, end, key)
	return round2(price)
}

func Multiplier(start, end time.Time, key PricingKey) float64 {
	m := 1.0
	switch key {
	case PricingPeakHours:
		if touchesPeakWindow(start, end) {
			m = peakMultiplier
		}
	case PricingWeekend:
		if isWeekend(start) {
			m = weekendMultiplier
		}
	case PricingPeakWeekend:
		if touchesPeakWindow(start, end) {
			m *= peakMultiplier
		}
		if isWeekend(start) {
			m *= weekendMultiplier
		}
	}
	return m
}

func isWeekend(start time.Time) bool {
	d := start.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// touchesPeakWindow checks [start,end) against the 18:00-22:00 window of
// every calendar day the booking spans, using the same half-open overlap
// predicate as the conflict detector.
func touchesPeakWindow(start, end time.Time) bool {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for !day.After(end) {
		peakStart := day.Add(peakStartHour * time.Hour)
		peakEnd := day.Add(peakEndHour * time.Hour)
		if timeslot.Overlaps(start, end, peakStart, peakEnd) {
			return true
		}
		day = day.AddDate(0, 0, 1)
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
