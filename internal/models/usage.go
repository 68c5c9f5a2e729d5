// ABOUTME: Monthly spend tracking for paid business-lookup searches
// ABOUTME: Credits reset at the start of each calendar month
package models

import (
	"fmt"
	"math"
	"time"
)

// MonthlyLookupCredits is the budget, in dollars, granted each month
const MonthlyLookupCredits = 5.00

const usageDateLayout = "2006-01-02"

// UsageStats tracks paid lookup spending for the current month
type UsageStats struct {
	CreditsUsed       float64 `json:"creditsUsed"`
	CreditsRemaining  float64 `json:"creditsRemaining"`
	SearchesThisMonth int     `json:"searchesThisMonth"`
	LastResetDate     string  `json:"lastResetDate"`
}

// NewUsageStats starts a fresh month at now
func NewUsageStats(now time.Time) UsageStats {
	return UsageStats{
		CreditsRemaining: MonthlyLookupCredits,
		LastResetDate:    now.Format(usageDateLayout),
	}
}

// ResetIfNewMonth zeroes the stats when now falls in a later month than the
// last reset. It reports whether a reset happened.
func (u *UsageStats) ResetIfNewMonth(now time.Time) bool {
	last, err := time.Parse(usageDateLayout, u.LastResetDate)
	if err == nil && last.Year() == now.Year() && last.Month() == now.Month() {
		return false
	}
	*u = NewUsageStats(now)
	return true
}

// cents rounds a dollar amount to whole cents
func cents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// CheckBudget errors when cost exceeds the remaining credits, compared in cents
func (u UsageStats) CheckBudget(cost float64) error {
	if cents(cost) > cents(u.CreditsRemaining) {
		return fmt.Errorf("this search would cost ~$%.2f but only $%.2f remains this month", cost, u.CreditsRemaining)
	}
	return nil
}

// Record charges one search. Amounts are kept snapped to whole cents.
func (u *UsageStats) Record(cost float64) {
	c := cents(cost)
	u.CreditsUsed = float64(cents(u.CreditsUsed)+c) / 100
	u.CreditsRemaining = float64(cents(u.CreditsRemaining)-c) / 100
	u.SearchesThisMonth++
}
