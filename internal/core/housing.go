package core

import (
	"errors"
	"fmt"
	"math"
)

const (
	HousingRent HousingType = "rent"
	HousingOwn  HousingType = "own"
)

type (
	HousingType string

	// HousingInfo is discriminated by Type: exactly one of Rent or Own is
	// populated, matching it.
	HousingInfo struct {
		Type HousingType `json:"type"`
		Rent *RentInfo   `json:"rent,omitempty"`
		Own  *OwnInfo    `json:"own,omitempty"`
	}

	RentInfo struct {
		MonthlyRent        float64 `json:"monthlyRent"`
		AnnualIncreaseRate float64 `json:"annualIncreaseRate"`
		RenewalFee         float64 `json:"renewalFee"`
		RenewalInterval    int     `json:"renewalInterval"`
	}

	OwnInfo struct {
		PurchaseYear        int     `json:"purchaseYear"`
		PurchasePrice       float64 `json:"purchasePrice"`
		LoanAmount          float64 `json:"loanAmount"`
		InterestRate        float64 `json:"interestRate"`
		LoanTermYears       int     `json:"loanTermYears"`
		MaintenanceCostRate float64 `json:"maintenanceCostRate"`
	}
)

func (h HousingInfo) Validate() error {
	switch h.Type {
	case HousingRent:
		if h.Rent == nil {
			return errors.New("rent payload missing")
		}
		if h.Rent.MonthlyRent < 0 || h.Rent.AnnualIncreaseRate < 0 || h.Rent.RenewalFee < 0 {
			return errors.New("rent values must not be negative")
		}
		if h.Rent.RenewalInterval < 0 {
			return errors.New("renewal interval must not be negative")
		}
	case HousingOwn:
		if h.Own == nil {
			return errors.New("own payload missing")
		}
		if h.Own.LoanTermYears <= 0 {
			return errors.New("loan term must be positive")
		}
		if h.Own.PurchasePrice < 0 || h.Own.LoanAmount < 0 || h.Own.InterestRate < 0 || h.Own.MaintenanceCostRate < 0 {
			return errors.New("own values must not be negative")
		}
	default:
		return fmt.Errorf("unknown housing type %q", h.Type)
	}
	return nil
}

// HousingExpense computes the annual housing cost for a year.
//
// Rent mode compounds the base annual rent from the lease reference year
// (the plan's start year) and adds the renewal fee, uninflated, every
// RenewalInterval years. Own mode is zero before the purchase year, then a
// fixed-rate amortized annual payment while the loan runs plus a
// maintenance cost of PurchasePrice x MaintenanceCostRate% for every year
// at or after purchase, loan term or not.
func HousingExpense(info HousingInfo, year, startYear int) float64 {
	switch info.Type {
	case HousingRent:
		if info.Rent == nil {
			return 0
		}
		r := info.Rent
		elapsed := year - startYear
		if elapsed < 0 {
			return 0
		}
		annual := r.MonthlyRent * 12 * math.Pow(1+r.AnnualIncreaseRate/100, float64(elapsed))
		if r.RenewalInterval > 0 && elapsed > 0 && elapsed%r.RenewalInterval == 0 {
			annual += r.RenewalFee
		}
		return annual
	case HousingOwn:
		if info.Own == nil {
			return 0
		}
		o := info.Own
		if year < o.PurchaseYear {
			return 0
		}
		var cost float64
		if year < o.PurchaseYear+o.LoanTermYears {
			cost += AnnualLoanPayment(o.LoanAmount, o.InterestRate, o.LoanTermYears)
		}
		cost += o.PurchasePrice * o.MaintenanceCostRate / 100
		return cost
	}
	return 0
}

// AnnualLoanPayment is the standard fixed-rate amortization payment
// loan x r / (1 - (1+r)^-n). A zero rate degenerates to straight division,
// the closed form divides by zero there.
func AnnualLoanPayment(loanAmount, interestRate float64, termYears int) float64 {
	if termYears <= 0 {
		return 0
	}
	r := interestRate / 100
	if r == 0 {
		return loanAmount / float64(termYears)
	}
	return loanAmount * r / (1 - math.Pow(1+r, -float64(termYears)))
}
