// Package gst implements the intra-state GST split used on every sale line.
//
// The slab rate (a percentage, e.g. 5) is divided into equal CGST and SGST
// halves. Each half is computed on the taxable amount independently and
// rounded half-up to the nearest paise; SQLite stores the results as plain
// integers, so the rounding rule lives here and nowhere else.
package gst

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineTax holds the computed tax for one sale line, all amounts in paise.
type LineTax struct {
	TaxableAmountPaise int64
	CGSTRate           float64
	CGSTAmountPaise    int64
	SGSTRate           float64
	SGSTAmountPaise    int64
	TotalPaise         int64
}

// TaxableAmount returns unitPrice*quantity - discount in paise.
func TaxableAmount(unitPricePaise, quantity, discountPaise int64) int64 {
	return unitPricePaise*quantity - discountPaise
}

// HalfAmount computes one half of the GST (CGST or SGST) on the taxable
// amount: round(taxable * rate/2 / 100), half-up at the paise.
func HalfAmount(taxablePaise int64, slabRate float64) int64 {
	taxable := decimal.NewFromInt(taxablePaise)
	half := decimal.NewFromFloat(slabRate).Div(decimal.NewFromInt(2))
	return taxable.Mul(half).Div(hundred).Round(0).IntPart()
}

// ComputeLine derives the full tax breakdown for one sale line.
func ComputeLine(unitPricePaise, quantity, discountPaise int64, slabRate float64) LineTax {
	taxable := TaxableAmount(unitPricePaise, quantity, discountPaise)
	halfRate := slabRate / 2
	cgst := HalfAmount(taxable, slabRate)
	sgst := HalfAmount(taxable, slabRate)
	return LineTax{
		TaxableAmountPaise: taxable,
		CGSTRate:           halfRate,
		CGSTAmountPaise:    cgst,
		SGSTRate:           halfRate,
		SGSTAmountPaise:    sgst,
		TotalPaise:         taxable + cgst + sgst,
	}
}
