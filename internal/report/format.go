// Package report turns aggregates and scores into flat tables for PDF and
// spreadsheet rendering.
package report

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nurpe/painel-mulher/internal/period"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Percent formats v with one decimal, e.g. "40,0%".
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", round1(v))
}

// Count formats an integer with thousands grouping, e.g. "1.234".
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Decimal formats v with one decimal and no unit.
func Decimal(v float64) string {
	return printer.Sprintf("%.1f", round1(v))
}

// SignedPercent prefixes positive values with "+".
func SignedPercent(v float64) string {
	v = round1(v)
	if v > 0 {
		return "+" + Percent(v)
	}
	return Percent(v)
}

func SignedCount(n int) string {
	if n > 0 {
		return "+" + Count(n)
	}
	return Count(n)
}

func Date(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006 15:04")
}

func DatePtr(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return Date(*t)
}

// LocalDatePtr formats a timestamp as the calendar date it falls on in loc.
// Plain DATE columns go through DatePtr instead so they never shift a day.
func LocalDatePtr(t *time.Time, loc *time.Location) string {
	if t == nil || loc == nil {
		return DatePtr(t)
	}
	return Date(t.In(loc))
}

// MonthLabel renders "junho de 2024".
func MonthLabel(ym period.YearMonth) string {
	return fmt.Sprintf("%s de %d", monthNames[ym.Month-1], ym.Year)
}

func YesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

func round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
