package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func NewYearMonth(year, month int) (YearMonth, error) {
	if year < 2000 || year > 2100 {
		return YearMonth{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w: month %d out of range", ErrInvalidPeriod, month)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(raw string) (YearMonth, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return YearMonth{}, fmt.Errorf("%w: expected YYYY-MM, got %q", ErrInvalidPeriod, raw)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: bad year in %q", ErrInvalidPeriod, raw)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: bad month in %q", ErrInvalidPeriod, raw)
	}
	return NewYearMonth(year, month)
}

func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) Range(loc *time.Location) Range {
	return Month(ym.Year, ym.Month, loc)
}

func (ym YearMonth) Previous() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

func (ym YearMonth) Days() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
