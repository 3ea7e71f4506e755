package reports

import "fmt"

// TopCountryLimit is the number of countries the multi-line chart plots.
const TopCountryLimit = 3

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthKey formats month 1..12 as the two-digit key used by the matrix charts.
func MonthKey(month int) string {
	return fmt.Sprintf("%02d", month)
}

// ZeroMonths returns "01".."12" all set to zero.
func ZeroMonths() *Ordered[int64] {
	m := NewOrdered[int64]()
	for i := 1; i <= 12; i++ {
		m.Set(MonthKey(i), 0)
	}
	return m
}

func ShapeSeverityCounts(rows []SeverityCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.SeverityLevel] += r.IncidentCount
	}
	return out
}

// ShapeMonthCounts returns Jan..Dec in calendar order, zero-filled.
func ShapeMonthCounts(rows []MonthCount) *Ordered[int64] {
	var counts [12]int64
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		counts[r.Month-1] += r.IncidentCount
	}
	out := NewOrdered[int64]()
	for i, name := range monthNames {
		out.Set(name, counts[i])
	}
	return out
}

// ShapeCountryMatrix builds one zero-filled month map per country in row
// order, then pads with "Country N" placeholders until there are exactly
// TopCountryLimit keys.
func ShapeCountryMatrix(rows []CountryMonthCount) *Ordered[*Ordered[int64]] {
	out := NewOrdered[*Ordered[int64]]()
	for _, r := range rows {
		addMonth(out, r.Country, r.Month, r.IncidentCount)
	}
	for n := 1; out.Len() < TopCountryLimit; n++ {
		name := fmt.Sprintf("Country %d", out.Len()+n)
		if out.Has(name) {
			continue
		}
		out.Set(name, ZeroMonths())
		n = 0
	}
	return out
}

// ShapeSeverityMatrix builds one zero-filled month map per severity level.
func ShapeSeverityMatrix(rows []SeverityMonthCount) *Ordered[*Ordered[int64]] {
	out := NewOrdered[*Ordered[int64]]()
	for _, r := range rows {
		addMonth(out, r.SeverityLevel, r.Month, r.IncidentCount)
	}
	return out
}

func addMonth(out *Ordered[*Ordered[int64]], key string, month int, count int64) {
	months, ok := out.Get(key)
	if !ok {
		months = ZeroMonths()
		out.Set(key, months)
	}
	if month < 1 || month > 12 {
		return
	}
	k := MonthKey(month)
	cur, _ := months.Get(k)
	months.Set(k, cur+count)
}
