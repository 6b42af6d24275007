// Package data provides small sample frames for demos and tests.
package data

import (
	"math"

	"github.com/kbukum/tablekit/table"
)

var na = math.NaN()

// airquality rows: Ozone, Solar.R, Wind, Temp, Month, Day.
var airquality = [][6]float64{
	{41, 190, 7.4, 67, 5, 1},
	{36, 118, 8.0, 72, 5, 2},
	{12, 149, 12.6, 74, 5, 3},
	{18, 313, 11.5, 62, 5, 4},
	{na, na, 14.3, 56, 5, 5},
	{28, na, 14.9, 66, 5, 6},
	{23, 299, 8.6, 65, 5, 7},
	{19, 99, 13.8, 59, 5, 8},
	{8, 19, 20.1, 61, 5, 9},
	{na, 194, 8.6, 69, 5, 10},
	{7, na, 6.9, 74, 5, 11},
	{16, 256, 9.7, 69, 5, 12},
	{11, 290, 9.2, 66, 5, 13},
	{14, 274, 10.9, 68, 5, 14},
	{18, 65, 13.2, 58, 5, 15},
	{14, 334, 11.5, 64, 5, 16},
	{34, 307, 12.0, 66, 5, 17},
	{6, 78, 18.4, 57, 5, 18},
	{30, 322, 11.5, 68, 5, 19},
	{11, 44, 9.7, 62, 5, 20},
}

// AirQuality returns daily air quality measurements for New York, May 1973:
// Ozone (ppb), Solar_R (lang), Wind (mph), Temp (°F), Month and Day.
// Missing readings are NaN.
func AirQuality() *table.Frame {
	cols := []table.Column{
		{Name: "Ozone"}, {Name: "Solar_R"}, {Name: "Wind"},
		{Name: "Temp"}, {Name: "Month"}, {Name: "Day"},
	}
	for _, row := range airquality {
		for i, v := range row {
			if i >= 3 {
				cols[i].Values = append(cols[i].Values, int(v))
				continue
			}
			cols[i].Values = append(cols[i].Values, v)
		}
	}
	return table.MustFrame(cols...)
}

// Stylize returns the five-row frame used by the stylize demo.
func Stylize() *table.Frame {
	return table.MustFrame(
		table.Col("col1", 2, 5, 7, 10, 15),
		table.Col("col2", "x", "y", "y", "z", "z"),
		table.Col("color", "lightgrey", "lightblue", "lightblue", "papayawhip", "papayawhip"),
	)
}

// Countrypops returns population figures (millions) for a few countries,
// grouped by region.
func Countrypops() *table.Frame {
	return table.MustFrame(
		table.Col("country", "Germany", "France", "Japan", "Brazil", "Kenya"),
		table.Col("code", "DE", "FR", "JP", "BR", "KE"),
		table.Col("region", "Europe", "Europe", "Asia", "Americas", "Africa"),
		table.Col("population", 83.2, 68.0, 125.1, 203.1, 55.1),
		table.Col("trend", "82.5 82.8 83.2", "67.4 67.7 68.0", "126.3 125.7 125.1", "201.0 202.3 203.1", "51.9 53.8 55.1"),
	)
}
