// Package charts turns expense records into renderable chart data. The
// builders are stateless transforms; rendering itself happens in the
// browser from the JSON form of a Chart.
package charts

import (
	"sort"

	"expensetracker/internal/core"
)

const (
	KindBar = "bar"
	KindPie = "pie"

	// Bucket caps for the time-series views.
	maxDailyBuckets   = 30
	maxMonthlyBuckets = 12
)

var palette = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6", "#ec4899", "#14b8a6",
}

// Chart is a renderable chart: parallel label/value slices plus enough
// presentation hints for the client-side renderer.
type Chart struct {
	Kind   string    `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
	NoData bool      `json:"no_data,omitempty"`
}

// Daily groups expenses by calendar date and keeps the most recent 30
// buckets.
func Daily(expenses []core.Expense) Chart {
	labels, values := bucketByKey(expenses, maxDailyBuckets, func(e core.Expense) string {
		return e.Date.String()
	})
	return Chart{
		Kind:   KindBar,
		Title:  "Daily Expenses",
		XLabel: "Date",
		YLabel: "Amount",
		Labels: labels,
		Values: values,
		Colors: []string{"#3b82f6"},
		NoData: len(labels) == 0,
	}
}

// Monthly groups expenses by year-month and keeps the most recent 12
// buckets.
func Monthly(expenses []core.Expense) Chart {
	labels, values := bucketByKey(expenses, maxMonthlyBuckets, func(e core.Expense) string {
		return e.Date.Format("2006-01")
	})
	return Chart{
		Kind:   KindBar,
		Title:  "Monthly Expenses",
		XLabel: "Month",
		YLabel: "Amount",
		Labels: labels,
		Values: values,
		Colors: []string{"#10b981"},
		NoData: len(labels) == 0,
	}
}

// CategoryPie renders per-category totals. Empty input yields a placeholder
// chart rather than an error so the analytics view always has something to
// draw.
func CategoryPie(totals map[string]float64) Chart {
	chart := Chart{
		Kind:  KindPie,
		Title: "Expenses by Category",
	}
	if len(totals) == 0 {
		chart.NoData = true
		chart.Labels = []string{"No data available"}
		chart.Values = []float64{1}
		chart.Colors = []string{"#9CA3AF"}
		return chart
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		chart.Labels = append(chart.Labels, name)
		chart.Values = append(chart.Values, totals[name])
		chart.Colors = append(chart.Colors, palette[i%len(palette)])
	}
	return chart
}

// bucketByKey sums amounts per key, sorts keys ascending (both bucket keys
// here are ISO-formatted and sort chronologically), and keeps the trailing
// max buckets.
func bucketByKey(expenses []core.Expense, max int, key func(core.Expense) string) ([]string, []float64) {
	sums := make(map[string]float64)
	for _, e := range expenses {
		sums[key(e)] += e.Amount
	}

	labels := make([]string, 0, len(sums))
	for k := range sums {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	if len(labels) > max {
		labels = labels[len(labels)-max:]
	}

	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = sums[label]
	}
	return labels, values
}
