package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		kind dateKind
	}{
		{
			name: "numeric month first",
			text: "Invoice Date: 01/15/2024",
			want: "2024-01-15",
			kind: dateKindNumeric,
		},
		{
			name: "numeric day first when first group exceeds twelve",
			text: "Issued 15/01/2024 in London",
			want: "2024-01-15",
			kind: dateKindNumeric,
		},
		{
			name: "dashes and dots accepted",
			text: "Due 03-04-2023.",
			want: "2023-03-04",
			kind: dateKindNumeric,
		},
		{
			name: "two digit year",
			text: "signed 15-01-24 by both parties",
			want: "2024-01-15",
			kind: dateKindShortYear,
		},
		{
			name: "month name first",
			text: "Date: January 15, 2024",
			want: "2024-01-15",
			kind: dateKindMonthName,
		},
		{
			name: "month name day first with ordinal",
			text: "delivered on 3rd March 2021",
			want: "2021-03-03",
			kind: dateKindMonthName,
		},
		{
			name: "abbreviated month",
			text: "Sep 9, 2022",
			want: "2022-09-09",
			kind: dateKindMonthName,
		},
		{
			name: "four digit year preferred over month name",
			text: "January 15, 2024 filed 02/03/2024",
			want: "2024-02-03",
			kind: dateKindNumeric,
		},
		{
			name: "no date",
			text: "nothing to see here",
			want: "",
			kind: dateKindNone,
		},
		{
			name: "impossible month rejected",
			text: "ref 13/77/2024 only",
			want: "",
			kind: dateKindNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := detectDate(tc.text)
			assert.Equal(t, tc.want, m.date)
			assert.Equal(t, tc.kind, m.kind)
		})
	}
}

func TestNormalizeNumericBounds(t *testing.T) {
	assert.Equal(t, "", normalizeNumeric("2", "30", "1776"))
	assert.Equal(t, "2024-02-29", normalizeNumeric("2", "29", "2024"))
	assert.Equal(t, "2024-12-31", normalizeNumeric("31", "12", "2024"))
}
