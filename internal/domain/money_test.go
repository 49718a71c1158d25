package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"banking-ledger/internal/domain"
)

func TestRoundToCents(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "exact value untouched", in: "20.00", expected: "20.00"},
		{name: "rounds down below half", in: "2.464", expected: "2.46"},
		{name: "rounds half up", in: "2.465", expected: "2.47"},
		{name: "interest on 123.45", in: "2.469", expected: "2.47"},
		{name: "whole number", in: "5", expected: "5.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.RoundToCents(decimal.RequireFromString(tc.in))
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}
}
