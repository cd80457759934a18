package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverdueDays(t *testing.T) {
	due := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	loan := Loan{DueAt: due}

	cases := []struct {
		name string
		at   time.Time
		want int64
	}{
		{"before due date", due.Add(-time.Hour), 0},
		{"exactly due", due, 0},
		{"hours past, under a day", due.Add(12 * time.Hour), 0},
		{"one full day", due.Add(24 * time.Hour), 1},
		{"three days and change", due.Add(3*24*time.Hour + time.Hour), 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, loan.OverdueDays(tc.at))
		})
	}
}

func TestFineFor(t *testing.T) {
	due := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	loan := Loan{DueAt: due}
	rate := decimal.RequireFromString("0.50")

	assert.True(t, loan.FineFor(due, rate).IsZero())
	assert.Equal(t, "2.00", loan.FineFor(due.Add(4*24*time.Hour), rate).StringFixed(2))
}

func TestBorrowRequestValidate(t *testing.T) {
	assert.Error(t, BorrowRequest{}.Validate())
	assert.NoError(t, BorrowRequest{BookID: "6e2cf8a0-1111-4222-8333-444455556666"}.Validate())
}

func TestToResponseFormatsFine(t *testing.T) {
	fine := decimal.RequireFromString("1.5")
	loan := Loan{Status: StatusReturned, FineAmount: &fine}

	resp := loan.ToResponse()
	require.NotNil(t, resp.FineAmount)
	assert.Equal(t, "1.50", *resp.FineAmount)

	noFine := Loan{Status: StatusPending}
	assert.Nil(t, noFine.ToResponse().FineAmount)
}
