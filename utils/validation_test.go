package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+256701111111", NormalizePhone("+256 701-111-111"))
	assert.Equal(t, "+256701111111", NormalizePhone("+256(701)111111"))
	assert.Equal(t, "+256701111111", NormalizePhone("+256701111111"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+256701111111"))
	assert.True(t, ValidatePhone("+256 701 111 111"))
	assert.True(t, ValidatePhone("256701111111"))
	assert.False(t, ValidatePhone("not-a-phone"))
	assert.False(t, ValidatePhone("0"))
	assert.False(t, ValidatePhone(""))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(start, end))
}

func TestPeriodCutoff(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(-7*24*time.Hour), PeriodCutoff(now, 7))
	assert.Equal(t, now, PeriodCutoff(now, 0))
}
