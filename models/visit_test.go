package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	noon := time.Date(2025, 3, 10, 12, 30, 45, 0, time.Local)
	start, end := DayBounds(noon)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.Local), end)
	assert.True(t, end.Before(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)))
}

func TestDayBoundsNormalizesToLocalDay(t *testing.T) {
	stamp := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	start, end := DayBounds(stamp)

	y, m, d := stamp.In(time.Local).Date()
	assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local), end)
	assert.Equal(t, time.Local, start.Location())
}

func TestValidateFields(t *testing.T) {
	ok := Visit{Name: "Asha Rao", Age: 34, Gender: GenderFemale, Diabetes: Type2Diabetes, AmountPaid: 250}
	require.NoError(t, ok.ValidateFields())

	// Unset gender and diabetes are fine; only present values are bounded.
	blank := Visit{Name: "Asha Rao"}
	require.NoError(t, blank.ValidateFields())

	for _, bad := range []Visit{
		{Age: 151},
		{Age: -1},
		{Gender: "Robot"},
		{Diabetes: "Maybe"},
		{AmountPaid: -50},
	} {
		assert.ErrorIs(t, bad.ValidateFields(), ErrInvalidField)
	}
}

func TestParseDate(t *testing.T) {
	plain, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), plain)

	stamp, err := ParseDate("2025-03-10T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, stamp.UTC().Hour())

	_, err = ParseDate("10/03/2025")
	assert.Error(t, err)
}

func TestNormalizeVisitPatchConvertsDates(t *testing.T) {
	patch, err := NormalizeVisitPatch(map[string]interface{}{
		"condition":    "Hypertension",
		"visitDate":    "2025-03-10",
		"followUpDate": "2025-03-20T09:00:00Z",
	})
	require.NoError(t, err)

	assert.IsType(t, time.Time{}, patch["visitDate"])
	assert.IsType(t, time.Time{}, patch["followUpDate"])
	assert.Equal(t, "Hypertension", patch["condition"])
}

func TestNormalizeVisitPatchDropsImmutableFields(t *testing.T) {
	patch, err := NormalizeVisitPatch(map[string]interface{}{
		"_id":         "abc",
		"id":          "abc",
		"createdAt":   "2025-01-01",
		"totalVisits": 5,
		"name":        "Asha Rao",
	})
	require.NoError(t, err)

	assert.NotContains(t, patch, "_id")
	assert.NotContains(t, patch, "id")
	assert.NotContains(t, patch, "createdAt")
	assert.NotContains(t, patch, "totalVisits")
	assert.Equal(t, "Asha Rao", patch["name"])
}

func TestNormalizeVisitPatchRejectsBadDate(t *testing.T) {
	_, err := NormalizeVisitPatch(map[string]interface{}{"visitDate": "soon"})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNormalizeVisitPatchBoundsFieldValues(t *testing.T) {
	for _, patch := range []map[string]interface{}{
		{"age": float64(200)},
		{"age": "old"},
		{"amountPaid": float64(-10)},
		{"gender": "Robot"},
		{"diabetes": "Maybe"},
	} {
		_, err := NormalizeVisitPatch(patch)
		assert.ErrorIs(t, err, ErrInvalidField)
	}

	patch, err := NormalizeVisitPatch(map[string]interface{}{
		"age":        float64(45),
		"amountPaid": float64(0),
		"gender":     GenderOther,
		"diabetes":   Prediabetes,
	})
	require.NoError(t, err)
	assert.Equal(t, GenderOther, patch["gender"])
}
