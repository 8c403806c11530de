package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", d.String())
}

func TestDateAddDaysRollsOverMonth(t *testing.T) {
	d := NewDate(2026, time.January, 28)
	assert.Equal(t, "2026-02-04", d.AddDays(7).String())
}

func TestDateJSON(t *testing.T) {
	t.Run("marshals as quoted day", func(t *testing.T) {
		raw, err := json.Marshal(NewDate(2026, time.August, 29))
		require.NoError(t, err)
		assert.Equal(t, `"2026-08-29"`, string(raw))
	})

	t.Run("unmarshals null to zero value", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte("null"), &d))
		assert.True(t, d.Equal(Date{}))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	})
}
