package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(d Date) *Date { return &d }

func TestPlantNextDue(t *testing.T) {
	t.Run("unset last watered never due", func(t *testing.T) {
		p := Plant{WateringInterval: 7}
		_, ok := p.NextDue()
		assert.False(t, ok)
	})

	t.Run("interval below one never due", func(t *testing.T) {
		p := Plant{LastWatered: datePtr(NewDate(2026, time.August, 1)), WateringInterval: 0}
		_, ok := p.NextDue()
		assert.False(t, ok)
	})

	t.Run("adds interval days", func(t *testing.T) {
		p := Plant{LastWatered: datePtr(NewDate(2026, time.August, 28)), WateringInterval: 7}
		due, ok := p.NextDue()
		require.True(t, ok)
		assert.Equal(t, "2026-09-04", due.String())
	})
}

func TestPlantIsOverdue(t *testing.T) {
	today := NewDate(2026, time.August, 29)

	tests := []struct {
		name        string
		lastWatered *Date
		interval    int
		want        bool
	}{
		{"watered ten days ago, weekly interval", datePtr(today.AddDays(-10)), 7, true},
		{"due exactly today", datePtr(today.AddDays(-7)), 7, true},
		{"due tomorrow", datePtr(today.AddDays(-6)), 7, false},
		{"watered ten days ago, monthly interval", datePtr(today.AddDays(-10)), 30, false},
		{"never watered", nil, 7, false},
		{"reminders disabled", datePtr(today.AddDays(-100)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plant{LastWatered: tt.lastWatered, WateringInterval: tt.interval}
			assert.Equal(t, tt.want, p.IsOverdue(today))
		})
	}
}

func TestPlantRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := PlantRequest{PlantName: "Monstera", WateringInterval: 7}
		assert.NoError(t, req.Validate())
	})

	t.Run("negative interval rejected", func(t *testing.T) {
		req := PlantRequest{WateringInterval: -1}
		assert.Error(t, req.Validate())
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		name := make([]byte, MaxPlantNameLength+1)
		for i := range name {
			name[i] = 'a'
		}
		req := PlantRequest{PlantName: string(name)}
		assert.Error(t, req.Validate())
	})
}

func TestPlantJSONHidesInternalFields(t *testing.T) {
	key := "plants/2026/08/29/abc"
	p := Plant{
		ID:             3,
		PlantName:      "Fern",
		AccountID:      42,
		ImageKey:       &key,
		OwnerEmail:     "owner@example.com",
		RegistrationID: "r1",
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "plantName")
	assert.Contains(t, decoded, "registrationID")
	assert.NotContains(t, decoded, "ImageKey")
	assert.NotContains(t, decoded, "AccountID")
	assert.NotContains(t, decoded, "OwnerEmail")

	// null lastWatered aynen null serialize edilmeli
	assert.Nil(t, decoded["lastWatered"])
}
