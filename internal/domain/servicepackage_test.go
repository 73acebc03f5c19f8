package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
)

func tieredPackage() *ServicePackage {
	return &ServicePackage{
		ID:        1,
		Name:      "Deep Clean",
		Version:   PackageV2,
		BasePrice: 200,
		Tiers: []PriceTier{
			{AreaMin: 0, AreaMax: 50, Frequency: FrequencyOnce, Price: 150},
			{AreaMin: 50, AreaMax: 100, Frequency: FrequencyOnce, Price: 250},
			{AreaMin: 0, AreaMax: 50, Frequency: FrequencyWeekly, Price: 120},
		},
	}
}

func TestServicePackage_Quote(t *testing.T) {
	pkg := tieredPackage()

	tests := []struct {
		name      string
		area      *float64
		freq      *Frequency
		wantPrice float64
		wantTier  bool
	}{
		{name: "matching tier", area: ptr.Ptr(30.0), freq: ptr.Ptr(FrequencyOnce), wantPrice: 150, wantTier: true},
		{name: "area at tier boundary goes to next tier", area: ptr.Ptr(50.0), freq: ptr.Ptr(FrequencyOnce), wantPrice: 250, wantTier: true},
		{name: "weekly tier", area: ptr.Ptr(30.0), freq: ptr.Ptr(FrequencyWeekly), wantPrice: 120, wantTier: true},
		{name: "no matching tier falls back to base", area: ptr.Ptr(500.0), freq: ptr.Ptr(FrequencyOnce), wantPrice: 200},
		{name: "missing area falls back to base", freq: ptr.Ptr(FrequencyOnce), wantPrice: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, tier := pkg.Quote(tt.area, tt.freq)
			assert.Equal(t, tt.wantPrice, price)
			if tt.wantTier {
				require.NotNil(t, tier)
			} else {
				assert.Nil(t, tier)
			}
		})
	}

	t.Run("v1 package always returns base price", func(t *testing.T) {
		v1 := &ServicePackage{Version: PackageV1, BasePrice: 99}
		price, tier := v1.Quote(ptr.Ptr(30.0), ptr.Ptr(FrequencyOnce))
		assert.Equal(t, 99.0, price)
		assert.Nil(t, tier)
	})
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []PriceTier
		wantErr error
	}{
		{
			name: "valid non-overlapping",
			tiers: []PriceTier{
				{AreaMin: 0, AreaMax: 50, Frequency: FrequencyOnce, Price: 100},
				{AreaMin: 50, AreaMax: 100, Frequency: FrequencyOnce, Price: 150},
			},
		},
		{
			name: "same range different frequency",
			tiers: []PriceTier{
				{AreaMin: 0, AreaMax: 50, Frequency: FrequencyOnce, Price: 100},
				{AreaMin: 0, AreaMax: 50, Frequency: FrequencyWeekly, Price: 80},
			},
		},
		{
			name: "overlap within frequency",
			tiers: []PriceTier{
				{AreaMin: 0, AreaMax: 60, Frequency: FrequencyOnce, Price: 100},
				{AreaMin: 50, AreaMax: 100, Frequency: FrequencyOnce, Price: 150},
			},
			wantErr: ErrTierOverlap,
		},
		{
			name:    "inverted range",
			tiers:   []PriceTier{{AreaMin: 50, AreaMax: 50, Frequency: FrequencyOnce, Price: 100}},
			wantErr: ErrInvalidTierRange,
		},
		{
			name:    "negative price",
			tiers:   []PriceTier{{AreaMin: 0, AreaMax: 50, Frequency: FrequencyOnce, Price: -1}},
			wantErr: ErrInvalidTierRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.5, AverageRating([]*Review{{Rating: 4}, {Rating: 5}}))
}
