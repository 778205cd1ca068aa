package kernel_test

import (
	"testing"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		recordedAt := time.Now()

		point, err := kernel.NewGeoPoint(-26.2041, 28.0473, 12.5, recordedAt)

		require.NoError(t, err)
		assert.InDelta(t, -26.2041, point.Latitude(), 0.0001)
		assert.InDelta(t, 28.0473, point.Longitude(), 0.0001)
		assert.InDelta(t, 12.5, point.AccuracyM(), 0.0001)
		assert.Equal(t, recordedAt, point.RecordedAt())
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(kernel.LatitudeMin, kernel.LongitudeMax, 0, time.Time{})

		require.NoError(t, err)
	})

	t.Run("should reject latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0, 0, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5, 0, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative accuracy", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, 0, -1, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}
