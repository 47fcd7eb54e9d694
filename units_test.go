package phoenix

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicksToFloatPrice(t *testing.T) {
	scale := testScale()

	assert.InDelta(t, 22.72, scale.TicksToFloatPrice(22720), 1e-9)
	assert.Zero(t, scale.TicksToFloatPrice(0))

	// A two-raw-unit market halves the per-raw-unit price.
	scale.RawBaseUnitsPerBaseUnit = 2
	assert.InDelta(t, 11.36, scale.TicksToFloatPrice(22720), 1e-9)
}

func TestFloatPriceToTicksRoundsToNearest(t *testing.T) {
	scale := testScale()

	assert.Equal(t, uint64(22720), scale.FloatPriceToTicks(22.72))
	assert.Equal(t, uint64(22720), scale.FloatPriceToTicks(22.7196))
	assert.Equal(t, uint64(22719), scale.FloatPriceToTicks(22.7191))
}

func TestTicksToPriceExact(t *testing.T) {
	scale := testScale()

	price := scale.TicksToPrice(22720)
	assert.True(t, price.Equal(decimal.RequireFromString("22.72")), price.String())
}

func TestPriceToTicksRoundtrip(t *testing.T) {
	scale := testScale()

	for _, ticks := range []uint64{0, 1, 22719, 22720, 1 << 40} {
		assert.Equal(t, ticks, scale.PriceToTicks(scale.TicksToPrice(ticks)))
	}

	// Half a tick rounds away from zero.
	assert.Equal(t, uint64(22720), scale.PriceToTicks(decimal.RequireFromString("22.7195")))
}

func TestBaseLotConversions(t *testing.T) {
	scale := testScale()

	assert.Equal(t, uint64(5_000_000), scale.BaseLotsToBaseAtoms(5))
	assert.Equal(t, uint64(5), scale.BaseAtomsToBaseLots(5_999_999))
	assert.InDelta(t, 1.087, scale.BaseLotsToRawBaseUnits(1087), 1e-9)
	assert.Equal(t, uint64(1087), scale.RawBaseUnitsToBaseLots(decimal.RequireFromString("1.0875")))
}

func TestBaseLotsToBaseUnitsHonorsRawScaling(t *testing.T) {
	scale := testScale()
	assert.InDelta(t, 1.087, scale.BaseLotsToBaseUnits(1087), 1e-9)

	scale.RawBaseUnitsPerBaseUnit = 2
	assert.InDelta(t, 0.5435, scale.BaseLotsToBaseUnits(1087), 1e-9)
}

func TestQuoteConversions(t *testing.T) {
	scale := testScale()
	scale.QuoteLotSize = 100

	assert.Equal(t, uint64(500), scale.QuoteLotsToQuoteAtoms(5))
	assert.Equal(t, uint64(5), scale.QuoteAtomsToQuoteLots(599))
	assert.InDelta(t, 1.5, scale.QuoteAtomsToQuoteUnits(1_500_000), 1e-9)
	assert.Equal(t, uint64(1_499_999), scale.QuoteUnitsToQuoteAtoms(decimal.RequireFromString("1.4999999")))
}

func TestOrderQuoteAtoms(t *testing.T) {
	scale := testScale()

	assert.Equal(t, uint64(11_360_000), scale.OrderQuoteAtoms(22720, 500))

	// Sub-lot remainders floor away.
	scale.TickSizeInQuoteAtomsPerBaseUnit = 999
	assert.Equal(t, uint64(0), scale.OrderQuoteAtoms(1, 1))
}

func TestNewMarketScaleFromHeader(t *testing.T) {
	header := testMarketHeader()

	scale := NewMarketScale(header, testBaseLotsPerBaseUnit, testQuoteLotsPerBaseUnitPerTick)
	require.Equal(t, testScale(), scale)
}
