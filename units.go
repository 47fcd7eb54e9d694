package phoenix

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/solbook/phoenix-go/protocol"
)

// MarketScale bundles the per-market constants every unit conversion is
// parameterized by. All conversions are pure; rounding is documented per
// function. The float64 variants exist for display and mirror the reference
// program's floating-point semantics; settlement paths must stay on the
// integer or decimal variants.
type MarketScale struct {
	BaseLotSize                     uint64
	QuoteLotSize                    uint64
	TickSizeInQuoteAtomsPerBaseUnit uint64
	BaseDecimals                    uint32
	QuoteDecimals                   uint32
	RawBaseUnitsPerBaseUnit         uint32
	BaseLotsPerBaseUnit             uint64
	QuoteLotsPerBaseUnitPerTick     uint64
}

// NewMarketScale derives the conversion constants from a decoded header and
// the two allocator scalars that follow it in the account.
func NewMarketScale(header *protocol.MarketHeader, baseLotsPerBaseUnit, quoteLotsPerBaseUnitPerTick uint64) MarketScale {
	return MarketScale{
		BaseLotSize:                     header.BaseLotSize,
		QuoteLotSize:                    header.QuoteLotSize,
		TickSizeInQuoteAtomsPerBaseUnit: header.TickSizeInQuoteAtomsPerBaseUnit,
		BaseDecimals:                    header.BaseParams.Decimals,
		QuoteDecimals:                   header.QuoteParams.Decimals,
		RawBaseUnitsPerBaseUnit:         header.RawBaseUnitsPerBaseUnit,
		BaseLotsPerBaseUnit:             baseLotsPerBaseUnit,
		QuoteLotsPerBaseUnitPerTick:     quoteLotsPerBaseUnitPerTick,
	}
}

// quoteAtomsPerQuoteUnit is 10^quoteDecimals as an exact decimal.
func (s MarketScale) quoteAtomsPerQuoteUnit() decimal.Decimal {
	return decimal.New(1, int32(s.QuoteDecimals))
}

// baseAtomsPerRawBaseUnit is 10^baseDecimals as an exact decimal.
func (s MarketScale) baseAtomsPerRawBaseUnit() decimal.Decimal {
	return decimal.New(1, int32(s.BaseDecimals))
}

// TicksToFloatPrice converts a tick price to quote units per raw base unit.
// Floating-point division; display only.
func (s MarketScale) TicksToFloatPrice(ticks uint64) float64 {
	return float64(ticks) * float64(s.TickSizeInQuoteAtomsPerBaseUnit) /
		(math.Pow10(int(s.QuoteDecimals)) * float64(s.RawBaseUnitsPerBaseUnit))
}

// FloatPriceToTicks converts a display price to ticks, rounding to nearest.
// Display only; use PriceToTicks for exact conversion.
func (s MarketScale) FloatPriceToTicks(price float64) uint64 {
	return uint64(math.Round(price * math.Pow10(int(s.QuoteDecimals)) *
		float64(s.RawBaseUnitsPerBaseUnit) / float64(s.TickSizeInQuoteAtomsPerBaseUnit)))
}

// TicksToPrice converts a tick price to quote units per raw base unit as an
// exact decimal.
func (s MarketScale) TicksToPrice(ticks uint64) decimal.Decimal {
	numerator := decimal.NewFromUint64(ticks).Mul(decimal.NewFromUint64(s.TickSizeInQuoteAtomsPerBaseUnit))
	denominator := s.quoteAtomsPerQuoteUnit().Mul(decimal.NewFromInt(int64(s.RawBaseUnitsPerBaseUnit)))
	return numerator.Div(denominator)
}

// PriceToTicks converts an exact display price to ticks, rounding to the
// nearest tick (half away from zero).
func (s MarketScale) PriceToTicks(price decimal.Decimal) uint64 {
	scaled := price.Mul(s.quoteAtomsPerQuoteUnit()).Mul(decimal.NewFromInt(int64(s.RawBaseUnitsPerBaseUnit)))
	ticks := scaled.DivRound(decimal.NewFromUint64(s.TickSizeInQuoteAtomsPerBaseUnit), 0)
	return uint64(ticks.IntPart())
}

// BaseLotsToBaseAtoms converts base lots to base atoms. Exact.
func (s MarketScale) BaseLotsToBaseAtoms(lots uint64) uint64 {
	return lots * s.BaseLotSize
}

// BaseAtomsToBaseLots converts base atoms to base lots, flooring any
// remainder below one lot.
func (s MarketScale) BaseAtomsToBaseLots(atoms uint64) uint64 {
	return atoms / s.BaseLotSize
}

// BaseLotsToRawBaseUnits converts base lots to raw base units.
// Floating-point division; display only.
func (s MarketScale) BaseLotsToRawBaseUnits(lots uint64) float64 {
	return float64(lots*s.BaseLotSize) / math.Pow10(int(s.BaseDecimals))
}

// RawBaseUnitsToBaseLots converts an exact raw base unit quantity to base
// lots, flooring any fraction of a lot.
func (s MarketScale) RawBaseUnitsToBaseLots(units decimal.Decimal) uint64 {
	atoms := units.Mul(s.baseAtomsPerRawBaseUnit())
	lots := atoms.DivRound(decimal.NewFromUint64(s.BaseLotSize), 16).Floor()
	return uint64(lots.IntPart())
}

// BaseLotsToBaseUnits converts base lots to display base units, honoring the
// raw-base-unit scaling. Floating-point division; display only.
func (s MarketScale) BaseLotsToBaseUnits(lots uint64) float64 {
	return s.BaseLotsToRawBaseUnits(lots) / float64(s.RawBaseUnitsPerBaseUnit)
}

// QuoteLotsToQuoteAtoms converts quote lots to quote atoms. Exact.
func (s MarketScale) QuoteLotsToQuoteAtoms(lots uint64) uint64 {
	return lots * s.QuoteLotSize
}

// QuoteAtomsToQuoteLots converts quote atoms to quote lots, flooring any
// remainder below one lot.
func (s MarketScale) QuoteAtomsToQuoteLots(atoms uint64) uint64 {
	return atoms / s.QuoteLotSize
}

// QuoteAtomsToQuoteUnits converts quote atoms to display quote units.
// Floating-point division; display only.
func (s MarketScale) QuoteAtomsToQuoteUnits(atoms uint64) float64 {
	return float64(atoms) / math.Pow10(int(s.QuoteDecimals))
}

// QuoteUnitsToQuoteAtoms converts an exact quote unit amount to quote atoms,
// flooring any fraction of an atom.
func (s MarketScale) QuoteUnitsToQuoteAtoms(units decimal.Decimal) uint64 {
	return uint64(units.Mul(s.quoteAtomsPerQuoteUnit()).Floor().IntPart())
}

// OrderQuoteAtoms returns the notional of an order in quote atoms: base lots
// times the tick price times the tick size, normalized by the lots in a base
// unit. Floors the final division; exact whenever the order's lots align to
// a whole base unit.
func (s MarketScale) OrderQuoteAtoms(priceInTicks, numBaseLots uint64) uint64 {
	return numBaseLots * priceInTicks * s.TickSizeInQuoteAtomsPerBaseUnit / s.BaseLotsPerBaseUnit
}
