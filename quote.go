package phoenix

// ExpectedOutAmount estimates the amount received for a taker swap against
// the given display-unit ladder. side is the taker's side: Bid spends
// inAmount quote units walking the asks; Ask spends inAmount raw base units
// walking the bids. The fee is deducted from the input before matching.
//
// If the book runs out of liquidity the amount receivable from the available
// levels is returned with no signal; use ExpectedOutAmountWithFill when the
// caller needs to distinguish a partial fill.
func ExpectedOutAmount(ladder *UiLadder, takerFeeBps uint64, side Side, inAmount float64) float64 {
	out, _ := ExpectedOutAmountWithFill(ladder, takerFeeBps, side, inAmount)
	return out
}

// ExpectedOutAmountWithFill is ExpectedOutAmount plus a flag reporting
// whether the input amount was fully consumed by the book.
func ExpectedOutAmountWithFill(ladder *UiLadder, takerFeeBps uint64, side Side, inAmount float64) (float64, bool) {
	remaining := inAmount * (1 - float64(takerFeeBps)/10_000)
	var out float64

	switch side {
	case Bid:
		for _, level := range ladder.Asks {
			levelQuote := level.Price * level.Quantity
			if levelQuote > remaining {
				out += remaining / level.Price
				return out, true
			}
			out += level.Quantity
			remaining -= levelQuote
		}
	case Ask:
		for _, level := range ladder.Bids {
			if level.Quantity > remaining {
				out += remaining * level.Price
				return out, true
			}
			out += level.Quantity * level.Price
			remaining -= level.Quantity
		}
	}

	return out, remaining <= 0
}

// FillSummary reports lot-level totals from a simulated market sell.
type FillSummary struct {
	BaseLotsFilled  uint64
	QuoteLotsFilled uint64
}

// SimulateMarketSell walks a raw ladder with exact lot arithmetic. side is
// the token being sold: Bid sells sizeInLots quote lots into the asks, Ask
// sells sizeInLots base lots into the bids. No fee is applied.
func SimulateMarketSell(ladder *Ladder, scale MarketScale, side Side, sizeInLots uint64) FillSummary {
	if side == Bid {
		return sellQuoteLots(ladder, scale, sizeInLots)
	}
	return sellBaseLots(ladder, scale, sizeInLots)
}

// sellQuoteLots spends quote lots buying base lots from the asks. Quote lots
// are scaled by baseLotsPerBaseUnit up front so each level's cost,
// priceInTicks * quoteLotsPerBaseUnitPerTick per base lot, stays integral;
// per-level purchasable size floors the division.
func sellQuoteLots(ladder *Ladder, scale MarketScale, quoteLots uint64) FillSummary {
	adjustedQuoteLots := quoteLots * scale.BaseLotsPerBaseUnit
	remaining := adjustedQuoteLots
	var baseLots uint64

	for _, ask := range ladder.Asks {
		if remaining == 0 {
			break
		}

		costPerBaseLot := ask.PriceInTicks * scale.QuoteLotsPerBaseUnitPerTick
		purchasable := remaining / costPerBaseLot
		fill := min(purchasable, ask.SizeInBaseLots)

		baseLots += fill
		remaining -= fill * costPerBaseLot
	}

	return FillSummary{
		BaseLotsFilled:  baseLots,
		QuoteLotsFilled: (adjustedQuoteLots - remaining) / scale.BaseLotsPerBaseUnit,
	}
}

// sellBaseLots sells base lots into the bids, accumulating adjusted quote
// lots and normalizing once at the end (floor division).
func sellBaseLots(ladder *Ladder, scale MarketScale, baseLots uint64) FillSummary {
	remaining := baseLots
	var adjustedQuoteLots uint64

	for _, bid := range ladder.Bids {
		if remaining == 0 {
			break
		}

		fill := min(remaining, bid.SizeInBaseLots)
		adjustedQuoteLots += fill * bid.PriceInTicks * scale.QuoteLotsPerBaseUnitPerTick
		remaining -= fill
	}

	return FillSummary{
		BaseLotsFilled:  baseLots - remaining,
		QuoteLotsFilled: adjustedQuoteLots / scale.BaseLotsPerBaseUnit,
	}
}
