package phoenix

// Ladder builds the price-aggregated L2 view of the market in raw units,
// filtering orders expired at the given slot or unix timestamp. levels caps
// the number of distinct prices per side; pass Unlimited for the full book.
func (m *Market) Ladder(slot, unixTimestamp uint64, levels int) *Ladder {
	return &Ladder{
		Bids: ladderSide(m.Bids, slot, unixTimestamp, levels),
		Asks: ladderSide(m.Asks, slot, unixTimestamp, levels),
	}
}

// UiLadder is Ladder converted to display units: quote units per raw base
// unit and raw base units. Floating-point; not settlement-accurate.
func (m *Market) UiLadder(slot, unixTimestamp uint64, levels int) *UiLadder {
	raw := m.Ladder(slot, unixTimestamp, levels)
	return &UiLadder{
		Bids: uiLadderSide(raw.Bids, m.scale),
		Asks: uiLadderSide(raw.Asks, m.scale),
	}
}

// ladderSide scans one side's best-first order sequence. Orders at the price
// of the last emitted level accumulate into it, so the cap counts distinct
// prices rather than orders.
func ladderSide(entries []BookEntry, slot, unixTimestamp uint64, levels int) []LadderLevel {
	out := make([]LadderLevel, 0, max(levels, 0))

	for _, entry := range entries {
		if entry.Order.IsExpired(slot, unixTimestamp) {
			continue
		}

		if n := len(out); n > 0 && out[n-1].PriceInTicks == entry.OrderID.PriceInTicks {
			out[n-1].SizeInBaseLots += entry.Order.NumBaseLots
			continue
		}

		if levels != Unlimited && len(out) == levels {
			break
		}

		out = append(out, LadderLevel{
			PriceInTicks:   entry.OrderID.PriceInTicks,
			SizeInBaseLots: entry.Order.NumBaseLots,
		})
	}

	return out
}

func uiLadderSide(levels []LadderLevel, scale MarketScale) []UiLadderLevel {
	out := make([]UiLadderLevel, 0, len(levels))
	for _, level := range levels {
		out = append(out, UiLadderLevel{
			Price:    scale.TicksToFloatPrice(level.PriceInTicks),
			Quantity: scale.BaseLotsToRawBaseUnits(level.SizeInBaseLots),
		})
	}
	return out
}
