package phoenix

import (
	"math"

	"github.com/gagliardetto/solana-go"
)

// L3Book builds the per-order view of the market in raw units, filtering
// orders expired at the given slot or unix timestamp. ordersPerSide caps the
// order count per side; pass Unlimited for every live order.
func (m *Market) L3Book(slot, unixTimestamp uint64, ordersPerSide int) *L3Book {
	return &L3Book{
		Bids: m.l3Side(m.Bids, Bid, slot, unixTimestamp, ordersPerSide),
		Asks: m.l3Side(m.Asks, Ask, slot, unixTimestamp, ordersPerSide),
	}
}

// L3UiBook is L3Book converted to display units. Floating-point; not
// settlement-accurate.
func (m *Market) L3UiBook(slot, unixTimestamp uint64, ordersPerSide int) *L3UiBook {
	raw := m.L3Book(slot, unixTimestamp, ordersPerSide)
	return &L3UiBook{
		Bids: uiBookSide(raw.Bids, m.scale),
		Asks: uiBookSide(raw.Asks, m.scale),
	}
}

func (m *Market) l3Side(entries []BookEntry, side Side, slot, unixTimestamp uint64, ordersPerSide int) []L3Order {
	out := make([]L3Order, 0, max(ordersPerSide, 0))

	for _, entry := range entries {
		if entry.Order.IsExpired(slot, unixTimestamp) {
			continue
		}
		if ordersPerSide != Unlimited && len(out) == ordersPerSide {
			break
		}

		// Arena addresses are 32-bit; a wider index is corrupt and must not
		// truncate onto a live seat.
		var maker solana.PublicKey
		ok := false
		if entry.Order.TraderIndex <= math.MaxUint32 {
			maker, ok = m.traderPubkeys[uint32(entry.Order.TraderIndex)]
		}
		if !ok {
			// The book references a seat the trader tree does not hold. The
			// entry is still emitted, with the zero maker key, so the gap is
			// observable downstream.
			logger.Debug("unresolved trader index",
				"side", side.String(),
				"trader_index", entry.Order.TraderIndex,
				"price_in_ticks", entry.OrderID.PriceInTicks)
		}

		out = append(out, L3Order{
			PriceInTicks:                    entry.OrderID.PriceInTicks,
			Side:                            side,
			SizeInBaseLots:                  entry.Order.NumBaseLots,
			MakerPubkey:                     maker,
			OrderSequenceNumber:             entry.OrderID.SequenceNumber(),
			LastValidSlot:                   entry.Order.LastValidSlot,
			LastValidUnixTimestampInSeconds: entry.Order.LastValidUnixTimestampInSeconds,
		})
	}

	return out
}

func uiBookSide(orders []L3Order, scale MarketScale) []L3UiOrder {
	out := make([]L3UiOrder, 0, len(orders))
	for _, order := range orders {
		out = append(out, L3UiOrder{
			Price:               scale.TicksToFloatPrice(order.PriceInTicks),
			Side:                order.Side,
			Size:                scale.BaseLotsToRawBaseUnits(order.SizeInBaseLots),
			MakerPubkey:         order.MakerPubkey,
			OrderSequenceNumber: order.OrderSequenceNumber,
		})
	}
	return out
}
