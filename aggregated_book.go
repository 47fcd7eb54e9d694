package phoenix

import (
	"github.com/igrmk/treemap/v2"
)

// AggregatedBook maintains a depth-only view of one market snapshot,
// tracking price levels and their aggregated sizes in raw units. It is
// designed for consumers that answer repeated depth queries against a
// snapshot without rescanning the order sequences.
type AggregatedBook struct {
	sequenceNumber uint64
	ask            *treemap.TreeMap[uint64, uint64]
	bid            *treemap.TreeMap[uint64, uint64]
}

// NewAggregatedBook builds the depth view from a snapshot, filtering orders
// expired at the given slot and unix timestamp.
func NewAggregatedBook(m *Market, slot, unixTimestamp uint64) *AggregatedBook {
	book := &AggregatedBook{
		sequenceNumber: m.OrderSequenceNumber,
		ask:            treemap.New[uint64, uint64](),
		bid:            treemap.New[uint64, uint64](),
	}

	for _, entry := range m.Bids {
		if entry.Order.IsExpired(slot, unixTimestamp) {
			continue
		}
		book.add(book.bid, entry)
	}
	for _, entry := range m.Asks {
		if entry.Order.IsExpired(slot, unixTimestamp) {
			continue
		}
		book.add(book.ask, entry)
	}

	return book
}

func (ab *AggregatedBook) add(side *treemap.TreeMap[uint64, uint64], entry BookEntry) {
	size, _ := side.Get(entry.OrderID.PriceInTicks)
	side.Set(entry.OrderID.PriceInTicks, size+entry.Order.NumBaseLots)
}

// SequenceNumber returns the market sequence number the view was built from.
// Used to detect staleness against a fresher snapshot.
func (ab *AggregatedBook) SequenceNumber() uint64 {
	return ab.sequenceNumber
}

// Depth returns the aggregated size in base lots at a price level, or zero
// if the level does not exist.
func (ab *AggregatedBook) Depth(side Side, priceInTicks uint64) uint64 {
	tree := ab.ask
	if side == Bid {
		tree = ab.bid
	}

	size, _ := tree.Get(priceInTicks)
	return size
}

// BestBid returns the highest bid level.
func (ab *AggregatedBook) BestBid() (LadderLevel, bool) {
	it := ab.bid.Reverse()
	if !it.Valid() {
		return LadderLevel{}, false
	}
	return LadderLevel{PriceInTicks: it.Key(), SizeInBaseLots: it.Value()}, true
}

// BestAsk returns the lowest ask level.
func (ab *AggregatedBook) BestAsk() (LadderLevel, bool) {
	it := ab.ask.Iterator()
	if !it.Valid() {
		return LadderLevel{}, false
	}
	return LadderLevel{PriceInTicks: it.Key(), SizeInBaseLots: it.Value()}, true
}

// Levels returns the number of distinct prices on a side.
func (ab *AggregatedBook) Levels(side Side) int {
	if side == Bid {
		return ab.bid.Len()
	}
	return ab.ask.Len()
}
