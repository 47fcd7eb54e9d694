package phoenix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatedBookDepth(t *testing.T) {
	market := testMarket(
		[]BookEntry{
			bookEntry(Bid, 99, 1, 4),
			bookEntry(Bid, 99, 2, 6),
			bookEntry(Bid, 97, 3, 1),
		},
		[]BookEntry{
			bookEntry(Ask, 100, 4, 2),
			bookEntry(Ask, 102, 5, 8),
		},
	)
	market.OrderSequenceNumber = 77

	book := NewAggregatedBook(market, 0, 0)

	assert.Equal(t, uint64(77), book.SequenceNumber())
	assert.Equal(t, uint64(10), book.Depth(Bid, 99))
	assert.Equal(t, uint64(1), book.Depth(Bid, 97))
	assert.Equal(t, uint64(2), book.Depth(Ask, 100))
	assert.Zero(t, book.Depth(Ask, 101))

	assert.Equal(t, 2, book.Levels(Bid))
	assert.Equal(t, 2, book.Levels(Ask))
}

func TestAggregatedBookBestLevels(t *testing.T) {
	market := testMarket(
		[]BookEntry{
			bookEntry(Bid, 99, 1, 4),
			bookEntry(Bid, 97, 2, 1),
		},
		[]BookEntry{
			bookEntry(Ask, 102, 3, 8),
			bookEntry(Ask, 100, 4, 2),
		},
	)

	book := NewAggregatedBook(market, 0, 0)

	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, LadderLevel{PriceInTicks: 99, SizeInBaseLots: 4}, bid)

	ask, ok := book.BestAsk()
	require.True(t, ok)
	assert.Equal(t, LadderLevel{PriceInTicks: 100, SizeInBaseLots: 2}, ask)
}

func TestAggregatedBookEmpty(t *testing.T) {
	book := NewAggregatedBook(testMarket(nil, nil), 0, 0)

	_, ok := book.BestBid()
	assert.False(t, ok)
	_, ok = book.BestAsk()
	assert.False(t, ok)
	assert.Zero(t, book.Levels(Bid))
	assert.Zero(t, book.Levels(Ask))
}

func TestAggregatedBookFiltersExpired(t *testing.T) {
	market := testMarket(
		[]BookEntry{
			expiringEntry(Bid, 99, 1, 4, 5, 0),
			bookEntry(Bid, 98, 2, 1),
		},
		nil,
	)

	book := NewAggregatedBook(market, 6, 0)

	assert.Zero(t, book.Depth(Bid, 99))
	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, uint64(98), bid.PriceInTicks)
}
