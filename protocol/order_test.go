package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceNumberReconstruction(t *testing.T) {
	tests := []struct {
		name string
		raw  uint64
		want uint64
	}{
		{"ask sequence is passed through", 5, 5},
		{"ask zero", 0, 0},
		{"bid signed -1 decodes to 0", math.MaxUint64, 0}, // all bits inverted
		{"bid signed -6 decodes to 5", ^uint64(5), 5},
		{"largest bid counter", 1 << 63, math.MaxInt64},
		{"largest ask counter", math.MaxInt64, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := OrderID{PriceInTicks: 100, OrderSequenceNumber: tt.raw}
			assert.Equal(t, tt.want, id.SequenceNumber())
		})
	}
}

func TestRestingOrderIsExpired(t *testing.T) {
	tests := []struct {
		name    string
		order   RestingOrder
		slot    uint64
		ts      uint64
		expired bool
	}{
		{"no expiry", RestingOrder{}, 100, 100, false},
		{"slot boundary is inclusive", RestingOrder{LastValidSlot: 5}, 5, 0, false},
		{"slot passed", RestingOrder{LastValidSlot: 5}, 6, 0, true},
		{"timestamp boundary is inclusive", RestingOrder{LastValidUnixTimestampInSeconds: 50}, 0, 50, false},
		{"timestamp passed", RestingOrder{LastValidUnixTimestampInSeconds: 50}, 0, 51, true},
		{"either bound expires", RestingOrder{LastValidSlot: 5, LastValidUnixTimestampInSeconds: 500}, 4, 501, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, tt.order.IsExpired(tt.slot, tt.ts))
		})
	}
}

func TestOrderIDRoundTrip(t *testing.T) {
	id := OrderID{PriceInTicks: 22720, OrderSequenceNumber: ^uint64(41)}

	raw, err := id.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, OrderIDSize)

	decoded, err := DecodeOrderID(raw)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
	assert.Equal(t, uint64(41), decoded.SequenceNumber())
}

func TestRestingOrderRoundTrip(t *testing.T) {
	order := RestingOrder{
		TraderIndex:                     3,
		NumBaseLots:                     1087,
		LastValidSlot:                   250_000_000,
		LastValidUnixTimestampInSeconds: 1_700_000_000,
	}

	raw, err := order.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, RestingOrderSize)

	decoded, err := DecodeRestingOrder(raw)
	require.NoError(t, err)
	assert.Equal(t, order, decoded)
}

func TestTraderStateRoundTrip(t *testing.T) {
	state := TraderState{
		QuoteLotsLocked: 10,
		QuoteLotsFree:   20,
		BaseLotsLocked:  30,
		BaseLotsFree:    40,
	}

	raw, err := state.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, TraderStateSize)

	decoded, err := DecodeTraderState(raw)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestDecodeShortBuffers(t *testing.T) {
	_, err := DecodeOrderID(make([]byte, OrderIDSize-1))
	assert.Error(t, err)

	_, err = DecodeRestingOrder(make([]byte, RestingOrderSize-1))
	assert.Error(t, err)

	_, err = DecodeTraderState(make([]byte, TraderStateSize-1))
	assert.Error(t, err)
}
