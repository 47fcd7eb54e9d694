package protocol

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// OrderID is the key of a book tree node. Numeric ordering of the raw fields
// matches the tree's price-time priority: bid sequence numbers are stored
// bit-inverted so that a plain ascending sort of the raw key yields the
// desired order on both sides.
type OrderID struct {
	PriceInTicks uint64

	// OrderSequenceNumber is the raw two's-complement encoding. Use
	// SequenceNumber for the displayable arrival counter.
	OrderSequenceNumber uint64
}

// SequenceNumber reconstructs the displayable, strictly increasing arrival
// counter from the raw encoding: interpret the raw value as a signed 64-bit
// integer; a negative value marks a bid-side order whose bits were inverted,
// and the counter is -(value) - 1. Equivalent to a bitwise NOT of the raw
// value for bids.
func (id OrderID) SequenceNumber() uint64 {
	if signed := int64(id.OrderSequenceNumber); signed < 0 {
		return uint64(-(signed + 1))
	}
	return id.OrderSequenceNumber
}

// RestingOrder is the value of a book tree node.
type RestingOrder struct {
	// TraderIndex is the maker's 1-based arena address in the trader tree.
	TraderIndex uint64

	NumBaseLots uint64

	// LastValidSlot is the last slot the order may match in; 0 means no slot
	// expiry.
	LastValidSlot uint64

	// LastValidUnixTimestampInSeconds is the last second the order may match
	// in; 0 means no time expiry.
	LastValidUnixTimestampInSeconds uint64
}

// IsExpired reports whether the order can no longer match at the given slot
// and unix timestamp. Both bounds are inclusive: an order with
// LastValidSlot == slot is still live.
func (r RestingOrder) IsExpired(slot, unixTimestamp uint64) bool {
	if r.LastValidSlot != 0 && r.LastValidSlot < slot {
		return true
	}
	if r.LastValidUnixTimestampInSeconds != 0 && r.LastValidUnixTimestampInSeconds < unixTimestamp {
		return true
	}
	return false
}

// TraderState is the balance record of one seated trader.
type TraderState struct {
	QuoteLotsLocked uint64
	QuoteLotsFree   uint64
	BaseLotsLocked  uint64
	BaseLotsFree    uint64
	Padding         [8]uint64
}

// DecodeOrderID decodes a book tree key.
func DecodeOrderID(data []byte) (OrderID, error) {
	var id OrderID
	if len(data) < OrderIDSize {
		return id, fmt.Errorf("order id needs %d bytes, have %d", OrderIDSize, len(data))
	}
	if err := bin.NewBinDecoder(data).Decode(&id); err != nil {
		return id, fmt.Errorf("decode order id: %w", err)
	}
	return id, nil
}

// DecodeRestingOrder decodes a book tree value.
func DecodeRestingOrder(data []byte) (RestingOrder, error) {
	var order RestingOrder
	if len(data) < RestingOrderSize {
		return order, fmt.Errorf("resting order needs %d bytes, have %d", RestingOrderSize, len(data))
	}
	if err := bin.NewBinDecoder(data).Decode(&order); err != nil {
		return order, fmt.Errorf("decode resting order: %w", err)
	}
	return order, nil
}

// DecodeTraderState decodes a trader tree value.
func DecodeTraderState(data []byte) (TraderState, error) {
	var state TraderState
	if len(data) < TraderStateSize {
		return state, fmt.Errorf("trader state needs %d bytes, have %d", TraderStateSize, len(data))
	}
	if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
		return state, fmt.Errorf("decode trader state: %w", err)
	}
	return state, nil
}

// MarshalBinary encodes the order id in its on-chain layout.
func (id OrderID) MarshalBinary() ([]byte, error) { return encodeFixed(id) }

// MarshalBinary encodes the resting order in its on-chain layout.
func (r RestingOrder) MarshalBinary() ([]byte, error) { return encodeFixed(r) }

// MarshalBinary encodes the trader state in its on-chain layout.
func (s TraderState) MarshalBinary() ([]byte, error) { return encodeFixed(s) }
