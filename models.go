package phoenix

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solbook/phoenix-go/protocol"
)

// Side represents the book side an order rests on.
type Side int8

const (
	Bid Side = 1
	Ask Side = 2
)

func (s Side) String() string {
	switch s {
	case Bid:
		return "bid"
	case Ask:
		return "ask"
	default:
		return "unknown"
	}
}

// Opposite returns the side a taker order matches against.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

// BookEntry pairs an order id with its resting order.
type BookEntry struct {
	OrderID protocol.OrderID
	Order   protocol.RestingOrder
}

// LadderLevel is one aggregated price level in raw market units.
type LadderLevel struct {
	PriceInTicks   uint64 `json:"price_in_ticks"`
	SizeInBaseLots uint64 `json:"size_in_base_lots"`
}

// Ladder is the price-aggregated L2 view of a market in raw units. Bid
// prices strictly decrease, ask prices strictly increase.
type Ladder struct {
	Bids []LadderLevel `json:"bids"`
	Asks []LadderLevel `json:"asks"`
}

// UiLadderLevel is one aggregated price level converted for display. The
// float64 fields use floating-point division and are not settlement-accurate.
type UiLadderLevel struct {
	// Price is in quote units per raw base unit.
	Price float64 `json:"price"`

	// Quantity is in raw base units.
	Quantity float64 `json:"quantity"`
}

// UiLadder is the display-unit L2 view of a market.
type UiLadder struct {
	Bids []UiLadderLevel `json:"bids"`
	Asks []UiLadderLevel `json:"asks"`
}

// L3Order is one live resting order with its maker identity.
type L3Order struct {
	PriceInTicks   uint64 `json:"price_in_ticks"`
	Side           Side   `json:"side"`
	SizeInBaseLots uint64 `json:"size_in_base_lots"`

	// MakerPubkey is the zero key when the order's trader index resolves to
	// no live seat; treat that as a data-integrity signal.
	MakerPubkey solana.PublicKey `json:"maker_pubkey"`

	// OrderSequenceNumber is the displayable arrival counter.
	OrderSequenceNumber uint64 `json:"order_sequence_number"`

	LastValidSlot                   uint64 `json:"last_valid_slot,omitempty"`
	LastValidUnixTimestampInSeconds uint64 `json:"last_valid_unix_timestamp_in_seconds,omitempty"`
}

// L3Book is the per-order view of a market in raw units.
type L3Book struct {
	Bids []L3Order `json:"bids"`
	Asks []L3Order `json:"asks"`
}

// L3UiOrder is one live resting order converted for display.
type L3UiOrder struct {
	Price               float64          `json:"price"`
	Side                Side             `json:"side"`
	Size                float64          `json:"size"`
	MakerPubkey         solana.PublicKey `json:"maker_pubkey"`
	OrderSequenceNumber uint64           `json:"order_sequence_number"`
}

// L3UiBook is the per-order view of a market in display units.
type L3UiBook struct {
	Bids []L3UiOrder `json:"bids"`
	Asks []L3UiOrder `json:"asks"`
}
