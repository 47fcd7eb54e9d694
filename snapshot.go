package phoenix

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/huandu/skiplist"

	"github.com/solbook/phoenix-go/protocol"
	"github.com/solbook/phoenix-go/structure"
)

// Market is a fully decoded, immutable snapshot of one market account.
// A refresh produces an entirely new Market; nothing is mutated in place, so
// a snapshot may be shared freely across goroutines.
type Market struct {
	Header protocol.MarketHeader

	BaseLotsPerBaseUnit         uint64
	QuoteLotsPerBaseUnitPerTick uint64
	OrderSequenceNumber         uint64
	TakerFeeBps                 uint64
	CollectedQuoteLotFees       uint64
	UnclaimedQuoteLotFees       uint64

	// Bids are ordered by strictly decreasing price, ties broken by
	// increasing arrival; Asks by strictly increasing price, same tie rule.
	Bids []BookEntry
	Asks []BookEntry

	Traders map[solana.PublicKey]protocol.TraderState

	traderIndexes map[solana.PublicKey]uint32
	traderPubkeys map[uint32]solana.PublicKey

	scale MarketScale
}

// DecodeOption customizes a market decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	expectedDiscriminant uint64
}

// WithExpectedDiscriminant pins the account schema the caller expects; the
// decode fails with ErrDiscriminant when the header carries anything else.
func WithExpectedDiscriminant(discriminant uint64) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.expectedDiscriminant = discriminant
	}
}

// DecodeMarket decodes a raw market account buffer into a Market snapshot.
// It fails if the buffer is shorter than the extents implied by the header's
// tree capacities, if any scale constant is zero, or if a tree's free list is
// cyclic. It never returns a partial snapshot.
func DecodeMarket(data []byte, opts ...DecodeOption) (*Market, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	header, err := protocol.DecodeMarketHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferTooSmall, err)
	}
	if cfg.expectedDiscriminant != 0 && header.Discriminant != cfg.expectedDiscriminant {
		return nil, fmt.Errorf("%w: have %#x, want %#x", ErrDiscriminant, header.Discriminant, cfg.expectedDiscriminant)
	}

	offset := protocol.MarketHeaderSize + protocol.HeaderPaddingSize
	if len(data) < offset+protocol.MarketScalarsSize {
		return nil, fmt.Errorf("%w: need %d bytes for market scalars, have %d",
			ErrBufferTooSmall, offset+protocol.MarketScalarsSize, len(data))
	}

	market := &Market{Header: *header}
	for _, field := range []*uint64{
		&market.BaseLotsPerBaseUnit,
		&market.QuoteLotsPerBaseUnitPerTick,
		&market.OrderSequenceNumber,
		&market.TakerFeeBps,
		&market.CollectedQuoteLotFees,
		&market.UnclaimedQuoteLotFees,
	} {
		*field = binary.LittleEndian.Uint64(data[offset:])
		offset += 8
	}

	if err := validateScaleConstants(market); err != nil {
		return nil, err
	}

	size := header.MarketSizeParams
	available := len(data) - offset
	bidsLen, err := treeExtent(size.BidsSize, protocol.OrderIDSize, protocol.RestingOrderSize, available)
	if err != nil {
		return nil, err
	}
	asksLen, err := treeExtent(size.AsksSize, protocol.OrderIDSize, protocol.RestingOrderSize, available)
	if err != nil {
		return nil, err
	}
	tradersLen, err := treeExtent(size.NumSeats, 32, protocol.TraderStateSize, available)
	if err != nil {
		return nil, err
	}
	if offset+bidsLen+asksLen+tradersLen > len(data) {
		return nil, fmt.Errorf("%w: header implies %d tree bytes, buffer has %d",
			ErrCorrupted, bidsLen+asksLen+tradersLen, len(data)-offset)
	}

	market.Bids, err = decodeBookSide(data[offset:offset+bidsLen], Bid)
	if err != nil {
		return nil, fmt.Errorf("%w: bids tree: %v", ErrCorrupted, err)
	}
	offset += bidsLen

	market.Asks, err = decodeBookSide(data[offset:offset+asksLen], Ask)
	if err != nil {
		return nil, fmt.Errorf("%w: asks tree: %v", ErrCorrupted, err)
	}
	offset += asksLen

	if err := market.decodeTraders(data[offset : offset+tradersLen]); err != nil {
		return nil, fmt.Errorf("%w: traders tree: %v", ErrCorrupted, err)
	}

	market.scale = NewMarketScale(&market.Header, market.BaseLotsPerBaseUnit, market.QuoteLotsPerBaseUnitPerTick)
	return market, nil
}

// treeExtent converts a header-declared tree capacity to a byte length. The
// capacity is bounded in uint64 against the remaining buffer first, so a
// corrupt header cannot overflow the int arithmetic in structure.Size.
func treeExtent(capacity uint64, keySize, valueSize, available int) (int, error) {
	slotSize := uint64(structure.SlotSize(keySize, valueSize))
	if available < 0 || capacity > uint64(available)/slotSize {
		return 0, fmt.Errorf("%w: tree capacity %d exceeds remaining %d bytes",
			ErrCorrupted, capacity, available)
	}
	return structure.Size(int(capacity), keySize, valueSize), nil
}

func validateScaleConstants(m *Market) error {
	for _, check := range []struct {
		name  string
		value uint64
	}{
		{"base_lot_size", m.Header.BaseLotSize},
		{"quote_lot_size", m.Header.QuoteLotSize},
		{"tick_size_in_quote_atoms_per_base_unit", m.Header.TickSizeInQuoteAtomsPerBaseUnit},
		{"raw_base_units_per_base_unit", uint64(m.Header.RawBaseUnitsPerBaseUnit)},
		{"base_lots_per_base_unit", m.BaseLotsPerBaseUnit},
		{"quote_lots_per_base_unit_per_tick", m.QuoteLotsPerBaseUnitPerTick},
	} {
		if check.value == 0 {
			return fmt.Errorf("%w: %s is zero", ErrCorrupted, check.name)
		}
	}
	return nil
}

// decodeBookSide decodes one book tree and returns its live orders sorted
// best-first. Sorting uses the raw order id: the on-chain bid sequence
// numbers are bit-inverted, so raw-descending order on bids (and
// raw-ascending on asks) is exactly price priority with FIFO ties.
func decodeBookSide(data []byte, side Side) ([]BookEntry, error) {
	tree, err := structure.DecodeTree(data, protocol.OrderIDSize, protocol.RestingOrderSize)
	if err != nil {
		return nil, err
	}

	list := newSideList(side)
	for _, entry := range tree.Entries {
		orderID, err := protocol.DecodeOrderID(entry.Key)
		if err != nil {
			return nil, err
		}
		order, err := protocol.DecodeRestingOrder(entry.Value)
		if err != nil {
			return nil, err
		}
		list.Set(orderID, order)
	}

	entries := make([]BookEntry, 0, list.Len())
	for el := list.Front(); el != nil; el = el.Next() {
		entries = append(entries, BookEntry{
			OrderID: el.Key().(protocol.OrderID),
			Order:   el.Value.(protocol.RestingOrder),
		})
	}
	return entries, nil
}

// newSideList creates a skiplist holding one side's orders in best-first
// iteration order.
func newSideList(side Side) *skiplist.SkipList {
	if side == Bid {
		return skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			a, _ := lhs.(protocol.OrderID)
			b, _ := rhs.(protocol.OrderID)

			return -compareRawOrderIDs(a, b)
		}))
	}

	return skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
		a, _ := lhs.(protocol.OrderID)
		b, _ := rhs.(protocol.OrderID)

		return compareRawOrderIDs(a, b)
	}))
}

func compareRawOrderIDs(a, b protocol.OrderID) int {
	if a.PriceInTicks != b.PriceInTicks {
		if a.PriceInTicks < b.PriceInTicks {
			return -1
		}
		return 1
	}

	if a.OrderSequenceNumber != b.OrderSequenceNumber {
		if a.OrderSequenceNumber < b.OrderSequenceNumber {
			return -1
		}
		return 1
	}

	return 0
}

func (m *Market) decodeTraders(data []byte) error {
	tree, err := structure.DecodeTree(data, 32, protocol.TraderStateSize)
	if err != nil {
		return err
	}

	m.Traders = make(map[solana.PublicKey]protocol.TraderState, len(tree.Entries))
	m.traderIndexes = make(map[solana.PublicKey]uint32, len(tree.Entries))
	m.traderPubkeys = make(map[uint32]solana.PublicKey, len(tree.Entries))

	for _, entry := range tree.Entries {
		pubkey := solana.PublicKeyFromBytes(entry.Key)
		state, err := protocol.DecodeTraderState(entry.Value)
		if err != nil {
			return err
		}

		m.Traders[pubkey] = state
		m.traderIndexes[pubkey] = entry.Address
		m.traderPubkeys[entry.Address] = pubkey
	}
	return nil
}

// TraderIndex returns the arena address of a seated trader.
func (m *Market) TraderIndex(trader solana.PublicKey) (uint32, bool) {
	index, ok := m.traderIndexes[trader]
	return index, ok
}

// TraderForIndex resolves an arena address back to the trader's pubkey.
func (m *Market) TraderForIndex(index uint32) (solana.PublicKey, bool) {
	pubkey, ok := m.traderPubkeys[index]
	return pubkey, ok
}

// Scale returns the market's unit conversion constants.
func (m *Market) Scale() MarketScale {
	return m.scale
}
