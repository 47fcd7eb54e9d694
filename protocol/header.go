// Package protocol defines the binary contracts of the Phoenix on-chain
// program: the market header, the order book node payloads, and the clock
// sysvar. All layouts are fixed-width little-endian and externally versioned;
// they must be decoded bit-exact and must not drift.
package protocol

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Byte widths of the fixed layouts.
const (
	// MarketHeaderSize covers the header fields up to and including the
	// trailing alignment word. A 256-byte padding region follows it in the
	// account, then six 8-byte market scalars, then the three trees.
	MarketHeaderSize  = 320
	HeaderPaddingSize = 256
	MarketScalarsSize = 48

	OrderIDSize      = 16
	RestingOrderSize = 32
	TraderStateSize  = 96
)

// MarketSizeParams fixes the arena capacities of the three market trees.
type MarketSizeParams struct {
	BidsSize uint64
	AsksSize uint64
	NumSeats uint64
}

// TokenParams describes one leg of the market pair.
type TokenParams struct {
	// Decimals is the token mint's decimal count.
	Decimals uint32

	// VaultBump is the bump seed of the vault program address.
	VaultBump uint32

	MintKey  solana.PublicKey
	VaultKey solana.PublicKey
}

// MarketHeader is the fixed-layout record at the start of every market
// account.
type MarketHeader struct {
	// Discriminant identifies the account schema version. Callers that pin a
	// program build should verify it before trusting the rest of the decode.
	Discriminant uint64

	Status uint64

	MarketSizeParams MarketSizeParams

	BaseParams  TokenParams
	BaseLotSize uint64

	QuoteParams  TokenParams
	QuoteLotSize uint64

	// TickSizeInQuoteAtomsPerBaseUnit is the price increment: quote atoms per
	// base unit per tick.
	TickSizeInQuoteAtomsPerBaseUnit uint64

	Authority            solana.PublicKey
	FeeRecipient         solana.PublicKey
	MarketSequenceNumber uint64
	Successor            solana.PublicKey

	// RawBaseUnitsPerBaseUnit scales display base units for tokens whose
	// atomic supply is too granular to quote directly (1 for most markets).
	RawBaseUnitsPerBaseUnit uint32

	Padding uint32
}

// DecodeMarketHeader decodes the header from the start of a market account
// buffer.
func DecodeMarketHeader(data []byte) (*MarketHeader, error) {
	if len(data) < MarketHeaderSize {
		return nil, fmt.Errorf("market header needs %d bytes, have %d", MarketHeaderSize, len(data))
	}

	var header MarketHeader
	if err := bin.NewBinDecoder(data).Decode(&header); err != nil {
		return nil, fmt.Errorf("decode market header: %w", err)
	}
	return &header, nil
}

// MarshalBinary encodes the header in its on-chain layout. Used by tests and
// tooling that fabricate market accounts.
func (h *MarketHeader) MarshalBinary() ([]byte, error) {
	return encodeFixed(h)
}

func encodeFixed(v any) ([]byte, error) {
	buf, err := bin.MarshalBin(v)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
