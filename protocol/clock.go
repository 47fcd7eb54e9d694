package protocol

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// ClockSize is the byte width of the clock sysvar account data.
const ClockSize = 40

// Clock is the decoded clock sysvar: the current slot and unix timestamp used
// to filter expired orders.
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// DecodeClock decodes the clock sysvar account data.
func DecodeClock(data []byte) (*Clock, error) {
	if len(data) < ClockSize {
		return nil, fmt.Errorf("clock sysvar needs %d bytes, have %d", ClockSize, len(data))
	}

	var clock Clock
	if err := bin.NewBinDecoder(data).Decode(&clock); err != nil {
		return nil, fmt.Errorf("decode clock sysvar: %w", err)
	}
	return &clock, nil
}
