package structure

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrBufferTooSmall = errors.New("the tree buffer is too small")
	ErrFreeListCycle  = errors.New("free list traversal exceeded the slot capacity")
)

const (
	// treeMetadataSize is the opaque red-black tree header preceding the allocator.
	treeMetadataSize = 16

	// allocatorSizeSize is the fixed-width allocator size field.
	allocatorSizeSize = 8

	// registerBytes is the per-node link/metadata region: four 4-byte words.
	// Register 0 of a freed node holds the 1-indexed address of the next free node.
	registerBytes = 16
)

// Entry is one live key/value pair decoded from the arena.
// Key and Value alias the input buffer and must not be mutated.
type Entry struct {
	Key   []byte
	Value []byte

	// Address is the node's 1-based allocator address. Other records in the
	// account (e.g. resting-order trader indices) reference nodes by this value.
	Address uint32
}

// Tree is the decoded form of a serialized arena tree: the live entries in
// slot order plus the set of addresses currently on the free list.
type Tree struct {
	Entries []Entry
	Free    map[uint32]struct{}
}

// SlotSize returns the byte width of one arena node for the given key and
// value widths.
func SlotSize(keySize, valueSize int) int {
	return registerBytes + keySize + valueSize
}

// Size returns the byte width of a serialized tree holding capacity nodes.
func Size(capacity, keySize, valueSize int) int {
	return treeMetadataSize + allocatorSizeSize + 8 + capacity*SlotSize(keySize, valueSize)
}

// DecodeTree decodes a serialized arena tree. The layout is: a 16-byte tree
// metadata block, an 8-byte allocator size field, a 4-byte signed bump index,
// a 4-byte signed free-list head, then bumpIndex-1 node slots. Slot i holds
// allocator address i+1; the allocator is 1-indexed and the bump index is its
// high-water mark.
//
// Live entries are the scanned slots whose address is not reachable from the
// free-list head. The traversal is bounded by the slot count; exceeding the
// bound means the free list is cyclic and the data is corrupted.
func DecodeTree(data []byte, keySize, valueSize int) (*Tree, error) {
	headerSize := treeMetadataSize + allocatorSizeSize + 8
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: need %d header bytes, have %d", ErrBufferTooSmall, headerSize, len(data))
	}

	offset := treeMetadataSize + allocatorSizeSize
	bumpIndex := int32(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4
	freeListHead := int32(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4

	numSlots := int(bumpIndex) - 1
	if numSlots < 0 {
		numSlots = 0
	}

	slotSize := SlotSize(keySize, valueSize)
	scanned := make([]Entry, 0, numSlots)
	freeLinks := make([]int32, 0, numSlots)

	for i := 0; i < numSlots && offset+slotSize <= len(data); i++ {
		// Register 0 doubles as the next-free pointer when the slot is freed.
		// Registers 1-3 are tree links and are opaque to the decode.
		link := int32(binary.LittleEndian.Uint32(data[offset:]))
		keyStart := offset + registerBytes
		valueStart := keyStart + keySize

		scanned = append(scanned, Entry{
			Key:     data[keyStart:valueStart],
			Value:   data[valueStart : valueStart+valueSize],
			Address: uint32(i + 1),
		})
		freeLinks = append(freeLinks, link)
		offset += slotSize
	}

	free := make(map[uint32]struct{})
	head := freeListHead
	for steps := 0; head > 0 && head < bumpIndex; steps++ {
		if steps > len(freeLinks) {
			return nil, fmt.Errorf("%w: head %d after %d visits", ErrFreeListCycle, head, steps)
		}
		slot := int(head) - 1
		if slot >= len(freeLinks) {
			// The pointer escaped the scanned region; the buffer was truncated
			// below the bump index.
			return nil, fmt.Errorf("%w: free pointer %d beyond %d scanned slots", ErrBufferTooSmall, head, len(freeLinks))
		}
		free[uint32(head)] = struct{}{}
		head = freeLinks[slot]
	}

	live := make([]Entry, 0, len(scanned)-len(free))
	for _, e := range scanned {
		if _, ok := free[e.Address]; ok {
			continue
		}
		live = append(live, e)
	}

	return &Tree{Entries: live, Free: free}, nil
}
