package vm

import "math/big"

// frame is one call's local storage: parameters and locals share a
// single contiguous slot array (per the frame-layout design note), so
// LOAD_LOCAL/STORE_LOCAL never need to distinguish the two. returnPC
// of -1 marks the outermost frame (the one synthesized for main),
// whose RET ends the program instead of resuming a caller.
type frame struct {
	slots    []*big.Int
	returnPC int
}

func newFrame(size, returnPC int) *frame {
	slots := make([]*big.Int, size)
	for i := range slots {
		slots[i] = big.NewInt(0)
	}
	return &frame{slots: slots, returnPC: returnPC}
}
