package cpu

import (
	"fmt"
)

// Flags are the condition flags.
//
// Flags are sticky: ADD and SUB only ever set them, and nothing but a
// Reset clears them. Carry is never set by any opcode.
type Flags struct {
	Zero     bool
	Negative bool
	Carry    bool
}

// update sets the flags implied by an arithmetic result.
func (fl *Flags) update(result int64) {
	if result < 0 {
		fl.Negative = true
	}
	if result == 0 {
		fl.Zero = true
	}
}

func (fl Flags) String() string {
	return fmt.Sprintf("ZERO=%v NEGATIVE=%v CARRY=%v", fl.Zero, fl.Negative, fl.Carry)
}
