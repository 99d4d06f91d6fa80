package settlement

import (
	"errors"
	"fmt"
)

// ErrBalanceMismatch is matched by every BalanceMismatchError
var ErrBalanceMismatch = errors.New("balance mismatch")

// BalanceMismatchError reports that final chips do not add up to the chips in play
type BalanceMismatchError struct {
	TotalFinalChips int64
	TotalBuyIn      int64
}

// Error implements the error interface
func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("balance mismatch: total final chips (%d) do not equal total net buy-ins (%d)",
		e.TotalFinalChips, e.TotalBuyIn)
}

// Is lets errors.Is match ErrBalanceMismatch
func (e *BalanceMismatchError) Is(target error) bool {
	return target == ErrBalanceMismatch
}

// Difference returns final chips minus buy-ins; positive means too many chips were counted
func (e *BalanceMismatchError) Difference() int64 {
	return e.TotalFinalChips - e.TotalBuyIn
}
