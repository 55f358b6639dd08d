// Copyright 2025 The evmach Authors
// This file is part of the evmach library.
//
// The evmach library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmach library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmach library. If not, see <http://www.gnu.org/licenses/>.

package vm

import "github.com/ethereum/go-ethereum/common/math"

// Gas cost tiers shared by the reference instruction table.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
)

// Gas is the resource ledger of one frame. It knows nothing about opcodes
// or control flow: it tracks explicit instruction costs and the memory
// expansion high-water cost against a fixed limit, accumulates advisory
// refund credits, and settles a completed child frame into its parent.
//
// The invariant allUsed == used + memory holds at all times; allUsed is the
// single quantity compared against the limit.
type Gas struct {
	limit   uint64
	used    uint64
	memory  uint64
	allUsed uint64

	// refunded is signed: settlement elsewhere may erase credits.
	refunded int64
}

// NewGas returns a ledger for a frame with the given gas limit.
func NewGas(limit uint64) Gas {
	return Gas{limit: limit}
}

// UseGas records an explicit instruction cost. It fails, leaving the ledger
// untouched, when the addition overflows or the total would exceed the
// limit. Every metered operation must call this (or UseMemoryGas) before
// performing its effect and abort with an out-of-gas outcome on failure.
func (g *Gas) UseGas(cost uint64) bool {
	allUsed, overflow := math.SafeAdd(g.allUsed, cost)
	if overflow || g.limit < allUsed {
		return false
	}
	g.used += cost
	g.allUsed = allUsed
	return true
}

// UseMemoryGas records the cost of the largest memory size reached so far.
// A cost at or below the previous high-water mark is a no-op that reports
// success: memory is charged once per new maximum, never per access. On a
// new maximum the charge replaces the previous memory contribution, so the
// combined total becomes used + memCost.
func (g *Gas) UseMemoryGas(memCost uint64) bool {
	if memCost <= g.memory {
		return true
	}
	allUsed, overflow := math.SafeAdd(g.used, memCost)
	if overflow || g.limit < allUsed {
		return false
	}
	g.memory = memCost
	g.allUsed = allUsed
	return true
}

// ReturnGas credits back gas that was previously recorded as used. It is
// the settlement primitive of ReimburseUnspent; callers must never return
// more than was spent.
func (g *Gas) ReturnGas(amount uint64) {
	g.used -= amount
	g.allUsed -= amount
}

// AddRefund accumulates an advisory refund credit. The accumulator is
// signed and may be driven negative by settlement logic outside this core.
func (g *Gas) AddRefund(delta int64) {
	g.refunded += delta
}

// ReimburseUnspent merges a completed child frame's ledger into this one,
// according to how the child exited:
//
//   - success: the child's remaining gas is returned to this frame and its
//     refund credits are merged;
//   - revert: the remaining gas is returned but refunds are discarded;
//   - anything else: the child's entire allotment is forfeit.
func (g *Gas) ReimburseUnspent(exit Status, child *Gas) {
	switch {
	case exit.Succeeded():
		g.ReturnGas(child.Remaining())
		g.AddRefund(child.Refunded())
	case exit.IsRevert():
		g.ReturnGas(child.Remaining())
	}
}

// Limit returns the frame's immutable gas ceiling.
func (g *Gas) Limit() uint64 {
	return g.limit
}

// MemoryGas returns the memory-expansion high-water cost charged so far.
func (g *Gas) MemoryGas() uint64 {
	return g.memory
}

// Refunded returns the accumulated refund credit.
func (g *Gas) Refunded() int64 {
	return g.refunded
}

// Spent returns the combined gas consumed, explicit plus memory.
func (g *Gas) Spent() uint64 {
	return g.allUsed
}

// Remaining returns the gas left below the limit.
func (g *Gas) Remaining() uint64 {
	return g.limit - g.allUsed
}
