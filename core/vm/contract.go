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

import (
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
)

// analysisCacheSize bounds the global code-analysis cache. 4096 analyses of
// average mainnet contract size stay well under 10MB.
const analysisCacheSize = 4096

// analysisCache holds jump-destination analyses keyed by code hash, shared
// by all frames. Contracts constructed without a code hash skip it.
var analysisCache, _ = lru.New[common.Hash, codeAnalysis](analysisCacheSize)

// Contract represents one call frame's code and identity in the scope of
// the machine. The code buffer is padded with zero bytes when analysis
// detects a trailing push instruction whose declared immediate data extends
// past the end of the code, so instruction implementations may read push
// immediates without bounds checks.
type Contract struct {
	caller  common.Address
	address common.Address
	value   *uint256.Int

	// Code is the padded executable bytecode. CodeHash is the hash of the
	// unpadded code, or the zero hash when unknown.
	Code     []byte
	CodeHash common.Hash
	Input    []byte

	// codeLen is the length of the original, unpadded code. Jump
	// destination validity is defined over this range only; positions in
	// the padding region are never valid targets.
	codeLen  uint64
	analysis bitvec
}

// NewContract returns a new contract environment for the execution of EVM
// bytecode. A non-zero codeHash enables reuse of a cached code analysis.
func NewContract(caller, address common.Address, value *uint256.Int, code []byte, codeHash common.Hash) *Contract {
	c := &Contract{
		caller:  caller,
		address: address,
		value:   value,
	}
	c.setCode(code, codeHash)
	return c
}

func (c *Contract) setCode(code []byte, codeHash common.Hash) {
	c.codeLen = uint64(len(code))
	c.CodeHash = codeHash

	var an codeAnalysis
	if codeHash != (common.Hash{}) {
		var ok bool
		if an, ok = analysisCache.Get(codeHash); ok {
			analysisCacheHitCounter.Inc(1)
		} else {
			analysisCacheMissCounter.Inc(1)
			an = analyzeCode(code)
			analysisCache.Add(codeHash, an)
		}
	} else {
		an = analyzeCode(code)
	}
	c.analysis = an.bits

	if an.padding != 0 {
		padded := make([]byte, uint64(len(code))+an.padding)
		copy(padded, code)
		c.Code = padded
	} else {
		c.Code = code
	}
}

// ValidJumpdest reports whether dest is a legal jump target: in range of
// the unpadded code, holding the JUMPDEST opcode, and not inside the
// immediate data of a preceding push instruction.
func (c *Contract) ValidJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	// PC cannot go beyond len(code) and certainly can't be bigger than
	// 63 bits. Don't bother checking for JUMPDEST in that case.
	if overflow || udest >= c.codeLen {
		return false
	}
	// Only JUMPDESTs allowed for destinations
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	return c.analysis.codeSegment(udest)
}

// opcodeAt decodes the instruction at position pc. It reports Stopped when
// pc has run off the end of the code, which is how a frame that never
// executes an explicit halt terminates, and OpcodeNotFound for a byte that
// does not decode to any known opcode.
func (c *Contract) opcodeAt(pc uint64) (OpCode, Status) {
	if pc >= uint64(len(c.Code)) {
		return STOP, Stopped
	}
	op := OpCode(c.Code[pc])
	if !opCodeDefined[op] {
		return op, OpcodeNotFound
	}
	return op, Continue
}

// GetOp returns the n'th element in the contract's byte array.
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// Caller returns the caller of the contract.
func (c *Contract) Caller() common.Address {
	return c.caller
}

// Address returns the contracts address.
func (c *Contract) Address() common.Address {
	return c.address
}

// Value returns the contract's value (sent to it from it's caller).
func (c *Contract) Value() *uint256.Int {
	return c.value
}

// CodeSize returns the length of the original bytecode, not counting the
// zero bytes appended for a truncated trailing push.
func (c *Contract) CodeSize() uint64 {
	return c.codeLen
}
