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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func newTestContract(code []byte) *Contract {
	return NewContract(common.Address{}, common.Address{1}, new(uint256.Int), code, common.Hash{})
}

func TestContractCodePadding(t *testing.T) {
	// PUSH3 declares three bytes of immediate data but only one is
	// present, so the buffer grows by two zero bytes
	code := []byte{byte(CODESIZE), byte(PUSH3), 0x00}
	c := newTestContract(code)

	require.Equal(t, uint64(3), c.CodeSize())
	require.Len(t, c.Code, 5)
	require.Equal(t, []byte{0x00, 0x00}, c.Code[3:])

	// a complete trailing push leaves the buffer alone
	code = []byte{byte(CODESIZE), byte(PUSH1), 0x00}
	c = newTestContract(code)
	require.Equal(t, uint64(3), c.CodeSize())
	require.Len(t, c.Code, 3)
}

func TestContractValidJumpdest(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(PUSH1), byte(JUMPDEST), byte(STOP)}
	c := newTestContract(code)

	require.True(t, c.ValidJumpdest(uint256.NewInt(0)))
	// position 2 holds a JUMPDEST byte, but it is push immediate data
	require.False(t, c.ValidJumpdest(uint256.NewInt(2)))
	// position 3 is code, but not a JUMPDEST
	require.False(t, c.ValidJumpdest(uint256.NewInt(3)))
	require.False(t, c.ValidJumpdest(uint256.NewInt(4)))

	overflow := new(uint256.Int).Lsh(uint256.NewInt(1), 64)
	require.False(t, c.ValidJumpdest(overflow))
}

func TestContractJumpdestInPadding(t *testing.T) {
	// the padded region exists in the code buffer but is never a valid
	// jump target, even though it decodes as STOP
	code := []byte{byte(PUSH2), byte(JUMPDEST)}
	c := newTestContract(code)
	require.Len(t, c.Code, 3)

	require.False(t, c.ValidJumpdest(uint256.NewInt(1)))
	require.False(t, c.ValidJumpdest(uint256.NewInt(2)))
}

func TestContractOpcodeAt(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, 0x0c, byte(STOP)}
	c := newTestContract(code)

	op, status := c.opcodeAt(0)
	require.Equal(t, PUSH1, op)
	require.Equal(t, Continue, status)

	// 0x0c is not assigned to any instruction
	_, status = c.opcodeAt(2)
	require.Equal(t, OpcodeNotFound, status)

	// out of code
	op, status = c.opcodeAt(uint64(len(code)))
	require.Equal(t, STOP, op)
	require.Equal(t, Stopped, status)
}

func TestContractAnalysisCache(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(PUSH1), 0x00, byte(STOP)}
	hash := crypto.Keccak256Hash(code)

	c1 := NewContract(common.Address{}, common.Address{1}, new(uint256.Int), code, hash)
	require.True(t, analysisCache.Contains(hash))

	c2 := NewContract(common.Address{}, common.Address{2}, new(uint256.Int), code, hash)
	require.True(t, c1.ValidJumpdest(uint256.NewInt(0)))
	require.True(t, c2.ValidJumpdest(uint256.NewInt(0)))
}

func TestContractPool(t *testing.T) {
	code := []byte{byte(PUSH1), 0x2a, byte(STOP)}
	c := GetContract(common.Address{1}, common.Address{2}, uint256.NewInt(7), code, common.Hash{})
	require.Equal(t, common.Address{1}, c.Caller())
	require.Equal(t, common.Address{2}, c.Address())
	require.Equal(t, uint64(7), c.Value().Uint64())
	require.Equal(t, uint64(3), c.CodeSize())
	ReturnContract(c)

	// a recycled contract must not leak the previous frame's code
	c2 := GetContract(common.Address{3}, common.Address{4}, new(uint256.Int), nil, common.Hash{})
	require.Equal(t, uint64(0), c2.CodeSize())
	require.Empty(t, c2.Code)
	ReturnContract(c2)
}
