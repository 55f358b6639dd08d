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
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var contractPool = sync.Pool{
	New: func() any {
		return &Contract{}
	},
}

// GetContract returns a pooled contract initialized for a new frame. It is
// equivalent to NewContract but recycles the allocation; callers pair it
// with ReturnContract when the frame is done.
func GetContract(caller, address common.Address, value *uint256.Int, code []byte, codeHash common.Hash) *Contract {
	contract := contractPool.Get().(*Contract)
	contractPoolGetCounter.Inc(1)

	contract.caller = caller
	contract.address = address
	contract.value = value
	contract.Input = nil
	contract.setCode(code, codeHash)

	return contract
}

// ReturnContract releases a contract back to the pool. The contract must
// not be used afterwards.
func ReturnContract(contract *Contract) {
	if contract == nil {
		return
	}
	contract.Code = nil
	contract.Input = nil
	contract.analysis = nil
	contractPoolPutCounter.Inc(1)
	contractPool.Put(contract)
}
