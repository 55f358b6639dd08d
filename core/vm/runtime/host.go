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

package runtime

import (
	"github.com/ethereum/go-ethereum/common"
)

// InMemoryHost is a map-backed implementation of vm.Host. It is not safe
// for concurrent use.
type InMemoryHost struct {
	storage map[common.Address]map[common.Hash]common.Hash
}

// NewInMemoryHost returns an empty host.
func NewInMemoryHost() *InMemoryHost {
	return &InMemoryHost{
		storage: make(map[common.Address]map[common.Hash]common.Hash),
	}
}

// GetStorage returns the value of the addressed slot, or the zero hash.
func (h *InMemoryHost) GetStorage(addr common.Address, key common.Hash) common.Hash {
	return h.storage[addr][key]
}

// SetStorage writes value to the addressed slot. Writing the zero hash
// deletes the slot.
func (h *InMemoryHost) SetStorage(addr common.Address, key common.Hash, value common.Hash) {
	slots := h.storage[addr]
	if slots == nil {
		slots = make(map[common.Hash]common.Hash)
		h.storage[addr] = slots
	}
	if value == (common.Hash{}) {
		delete(slots, key)
		return
	}
	slots[key] = value
}
