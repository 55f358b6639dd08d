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

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestMemorySetResize(t *testing.T) {
	m := NewMemory()
	defer m.Free()

	require.Equal(t, 0, m.Len())
	m.Resize(64)
	require.Equal(t, 64, m.Len())

	m.Set(32, 4, []byte{1, 2, 3, 4})
	require.Equal(t, []byte{1, 2, 3, 4}, m.GetCopy(32, 4))

	// growing keeps existing contents
	m.Resize(128)
	require.Equal(t, []byte{1, 2, 3, 4}, m.GetCopy(32, 4))
}

func TestMemorySet32(t *testing.T) {
	m := NewMemory()
	defer m.Free()
	m.Resize(64)

	m.Set32(16, uint256.NewInt(0x0102))
	buf := m.GetCopy(16, 32)
	require.Equal(t, byte(0x01), buf[30])
	require.Equal(t, byte(0x02), buf[31])
	// leading bytes are zeroed
	require.Equal(t, byte(0), buf[0])
}

func TestMemoryGetCopyIsolated(t *testing.T) {
	m := NewMemory()
	defer m.Free()
	m.Resize(32)
	m.Set(0, 2, []byte{0xaa, 0xbb})

	cpy := m.GetCopy(0, 2)
	cpy[0] = 0x00
	require.Equal(t, byte(0xaa), m.GetPtr(0, 1)[0])

	// zero size yields nothing, whatever the offset
	require.Nil(t, m.GetCopy(1024, 0))
	require.Nil(t, m.GetPtr(1024, 0))
}

func TestMemorySetPanicsUnresized(t *testing.T) {
	m := NewMemory()
	defer m.Free()
	// the dispatch loop resizes before any instruction writes; a write
	// past the backing store is a bug, not an error
	require.Panics(t, func() {
		m.Set(0, 1, []byte{1})
	})
}

func BenchmarkMemoryResize(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m := NewMemory()
		m.Resize(1024)
		m.Free()
	}
}
