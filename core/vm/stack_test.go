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

func TestStackPushPop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.Push(uint256.NewInt(1))
	st.Push(uint256.NewInt(2))
	require.Equal(t, 2, st.Len())
	require.Equal(t, uint64(2), st.Peek().Uint64())
	require.Equal(t, uint64(1), st.Back(1).Uint64())

	v := st.Pop()
	require.Equal(t, uint64(2), v.Uint64())
	require.Equal(t, 1, st.Len())
}

func TestStackPushCopies(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	v := uint256.NewInt(7)
	st.Push(v)
	v.SetUint64(9)
	require.Equal(t, uint64(7), st.Peek().Uint64())
}

func TestStackSwapDup(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	for i := uint64(1); i <= 4; i++ {
		st.Push(uint256.NewInt(i))
	}
	// stack is 1 2 3 4, top last

	st.dup(2)
	require.Equal(t, 5, st.Len())
	require.Equal(t, uint64(3), st.Peek().Uint64())

	st.swap(5)
	require.Equal(t, uint64(1), st.Peek().Uint64())
	require.Equal(t, uint64(3), st.Back(4).Uint64())
}

func TestReturnStackResets(t *testing.T) {
	st := newstack()
	st.Push(uint256.NewInt(42))
	returnStack(st)

	st = newstack()
	defer returnStack(st)
	require.Equal(t, 0, st.Len())
}
