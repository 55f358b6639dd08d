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

	"github.com/holiman/uint256"
)

var stackPool = sync.Pool{
	New: func() any {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is an object for basic stack operations. Items popped to the stack
// are expected not to be changed and modified. Depth bounds (at most
// params.StackLimit entries) are enforced by the dispatch table, not here.
type Stack struct {
	data []uint256.Int
}

func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Data returns the underlying slice. Callers must not grow or shrink it.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

// Push places d on top of the stack. The value is copied.
func (st *Stack) Push(d *uint256.Int) {
	// NOTE push limit (1024) is checked in baseCheck
	st.data = append(st.data, *d)
}

// Pop removes and returns the top element.
func (st *Stack) Pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

// Len returns the number of elements on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

func (st *Stack) swap(n int) {
	st.data[st.Len()-n], st.data[st.Len()-1] = st.data[st.Len()-1], st.data[st.Len()-n]
}

func (st *Stack) dup(n int) {
	st.data = append(st.data, st.data[st.Len()-n])
}

// Peek returns the top element without removing it.
func (st *Stack) Peek() *uint256.Int {
	return &st.data[st.Len()-1]
}

// Back returns the n'th item in stack counted from the top.
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[st.Len()-n-1]
}
