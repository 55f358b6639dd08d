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
	"math"

	"github.com/ethereum/go-ethereum/common"
	cmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

func opAdd(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.Add(&x, y)
	return Continue
}

func opSub(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.Sub(&x, y)
	return Continue
}

func opMul(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.Mul(&x, y)
	return Continue
}

func opDiv(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.Div(&x, y)
	return Continue
}

func opSdiv(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.SDiv(&x, y)
	return Continue
}

func opMod(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.Mod(&x, y)
	return Continue
}

func opSmod(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.SMod(&x, y)
	return Continue
}

func opAddmod(m *Machine, host Host) Status {
	x, y, z := m.stack.Pop(), m.stack.Pop(), m.stack.Peek()
	z.AddMod(&x, &y, z)
	return Continue
}

func opMulmod(m *Machine, host Host) Status {
	x, y, z := m.stack.Pop(), m.stack.Pop(), m.stack.Peek()
	z.MulMod(&x, &y, z)
	return Continue
}

func opExp(m *Machine, host Host) Status {
	base, exponent := m.stack.Pop(), m.stack.Peek()
	// Charged by the byte length of the exponent, on top of the operation's
	// constant cost.
	expByteLen := uint64((exponent.BitLen() + 7) / 8)
	if !m.gas.UseGas(expByteLen * params.ExpByteEIP158) {
		return OutOfGas
	}
	exponent.Exp(&base, exponent)
	return Continue
}

func opSignExtend(m *Machine, host Host) Status {
	back, num := m.stack.Pop(), m.stack.Peek()
	num.ExtendSign(num, &back)
	return Continue
}

func opNot(m *Machine, host Host) Status {
	x := m.stack.Peek()
	x.Not(x)
	return Continue
}

func opLt(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue
}

func opGt(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue
}

func opSlt(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue
}

func opSgt(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue
}

func opEq(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue
}

func opIszero(m *Machine, host Host) Status {
	x := m.stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return Continue
}

func opAnd(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.And(&x, y)
	return Continue
}

func opOr(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.Or(&x, y)
	return Continue
}

func opXor(m *Machine, host Host) Status {
	x, y := m.stack.Pop(), m.stack.Peek()
	y.Xor(&x, y)
	return Continue
}

func opByte(m *Machine, host Host) Status {
	th, val := m.stack.Pop(), m.stack.Peek()
	val.Byte(&th)
	return Continue
}

// opSHL implements Shift Left
// The SHL instruction (shift left) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the left by arg1 number of bits.
func opSHL(m *Machine, host Host) Status {
	shift, value := m.stack.Pop(), m.stack.Peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return Continue
}

// opSHR implements Logical Shift Right
// The SHR instruction (logical shift right) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the right by arg1 number of bits with zero fill.
func opSHR(m *Machine, host Host) Status {
	shift, value := m.stack.Pop(), m.stack.Peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return Continue
}

// opSAR implements Arithmetic Shift Right
// The SAR instruction (arithmetic shift right) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the right by arg1 number of bits with sign extension.
func opSAR(m *Machine, host Host) Status {
	shift, value := m.stack.Pop(), m.stack.Peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			// Max negative shift: all bits set
			value.SetAllOne()
		}
		return Continue
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
	return Continue
}

func opKeccak256(m *Machine, host Host) Status {
	offset, size := m.stack.Pop(), m.stack.Peek()
	wordGas, overflow := cmath.SafeMul(toWordSize(size.Uint64()), params.Keccak256WordGas)
	if overflow || !m.gas.UseGas(wordGas) {
		return OutOfGas
	}
	data := m.memory.GetPtr(offset.Uint64(), size.Uint64())
	size.SetBytes(crypto.Keccak256(data))
	return Continue
}

func opAddress(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int).SetBytes(m.contract.Address().Bytes()))
	return Continue
}

func opCaller(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int).SetBytes(m.contract.Caller().Bytes()))
	return Continue
}

func opCallValue(m *Machine, host Host) Status {
	m.stack.Push(m.contract.Value())
	return Continue
}

func opCallDataLoad(m *Machine, host Host) Status {
	x := m.stack.Peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := getData(m.contract.Input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return Continue
}

func opCallDataSize(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int).SetUint64(uint64(len(m.contract.Input))))
	return Continue
}

func opCallDataCopy(m *Machine, host Host) Status {
	var (
		memOffset  = m.stack.Pop()
		dataOffset = m.stack.Pop()
		length     = m.stack.Pop()
	)
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = math.MaxUint64
	}
	// These values are checked for overflow during memory expansion calculation
	memOffset64 := memOffset.Uint64()
	length64 := length.Uint64()
	wordGas, overflow := copyGas(length64)
	if overflow || !m.gas.UseGas(wordGas) {
		return OutOfGas
	}
	m.memory.Set(memOffset64, length64, getData(m.contract.Input, dataOffset64, length64))
	return Continue
}

func opCodeSize(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int).SetUint64(m.contract.CodeSize()))
	return Continue
}

func opCodeCopy(m *Machine, host Host) Status {
	var (
		memOffset  = m.stack.Pop()
		codeOffset = m.stack.Pop()
		length     = m.stack.Pop()
	)
	uint64CodeOffset, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		uint64CodeOffset = math.MaxUint64
	}
	wordGas, overflow := copyGas(length.Uint64())
	if overflow || !m.gas.UseGas(wordGas) {
		return OutOfGas
	}
	codeCopy := getData(m.contract.Code, uint64CodeOffset, length.Uint64())
	m.memory.Set(memOffset.Uint64(), length.Uint64(), codeCopy)
	return Continue
}

func opReturnDataSize(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int).SetUint64(uint64(len(m.returnData))))
	return Continue
}

func opReturnDataCopy(m *Machine, host Host) Status {
	var (
		memOffset  = m.stack.Pop()
		dataOffset = m.stack.Pop()
		length     = m.stack.Pop()
	)
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return Failure
	}
	end := new(uint256.Int).Add(&dataOffset, &length)
	end64, overflow := end.Uint64WithOverflow()
	if overflow || uint64(len(m.returnData)) < end64 {
		return Failure
	}
	wordGas, overflow := copyGas(length.Uint64())
	if overflow || !m.gas.UseGas(wordGas) {
		return OutOfGas
	}
	m.memory.Set(memOffset.Uint64(), length.Uint64(), m.returnData[offset64:end64])
	return Continue
}

func opPop(m *Machine, host Host) Status {
	m.stack.Pop()
	return Continue
}

func opMload(m *Machine, host Host) Status {
	v := m.stack.Peek()
	offset := v.Uint64()
	v.SetBytes(m.memory.GetPtr(offset, 32))
	return Continue
}

func opMstore(m *Machine, host Host) Status {
	mStart, val := m.stack.Pop(), m.stack.Pop()
	m.memory.Set32(mStart.Uint64(), &val)
	return Continue
}

func opMstore8(m *Machine, host Host) Status {
	off, val := m.stack.Pop(), m.stack.Pop()
	m.memory.store[off.Uint64()] = byte(val.Uint64())
	return Continue
}

func opMsize(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int).SetUint64(uint64(m.memory.Len())))
	return Continue
}

func opSload(m *Machine, host Host) Status {
	loc := m.stack.Peek()
	val := host.GetStorage(m.contract.Address(), loc.Bytes32())
	loc.SetBytes(val.Bytes())
	return Continue
}

func opSstore(m *Machine, host Host) Status {
	if m.static {
		return WriteProtection
	}
	loc, val := m.stack.Pop(), m.stack.Pop()
	var (
		addr    = m.contract.Address()
		key     = loc.Bytes32()
		current = host.GetStorage(addr, key)
	)
	var (
		cost     uint64
		clearing bool
	)
	if current == (common.Hash{}) && !val.IsZero() {
		cost = params.SstoreSetGas
	} else {
		cost = params.SstoreResetGas
		clearing = current != (common.Hash{}) && val.IsZero()
	}
	if !m.gas.UseGas(cost) {
		return OutOfGas
	}
	// The clearing refund is credited only once the write is paid for; a
	// frame that dies on the charge must not carry the credit.
	if clearing {
		m.gas.AddRefund(int64(params.SstoreRefundGas))
	}
	host.SetStorage(addr, key, val.Bytes32())
	return Continue
}

func opJump(m *Machine, host Host) Status {
	pos := m.stack.Pop()
	if !m.contract.ValidJumpdest(&pos) {
		return InvalidJump
	}
	m.pc = pos.Uint64()
	return Continue
}

func opJumpi(m *Machine, host Host) Status {
	pos, cond := m.stack.Pop(), m.stack.Pop()
	if !cond.IsZero() {
		if !m.contract.ValidJumpdest(&pos) {
			return InvalidJump
		}
		m.pc = pos.Uint64()
	}
	return Continue
}

func opJumpdest(m *Machine, host Host) Status {
	return Continue
}

func opPc(m *Machine, host Host) Status {
	// pc has already been advanced past the instruction byte.
	m.stack.Push(new(uint256.Int).SetUint64(m.pc - 1))
	return Continue
}

func opGas(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int).SetUint64(m.gas.Remaining()))
	return Continue
}

// opPush0 implements the PUSH0 opcode
func opPush0(m *Machine, host Host) Status {
	m.stack.Push(new(uint256.Int))
	return Continue
}

// makePush creates a push instruction of the given immediate size. The code
// buffer is padded past a truncated trailing push, so the common case reads
// the immediate without a bounds check; the clamping below only matters for
// a program counter placed by hand into immediate data.
func makePush(size uint64) executionFunc {
	pushByteSize := int(size)
	return func(m *Machine, host Host) Status {
		var (
			codeLen = len(m.contract.Code)
			start   = int(m.pc)
		)
		if start > codeLen {
			start = codeLen
		}
		end := start + pushByteSize
		if end > codeLen {
			end = codeLen
		}
		integer := new(uint256.Int)
		m.stack.Push(integer.SetBytes(common.RightPadBytes(m.contract.Code[start:end], pushByteSize)))
		m.pc += size
		return Continue
	}
}

// makeDup creates a DUP instruction
func makeDup(size int) executionFunc {
	return func(m *Machine, host Host) Status {
		m.stack.dup(size)
		return Continue
	}
}

// makeSwap creates a SWAP instruction
func makeSwap(size int) executionFunc {
	// switch n + 1 otherwise n would be swapped with n
	size++
	return func(m *Machine, host Host) Status {
		m.stack.swap(size)
		return Continue
	}
}

func opStop(m *Machine, host Host) Status {
	return Stopped
}

func opReturn(m *Machine, host Host) Status {
	offset, size := m.stack.Pop(), m.stack.Pop()
	m.setReturnRange(offset.Uint64(), size.Uint64())
	return Returned
}

func opRevert(m *Machine, host Host) Status {
	offset, size := m.stack.Pop(), m.stack.Pop()
	m.setReturnRange(offset.Uint64(), size.Uint64())
	return Reverted
}

func opInvalid(m *Machine, host Host) Status {
	return OpcodeNotFound
}
