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
)

// Host supplies the machine's view of external state. Instructions that
// touch storage go through it; everything else the machine computes from
// its own frame.
type Host interface {
	// GetStorage returns the current value of the addressed storage slot.
	GetStorage(addr common.Address, key common.Hash) common.Hash
	// SetStorage writes value to the addressed storage slot.
	SetStorage(addr common.Address, key common.Hash, value common.Hash)
}

// EvalFunc evaluates a single decoded instruction against the machine. The
// program counter has already been advanced past op when it is invoked, so
// instructions with immediates consume them by advancing pc further, and
// jumps set pc absolutely.
type EvalFunc func(m *Machine, op OpCode, host Host) Status

// Inspector is notified around every instruction of a machine constructed
// with it. Both hooks may override execution by returning a status other
// than Continue.
type Inspector interface {
	// Step is called before the instruction at the current program counter
	// is decoded. A non-Continue result skips the instruction and becomes
	// the step's outcome.
	Step(m *Machine) Status
	// StepEnd is called after the instruction ran, with its resulting
	// status. A non-Continue result replaces that status.
	StepEnd(m *Machine, status Status) Status
}

// Config are the configuration options for the Machine.
type Config struct {
	// Eval replaces the built-in jump-table evaluator when non-nil.
	Eval EvalFunc
	// Inspector enables per-step hooks. The decision is fixed for the
	// machine's lifetime; a nil Inspector costs nothing per step.
	Inspector Inspector
	// Static rejects state-modifying instructions with WriteProtection.
	Static bool
	// Depth is the call depth of the frame, for hosts that nest frames.
	Depth int
}

// noReturn marks a frame that has not produced output, as distinct from one
// that returned zero bytes at offset zero.
const noReturn = math.MaxUint64

// Machine executes the bytecode of a single call frame: one contract, one
// gas ledger, one stack and one memory. Nested calls are frames of their
// own, created by the host and settled into the parent's ledger with
// Gas.ReimburseUnspent.
type Machine struct {
	contract *Contract
	gas      Gas
	stack    *Stack
	memory   *Memory
	pc       uint64

	// returnData holds the output of the most recent child frame, exposed
	// through RETURNDATASIZE and RETURNDATACOPY. returnOffset/returnSize
	// locate this frame's own output in its memory once RETURN or REVERT
	// has run.
	returnData   []byte
	returnOffset uint64
	returnSize   uint64

	eval      EvalFunc
	inspector Inspector
	inspect   bool
	static    bool
	depth     int
}

// NewMachine returns a machine ready to execute the contract's code with
// the given gas limit. The caller owns the contract; Release returns the
// machine's stack and memory to their pools but leaves the contract alone.
func NewMachine(contract *Contract, gasLimit uint64, cfg Config) *Machine {
	m := &Machine{
		contract:     contract,
		gas:          NewGas(gasLimit),
		stack:        newstack(),
		memory:       NewMemory(),
		returnOffset: noReturn,
		eval:         cfg.Eval,
		inspector:    cfg.Inspector,
		inspect:      cfg.Inspector != nil,
		static:       cfg.Static,
		depth:        cfg.Depth,
	}
	if m.eval == nil {
		m.eval = defaultEval
	}
	return m
}

// Step executes the instruction at the current program counter and reports
// how the frame proceeds: Continue to keep going, or a terminal status.
// Running off the end of the code yields Stopped and leaves the machine
// untouched, so calling Step again is harmless.
func (m *Machine) Step(host Host) Status {
	if m.inspect {
		if status := m.inspector.Step(m); status != Continue {
			return status
		}
	}
	op, status := m.contract.opcodeAt(m.pc)
	if status == Continue {
		m.pc++
		status = m.eval(m, op, host)
	}
	if m.inspect {
		if override := m.inspector.StepEnd(m, status); override != Continue {
			status = override
		}
	}
	return status
}

// Run steps the machine until an instruction terminates the frame and
// returns the terminal status. It never returns Continue.
func (m *Machine) Run(host Host) Status {
	machineRunCounter.Inc(1)
	status := Continue
	for status == Continue {
		status = m.Step(host)
	}
	return status
}

// setReturnRange records where RETURN or REVERT placed the frame's output
// in memory. A zero size means no output.
func (m *Machine) setReturnRange(offset, size uint64) {
	if size == 0 {
		m.returnOffset = noReturn
		m.returnSize = 0
		return
	}
	m.returnOffset = offset
	m.returnSize = size
}

// ReturnValue returns a copy of the frame's output, or nil if the frame
// has not produced any.
func (m *Machine) ReturnValue() []byte {
	if m.returnOffset == noReturn || m.returnSize == 0 {
		return nil
	}
	return m.memory.GetCopy(m.returnOffset, m.returnSize)
}

// Release returns the machine's stack and memory to their pools. The
// machine must not be stepped afterwards.
func (m *Machine) Release() {
	if m.stack != nil {
		returnStack(m.stack)
		m.stack = nil
	}
	if m.memory != nil {
		m.memory.Free()
		m.memory = nil
	}
}

// Contract returns the frame's contract.
func (m *Machine) Contract() *Contract {
	return m.contract
}

// Gas returns the frame's gas ledger. The pointer stays valid for the
// machine's lifetime; hosts settle child frames through it.
func (m *Machine) Gas() *Gas {
	return &m.gas
}

// Stack returns the frame's operand stack.
func (m *Machine) Stack() *Stack {
	return m.stack
}

// Memory returns the frame's memory.
func (m *Machine) Memory() *Memory {
	return m.memory
}

// PC returns the current program counter.
func (m *Machine) PC() uint64 {
	return m.pc
}

// SetPC moves the program counter. Meant for hosts and inspectors that
// replay or resume execution.
func (m *Machine) SetPC(pc uint64) {
	m.pc = pc
}

// Depth returns the call depth the frame was created at.
func (m *Machine) Depth() int {
	return m.depth
}

// Static reports whether the frame rejects state modification.
func (m *Machine) Static() bool {
	return m.static
}

// ReturnData returns the output of the most recent child frame.
func (m *Machine) ReturnData() []byte {
	return m.returnData
}

// SetReturnData installs the output of a finished child frame, making it
// visible to RETURNDATASIZE and RETURNDATACOPY.
func (m *Machine) SetReturnData(data []byte) {
	m.returnData = data
}
