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

import "errors"

// Status is the outcome of a single machine step. Continue instructs the
// run loop to keep stepping; every other value terminates the frame.
// Statuses are plain values passed up through Step and Run, never panics.
type Status uint8

const (
	// Continue is the non-terminal outcome.
	Continue Status = iota

	// Success class. Stopped is an explicit or implicit STOP with no
	// output; Returned and SelfDestructed carry frame output and
	// destruction respectively.
	Stopped
	Returned
	SelfDestructed

	// Revert class: output is carried, state changes made by this frame
	// are to be unwound by its creator, remaining gas is returned.
	Reverted

	// Failure class: the frame's entire gas allotment is forfeit.
	OutOfGas
	OpcodeNotFound
	InvalidJump
	StackUnderflow
	StackOverflow
	WriteProtection
	Failure
)

// Succeeded reports whether the status terminates the frame successfully.
func (st Status) Succeeded() bool {
	return st == Stopped || st == Returned || st == SelfDestructed
}

// IsRevert reports whether the status is a revert exit.
func (st Status) IsRevert() bool {
	return st == Reverted
}

// Failed reports whether the status is a terminal failure.
func (st Status) Failed() bool {
	return st != Continue && !st.Succeeded() && st != Reverted
}

func (st Status) String() string {
	switch st {
	case Continue:
		return "continue"
	case Stopped:
		return "stopped"
	case Returned:
		return "returned"
	case SelfDestructed:
		return "self destructed"
	case Reverted:
		return "reverted"
	case OutOfGas:
		return "out of gas"
	case OpcodeNotFound:
		return "opcode not found"
	case InvalidJump:
		return "invalid jump destination"
	case StackUnderflow:
		return "stack underflow"
	case StackOverflow:
		return "stack limit reached"
	case WriteProtection:
		return "write protection"
	case Failure:
		return "execution failed"
	default:
		return "unknown status"
	}
}

// List of errors a Status maps to at the embedding boundary.
var (
	ErrOutOfGas          = errors.New("out of gas")
	ErrOpcodeNotFound    = errors.New("opcode not found")
	ErrInvalidJump       = errors.New("invalid jump destination")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrStackOverflow     = errors.New("stack limit reached")
	ErrWriteProtection   = errors.New("write protection")
	ErrExecutionReverted = errors.New("execution reverted")
	ErrExecutionFailed   = errors.New("execution failed")
)

// Err converts a terminal status into the error reported to an embedder.
// Success statuses and Continue map to nil.
func (st Status) Err() error {
	switch st {
	case Continue, Stopped, Returned, SelfDestructed:
		return nil
	case Reverted:
		return ErrExecutionReverted
	case OutOfGas:
		return ErrOutOfGas
	case OpcodeNotFound:
		return ErrOpcodeNotFound
	case InvalidJump:
		return ErrInvalidJump
	case StackUnderflow:
		return ErrStackUnderflow
	case StackOverflow:
		return ErrStackOverflow
	case WriteProtection:
		return ErrWriteProtection
	default:
		return ErrExecutionFailed
	}
}
