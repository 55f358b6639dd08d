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

// Package runtime wires a machine to an in-memory host, for executing
// bytecode without a surrounding chain.
package runtime

import (
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/evmach/evmach/core/vm"
)

// Config is a basic type specifying certain configuration flags for running
// the machine.
type Config struct {
	Caller   common.Address
	Address  common.Address
	Value    *uint256.Int
	GasLimit uint64
	Static   bool
	Depth    int

	// Host backs storage instructions. When nil an InMemoryHost is used.
	Host vm.Host
	// Inspector enables per-step hooks on the executed frame.
	Inspector vm.Inspector
}

// sets defaults on the config
func setDefaults(cfg *Config) {
	if cfg.GasLimit == 0 {
		cfg.GasLimit = math.MaxUint64
	}
	if cfg.Value == nil {
		cfg.Value = new(uint256.Int)
	}
	if cfg.Host == nil {
		cfg.Host = NewInMemoryHost()
	}
}

// Execute executes the code with the given input and configuration and
// returns the frame's output, the gas left, and the error mapped from the
// frame's terminal status, if any.
//
// Execute sets up an in-memory, temporary environment unless the config
// carries a host of its own.
func Execute(code, input []byte, cfg *Config) ([]byte, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	contract := vm.GetContract(cfg.Caller, cfg.Address, cfg.Value, code, crypto.Keccak256Hash(code))
	defer vm.ReturnContract(contract)
	contract.Input = input

	machine := vm.NewMachine(contract, cfg.GasLimit, vm.Config{
		Inspector: cfg.Inspector,
		Static:    cfg.Static,
		Depth:     cfg.Depth,
	})
	defer machine.Release()

	status := machine.Run(cfg.Host)
	return machine.ReturnValue(), machine.Gas().Remaining(), status.Err()
}

// Call runs code at the given address in a child frame of parent. The gas
// argument is charged against the parent's ledger up front; whatever the
// child leaves unspent is reimbursed according to its terminal status, and
// its output is installed as the parent's return data.
func Call(parent *vm.Machine, host vm.Host, address common.Address, code, input []byte, gas uint64, value *uint256.Int) ([]byte, vm.Status) {
	if parent.Depth() >= int(params.CallCreateDepth) {
		return nil, vm.Failure
	}
	if !parent.Gas().UseGas(gas) {
		return nil, vm.OutOfGas
	}
	contract := vm.GetContract(parent.Contract().Address(), address, value, code, crypto.Keccak256Hash(code))
	defer vm.ReturnContract(contract)
	contract.Input = input

	child := vm.NewMachine(contract, gas, vm.Config{
		Static: parent.Static(),
		Depth:  parent.Depth() + 1,
	})
	defer child.Release()

	status := child.Run(host)
	ret := child.ReturnValue()

	parent.Gas().ReimburseUnspent(status, child.Gas())
	parent.SetReturnData(ret)
	return ret, status
}
