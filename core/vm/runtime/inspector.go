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
	"github.com/ethereum/go-ethereum/log"

	"github.com/evmach/evmach/core/vm"
)

// LogInspector traces every step of a frame through the logger, at debug
// level. Meant for tests and bytecode debugging, not production use.
type LogInspector struct {
	// Logger overrides log.Root when non-nil.
	Logger log.Logger
}

func (ins *LogInspector) logger() log.Logger {
	if ins.Logger != nil {
		return ins.Logger
	}
	return log.Root()
}

// Step logs the instruction about to execute.
func (ins *LogInspector) Step(m *vm.Machine) vm.Status {
	ins.logger().Debug("machine step",
		"depth", m.Depth(),
		"pc", m.PC(),
		"op", m.Contract().GetOp(m.PC()).String(),
		"gas", m.Gas().Remaining(),
		"stack", m.Stack().Len(),
		"mem", m.Memory().Len(),
	)
	return vm.Continue
}

// StepEnd logs the frame's terminal status once it stops continuing.
func (ins *LogInspector) StepEnd(m *vm.Machine, status vm.Status) vm.Status {
	if status != vm.Continue {
		ins.logger().Debug("machine done",
			"depth", m.Depth(),
			"status", status.String(),
			"spent", m.Gas().Spent(),
			"refunded", m.Gas().Refunded(),
		)
	}
	return vm.Continue
}
