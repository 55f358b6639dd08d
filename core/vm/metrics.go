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

import "github.com/ethereum/go-ethereum/metrics"

var (
	analysisCacheHitCounter  = metrics.NewRegisteredCounter("vm/analysis/cache/hit", nil)
	analysisCacheMissCounter = metrics.NewRegisteredCounter("vm/analysis/cache/miss", nil)

	machineRunCounter = metrics.NewRegisteredCounter("vm/machine/run", nil)

	contractPoolGetCounter = metrics.NewRegisteredCounter("vm/contractpool/get", nil)
	contractPoolPutCounter = metrics.NewRegisteredCounter("vm/contractpool/put", nil)
)
