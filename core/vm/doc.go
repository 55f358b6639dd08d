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

/*
Package vm implements the execution core of an Ethereum Virtual Machine.

The package is organised around three pieces. A Contract carries a call
frame's bytecode together with the result of jump-destination analysis; the
analysis also pads code whose trailing push instruction declares more
immediate bytes than the code contains, so push reads never need a bounds
check. A Gas ledger meters explicit instruction costs and memory-expansion
costs against a fixed limit and settles unspent gas and refund credits
between nested frames. A Machine ties a contract, a gas ledger, a stack and
a memory buffer into one executable frame and drives the fetch/dispatch
loop, optionally yielding to an Inspector before and after every step.

Opcode semantics are supplied through an EvalFunc; a reference dispatch
table covering the common instruction subset is built in, and embedders may
replace it wholesale. Depth limits for nested calls are the embedder's
responsibility; the Machine only records its depth for inspection.
*/
package vm
