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

	"github.com/stretchr/testify/require"
)

func TestStatusClasses(t *testing.T) {
	// every status belongs to exactly one exit class, and only failures
	// forfeit the frame's gas
	tests := []struct {
		status    Status
		succeeded bool
		revert    bool
		failed    bool
	}{
		{Continue, false, false, false},
		{Stopped, true, false, false},
		{Returned, true, false, false},
		{SelfDestructed, true, false, false},
		{Reverted, false, true, false},
		{OutOfGas, false, false, true},
		{OpcodeNotFound, false, false, true},
		{InvalidJump, false, false, true},
		{StackUnderflow, false, false, true},
		{StackOverflow, false, false, true},
		{WriteProtection, false, false, true},
		{Failure, false, false, true},
	}
	for _, test := range tests {
		t.Run(test.status.String(), func(t *testing.T) {
			require.Equal(t, test.succeeded, test.status.Succeeded())
			require.Equal(t, test.revert, test.status.IsRevert())
			require.Equal(t, test.failed, test.status.Failed())
		})
	}
}

func TestStatusErr(t *testing.T) {
	require.NoError(t, Continue.Err())
	require.NoError(t, Stopped.Err())
	require.NoError(t, Returned.Err())
	require.NoError(t, SelfDestructed.Err())
	require.ErrorIs(t, Reverted.Err(), ErrExecutionReverted)

	// every failed status surfaces as a non-nil error
	for st := OutOfGas; st <= Failure; st++ {
		require.True(t, st.Failed())
		require.Error(t, st.Err())
	}
}
