// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"bytes"

	"github.com/pkg/errors"
)

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

// verify checks the changes made to the accounts of f by its program.
func (e *executor) verify(f *frame) error {
	programID := f.env.ProgramID()
	var preSum, postSum uint64
	for key, pre := range f.pre {
		post := e.rt.state.GetAccount(key)
		preSum += pre.Lamports
		postSum += post.Lamports

		if !f.writable[key] {
			if !pre.Equal(post) {
				return errors.Wrapf(ErrReadonlyDataModified, "account %s", key)
			}
			continue
		}
		if pre.Executable != post.Executable {
			return errors.Wrapf(ErrExecutableModified, "account %s", key)
		}
		if !pre.Owner.Equals(post.Owner) {
			if !pre.Owner.Equals(programID) || !isZeroed(post.Data) {
				return errors.Wrapf(ErrModifiedProgramID, "account %s", key)
			}
		}
		if !bytes.Equal(pre.Data, post.Data) && !pre.Owner.Equals(programID) {
			return errors.Wrapf(ErrExternalDataModified, "account %s", key)
		}
		if post.Lamports < pre.Lamports && !pre.Owner.Equals(programID) {
			return errors.Wrapf(ErrExternalLamportSpend, "account %s", key)
		}
	}
	if preSum != postSum {
		return errors.Wrapf(ErrUnbalancedInstruction, "before %d, after %d", preSum, postSum)
	}
	return nil
}
