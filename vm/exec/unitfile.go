/*
 * ssavm - Unit file serialization.
 *
 * Copyright 2026, ssavm contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package exec

import (
	"encoding/gob"
	"os"
)

// UnitFile is the on-disk form of a unit's compiled functions: the
// output of running emit.Function over every ir.Function in a Unit,
// saved so the CLI doesn't have to recompile on every run. Grounded on
// the gob-based checkpoint save/load pair the z80-optimizer example
// uses for its own resumable search state - same shape, applied to
// compiled function text instead of search progress.
type UnitFile struct {
	Functions []*CompiledFunction
}

// SaveUnitFile writes a unit's compiled functions to path.
func SaveUnitFile(path string, functions []*CompiledFunction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(UnitFile{Functions: functions})
}

// LoadUnitFile reads back a unit file saved by SaveUnitFile.
func LoadUnitFile(path string) ([]*CompiledFunction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var uf UnitFile
	if err := gob.NewDecoder(f).Decode(&uf); err != nil {
		return nil, err
	}
	return uf.Functions, nil
}
