/*
 * ssavm - Unit configuration: memory size, alloca base, host bindings.
 *
 * Copyright 2024, Richard Cornwell
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

// Package config builds the UnitConfig a unit starts from, the same
// way rcornwell-S370's config package turns a line-oriented config
// file into a running set of channel-attached devices: MEM and ALLOCA
// are registered as configparser.TypeOption models (one value, no
// device address), HOST as TypeOptions (a label token followed by a
// space-separated list of binding names to enable), mirroring
// debugconfig's own registration pattern one level up.
package config

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	configparser "ssavm/config/configparser"

	"ssavm/host"
	"ssavm/vm/exec"

	_ "ssavm/config/traceconfig"
)

const (
	defaultMemSize    = 1 << 20 // 1 MiB
	defaultAllocaBase = 1 << 16 // leave the low 64 KiB for statics
)

// UnitConfig is everything a unit needs before it can build its
// exec.Machine: how big guest memory is, where the alloca bump
// allocator starts, and which host bindings (from the host package's
// table) are actually reachable from guest code.
type UnitConfig struct {
	MemSize     int
	AllocaBase  uint32
	HostEnabled map[string]bool
}

var current = defaultConfig()

func defaultConfig() *UnitConfig {
	return &UnitConfig{
		MemSize:     defaultMemSize,
		AllocaBase:  defaultAllocaBase,
		HostEnabled: map[string]bool{},
	}
}

func init() {
	configparser.RegisterOption("MEM", setMem)
	configparser.RegisterOption("ALLOCA", setAlloca)
	configparser.RegisterModel("HOST", configparser.TypeOptions, setHost)
}

// setMem handles a "MEM <bytes>" line. The raw decimal text survives
// in value regardless of how parseFirst's hex-address guess read it,
// so parsing value ourselves sidesteps that guess entirely.
func setMem(devNum uint16, value string, options []configparser.Option) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return errors.New("MEM requires a positive byte count: " + value)
	}
	current.MemSize = n
	return nil
}

// setAlloca handles an "ALLOCA <bytes>" line: the address above which
// ALLOCA/ALLOCAD start bumping.
func setAlloca(devNum uint16, value string, options []configparser.Option) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return errors.New("ALLOCA requires a non-negative byte offset: " + value)
	}
	current.AllocaBase = uint32(n)
	return nil
}

// setHost handles a "HOST <label> <binding> [<binding> ...]" line; the
// label itself isn't inspected (debugconfig's subsystems use the same
// slot for a real name, this config only has one kind of thing to
// enable) but is required so the line reads like every other model
// line in the file.
func setHost(devNum uint16, label string, options []configparser.Option) error {
	if label == "" {
		return errors.New("HOST requires a label before the binding list")
	}
	for _, opt := range options {
		current.HostEnabled[strings.ToLower(opt.Name)] = true
		for _, v := range opt.Value {
			current.HostEnabled[strings.ToLower(*v)] = true
		}
	}
	return nil
}

// Load reads a config file and returns the UnitConfig it describes.
// Keys not mentioned in the file keep their defaultConfig() values.
func Load(path string) (*UnitConfig, error) {
	current = defaultConfig()
	if err := configparser.LoadConfigFile(path); err != nil {
		return nil, err
	}
	return current, nil
}

// Bindings filters host.Table() down to the subset this config's HOST
// lines turned on, leaving every other slot nil so JSR_EXT/JSR_R into
// a disabled binding traps with StopBadFunction exactly like an
// unregistered one. An empty HostEnabled set (no HOST lines at all)
// enables everything, matching a unit with no config file present.
func (c *UnitConfig) Bindings(table []host.Func) []host.Func {
	if len(c.HostEnabled) == 0 {
		return table
	}
	out := make([]host.Func, len(table))
	for name, idx := range host.Names() {
		if table[idx] != nil && c.HostEnabled[strings.ToLower(name)] {
			out[idx] = table[idx]
		}
	}
	return out
}

// NewMachine builds an exec.Machine sized and based the way this
// config describes: MemSize bytes of guest memory, ALLOCA/ALLOCAD
// bumping from AllocaBase, logging through logger (nil disables
// logging entirely, same as exec.Machine's zero value).
func (c *UnitConfig) NewMachine(logger *slog.Logger) *exec.Machine {
	m := exec.NewMachine(c.MemSize)
	m.SetAllocaBase(c.AllocaBase)
	m.Logger = logger
	return m
}
