/*
 * ssavm - Trace options configuration.
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

// Package traceconfig registers the "TRACE" config model the same way
// rcornwell-S370's debugconfig registers "DEBUG": a subsystem name
// (the config line's device field) dispatches to that subsystem's own
// set of recognized keys. This unit only has two trace subsystems
// worth naming (opcode dispatch and host-binding calls), so unlike
// debugconfig it doesn't forward into a per-device Debug method -
// it just records which keys were turned on for config.Load to read
// back after LoadConfigFile returns.
package traceconfig

import (
	"errors"
	"strings"

	config "ssavm/config/configparser"
)

var enabled = map[string]bool{}

func init() {
	config.RegisterModel("TRACE", config.TypeOptions, setTrace)
}

// setTrace handles one "TRACE <subsystem> <opt>,..." line. "OP" and
// "HOST" are the only subsystems this unit knows how to trace; the
// line turns its subsystem on whatever options follow ("TRACE OP on"
// and a bare "TRACE OP" both enable OP), and option names and values
// are not recorded.
func setTrace(devNum uint16, device string, options []config.Option) error {
	switch strings.ToUpper(device) {
	case "OP", "HOST":
		for _, opt := range options {
			enabled[strings.ToUpper(device)] = true
			if len(opt.Value) != 0 {
				for range opt.Value {
					enabled[strings.ToUpper(device)] = true
				}
			}
		}
		if len(options) == 0 {
			enabled[strings.ToUpper(device)] = true
		}
		return nil
	default:
		return errors.New("trace option invalid: " + device)
	}
}

// Enabled reports whether a trace subsystem ("OP" or "HOST") was
// turned on by a previously loaded config file.
func Enabled(subsystem string) bool {
	return enabled[strings.ToUpper(subsystem)]
}

// Reset clears every recorded trace key, for tests that load more
// than one config file in the same process.
func Reset() {
	enabled = map[string]bool{}
}
