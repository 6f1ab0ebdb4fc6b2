/*
 * ssavm - Command parser.
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

// Package parser is the console's command table and line scanner: a
// prefix-matched command list plus a cursor-based cmdLine scanner,
// the same shape rcornwell-S370's command/parser used for "attach",
// "set", "show" and friends, generalized to this unit's own verbs
// (call, disas, mem, regs, break, step, quit).
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ssavm/command/session"
	"ssavm/vm/disasm"
)

type cmd struct {
	name     string // Command name.
	min      int    // Minimum unambiguous prefix length.
	process  func(*cmdLine, *session.Session) (bool, error)
	complete func(*cmdLine, *session.Session) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "call", min: 1, process: call},
	{name: "disas", min: 2, process: disas, complete: completeFuncName},
	{name: "mem", min: 1, process: memDump},
	{name: "regs", min: 1, process: regs},
	{name: "break", min: 2, process: breakAddr},
	{name: "step", min: 2, process: step},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes one console line against s.
func ProcessCommand(commandLine string, s *session.Session) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, errors.New("command not found: " + name)
	case 1:
		return match[0].process(&line, s)
	default:
		return false, errors.New("ambiguous command: " + name)
	}
}

// CompleteCmd is the liner tab-completer: same two-phase shape as the
// teacher's CompleteCmd (complete the command name itself, or hand off
// to that command's own completer once the name is unambiguous and
// followed by a space).
func CompleteCmd(commandLine string, s *session.Session) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	if !line.isEOL() && commandLine[line.pos-1] == ' ' {
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(&line, s)
	}

	matches := make([]string, 0, len(cmdList))
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, name) {
			matches = append(matches, c.name)
		}
	}
	return matches
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var out []cmd
	for _, c := range cmdList {
		if len(name) >= c.min && strings.HasPrefix(c.name, name) {
			out = append(out, c)
		}
	}
	return out
}

func completeFuncName(_ *cmdLine, s *session.Session) []string {
	return s.Names
}

// call NAME [arg ...]: runs a loaded function to completion with the
// given 32-bit word arguments, printing the stop reason/code and
// stashing the return frame in s.LastOut for "regs".
func call(line *cmdLine, s *session.Session) (bool, error) {
	name := line.getWord()
	if name == "" {
		return false, errors.New("call requires a function name")
	}
	fn, ok := s.Funcs[name]
	if !ok {
		return false, errors.New("no such function: " + name)
	}

	var args []uint32
	for {
		line.skipSpace()
		if line.isEOL() {
			break
		}
		n, err := line.getDecimal()
		if err != nil {
			return false, err
		}
		args = append(args, uint32(n))
	}

	retAddr := uint32(len(s.Machine.Mem) - 4)
	out := s.Machine.At(retAddr)
	reason, code, err := s.Machine.Call(fn, 0, args, out)
	if err != nil {
		return false, err
	}
	s.LastOut = out
	fmt.Printf("%s stopped: %s, code %d\n", name, reason, code)
	return false, nil
}

// disas NAME: selects NAME as the current function and prints its
// entire disassembly, resetting the step cursor to its first opcode.
func disas(line *cmdLine, s *session.Session) (bool, error) {
	name := line.getWord()
	if name == "" {
		if s.Cur == nil {
			return false, errors.New("disas requires a function name")
		}
	} else {
		fn, ok := s.Funcs[name]
		if !ok {
			return false, errors.New("no such function: " + name)
		}
		s.Cur = fn
		s.PC = 0
	}
	for _, l := range disasm.Function(s.Cur.Text) {
		fmt.Println(l)
	}
	return false, nil
}

// mem ADDR [COUNT]: hex-dumps COUNT bytes (default 16) of guest memory
// starting at ADDR, both given in hex.
func memDump(line *cmdLine, s *session.Session) (bool, error) {
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("mem requires a hex address")
	}
	count := 16
	line.skipSpace()
	if !line.isEOL() {
		n, err := line.getHex()
		if err != nil {
			return false, errors.New("mem's count must be hex")
		}
		count = int(n)
	}
	if addr < 0 || count < 0 || int(addr)+count > len(s.Machine.Mem) {
		return false, errors.New("mem range out of bounds")
	}

	for off := 0; off < count; off += 16 {
		n := count - off
		if n > 16 {
			n = 16
		}
		row := s.Machine.Mem[int(addr)+off : int(addr)+off+n]
		fmt.Printf("%08x: % x\n", int(addr)+off, row)
	}
	return false, nil
}

// regs OFFSET: prints the 32-bit word at OFFSET (hex) in the last
// call's return frame, the only frame state a console built on
// Machine's single-shot Call model has to show after the call
// returns.
func regs(line *cmdLine, s *session.Session) (bool, error) {
	off, err := line.getHex()
	if err != nil {
		return false, errors.New("regs requires a hex offset")
	}
	fmt.Printf("[%04x] = %08x\n", off, s.LastOut.U32(int16(off)))
	return false, nil
}

// break ADDR: toggles a byte offset (hex) in the breakpoint set "step"
// flags when it reaches it. There is no running interpreter to halt -
// Machine.run executes a function's text start to finish with no
// pause point - so this only marks positions in the listing.
func breakAddr(line *cmdLine, s *session.Session) (bool, error) {
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("break requires a hex address")
	}
	if s.Breaks[int(addr)] {
		delete(s.Breaks, int(addr))
		fmt.Printf("breakpoint cleared at %04x\n", addr)
	} else {
		s.Breaks[int(addr)] = true
		fmt.Printf("breakpoint set at %04x\n", addr)
	}
	return false, nil
}

// step: prints the instruction at the current disassembly cursor and
// advances past it, marking the line if it sits on a breakpoint.
func step(_ *cmdLine, s *session.Session) (bool, error) {
	if s.Cur == nil {
		return false, errors.New("step requires disas to select a function first")
	}
	if s.PC >= len(s.Cur.Text) {
		fmt.Println("at end of function")
		return false, nil
	}
	mnemonic, n := disasm.Disassemble(s.Cur.Text, s.PC)
	mark := " "
	if s.Breaks[s.PC] {
		mark = "*"
	}
	fmt.Printf("%s%04x: %s\n", mark, s.PC, mnemonic)
	if n <= 0 {
		return false, errors.New("cannot advance past a malformed instruction")
	}
	s.PC += n
	return false, nil
}

func quit(_ *cmdLine, _ *session.Session) (bool, error) {
	return true, nil
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// getWord returns the next run of non-space characters, or "" if
// already at end of line.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

func (line *cmdLine) getHex() (int64, error) {
	word := line.getWord()
	if word == "" {
		return 0, errors.New("expected a hex value")
	}
	return strconv.ParseInt(word, 16, 64)
}

func (line *cmdLine) getDecimal() (int64, error) {
	word := line.getWord()
	if word == "" {
		return 0, errors.New("expected a decimal value")
	}
	return strconv.ParseInt(word, 10, 64)
}
