/*
 * ssavm - Main process.
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"ssavm/command/reader"
	"ssavm/command/session"
	"ssavm/config"
	"ssavm/config/traceconfig"
	"ssavm/host"
	logger "ssavm/util/logger"
	"ssavm/vm/exec"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "ssavm.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optTrace := getopt.BoolLong("trace", 't', "Enable per-opcode trace logging")
	optCall := getopt.StringLong("call", 0, "", "Run NAME once instead of starting the console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create log file: ", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	debug := *optTrace
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("ssavm started")

	var cfg *config.UnitConfig
	if _, err := os.Stat(*optConfig); err == nil {
		cfg, err = config.Load(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	} else {
		Logger.Info("no config file found, using defaults", "path", *optConfig)
		cfg, _ = config.Load(os.DevNull)
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ssavm [options] unit-file")
		os.Exit(1)
	}

	functions, err := exec.LoadUnitFile(args[0])
	if err != nil {
		Logger.Error("loading unit file", "path", args[0], "error", err)
		os.Exit(1)
	}

	m := cfg.NewMachine(Logger)
	m.ExtFuncs = cfg.Bindings(host.Table())
	m.VMFuncs = functions
	m.Trace = *optTrace || traceconfig.Enabled("OP")

	s := session.New(m, functions)

	if *optCall != "" {
		runOnce(s, *optCall)
		return
	}

	reader.ConsoleReader(s)
	Logger.Info("ssavm exiting")
}

// runOnce implements -call NAME[,arg,arg...]: splits the flag's value
// on the first comma, calls NAME with the remaining comma-separated
// decimal words as arguments, and prints the stop line the console's
// own "call" command prints, with the 32-bit return word appended.
func runOnce(s *session.Session, spec string) {
	parts := strings.Split(spec, ",")
	name := parts[0]

	fn, ok := s.Funcs[name]
	if !ok {
		fmt.Fprintln(os.Stderr, "no such function: "+name)
		os.Exit(1)
	}

	var args []uint32
	for _, tok := range parts[1:] {
		n, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad argument: "+tok)
			os.Exit(1)
		}
		args = append(args, uint32(n))
	}

	retAddr := uint32(len(s.Machine.Mem) - 4)
	out := s.Machine.At(retAddr)
	reason, code, err := s.Machine.Call(fn, 0, args, out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Printf("%s stopped: %s, code %d, return %d\n", name, reason, code, out.U32(0))
}
