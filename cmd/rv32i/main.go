// Command rv32i is a functional simulator for the RV32I base instruction
// set: it loads a flat binary image into memory and runs it on a single
// simulated hart, optionally disassembling the image first and tracing
// each executed instruction.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/dbendik/rv32i/internal/decode"
	"github.com/dbendik/rv32i/internal/driver"
	"github.com/dbendik/rv32i/internal/hart"
	"github.com/dbendik/rv32i/internal/hexfmt"
	"github.com/dbendik/rv32i/internal/memory"
	"github.com/dbendik/rv32i/internal/rvlog"
)

const defaultMemSize = 0x100

func main() {
	app := &cli.App{
		Name:      "rv32i",
		Usage:     "simulate a RISC-V RV32I program",
		UsageText: "rv32i [-d] [-i] [-r] [-z] [-l exec-limit] [-m hex-mem-size] infile",
		Writer:    os.Stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "d", Usage: "show disassembly before program execution"},
			&cli.BoolFlag{Name: "i", Usage: "show instruction printing during execution"},
			&cli.BoolFlag{Name: "r", Usage: "show register printing during execution"},
			&cli.BoolFlag{Name: "z", Usage: "show a dump of the regs & memory after simulation"},
			&cli.Uint64Flag{Name: "l", Usage: "maximum number of instructions to exec"},
			&cli.StringFlag{Name: "m", Value: "100", Usage: "specify memory size in hex (default = 0x100)"},
			&cli.StringFlag{Name: "cpuprofile", Usage: "write a CPU profile to the given directory"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	l := rvlog.New(os.Stderr, slog.LevelInfo)

	if dir := ctx.String("cpuprofile"); dir != "" {
		l.Info("starting cpu profile", "dir", dir)
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath(dir), profile.CPUProfile).Stop()
	}

	if ctx.NArg() < 1 {
		l.Error("missing filename")
		cli.ShowAppHelp(ctx)
		return cli.Exit("missing filename", 1)
	}
	infile := ctx.Args().Get(0)

	memSize, err := strconv.ParseUint(ctx.String("m"), 16, 32)
	if err != nil {
		l.Error("invalid memory size", "value", ctx.String("m"), "err", err)
		return cli.Exit(fmt.Errorf("invalid -m value: %w", err), 1)
	}

	mem := memory.New(uint32(memSize))
	mem.SetConsoleWriter(os.Stdout)
	l.Info("loading program", "file", infile, "memSize", hexfmt.Word32Prefixed(mem.Size()))

	if err := mem.LoadFile(infile); err != nil {
		l.Error("loading program failed", "file", infile, "err", err)
		return cli.Exit(err, 1)
	}

	h := hart.New(mem)
	d := driver.New(h, os.Stdout)

	if ctx.Bool("d") {
		disassemble(mem)
		h.Reset()
	}

	if ctx.Bool("i") {
		h.Reset()
		if ctx.Bool("r") {
			h.Dump(os.Stdout, "")
			h.ShowRegisters = true
		}
		h.ShowInstructions = true
	}

	d.Run(ctx.Uint64("l"))

	if ctx.Bool("z") {
		h.Dump(os.Stdout, "")
		mem.Dump(os.Stdout)
	}

	return nil
}

func disassemble(mem *memory.Memory) {
	for addr := uint32(0); addr < mem.Size(); addr += 4 {
		insn := mem.Get32(addr)
		fmt.Printf("%s: %s  %s\n", hexfmt.Word32(addr), hexfmt.Word32(insn), decode.Disassemble(addr, insn))
	}
}
