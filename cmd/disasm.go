package cmd

import (
	"fmt"
	"os"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/opcode"

	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm `path/ROM`",
	Short: "print a listing of the ROM",
	Args:  cobra.ExactArgs(1),
	RunE:  Disasm,
}

func Disasm(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, line := range opcode.Disassemble(rom, cpu.StartAddr) {
		fmt.Fprintln(out, line)
	}
	return nil
}
