package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/phonobridge/internal/cli"
	"codeberg.org/snonux/phonobridge/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := context.Background()

	// Create processor
	proc := processor.NewProcessor(flags)
	if err := proc.Setup(ctx); err != nil {
		return err
	}
	defer proc.Close()

	// Handle --list-models flag
	if flags.ListModels {
		return proc.ListArtifacts()
	}

	// Handle --stats flag
	if flags.ShowStats {
		return proc.ShowStats()
	}

	// Handle --export-db flag
	if flags.ExportDB != "" {
		return proc.ExportDB(flags.ExportDB)
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx)
	}

	if len(args) == 0 {
		return fmt.Errorf("please provide a word or use --batch")
	}

	return proc.ProcessSingleWord(ctx, args[0])
}
