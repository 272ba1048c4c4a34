// Command pycc is the AOT compiler driver described in SPEC_FULL.md §6:
//
//	pycc <source.py> [-o <out>] [-O{0,1,2}] [--emit={obj,asm,ir,exe}]
//
// Grounded on the teacher's cli/main.go (cobra root command,
// SilenceErrors/SilenceUsage discipline, SIGINT-cancellable context) —
// simplified since pycc has no secret-scrubbing requirement, so the
// stdout-lockdown/vault/scrubber machinery that wraps the teacher's
// root command is dropped.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/pycc/internal/config"
	"github.com/aledsdavies/pycc/internal/driver"
	"github.com/aledsdavies/pycc/internal/optimize"
)

func main() {
	var (
		outPath    string
		optFlag    int
		emitFlag   string
		profileOut string
		debugFlag  bool
	)

	rootCmd := &cobra.Command{
		Use:           "pycc <source.py>",
		Short:         "Compile a statically-typeable Python subset",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".pycc.yaml")
			if err != nil {
				return fmt.Errorf("loading .pycc.yaml: %w", err)
			}

			level := levelFromFlag(optFlag, cmd.Flags().Changed("optimize"), cfg.Optimize)
			emit := driver.Emit(emitFlag)
			if !cmd.Flags().Changed("emit") && cfg.Emit != "" {
				emit = driver.Emit(cfg.Emit)
			}

			if debugFlag {
				for k, v := range config.EnvPassthrough() {
					fmt.Fprintf(os.Stderr, "pycc: %s=%s\n", k, v)
				}
			}

			ctx, cancel := newCancellableContext()
			defer cancel()

			result := driver.Compile(ctx, driver.Options{
				SourcePath: args[0],
				OutPath:    outPath,
				Level:      level,
				Emit:       emit,
				ProfileOut: profileOut,
			})
			for _, d := range result.Diags.All() {
				fmt.Fprintln(os.Stderr, d.Error())
			}
			if result.ExitCode != 0 {
				os.Exit(result.ExitCode)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path")
	rootCmd.Flags().IntVarP(&optFlag, "optimize", "O", 1, "Optimization level (0, 1, 2)")
	rootCmd.Flags().StringVar(&emitFlag, "emit", string(driver.EmitExe), "Emit format: obj, asm, ir, exe")
	rootCmd.Flags().StringVar(&profileOut, "profile-out", "", "Write a .profraw profile counter block to this path")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Print coverage-env passthrough and other debug info")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pycc: %v\n", err)
		os.Exit(diagInternalExit)
	}
}

const diagInternalExit = 2

func levelFromFlag(flagVal int, flagChanged bool, cfgVal string) optimize.Level {
	if !flagChanged && cfgVal != "" {
		switch strings.TrimSpace(cfgVal) {
		case "0":
			return optimize.O0
		case "2":
			return optimize.O2
		default:
			return optimize.O1
		}
	}
	switch flagVal {
	case 0:
		return optimize.O0
	case 2:
		return optimize.O2
	default:
		return optimize.O1
	}
}

// newCancellableContext cancels on SIGINT/SIGTERM so time.sleep and any
// other blocking runtime call can unwind cleanly (SPEC_FULL.md §5).
func newCancellableContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}
