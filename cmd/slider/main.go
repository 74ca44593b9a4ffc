package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rangeslider/internal/config"
	"github.com/vango-dev/rangeslider/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─●━━━━━━━●─┐  rangeslider
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.PrintError(err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "slider",
		Short: "An interactive range slider",
		Long: `Slider serves, renders and drives a range slider widget.

The slider has one or two handles, snaps to a step grid or to a list
of labels, and keeps every option consistent as they change:

  • serve   live slider in the browser over a websocket
  • render  standalone HTML page
  • tui     the same slider in the terminal`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		tuiCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig loads path, or returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.New(), nil
	}
	return config.Load(path)
}

// printBanner prints the slider banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
