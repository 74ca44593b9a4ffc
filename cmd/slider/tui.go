package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/rangeslider/internal/errors"
	"github.com/vango-dev/rangeslider/internal/tui"
)

func tuiCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Drive the slider from the terminal",
		Long: `Run the slider in the terminal.

Keys:
  ←/→    move the active handle by one step
  tab    switch handles in range mode
  r      toggle range mode
  d      toggle default values
  l      toggle limit labels
  v      toggle the value label
  q      quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := tui.Run(cmd.Context(), cfg.Slider, cfg.TickPolicy()); err != nil {
				return errors.New("E141").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (.json, .yaml or .yml)")

	return cmd
}
