package main

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rangeslider/internal/config"
	"github.com/vango-dev/rangeslider/internal/errors"
	"github.com/vango-dev/rangeslider/pkg/demo"
	"github.com/vango-dev/rangeslider/pkg/render"
	"github.com/vango-dev/rangeslider/pkg/server"
	"github.com/vango-dev/rangeslider/pkg/slider"
)

func renderCmd() *cobra.Command {
	var (
		configPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a standalone HTML page",
		Long: `Render the slider and its demo panel to a standalone HTML page.

The page carries the stylesheet inline and has no client script, so it
shows the initial state only.

Examples:
  slider render > slider.html
  slider render --config slider.yaml --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return renderPage(cmd.OutOrStdout(), cfg, pretty, cfg.Logger(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (.json, .yaml or .yml)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the HTML output")

	return cmd
}

// renderPage writes the static page for cfg to w.
func renderPage(w io.Writer, cfg *config.Config, pretty bool, logger *slog.Logger) error {
	title := cfg.Server.Title
	if title == "" {
		title = server.DefaultConfig().Title
	}

	body, _ := demo.NewPage(title, cfg.Slider,
		demo.WithLogger(logger),
		demo.WithSliderOptions(
			slider.WithLogger(logger),
			slider.WithTickPolicy(cfg.TickPolicy()),
		),
	)

	bw := bufio.NewWriter(w)
	r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
	if err := r.RenderPage(bw, render.PageData{Body: body, Title: title}); err != nil {
		return errors.New("E140").Wrap(err)
	}
	if err := bw.Flush(); err != nil {
		return errors.New("E140").Wrap(err)
	}
	return nil
}
