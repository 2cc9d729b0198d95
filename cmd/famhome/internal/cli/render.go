package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-famhome"
)

func (a *app) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the parsed document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), famhome.Parse(raw))
		},
	}
}

func (a *app) renderCommand() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a home page body for a platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			module, err := a.module()
			if err != nil {
				return err
			}
			defer module.Close()

			out, err := module.Render(cmd.Context(), a.platform(platform), raw)
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "web, ios or android (defaults to render.default_platform)")
	return cmd
}

func (a *app) platform(flag string) famhome.Platform {
	if value := strings.TrimSpace(flag); value != "" {
		return famhome.Platform(value)
	}
	if value := strings.TrimSpace(a.cfg.Render.DefaultPlatform); value != "" {
		return famhome.Platform(value)
	}
	return famhome.PlatformWeb
}

func printOutput(cmd *cobra.Command, out *famhome.Output) error {
	if out.Native != nil {
		return writeJSON(cmd.OutOrStdout(), out.Native)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out.HTML)
	return err
}
