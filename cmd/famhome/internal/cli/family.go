package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-famhome"
	familiescmd "github.com/goliatone/go-famhome/internal/commands/families"
	"github.com/goliatone/go-famhome/internal/families"
)

func (a *app) familyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "family",
		Short: "Manage stored family home pages",
	}
	cmd.AddCommand(
		a.familyInitCommand(),
		a.familyShowCommand(),
		a.familyListCommand(),
		a.familySetBodyCommand(),
		a.familyAddImageCommand(),
		a.familyImportCommand(),
		a.familyImportHTMLCommand(),
	)
	return cmd
}

func (a *app) familyInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init OWNER_UID",
		Short: "Create the family owned by OWNER_UID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.module()
			if err != nil {
				return err
			}
			defer module.Close()

			ctx := cmd.Context()
			if err := module.Commands().Init.Execute(ctx, familiescmd.InitFamilyCommand{OwnerUID: args[0], Name: name}); err != nil {
				return err
			}
			family, err := module.Families().GetFamilyByOwner(ctx, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), family)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "family name")
	return cmd
}

func (a *app) familyShowCommand() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "show OWNER_UID",
		Short: "Print a family, or its rendered home page with --render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.module()
			if err != nil {
				return err
			}
			defer module.Close()

			family, err := module.Families().GetFamilyByOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if platform == "" {
				return writeJSON(cmd.OutOrStdout(), family)
			}
			out, err := module.RenderFamily(cmd.Context(), a.platform(platform), family.ID)
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
	cmd.Flags().StringVar(&platform, "render", "", "render the home page for web, ios or android")
	return cmd
}

func (a *app) familyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List families ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.module()
			if err != nil {
				return err
			}
			defer module.Close()

			list, err := module.Families().ListFamilies(cmd.Context())
			if err != nil {
				return err
			}
			for _, family := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", family.OwnerUID, family.Slug, family.Name)
			}
			return nil
		},
	}
}

func (a *app) familySetBodyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-body OWNER_UID FILE",
		Short: "Replace the home page body with FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readSource(cmd, args[1])
			if err != nil {
				return err
			}
			module, err := a.module()
			if err != nil {
				return err
			}
			defer module.Close()

			family, err := module.Families().GetFamilyByOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return module.Commands().UpdateBody.Execute(cmd.Context(), familiescmd.UpdateHomeBodyCommand{
				FamilyID:     family.ID,
				BodyMarkdown: body,
			})
		},
	}
}

func (a *app) familyAddImageCommand() *cobra.Command {
	var (
		cursor   int
		mimeType string
	)

	cmd := &cobra.Command{
		Use:   "add-image OWNER_UID [URL]",
		Short: "Insert an image into the home page body",
		Long: "Insert an image directive at --cursor. Without URL the storage path " +
			"for a new upload of --mime is printed instead.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.module()
			if err != nil {
				return err
			}
			defer module.Close()

			family, err := module.Families().GetFamilyByOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), families.HomeImagePath(family.ID, mimeType, time.Now()))
				return err
			}

			if cursor < 0 {
				cursor = len(family.BodyMarkdown)
			}
			body, next := families.InsertImageMarkdown(family.BodyMarkdown, cursor, args[1])
			if err := module.Commands().UpdateBody.Execute(cmd.Context(), familiescmd.UpdateHomeBodyCommand{
				FamilyID:     family.ID,
				BodyMarkdown: body,
			}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cursor %d\n", next)
			return err
		},
	}
	cmd.Flags().IntVar(&cursor, "cursor", -1, "byte offset to insert at (defaults to the end)")
	cmd.Flags().StringVar(&mimeType, "mime", "image/jpeg", "MIME type used for the upload path")
	return cmd
}

func (a *app) familyImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import DIR",
		Short: "Import front matter home files from DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var report familiescmd.ImportResult
			module, err := a.module(
				famhome.WithHomesFS(os.DirFS(args[0])),
				famhome.WithImportReport(func(r familiescmd.ImportResult) { report = r }),
			)
			if err != nil {
				return err
			}
			defer module.Close()

			if err := module.Commands().ImportHomes.Execute(cmd.Context(), familiescmd.ImportHomesCommand{
				Directory: ".",
				DryRun:    dryRun,
			}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "imported"
			if report.DryRun {
				verb = "would import"
			}
			fmt.Fprintf(out, "%s %d, skipped %d, failed %d\n", verb, len(report.Imported), len(report.Skipped), len(report.Errors))
			for path, err := range report.Errors {
				fmt.Fprintf(out, "  %s: %v\n", path, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without writing")
	return cmd
}

func (a *app) familyImportHTMLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-html OWNER_UID FILE",
		Short: "Convert a legacy HTML home page into the body",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := readSource(cmd, args[1])
			if err != nil {
				return err
			}
			if strings.TrimSpace(html) == "" {
				return fmt.Errorf("import-html: %s is empty", args[1])
			}
			module, err := a.module()
			if err != nil {
				return err
			}
			defer module.Close()

			family, err := module.Families().GetFamilyByOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return module.Commands().ImportHTML.Execute(cmd.Context(), familiescmd.ImportHTMLCommand{
				FamilyID: family.ID,
				HTML:     html,
			})
		},
	}
}
