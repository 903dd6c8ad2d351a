package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/robotfiles/internal/app"
	"github.com/bethropolis/robotfiles/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for robotfiles.
// Without a subcommand it behaves like list.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "robotfiles [dir]",
		Short: "List the files of a workspace that are not ignored",
		Long: `robotfiles walks a directory tree and lists every regular file that is
not hidden and not excluded by ignore files.

In each directory the first of the configured ignore files that exists
(.robotignore, then .gitignore by default) is read, and only that name is
looked for further down. Rules accumulate from the root to the leaves and
a later rule overrides an earlier one, as in git.`,
		Version:      Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}
	flags := config.BindFlags(cmd.PersistentFlags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runList(cmd, flags, args)
	}

	cmd.AddCommand(NewListCommand(flags))
	cmd.AddCommand(NewCheckCommand(flags))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

// NewListCommand creates the list subcommand
func NewListCommand(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List discovered files (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, args)
		},
		SilenceUsage: true,
	}
}

// NewCheckCommand creates the check subcommand
func NewCheckCommand(flags *config.Flags) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Explain whether paths would be listed and which rule decided",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, dir)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Check(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "Root directory the paths belong to")
	return cmd
}

// NewVersionCommand creates the version subcommand
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "robotfiles version %s\n", Version)
		},
	}
}

func runList(cmd *cobra.Command, flags *config.Flags, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	a, err := newApp(cmd, flags, dir)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(cmd.Context())
}

func newApp(cmd *cobra.Command, flags *config.Flags, dir string) (*app.App, error) {
	cfg, err := flags.Resolve(dir)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
