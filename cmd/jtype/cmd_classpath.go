package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClasspathCmd(opts *options) *cobra.Command {
	var listClasses bool

	cmd := &cobra.Command{
		Use:   "classpath",
		Short: "Print the effective classpath",
		Long: `Print the loaders classes are searched in, in order: the built-in
declarations (unless --no-bootstrap), the classpath entries from
.jtype.yaml or --classpath, then every jar in the lib directory.

With --classes the binary names of all classes on the classpath are
listed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			path, err := cfg.Path()
			if err != nil {
				return err
			}
			defer path.Close()

			if !listClasses {
				for _, l := range path.Loaders() {
					fmt.Println(l)
				}
				return nil
			}

			names, err := path.Classes()
			if err != nil {
				return fmt.Errorf("list classes: %w", err)
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listClasses, "classes", false, "list every class instead of the loaders")

	return cmd
}
