package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jtype/config"
)

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a " + config.FileName + " with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(opts.configDir)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
