package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jtype/classpath"
	"github.com/dhamidi/jtype/format"
	"github.com/dhamidi/jtype/resolved"
)

func newWatchCmd(opts *options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "watch <type>",
		Short: "Resolve a type again whenever the classpath changes",
		Long: `Resolve a type expression, print it, and print it again each time a
class directory or jar on the classpath changes. Resolved types are
discarded on every change so edits to generic signatures are picked up.

Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.resolver(cmd)
			if err != nil {
				return err
			}
			enc, err := format.New(outputFormat, os.Stdout, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, r, args[0], enc)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line, tree)")

	return cmd
}

func watch(ctx context.Context, r *resolved.Resolver, expr string, enc format.Encoder) error {
	w, err := classpath.NewWatcher(r.Path())
	if err != nil {
		return fmt.Errorf("watch classpath: %w", err)
	}
	defer w.Close()

	show := func() {
		t, err := r.ResolveExpression(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve %s: %v\n", expr, err)
			return
		}
		if err := enc.Encode(t); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		}
	}
	show()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for ev := range w.Events() {
		if ev.Class != "" {
			fmt.Fprintf(os.Stderr, "%s changed (%s)\n", ev.Class, ev.Op)
		} else {
			fmt.Fprintf(os.Stderr, "%s changed (%s)\n", ev.Path, ev.Op)
		}
		r.Purge()
		show()
	}

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
