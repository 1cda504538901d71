package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jtype/java"
)

func newDumpCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <class>...",
		Short: "Print the unresolved generic declaration of classes",
		Long: `Print a class as declared, before any type variable is substituted:
its type parameters, generic supertypes and member signatures.

Classes are named by binary name, e.g. java.util.Map$Entry.`,
		Args: cobra.MinimumNArgs(1),
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

			for _, name := range args {
				c, err := path.Load(name)
				if err != nil {
					return err
				}
				if err := dumpClass(os.Stdout, c); err != nil {
					return fmt.Errorf("dump %s: %w", name, err)
				}
			}
			return nil
		},
	}
	return cmd
}

func dumpClass(w io.Writer, c *java.Class) error {
	var sb strings.Builder

	sb.WriteString(c.Name())
	if tps := c.TypeParameters(); len(tps) > 0 {
		parts := make([]string, len(tps))
		for i, tp := range tps {
			parts[i] = tp.String()
		}
		sb.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	sb.WriteByte('\n')
	if err := c.SignatureError(); err != nil {
		fmt.Fprintf(&sb, "  signature\t%v\n", err)
	}

	if sup := c.GenericSuperclass(); sup != nil {
		fmt.Fprintf(&sb, "  extends\t%s\n", sup)
	}
	for _, i := range c.GenericInterfaces() {
		fmt.Fprintf(&sb, "  implements\t%s\n", i)
	}
	for _, p := range c.PermittedSubclasses() {
		fmt.Fprintf(&sb, "  permits\t%s\n", p)
	}
	for _, f := range c.Fields() {
		fmt.Fprintf(&sb, "  field\t%s\n", f)
	}
	for _, m := range c.Constructors() {
		fmt.Fprintf(&sb, "  constructor\t%s\n", m.GenericString())
	}
	for _, m := range c.Methods() {
		fmt.Fprintf(&sb, "  method\t%s\n", m.GenericString())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
