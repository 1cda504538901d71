package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jtype/format"
	"github.com/dhamidi/jtype/resolved"
)

func newResolveCmd(opts *options) *cobra.Command {
	var (
		outputFormat string
		members      string
		token        bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <type>...",
		Short: "Resolve generic types and print their members",
		Long: `Resolve one or more Java type expressions against the classpath and
print the resulting types with all type variables substituted.

Unqualified names are taken from java.lang. Inner classes of generic
classes are written as Outer<A>.Inner or with '$'.

With --token each argument names a type-token class, such as an anonymous
subclass of TypeToken<T>, and the captured type argument is resolved.

Examples:
  jtype resolve 'java.util.Map<String, java.util.List<Integer>>'
  jtype resolve -f json 'java.util.Optional<String>'
  jtype resolve --members '^(?!get)' 'java.util.HashMap<String, Long>'
  jtype resolve --token com.example.Main$1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.resolver(cmd)
			if err != nil {
				return err
			}

			var filter *format.MemberFilter
			if members != "" {
				if filter, err = format.NewMemberFilter(members); err != nil {
					return err
				}
			}
			enc, err := format.New(outputFormat, os.Stdout, filter)
			if err != nil {
				return err
			}

			for _, arg := range args {
				var t resolved.Type
				if token {
					t, err = resolved.TypeToken(r, arg)
				} else {
					t, err = r.ResolveExpression(arg)
				}
				if err != nil {
					return fmt.Errorf("resolve %s: %w", arg, err)
				}
				if err := enc.Encode(t); err != nil {
					return fmt.Errorf("encode %s: %w", outputFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, line, tree)")
	cmd.Flags().StringVarP(&members, "members", "m", "", "only show members whose names match this pattern")
	cmd.Flags().BoolVar(&token, "token", false, "treat arguments as type-token classes")

	return cmd
}
