package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/presentation"
	"github.com/zjrosen/defreg/internal/registry"
)

var (
	defType   string
	anonymous bool
	clientUID string
	rawDef    bool
	findTypes []string
)

var uidCmd = &cobra.Command{
	Use:   "uid <descriptor>",
	Short: "Compile a definition and print the UID of its dependency set",
	Long: `Compile a root definition with everything it depends on and print the UID
of the resulting dependency set.

Examples:
  defreg uid ui:button
  defreg uid APPLICATION@markup://ui:shell
  defreg uid ui:shell --type application --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRoot(cmd, args[0], func(out presentation.Output, _ *registry.Registry, root descriptor.Descriptor, uid string) error {
			return out.FormatUID(presentation.UIDDTO{Root: presentation.FromDescriptor(root), UID: uid})
		})
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps <descriptor>",
	Short: "List the dependency set of a definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRoot(cmd, args[0], func(out presentation.Output, reg *registry.Registry, root descriptor.Descriptor, uid string) error {
			return out.FormatDependencies(presentation.DependenciesDTO{
				Root:         presentation.FromDescriptor(root),
				UID:          uid,
				Dependencies: presentation.FromDescriptors(reg.GetDependencies(cmd.Context(), uid)),
			})
		})
	},
}

var librariesCmd = &cobra.Command{
	Use:   "libraries <descriptor>",
	Short: "List the client libraries declared across a dependency set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRoot(cmd, args[0], func(out presentation.Output, reg *registry.Registry, root descriptor.Descriptor, uid string) error {
			return out.FormatLibraries(presentation.LibrariesDTO{
				Root:      presentation.FromDescriptor(root),
				UID:       uid,
				Libraries: reg.GetClientLibraries(cmd.Context(), uid),
			})
		})
	},
}

var defCmd = &cobra.Command{
	Use:   "def <descriptor>",
	Short: "Show a single definition",
	Long: `Show a validated definition. With --raw the definition is read straight
from its source, skipping validation and every cache.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDescriptor(args[0], defType)
		if err != nil {
			return err
		}
		return withEnv(func(e *env) error {
			out, err := output(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			reg := e.registry(anonymous)

			var def definition.Definition
			if rawDef {
				def, err = reg.GetRawDef(cmd.Context(), d)
			} else {
				def, err = reg.GetDef(cmd.Context(), d)
			}
			if err != nil {
				return err
			}
			if def == nil {
				return fmt.Errorf("no definition named %s", d)
			}
			return out.FormatDefinition(presentation.FromDefinition(def))
		})
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <descriptor>",
	Short: "Report whether a definition exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDescriptor(args[0], defType)
		if err != nil {
			return err
		}
		return withEnv(func(e *env) error {
			out, err := output(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			exists := e.registry(anonymous).Exists(cmd.Context(), d)
			return out.FormatExists(presentation.ExistsDTO{Descriptor: presentation.FromDescriptor(d), Exists: exists})
		})
	},
}

var findCmd = &cobra.Command{
	Use:   "find <pattern>",
	Short: "Find definitions matching a pattern",
	Long: `Find the descriptors matching a pattern. Each part of
"prefix://namespace:name" may be "*" or contain wildcards.

Examples:
  defreg find 'markup://ui:*'
  defreg find '*://ui:button' --type controller --type helper
  defreg find 'markup://*:*' --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var types []descriptor.DefType
		for _, s := range findTypes {
			t, err := descriptor.ParseDefType(s)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
		f, err := descriptor.ParseFilter(args[0], types...)
		if err != nil {
			return err
		}
		return withEnv(func(e *env) error {
			out, err := output(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			results, err := e.registry(anonymous).Find(cmd.Context(), f)
			if err != nil {
				return err
			}
			return out.FormatFind(presentation.FindDTO{Filter: f.String(), Results: presentation.FromDescriptors(results)})
		})
	},
}

// withRoot compiles the root named by arg and hands the result to fn.
func withRoot(cmd *cobra.Command, arg string, fn func(presentation.Output, *registry.Registry, descriptor.Descriptor, string) error) error {
	root, err := parseDescriptor(arg, defType)
	if err != nil {
		return err
	}
	return withEnv(func(e *env) error {
		out, err := output(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		reg := e.registry(anonymous)
		uid, err := reg.GetUID(cmd.Context(), clientUID, root)
		if err != nil {
			return err
		}
		if uid == "" {
			return fmt.Errorf("no definition named %s", root)
		}
		return fn(out, reg, root, uid)
	})
}

func init() {
	for _, c := range []*cobra.Command{uidCmd, depsCmd, librariesCmd, defCmd, existsCmd} {
		c.Flags().StringVarP(&defType, "type", "t", string(descriptor.Component),
			"definition type of an unqualified descriptor")
		c.Flags().BoolVar(&anonymous, "anonymous", false, "resolve as an unauthenticated request")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{uidCmd, depsCmd, librariesCmd} {
		c.Flags().StringVar(&clientUID, "client-uid", "", "UID the client already holds")
	}
	defCmd.Flags().BoolVar(&rawDef, "raw", false, "read the source directly, without validation")

	findCmd.Flags().StringSliceVarP(&findTypes, "type", "t", nil,
		"definition types to match (default: every type)")
	findCmd.Flags().BoolVar(&anonymous, "anonymous", false, "resolve as an unauthenticated request")
	rootCmd.AddCommand(findCmd)
}
