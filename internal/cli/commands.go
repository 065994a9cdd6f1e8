package cli

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/powerlora/internal/app"
	"github.com/specialistvlad/powerlora/internal/nodeid"
	"github.com/specialistvlad/powerlora/modules/powerlora"
	"github.com/spf13/cobra"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a LoRA name against the catalog",
		Long: `Resolve a loosely written LoRA name the way the loader node does: exact
match first, then ignoring the extension, then the directory, then a
substring search. Exits with status 1 when nothing matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.app.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v := view{
				value:  res,
				header: []string{"Query", "Found", "Tier", "Path"},
				rows:   [][]string{{res.Query, res.Found, res.Tier, res.Path}},
			}
			if err := render(cmd.OutOrStdout(), opts.output, v); err != nil {
				return err
			}
			if res.Found == "" {
				msg := fmt.Sprintf("no LoRA matches %q", res.Query)
				if len(res.Suggestions) > 0 {
					msg += "; did you mean " + strings.Join(res.Suggestions, ", ") + "?"
				}
				return &ExitError{Code: 1, Message: msg}
			}
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [category]",
		Short: "List catalog entries (default category: loras)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := powerlora.CatalogCategory
			if len(args) == 1 {
				category = args[0]
			}
			entries, err := opts.app.List(cmd.Context(), category)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []string{}
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e})
			}
			return render(cmd.OutOrStdout(), opts.output, view{value: entries, header: []string{"Name"}, rows: rows})
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	var only []string
	cmd := &cobra.Command{
		Use:   "run <grid.hcl|dir>...",
		Short: "Evaluate a grid of loader nodes and print each node's LoRA list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep := make(map[string]bool, len(only))
			for _, raw := range only {
				addr, err := nodeid.Parse(raw)
				if err != nil {
					return &ExitError{Code: 2, Err: fmt.Errorf("--node: %w", err)}
				}
				keep[addr.String()] = true
			}

			out, err := opts.app.Run(cmd.Context(), args...)
			if err != nil {
				return err
			}
			if len(keep) > 0 {
				filtered := out[:0]
				for _, n := range out {
					if keep[n.Node] {
						filtered = append(filtered, n)
					}
				}
				out = filtered
			}
			return render(cmd.OutOrStdout(), opts.output, nodeView(out))
		},
	}
	cmd.Flags().StringSliceVar(&only, "node", nil, "only print these nodes, e.g. node.WanVideoPowerLoraLoader.base; repeatable")
	return cmd
}

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <prompt.json>",
		Short: "Show the enabled LoRAs of every loader node in a saved workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := opts.app.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, nodeView(out))
		},
	}
}

// nodeView renders one row per LoRA, and a placeholder row for nodes
// without any.
func nodeView(nodes []app.NodeLoras) view {
	if nodes == nil {
		nodes = []app.NodeLoras{}
	}
	v := view{value: nodes, header: []string{"Node", "LoRA", "Strength", "Path"}}
	for _, n := range nodes {
		before := len(v.rows)
		for _, m := range n.Loras {
			v.rows = append(v.rows, []string{n.Node, m.Name, formatStrength(m.Strength), m.Path})
		}
		for _, e := range n.Enabled {
			v.rows = append(v.rows, []string{n.Node, e.Name, formatStrength(e.Strength), e.Path})
		}
		if len(v.rows) == before {
			v.rows = append(v.rows, []string{n.Node, "-", "", ""})
		}
	}
	return v
}
