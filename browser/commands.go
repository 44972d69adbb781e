package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"lolbrowser/browser/tui"
	"lolbrowser/fetcher/assets"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts overrides

	root := &cobra.Command{
		Use:           "lolbrowser",
		Short:         "Browse the League of Legends champions and items",
		Long:          "lolbrowser shows the champions and items of Riot's Data Dragon. Without a subcommand it opens the interactive browser.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.version, "ddragon-version", "", "Data Dragon version, or latest (overrides DDRAGON_VERSION)")
	root.PersistentFlags().StringVar(&opts.language, "lang", "", "data language, like en_US (overrides DDRAGON_LANGUAGE)")

	root.AddCommand(
		newChampionsCommand(&opts),
		newChampionCommand(&opts),
		newItemsCommand(&opts),
		newItemCommand(&opts),
	)
	return root
}

func runTUI(ctx context.Context, opts overrides) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt, err := setup(ctx, opts, true)
	if err != nil {
		return err
	}
	defer rt.shutdown(context.Background())

	app := tui.New(&tui.Deps{
		Context:         ctx,
		Data:            rt.data,
		Textures:        rt.textures,
		Uploader:        rt.uploader,
		Randomizer:      rt.randomizer,
		Logger:          rt.logger,
		BackgroundImage: rt.cfg.UI.BackgroundImage,
	})

	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Wrap a subcommand body with a console session.
func withRuntime(opts *overrides, run func(ctx context.Context, rt *session, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := setup(ctx, *opts, false)
		if err != nil {
			return err
		}
		defer rt.shutdown(ctx)

		return run(ctx, rt, cmd.OutOrStdout(), args)
	}
}

func newChampionsCommand(opts *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "champions",
		Short: "List every champion",
		Args:  cobra.NoArgs,
		RunE: withRuntime(opts, func(ctx context.Context, rt *session, out io.Writer, args []string) error {
			for _, name := range rt.data.ChampionNames() {
				fmt.Fprintf(out, "%-16s %s\n", name, rt.data.ChampionTitle(name))
			}
			return nil
		}),
	}
}

func newChampionCommand(opts *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "champion <name>",
		Short: "Show the details of a champion",
		Args:  cobra.ExactArgs(1),
		RunE: withRuntime(opts, func(ctx context.Context, rt *session, out io.Writer, args []string) error {
			champ, ok := rt.data.Champion(ctx, args[0])
			if !ok {
				return fmt.Errorf("unknown champion %q", args[0])
			}

			fmt.Fprintf(out, "%s, %s\n", champ.Name, champ.Title)
			fmt.Fprintf(out, "Tags: %s\n\n", strings.Join(champ.Tags, ", "))
			for _, line := range assets.FormatChampionStats(rt.data.ChampionStats(champ.ID)) {
				fmt.Fprintln(out, line)
			}

			fmt.Fprintf(out, "\n%s\n\n", champ.Lore)
			for _, skill := range rt.data.SkillDescriptions(ctx, champ.ID) {
				fmt.Fprintf(out, "%s\n  %s\n", skill.Label(), assets.StripMarkup(skill.Description))
			}

			writeList(out, "Ally tips", champ.AllyTips)
			writeList(out, "Enemy tips", champ.EnemyTips)

			skins := make([]string, len(champ.Skins))
			for i, skin := range champ.Skins {
				skins[i] = fmt.Sprintf("%s (%s)", skin.Name, rt.data.ChampionSkinImageURL(champ.ID, fmt.Sprint(skin.Num)))
			}
			writeList(out, "Skins", skins)
			return nil
		}),
	}
}

func newItemsCommand(opts *overrides) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the items, optionally only the ones with a tag",
		Args:  cobra.NoArgs,
		RunE: withRuntime(opts, func(ctx context.Context, rt *session, out io.Writer, args []string) error {
			var ids []string
			if tag != "" {
				ids = rt.data.ItemsByTag(tag)
			} else {
				for _, name := range rt.data.ItemNames() {
					ids = append(ids, rt.data.ItemID(name))
				}
			}

			for _, id := range ids {
				fmt.Fprintf(out, "%-8s %s\n", id, rt.data.ItemName(id))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only items with this tag, like Boots")
	return cmd
}

func newItemCommand(opts *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "item <id>",
		Short: "Show the details of a item",
		Args:  cobra.ExactArgs(1),
		RunE: withRuntime(opts, func(ctx context.Context, rt *session, out io.Writer, args []string) error {
			id := args[0]
			// Accept the display name too.
			if byName := rt.data.ItemID(id); byName != "" {
				id = byName
			}

			it, ok := rt.data.Item(ctx, id)
			if !ok {
				return fmt.Errorf("unknown item %q", args[0])
			}

			fmt.Fprintf(out, "%s (%s)\n", it.Name, it.ID)
			if it.Plaintext != "" {
				fmt.Fprintln(out, it.Plaintext)
			}
			fmt.Fprintf(out, "Cost: %d, sells for %d\n", it.Gold.Total, it.Gold.Sell)
			if !it.Gold.Purchasable {
				fmt.Fprintln(out, "Not sold on the shop")
			}
			fmt.Fprintf(out, "Tags: %s\n\n%s\n", strings.Join(it.Tags, ", "), assets.StripMarkup(it.Description))

			writeList(out, "Builds from", itemNames(rt, it.From))
			writeList(out, "Builds into", itemNames(rt, it.Into))
			return nil
		}),
	}
}

func itemNames(rt *session, ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = fmt.Sprintf("%s (%s)", rt.data.ItemName(id), id)
	}
	return names
}

func writeList(out io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(out, "  - %s\n", line)
	}
}
