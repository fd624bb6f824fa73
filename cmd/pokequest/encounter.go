package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/orchestrators/encounter"
)

var (
	ballQuery string
	flee      bool
)

var encounterCmd = &cobra.Command{
	Use:   "encounter <location-id>",
	Short: "Meet a wild pokémon at a location",
	Long: `Open an encounter at a location, show the capture rate and throw a pokeball.
--ball accepts a pokeball id or a name, typos included.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncounterCmd,
}

func init() {
	encounterCmd.Flags().StringVar(&ballQuery, "ball", "", "pokeball to throw (id or name), defaults to the first one in stock")
	encounterCmd.Flags().BoolVar(&flee, "flee", false, "run away instead of throwing")
}

func runEncounterCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := newCredentialStore(cfg.Credentials)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, store, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	return runEncounter(ctx, a.service, &encounterOptions{
		LocationID: args[0],
		Ball:       ballQuery,
		Flee:       flee,
	}, cmd.OutOrStdout())
}

type encounterOptions struct {
	LocationID string
	Ball       string
	Flee       bool
}

// runEncounter drives one encounter screen from open to the way home
func runEncounter(ctx context.Context, svc encounter.Service, opts *encounterOptions, w io.Writer) error {
	opened, err := svc.Open(ctx, &encounter.OpenInput{LocationID: opts.LocationID})
	if err != nil {
		return err
	}

	// the screen is left either by capture, flee or interruption
	stop := context.AfterFunc(ctx, svc.Close)
	defer stop()

	view := opened.View
	printView(w, view)

	if opts.Flee {
		_, err := svc.Flee(ctx, &encounter.FleeInput{})
		return err
	}

	if opts.Ball != "" {
		tool, ok := encounter.MatchTool(view.Session.Tools, opts.Ball)
		if !ok {
			svc.Close()
			return errors.InvalidArgumentf("no pokeball matches %q", opts.Ball)
		}
		if tool.ID != view.Session.SelectedToolID {
			selected, err := svc.SelectTool(ctx, &encounter.SelectToolInput{
				SessionID: view.Session.ID,
				ToolID:    tool.ID,
			})
			if err != nil {
				svc.Close()
				return err
			}
			view = selected.View
			fmt.Fprintf(w, "Switched to %s, capture rate %d%%\n", tool.Name, view.Rate)
		}
	}

	if tool := view.Session.SelectedTool(); tool != nil {
		fmt.Fprintf(w, "Throwing a %s...\n", tool.Name)
	}

	out, err := svc.Capture(ctx, &encounter.CaptureInput{})
	if err != nil {
		svc.Close()
		if ctx.Err() != nil && encounter.IsStale(err) {
			return errors.Canceled("encounter interrupted")
		}
		return err
	}

	slog.Debug("Encounter finished", "outcome", out.Outcome)
	return nil
}

func printView(w io.Writer, view *encounter.View) {
	sess := view.Session
	if sess.Creature != nil {
		shiny := ""
		if sess.Creature.IsShiny {
			shiny = " ✨ shiny"
		}
		fmt.Fprintf(w, "A wild %s appeared!%s\n", sess.Creature.Name, shiny)
		if sess.Creature.SpriteURL != "" {
			fmt.Fprintf(w, "  %s\n", sess.Creature.SpriteURL)
		}
	}

	if len(sess.Tools) == 0 {
		fmt.Fprintln(w, "You have no pokeballs.")
	}
	for _, t := range sess.Tools {
		marker := " "
		if t.ID == sess.SelectedToolID {
			marker = ">"
		}
		fmt.Fprintf(w, " %s %-12s x%-3d +%.0f%%\n", marker, t.Name, t.Quantity, t.Bonus)
	}
	fmt.Fprintf(w, "Capture rate: %d%%\n", view.Rate)
}
