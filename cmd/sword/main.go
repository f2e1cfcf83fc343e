package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cl "swordgame/internal/cli"
	"swordgame/internal/config"
	"swordgame/internal/game"
	"swordgame/internal/syncq"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "sword",
		Short:        "Sword game backend client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newTradesCmd(&apiBase),
		newSyncCmd(&apiBase),
		newRankingsCmd(&apiBase),
		newQueueCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newTradesCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Inspect and manage leverage trades",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			trades, err := newClient(apiBase).ListTrades(ctx)
			if err != nil {
				return err
			}
			renderTrades(trades)
			return nil
		},
	}

	open := &cobra.Command{
		Use:   "open",
		Short: "Record a new trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			company, err := promptRequired("Company")
			if err != nil {
				return err
			}
			tradeType, err := promptChoice("Type", []string{"leverage", "inverse"}, "leverage")
			if err != nil {
				return err
			}
			leverage, err := promptFloat("Leverage", 0)
			if err != nil {
				return err
			}
			quantity, err := promptFloat("Quantity", 0)
			if err != nil {
				return err
			}
			user, err := promptRequired("User")
			if err != nil {
				return err
			}

			in := game.TradeInput{
				Company:  company,
				Leverage: leverage,
				Type:     tradeType,
				Quantity: quantity,
				User:     user,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			trade, err := newClient(apiBase).CreateTrade(ctx, in)
			if err != nil {
				if cl.IsTransportError(err) {
					return queueCommand(syncq.Command{
						Method: "POST",
						Path:   "/api/leverage-trades",
						Body: map[string]any{
							"company":  in.Company,
							"leverage": in.Leverage,
							"type":     in.Type,
							"quantity": in.Quantity,
							"user":     in.User,
						},
					}, err)
				}
				return err
			}
			printSuccess(fmt.Sprintf("Trade %s recorded.", trade.ID))
			return nil
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Delete a trade by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := newClient(apiBase).DeleteTrade(ctx, args[0]); err != nil {
				if cl.IsTransportError(err) {
					return queueCommand(syncq.Command{
						Method: "DELETE",
						Path:   "/api/leverage-trades/" + args[0],
					}, err)
				}
				return err
			}
			printSuccess("Trade deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, open, closeCmd)
	return cmd
}

func newSyncCmd(apiBase *string) *cobra.Command {
	var (
		userID   string
		stage    float64
		maxStage float64
		attempts float64
		club     string
		assets   float64
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync game progress for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(userID) == "" {
				return fmt.Errorf("--user is required")
			}
			body := map[string]any{"userId": userID}
			if cmd.Flags().Changed("stage") {
				body["currentStage"] = stage
			}
			if cmd.Flags().Changed("max-stage") {
				body["maxStage"] = maxStage
			}
			if cmd.Flags().Changed("attempts") {
				body["attempts"] = attempts
			}
			if cmd.Flags().Changed("club") {
				body["clubName"] = club
			}
			if cmd.Flags().Changed("assets") {
				body["totalAssets"] = assets
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := newClient(apiBase).SyncProgress(ctx, body); err != nil {
				if cl.IsTransportError(err) {
					return queueCommand(syncq.Command{
						Method: "POST",
						Path:   "/api/game/sync",
						Body:   body,
					}, err)
				}
				return err
			}
			printSuccess("Progress synced.")
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().Float64Var(&stage, "stage", 0, "current stage")
	cmd.Flags().Float64Var(&maxStage, "max-stage", 0, "best stage reached")
	cmd.Flags().Float64Var(&attempts, "attempts", 0, "attempt count")
	cmd.Flags().StringVar(&club, "club", "", "club name")
	cmd.Flags().Float64Var(&assets, "assets", 0, "total assets")
	return cmd
}

func newRankingsCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Leaderboards",
	}

	clubs := &cobra.Command{
		Use:   "clubs",
		Short: "Club leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			rankings, err := newClient(apiBase).ClubRankings(ctx)
			if err != nil {
				return err
			}
			renderClubRankings(rankings)
			return nil
		},
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "User leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			rankings, err := newClient(apiBase).UserRankings(ctx)
			if err != nil {
				return err
			}
			renderUserRankings(rankings)
			return nil
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Live leaderboard view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRankingsWatch(newClient(apiBase))
		},
	}

	cmd.AddCommand(clubs, users, watch)
	return cmd
}

func newQueueCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Offline command queue",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show queued commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			commands, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				printInfo("Queue is empty.")
				return nil
			}
			for i, c := range commands {
				fmt.Printf("%2d. %s %s\n", i+1, c.Method, c.Path)
			}
			return nil
		},
	}

	replay := &cobra.Command{
		Use:   "replay",
		Short: "Replay queued commands against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			commands, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				printInfo("Queue is empty.")
				return nil
			}
			client := newClient(apiBase)
			var failed []syncq.Command
			for _, c := range commands {
				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				err := client.Do(ctx, c.Method, c.Path, c.Body)
				cancel()
				if err != nil {
					if cl.IsTransportError(err) {
						failed = append(failed, c)
						printWarn(fmt.Sprintf("%s %s still unreachable", c.Method, c.Path))
						continue
					}
					// The server rejected it; drop it rather than loop forever.
					printWarn(fmt.Sprintf("%s %s rejected: %v", c.Method, c.Path, err))
					continue
				}
				printSuccess(fmt.Sprintf("%s %s replayed", c.Method, c.Path))
			}
			if failed == nil {
				failed = []syncq.Command{}
			}
			return syncq.Save(failed)
		},
	}

	cmd.AddCommand(list, replay)
	return cmd
}

func queueCommand(cmd syncq.Command, cause error) error {
	if err := syncq.Push(cmd); err != nil {
		return fmt.Errorf("api unreachable (%v) and queueing failed: %w", cause, err)
	}
	printWarn("API unreachable. Command queued; run `sword queue replay` later.")
	return nil
}
