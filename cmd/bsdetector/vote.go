package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/bsdetector/internal/config"
	"github.com/nao1215/bsdetector/internal/model"
	"github.com/nao1215/bsdetector/internal/votes"
	"github.com/spf13/cobra"
)

// ErrNoStoredAnalysis is returned by "vote rating" when the URL was never
// analysed with the store enabled and no --original rating is given.
var ErrNoStoredAnalysis = errors.New("no stored analysis for this URL (run analyze first or pass --original)")

// NewVoteCmd creates the vote command and its subcommands.
func NewVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Record and inspect user votes on analyses",
		Long: `Vote records how users judge an analysis and shows what the votes say.

Votes are append-only. Each vote carries a 1-5 star rating, whether the
analysis was accurate (--accurate or --inaccurate), and optional
feedback. The community rating of an article is its analysed rating
adjusted by the votes cast for its URL.

Examples:
  # The analysis was accurate, 4 stars
  bsdetector vote add https://example.com/x --rating 4 --accurate

  # The analysis missed, 1 star
  bsdetector vote add https://example.com/x -r 1 --inaccurate -f "It is satire"

  # List the votes for one article
  bsdetector vote list https://example.com/x

  # Statistics over all votes
  bsdetector vote stats

  # Community rating of the last stored analysis of an article
  bsdetector vote rating https://example.com/x`,
	}

	cmd.PersistentFlags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.PersistentFlags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")

	cmd.AddCommand(newVoteAddCmd())
	cmd.AddCommand(newVoteListCmd())
	cmd.AddCommand(newVoteStatsCmd())
	cmd.AddCommand(newVoteRatingCmd())

	return cmd
}

func newVoteAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <article-url>",
		Short: "Record a vote on an analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := cmd.Flags().GetInt("rating")
			if err != nil {
				return err
			}
			// Exactly one of --accurate and --inaccurate is set.
			accurate, err := cmd.Flags().GetBool("accurate")
			if err != nil {
				return err
			}
			feedback, err := cmd.Flags().GetString("feedback")
			if err != nil {
				return err
			}

			return withService(cmd, func(ctx context.Context, _ *config.Config, svc *votes.Service) error {
				vote := &model.Vote{
					AnalysisURL: args[0],
					UserRating:  rating,
					Feedback:    feedback,
					WasAccurate: accurate,
				}
				if err := svc.SaveVote(ctx, vote); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded vote %s for %s\n", vote.ID, vote.AnalysisURL)
				return nil
			})
		},
	}

	cmd.Flags().IntP("rating", "r", 0, "Star rating from 1 to 5 (required)")
	cmd.Flags().BoolP("accurate", "a", false, "The analysis was accurate")
	cmd.Flags().BoolP("inaccurate", "i", false, "The analysis was inaccurate")
	cmd.Flags().StringP("feedback", "f", "", "Optional feedback, at most 500 characters")
	_ = cmd.MarkFlagRequired("rating") //nolint:errcheck // The flag is defined above
	cmd.MarkFlagsOneRequired("accurate", "inaccurate")
	cmd.MarkFlagsMutuallyExclusive("accurate", "inaccurate")

	return cmd
}

func newVoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [article-url]",
		Short: "List votes, optionally only those for one article",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, cfg *config.Config, svc *votes.Service) error {
				var (
					list []model.Vote
					err  error
				)
				if len(args) == 1 {
					list, err = svc.VotesForURL(ctx, args[0])
				} else {
					list, err = svc.Votes(ctx)
				}
				if err != nil {
					return fmt.Errorf("failed to read votes: %w", err)
				}

				_, err = newReportWriter(cmd.OutOrStdout(), cfg).WriteVotes(list)
				return err
			})
		},
	}
}

func newVoteStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics over all votes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, func(ctx context.Context, cfg *config.Config, svc *votes.Service) error {
				stats, err := svc.Stats(ctx)
				if err != nil {
					return fmt.Errorf("failed to compute statistics: %w", err)
				}

				_, err = newReportWriter(cmd.OutOrStdout(), cfg).WriteStats(stats)
				return err
			})
		},
	}
}

func newVoteRatingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rating <article-url>",
		Short: "Show the community-adjusted rating of an article",
		Long: `Rating adjusts an analysed bullshit rating by the votes cast for the URL.

Without --original the rating of the most recent stored analysis is used
and the full report is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]

			return withService(cmd, func(ctx context.Context, cfg *config.Config, svc *votes.Service) error {
				if cmd.Flags().Changed("original") {
					original, err := cmd.Flags().GetInt("original")
					if err != nil {
						return err
					}
					if original < 0 || original > 100 {
						return fmt.Errorf("invalid --original %d: must be between 0 and 100", original)
					}

					adjusted, err := svc.AdjustedRating(ctx, url, original)
					if err != nil {
						return fmt.Errorf("failed to read votes: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\n", adjusted)
					return nil
				}

				analysis, err := svc.LatestAnalysis(ctx, url)
				if err != nil {
					return fmt.Errorf("failed to read stored analysis: %w", err)
				}
				if analysis == nil {
					return fmt.Errorf("%w: %s", ErrNoStoredAnalysis, url)
				}

				rep, err := svc.Report(ctx, analysis)
				if err != nil {
					return fmt.Errorf("failed to read votes: %w", err)
				}
				count, err := svc.AnalysisCount(ctx, url)
				if err != nil {
					return fmt.Errorf("failed to count stored analyses: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Latest of %d stored analyses of %s\n", count, url)

				_, err = newReportWriter(cmd.OutOrStdout(), cfg).Write(rep)
				return err
			})
		},
	}

	cmd.Flags().Int("original", 0, "Analysed rating (0-100) to adjust instead of the stored one")

	return cmd
}

// withService loads the configuration, opens the vote service and runs fn.
// The service is closed afterwards.
func withService(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, svc *votes.Service) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := reportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.ValidateSettings(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx := cmd.Context()

	svc, err := openService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("failed to close vote store", "error", err)
		}
	}()

	return fn(ctx, cfg, svc)
}
