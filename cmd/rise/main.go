package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	cl "riseyn/internal/cli"
	"riseyn/internal/config"
	"riseyn/internal/economy"
	"riseyn/internal/game"
	"riseyn/internal/syncq"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "rise",
		Short:        "Rise of a YN terminal client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newSignupCmd(&apiBase),
		newLoginCmd(&apiBase),
		newLogoutCmd(),
		newDashCmd(&apiBase),
		newMeCmd(&apiBase),
		newEnergyCmd(&apiBase),
		newOfflineCmd(&apiBase),
		newHustleCmd(&apiBase),
		newTapCmd(&apiBase),
		newBusinessCmd(&apiBase),
		newAssetsCmd(&apiBase),
		newBossCmd(&apiBase),
		newPrestigeCmd(&apiBase),
		newDiceCmd(&apiBase),
		newShootoutCmd(&apiBase),
		newBigBankCmd(&apiBase),
		newCrewCmd(&apiBase),
		newLeaderboardCmd(&apiBase),
		newSyncCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		printError("error: " + describeError(err))
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

// withSession runs fn with the saved access token. A token at or near its
// recorded expiry is refreshed first; a 401 triggers one refresh and a retry.
// Actions parked in the offline queue are reported instead of failing the
// command.
func withSession(cmd *cobra.Command, apiBase *string, fn func(ctx context.Context, client *cl.Client, token string) error) error {
	sess, err := cl.LoadSession()
	if err != nil {
		return fmt.Errorf("login required: %w", err)
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	client := newClient(apiBase)

	if sess.NeedsRefresh(time.Now()) {
		if err := refreshSession(ctx, client, &sess); err != nil {
			return err
		}
	}
	err = fn(ctx, client, sess.AccessToken)
	var apiErr *cl.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized && sess.RefreshToken != "" {
		if err := refreshSession(ctx, client, &sess); err != nil {
			return err
		}
		err = fn(ctx, client, sess.AccessToken)
	}
	if errors.Is(err, cl.ErrQueued) {
		printWarn(err.Error())
		printInfo("Run `rise sync` once you are back online.")
		return nil
	}
	return err
}

func refreshSession(ctx context.Context, client *cl.Client, sess *cl.Session) error {
	fresh, err := client.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return fmt.Errorf("session expired, run `rise login`: %w", err)
	}
	sess.Renew(fresh, time.Now())
	return cl.SaveSession(*sess)
}

func newSignupCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			username, err := promptOptional("Username (optional)")
			if err != nil {
				return err
			}
			if username != "" && !game.ValidUsername(username) {
				return fmt.Errorf("username must be 3-24 letters, digits or underscores")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			session, err := newClient(apiBase).Signup(ctx, email, password, username)
			if err != nil {
				return err
			}
			if strings.TrimSpace(session.AccessToken) == "" {
				printWarn("Signup created. Verify your email, then run `rise login`.")
				return nil
			}
			if err := cl.SaveSession(cl.NewSession(email, session, time.Now())); err != nil {
				return err
			}
			printSuccess("Signup complete. Welcome to the block.")
			return nil
		},
	}
}

func newLoginCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and save a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			session, err := newClient(apiBase).Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.NewSession(email, session, time.Now())); err != nil {
				return err
			}
			printSuccess("Login successful.")
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Logged out.")
			return nil
		},
	}
}

func newDashCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:     "dash",
		Short:   "Show your dashboard and claim offline earnings",
		Aliases: []string{"dashboard"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.Dashboard(ctx, token)
				if err != nil {
					return err
				}
				renderDashboard(out)
				return nil
			})
		},
	}
}

func newMeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.State(ctx, token)
				if err != nil {
					return err
				}
				renderPlayer(out)
				return nil
			})
		},
	}
}

func newEnergyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "energy",
		Short: "Regenerate energy and show time until full",
		RunE: func(cmd *cobra.Command, args []string) error {
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.SyncEnergy(ctx, token, idem)
				if err != nil {
					return err
				}
				renderEnergy(out)
				return nil
			})
		},
	}
}

func newOfflineCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "offline",
		Short: "Claim business income earned while away",
		RunE: func(cmd *cobra.Command, args []string) error {
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.ClaimOffline(ctx, token, idem)
				if err != nil {
					return err
				}
				renderOffline(out)
				return nil
			})
		},
	}
}

func newHustleCmd(apiBase *string) *cobra.Command {
	hustle := &cobra.Command{
		Use:   "hustle [HUSTLE_ID]",
		Short: "List hustles or run one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
					out, err := c.Hustles(ctx, token)
					if err != nil {
						return err
					}
					renderHustles(out)
					return nil
				})
			}
			id := strings.TrimSpace(args[0])
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.Hustle(ctx, token, id, idem)
				if err != nil {
					return err
				}
				renderHustleResult(out)
				return nil
			})
		},
	}
	return hustle
}

func newTapCmd(apiBase *string) *cobra.Command {
	var times int
	tap := &cobra.Command{
		Use:   "tap",
		Short: "Run the quick hustle for your tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 1 {
				times = 1
			}
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				var total int64
				for i := 0; i < times; i++ {
					out, err := c.Tap(ctx, token, cl.NewIdempotencyKey())
					if err != nil {
						if i > 0 {
							printInfo(fmt.Sprintf("Stopped after %d taps, earned %s.", i, economy.FormatCash(total)))
						}
						return err
					}
					total += out.Earned
					if i == times-1 {
						renderHustleResult(out)
					}
				}
				if times > 1 {
					printSuccess(fmt.Sprintf("%d taps, earned %s.", times, economy.FormatCash(total)))
				}
				return nil
			})
		},
	}
	tap.Flags().IntVarP(&times, "times", "n", 1, "number of taps")
	return tap
}

func newBusinessCmd(apiBase *string) *cobra.Command {
	biz := &cobra.Command{
		Use:     "biz",
		Short:   "Business commands",
		Aliases: []string{"business", "businesses"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.Businesses(ctx, token)
				if err != nil {
					return err
				}
				renderBusinesses(out)
				return nil
			})
		},
	}

	biz.AddCommand(&cobra.Command{
		Use:   "buy [TEMPLATE_ID]",
		Short: "Buy a business",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templateID, err := stringFromArgOrPrompt(args, 0, "Business id")
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.BuyBusiness(ctx, token, templateID, idem)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Bought %s (#%d).", out.Name, out.ID))
				renderBusinessView(out)
				return nil
			})
		},
	})

	biz.AddCommand(&cobra.Command{
		Use:   "upgrade [BUSINESS_ID]",
		Short: "Upgrade a business's income",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := int64FromArgOrPrompt(args, 0, "Business #")
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.UpgradeBusiness(ctx, token, id, idem)
				if err != nil {
					return err
				}
				renderBusinessOutcome(out)
				return nil
			})
		},
	})

	biz.AddCommand(&cobra.Command{
		Use:   "hire [BUSINESS_ID] [speed|income]",
		Short: "Hire a speed or income manager",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := int64FromArgOrPrompt(args, 0, "Business #")
			if err != nil {
				return err
			}
			rawTrack := ""
			if len(args) > 1 {
				rawTrack = args[1]
			} else if rawTrack, err = promptChoice("Manager", []string{"speed", "income"}, "income"); err != nil {
				return err
			}
			track, err := economy.ParseManagerTrack(rawTrack)
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.HireManager(ctx, token, id, track, idem)
				if err != nil {
					return err
				}
				renderBusinessOutcome(out)
				return nil
			})
		},
	})

	biz.AddCommand(&cobra.Command{
		Use:   "collect [BUSINESS_ID]",
		Short: "Collect one business, or every ready business without an id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idem := cl.NewIdempotencyKey()
			if len(args) == 0 {
				return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
					out, err := c.CollectAll(ctx, token, idem)
					if err != nil {
						return err
					}
					renderCollectAll(out)
					return nil
				})
			}
			id, err := int64FromArgOrPrompt(args, 0, "Business #")
			if err != nil {
				return err
			}
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.CollectBusiness(ctx, token, id, idem)
				if err != nil {
					return err
				}
				renderBusinessOutcome(out)
				return nil
			})
		},
	})
	return biz
}

func newAssetsCmd(apiBase *string) *cobra.Command {
	var category string
	assets := &cobra.Command{
		Use:     "assets",
		Short:   "Browse and buy assets",
		Aliases: []string{"shop"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" {
				if _, err := economy.ParseAssetCategory(category); err != nil {
					return err
				}
			}
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.Assets(ctx, token, category)
				if err != nil {
					return err
				}
				renderAssets(out)
				return nil
			})
		},
	}
	assets.Flags().StringVarP(&category, "category", "c", "", "filter by category")

	assets.AddCommand(&cobra.Command{
		Use:   "buy [ASSET_ID]",
		Short: "Buy an asset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetID, err := stringFromArgOrPrompt(args, 0, "Asset id")
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.BuyAsset(ctx, token, assetID, idem)
				if err != nil {
					return err
				}
				renderAssetPurchase(out)
				return nil
			})
		},
	})
	return assets
}

func newBossCmd(apiBase *string) *cobra.Command {
	boss := &cobra.Command{
		Use:   "boss",
		Short: "Show the boss guarding your next tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.BossStatus(ctx, token)
				if err != nil {
					return err
				}
				renderBossStatus(out)
				return nil
			})
		},
	}
	boss.AddCommand(&cobra.Command{
		Use:   "fight",
		Short: "Fight the boss for the next tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.FightBoss(ctx, token, idem)
				if err != nil {
					return err
				}
				renderBossFight(out)
				return nil
			})
		},
	})
	return boss
}

func newPrestigeCmd(apiBase *string) *cobra.Command {
	var yes bool
	prestige := &cobra.Command{
		Use:   "prestige",
		Short: "Check prestige requirements, or reset with --yes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				status, err := c.PrestigeStatus(ctx, token)
				if err != nil {
					return err
				}
				renderPrestigeStatus(status)
				if !status.Eligible {
					return nil
				}
				if !yes {
					ok, err := promptConfirm("Prestige now? Cash, tier, xp and respect reset")
					if err != nil || !ok {
						return err
					}
				}
				out, err := c.Prestige(ctx, token, cl.NewIdempotencyKey())
				if err != nil {
					return err
				}
				renderPrestigeResult(out)
				return nil
			})
		},
	}
	prestige.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return prestige
}

func newDiceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dice [PLAYER] [BET]",
		Short: "Roll dice against another player",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := stringFromArgOrPrompt(args, 0, "Opponent")
			if err != nil {
				return err
			}
			bet, err := int64FromArgOrPrompt(args, 1, "Bet")
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.Dice(ctx, token, target, bet, idem)
				if err != nil {
					return err
				}
				renderDice(out)
				return nil
			})
		},
	}
}

func newShootoutCmd(apiBase *string) *cobra.Command {
	var rawMoves string
	shootout := &cobra.Command{
		Use:   "shootout [STAKE]",
		Short: "Best of five against the house",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stake, err := int64FromArgOrPrompt(args, 0, "Stake")
			if err != nil {
				return err
			}
			var moves []economy.Move
			if rawMoves != "" {
				moves, err = parseMoves(rawMoves)
			} else {
				moves, err = pickMoves()
			}
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.Shootout(ctx, token, moves, stake, idem)
				if err != nil {
					return err
				}
				renderShootout(out)
				return nil
			})
		},
	}
	shootout.Flags().StringVarP(&rawMoves, "moves", "m", "", "five comma separated moves: pull, duck, reload")
	return shootout
}

func newBigBankCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bigbank [PLAYER] [PERCENT]",
		Short: "Wager 5-25% of your cash on a power roll",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := stringFromArgOrPrompt(args, 0, "Opponent")
			if err != nil {
				return err
			}
			percent, err := int64FromArgOrPrompt(args, 1, "Percent")
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.BigBank(ctx, token, target, int(percent), idem)
				if err != nil {
					return err
				}
				renderBigBank(out)
				return nil
			})
		},
	}
}

func newCrewCmd(apiBase *string) *cobra.Command {
	crew := &cobra.Command{
		Use:   "crew",
		Short: "Crew commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.Crew(ctx, token)
				if err != nil {
					return err
				}
				renderCrew(out)
				return nil
			})
		},
	}
	crew.AddCommand(&cobra.Command{
		Use:   "create [NAME] [TAG]",
		Short: "Start a crew",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := stringFromArgOrPrompt(args, 0, "Crew name")
			if err != nil {
				return err
			}
			tag, err := stringFromArgOrPrompt(args, 1, "Tag")
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.CreateCrew(ctx, token, name, tag, idem)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Crew [%s] %s created.", out.Tag, out.Name))
				renderCrew(&out)
				return nil
			})
		},
	})
	crew.AddCommand(&cobra.Command{
		Use:   "join [TAG]",
		Short: "Join a crew by tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := stringFromArgOrPrompt(args, 0, "Tag")
			if err != nil {
				return err
			}
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.JoinCrew(ctx, token, tag, idem)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Joined [%s] %s.", out.Tag, out.Name))
				renderCrew(&out)
				return nil
			})
		},
	})
	crew.AddCommand(&cobra.Command{
		Use:   "leave",
		Short: "Leave your crew",
		RunE: func(cmd *cobra.Command, args []string) error {
			idem := cl.NewIdempotencyKey()
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				out, err := c.LeaveCrew(ctx, token, idem)
				if err != nil {
					return err
				}
				if out.Disbanded {
					printWarn(fmt.Sprintf("Crew %s disbanded.", out.Crew))
				} else {
					printSuccess(fmt.Sprintf("Left %s.", out.Crew))
				}
				return nil
			})
		},
	})
	return crew
}

func newLeaderboardCmd(apiBase *string) *cobra.Command {
	var limit int
	var mine bool
	lb := &cobra.Command{
		Use:     "leaderboard [wealth|respect|level|prestige]",
		Short:   "Show a leaderboard",
		Aliases: []string{"lb"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "wealth"
			if len(args) > 0 {
				kind = strings.ToLower(strings.TrimSpace(args[0]))
			}
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				if mine {
					row, err := c.Rank(ctx, token, kind)
					if err != nil {
						return err
					}
					renderRank(kind, row)
					return nil
				}
				rows, err := c.Leaderboard(ctx, token, kind, limit)
				if err != nil {
					return err
				}
				renderLeaderboard(kind, rows)
				return nil
			})
		},
	}
	lb.Flags().IntVarP(&limit, "limit", "l", 10, "rows to show (max 100)")
	lb.Flags().BoolVar(&mine, "me", false, "show only your position")
	return lb
}

func newSyncCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay actions queued while offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				printInfo("Sync queue is empty.")
				return nil
			}
			return withSession(cmd, apiBase, func(ctx context.Context, c *cl.Client, token string) error {
				settled := make(map[string]bool, len(queue))
				var replayErr error
				for start := 0; start < len(queue); start += game.MaxReplayCommands {
					end := min(start+game.MaxReplayCommands, len(queue))
					results, err := c.Replay(ctx, token, queue[start:end])
					for _, res := range results {
						settled[res.IdempotencyKey] = true
						renderReplayResult(res)
					}
					if err != nil {
						replayErr = err
						break
					}
				}
				remaining, err := syncq.Drop(settled)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Sync complete: replayed=%d remaining=%d", len(settled), len(remaining)))
				return replayErr
			})
		},
	}
}

func stringFromArgOrPrompt(args []string, idx int, label string) (string, error) {
	if len(args) > idx {
		if v := strings.TrimSpace(args[idx]); v != "" {
			return v, nil
		}
	}
	return promptRequired(label)
}

func int64FromArgOrPrompt(args []string, idx int, label string) (int64, error) {
	if len(args) > idx {
		v, err := strconv.ParseInt(strings.TrimSpace(args[idx]), 10, 64)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("invalid %s", strings.ToLower(label))
		}
		return v, nil
	}
	return promptInt64(label, 1)
}

func parseMoves(raw string) ([]economy.Move, error) {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) != economy.ShootoutMoves {
		return nil, economy.ErrInvalidMoveCount
	}
	moves := make([]economy.Move, 0, len(parts))
	for _, p := range parts {
		m, err := economy.ParseMove(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, p)
		}
		moves = append(moves, m)
	}
	return moves, nil
}
