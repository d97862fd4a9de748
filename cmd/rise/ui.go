package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "riseyn/internal/cli"
	"riseyn/internal/economy"
	"riseyn/internal/game"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
	muted       = color.New(color.FgHiBlack)
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

// describeError turns API rejections into something a player can act on.
func describeError(err error) string {
	var apiErr *cl.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	msg := apiErr.Message
	switch {
	case apiErr.Shortfall > 0 && apiErr.Reason == "insufficient_cash":
		msg += fmt.Sprintf(" (short %s)", economy.FormatCash(apiErr.Shortfall))
	case apiErr.Shortfall > 0:
		msg += fmt.Sprintf(" (short %d)", apiErr.Shortfall)
	}
	if apiErr.RetryAfter > 0 {
		msg += " (ready in " + economy.FormatDuration(apiErr.RetryAfter) + ")"
	}
	if apiErr.Retryable {
		msg += " (busy, try again)"
	}
	if apiErr.Duplicate {
		msg = "already applied"
	}
	return msg
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// promptPassword hides input on a terminal and falls back to a plain read
// when stdin is piped.
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptRequired(label)
	}
	for {
		fmt.Printf("%s: ", label)
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		if text := strings.TrimSpace(string(raw)); text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptConfirm(label string) (bool, error) {
	choice, err := promptChoice(label, []string{"y", "n"}, "n")
	if err != nil {
		return false, err
	}
	return choice == "y", nil
}

func promptInt64(label string, min int64) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func colorizeCash(v int64) string {
	switch {
	case v > 0:
		return success.Sprint("+" + economy.FormatCash(v))
	case v < 0:
		return danger.Sprint(economy.FormatCash(v))
	default:
		return muted.Sprint(economy.FormatCash(0))
	}
}

func lockMark(locked bool) string {
	if locked {
		return muted.Sprint("locked")
	}
	return ""
}

func panel(title string, lines ...string) string {
	body := titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return panelStyle.Render(body)
}

func field(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + " " + value
}

func statsPanel(p game.PlayerView) string {
	name := p.Username
	if p.PrestigeBadge != "" {
		name += " " + p.PrestigeBadge
	}
	lines := []string{
		field("Cash", economy.FormatCash(p.Cash)),
		field("Tier", strconv.Itoa(p.Tier)),
		field("Level", fmt.Sprintf("%d (%d xp, next at %d)", p.Level, p.XP, p.XPForNextLevel)),
		field("Respect", strconv.FormatInt(p.Respect, 10)),
		field("Power", strconv.FormatInt(p.Power, 10)),
		field("Energy", fmt.Sprintf("%d/%d (%s)", p.Energy, p.MaxEnergy, economy.FormatDuration(time.Duration(p.EnergyFullInSecs)*time.Second))),
	}
	if p.PrestigeLevel > 0 {
		lines = append(lines, field("Prestige", strconv.FormatInt(p.PrestigeLevel, 10)))
	}
	if p.Crew != nil {
		lines = append(lines, field("Crew", fmt.Sprintf("[%s] %s", p.Crew.Tag, p.Crew.Name)))
	}
	return panel(name, lines...)
}

func renderPlayer(p game.PlayerView) {
	fmt.Println(statsPanel(p))
}

func renderDashboard(d game.Dashboard) {
	bizLines := make([]string, 0, len(d.Businesses)+1)
	for _, b := range d.Businesses {
		ready := success.Sprint("ready")
		if b.ReadyInSeconds > 0 {
			ready = muted.Sprint(economy.FormatDuration(time.Duration(b.ReadyInSeconds) * time.Second))
		}
		bizLines = append(bizLines, fmt.Sprintf("#%-4d %-22s %8s  %s", b.ID, truncate(b.Name, 22), economy.FormatCash(b.Income), ready))
	}
	if len(bizLines) == 0 {
		bizLines = append(bizLines, muted.Sprint("No businesses yet. Try `rise biz`."))
	}

	progress := []string{}
	if d.Boss.Boss != nil {
		gate := success.Sprint("can fight")
		if !d.Boss.CanFight {
			gate = warn.Sprintf("need %d more power", d.Boss.PowerGap)
		}
		progress = append(progress, field("Boss", fmt.Sprintf("%s (%s)", d.Boss.Boss.Name, gate)))
	} else if d.Boss.MaxTier {
		progress = append(progress, field("Boss", "top tier reached"))
	}
	if d.Prestige.Eligible {
		progress = append(progress, field("Prestige", success.Sprint("ready")))
	} else {
		progress = append(progress, field("Prestige", fmt.Sprintf("cash gap %s, level gap %d", economy.FormatCash(d.Prestige.CashGap), d.Prestige.LevelGap)))
	}
	progress = append(progress, field("Assets", strconv.Itoa(len(d.Assets))))

	top := lipgloss.JoinHorizontal(lipgloss.Top, statsPanel(d.Player), panel("Progress", progress...))
	fmt.Println(top)
	fmt.Println(panel("Businesses", bizLines...))
	if d.Offline.Earned > 0 {
		printSuccess(fmt.Sprintf("While you were away (%dm): %s", d.Offline.Minutes, economy.FormatCash(d.Offline.Earned)))
	}
}

func renderEnergy(e game.EnergyView) {
	accent.Printf("Energy %d/%d", e.Energy, e.MaxEnergy)
	if e.Restored > 0 {
		success.Printf("  +%d", e.Restored)
	}
	fmt.Println()
	printInfo("Full in " + e.TimeUntilFull)
}

func renderOffline(o economy.OfflineEarnings) {
	if o.Earned == 0 {
		printInfo("Nothing earned offline.")
		return
	}
	printSuccess(fmt.Sprintf("Claimed %s for %d minutes away.", economy.FormatCash(o.Earned), o.Minutes))
}

func renderHustles(l game.HustleListing) {
	accent.Printf("Hustles (energy %d)\n", l.Energy)
	for _, h := range l.Hustles {
		fmt.Printf("  %-18s %-24s T%d %8s %4d xp %3d energy %s\n",
			h.ID, truncate(h.Name, 24), h.Tier, economy.FormatCash(h.Payout), h.XP, h.Energy, lockMark(h.Locked))
	}
	muted.Printf("  tap: %s for %d energy (`rise tap`)\n", l.Tap.Name, l.Tap.Energy)
}

func renderHustleResult(r economy.HustleResult) {
	printSuccess(fmt.Sprintf("%s: %s, +%d xp", r.Hustle.Name, colorizeCash(r.Earned), r.XPGained))
	muted.Printf("Cash %s, energy %d/%d\n", economy.FormatCash(r.Player.Cash), r.Player.Energy, r.Player.MaxEnergy)
}

func renderBusinessView(b game.BusinessView) {
	ready := "ready"
	if b.ReadyInSeconds > 0 {
		ready = economy.FormatDuration(time.Duration(b.ReadyInSeconds) * time.Second)
	}
	fmt.Printf("  #%-4d %-22s L%-3d %8s every %-7s %s\n",
		b.ID, truncate(b.Name, 22), b.UpgradeLevel, economy.FormatCash(b.Income),
		economy.FormatDuration(time.Duration(b.SpeedSeconds)*time.Second), ready)
	muted.Printf("        upgrade %s  speed mgr %s  income mgr %s\n",
		economy.FormatCash(b.UpgradeCost), economy.FormatCash(b.SpeedManagerCost), economy.FormatCash(b.IncomeManagerCost))
}

func renderBusinesses(l game.BusinessListing) {
	accent.Println("Your businesses")
	if len(l.Owned) == 0 {
		muted.Println("  none yet")
	}
	for _, b := range l.Owned {
		renderBusinessView(b)
	}
	accent.Println("For sale")
	for _, t := range l.Catalog {
		if t.Owned {
			continue
		}
		fmt.Printf("  %-20s %-22s T%d %9s  earns %s/%ds %s\n",
			t.ID, truncate(t.Name, 22), t.Tier, economy.FormatCash(t.Price),
			economy.FormatCash(t.BaseIncome), t.BaseSpeed, lockMark(t.Locked))
	}
}

func renderBusinessOutcome(o game.BusinessOutcome) {
	switch {
	case o.Credited > 0:
		printSuccess(fmt.Sprintf("%s paid out %s.", o.Business.Name, economy.FormatCash(o.Credited)))
	case o.Cost > 0:
		printSuccess(fmt.Sprintf("%s: %s done for %s.", o.Business.Name, o.Action, economy.FormatCash(o.Cost)))
	default:
		printSuccess(fmt.Sprintf("%s: %s done.", o.Business.Name, o.Action))
	}
	renderBusinessView(o.View)
	muted.Printf("Cash %s\n", economy.FormatCash(o.Player.Cash))
}

func renderCollectAll(r game.CollectAllResult) {
	printSuccess(fmt.Sprintf("Collected %s from %d businesses.", economy.FormatCash(r.Credited), len(r.Collected)))
	muted.Printf("Cash %s\n", economy.FormatCash(r.Player.Cash))
}

func renderAssets(assets []game.CatalogAsset) {
	var last economy.AssetCategory = -1
	for _, a := range assets {
		if a.Category != last {
			accent.Println(strings.ToUpper(a.Category.String()))
			last = a.Category
		}
		owned := ""
		if a.Owned {
			owned = success.Sprint("owned")
		}
		fmt.Printf("  %-22s %-24s T%d %9s  +%d power +%d respect %s%s\n",
			a.ID, truncate(a.Name, 24), a.Tier, economy.FormatCash(a.Price), a.Power, a.Respect, owned, lockMark(a.Locked))
	}
}

func renderAssetPurchase(p game.AssetPurchase) {
	printSuccess(fmt.Sprintf("Bought %s for %s.", p.Asset.Name, economy.FormatCash(p.Cost)))
	muted.Printf("Cash %s, level %d\n", economy.FormatCash(p.Player.Cash), p.Player.Level)
}

func renderBossStatus(s game.BossStatus) {
	if s.Boss == nil {
		printInfo("No boss left. You run the city.")
		return
	}
	lines := []string{
		field("Unlocks", fmt.Sprintf("tier %d", s.Boss.TargetTier)),
		field("Needs", fmt.Sprintf("%d power (you have %d)", s.Boss.PowerRequired, s.Power)),
		field("Reward", fmt.Sprintf("%s, %d xp, %d respect", economy.FormatCash(s.Boss.CashReward), s.Boss.XPReward, s.Boss.RespectReward)),
	}
	fmt.Println(panel(s.Boss.Name, lines...))
	if !s.CanFight {
		printWarn(fmt.Sprintf("Build %d more power first.", s.PowerGap))
	}
}

func renderBossFight(o economy.BossOutcome) {
	if o.Win {
		printSuccess(fmt.Sprintf("You beat %s! Tier %d unlocked.", o.Boss.Name, o.Player.Tier))
	} else {
		printError(fmt.Sprintf("%s sent you home.", o.Boss.Name))
	}
	muted.Printf("Rolls %.0f vs %.0f  cash %s  xp %+d  respect %+d\n",
		o.PlayerRoll, o.BossRoll, colorizeCash(o.CashDelta), o.XPDelta, o.RespectDelta)
}

func renderPrestigeStatus(s game.PrestigeStatus) {
	check := func(ok bool) string {
		if ok {
			return success.Sprint("ok")
		}
		return danger.Sprint("no")
	}
	lines := []string{
		field("Tier 5", check(s.TierOK)),
		field("Level", check(s.LevelOK)),
		field("Cash", check(s.CashOK)),
		field("Count", strconv.FormatInt(s.Count, 10)),
	}
	if s.Badge != "" {
		lines = append(lines, field("Rank", s.Icon+" "+s.Badge))
	}
	if s.Next != nil {
		lines = append(lines, field("Next rank", fmt.Sprintf("%s %s in %d", s.Next.Icon, s.Next.Name, s.NextAfterIn)))
	}
	fmt.Println(panel("Prestige", lines...))
	if !s.Eligible {
		printWarn(fmt.Sprintf("Missing %s cash and %d levels.", economy.FormatCash(s.CashGap), s.LevelGap))
	}
}

func renderPrestigeResult(r game.PrestigeResult) {
	printSuccess(fmt.Sprintf("Prestiged! Count %d.", r.After.PrestigeLevel))
	muted.Printf("Cash %s -> %s, tier %d -> %d\n",
		economy.FormatCash(r.Before.Cash), economy.FormatCash(r.After.Cash), r.Before.Tier, r.After.Tier)
}

func renderDice(r game.DiceResult) {
	fmt.Printf("You rolled %d, %s rolled %d", r.PlayerRoll, r.Opponent, r.TargetRoll)
	if r.Rerolls > 0 {
		muted.Printf(" (%d rerolls)", r.Rerolls)
	}
	fmt.Println()
	if r.PlayerWon {
		printSuccess(fmt.Sprintf("You won %s (house took %s).", economy.FormatCash(r.Payout), economy.FormatCash(r.HouseCut)))
	} else {
		printError(fmt.Sprintf("You lost %s.", economy.FormatCash(r.Bet)))
	}
}

func renderShootout(o economy.ShootoutOutcome) {
	for _, r := range o.Rounds {
		winner := muted.Sprint("draw")
		switch r.Winner {
		case economy.RoundPlayer:
			winner = success.Sprint("you")
		case economy.RoundNPC:
			winner = danger.Sprint("house")
		}
		fmt.Printf("  R%d  %-6s vs %-6s -> %s\n", r.Round, r.PlayerMove, r.NPCMove, winner)
	}
	if o.PlayerWon {
		printSuccess(fmt.Sprintf("Won %d-%d, +%s.", o.PlayerWins, o.NPCWins, economy.FormatCash(o.Stake)))
	} else {
		printError(fmt.Sprintf("Lost %d-%d, -%s.", o.PlayerWins, o.NPCWins, economy.FormatCash(o.Stake)))
	}
}

func renderBigBank(r game.BigBankResult) {
	fmt.Printf("Your power %.0f vs %s %.0f\n", r.PlayerPower, r.Opponent, r.TargetPower)
	if r.PlayerWon {
		printSuccess(fmt.Sprintf("Big bank! You took %s.", economy.FormatCash(r.Transfer)))
	} else {
		printError(fmt.Sprintf("%s took %s off you.", r.Opponent, economy.FormatCash(r.Transfer)))
	}
}

func renderCrew(c *game.CrewView) {
	if c == nil {
		printInfo("Not in a crew. `rise crew create` or `rise crew join TAG`.")
		return
	}
	fmt.Println(panel(fmt.Sprintf("[%s] %s", c.Tag, c.Name),
		field("Members", fmt.Sprintf("%d/%d", c.Members, economy.MaxCrewMembers)),
		field("Synergy", fmt.Sprintf("+%.1f%% income", float64(c.SynergyPermille)/10)),
		field("Role", c.Role),
	))
}

func renderLeaderboard(kind string, rows []game.LeaderboardRow) {
	accent.Printf("Leaderboard: %s\n", kind)
	if len(rows) == 0 {
		muted.Println("  nobody ranked yet")
		return
	}
	for _, r := range rows {
		fmt.Printf("  %3d. %-24s %s\n", r.Rank, truncate(r.Username, 24), formatScore(kind, r.Score))
	}
}

func renderRank(kind string, row *game.LeaderboardRow) {
	if row == nil {
		printInfo("Not ranked yet.")
		return
	}
	accent.Printf("#%d on %s", row.Rank, kind)
	fmt.Printf("  %s\n", formatScore(kind, row.Score))
}

func formatScore(kind string, score float64) string {
	if kind == "wealth" {
		return economy.FormatCash(int64(score))
	}
	return strconv.FormatFloat(score, 'f', 0, 64)
}

func renderReplayResult(r game.CommandResult) {
	switch r.Status {
	case game.ReplayApplied:
		success.Printf("  applied   %s\n", r.Action)
	case game.ReplayDuplicate:
		muted.Printf("  duplicate %s\n", r.Action)
	default:
		warn.Printf("  rejected  %s: %s\n", r.Action, r.Error)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "~"
}
