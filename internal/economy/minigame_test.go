package economy

import (
	"errors"
	"math/rand"
	"testing"
)

func funded(cash int64, tier int) Player {
	p := NewPlayer(epoch)
	p.Cash = cash
	p.Tier = tier
	return p
}

func TestResolveDiceRerollsTies(t *testing.T) {
	rng := &scriptedRand{ints: []int{2, 2, 3, 1}}
	out, err := ResolveDice(1_000, funded(5_000, 1), funded(5_000, 1), rng)
	if err != nil {
		t.Fatalf("dice: %v", err)
	}
	if out.Rerolls != 1 || out.PlayerRoll != 4 || out.TargetRoll != 2 || !out.PlayerWon {
		t.Fatalf("unexpected rolls %+v", out)
	}
	if out.HouseCut != 100 || out.Player.Cash != 5_900 || out.Target.Cash != 4_000 {
		t.Fatalf("unexpected payout player=%d target=%d cut=%d", out.Player.Cash, out.Target.Cash, out.HouseCut)
	}
	if out.Player.Respect != 2 || out.Target.Respect != 0 {
		t.Fatalf("unexpected respect player=%d target=%d", out.Player.Respect, out.Target.Respect)
	}
}

func TestResolveDiceNeverRecordsTie(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2_000; i++ {
		out, err := ResolveDice(10, funded(100, 1), funded(100, 1), rng)
		if err != nil {
			t.Fatalf("dice: %v", err)
		}
		if out.PlayerRoll == out.TargetRoll {
			t.Fatalf("recorded tie at iteration %d", i)
		}
	}
}

func TestResolveDiceValidation(t *testing.T) {
	tests := []struct {
		name           string
		bet            int64
		player, target Player
		want           error
	}{
		{name: "zero bet", bet: 0, player: funded(100, 1), target: funded(100, 1), want: ErrInvalidBet},
		{name: "negative bet", bet: -5, player: funded(100, 1), target: funded(100, 1), want: ErrInvalidBet},
		{name: "player short", bet: 500, player: funded(100, 1), target: funded(1_000, 1), want: ErrInsufficientCash},
		{name: "target short", bet: 500, player: funded(1_000, 1), target: funded(100, 1), want: ErrOpponentCannotCover},
		{name: "player tier limit", bet: 20_000, player: funded(50_000, 1), target: funded(50_000, 3), want: ErrBetAboveLimit},
		{name: "target tier limit", bet: 20_000, player: funded(50_000, 3), target: funded(50_000, 1), want: ErrBetAboveLimit},
	}
	for _, tc := range tests {
		_, err := ResolveDice(tc.bet, tc.player, tc.target, &scriptedRand{ints: []int{1, 0}})
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func fiveMoves(ms ...Move) []Move { return ms }

func TestShootoutPlayerSweep(t *testing.T) {
	rng := &scriptedRand{ints: []int{2}}
	out, err := ResolveShootout(fiveMoves(MovePull, MovePull, MovePull, MoveDuck, MoveDuck), 500, funded(1_000, 1), StrategyRandom, rng)
	if err != nil {
		t.Fatalf("shootout: %v", err)
	}
	if !out.PlayerWon || out.PlayerWins != 3 || len(out.Rounds) != 3 {
		t.Fatalf("expected 3-0 sweep, got %+v", out)
	}
	if out.Player.Cash != 1_500 || out.Player.Respect != 3 {
		t.Fatalf("unexpected payout %+v", out.Player)
	}
}

func TestShootoutCounterNPC(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.1}}
	p := funded(1_000, 1)
	p.Respect = 1
	out, err := ResolveShootout(fiveMoves(MovePull, MovePull, MovePull, MovePull, MovePull), 1_500, funded(2_000, 1), StrategyCounter, rng)
	if err != nil {
		t.Fatalf("shootout: %v", err)
	}
	for _, r := range out.Rounds {
		if r.NPCMove != MoveDuck {
			t.Fatalf("counter npc should duck a pull, got %s", r.NPCMove)
		}
	}
	if out.PlayerWon || out.NPCWins != 3 || out.Player.Cash != 500 {
		t.Fatalf("expected npc win, got %+v", out)
	}

	_, err = ResolveShootout(fiveMoves(MovePull, MovePull, MovePull, MovePull, MovePull), 1_500, p, StrategyCounter, rng)
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("expected insufficient cash, got %v", err)
	}
}

func TestShootoutPlaysMovesAsSent(t *testing.T) {
	rng := &scriptedRand{ints: []int{0, 0, 0, 1, 1}}
	p := funded(1_000, 1)
	p.Respect = 1
	moves := fiveMoves(MovePull, MovePull, MovePull, MovePull, MovePull)
	out, err := ResolveShootout(moves, 400, p, StrategyRandom, rng)
	if err != nil {
		t.Fatalf("shootout: %v", err)
	}
	if len(out.Rounds) != 5 {
		t.Fatalf("expected 5 rounds, got %d", len(out.Rounds))
	}
	for i, r := range out.Rounds {
		if r.PlayerMove != moves[i] {
			t.Fatalf("round %d: move rewritten to %s", i+1, r.PlayerMove)
		}
		if r.PlayerBullets != maxBullets || r.NPCBullets != maxBullets {
			t.Fatalf("round %d: no pull landed, chambers should stay full: %+v", i+1, r)
		}
	}
	for i := 0; i < 3; i++ {
		if out.Rounds[i].Winner != RoundDraw {
			t.Fatalf("round %d: expected draw, got %s", i+1, out.Rounds[i].Winner)
		}
	}
	for i := 3; i < 5; i++ {
		if r := out.Rounds[i]; r.NPCMove != MoveDuck || r.Winner != RoundNPC {
			t.Fatalf("round %d: duck should beat pull, got %+v", i+1, r)
		}
	}
	if out.PlayerWins != 0 || out.NPCWins != 2 || out.PlayerWon {
		t.Fatalf("unexpected result %+v", out)
	}
	if out.Player.Cash != 600 || out.Player.Respect != 0 {
		t.Fatalf("unexpected loss state %+v", out.Player)
	}
}

func TestShootoutMatchWinner(t *testing.T) {
	// npc: pull, reload, duck, duck, duck
	rng := &scriptedRand{ints: []int{0, 2, 1, 1, 1}}
	moves := fiveMoves(MoveDuck, MovePull, MoveDuck, MoveDuck, MoveDuck)
	out, err := ResolveShootout(moves, 100, funded(1_000, 1), StrategyRandom, rng)
	if err != nil {
		t.Fatalf("shootout: %v", err)
	}
	if out.Rounds[0].Winner != RoundPlayer || out.Rounds[1].Winner != RoundPlayer {
		t.Fatalf("expected two early player wins, got %+v", out.Rounds)
	}
	if r := out.Rounds[1]; r.NPCBullets != maxBullets {
		t.Fatalf("reload refills even on a lost round, got %+v", r)
	}
	if out.PlayerWins != 2 || out.NPCWins != 0 {
		t.Fatalf("unexpected wins %+v", out)
	}
	if !out.PlayerWon {
		t.Fatalf("more wins should take the match, got %+v", out)
	}

	rng = &scriptedRand{ints: []int{0, 1, 1, 1, 1}}
	out, err = ResolveShootout(fiveMoves(MoveDuck, MovePull, MoveDuck, MoveDuck, MoveDuck), 100, funded(1_000, 1), StrategyRandom, rng)
	if err != nil {
		t.Fatalf("shootout: %v", err)
	}
	if out.PlayerWins != out.NPCWins || out.PlayerWon {
		t.Fatalf("tie in wins should go to the npc, got %+v", out)
	}
}

func TestShootoutBulletInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1_000; i++ {
		moves := make([]Move, ShootoutMoves)
		for j := range moves {
			moves[j] = allMoves[rng.Intn(len(allMoves))]
		}
		strategy := StrategyRandom
		if i%2 == 0 {
			strategy = StrategyCounter
		}
		out, err := ResolveShootout(moves, 10, funded(100, 1), strategy, rng)
		if err != nil {
			t.Fatalf("shootout: %v", err)
		}
		playerBullets, npcBullets := maxBullets, maxBullets
		for j, r := range out.Rounds {
			if r.PlayerMove != moves[j] {
				t.Fatalf("move rewritten: sent %s, played %+v", moves[j], r)
			}
			if r.PlayerBullets < 0 || r.PlayerBullets > maxBullets || r.NPCBullets < 0 || r.NPCBullets > maxBullets {
				t.Fatalf("bullets out of range: %+v", r)
			}
			if r.NPCMove == MovePull && npcBullets == 0 {
				t.Fatalf("npc pulled with an empty chamber: %+v", r)
			}
			wantPlayer, wantNPC := playerBullets, npcBullets
			if r.Winner == RoundNPC && r.NPCMove == MovePull {
				wantPlayer = max(wantPlayer-1, 0)
			}
			if r.Winner == RoundPlayer && r.PlayerMove == MovePull {
				wantNPC = max(wantNPC-1, 0)
			}
			if r.PlayerMove == MoveReload {
				wantPlayer = maxBullets
			}
			if r.NPCMove == MoveReload {
				wantNPC = maxBullets
			}
			if r.PlayerBullets != wantPlayer || r.NPCBullets != wantNPC {
				t.Fatalf("bullets changed outside a winning pull or reload: before %d/%d, got %+v", playerBullets, npcBullets, r)
			}
			playerBullets, npcBullets = r.PlayerBullets, r.NPCBullets
		}
	}
}

func TestShootoutValidation(t *testing.T) {
	p := funded(1_000, 1)
	if _, err := ResolveShootout([]Move{MovePull}, 10, p, StrategyRandom, &scriptedRand{}); !errors.Is(err, ErrInvalidMoveCount) {
		t.Fatalf("expected move count error, got %v", err)
	}
	bad := fiveMoves(MovePull, "kick", MoveDuck, MoveDuck, MoveDuck)
	if _, err := ResolveShootout(bad, 10, p, StrategyRandom, &scriptedRand{}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected invalid move, got %v", err)
	}
	ok := fiveMoves(MoveDuck, MoveDuck, MoveDuck, MoveDuck, MoveDuck)
	if _, err := ResolveShootout(ok, 0, p, StrategyRandom, &scriptedRand{}); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected invalid bet, got %v", err)
	}
	if _, err := ParseNPCStrategy("cheater"); !errors.Is(err, ErrInvalidStrategy) {
		t.Fatalf("expected invalid strategy, got %v", err)
	}
}

func TestResolveBigBank(t *testing.T) {
	player := funded(100_000, 1)
	target := funded(50_000, 1)
	out, err := ResolveBigBank(10, player, target, &scriptedRand{floats: []float64{0.99, 0}})
	if err != nil {
		t.Fatalf("big bank: %v", err)
	}
	if out.Bet != 10_000 || out.Transfer != 1_000 || !out.PlayerWon {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.Player.Cash != 101_000 || out.Target.Cash != 49_000 || out.Player.Respect != 3 || out.Target.Respect != 0 {
		t.Fatalf("unexpected balances player=%+v target=%+v", out.Player, out.Target)
	}
}

func TestResolveBigBankTieGoesToRicher(t *testing.T) {
	player := funded(40_000, 1)
	target := funded(40_000, 1)
	target.Respect = 0
	out, err := ResolveBigBank(25, player, target, &scriptedRand{floats: []float64{0.5, 0.5}})
	if err != nil {
		t.Fatalf("big bank: %v", err)
	}
	if out.PlayerPower != out.TargetPower || out.PlayerWon {
		t.Fatalf("equal power and cash should go to the defender, got %+v", out)
	}

	player.Cash = 40_010
	out, err = ResolveBigBank(25, player, funded(40_010, 1), &scriptedRand{floats: []float64{0.5, 0.5}})
	if err != nil {
		t.Fatalf("big bank: %v", err)
	}
	if out.PlayerWon {
		t.Fatalf("equal cash should not favour the initiator")
	}
}

func TestResolveBigBankValidation(t *testing.T) {
	p := funded(1_000, 1)
	for _, pct := range []int{0, 4, 26, 100} {
		if _, err := ResolveBigBank(pct, p, p, &scriptedRand{}); !errors.Is(err, ErrInvalidPercent) {
			t.Fatalf("pct %d: expected invalid percent, got %v", pct, err)
		}
	}
	if _, err := ResolveBigBank(5, funded(10, 1), p, &scriptedRand{}); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected invalid bet for tiny bankroll, got %v", err)
	}
}

func TestResolveBigBankTransferCappedByLoserCash(t *testing.T) {
	player := funded(1_000_000, 1)
	target := funded(3_000, 1)
	out, err := ResolveBigBank(25, player, target, &scriptedRand{floats: []float64{0.5, 0.5}})
	if err != nil {
		t.Fatalf("big bank: %v", err)
	}
	if !out.PlayerWon {
		t.Fatalf("expected the stronger side to win, got %+v", out)
	}
	if out.Transfer != 3_000 || out.Player.Cash != 1_003_000 || out.Target.Cash != 0 {
		t.Fatalf("unexpected transfer %+v", out)
	}
}
