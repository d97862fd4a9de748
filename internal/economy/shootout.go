package economy

import (
	"fmt"
	"strings"
)

const (
	ShootoutMoves       = 5
	shootoutWinsNeeded  = 3
	maxBullets          = 3
	counterChance       = 0.40
	shootoutWinRespect  = int64(3)
	shootoutLoseRespect = int64(2)
)

type Move string

const (
	MovePull   Move = "pull"
	MoveDuck   Move = "duck"
	MoveReload Move = "reload"
)

var allMoves = []Move{MovePull, MoveDuck, MoveReload}

func ParseMove(s string) (Move, error) {
	switch m := Move(strings.ToLower(strings.TrimSpace(s))); m {
	case MovePull, MoveDuck, MoveReload:
		return m, nil
	default:
		return "", ErrInvalidMove
	}
}

// Beats reports whether m wins the round against other:
// pull beats reload, reload beats duck, duck beats pull.
func (m Move) Beats(other Move) bool {
	switch m {
	case MovePull:
		return other == MoveReload
	case MoveReload:
		return other == MoveDuck
	case MoveDuck:
		return other == MovePull
	}
	return false
}

// Counter is the move that beats m.
func (m Move) Counter() Move {
	switch m {
	case MovePull:
		return MoveDuck
	case MoveDuck:
		return MoveReload
	default:
		return MovePull
	}
}

type NPCStrategy string

const (
	StrategyCounter NPCStrategy = "counter"
	StrategyRandom  NPCStrategy = "random"
)

func ParseNPCStrategy(s string) (NPCStrategy, error) {
	switch st := NPCStrategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyCounter, StrategyRandom:
		return st, nil
	case "":
		return StrategyCounter, nil
	default:
		return "", ErrInvalidStrategy
	}
}

// pick chooses the NPC move. Counter plays the move that beats the player's
// 40% of the time and a random legal move otherwise. Pull is never chosen
// with an empty chamber.
func (st NPCStrategy) pick(playerMove Move, bullets int, rng Rand) Move {
	if st == StrategyCounter && rng.Float64() < counterChance {
		if m := playerMove.Counter(); m != MovePull || bullets > 0 {
			return m
		}
	}
	legal := allMoves
	if bullets == 0 {
		legal = allMoves[1:]
	}
	return legal[rng.Intn(len(legal))]
}

type RoundWinner string

const (
	RoundPlayer RoundWinner = "player"
	RoundNPC    RoundWinner = "npc"
	RoundDraw   RoundWinner = "draw"
)

type ShootoutRound struct {
	Round         int         `json:"round"`
	PlayerMove    Move        `json:"player_move"`
	NPCMove       Move        `json:"npc_move"`
	Winner        RoundWinner `json:"winner"`
	PlayerBullets int         `json:"player_bullets"`
	NPCBullets    int         `json:"npc_bullets"`
}

type ShootoutOutcome struct {
	Rounds     []ShootoutRound `json:"rounds"`
	PlayerWins int             `json:"player_wins"`
	NPCWins    int             `json:"npc_wins"`
	PlayerWon  bool            `json:"player_won"`
	Stake      int64           `json:"stake"`
	Strategy   NPCStrategy     `json:"strategy"`
	Player     Player          `json:"player"`
}

// ResolveShootout plays the scripted moves against the NPC. A round won with
// pull knocks a bullet off the loser and reload refills the reloader to 3
// whatever the outcome. Moves are played exactly as sent: a scripted pull on an
// empty chamber rejects the whole match. The match stops once a side has 3
// round wins and a tie in wins goes to the NPC.
func ResolveShootout(moves []Move, stake int64, p Player, strategy NPCStrategy, rng Rand) (ShootoutOutcome, error) {
	if len(moves) != ShootoutMoves {
		return ShootoutOutcome{}, ErrInvalidMoveCount
	}
	for _, m := range moves {
		if _, err := ParseMove(string(m)); err != nil {
			return ShootoutOutcome{}, err
		}
	}
	if strategy != StrategyCounter && strategy != StrategyRandom {
		return ShootoutOutcome{}, ErrInvalidStrategy
	}
	if stake <= 0 {
		return ShootoutOutcome{}, ErrInvalidBet
	}
	if stake > p.Cash {
		return ShootoutOutcome{}, reject(ErrInsufficientCash, stake-p.Cash)
	}

	out := ShootoutOutcome{Stake: stake, Strategy: strategy}
	playerBullets, npcBullets := maxBullets, maxBullets
	for i, m := range moves {
		if out.PlayerWins >= shootoutWinsNeeded || out.NPCWins >= shootoutWinsNeeded {
			break
		}
		if m == MovePull && playerBullets == 0 {
			return ShootoutOutcome{}, fmt.Errorf("round %d: pull with an empty chamber: %w", i+1, ErrInvalidMove)
		}
		round := ShootoutRound{Round: i + 1, PlayerMove: m}
		round.NPCMove = strategy.pick(m, npcBullets, rng)

		switch {
		case round.PlayerMove.Beats(round.NPCMove):
			round.Winner = RoundPlayer
			out.PlayerWins++
			if round.PlayerMove == MovePull {
				npcBullets = max(npcBullets-1, 0)
			}
		case round.NPCMove.Beats(round.PlayerMove):
			round.Winner = RoundNPC
			out.NPCWins++
			if round.NPCMove == MovePull {
				playerBullets = max(playerBullets-1, 0)
			}
		default:
			round.Winner = RoundDraw
		}
		if round.PlayerMove == MoveReload {
			playerBullets = maxBullets
		}
		if round.NPCMove == MoveReload {
			npcBullets = maxBullets
		}
		round.PlayerBullets, round.NPCBullets = playerBullets, npcBullets
		out.Rounds = append(out.Rounds, round)
	}

	out.PlayerWon = out.PlayerWins > out.NPCWins
	next := p
	if out.PlayerWon {
		next.credit(stake)
		next.adjustRespect(shootoutWinRespect)
	} else {
		next.debit(stake)
		next.adjustRespect(-shootoutLoseRespect)
	}
	out.Player = next
	return out, nil
}
