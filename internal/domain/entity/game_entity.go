package entity

// Baseball rules: guess a number of distinct digits; each guess is scored in strikes
// (right digit, right place) and balls (right digit, wrong place).
const (
	BaseballDigits     = 4
	BaseballMaxGuesses = 9
	BaseballMinBet     = 1
	BaseballMaxBet     = 1000
	// BaseballPayout multiplies the bet for a win on the first guess.
	BaseballPayout = 2
)

// GameRankSize is the length of the daily earned point ranking.
const GameRankSize = 10

type BaseballGuess struct {
	GuessNumber string `json:"guessNumber"`
	Strike      int    `json:"strike"`
	Ball        int    `json:"ball"`
}

// BaseballGame is a member's game for one day.
type BaseballGame struct {
	MemberID     int64           `json:"memberId"`
	Secret       string          `json:"secret"`
	BettingPoint int             `json:"bettingPoint"`
	Guesses      []BaseballGuess `json:"guesses"`
	Finished     bool            `json:"finished"`
	Won          bool            `json:"won"`
	Reward       int             `json:"reward"`
}

// ValidBaseballNumber reports whether s is BaseballDigits distinct decimal digits.
func ValidBaseballNumber(s string) bool {
	if len(s) != BaseballDigits {
		return false
	}
	var seen [10]bool
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' || seen[s[i]-'0'] {
			return false
		}
		seen[s[i]-'0'] = true
	}
	return true
}

// EarnablePoint is what a win on the next guess pays, or the reward once finished.
func (g *BaseballGame) EarnablePoint() int {
	if g.Finished {
		return g.Reward
	}
	left := BaseballMaxGuesses - len(g.Guesses)
	return g.BettingPoint * BaseballPayout * left / BaseballMaxGuesses
}

// Play scores number against the secret and finishes the game on a win or on the last guess.
func (g *BaseballGame) Play(number string) BaseballGuess {
	earnable := g.EarnablePoint()
	res := BaseballGuess{GuessNumber: number}
	for i := 0; i < len(number); i++ {
		for j := 0; j < len(g.Secret); j++ {
			if number[i] != g.Secret[j] {
				continue
			}
			if i == j {
				res.Strike++
			} else {
				res.Ball++
			}
		}
	}
	g.Guesses = append(g.Guesses, res)
	switch {
	case res.Strike == BaseballDigits:
		g.Finished, g.Won, g.Reward = true, true, earnable
	case len(g.Guesses) >= BaseballMaxGuesses:
		g.Finished = true
	}
	return res
}

// Profit is the net point change of a finished game.
func (g *BaseballGame) Profit() int {
	return g.Reward - g.BettingPoint
}

// GameScore is a member's earned point for one day.
type GameScore struct {
	MemberID int64
	Point    int
}
