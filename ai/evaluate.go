package ai

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/othellobot/othello/bitboard"
	"github.com/othellobot/othello/othello"
)

// EvaluationFunc scores p from the point of view of me. It must be
// pure: the same inputs always produce the same score.
type EvaluationFunc func(p *othello.Position, me othello.Color) float64

type Feature int

const (
	CoinParity Feature = iota
	Mobility
	Corners
	Positional

	MaxFeature
)

func (f Feature) String() string {
	switch f {
	case CoinParity:
		return "coin_parity"
	case Mobility:
		return "mobility"
	case Corners:
		return "corners"
	case Positional:
		return "positional"
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}

// Regime holds one weight per feature. A zero weight disables the
// feature entirely.
type Regime [MaxFeature]float64

type Phase int

const (
	Opening Phase = iota
	Midgame
	Endgame
)

func (ph Phase) String() string {
	switch ph {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	case Endgame:
		return "endgame"
	}
	return fmt.Sprintf("Phase(%d)", int(ph))
}

// Weights is the full evaluator configuration. The game phase is the
// percentage of squares filled; above MidgameAt the Midgame regime
// applies and above EndgameAt the Endgame regime.
type Weights struct {
	Opening Regime `json:"opening"`
	Midgame Regime `json:"midgame"`
	Endgame Regime `json:"endgame"`

	MidgameAt float64 `json:"midgame_at"`
	EndgameAt float64 `json:"endgame_at"`

	PositionalMap *[othello.Size][othello.Size]float64 `json:"positional_map,omitempty"`
}

var DefaultPositionalMap = [othello.Size][othello.Size]float64{
	{120, -20, 20, 5, 5, 20, -20, 120},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{120, -20, 20, 5, 5, 20, -20, 120},
}

// DefaultWeights shifts from mobility early on towards raw disc count
// at the very end of the game.
var DefaultWeights = Weights{
	Opening: Regime{CoinParity: 0.2, Mobility: 0.6, Corners: 0.2},
	Midgame: Regime{CoinParity: 0.4, Mobility: 0.1, Corners: 0.5},
	Endgame: Regime{CoinParity: 0.9, Mobility: 0.0, Corners: 0.1},

	MidgameAt: 75,
	EndgameAt: 90,
}

// MixedWeights blends the static square map with mobility in every
// phase.
var MixedWeights = Weights{
	Opening: Regime{Positional: 0.4, Mobility: 0.6},
	Midgame: Regime{Positional: 0.4, Mobility: 0.6},
	Endgame: Regime{Positional: 0.4, Mobility: 0.6},

	MidgameAt: 75,
	EndgameAt: 90,
}

var NamedWeights = map[string]*Weights{
	"default": &DefaultWeights,
	"mixed":   &MixedWeights,
}

func (w *Weights) Validate() error {
	if w.MidgameAt > w.EndgameAt {
		return fmt.Errorf("midgame_at (%v) > endgame_at (%v)", w.MidgameAt, w.EndgameAt)
	}
	for _, ph := range []Phase{Opening, Midgame, Endgame} {
		var sum float64
		for _, v := range *w.Regime(ph) {
			if v < 0 {
				return fmt.Errorf("%s: negative weight", ph)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-6 {
			return fmt.Errorf("%s: weights sum to %v, not 1", ph, sum)
		}
	}
	return nil
}

func (w *Weights) Regime(ph Phase) *Regime {
	switch ph {
	case Midgame:
		return &w.Midgame
	case Endgame:
		return &w.Endgame
	}
	return &w.Opening
}

func (w *Weights) squareMap() *[othello.Size][othello.Size]float64 {
	if w.PositionalMap != nil {
		return w.PositionalMap
	}
	return &DefaultPositionalMap
}

// Progress is the percentage of the board that is occupied.
func Progress(p *othello.Position) float64 {
	return 100 * (1 - float64(p.PieceCount(othello.Empty))/float64(othello.Size*othello.Size))
}

func (w *Weights) PhaseOf(p *othello.Position) Phase {
	progress := Progress(p)
	switch {
	case progress > w.EndgameAt:
		return Endgame
	case progress > w.MidgameAt:
		return Midgame
	}
	return Opening
}

type Evaluator struct {
	w *Weights
}

func NewEvaluator(w *Weights) *Evaluator {
	if w == nil {
		w = &DefaultWeights
	}
	return &Evaluator{w: w}
}

func MakeEvaluator(w *Weights) EvaluationFunc {
	return NewEvaluator(w).Evaluate
}

var DefaultEvaluate = MakeEvaluator(&DefaultWeights)

// Evaluate scores a position for me. Terminal positions score as the
// plain disc difference, since the mobility-style features say nothing
// once neither side can move.
func (e *Evaluator) Evaluate(p *othello.Position, me othello.Color) float64 {
	if p.IsTerminal() {
		return float64(p.PieceCount(me) - p.PieceCount(me.Flip()))
	}
	r := e.w.Regime(e.w.PhaseOf(p))
	var score float64
	for f, weight := range r {
		if weight == 0 {
			continue
		}
		score += weight * e.feature(Feature(f), p, me)
	}
	return score
}

func (e *Evaluator) feature(f Feature, p *othello.Position, me othello.Color) float64 {
	switch f {
	case CoinParity:
		return CoinParityScore(p, me)
	case Mobility:
		return MobilityScore(p, me)
	case Corners:
		return CornerScore(p, me)
	case Positional:
		return PositionalScore(e.w.squareMap(), p, me)
	}
	panic(fmt.Sprintf("bad feature %d", f))
}

func CoinParityScore(p *othello.Position, me othello.Color) float64 {
	return balance(p.PieceCount(me), p.PieceCount(me.Flip()))
}

func MobilityScore(p *othello.Position, me othello.Color) float64 {
	if p.IsTerminal() {
		return 0
	}
	mine := bitboard.Popcount(p.MoveBits(me))
	theirs := bitboard.Popcount(p.MoveBits(me.Flip()))
	return balance(mine, theirs)
}

// CornerScore counts held corners for each side and credits corners
// that are currently playable: one point for a corner I can take,
// three to the opponent for one they can take, and three against me
// for a corner both of us can reach.
func CornerScore(p *othello.Position, me othello.Color) float64 {
	corners := bitboard.C.Corners
	mine := bitboard.Popcount(p.Stones(me) & corners)
	theirs := bitboard.Popcount(p.Stones(me.Flip()) & corners)

	myMoves := p.MoveBits(me) & corners
	theirMoves := p.MoveBits(me.Flip()) & corners
	common := 3 * bitboard.Popcount(myMoves&theirMoves)
	mine += bitboard.Popcount(myMoves)
	theirs += 3 * bitboard.Popcount(theirMoves)

	return scaled(mine-theirs-common, mine+theirs+common)
}

func PositionalScore(m *[othello.Size][othello.Size]float64, p *othello.Position, me othello.Color) float64 {
	var mine, theirs float64
	them := me.Flip()
	for row := 0; row < othello.Size; row++ {
		for col := 0; col < othello.Size; col++ {
			switch p.At(row, col) {
			case me:
				mine += m[row][col]
			case them:
				theirs += m[row][col]
			}
		}
	}
	return mine - theirs
}

func ExplainScore(e *Evaluator, out io.Writer, p *othello.Position, me othello.Color) {
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	ph := e.w.PhaseOf(p)
	r := e.w.Regime(ph)
	fmt.Fprintf(tw, "phase\t%s\t(%.1f%% filled)\n", ph, Progress(p))
	fmt.Fprintf(tw, "feature\tweight\tvalue\n")
	for f := Feature(0); f < MaxFeature; f++ {
		fmt.Fprintf(tw, "%s\t%.2f\t%+.2f\n", f, r[f], e.feature(f, p, me))
	}
	if p.IsTerminal() {
		fmt.Fprintf(tw, "terminal\t\t%+.2f\n", e.Evaluate(p, me))
	} else {
		fmt.Fprintf(tw, "total\t\t%+.2f\n", e.Evaluate(p, me))
	}
	tw.Flush()
}
