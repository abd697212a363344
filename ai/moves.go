package ai

import "github.com/othellobot/othello/othello"

type successor struct {
	m othello.Move
	p *othello.Position
}

// successors expands p in legal-move order. A mover with no legal move
// in a live game has exactly one successor, the pass.
func successors(p *othello.Position) []successor {
	ms := p.LegalMoves()
	if len(ms) == 0 {
		if p.IsTerminal() {
			return nil
		}
		ms = []othello.Move{othello.Pass}
	}
	out := make([]successor, 0, len(ms))
	for _, m := range ms {
		child, e := p.Move(m)
		if e != nil {
			panic("successors: generated move rejected: " + e.Error())
		}
		out = append(out, successor{m, child})
	}
	return out
}
