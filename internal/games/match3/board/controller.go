package board

import "fmt"

// State is the selection state of a Controller.
type State int

const (
	StateIdle State = iota
	StateOneSelected
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOneSelected:
		return "one_selected"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// BonusReason says which rule awarded a bonus.
type BonusReason int

const (
	// BonusCombo fires when the cells cleared by one swap reach Rules.ComboThreshold.
	BonusCombo BonusReason = iota + 1
	// BonusChain fires when one swap cascades through Rules.ChainThreshold steps.
	BonusChain
)

func (r BonusReason) String() string {
	switch r {
	case BonusCombo:
		return "combo"
	case BonusChain:
		return "chain"
	default:
		return "unknown"
	}
}

// Listener receives board events. Calls happen synchronously from inside
// Select, Hint and Prepare; the controller ignores anything they return.
type Listener interface {
	OnGroupResolved(group Group, item ItemType)
	OnBonusTriggered(reason BonusReason)
	OnNoMoveWaiting(waiting bool)
	OnHintAvailable(a, b Coord)
	OnScoreChanged(total, delta int)
}

// NopListener ignores every event. Embed it to implement part of Listener.
type NopListener struct{}

func (NopListener) OnGroupResolved(Group, ItemType) {}
func (NopListener) OnBonusTriggered(BonusReason)    {}
func (NopListener) OnNoMoveWaiting(bool)            {}
func (NopListener) OnHintAvailable(Coord, Coord)    {}
func (NopListener) OnScoreChanged(int, int)         {}

// Rules holds the scoring and termination parameters of a Controller.
type Rules struct {
	ComboThreshold  int // cleared cells in one action that award a bonus
	ChainThreshold  int // cascade steps in one action that award a bonus
	BonusPoints     int
	ShuffleAttempts int // permutations per Shuffle call
	ReshuffleRounds int // Shuffle calls spent looking for a board with a move
	MaxCascadeSteps int // a cascade longer than this is settled by shuffling
}

// DefaultRules returns the standard scoring rules.
func DefaultRules() Rules {
	return Rules{
		ComboThreshold:  5,
		ChainThreshold:  3,
		BonusPoints:     100,
		ShuffleAttempts: DefaultShuffleAttempts,
		ReshuffleRounds: 100,
		MaxCascadeSteps: 1000,
	}
}

// withDefaults fills non-positive fields from DefaultRules.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.ComboThreshold <= 0 {
		r.ComboThreshold = d.ComboThreshold
	}
	if r.ChainThreshold <= 0 {
		r.ChainThreshold = d.ChainThreshold
	}
	if r.BonusPoints < 0 {
		r.BonusPoints = d.BonusPoints
	}
	if r.ShuffleAttempts <= 0 {
		r.ShuffleAttempts = d.ShuffleAttempts
	}
	if r.ReshuffleRounds <= 0 {
		r.ReshuffleRounds = d.ReshuffleRounds
	}
	if r.MaxCascadeSteps <= 0 {
		r.MaxCascadeSteps = d.MaxCascadeSteps
	}
	return r
}

// Outcome summarises what one Select call did.
type Outcome struct {
	Swapped  bool // an adjacent pair was swapped and kept
	Reverted bool // an adjacent pair was swapped back because nothing matched
	Steps    int  // cascade steps resolved
	Cleared  int  // cells cleared across all steps
	Points   int  // score gained, bonuses included
	Bonuses  []BonusReason
	Shuffled bool // the board was shuffled: no move was left or the cascade ran too long
}

// Controller owns a grid and turns cell selections into swaps, cascades and
// score. It is not safe for concurrent use.
type Controller struct {
	grid     *Grid
	catalog  *Catalog
	rng      RandomSource
	rules    Rules
	listener Listener

	state    State
	selected Coord
	score    int
}

// NewController wires a controller around an existing grid. A nil listener
// discards events. Non-positive rule fields take their DefaultRules value.
func NewController(grid *Grid, catalog *Catalog, rng RandomSource, rules Rules, listener Listener) *Controller {
	if listener == nil {
		listener = NopListener{}
	}
	return &Controller{
		grid:     grid,
		catalog:  catalog,
		rng:      rng,
		rules:    rules.withDefaults(),
		listener: listener,
	}
}

// SetListener replaces the event listener. A nil listener discards events.
func (c *Controller) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	c.listener = l
}

// State returns the current selection state.
func (c *Controller) State() State {
	return c.state
}

// Selected returns the anchored cell while in StateOneSelected.
func (c *Controller) Selected() (Coord, bool) {
	return c.selected, c.state == StateOneSelected
}

// Score returns the total score.
func (c *Controller) Score() int {
	return c.score
}

// Grid returns a copy of the board.
func (c *Controller) Grid() *Grid {
	return c.grid.Clone()
}

// Restore replaces the board and score, for example when resuming a save.
// The selection is cleared.
func (c *Controller) Restore(grid *Grid, score int) {
	c.grid = grid
	c.score = score
	c.state = StateIdle
}

// SetScore replaces the running score without touching the board.
func (c *Controller) SetScore(score int) {
	c.score = score
}

// ClearSelection drops a pending selection.
func (c *Controller) ClearSelection() {
	if c.state == StateOneSelected {
		c.state = StateIdle
	}
}

// Prepare makes a freshly seeded board playable: existing matches are
// shuffled away and, if no move exists, the board is reshuffled until one does.
// It reports whether any shuffle happened.
func (c *Controller) Prepare() (bool, error) {
	shuffled := false
	if HasAnyMatch(c.grid) {
		if err := Shuffle(c.grid, c.rng, c.rules.ShuffleAttempts); err != nil {
			return false, err
		}
		shuffled = true
	}
	reshuffled, err := c.ensurePlayable()
	return shuffled || reshuffled, err
}

// Hint finds a swap that would match and announces it to the listener.
func (c *Controller) Hint() (Move, bool) {
	m, ok := FindHint(c.grid)
	if ok {
		c.listener.OnHintAvailable(m.A, m.B)
	}
	return m, ok
}

// Select feeds one cell selection into the state machine.
//
// With nothing selected the cell becomes the anchor. Selecting the anchor
// again does nothing; selecting a cell that is not adjacent moves the anchor.
// Selecting an adjacent cell swaps the pair: a swap that produces no match is
// undone, otherwise matches are cleared, scored and refilled until the board
// settles. Either way the board is then checked for a remaining move and
// shuffled if there is none.
//
// Calls made while a swap is resolving (from inside a listener callback) are
// ignored and return a zero Outcome.
func (c *Controller) Select(p Coord) (Outcome, error) {
	if c.state == StateResolving {
		return Outcome{}, nil
	}
	if err := c.grid.check(p); err != nil {
		return Outcome{}, err
	}

	switch c.state {
	case StateIdle:
		c.selected = p
		c.state = StateOneSelected
		return Outcome{}, nil

	case StateOneSelected:
		if p == c.selected {
			return Outcome{}, nil
		}
		if !p.Adjacent(c.selected) {
			c.selected = p
			return Outcome{}, nil
		}
		return c.resolve(c.selected, p)
	}
	return Outcome{}, nil
}

func (c *Controller) resolve(a, b Coord) (Outcome, error) {
	c.state = StateResolving
	defer func() { c.state = StateIdle }()

	var out Outcome
	c.grid.swap(a, b)
	if !HasAnyMatch(c.grid) {
		c.grid.swap(a, b)
		out.Reverted = true
	} else {
		out.Swapped = true
		if err := c.cascade(&out); err != nil {
			return out, err
		}
	}

	shuffled, err := c.ensurePlayable()
	out.Shuffled = out.Shuffled || shuffled
	return out, err
}

// cascade clears every match group, refills the cleared cells in place and
// repeats until the board holds no match. All groups found by one
// AllMatchGroups call make up one step. Each bonus is awarded at most once
// per player action, however many groups or steps follow. Past
// MaxCascadeSteps the remaining groups are not scored and Shuffle settles
// the board.
func (c *Controller) cascade(out *Outcome) error {
	comboFired, chainFired := false, false

	for {
		groups := AllMatchGroups(c.grid)
		if len(groups) == 0 {
			return nil
		}
		if out.Steps >= c.rules.MaxCascadeSteps {
			out.Shuffled = true
			return Shuffle(c.grid, c.rng, c.rules.ShuffleAttempts)
		}
		out.Steps++

		for _, gr := range groups {
			out.Cleared += gr.Size()
			c.addScore(gr.Item.Value*gr.Size(), out)
			c.listener.OnGroupResolved(gr, gr.Item)

			if !comboFired && out.Cleared >= c.rules.ComboThreshold {
				comboFired = true
				c.bonus(BonusCombo, out)
			}
		}
		if !chainFired && out.Steps >= c.rules.ChainThreshold {
			chainFired = true
			c.bonus(BonusChain, out)
		}

		for _, gr := range groups {
			for _, cell := range gr.Cells {
				c.grid.items[c.grid.index(cell)] = c.catalog.RandomItem(c.rng)
			}
		}
	}
}

func (c *Controller) bonus(reason BonusReason, out *Outcome) {
	out.Bonuses = append(out.Bonuses, reason)
	c.addScore(c.rules.BonusPoints, out)
	c.listener.OnBonusTriggered(reason)
}

func (c *Controller) addScore(delta int, out *Outcome) {
	if delta == 0 {
		return
	}
	c.score += delta
	out.Points += delta
	c.listener.OnScoreChanged(c.score, delta)
}

// ensurePlayable shuffles until some move exists. The listener sees
// OnNoMoveWaiting(true) before the first shuffle and OnNoMoveWaiting(false)
// once it is done, even on failure.
func (c *Controller) ensurePlayable() (bool, error) {
	if HasPossibleMove(c.grid) {
		return false, nil
	}

	c.listener.OnNoMoveWaiting(true)
	defer c.listener.OnNoMoveWaiting(false)

	rounds := c.rules.ReshuffleRounds
	for i := 0; i < rounds; i++ {
		if err := Shuffle(c.grid, c.rng, c.rules.ShuffleAttempts); err != nil {
			return true, err
		}
		if HasPossibleMove(c.grid) {
			return true, nil
		}
	}
	return true, fmt.Errorf("%w: no playable arrangement after %d shuffles", ErrShuffleExhausted, rounds)
}
