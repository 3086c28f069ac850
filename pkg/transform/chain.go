package transform

// Chain composes applied stages in order, translating offsets between the
// input of the first stage and the output of the last.
//
// A chain is a value: Then returns a new chain and never modifies the
// receiver, so a published chain can be shared between goroutines.
type Chain struct {
	stages []*Stage
}

// NewChain creates a chain from the given stages. Nil stages are skipped,
// so a pass that never ran acts as the identity.
func NewChain(stages ...*Stage) *Chain {
	chain := &Chain{stages: make([]*Stage, 0, len(stages))}
	for _, stage := range stages {
		if stage != nil {
			chain.stages = append(chain.stages, stage)
		}
	}
	return chain
}

// Then returns a new chain with stage appended.
func (c *Chain) Then(stage *Stage) *Chain {
	return NewChain(append(c.Stages(), stage)...)
}

// Len returns the number of stages in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.stages)
}

// Stages returns a copy of the chain's stages in application order.
func (c *Chain) Stages() []*Stage {
	if c == nil {
		return nil
	}
	out := make([]*Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Forward translates an offset in the first stage's input to the last
// stage's output. Returns NoMapping as soon as any hop has no mapping.
func (c *Chain) Forward(pos int) int {
	if c == nil {
		return pos
	}
	for _, stage := range c.stages {
		if pos < 0 {
			return NoMapping
		}
		pos = stage.OutputOffset(pos)
	}
	return pos
}

// Backward translates an offset in the last stage's output to the first
// stage's input. Returns NoMapping as soon as any hop has no mapping.
func (c *Chain) Backward(pos int) int {
	if c == nil {
		return pos
	}
	for i := len(c.stages) - 1; i >= 0; i-- {
		if pos < 0 {
			return NoMapping
		}
		pos = c.stages[i].InputOffset(pos)
	}
	return pos
}
