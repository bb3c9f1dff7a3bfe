package vkboot

// cleanups is a stack of release callbacks, one pushed immediately after
// every successful acquisition. Running the stack releases whatever prefix
// of the bootstrap completed, in exactly the reverse order of creation,
// which covers both normal teardown and unwinding after a mid-sequence
// failure.
type cleanups struct {
	steps []cleanupStep
}

type cleanupStep struct {
	name string
	fn   func()
}

func (c *cleanups) push(name string, fn func()) {
	c.steps = append(c.steps, cleanupStep{name: name, fn: fn})
}

// run releases all recorded resources and empties the stack. A second run
// is a no-op.
func (c *cleanups) run() {
	for i := len(c.steps) - 1; i >= 0; i-- {
		Logger().Debug("destroying", "resource", c.steps[i].name)
		c.steps[i].fn()
	}
	c.steps = nil
}
