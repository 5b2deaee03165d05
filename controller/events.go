package controller

// Events holds the vertical-kinematics listener lists. Listeners are called
// synchronously within the tick that raised the notification, in
// registration order, each at most once per tick.
type Events struct {
	landed          []func()
	jumpVelocitySet []func(velocity float64)
	startedFalling  []func(predictedDistance float64)
}

// OnLanded registers a listener for the landing transition.
func (e *Events) OnLanded(fn func()) {
	if e == nil || fn == nil {
		return
	}
	e.landed = append(e.landed, fn)
}

// OnJumpVelocitySet registers a listener for jump-velocity assignment.
func (e *Events) OnJumpVelocitySet(fn func(velocity float64)) {
	if e == nil || fn == nil {
		return
	}
	e.jumpVelocitySet = append(e.jumpVelocitySet, fn)
}

// OnStartedFalling registers a listener for the start of a fall episode. The
// payload is the predicted fall distance at that instant.
func (e *Events) OnStartedFalling(fn func(predictedDistance float64)) {
	if e == nil || fn == nil {
		return
	}
	e.startedFalling = append(e.startedFalling, fn)
}

func (e *Events) fireLanded() {
	if e == nil {
		return
	}
	for _, fn := range e.landed {
		fn()
	}
}

func (e *Events) fireJumpVelocitySet(v float64) {
	if e == nil {
		return
	}
	for _, fn := range e.jumpVelocitySet {
		fn(v)
	}
}

func (e *Events) fireStartedFalling(distance float64) {
	if e == nil {
		return
	}
	for _, fn := range e.startedFalling {
		fn(distance)
	}
}
