package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Step-rate bounds for the speed slider and the , . keys.
const (
	MinStepsPerUpdate = 1
	MaxStepsPerUpdate = 20
)

// Actions are the user requests gathered from one frame of input.
type Actions struct {
	TogglePause    bool
	SingleStep     bool
	Reset          bool
	StepsPerUpdate int
}

// ControlsPanel renders the raygui control panel in the top-right corner.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), width: width}
}

// Draw renders the panel and returns the actions clicked this frame.
// stepsPerUpdate is the current rate; the returned Actions carry the
// possibly changed rate.
func (c *ControlsPanel) Draw(screenWidth int32, paused bool, stepsPerUpdate int) Actions {
	th := c.renderer.Theme
	x := float32(screenWidth - c.width - 5)
	y := float32(5)
	w := float32(c.width - 2*th.Padding)

	c.renderer.DrawPanel(int32(x), int32(y), c.width, 150)
	x += float32(th.Padding)
	y += float32(th.Padding)

	act := Actions{StepsPerUpdate: stepsPerUpdate}

	label := "Pause"
	if paused {
		label = "Resume"
	}
	half := (w - 5) / 2
	act.TogglePause = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, label)
	act.SingleStep = gui.Button(rl.Rectangle{X: x + half + 5, Y: y, Width: half, Height: 24}, "Step")
	y += 30

	act.Reset = gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Reset")
	y += 34

	rl.DrawText(fmt.Sprintf("steps/frame: %d", stepsPerUpdate), int32(x), int32(y), th.FontSize, th.LabelColor)
	y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: y, Width: w - 24, Height: 18},
		"1", fmt.Sprint(MaxStepsPerUpdate),
		float32(stepsPerUpdate), MinStepsPerUpdate, MaxStepsPerUpdate,
	)
	act.StepsPerUpdate = ClampSteps(int(v + 0.5))

	return act
}

// ClampSteps limits a steps-per-update value to the slider range.
func ClampSteps(n int) int {
	if n < MinStepsPerUpdate {
		return MinStepsPerUpdate
	}
	if n > MaxStepsPerUpdate {
		return MaxStepsPerUpdate
	}
	return n
}
