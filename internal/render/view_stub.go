//go:build !ebiten

package render

import "vajontsim/internal/scene"

// View is a no-op placeholder for headless builds.
type View struct{}

// NewView returns nil in the headless build.
func NewView(int, int) *View { return nil }

// Size returns zeros in the headless build.
func (v *View) Size() (int, int) { return 0, 0 }

// Draw is a no-op in the headless build.
func (v *View) Draw(any, *scene.Stage) {}
