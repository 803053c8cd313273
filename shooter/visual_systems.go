package shooter

import (
	"math"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
)

// AttachmentSystem moves attached entities with their parent. Entities whose
// parent is gone stay where they are.
type AttachmentSystem struct {
	Attached ecs.Query[struct {
		*Transform
		*Attachment
	}]
	Input ecs.Singleton[Input]
}

func (s *AttachmentSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()

	var steer Vec2
	for item := range s.Attached.Values() {
		if !item.Attachment.Parent.Alive() {
			continue
		}
		parent := ecs.ReadComponent[Transform](frame.Storage, item.Attachment.Parent.Id)
		if parent == nil {
			continue
		}

		steer = Vec2{}
		if input.Left {
			steer.X = -item.Attachment.Steer.X
		} else if input.Right {
			steer.X = item.Attachment.Steer.X
		}
		if input.Up {
			steer.Y = item.Attachment.Steer.Y
		} else if input.Down {
			steer.Y = -item.Attachment.Steer.Y
		}

		item.Transform.Position = parent.Position.Add(item.Attachment.Offset).Add(steer)
	}
}

// AnimationSystem steps sprite frames from First to Last and back to First.
type AnimationSystem struct {
	Animated ecs.Query[struct {
		*Sprite
		*AnimationTimer
		*AnimationIndices
	}]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Animated.Values() {
		if !item.AnimationTimer.Timer.Tick(frame.DeltaTime) {
			continue
		}
		if item.Sprite.Frame != item.AnimationIndices.Last {
			item.Sprite.Frame++
		} else {
			item.Sprite.Frame = item.AnimationIndices.First
		}
	}
}

// ParallaxSystem scrolls background layers. A layer moving at full camera
// speed looks static, so each step shifts it by the part it lags behind.
type ParallaxSystem struct {
	Layers ecs.Query[struct {
		*ParallaxLayer
	}]
	Config ecs.Singleton[config.Config]
}

func (s *ParallaxSystem) Execute(frame *ecs.UpdateFrame) {
	background := s.Config.Get().Background
	tile := float64(background.TileHeight)

	for item := range s.Layers.Values() {
		layer := item.ParallaxLayer
		offset := float64(layer.Offset) + float64(background.CameraSpeed*(1-layer.Speed))
		offset = math.Mod(offset, tile)
		if offset < 0 {
			offset += tile
		}
		layer.Offset = float32(offset)
	}
}
