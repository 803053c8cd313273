package main

import (
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/shooter"
)

// AutopilotSystem plays the game: it keeps the ship low, lines it up under
// the lowest foe and fires all the time.
type AutopilotSystem struct {
	Ship ecs.Query[struct {
		*shooter.Transform
		*shooter.SpaceShip
	}]
	Foes ecs.Query[struct {
		*shooter.Transform
		*shooter.Foe
	}]
	Input ecs.Singleton[shooter.Input]
}

const (
	cruiseHeight = -150
	aimSlack     = 4
)

func (s *AutopilotSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	*input = shooter.Input{Fire: true}

	_, ship, ok := s.Ship.First()
	if !ok {
		return
	}
	at := ship.Transform.Position

	input.Down = at.Y > cruiseHeight
	input.Up = at.Y < cruiseHeight-aimSlack

	var target *shooter.Transform
	for foe := range s.Foes.Values() {
		if target == nil || foe.Transform.Position.Y < target.Position.Y {
			target = foe.Transform
		}
	}
	if target == nil {
		return
	}

	dx := target.Position.X - at.X
	input.Left = dx < -aimSlack
	input.Right = dx > aimSlack
}
