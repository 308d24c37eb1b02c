// planar-sim runs a YAML scene headlessly and reports body state, which
// makes it useful both as a demo and as a quick way to eyeball whether a
// scene settles.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/planar-engine/planar"
)

func main() {
	scenePath := flag.String("scene", "scene.yaml", "scene file to simulate")
	steps := flag.Int("steps", 0, "override the scene's step count")
	dt := flag.Float64("dt", 0, "override the scene's timestep")
	report := flag.Int("report", 0, "print body state every N steps (0 = final only)")
	flag.Parse()

	scene, err := LoadScene(*scenePath)
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}

	world, ids, err := scene.Build()
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}

	stepCount := scene.Steps
	if *steps > 0 {
		stepCount = *steps
	}
	if stepCount <= 0 {
		stepCount = 600
	}
	timestep := scene.Dt
	if *dt > 0 {
		timestep = *dt
	}
	if timestep <= 0 {
		timestep = 1.0 / 60.0
	}

	for i := 0; i < stepCount; i++ {
		world.Step(timestep)
		if *report > 0 && (i+1)%*report == 0 {
			fmt.Printf("--- step %d\n", i+1)
			printBodies(world, ids)
		}
	}

	fmt.Printf("--- final (%d steps at dt=%g)\n", stepCount, timestep)
	printBodies(world, ids)

	sleeping := 0
	for _, id := range ids {
		if b := world.Body(id); b != nil && b.Sleeping {
			sleeping++
		}
	}
	fmt.Printf("%d/%d bodies sleeping\n", sleeping, world.BodyCount())
	os.Exit(0)
}

func printBodies(world *planar.World, ids []planar.BodyID) {
	for _, id := range ids {
		b := world.Body(id)
		if b == nil {
			continue
		}
		state := "awake"
		if b.Sleeping {
			state = "asleep"
		}
		speed := math.Hypot(b.Velocity.X, b.Velocity.Y)
		fmt.Printf("body %d: pos=(%.3f, %.3f) angle=%.3f speed=%.4f %s\n",
			b.ID, b.Position.X, b.Position.Y, b.Angle, speed, state)
	}
}
