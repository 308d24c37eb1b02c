package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/planar-engine/planar"
)

// Scene is the YAML definition of a simulation run: the world parameters,
// the bodies, and the persistent constraints between them.
type Scene struct {
	Gravity    [2]float64 `yaml:"gravity"`
	CellSize   float64    `yaml:"cell_size,omitempty"`
	Iterations int        `yaml:"iterations,omitempty"`
	Dt         float64    `yaml:"dt,omitempty"`
	Steps      int        `yaml:"steps,omitempty"`

	Bodies      []BodyDef       `yaml:"bodies"`
	Constraints []ConstraintDef `yaml:"constraints,omitempty"`
}

type BodyDef struct {
	Kind        string   `yaml:"kind"`
	Shape       ShapeDef `yaml:"shape"`
	X           float64  `yaml:"x"`
	Y           float64  `yaml:"y"`
	Angle       float64  `yaml:"angle,omitempty"`
	Mass        float64  `yaml:"mass,omitempty"`
	Restitution float64  `yaml:"restitution,omitempty"`
	Friction    float64  `yaml:"friction,omitempty"`
	Layer       uint16   `yaml:"layer,omitempty"`
	Mask        uint16   `yaml:"mask,omitempty"`
}

type ShapeDef struct {
	Type     string       `yaml:"type"`
	Radius   float64      `yaml:"radius,omitempty"`
	HalfW    float64      `yaml:"half_w,omitempty"`
	HalfH    float64      `yaml:"half_h,omitempty"`
	Vertices [][2]float64 `yaml:"vertices,omitempty"`
}

type ConstraintDef struct {
	Type       string     `yaml:"type"` // distance or revolute
	BodyA      int        `yaml:"body_a"`
	BodyB      int        `yaml:"body_b"`
	AnchorA    [2]float64 `yaml:"anchor_a,omitempty"`
	AnchorB    [2]float64 `yaml:"anchor_b,omitempty"`
	RestLength float64    `yaml:"rest_length,omitempty"`
}

// LoadScene reads and parses a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

// Build creates a world from the scene. Body indices in constraint defs refer
// to positions in the scene's body list.
func (s *Scene) Build() (*planar.World, []planar.BodyID, error) {
	world := planar.NewWorld(s.Gravity[0], s.Gravity[1])
	if s.CellSize > 0 {
		world.SetCellSize(s.CellSize)
	}
	if s.Iterations > 0 {
		world.SetSolverIterations(s.Iterations)
	}

	ids := make([]planar.BodyID, 0, len(s.Bodies))
	for i, def := range s.Bodies {
		kind, err := parseKind(def.Kind)
		if err != nil {
			return nil, nil, fmt.Errorf("body %d: %w", i, err)
		}
		shape, err := buildShape(def.Shape)
		if err != nil {
			return nil, nil, fmt.Errorf("body %d: %w", i, err)
		}

		layer, mask := def.Layer, def.Mask
		if layer == 0 {
			layer = 1
		}
		if mask == 0 {
			mask = 0xFFFF
		}

		id := world.AddBody(kind, shape, def.X, def.Y, def.Mass,
			planar.Material{Restitution: def.Restitution, Friction: def.Friction},
			layer, mask)
		if def.Angle != 0 {
			world.SetPose(id, def.X, def.Y, def.Angle)
		}
		ids = append(ids, id)
	}

	for i, def := range s.Constraints {
		if def.BodyA < 0 || def.BodyA >= len(ids) || def.BodyB < 0 || def.BodyB >= len(ids) {
			return nil, nil, fmt.Errorf("constraint %d: body index out of range", i)
		}
		a, b := ids[def.BodyA], ids[def.BodyB]
		anchorA := planar.MakeVec2(def.AnchorA[0], def.AnchorA[1])
		anchorB := planar.MakeVec2(def.AnchorB[0], def.AnchorB[1])
		switch strings.ToLower(def.Type) {
		case "distance":
			world.AddDistanceConstraint(a, b, anchorA, anchorB, def.RestLength)
		case "revolute":
			world.AddRevoluteConstraint(a, b, anchorA, anchorB)
		default:
			return nil, nil, fmt.Errorf("constraint %d: unknown type %q", i, def.Type)
		}
	}

	return world, ids, nil
}

func parseKind(s string) (planar.BodyKind, error) {
	switch strings.ToLower(s) {
	case "static":
		return planar.Static, nil
	case "dynamic", "":
		return planar.Dynamic, nil
	case "kinematic":
		return planar.Kinematic, nil
	}
	return 0, fmt.Errorf("unknown body kind %q", s)
}

func buildShape(def ShapeDef) (planar.Shape, error) {
	switch strings.ToLower(def.Type) {
	case "circle":
		return planar.NewCircle(def.Radius), nil
	case "box":
		return planar.NewBox(def.HalfW, def.HalfH), nil
	case "polygon":
		verts := make([]planar.Vec2, len(def.Vertices))
		for i, v := range def.Vertices {
			verts[i] = planar.MakeVec2(v[0], v[1])
		}
		return planar.NewPolygon(verts), nil
	}
	return nil, fmt.Errorf("unknown shape type %q", def.Type)
}
