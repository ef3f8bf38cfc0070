package physics

import (
	"encoding/json"
	"fmt"
)

// Vec2JSON decodes a {"X":.., "Y":..} pair from the physics descriptor.
type Vec2JSON struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

// Physics3Data is the top-level shape of a physics3.json descriptor.
type Physics3Data struct {
	Version         int              `json:"Version"`
	Meta            Physics3Meta     `json:"Meta"`
	PhysicsSettings []PhysicsSetting `json:"PhysicsSettings"`
}

type Physics3Meta struct {
	TotalInputCount     int               `json:"TotalInputCount"`
	TotalOutputCount    int               `json:"TotalOutputCount"`
	VertexCount         int               `json:"VertexCount"`
	PhysicsSettingCount int               `json:"PhysicsSettingCount"`
	EffectiveForces     ForceData         `json:"EffectiveForces"`
	PhysicsDictionary   []PhysicsIDData   `json:"PhysicsDictionary"`
}

type ForceData struct {
	Gravity Vec2JSON `json:"Gravity"`
	Wind    Vec2JSON `json:"Wind"`
}

type PhysicsIDData struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// PhysicsSetting is one pendulum chain: its vertices, what drives it
// (Input), and what it drives in turn (Output).
type PhysicsSetting struct {
	ID            string               `json:"Id"`
	Input         []PhysicsInput       `json:"Input"`
	Output        []PhysicsOutput      `json:"Output"`
	Vertices      []PhysicsVertexJSON  `json:"Vertices"`
	Normalization *PhysicsNormalization `json:"Normalization"`
}

type PhysicsTarget struct {
	Target string `json:"Target"`
	ID     string `json:"Id"`
}

type PhysicsInput struct {
	Source  PhysicsTarget `json:"Source"`
	Weight  float64       `json:"Weight"`
	Type    string        `json:"Type"`
	Reflect bool          `json:"Reflect"`
}

type PhysicsOutput struct {
	Destination PhysicsTarget `json:"Destination"`
	VertexIndex int           `json:"VertexIndex"`
	Scale       float64       `json:"Scale"`
	Weight      float64       `json:"Weight"`
	Type        string        `json:"Type"`
	Reflect     bool          `json:"Reflect"`
}

type PhysicsVertexJSON struct {
	Position     Vec2JSON `json:"Position"`
	Mobility     float64  `json:"Mobility"`
	Delay        float64  `json:"Delay"`
	Acceleration float64  `json:"Acceleration"`
	Radius       float64  `json:"Radius"`
}

type PhysicsNormalization struct {
	Position ParameterRange `json:"Position"`
	Angle    ParameterRange `json:"Angle"`
}

type ParameterRange struct {
	Minimum float64 `json:"Minimum"`
	Maximum float64 `json:"Maximum"`
	Default float64 `json:"Default"`
}

// ParseDescriptor decodes a physics3.json document.
func ParseDescriptor(data []byte) (*Physics3Data, error) {
	var out Physics3Data
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("physics: failed to parse descriptor: %w", err)
	}
	return &out, nil
}
