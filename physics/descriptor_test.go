package physics

import "testing"

const sampleDescriptor = `{
	"Version": 3,
	"Meta": {
		"TotalInputCount": 1,
		"TotalOutputCount": 1,
		"VertexCount": 2,
		"PhysicsSettingCount": 1,
		"EffectiveForces": {"Gravity": {"X": 0, "Y": 1}, "Wind": {"X": 0, "Y": 0}},
		"PhysicsDictionary": [{"Id": "PhysicsSetting1", "Name": "Hair"}]
	},
	"PhysicsSettings": [
		{
			"Id": "PhysicsSetting1",
			"Input": [{"Source": {"Target": "Parameter", "Id": "ParamAngleX"}, "Weight": 100, "Type": "X", "Reflect": false}],
			"Output": [{"Destination": {"Target": "Parameter", "Id": "ParamHairFront"}, "VertexIndex": 1, "Scale": 1, "Weight": 100, "Type": "X", "Reflect": false}],
			"Vertices": [
				{"Position": {"X": 0, "Y": 0}, "Mobility": 1, "Delay": 1, "Acceleration": 1, "Radius": 0},
				{"Position": {"X": 0, "Y": 3}, "Mobility": 0.95, "Delay": 1, "Acceleration": 1, "Radius": 3}
			],
			"Normalization": {
				"Position": {"Minimum": -10, "Maximum": 10, "Default": 0},
				"Angle": {"Minimum": -30, "Maximum": 30, "Default": 0}
			}
		}
	]
}`

func TestParseDescriptor(t *testing.T) {
	data, err := ParseDescriptor([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}
	if len(data.PhysicsSettings) != 1 {
		t.Fatalf("expected 1 physics setting, got %d", len(data.PhysicsSettings))
	}
	setting := data.PhysicsSettings[0]
	if len(setting.Vertices) != 2 {
		t.Fatalf("expected 2 vertices, got %d", len(setting.Vertices))
	}
	if setting.Vertices[1].Radius != 3 {
		t.Fatalf("expected radius 3, got %v", setting.Vertices[1].Radius)
	}
	if data.Meta.PhysicsDictionary[0].Name != "Hair" {
		t.Fatalf("expected dictionary name Hair, got %q", data.Meta.PhysicsDictionary[0].Name)
	}
}

func TestParseDescriptorInvalidJSON(t *testing.T) {
	if _, err := ParseDescriptor([]byte("{not json")); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
