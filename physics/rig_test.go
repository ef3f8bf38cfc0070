package physics

import (
	"testing"
)

func testParamLookup(ids []string) ParamLookup {
	return func(id string) (int, bool) {
		for i, v := range ids {
			if v == id {
				return i, true
			}
		}
		return 0, false
	}
}

func TestNewRigResolvesBindings(t *testing.T) {
	data, err := ParseDescriptor([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}

	lookup := testParamLookup([]string{"ParamAngleX", "ParamHairFront"})
	rig, err := NewRig(data, lookup)
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}
	if len(rig.chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(rig.chains))
	}
	c := rig.chains[0]
	if len(c.inputs) != 1 || c.inputs[0].paramIndex != 0 {
		t.Fatalf("unexpected inputs: %+v", c.inputs)
	}
	if len(c.outputs) != 1 || c.outputs[0].paramIndex != 1 || c.outputs[0].vertexIndex != 1 {
		t.Fatalf("unexpected outputs: %+v", c.outputs)
	}
}

func TestNewRigDropsUnresolvableInput(t *testing.T) {
	data, err := ParseDescriptor([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}

	lookup := testParamLookup([]string{"ParamHairFront"})
	rig, err := NewRig(data, lookup)
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}
	if len(rig.chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(rig.chains))
	}
	if len(rig.chains[0].inputs) != 0 {
		t.Fatalf("expected no resolved inputs, got %+v", rig.chains[0].inputs)
	}
}

func TestNewRigRejectsOutOfRangeVertexIndex(t *testing.T) {
	data, err := ParseDescriptor([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}
	data.PhysicsSettings[0].Output[0].VertexIndex = 99

	lookup := testParamLookup([]string{"ParamAngleX", "ParamHairFront"})
	if _, err := NewRig(data, lookup); err == nil {
		t.Fatal("expected an error for out-of-range vertex index")
	}
}

func TestRigStepWritesOutputParam(t *testing.T) {
	data, err := ParseDescriptor([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}

	lookup := testParamLookup([]string{"ParamAngleX", "ParamHairFront"})
	rig, err := NewRig(data, lookup)
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}

	params := make([]float64, 2)
	params[0] = 10

	for i := 0; i < 60; i++ {
		rig.Step(1.0/60.0, params)
	}

	if params[1] == 0 {
		t.Fatalf("expected output param to be driven away from zero, got %v", params[1])
	}
}
