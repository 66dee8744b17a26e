package solver

import (
	"encoding/json"
	"testing"
)

func TestSolverJSONRoundTrip(t *testing.T) {
	solver, err := NewAdam(0.001, 1e-8, 0.9, 0.999, 32)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}

	data, err := json.Marshal(solver)
	if err != nil {
		t.Fatalf("could not marshal solver: %v", err)
	}

	var decoded Solver
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("could not unmarshal solver: %v", err)
	}

	if decoded.Type != Adam {
		t.Errorf("incorrect solver type \n\twant(%v)\n\thave(%v)", Adam,
			decoded.Type)
	}
	if decoded.Solver == nil {
		t.Error("unmarshalling did not create the wrapped solver")
	}
	if !decoded.Config.ValidType(Adam) {
		t.Error("unmarshalled configuration is not an Adam configuration")
	}
}

func TestNewSolverRejectsMismatchedConfig(t *testing.T) {
	if _, err := newSolver(Vanilla, AdamConfig{}); err == nil {
		t.Error("expected error when solver type does not match its " +
			"configuration")
	}
}
