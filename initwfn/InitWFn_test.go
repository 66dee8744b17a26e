package initwfn

import (
	"encoding/json"
	"testing"
)

func TestInitWFnJSONRoundTrip(t *testing.T) {
	init, err := NewGlorotU(1.0)
	if err != nil {
		t.Fatalf("could not create weight initializer: %v", err)
	}

	data, err := json.Marshal(init)
	if err != nil {
		t.Fatalf("could not marshal weight initializer: %v", err)
	}

	var decoded InitWFn
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("could not unmarshal weight initializer: %v", err)
	}

	if decoded.Type != GlorotU {
		t.Errorf("incorrect initializer type \n\twant(%v)\n\thave(%v)",
			GlorotU, decoded.Type)
	}
	if decoded.InitWFn() == nil {
		t.Error("unmarshalling did not create the wrapped InitWFn")
	}
}
