package homemd

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/goliatone/go-famhome/pkg/testsupport"
)

func TestParseMatchesGolden(t *testing.T) {
	raw, err := testsupport.LoadFixture("testdata/background_right.md")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	var want any
	if err := testsupport.LoadGolden("testdata/background_right.json", &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}

	payload, err := json.Marshal(Parse(string(raw)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("document mismatch\n got: %s", payload)
	}
}
