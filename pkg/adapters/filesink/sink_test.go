package filesink

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/user/routemock/pkg/mocks"
	"github.com/user/routemock/pkg/ports"
)

func TestSink_AppendsJSONLines(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New("transcript.jsonl", fs)

	if !sink.Enabled() {
		t.Error("file sink should be enabled")
	}

	events := []ports.TrafficEvent{
		{
			Time:       time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			RuleID:     "eligibility",
			Method:     "POST",
			URL:        "https://portal.test/api/eligibility/verify",
			Fulfilled:  true,
			StatusCode: 200,
		},
		{
			Time:      time.Date(2026, 3, 14, 9, 0, 1, 0, time.UTC),
			Method:    "GET",
			URL:       "https://portal.test/static/app.js",
			Fulfilled: false,
			Reason:    "no matching rule",
		},
	}
	for _, ev := range events {
		if err := sink.Record(ev); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	data, ok := fs.GetFile("transcript.jsonl")
	if !ok {
		t.Fatal("transcript file not written")
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}

	var first ports.TrafficEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not JSON: %v", err)
	}
	if first.RuleID != "eligibility" || !first.Fulfilled || first.StatusCode != 200 {
		t.Errorf("first event = %+v", first)
	}

	var second ports.TrafficEvent
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2 is not JSON: %v", err)
	}
	if second.Fulfilled || second.Reason != "no matching rule" {
		t.Errorf("second event = %+v", second)
	}
}
