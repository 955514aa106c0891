package domain

import "testing"

func sessionsWithBlueprints(ids ...string) []ClassifiedSession {
	out := make([]ClassifiedSession, len(ids))
	for i, id := range ids {
		out[i] = ClassifiedSession{ID: "s", BlueprintID: id, Seq: i}
	}
	return out
}

func TestIdentifyFlows(t *testing.T) {
	tests := []struct {
		name          string
		blueprints    []string
		expectedFlow1 string
		expectedFlow2 string
	}{
		{
			name:          "ranked by frequency",
			blueprints:    []string{"B2", "B1", "B1", "B3", "B1", "B2"},
			expectedFlow1: "B1",
			expectedFlow2: "B2",
		},
		{
			name:          "ties keep first appearance",
			blueprints:    []string{"B3", "B2", "B1", "B1", "B2", "B3"},
			expectedFlow1: "B3",
			expectedFlow2: "B2",
		},
		{
			name:          "single blueprint designates one flow",
			blueprints:    []string{"B1", "", "B1"},
			expectedFlow1: "B1",
		},
		{
			name:       "no blueprints designates nothing",
			blueprints: []string{"", ""},
		},
		{
			name:       "empty input",
			blueprints: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := IdentifyFlows(sessionsWithBlueprints(tt.blueprints...))
			assertFlow(t, "Flow1", fs.Flow1, tt.expectedFlow1)
			assertFlow(t, "Flow2", fs.Flow2, tt.expectedFlow2)
		})
	}
}

func assertFlow(t *testing.T, name string, got *FlowInfo, expected string) {
	t.Helper()
	if expected == "" {
		if got != nil {
			t.Errorf("%s: expected none, got %s", name, got.BlueprintID)
		}
		return
	}
	if got == nil {
		t.Errorf("%s: expected %s, got none", name, expected)
		return
	}
	if got.BlueprintID != expected {
		t.Errorf("%s: expected %s, got %s", name, expected, got.BlueprintID)
	}
}

func TestAssignFlows_Partition(t *testing.T) {
	sessions := sessionsWithBlueprints("B1", "B2", "B1", "", "B3", "B2", "B1")
	fs := AssignFlows(sessions)

	if fs.Flow1.Sessions != 3 || fs.Flow2.Sessions != 2 {
		t.Errorf("unexpected flow counts: %d, %d", fs.Flow1.Sessions, fs.Flow2.Sessions)
	}

	counts := map[Flow]int{}
	for _, s := range sessions {
		counts[s.Flow]++
	}
	if counts[Flow1] != 3 || counts[Flow2] != 2 || counts[FlowOther] != 2 {
		t.Errorf("unexpected partition: %v", counts)
	}
	if counts[Flow1]+counts[Flow2]+counts[FlowOther] != len(sessions) {
		t.Errorf("partition does not cover all sessions")
	}
}

func TestFlowSet_AssignWithoutBlueprint(t *testing.T) {
	var fs FlowSet
	if got := fs.Assign(""); got != FlowOther {
		t.Errorf("expected Other, got %v", got)
	}
	if got := fs.Assign("B1"); got != FlowOther {
		t.Errorf("expected Other with no designated flows, got %v", got)
	}
}

func TestFlow_String(t *testing.T) {
	if Flow1.String() != "Flow 1" || Flow2.String() != "Flow 2" || FlowOther.String() != "Other" {
		t.Errorf("unexpected names: %s %s %s", Flow1, Flow2, FlowOther)
	}
}
