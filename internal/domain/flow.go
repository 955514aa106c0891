package domain

// FlowInfo describes a designated cancel flow.
type FlowInfo struct {
	BlueprintID string `json:"blueprintId"`
	Sessions    int    `json:"sessions"`
}

// FlowSet holds up to two designated flows, ranked by session count.
type FlowSet struct {
	Flow1 *FlowInfo `json:"flow1,omitempty"`
	Flow2 *FlowInfo `json:"flow2,omitempty"`
}

// Assign maps a blueprint id to its flow. Sessions without a blueprint, or with a
// blueprint that was not designated, are FlowOther.
func (fs FlowSet) Assign(blueprintID string) Flow {
	if blueprintID == "" {
		return FlowOther
	}
	if fs.Flow1 != nil && fs.Flow1.BlueprintID == blueprintID {
		return Flow1
	}
	if fs.Flow2 != nil && fs.Flow2.BlueprintID == blueprintID {
		return Flow2
	}
	return FlowOther
}

// IdentifyFlows ranks blueprint ids by frequency and designates the top two.
// Ties keep the order in which ids first appear in the input.
func IdentifyFlows(sessions []ClassifiedSession) FlowSet {
	counts := NewCounter()
	for _, s := range sessions {
		if s.BlueprintID != "" {
			counts.Add(s.BlueprintID)
		}
	}
	top := counts.Top(2)

	var fs FlowSet
	if len(top) > 0 {
		fs.Flow1 = &FlowInfo{BlueprintID: top[0].Name, Sessions: top[0].Count}
	}
	if len(top) > 1 {
		fs.Flow2 = &FlowInfo{BlueprintID: top[1].Name, Sessions: top[1].Count}
	}
	return fs
}

// AssignFlows sets the Flow of every session in place and returns the flow set used.
func AssignFlows(sessions []ClassifiedSession) FlowSet {
	fs := IdentifyFlows(sessions)
	for i := range sessions {
		sessions[i].Flow = fs.Assign(sessions[i].BlueprintID)
	}
	return fs
}

// FlowFilter selects sessions assigned to f.
func FlowFilter(f Flow) Filter {
	return func(s ClassifiedSession) bool { return s.Flow == f }
}
