package tasks

type GenerateTasksRequest struct {
	Goal        string  `json:"goal"`
	Users       string  `json:"users"`
	Constraints string  `json:"constraints"`
	Template    string  `json:"template"`
	Risks       *string `json:"risks,omitempty"`
}

// RisksOrEmpty returns the risks text, or "" when the field was omitted.
func (r GenerateTasksRequest) RisksOrEmpty() string {
	if r.Risks == nil {
		return ""
	}
	return *r.Risks
}

type GenerateTasksResult struct {
	Result string `json:"result"`
}
