package models

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestMatchRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     MatchRequest
		wantErr bool
	}{
		{"query only", MatchRequest{Query: "java"}, false},
		{"job only", MatchRequest{JobID: "5185"}, false},
		{"neither", MatchRequest{}, true},
		{"both", MatchRequest{Query: "java", JobID: "5185"}, true},
		{"threshold zero", MatchRequest{Query: "java", Threshold: floatPtr(0)}, false},
		{"threshold one", MatchRequest{Query: "java", Threshold: floatPtr(1)}, false},
		{"threshold negative", MatchRequest{Query: "java", Threshold: floatPtr(-0.1)}, true},
		{"threshold above one", MatchRequest{Query: "java", Threshold: floatPtr(1.1)}, true},
		{"negative limit", MatchRequest{Query: "java", Limit: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
