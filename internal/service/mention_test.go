package service

import (
	"reflect"
	"testing"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "no mentions",
			content: "just a plain message",
			want:    nil,
		},
		{
			name:    "single mention",
			content: "hey @alice, what do you think?",
			want:    []string{"alice"},
		},
		{
			name:    "multiple mentions keep first-seen order",
			content: "@carol @alice and @bob should see this",
			want:    []string{"carol", "alice", "bob"},
		},
		{
			name:    "duplicate mention counts once",
			content: "@alice @alice @alice",
			want:    []string{"alice"},
		},
		{
			name:    "underscores and digits are part of the name",
			content: "ping @user_42 about this",
			want:    []string{"user_42"},
		},
		{
			name:    "punctuation ends the name",
			content: "thanks @alice! and @bob.",
			want:    []string{"alice", "bob"},
		},
		{
			name:    "email addresses still match the handle",
			content: "reach me at foo@bar.com",
			want:    []string{"bar"},
		},
		{
			name:    "bare at sign matches nothing",
			content: "meet @ noon",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMentions(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractMentions(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
