package bot

import (
	"strings"
	"testing"

	"likebot-api/internal/services"
)

func TestParseCommand(t *testing.T) {
	name, args := parseCommand("like 123456789 IND")
	if name != "like" {
		t.Errorf("name = %q, want like", name)
	}
	if len(args) != 2 || args[0] != "123456789" || args[1] != "IND" {
		t.Errorf("args = %v", args)
	}

	name, args = parseCommand("LIKE")
	if name != "like" || len(args) != 0 {
		t.Errorf("got name=%q args=%v", name, args)
	}

	name, _ = parseCommand("   ")
	if name != "" {
		t.Errorf("blank input should yield no command, got %q", name)
	}
}

func TestParseUserID(t *testing.T) {
	cases := map[string]string{
		"123456789":     "123456789",
		"<@123456789>":  "123456789",
		"<@!123456789>": "123456789",
	}
	for raw, want := range cases {
		if got := parseUserID(raw); got != want {
			t.Errorf("parseUserID(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFormatLikeResponse(t *testing.T) {
	result := &services.LikeResult{
		Nickname:    "Shadow",
		UID:         "123456789",
		Region:      "nx",
		LikesBefore: 90,
		LikesAfter:  100,
		LikesAdded:  10,
	}

	out := formatLikeResponse(result, "NORTH AMERICA", "REMAINING: 4/5")
	for _, want := range []string{"NICKNAME: Shadow", "UID: 123456789", "REGION: NORTH AMERICA", "ADDED: +10", "BEFORE: 90", "AFTER: 100", "REMAINING: 4/5"} {
		if !strings.Contains(out, want) {
			t.Errorf("response missing %q:\n%s", want, out)
		}
	}
}
