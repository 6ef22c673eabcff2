package bot

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestRPGComponentsLayout(t *testing.T) {
	issued := time.Unix(1700000000, 0)
	rows := rpgComponents("user1", issued)

	if len(rows) != 2 {
		t.Fatalf("expected 2 button rows, got %d", len(rows))
	}

	var total int
	for _, row := range rows {
		actionsRow, ok := row.(discordgo.ActionsRow)
		if !ok {
			t.Fatalf("expected ActionsRow, got %T", row)
		}
		total += len(actionsRow.Components)
	}
	if total != 8 {
		t.Fatalf("expected 8 buttons, got %d", total)
	}

	first, ok := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	if !ok {
		t.Fatalf("expected Button, got %T", rows[0].(discordgo.ActionsRow).Components[0])
	}
	want := fmt.Sprintf("rpg:explore:user1:%d", issued.Unix())
	if first.CustomID != want {
		t.Fatalf("unexpected CustomID: %q, want %q", first.CustomID, want)
	}
}

func TestRPGComponentsCarryOwner(t *testing.T) {
	rows := rpgComponents("owner42", time.Unix(1700000000, 0))

	seen := make(map[string]bool)
	for _, row := range rows {
		for _, comp := range row.(discordgo.ActionsRow).Components {
			btn := comp.(discordgo.Button)
			parts := strings.Split(btn.CustomID, ":")
			if len(parts) != 4 || parts[0] != "rpg" {
				t.Fatalf("unparsable CustomID %q", btn.CustomID)
			}
			if parts[2] != "owner42" {
				t.Fatalf("CustomID %q does not carry the owner", btn.CustomID)
			}
			if parts[3] != "1700000000" {
				t.Fatalf("CustomID %q does not carry the issue time", btn.CustomID)
			}
			seen[parts[1]] = true
		}
	}

	for _, action := range []string{"explore", "fight", "flee", "rest", "potion", "shop", "status", "help"} {
		if !seen[action] {
			t.Fatalf("missing button for action %q", action)
		}
	}
}
