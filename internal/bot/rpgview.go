package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// rpgViewTTL is how long an RPG button row stays live. Presses refresh it;
// after the idle window the buttons acknowledge silently and do nothing.
const rpgViewTTL = 5 * time.Minute

var rpgButtonRows = [][]struct{ action, label string }{
	{{"explore", "Explore"}, {"fight", "Fight"}, {"flee", "Flee"}, {"rest", "Rest"}},
	{{"potion", "Potion"}, {"shop", "Shop"}, {"status", "Status"}, {"help", "Help"}},
}

// rpgComponents builds the action button rows. The owner and issue time
// ride along in the CustomID so no server-side registry is needed.
func rpgComponents(ownerID string, issued time.Time) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(rpgButtonRows))
	for _, row := range rpgButtonRows {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, discordgo.Button{
				Label:    btn.label,
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("rpg:%s:%s:%d", btn.action, ownerID, issued.Unix()),
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}

// handleRPGButton resolves a button press against the RPG engine and edits
// the message in place with the outcome and a refreshed button row.
func (b *Bot) handleRPGButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	parts := strings.Split(i.MessageComponentData().CustomID, ":")
	if len(parts) != 4 || parts[0] != "rpg" {
		return
	}
	action, ownerID := parts[1], parts[2]

	issued, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return
	}
	if time.Since(time.Unix(issued, 0)) > rpgViewTTL {
		// Expired view: acknowledge so the press doesn't error, change nothing
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		return
	}

	user := interactionUser(i)
	if user == nil {
		return
	}
	if user.ID != ownerID {
		respondEphemeral(s, i, "This isn't your adventure.")
		return
	}

	result := b.rpg.Apply(ownerID, action)
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    result,
			Components: rpgComponents(ownerID, time.Now()),
		},
	})
}
