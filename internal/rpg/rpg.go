package rpg

import (
	"fmt"
	"strings"
	"sync"
)

// Rand is the source of randomness for action resolution. *math/rand.Rand
// satisfies it; tests inject a scripted source for deterministic outcomes.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Encounter is the monster an adventurer is currently fighting.
type Encounter struct {
	Name  string
	HP    int
	MaxHP int
}

// Adventurer is the per-user progression record.
type Adventurer struct {
	Level     int
	XP        int
	Gold      int
	MaxHP     int
	HP        int
	Potions   int
	Encounter *Encounter
}

var monsterNames = []string{"Slime", "Wolf Pup", "Goblin", "Skeleton", "Wild Boar"}

// Engine resolves RPG actions against an in-memory adventurer store.
type Engine struct {
	mu          sync.Mutex
	rng         Rand
	adventurers map[string]*Adventurer
}

// NewEngine creates an engine backed by the given random source.
func NewEngine(rng Rand) *Engine {
	return &Engine{
		rng:         rng,
		adventurers: make(map[string]*Adventurer),
	}
}

func newAdventurer() *Adventurer {
	return &Adventurer{
		Level:   1,
		XP:      0,
		Gold:    0,
		MaxHP:   20,
		HP:      20,
		Potions: 1,
	}
}

func xpToNext(level int) int {
	return 8 + 4*level
}

// rollRange returns a uniform value in [lo, hi].
func (e *Engine) rollRange(lo, hi int) int {
	return lo + e.rng.Intn(hi-lo+1)
}

// Apply resolves a single action for a user and returns the reply text.
// Each call reads and writes that user's state indivisibly.
func (e *Engine) Apply(userID, action string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if action == "start" {
		e.adventurers[userID] = newAdventurer()
		return "Your adventure begins! Use /rpg explore to head out."
	}

	a, ok := e.adventurers[userID]
	if !ok {
		a = newAdventurer()
		e.adventurers[userID] = a
	}

	switch action {
	case "help":
		return helpText()
	case "status":
		return a.status()
	case "rest":
		heal := min(8+a.Level, a.MaxHP-a.HP)
		a.HP += heal
		return fmt.Sprintf("You take a rest and recover %d HP.\n%s", heal, a.status())
	case "potion":
		if a.Potions <= 0 {
			return "You are out of potions.\n" + a.status()
		}
		if a.HP >= a.MaxHP {
			return "You are already at full HP, no potion needed.\n" + a.status()
		}
		a.Potions--
		heal := min(12, a.MaxHP-a.HP)
		a.HP += heal
		return fmt.Sprintf("You drink a potion and recover %d HP.\n%s", heal, a.status())
	case "shop":
		if a.Gold < 5 {
			return "Shop: potions cost 5 gold each. You can't afford one.\n" + a.status()
		}
		a.Gold -= 5
		a.Potions++
		return "You bought a potion!\n" + a.status()
	case "explore":
		return e.explore(a)
	case "fight":
		return e.fight(a)
	case "flee":
		return e.flee(a)
	}

	return "Unknown action. Use /rpg help to see what you can do."
}

func (e *Engine) explore(a *Adventurer) string {
	if a.Encounter != nil {
		return "You are already in an encounter! Use /rpg fight or /rpg flee first.\n" + a.status()
	}

	roll := e.rng.Float64()
	switch {
	case roll < 0.55:
		name := monsterNames[e.rng.Intn(len(monsterNames))]
		maxHP := 10 + 3*a.Level + e.rng.Intn(5)
		a.Encounter = &Encounter{Name: name, HP: maxHP, MaxHP: maxHP}
		return fmt.Sprintf("You ran into a %s! Use /rpg fight to attack, or /rpg flee to run.\n%s", name, a.status())
	case roll < 0.75:
		gold := e.rollRange(2, 6)
		xp := e.rollRange(1, 4)
		a.Gold += gold
		a.XP += xp
		msgs := []string{fmt.Sprintf("You found a small chest: +%d gold, +%d XP.", gold, xp)}
		msgs = append(msgs, a.levelUpIfNeeded()...)
		msgs = append(msgs, a.status())
		return strings.Join(msgs, "\n")
	case roll < 0.90:
		heal := min(6+a.Level, a.MaxHP-a.HP)
		a.HP += heal
		msgs := []string{fmt.Sprintf("You found a campfire and recover %d HP.", heal)}
		msgs = append(msgs, a.levelUpIfNeeded()...)
		msgs = append(msgs, a.status())
		return strings.Join(msgs, "\n")
	default:
		a.Gold++
		msgs := []string{"You wandered off the trail, but picked up 1 gold coin."}
		msgs = append(msgs, a.levelUpIfNeeded()...)
		msgs = append(msgs, a.status())
		return strings.Join(msgs, "\n")
	}
}

func (e *Engine) fight(a *Adventurer) string {
	enc := a.Encounter
	if enc == nil {
		return "Nothing to fight. Use /rpg explore to find a monster."
	}

	playerDamage := e.rollRange(3, 6+a.Level)
	enc.HP -= playerDamage
	lines := []string{fmt.Sprintf("You hit the %s for %d damage.", enc.Name, playerDamage)}

	if enc.HP <= 0 {
		rewardGold := e.rollRange(4, 8) + a.Level
		rewardXP := e.rollRange(3, 6) + a.Level/2
		a.Gold += rewardGold
		a.XP += rewardXP
		a.Encounter = nil
		lines = append(lines, fmt.Sprintf("The %s goes down! You gain +%d gold and +%d XP.", enc.Name, rewardGold, rewardXP))
		lines = append(lines, a.levelUpIfNeeded()...)
		lines = append(lines, a.status())
		return strings.Join(lines, "\n")
	}

	monsterDamage := e.rollRange(1, 4+a.Level)
	a.HP -= monsterDamage
	lines = append(lines, fmt.Sprintf("The %s strikes back, you take %d damage.", enc.Name, monsterDamage))

	if a.HP <= 0 {
		lost := a.Gold / 2
		a.Gold -= lost
		a.HP = a.MaxHP
		a.Encounter = nil
		lines = append(lines, fmt.Sprintf("You fell! You lose %d gold, but wake up fully healed.", lost))
		lines = append(lines, a.status())
		return strings.Join(lines, "\n")
	}

	lines = append(lines, a.status())
	return strings.Join(lines, "\n")
}

func (e *Engine) flee(a *Adventurer) string {
	if a.Encounter == nil {
		return "Nothing to flee from."
	}
	penalty := e.rng.Intn(min(a.Gold, 3) + 1)
	a.Gold -= penalty
	a.Encounter = nil
	return fmt.Sprintf("You got away! You dropped %d gold along the way.\n%s", penalty, a.status())
}

// levelUpIfNeeded applies as many level-ups as the accumulated XP covers and
// returns one message per level gained, in order.
func (a *Adventurer) levelUpIfNeeded() []string {
	var msgs []string
	for a.XP >= xpToNext(a.Level) {
		a.XP -= xpToNext(a.Level)
		a.Level++
		a.MaxHP += 2
		a.HP = a.MaxHP
		a.Potions++
		msgs = append(msgs, fmt.Sprintf("Level up! You are now level %d with %d max HP, and gain 1 potion.", a.Level, a.MaxHP))
	}
	return msgs
}

func (a *Adventurer) status() string {
	encounterLine := ""
	if a.Encounter != nil {
		encounterLine = fmt.Sprintf("\nIn combat: %s (HP %d/%d)", a.Encounter.Name, a.Encounter.HP, a.Encounter.MaxHP)
	}
	return fmt.Sprintf("Level %d | XP %d/%d\nHP %d/%d | Gold %d | Potions %d%s",
		a.Level, a.XP, xpToNext(a.Level), a.HP, a.MaxHP, a.Gold, a.Potions, encounterLine)
}

func helpText() string {
	return strings.Join([]string{
		"RPG actions:",
		"- /rpg explore: look around (monsters, chests, campfires)",
		"- /rpg fight: fight one round (needs an active encounter)",
		"- /rpg flee: run away (may drop a little gold)",
		"- /rpg rest: rest and recover HP",
		"- /rpg potion: drink a potion to recover HP",
		"- /rpg shop: buy 1 potion for 5 gold",
		"- /rpg status: show your current state",
	}, "\n")
}
