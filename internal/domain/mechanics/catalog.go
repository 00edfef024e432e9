// Package mechanics detects strategic mechanics in card rules text using a
// closed, versioned catalog.
package mechanics

import (
	"sort"
	"strings"
)

// CatalogVersion identifies the mechanic catalog snapshot. Downstream weight
// tables are only comparable when built from the same catalog version.
const CatalogVersion = "2026.01"

// Category classifies a mechanic by the kind of rules pattern it matches.
type Category string

// Mechanic categories.
const (
	CategoryKeyword  Category = "keyword"
	CategoryTrigger  Category = "triggered"
	CategoryResource Category = "resource"
	CategoryStrategy Category = "strategy"
)

// Mechanic is a single entry of the closed catalog.
type Mechanic struct {
	ID       string
	Name     string
	Category Category

	// Phrases are the match patterns for this mechanic. Matching is
	// word-boundary aware over normalized text, longest phrase first.
	Phrases []string
}

// Catalog is the closed set of detectable mechanics. It is built once and
// read-only afterwards.
type Catalog struct {
	mechanics []Mechanic
	byID      map[string]int

	// matchOrder holds (phrase, mechanic index) pairs sorted by descending
	// phrase length so multi-word phrases win over their sub-words.
	matchOrder []phraseRef
}

type phraseRef struct {
	phrase   string
	mechanic int
}

// NewCatalog builds a catalog from explicit entries. Entries with duplicate
// ids are rejected by keeping the first occurrence.
func NewCatalog(entries []Mechanic) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(entries))}
	for _, m := range entries {
		if _, dup := c.byID[m.ID]; dup || m.ID == "" {
			continue
		}
		if len(m.Phrases) == 0 {
			m.Phrases = []string{strings.ToLower(m.Name)}
		}
		c.byID[m.ID] = len(c.mechanics)
		c.mechanics = append(c.mechanics, m)
	}
	for i, m := range c.mechanics {
		for _, p := range m.Phrases {
			c.matchOrder = append(c.matchOrder, phraseRef{phrase: strings.ToLower(p), mechanic: i})
		}
	}
	sort.SliceStable(c.matchOrder, func(i, j int) bool {
		a, b := c.matchOrder[i].phrase, c.matchOrder[j].phrase
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return c
}

// Contains reports whether id is part of the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Get returns the mechanic for id.
func (c *Catalog) Get(id string) (Mechanic, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Mechanic{}, false
	}
	return c.mechanics[i], true
}

// Size returns the number of mechanics in the catalog.
func (c *Catalog) Size() int {
	return len(c.mechanics)
}

// IDs returns all mechanic ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.mechanics))
	for _, m := range c.mechanics {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids
}

// Mechanics returns a copy of the catalog entries.
func (c *Catalog) Mechanics() []Mechanic {
	out := make([]Mechanic, len(c.mechanics))
	copy(out, c.mechanics)
	return out
}

func kw(id, name string, phrases ...string) Mechanic {
	return Mechanic{ID: id, Name: name, Category: CategoryKeyword, Phrases: phrases}
}

func trig(id, name string, phrases ...string) Mechanic {
	return Mechanic{ID: id, Name: name, Category: CategoryTrigger, Phrases: phrases}
}

func res(id, name string, phrases ...string) Mechanic {
	return Mechanic{ID: id, Name: name, Category: CategoryResource, Phrases: phrases}
}

func strat(id, name string, phrases ...string) Mechanic {
	return Mechanic{ID: id, Name: name, Category: CategoryStrategy, Phrases: phrases}
}

var defaultCatalog = NewCatalog(defaultEntries()) //nolint:gochecknoglobals // catalog is immutable process-wide state

// DefaultCatalog returns the process-wide catalog for CatalogVersion.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func defaultEntries() []Mechanic {
	return []Mechanic{
		// Evergreen keyword abilities.
		kw("deathtouch", "Deathtouch"),
		kw("defender", "Defender"),
		kw("double-strike", "Double Strike", "double strike"),
		kw("first-strike", "First Strike", "first strike"),
		kw("flash", "Flash"),
		kw("flying", "Flying"),
		kw("haste", "Haste"),
		kw("hexproof", "Hexproof"),
		kw("indestructible", "Indestructible"),
		kw("lifelink", "Lifelink"),
		kw("menace", "Menace"),
		kw("protection", "Protection", "protection from"),
		kw("reach", "Reach"),
		kw("shroud", "Shroud"),
		kw("trample", "Trample"),
		kw("vigilance", "Vigilance"),
		kw("ward", "Ward"),
		kw("equip", "Equip"),
		kw("enchant", "Enchant"),
		kw("fear", "Fear"),
		kw("intimidate", "Intimidate"),
		kw("shadow", "Shadow"),
		kw("horsemanship", "Horsemanship"),
		kw("banding", "Banding"),
		kw("flanking", "Flanking"),
		kw("landwalk", "Landwalk", "islandwalk", "swampwalk", "forestwalk", "mountainwalk", "plainswalk"),

		// Set and deciduous keyword abilities.
		kw("affinity", "Affinity", "affinity for"),
		kw("afflict", "Afflict"),
		kw("aftermath", "Aftermath"),
		kw("amass", "Amass"),
		kw("annihilator", "Annihilator"),
		kw("ascend", "Ascend"),
		kw("adventure", "Adventure"),
		kw("awaken", "Awaken"),
		kw("backup", "Backup"),
		kw("battle-cry", "Battle Cry", "battle cry"),
		kw("bestow", "Bestow"),
		kw("blitz", "Blitz"),
		kw("bloodthirst", "Bloodthirst"),
		kw("boast", "Boast"),
		kw("bushido", "Bushido"),
		kw("buyback", "Buyback"),
		kw("cascade", "Cascade"),
		kw("casualty", "Casualty"),
		kw("champion", "Champion", "champion a"),
		kw("changeling", "Changeling"),
		kw("cipher", "Cipher"),
		kw("cleave", "Cleave"),
		kw("companion", "Companion"),
		kw("connive", "Connive", "connives"),
		kw("conspire", "Conspire"),
		kw("convoke", "Convoke"),
		kw("craft", "Craft", "craft with"),
		kw("crew", "Crew"),
		kw("cumulative-upkeep", "Cumulative Upkeep", "cumulative upkeep"),
		kw("cycling", "Cycling"),
		kw("dash", "Dash"),
		kw("daybound", "Daybound", "daybound", "nightbound"),
		kw("decayed", "Decayed"),
		kw("delve", "Delve"),
		kw("demonstrate", "Demonstrate"),
		kw("devoid", "Devoid"),
		kw("devour", "Devour"),
		kw("discover", "Discover"),
		kw("disturb", "Disturb"),
		kw("dredge", "Dredge"),
		kw("echo", "Echo"),
		kw("embalm", "Embalm"),
		kw("emerge", "Emerge"),
		kw("eminence", "Eminence"),
		kw("enlist", "Enlist"),
		kw("entwine", "Entwine"),
		kw("epic", "Epic"),
		kw("escalate", "Escalate"),
		kw("escape", "Escape"),
		kw("eternalize", "Eternalize"),
		kw("evoke", "Evoke"),
		kw("evolve", "Evolve"),
		kw("exalted", "Exalted"),
		kw("exploit", "Exploit", "exploits"),
		kw("explore", "Explore", "explores"),
		kw("extort", "Extort"),
		kw("fabricate", "Fabricate"),
		kw("fading", "Fading"),
		kw("flashback", "Flashback"),
		kw("forecast", "Forecast"),
		kw("foretell", "Foretell"),
		kw("fortify", "Fortify"),
		kw("frenzy", "Frenzy"),
		kw("fuse", "Fuse"),
		kw("goad", "Goad", "goaded"),
		kw("graft", "Graft"),
		kw("gravestorm", "Gravestorm"),
		kw("haunt", "Haunt"),
		kw("hideaway", "Hideaway"),
		kw("improvise", "Improvise"),
		kw("incubate", "Incubate"),
		kw("infect", "Infect"),
		kw("jump-start", "Jump-start", "jump-start"),
		kw("kicker", "Kicker", "kicker", "multikicker"),
		kw("landfall", "Landfall"),
		kw("level-up", "Level Up", "level up"),
		kw("living-weapon", "Living Weapon", "living weapon"),
		kw("madness", "Madness"),
		kw("manifest", "Manifest"),
		kw("megamorph", "Megamorph"),
		kw("melee", "Melee"),
		kw("mentor", "Mentor", "mentors"),
		kw("miracle", "Miracle"),
		kw("modular", "Modular"),
		kw("monstrosity", "Monstrosity", "monstrosity"),
		kw("morph", "Morph"),
		kw("mutate", "Mutate", "mutates"),
		kw("myriad", "Myriad"),
		kw("ninjutsu", "Ninjutsu"),
		kw("offering", "Offering"),
		kw("outlast", "Outlast"),
		kw("overload", "Overload"),
		kw("partner", "Partner", "partner with", "partner"),
		kw("persist", "Persist"),
		kw("phasing", "Phasing", "phases out", "phasing"),
		kw("populate", "Populate"),
		kw("proliferate", "Proliferate"),
		kw("prototype", "Prototype"),
		kw("provoke", "Provoke"),
		kw("prowess", "Prowess"),
		kw("prowl", "Prowl"),
		kw("rampage", "Rampage"),
		kw("ravenous", "Ravenous"),
		kw("rebound", "Rebound"),
		kw("reconfigure", "Reconfigure"),
		kw("recover", "Recover"),
		kw("reinforce", "Reinforce"),
		kw("renown", "Renown", "renowned"),
		kw("replicate", "Replicate"),
		kw("retrace", "Retrace"),
		kw("riot", "Riot"),
		kw("ripple", "Ripple"),
		kw("scavenge", "Scavenge"),
		kw("skulk", "Skulk"),
		kw("soulbond", "Soulbond"),
		kw("soulshift", "Soulshift"),
		kw("spectacle", "Spectacle"),
		kw("splice", "Splice"),
		kw("split-second", "Split Second", "split second"),
		kw("squad", "Squad"),
		kw("storm", "Storm"),
		kw("sunburst", "Sunburst"),
		kw("surge", "Surge"),
		kw("suspend", "Suspend"),
		kw("threshold", "Threshold"),
		kw("toxic", "Toxic"),
		kw("training", "Training", "trains"),
		kw("transmute", "Transmute"),
		kw("undergrowth", "Undergrowth"),
		kw("undying", "Undying"),
		kw("unearth", "Unearth"),
		kw("unleash", "Unleash"),
		kw("vanishing", "Vanishing"),
		kw("wither", "Wither"),

		// Triggered-ability patterns.
		trig("etb-trigger", "Enter-the-battlefield trigger", "enters the battlefield", "enters,"),
		trig("death-trigger", "Death trigger", "when this creature dies", "whenever a creature dies", "whenever another creature dies", "dies,"),
		trig("attack-trigger", "Attack trigger", "whenever you attack", "attacks,"),
		trig("combat-damage-trigger", "Combat damage trigger", "deals combat damage to a player"),
		trig("cast-trigger", "Cast trigger", "whenever you cast"),
		trig("upkeep-trigger", "Upkeep trigger", "at the beginning of your upkeep", "at the beginning of each upkeep"),
		trig("end-step-trigger", "End step trigger", "at the beginning of your end step"),
		trig("landfall-trigger", "Land-played trigger", "whenever a land enters"),
		trig("lifegain-trigger", "Lifegain trigger", "whenever you gain life"),
		trig("sacrifice-trigger", "Sacrifice trigger", "whenever you sacrifice"),
		trig("discard-trigger", "Discard trigger", "whenever you discard"),
		trig("draw-trigger", "Draw trigger", "whenever you draw a card"),
		trig("spell-trigger", "Spell trigger", "whenever an opponent casts", "whenever a player casts"),
		trig("leave-trigger", "Leave-the-battlefield trigger", "leaves the battlefield"),
		trig("tap-trigger", "Tap trigger", "becomes tapped", "becomes untapped"),

		// Resource mechanics.
		res("treasure", "Treasure", "treasure token", "treasure tokens", "create a treasure"),
		res("clue", "Clue", "clue token", "investigate", "investigates"),
		res("food", "Food", "food token", "food tokens"),
		res("blood", "Blood", "blood token", "blood tokens"),
		res("energy", "Energy", "energy counter", "energy counters", "{e}"),
		res("experience", "Experience", "experience counter", "experience counters"),
		res("poison", "Poison", "poison counter", "poison counters"),
		res("monarch", "Monarch", "the monarch", "becomes the monarch"),
		res("initiative", "Initiative", "the initiative", "takes the initiative"),
		res("day-night", "Day/Night", "it becomes day", "it becomes night"),
		res("mana-ability", "Mana production", "add {", "add one mana", "add two mana", "add three mana", "mana of any color"),
		res("cost-reduction", "Cost reduction", "costs {1} less", "costs {2} less", "cost {1} less", "cost {2} less", "spells cost less"),

		// Strategy patterns.
		strat("ramp", "Ramp", "search your library for a land", "search your library for a basic land", "put a land card", "additional land", "untap target land", "lands you control"),
		strat("card-draw", "Card draw", "draw a card", "draw two cards", "draw three cards", "draw cards", "draws a card"),
		strat("tutor", "Tutor", "search your library for a card", "search your library for a creature", "search your library for an artifact", "search your library for an enchantment", "search your library for an instant", "search your library for a sorcery"),
		strat("removal", "Removal", "destroy target", "exile target", "deals damage to target creature", "deals damage to any target", "fights target"),
		strat("board-wipe", "Board wipe", "destroy all", "exile all", "each creature", "all creatures get -", "deals damage to each creature", "sacrifices all"),
		strat("counterspell", "Counterspell", "counter target spell", "counter target ability", "counter that spell", "unless its controller pays"),
		strat("token-generation", "Token generation", "create a token", "create two tokens", "creature token", "creature tokens", "token copy"),
		strat("counters-matter", "Counters matter", "+1/+1 counter", "+1/+1 counters", "-1/-1 counter", "loyalty counter", "charge counter"),
		strat("graveyard-recursion", "Graveyard recursion", "return target creature card from your graveyard", "return it to the battlefield", "from your graveyard to the battlefield", "from your graveyard to your hand", "from graveyards"),
		strat("mill", "Mill", "mills", "mill a card", "put the top card of your library into your graveyard", "cards of their library into their graveyard"),
		strat("discard-attack", "Discard", "each opponent discards", "target player discards", "discards a card", "discards their hand"),
		strat("reanimation", "Reanimation", "put target creature card from a graveyard onto the battlefield", "onto the battlefield under your control"),
		strat("blink", "Blink", "exile it, then return", "exile that creature, then return", "exile up to one target creature you control"),
		strat("sacrifice-outlet", "Sacrifice outlet", "sacrifice a creature", "sacrifice another creature", "sacrifice a permanent", "sacrifice an artifact"),
		strat("aristocrats", "Aristocrats", "whenever a creature you control dies", "each opponent loses 1 life", "drain"),
		strat("lifegain", "Lifegain", "you gain life", "gain 1 life", "gain 2 life", "gain 3 life", "gains life"),
		strat("burn", "Burn", "deals 2 damage", "deals 3 damage", "deals 4 damage", "deals x damage", "deals damage equal to"),
		strat("copy-spell", "Spell copying", "copy target spell", "copy that spell", "copy it", "copy target instant"),
		strat("copy-permanent", "Permanent copying", "copy of target creature", "copy of a creature", "copy of any creature", "becomes a copy"),
		strat("extra-turns", "Extra turns", "take an extra turn", "extra turn after this one"),
		strat("extra-combat", "Extra combat", "additional combat phase", "untap all creatures that attacked"),
		strat("theft", "Theft", "gain control of target", "gain control of that", "control of target creature"),
		strat("stax", "Stax", "can't untap", "players can't", "opponents can't", "can't cast spells", "skip your", "each player sacrifices"),
		strat("taxing", "Taxing", "spells cost {1} more", "spells cost {2} more", "cost {1} more to cast", "cost {2} more to cast"),
		strat("untapper", "Untapper", "untap target", "untap all", "untap another target"),
		strat("tap-down", "Tap down", "tap target creature", "tap all creatures", "doesn't untap"),
		strat("pump", "Pump", "gets +", "get +", "creatures you control get"),
		strat("anthem", "Anthem", "creatures you control get +1/+1", "other creatures you control get"),
		strat("evasion-grant", "Evasion grant", "can't be blocked", "gains flying", "have flying"),
		strat("haste-grant", "Haste grant", "gains haste", "have haste", "gain haste"),
		strat("doubling", "Doubling", "double the number", "twice that many", "instead create twice"),
		strat("wheel", "Wheel", "each player draws seven cards", "discards their hand, then draws", "shuffles their hand"),
		strat("voltron", "Voltron", "equipped creature", "enchanted creature gets", "attach", "aura you control"),
		strat("superfriends", "Superfriends", "loyalty abilities", "planeswalker you control", "planeswalkers you control"),
		strat("tribal-payoff", "Tribal payoff", "creatures you control of the chosen type", "creature type of your choice", "share a creature type"),
		strat("x-spell", "X spell", "{x}{", "where x is"),
		strat("scry", "Scry", "scry 1", "scry 2", "scry 3", "scry x"),
		strat("surveil", "Surveil", "surveil 1", "surveil 2", "surveil 3"),
		strat("impulse-draw", "Impulse draw", "exile the top card of your library", "you may play it", "you may play that card", "you may cast it"),
		strat("recursion-engine", "Recursion engine", "you may cast it from your graveyard", "cast from your graveyard", "from exile"),
		strat("flicker-payoff", "Flicker payoff", "enters the battlefield under your control"),
		strat("hand-disruption", "Hand disruption", "look at target player's hand", "reveals their hand"),
		strat("group-hug", "Group hug", "each player draws", "each player may draw"),
		strat("pillow-fort", "Pillow fort", "attack you unless", "can't attack you", "prevent all combat damage"),
		strat("land-destruction", "Land destruction", "destroy target land", "destroy all lands"),
		strat("artifact-synergy", "Artifact synergy", "artifacts you control", "artifact spells", "for each artifact"),
		strat("enchantment-synergy", "Enchantment synergy", "enchantments you control", "enchantment spells", "for each enchantment"),
		strat("spellslinger", "Spellslinger", "instant and sorcery", "instant or sorcery", "whenever you cast an instant"),
		strat("payoff-draw-second", "Second draw payoff", "second card you draw", "draws their second card"),
		strat("free-cast", "Free cast", "without paying its mana cost", "without paying their mana costs"),
		strat("flash-enabler", "Flash enabler", "as though it had flash", "cast spells as though", "any time you could cast an instant"),
		strat("top-manipulation", "Library top manipulation", "look at the top card of your library", "top of your library", "reveal the top card"),
		strat("life-payment", "Life as a resource", "pay 1 life", "pay 2 life", "pay half your life", "lose 1 life"),
	}
}
