package archetype

// WeightTable maps each archetype to its context-specific mechanic weights.
// These weights are distinct from a mechanic's global composite weight: they
// express how strongly a mechanic signals membership in one archetype.
type WeightTable map[Archetype]map[string]float64

// Weight returns the weight of mechanic under archetype a, zero when the
// pair is unmapped.
func (t WeightTable) Weight(a Archetype, mechanic string) float64 {
	return t[a][mechanic]
}

// References reports whether any archetype references the mechanic. The
// synergy builder uses this as the archetype-correlation signal.
func (t WeightTable) References(mechanic string) int {
	n := 0
	for _, weights := range t {
		if _, ok := weights[mechanic]; ok {
			n++
		}
	}
	return n
}

// DefaultWeights returns the built-in archetype weight tables, tuned against
// the mechanic catalog. Weights are 0..1; a single 0.9 mechanic is close to
// a full membership signal on its own.
func DefaultWeights() WeightTable {
	return WeightTable{
		Ramp: {
			"ramp":          0.95,
			"mana-ability":  0.70,
			"cost-reduction": 0.45,
			"landfall":      0.50,
			"landfall-trigger": 0.55,
			"treasure":      0.50,
		},
		Removal: {
			"removal":        0.95,
			"counterspell":   0.55,
			"burn":           0.50,
			"deathtouch":     0.35,
			"tap-down":       0.30,
			"theft":          0.35,
			"land-destruction": 0.40,
		},
		Tokens: {
			"token-generation": 0.95,
			"populate":         0.80,
			"myriad":           0.60,
			"fabricate":        0.50,
			"doubling":         0.55,
			"anthem":           0.45,
			"amass":            0.55,
			"incubate":         0.55,
		},
		Aristocrats: {
			"aristocrats":       0.95,
			"sacrifice-outlet":  0.80,
			"sacrifice-trigger": 0.80,
			"death-trigger":     0.60,
			"exploit":           0.60,
			"devour":            0.50,
			"casualty":          0.50,
			"blood":             0.35,
			"token-generation":  0.30,
		},
		Counters: {
			"counters-matter": 0.95,
			"proliferate":     0.90,
			"evolve":          0.60,
			"graft":           0.55,
			"outlast":         0.50,
			"modular":         0.55,
			"undying":         0.45,
			"monstrosity":     0.40,
			"energy":          0.45,
			"experience":      0.45,
		},
		Graveyard: {
			"graveyard-recursion": 0.95,
			"reanimation":         0.90,
			"mill":                0.70,
			"dredge":              0.80,
			"delve":               0.60,
			"escape":              0.65,
			"flashback":           0.60,
			"unearth":             0.65,
			"scavenge":            0.55,
			"embalm":              0.50,
			"eternalize":          0.50,
			"disturb":             0.50,
			"undergrowth":         0.55,
			"threshold":           0.45,
			"recursion-engine":    0.70,
			"decayed":             0.35,
		},
		Tutor: {
			"tutor":            0.95,
			"transmute":        0.70,
			"top-manipulation": 0.35,
		},
		Protection: {
			"protection":     0.85,
			"hexproof":       0.70,
			"indestructible": 0.70,
			"ward":           0.65,
			"shroud":         0.60,
			"phasing":        0.45,
			"pillow-fort":    0.60,
			"counterspell":   0.40,
		},
		Voltron: {
			"voltron":       0.95,
			"equip":         0.80,
			"enchant":       0.60,
			"bestow":        0.60,
			"reconfigure":   0.65,
			"fortify":       0.50,
			"living-weapon": 0.65,
			"double-strike": 0.45,
			"exalted":       0.50,
			"evasion-grant": 0.35,
		},
		CardDraw: {
			"card-draw":         0.95,
			"impulse-draw":      0.70,
			"wheel":             0.65,
			"connive":           0.55,
			"cycling":           0.40,
			"scry":              0.30,
			"surveil":           0.35,
			"payoff-draw-second": 0.55,
			"draw-trigger":      0.55,
			"group-hug":         0.40,
		},
		BoardWipe: {
			"board-wipe": 0.95,
			"annihilator": 0.40,
		},
		Finisher: {
			"extra-turns":    0.75,
			"extra-combat":   0.70,
			"overload":       0.45,
			"storm":          0.65,
			"annihilator":    0.60,
			"infect":         0.55,
			"toxic":          0.45,
			"haste-grant":    0.40,
			"evasion-grant":  0.40,
			"burn":           0.40,
			"x-spell":        0.35,
			"free-cast":      0.50,
			"cascade":        0.45,
		},
		Utility: {
			"flash":          0.25,
			"flash-enabler":  0.40,
			"untapper":       0.35,
			"copy-spell":     0.40,
			"copy-permanent": 0.40,
			"cost-reduction": 0.35,
			"stax":           0.40,
			"taxing":         0.40,
			"goad":           0.35,
			"monarch":        0.35,
			"initiative":     0.30,
			"clue":           0.30,
			"food":           0.25,
			"lifegain":       0.30,
			"life-payment":   0.25,
			"hand-disruption": 0.30,
			"discard-attack": 0.35,
		},
	}
}
