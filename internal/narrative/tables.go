package narrative

import "github.com/analogalgo/letters/internal/domain/cardology"

// Unanchored is the collision label used when the global card lands in the
// crown of a spread instead of a planetary row.
const Unanchored = "Crown / Unanchored"

const (
	defaultPrefix  = "Maintain structural integrity."
	defaultMeaning = "Rely on core algorithms. Maintain your structural integrity."
)

var periodPrefixes = map[cardology.Planet]string{
	cardology.Mercury: "Speed and communication govern this cycle. Information moves without resistance.",
	cardology.Venus:   "Connection and attraction govern this cycle. Relationships solidify or dissolve under applied pressure.",
	cardology.Mars:    "Friction and aggressive action govern this cycle. Conflict is structurally required.",
	cardology.Jupiter: "Expansion and luck govern this cycle. Risk is mathematically favorable if properly leveraged.",
	cardology.Saturn:  "Discipline and restriction govern this cycle. The structure is unbending. Do not negotiate.",
	cardology.Uranus:  "Disruption and sudden shifts govern this cycle. Stability is an illusion; pivot immediately.",
	cardology.Neptune: "Illusion and intuition govern this cycle. What you see is obscured. Trust silent calculations over loud promises.",
}

// Card meanings keyed by short card form.
var cardMeanings = map[string]string{
	// Hearts: emotional output and relationship parameters
	"A♥":  "Initiate new emotional variables. A baseline reset in connection.",
	"2♥":  "Emotional partnership requires equal data exchange. Synchronize inputs.",
	"3♥":  "Creative emotional expression. Output data without filtering.",
	"4♥":  "Build emotional structure. Reject unstable or volatile inputs today.",
	"5♥":  "Emotional disruption. Do not resist the sudden shift in your relational baseline.",
	"6♥":  "Emotional responsibility. You must maintain the equilibrium of your environment.",
	"7♥":  "Emotional calculation. Seek the absolute truth; discard all sentimentality.",
	"8♥":  "Emotional power. Direct the matrix of your connections with absolute force.",
	"9♥":  "Emotional completion. A relational variable has expired. Delete it.",
	"10♥": "Emotional mastery. Total public or relational synchronization is highly probable.",
	"J♥":  "A messenger of emotional data. Process the incoming variables; do not react.",
	"Q♥":  "Emotional sovereignty. Receive external inputs but carefully guard your core structure.",
	"K♥":  "Emotional authority. You dictate the relational parameters of the environment today.",

	// Clubs: behavioral output and intellectual data
	"A♣":  "Initiate a new behavioral algorithm. New knowledge has been acquired.",
	"2♣":  "Behavioral protocol requires partnership. Communicate and synchronize your data.",
	"3♣":  "Behavioral expression. Output your strategies and algorithms clearly.",
	"4♣":  "Structural knowledge. Rigidly solidify your mental frameworks.",
	"5♣":  "Behavioral disruption. Pivot your routine and physical location immediately.",
	"6♣":  "Intellectual responsibility. Stabilize the turbulent data flow in your network.",
	"7♣":  "Behavioral calculation. Isolate the obstacle. Process the data and remove the variable.",
	"8♣":  "Intellectual command. Apply extreme mental pressure and focus to the system.",
	"9♣":  "Intellectual completion. An outdated mindset or pattern must be deleted permanently.",
	"10♣": "Intellectual mastery. Total comprehension and execution of the active system.",
	"J♣":  "A messenger of new data. Rapidly adapt to the incoming stream of information.",
	"Q♣":  "Intellectual sovereignty. Process the complex data without yielding control.",
	"K♣":  "Intellectual authority. Dictate the behavioral parameters and rules of your environment.",

	// Diamonds: material output and resource parameters
	"A♦":  "Initiate material calculation. A newly integrated financial variable enters the grid.",
	"2♦":  "Financial partnership requires structural alignment. Do not merge structural assets blindly.",
	"3♦":  "Material expression. Create tangible, physical outputs from the raw data.",
	"4♦":  "Material structure. Anchor your resources. Minimize all uncalculated risk.",
	"5♦":  "Material disruption. Anticipate a sudden, volatile shift in your financial grid.",
	"6♦":  "Material responsibility. Maintain the baseline of your physical and financial assets.",
	"7♦":  "Financial calculation. Apply severe logical pressure to your current resources.",
	"8♦":  "Material command. Direct your financial energy with absolute and unyielding authority.",
	"9♦":  "Material completion. A structural asset or financial cycle concludes its lifecycle.",
	"10♦": "Material mastery. Maximum optimization of the physical and financial grid.",
	"J♦":  "A messenger of material shifts. Calculate the new financial vectors immediately.",
	"Q♦":  "Material sovereignty. Control the resources without unnecessary expenditure.",
	"K♦":  "Material authority. You are the final variable in all financial and asset calculations.",

	// Spades: structural output and physical labor
	"A♠":  "Initiate absolute structural change. A stark new foundation is required.",
	"2♠":  "Labor protocol requires partnership. Collaborate only if your algorithms align perfectly.",
	"3♠":  "Structural expression. Construct the physical architecture of your current goal.",
	"4♠":  "Absolute structure. The system is entirely rigid. Do not attempt modification.",
	"5♠":  "Structural disruption. The physical baseline is shifting; pivot rapidly or face failure.",
	"6♠":  "Structural responsibility. The burden of the entire physical grid is yours today.",
	"7♠":  "Structural calculation. Identify and ruthlessly extract the flaw in your physical architecture.",
	"8♠":  "Exercise structural power and command. Strategy and labor outrank emotion today.",
	"9♠":  "Structural completion. A physical phase expires. Purge the remnant data from the system.",
	"10♠": "Structural mastery. Flawless physical execution of the chosen algorithm.",
	"J♠":  "A messenger of physical action. Execute the requested protocol immediately and without hesitation.",
	"Q♠":  "Structural sovereignty. You actively govern the physical and labor outputs of the system.",
	"K♠":  "Absolute authority. You are the final structural variable in any physical conflict today.",
}

var collisionSuffixes = map[string]string{
	string(cardology.Mercury): "However, external forces will attempt fast, disorganized communication. Filter the noise.",
	string(cardology.Venus):   "An external variable will attempt emotional connection. Verify their structural integrity before engaging.",
	string(cardology.Mars):    "Expect an external entity to introduce sudden friction or conflict. Meet force with calculation.",
	string(cardology.Jupiter): "The environment provides unexpected expansion. Capitalize on this external variable immediately.",
	string(cardology.Saturn):  "The external environment will heavily restrict you today. Surrender ambition and focus on survival mechanics.",
	string(cardology.Uranus):  "An external disruption to your schedule is highly probable. Do not resist the pivot.",
	string(cardology.Neptune): "The environment is highly deceptive today. Do not sign contracts or trust unverified data.",
	Unanchored:                "The world operates outside your direct grid today. Anchor yourself and observe the chaos.",
}

var suitTraits = map[cardology.Suit]string{
	cardology.Hearts:   "emotional and relational",
	cardology.Clubs:    "intellectual and behavioral",
	cardology.Diamonds: "material and commanding",
	cardology.Spades:   "structural and laboring",
}

// PeriodPrefix returns the opening sentence for a planetary period.
func PeriodPrefix(p cardology.Planet) string {
	if s, ok := periodPrefixes[p]; ok {
		return s
	}
	return defaultPrefix
}

// CardMeaning returns the interpretation of a card, or the default meaning
// for an invalid card.
func CardMeaning(c cardology.Card) string {
	if s, ok := cardMeanings[c.String()]; ok {
		return s
	}
	return defaultMeaning
}

// CollisionSuffix returns the closing sentence for a collision label. Labels
// other than a planet name fall back to the crown suffix.
func CollisionSuffix(label string) string {
	if s, ok := collisionSuffixes[label]; ok {
		return s
	}
	return collisionSuffixes[Unanchored]
}

// CollisionLabel names where a global card fell in a personal spread: the
// planet of its row, or Unanchored for the crown.
func CollisionLabel(loc cardology.Location) string {
	if loc.Crown || loc.Planet == "" {
		return Unanchored
	}
	return string(loc.Planet)
}

// SuitTrait describes the temperament of a suit in a few words.
func SuitTrait(s cardology.Suit) string {
	if t, ok := suitTraits[s]; ok {
		return t
	}
	return "core"
}
