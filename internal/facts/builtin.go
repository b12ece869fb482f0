package facts

const (
	urlGovernors       = "https://simple.wikipedia.org/wiki/List_of_current_United_States_governors"
	urlSenators        = "https://www.britannica.com/topic/United-States-senators-2236815"
	urlRepresentatives = "https://www.house.gov/representatives"
	urlWhiteHouse      = "https://www.whitehouse.gov/administration/"
	urlSupremeCourt    = "https://simple.wikipedia.org/wiki/Supreme_Court_of_the_United_States"
	urlCapitals        = "https://simple.wikipedia.org/wiki/List_of_U.S._state_capitals"
	urlSpeaker         = "https://simple.wikipedia.org/wiki/Speaker_of_the_United_States_House_of_Representatives"
)

const (
	leadWhiteHouse   = "Below is the HTML content from the White House administration page:"
	leadSupremeCourt = "Below is the HTML from Simple English Wikipedia about the Supreme Court of the United States:"
)

var builtin = map[Kind]Fact{
	GovernorsByState: {
		Kind: GovernorsByState,
		URL:  urlGovernors,
		Lead: "Here is the Wikipedia page with the current state and territory governors:",
		Instruction: `Compose a list mapping each U.S. state or territory to the name of its current governor, in the format:
  Alabama: Kay Ivey
  Alaska: Mike Dunleavy
  ...
If a territory does not have a governor or is not listed, omit it or note "N/A".
Output only the list, one entry per line.`,
	},
	SenatorsByState: {
		Kind: SenatorsByState,
		URL:  urlSenators,
		Lead: "Below is the page listing all current U.S. Senators:",
		Instruction: `Using the information, produce a list of mappings of the form:
    Alabama: [Senator Name 1, Senator Name 2]
    Alaska: [Senator Name 1, Senator Name 2]
    ...
For territories or areas without senators, either exclude them or set their value to "No Senators".
Output only the list of mappings, no formatting except a new line after each entry.`,
	},
	RepresentativesByState: {
		Kind: RepresentativesByState,
		URL:  urlRepresentatives,
		Lead: "Below is HTML content from " + urlRepresentatives + " listing current U.S. Representatives:",
		Instruction: `Parse the list of U.S. Representatives by state.
Return a plain text list mapping each state to its representatives in this format:

State Name: Representative Name (District #), Representative Name (District #), ...

If a state has only one representative, label it "At Large" instead of a district number.
Include U.S. territories and D.C. if applicable. If a territory has no representative, return it with "None".`,
	},
	President: {
		Kind: President,
		URL:  urlWhiteHouse,
		Lead: leadWhiteHouse,
		Instruction: `Identify the current President of the United States by name only (e.g. "Joe Biden").
Return just the name as plain text.`,
	},
	VicePresident: {
		Kind: VicePresident,
		URL:  urlWhiteHouse,
		Lead: leadWhiteHouse,
		Instruction: `Identify the current Vice President of the United States by name only (e.g. "Kamala Harris").
Return just the name as plain text.`,
	},
	JusticeCount: {
		Kind: JusticeCount,
		URL:  urlSupremeCourt,
		Lead: leadSupremeCourt,
		Instruction: `Based on the page content, how many justices currently serve on the Supreme Court?
Return only the integer count.`,
		Numeric: true,
	},
	ChiefJustice: {
		Kind: ChiefJustice,
		URL:  urlSupremeCourt,
		Lead: leadSupremeCourt,
		Instruction: `Find the name of the current Chief Justice of the United States Supreme Court.
Return just the name as plain text.`,
	},
	CapitalsByState: {
		Kind: CapitalsByState,
		URL:  urlCapitals,
		Lead: "Below is the HTML from " + urlCapitals + " listing all U.S. state capitals:",
		Instruction: `Return a plain-text list mapping each U.S. state to its capital city in this format:

State Name: Capital City

Include U.S. territories if they are listed (e.g., "Puerto Rico: San Juan").`,
	},
	PresidentParty: {
		Kind: PresidentParty,
		URL:  urlWhiteHouse,
		Lead: leadWhiteHouse,
		Instruction: `Identify the current President's political party.
Return just the party name as plain text, like "Democratic" or "Republican".`,
	},
	SpeakerOfTheHouse: {
		Kind: SpeakerOfTheHouse,
		URL:  urlSpeaker,
		Lead: "Below is the HTML from Simple English Wikipedia about the Speaker of the House:",
		Instruction: `Identify the current Speaker of the United States House of Representatives.
Return only the name as plain text.`,
	},
}
