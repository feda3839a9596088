package taxonomy

// defaultCategories is the built-in ten-category framework. Base keywords are
// the yellow triggers; orange and red indicators only escalate a category
// that already matched a base keyword.
var defaultCategories = []Category{
	{
		ID:          "electoral_integrity",
		Name:        "Breakdown of Electoral Integrity",
		Description: "Concerns about voting systems, election processes, and representation",
		Keywords: []string{
			"voter suppression", "election fraud", "ballot access",
			"voter purge", "gerrymandering", "election interference",
			"voting rights", "election commission", "vote count",
			"election monitors", "ballot", "electoral college",
			"voter id law", "voter roll purge", "limited early voting",
			"polling station closures",
		},
		OrangeIndicators: []string{
			"major voter purge", "election interference", "ballot access restricted",
			"overturning local election", "mass disqualification",
			"removing election officials", "changing voting rules",
		},
		RedIndicators: []string{
			"cancel election", "postpone election", "delay national election",
			"overturn national election", "suspend voting rights",
			"invalidate results", "military control of election",
		},
	},
	{
		ID:          "political_purges",
		Name:        "Political Purges & Criminalization of Opposition",
		Description: "Targeting of political opponents or minority groups through legal or extra-legal means",
		Keywords: []string{
			"opposition leader", "political prisoner", "dissent crackdown",
			"government critic", "political prosecution", "political firing",
			"activist arrest", "deportation", "civil service", "loyalty",
			"political asylum", "immunity revoked", "investigate opposition",
			"fire official", "threatening opposition", "intimidation",
		},
		OrangeIndicators: []string{
			"opposition leader arrested", "political prisoner", "mass firing",
			"loyalty test", "activist deportation", "gag order",
			"exile", "political ban", "parliamentary immunity",
		},
		RedIndicators: []string{
			"mass imprisonment", "opposition banned", "disappearance",
			"exile opposition", "opposition leadership", "torture",
			"extrajudicial detention", "political party banned",
		},
	},
	{
		ID:          "political_violence",
		Name:        "Government-Sanctioned Political Violence",
		Description: "Use of force and intimidation against political opposition or civilians",
		Keywords: []string{
			"paramilitary", "militia", "political violence", "protest crackdown",
			"armed group", "violent suppression", "police brutality",
			"political killing", "death squad", "vigilante", "intimidation",
			"violence rhetoric", "support militia", "intimidation campaign",
			"threaten violence", "inflammatory speech", "excessive force",
		},
		OrangeIndicators: []string{
			"paramilitary group", "armed supporters", "violent suppression",
			"police brutality", "political assault", "protesters injured",
			"raid headquarters", "violent intimidation", "armed police",
		},
		RedIndicators: []string{
			"mass killing", "death squad", "government sanctioned violence",
			"political assassination", "extrajudicial killing", "shoot to kill",
			"massacre", "disappearance", "torture", "mass casualties",
		},
	},
	{
		ID:          "civil_liberties",
		Name:        "Curtailment of Civil Liberties",
		Description: "Restrictions on freedom of speech, assembly, movement, and other civil rights",
		Keywords: []string{
			"emergency powers", "suspend rights", "protest ban", "assembly restriction",
			"free speech", "civil liberties", "surveillance", "privacy violation",
			"habeas corpus", "due process", "detention", "warrantless search",
			"restrict protest", "surveillance increase", "media pressure",
			"legal threat", "speech restriction", "monitoring dissent",
		},
		OrangeIndicators: []string{
			"emergency powers", "suspend specific right", "ban assembly",
			"indefinite detention", "censorship", "internet restrictions",
			"shutdown communication", "mass surveillance", "no-protest zones",
		},
		RedIndicators: []string{
			"suspend constitution", "martial law", "suspend habeas corpus",
			"mass detention", "curfew", "shoot on sight",
			"internet shutdown", "communication blackout", "house arrest",
		},
	},
	{
		ID:          "military_suppression",
		Name:        "Military Used for Internal Suppression",
		Description: "Deployment of military forces against civilian population or for domestic law enforcement",
		Keywords: []string{
			"military deployment", "national guard", "martial law", "domestic military",
			"military police", "troops deployed", "armed forces", "internal security",
			"military crackdown", "deploy soldiers", "domestic operation",
			"national guard activated", "troops standby", "security operation",
			"military presence", "show of force",
		},
		OrangeIndicators: []string{
			"military deployment", "troops deployed", "active duty domestic",
			"military checkpoint", "soldiers patrol", "armed personnel carriers",
			"military curfew", "military detention", "armed presence",
		},
		RedIndicators: []string{
			"martial law", "military crackdown", "military rule", "shoot to kill order",
			"tanks in streets", "military takeover", "coup", "junta",
			"military government", "suspend civilian authority",
		},
	},
	{
		ID:          "media_censorship",
		Name:        "Mass Media Censorship",
		Description: "Control, suppression, or manipulation of news media and information flow",
		Keywords: []string{
			"media shutdown", "press freedom", "journalist arrest", "censorship",
			"internet shutdown", "social media ban", "media control", "news blackout",
			"disinformation", "propaganda", "state media", "fake news law",
			"media pressure", "journalist harassment", "fact checking",
			"licensing requirement", "limit access", "selective briefings",
			"threaten media", "discredit reporting", "propaganda increase",
		},
		OrangeIndicators: []string{
			"journalist arrest", "media shutdown", "website block",
			"social media restriction", "revoke press credentials",
			"raid newsroom", "fine publication", "seize equipment", "gag order",
		},
		RedIndicators: []string{
			"internet shutdown", "mass media control", "criminal journalism",
			"foreign media banned", "state takeover", "imprisonment for reporting",
			"confiscate media", "exile journalists", "nationwide censorship",
		},
	},
	{
		ID:          "asset_seizure",
		Name:        "Seizure of Assets & Political Retaliation",
		Description: "Economic attacks on political opponents through asset seizure, directed taxation, or other financial means",
		Keywords: []string{
			"asset freeze", "property seizure", "bank account", "confiscation",
			"nationalization", "wealth tax", "expropriation", "financial sanction",
			"politically motivated audit", "eminent domain", "targeted tax",
			"targeted audit", "financial investigation", "asset disclosure",
			"selective enforcement", "political donor", "tax scrutiny",
			"business pressure", "regulatory targeting", "funding block",
		},
		OrangeIndicators: []string{
			"asset freeze", "bank account seized", "business shutdown",
			"selective taxation", "charitable foundation", "political funds",
			"contract cancellation", "license revocation", "punitive fine",
		},
		RedIndicators: []string{
			"mass confiscation", "nationalization", "property seizure",
			"wealth redistribution", "business expropriation", "currency control",
			"funds confiscation", "economic purge", "asset stripping",
		},
	},
	{
		ID:          "judicial_independence",
		Name:        "Erosion of Judicial Independence",
		Description: "Weakening of judicial oversight and independent courts",
		Keywords: []string{
			"court packing", "judge removal", "judicial reform", "constitutional court",
			"supreme court", "judicial independence", "rule of law", "court ruling",
			"judiciary", "chief justice", "judicial review",
			"criticism of judges", "court reform proposal", "judicial appointments",
			"court expansion", "judicial restraint",
		},
		OrangeIndicators: []string{
			"court packing", "removal of judges", "ignore court ruling",
			"judicial appointments procedure", "oversight reduction",
		},
		RedIndicators: []string{
			"dissolution of court", "mass replacement of judges", "judicial functions suspended",
			"parallel court system", "criminal charges against judges",
		},
	},
	{
		ID:          "information_manipulation",
		Name:        "Information Manipulation & Disinformation",
		Description: "Coordinated disinformation campaigns and manipulation of information ecosystem",
		Keywords: []string{
			"disinformation", "fake news", "propaganda", "fact check", "algorithm",
			"social media", "troll farm", "bot network", "foreign influence",
			"information warfare", "deep fake",
			"official misinformation", "label fact checks", "government propaganda",
			"media pressure", "algorithm control", "government talking points",
		},
		OrangeIndicators: []string{
			"troll farm", "disinformation campaign", "algorithm manipulation",
			"foreign influence operation", "coordinated inauthentic behavior",
			"ban fact-checking", "official fabrication",
		},
		RedIndicators: []string{
			"centralized information control", "mass deception", "criminalize truth",
			"reality denial", "memory hole", "information blackout",
			"criminalize counter-narrative",
		},
	},
	{
		ID:          "institutional_erosion",
		Name:        "Erosion of Key Democratic Institutions",
		Description: "Weakening of oversight bodies, electoral systems, and bureaucratic independence",
		Keywords: []string{
			"electoral commission", "civil service", "anti-corruption", "oversight body",
			"inspector general", "ombudsman", "regulatory capture", "term limits",
			"checks and balances", "bureaucracy", "career official",
			"political appointments", "reduce funding", "oversight criticism",
			"bureaucrat criticism", "reform proposal", "term extension",
		},
		OrangeIndicators: []string{
			"remove watchdogs", "dismantle commission", "fire career officials",
			"political loyalty test", "bypass procedures", "rule by decree",
		},
		RedIndicators: []string{
			"eliminate term limits", "disband oversight", "gut civil service",
			"abolish independent bodies", "consolidate power", "direct control",
		},
	},
}
