package lexicon

// Timeline language.
var (
	VagueTimeline = NewTermSet("vague_timeline",
		"rolling", "ongoing", "open until filled", "until filled", "continuous",
		"no deadline", "year-round", "year round", "tbd", "to be announced",
		"to be determined", "coming soon", "varies", "periodically", "anytime",
		"until funds are exhausted",
	)
)

// Award language.
var (
	VagueAmount = NewTermSet("vague_amount",
		"varies", "vary", "variable", "contact us", "tbd", "to be determined",
		"not specified", "unspecified", "undisclosed", "n/a", "depends",
		"various", "up to the committee", "negotiable", "see website",
	)
	NonCashAward = NewTermSet("non_cash_award",
		"in-kind", "in kind", "non-cash", "noncash", "mentorship", "mentoring",
		"technical assistance", "cloud credits", "credits", "office space",
		"residency", "training program", "coaching", "equipment access",
		"pro bono", "incubation",
	)
	CashAward = NewTermSet("cash_award",
		"cash", "stipend", "grant of", "funding of", "prize money", "award of",
		"unrestricted funds",
	)
	CashDependentNeed = NewTermSet("cash_dependent_need",
		"salary", "salaries", "wages", "payroll", "staff", "staffing", "hire",
		"hiring", "equipment", "rent", "operating costs", "personnel",
	)
	Fellowship = NewTermSet("fellowship", "fellowship", "fellow", "residency")
)

// Application burden language.
var (
	LengthLimit = NewTermSet("length_limit",
		"page", "pages", "word", "words", "character", "characters",
		"word limit", "page limit", "maximum of", "max",
	)
	MultiStep = NewTermSet("multi_step",
		"stage", "stages", "phase", "phases", "round", "rounds",
		"letter of inquiry", "loi", "pre-proposal", "preproposal",
		"full proposal", "interview", "shortlist", "shortlisted", "step",
	)
	RequiredDocument = NewTermSet("required_document",
		"cv", "resume", "résumé", "budget", "letter", "letters", "transcript",
		"transcripts", "proposal", "statement", "plan", "portfolio", "sample",
		"form", "certificate", "report", "references", "reference",
		"financial statements", "audit",
	)
	RecommendationLetter = NewTermSet("recommendation_letter",
		"letter of recommendation", "letters of recommendation",
		"recommendation letter", "recommendation letters", "reference letter",
		"reference letters", "letters of support", "letter of support",
		"referees", "references",
	)
	InstitutionalAffiliation = NewTermSet("institutional_affiliation",
		"institutional affiliation", "affiliated with", "university affiliation",
		"host institution", "must be employed by", "accredited institution",
		"academic institution",
	)
	FiscalSponsor = NewTermSet("fiscal_sponsor",
		"fiscal sponsor", "fiscal sponsorship", "fiscal agent",
		"501(c)(3)", "registered charity",
	)
	Nomination = NewTermSet("nomination",
		"nomination", "nominated", "nominee", "by invitation", "invitation only",
		"invited to apply",
	)
)

// Mission language.
var (
	GenericMission = NewTermSet("generic_mission",
		"innovation", "innovative", "impact", "impactful", "excellence",
		"change", "future", "transformative", "leaders", "leadership",
		"community", "communities", "ideas", "support", "positive",
		"world", "better", "solutions",
	)
	SpecificMission = NewTermSet("specific_mission",
		"climate", "biodiversity", "conservation", "wildlife", "marine",
		"ocean", "forest", "forests", "renewable", "solar", "water",
		"sanitation", "agriculture", "food security", "public health",
		"maternal", "malaria", "hiv", "tuberculosis", "vaccine", "literacy",
		"primary education", "girls", "women", "youth", "refugee", "refugees",
		"disability", "indigenous", "journalism", "open source",
		"artificial intelligence", "machine learning", "software",
		"cybersecurity", "mental health", "housing", "poverty",
		"visual arts", "music", "film", "theatre", "theater", "literature",
		"early-career", "doctoral", "postdoctoral", "smallholder",
	)
	Examples = NewTermSet("examples",
		"such as", "for example", "e.g.", "including", "for instance",
		"examples include",
	)
)

// Geography language.
var (
	ScopeInternational = NewTermSet("scope_international",
		"international", "internationally", "global", "globally", "worldwide",
		"any country", "all countries", "developing countries", "low- and middle-income",
		"lmic", "lmics", "cross-border", "multiple countries", "sub-saharan africa",
		"latin america", "southeast asia", "africa", "asia",
	)
	ScopeNational = NewTermSet("scope_national",
		"national", "nationally", "nationwide", "federal", "citizens",
		"citizen", "permanent residents", "country-wide", "u.s.", "united states",
		"usa", "uk-based", "nigeria", "kenya", "canada", "south africa",
	)
	ScopeLocal = NewTermSet("scope_local",
		"local", "locally", "city", "county", "municipal", "municipality",
		"neighborhood", "neighbourhood", "borough", "metro", "metropolitan",
		"state of", "province of", "district", "township",
	)
	GeographicRestriction = NewTermSet("geographic_restriction",
		"based in", "located in", "resident of", "residents of", "citizens of",
		"registered in", "open to applicants in", "applicants from",
		"must be based", "headquartered in",
	)
)

// Domain indicator tables for mission-alignment compatibility.
var (
	DomainConservation = NewTermSet("conservation",
		"conservation", "wildlife", "biodiversity", "habitat", "species",
		"protected area", "ecosystem", "ecosystems", "forest", "marine",
		"endangered", "rewilding",
	)
	DomainEnvironmental = NewTermSet("environmental",
		"climate", "environment", "environmental", "emissions", "carbon",
		"renewable", "pollution", "sustainability", "sustainable", "clean energy",
		"water", "recycling",
	)
	DomainTech = NewTermSet("tech",
		"software", "technology", "platform", "app", "data", "machine learning",
		"artificial intelligence", "sensor", "sensors", "digital", "open source",
		"satellite", "drone", "drones", "algorithm",
	)
	DomainArt = NewTermSet("art",
		"art", "arts", "artist", "artists", "painting", "sculpture", "music",
		"film", "theatre", "theater", "dance", "poetry", "literature",
		"creative", "gallery", "exhibition",
	)
	DomainSocial = NewTermSet("social",
		"education", "health", "poverty", "housing", "refugee", "refugees",
		"youth", "women", "equity", "inclusion", "justice", "livelihoods",
		"community development", "social enterprise",
	)

	// MissionDomains lists the domains in a stable order.
	MissionDomains = []Domain{
		{Name: "conservation", Terms: DomainConservation},
		{Name: "environmental", Terms: DomainEnvironmental},
		{Name: "tech", Terms: DomainTech},
		{Name: "art", Terms: DomainArt},
		{Name: "social", Terms: DomainSocial},
	}
)

// StopWords are excluded from lexical overlap.
var StopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "their": {}, "have": {},
	"will": {}, "which": {}, "into": {}, "about": {}, "these": {}, "those": {},
	"been": {}, "were": {}, "they": {}, "them": {}, "your": {}, "more": {},
	"most": {}, "also": {}, "such": {}, "other": {}, "than": {}, "each": {},
	"what": {}, "when": {}, "where": {}, "while": {}, "through": {}, "over": {},
	"under": {}, "only": {}, "must": {}, "should": {}, "could": {}, "would": {},
	"being": {}, "does": {}, "project": {}, "grant": {}, "grants": {},
	"program": {}, "programme": {}, "fund": {}, "funding": {}, "applicants": {},
	"organization": {}, "organizations": {}, "work": {}, "including": {},
}
