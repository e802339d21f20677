package config

// defaultTables returns the built-in lookup tables. A tables document only
// needs to carry the sections it wants to change.
func defaultTables() *Tables {
	return &Tables{
		Abbreviations: abbreviationList(defaultAbbreviations),
		Synonyms:      lowerKeys(defaultSynonyms),
		CommonWords:   wordSet(defaultCommonWords),
		CallToAction:  append([]string(nil), defaultCallToAction...),
		Limits: Limits{
			MaxTitleLength:       200,
			MaxDescriptionLength: 250,
			MaxFilenameLength:    200,
			MaxTitleWords:        15,
			MaxKeywords:          50,
			SuggestionTopK:       3,
		},
		Logging: LoggingSection{
			Level: "info",
			File:  "",
		},
	}
}

var defaultAbbreviations = map[string]string{
	"abstract":         "Abstr",
	"illustration":     "Illust",
	"painting":         "Paint",
	"digital":          "Dig",
	"art":              "Art",
	"commercial":       "Com",
	"advertising":      "Adv",
	"marketing":        "Mkt",
	"editorial":        "Edit",
	"social media":     "Social",
	"web design":       "Web",
	"creative":         "Cre",
	"artists":          "Art",
	"designers":        "Des",
	"marketers":        "Mkt",
	"editors":          "Edit",
	"content creators": "Cont",
	"small business":   "SmallBiz",
	"image":            "Img",
	"fantasy":          "Fant",
	"realistic":        "Real",
	"portrait":         "Port",
	"landscape":        "Land",
	"unique":           "Uniq",
	"original":         "Orig",
	"impactful":        "Imp",
	"eye-catching":     "Eye",
	"exclusive":        "Excl",
	"menacing":         "Menac",
	"heroic":           "Hero",
	"stylized":         "Styl",
	"detailed":         "Deta",
	"evocative":        "Evoc",
	"striking":         "Stri",
}

var defaultSynonyms = map[string][]string{
	"helmet":       {"headgear", "casque", "helm"},
	"mask":         {"face covering", "disguise", "visage"},
	"eyes":         {"optics", "orbs", "peepers"},
	"horns":        {"antlers", "protrusions", "spikes"},
	"illustration": {"artwork", "drawing", "depiction"},
	"knight":       {"warrior", "cavalier", "caballero"},
	"portrait":     {"image", "likeness", "representation"},
	"landscape":    {"scenery", "view", "vista"},
	"design":       {"composition", "layout", "arrangement"},
	"abstract":     {"non-representational", "conceptual", "symbolic"},
	"unique":       {"original", "distinctive", "singular"},
	"original":     {"unique", "novel", "fresh"},
	"impactful":    {"striking", "powerful", "impressive"},
	"eye-catching": {"arresting", "noticeable", "standout"},
	"exclusive":    {"limited", "rare", "one-of-a-kind"},
}

var defaultCommonWords = []string{
	"a", "an", "the", "of", "and", "or", "for", "with", "in", "on", "at",
	"to", "is", "are", "be", "this", "that", "it", "its", "by", "from",
	"as", "your", "our", "their",
}

var defaultCallToAction = []string{
	"Perfect for your next creative project.",
	"Ideal for capturing the attention of your audience.",
	"Elevate your content with this impactful visual.",
	"Use it to make a statement.",
}
