package config

// languageMap maps corpus language codes to the names the TyDi dataset
// uses in its records. The "in" code for Indonesian predates the
// datasets standardizing on "id" and is kept for compatibility.
var languageMap = map[string]string{
	"th": "thai",
	"sw": "swahili",
	"te": "telugu",
	"fi": "finnish",
	"be": "bengali",
	"ru": "russian",
	"ja": "japanese",
	"ar": "arabic",
	"in": "indonesian",
	"ko": "korean",
	"en": "english",
}

// LanguageName resolves a two-letter code to the dataset language name.
// Unknown codes pass through unchanged so already-spelled-out names
// keep working.
func LanguageName(code string) string {
	if name, ok := languageMap[code]; ok {
		return name
	}
	return code
}
