package services

import (
	"strings"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
)

// countryLanguages maps ISO country codes to the dominant local language.
// Used only when the request asks for the "local" language.
var countryLanguages = map[string]string{
	"US": "English",
	"GB": "English",
	"CA": "English",
	"AU": "English",
	"NG": "English",
	"IN": "Hindi",
	"NP": "Nepali",
	"FR": "French",
	"DE": "German",
	"ES": "Spanish",
	"MX": "Spanish",
	"BR": "Portuguese",
	"CN": "Mandarin",
	"JP": "Japanese",
}

// countryEmergencyNumbers maps ISO country codes to the primary medical
// emergency number.
var countryEmergencyNumbers = map[string]string{
	"US": "911",
	"CA": "911",
	"MX": "911",
	"GB": "999",
	"AU": "000",
	"NG": "112",
	"IN": "112",
	"FR": "15",
	"DE": "112",
	"ES": "112",
	"BR": "192",
	"NP": "102",
	"CN": "120",
	"JP": "119",
}

const defaultLanguage = "English"

// DetectLanguage resolves the language to report for a search. A concrete
// requested language wins; "local" falls back to the country table, then
// to English when the country is unknown.
func DetectLanguage(requested string, origin *entities.GeoPoint) string {
	requested = strings.TrimSpace(requested)
	if requested != "" && requested != entities.LanguageLocal {
		return requested
	}
	if origin != nil {
		if language, ok := countryLanguages[strings.ToUpper(origin.CountryCode)]; ok {
			return language
		}
	}
	return defaultLanguage
}

// EmergencyInfoFor returns the emergency call guidance for the searched
// country. Unknown countries get the generic 112/911 guidance, since most
// mobile networks route either number to local services.
func EmergencyInfoFor(origin *entities.GeoPoint) *entities.EmergencyInfo {
	if origin != nil {
		if number, ok := countryEmergencyNumbers[strings.ToUpper(origin.CountryCode)]; ok {
			return &entities.EmergencyInfo{
				Number: number,
				Note:   "If someone is showing stroke symptoms, call " + number + " immediately.",
			}
		}
	}
	return &entities.EmergencyInfo{
		Number: "112 or 911",
		Note:   "If someone is showing stroke symptoms, call 112 or 911 immediately; most mobile networks route either to local emergency services.",
	}
}
