// Package info holds the canned company knowledge the receptionist can
// answer from: the topic resolver, the canonical category texts, and the
// filler-utterance policy used while a lookup is in flight.
package info

import (
	"strings"
	"unicode"
)

const CategoryGeneral = "general"

// keyword groups are evaluated in order; the first group with any keyword
// present in the normalized topic wins. Earlier groups deliberately outrank
// later ones when a topic mentions both.
var keywordGroups = []struct {
	keywords []string
	category string
}{
	{[]string{"fortune", "book", "tarot"}, "fortunes told"},
	{[]string{"ai", "research", "ml", "storybook"}, "ai research"},
	{[]string{"ethic", "sustainable"}, "ethics"},
	{[]string{"animation", "film", "visual"}, "animation"},
	{[]string{"contact", "email", "phone", "reach"}, "contact"},
}

var companyInfo = map[string]string{
	CategoryGeneral: "PI & Other Tales (Adventures of the Persistently Impaired and Other Tales) is a creative studio " +
		"specializing in the research and development of imaginative solutions in media and entertainment. Founded in " +
		"late 2024 by former music industry marketing director David James Lennon, the studio focuses on research and " +
		"development of future consumer goods and experiences, developing models, architectures, and products that " +
		"blend everyday practicality with entertainment value, all while showcasing the latest in future tech and IoT.",

	"fortunes told": "Fortunes Told is a unique, experiential online world with a retail-crossover twist. At its core, " +
		"it's a homeware and accessories range in 78 distinctive designs, each one representing a card from the Tarot. " +
		"Every piece is embedded with NFC or BLE technology, hand-produced in London, blind-boxed, and distributed " +
		"entirely at random. When paired with the Fortunes Told Companion App (available now on the App Store and " +
		"Google Play), each item unlocks a personalised Tarot reading that unfolds and evolves over time through a " +
		"real-time, voice-to-voice interactive experience. The complete narrative \"Fortunes Told (A Voyager's Guide " +
		"to Life Between Worlds)\" will be released on June 19th, available from all good bookstores including " +
		"Waterstones, Foyles, and Amazon in hardback, paperback, and Kindle formats.",

	"ai research": "PI & Other Tales conducts extensive research in AI and machine learning. The company has developed " +
		"tools like Storybook, an agentic workflow engine designed for creative writers dealing with writer's block. " +
		"It's powered by LLaMA 4 Scout 17B and works with existing manuscripts to help fill in the blanks and connect " +
		"ideas. The company is also developing tools for storyboarding, scriptwriting, character design, and visual " +
		"development for animation and film, including othertales Screenwriter and Emotional Resonance Engines.",

	"ethics": "PI & Other Tales is committed to ethical AI development. Any software or service developed through " +
		"their research comes with clear sustainability and ethical clauses built into its EULA. From a commercial " +
		"standpoint, their software may not be used to replace a human role within a business. The company is also " +
		"researching attribution tracking to ensure original creators are credited and compensated when their work " +
		"is used in generative AI systems.",

	"animation": "The company is working on animation projects, including tools for visual development and " +
		"storyboarding. There's also an animation in the works related to the Fortunes Told project, though this " +
		"information isn't widely publicized yet.",

	"contact": "For more information on PI & Other Tales and their projects, you can visit their website at " +
		"https://othertales.co/ or check out their GitHub at https://github.com/and-other-tales/.",
}

// NormalizeTopic strips everything outside the alphanumeric/space set,
// collapses runs of whitespace, trims, and lowercases.
func NormalizeTopic(topic string) string {
	var b strings.Builder
	b.Grow(len(topic))
	for _, r := range topic {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

// Resolve maps a free-text topic to a canonical category. The topic is
// normalized first; an unmatched topic resolves to "general".
func Resolve(topic string) string {
	normalized := NormalizeTopic(topic)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(normalized, kw) {
				return g.category
			}
		}
	}
	return CategoryGeneral
}

// Lookup returns the canned text for a canonical category, falling back to
// the general blurb for unknown categories.
func Lookup(category string) string {
	if text, ok := companyInfo[category]; ok {
		return text
	}
	return companyInfo[CategoryGeneral]
}
