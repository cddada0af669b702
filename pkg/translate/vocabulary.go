package translate

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Vocabulary holds two parallel word lists: English[i] and Swahili[i] are the same word.
type Vocabulary struct {
	English []string `yaml:"english"`
	Swahili []string `yaml:"swahili"`
}

// LoadVocabulary reads a YAML file with top level english and swahili lists.
func LoadVocabulary(path string) (Vocabulary, error) {
	var v Vocabulary

	b, err := os.ReadFile(path)
	if err != nil {
		return v, errors.Wrapf(err, "unable to read vocabulary %s", path)
	}

	if err := yaml.Unmarshal(b, &v); err != nil {
		return v, errors.Wrapf(err, "unable to parse vocabulary %s", path)
	}

	return v, nil
}

// Validate reports problems that would disable or break translation: unequal list lengths,
// blank entries and words that normalize to the same key.
func (v Vocabulary) Validate() []error {
	var problems []error

	if len(v.English) != len(v.Swahili) {
		problems = append(problems, fmt.Errorf("english has %d words but swahili has %d", len(v.English), len(v.Swahili)))
	}

	problems = append(problems, checkList("english", v.English)...)
	problems = append(problems, checkList("swahili", v.Swahili)...)

	return problems
}

func checkList(name string, words []string) []error {
	var problems []error
	seen := make(map[string]int, len(words))

	for i, w := range words {
		key := normalize(w)
		if key == "" {
			problems = append(problems, fmt.Errorf("%s[%d] is blank", name, i))
			continue
		}

		if first, ok := seen[key]; ok {
			problems = append(problems, fmt.Errorf("%s[%d] %q duplicates %s[%d]", name, i, w, name, first))
			continue
		}
		seen[key] = i
	}

	return problems
}

// DefaultVocabulary covers the labels used by the built-in pages.
func DefaultVocabulary() Vocabulary {
	pairs := [][2]string{
		{"created by", "imeundwa na"},
		{"updated by", "imesasishwa na"},
		{"created at", "imeundwa tarehe"},
		{"name", "jina"},
		{"phone number", "namba ya simu"},
		{"email", "barua pepe"},
		{"address", "anwani"},
		{"amount", "kiasi"},
		{"price", "bei"},
		{"quantity", "idadi"},
		{"stock", "akiba"},
		{"barcode", "msimbo pau"},
		{"date", "tarehe"},
		{"status", "hali"},
		{"description", "maelezo"},
		{"details", "taarifa"},
		{"total", "jumla"},
		{"paid", "imelipwa"},
		{"balance", "salio"},
		{"customer", "mteja"},
		{"supplier", "msambazaji"},
		{"product", "bidhaa"},
		{"category", "kundi"},
		{"store", "stoo"},
		{"sale", "mauzo"},
		{"purchase", "manunuzi"},
		{"order", "oda"},
		{"quotation", "nukuu"},
		{"invoice", "ankara"},
		{"payment", "malipo"},
		{"debt", "deni"},
		{"expense", "matumizi"},
		{"expense type", "aina ya matumizi"},
		{"account", "akaunti"},
		{"transaction", "muamala"},
		{"device", "kifaa"},
		{"user", "mtumiaji"},
		{"role", "wadhifa"},
		{"branch", "tawi"},
		{"service", "huduma"},
		{"truck", "lori"},
		{"driver", "dereva"},
		{"trip", "safari"},
		{"route", "njia"},
		{"booking", "uhifadhi"},
		{"tour", "ziara"},
		{"tourist", "mtalii"},
		{"hotel", "hoteli"},
		{"view", "tazama"},
		{"list", "orodha"},
		{"create", "unda"},
		{"edit", "hariri"},
		{"delete", "futa"},
		{"restore", "rejesha"},
		{"profile", "wasifu"},
		{"yes", "ndiyo"},
		{"no", "hapana"},
		{"no access", "huna ruhusa"},
		{"does not exist", "haipo"},
		{"username", "jina la mtumiaji"},
		{"capacity", "uwezo"},
		{"plate number", "namba ya usajili"},
		{"saved", "imehifadhiwa"},
		{"deleted", "imefutwa"},
		{"selling price", "bei ya kuuza"},
		{"buying price", "bei ya kununua"},
		{"margin", "faida"},
		{"in stock", "ipo"},
		{"low stock", "inakaribia kwisha"},
		{"out of stock", "imeisha"},
		{"second account", "akaunti ya pili"},
		{"second account impact", "athari kwa akaunti ya pili"},
		{"increase", "ongezeko"},
		{"decrease", "punguzo"},
		{"imei", "namba ya imei"},
		{"licence number", "namba ya leseni"},
		{"distance", "umbali"},
		{"nationality", "uraia"},
		{"visible", "inaonekana"},
	}

	v := Vocabulary{
		English: make([]string, len(pairs)),
		Swahili: make([]string, len(pairs)),
	}
	for i, p := range pairs {
		v.English[i], v.Swahili[i] = p[0], p[1]
	}

	return v
}
