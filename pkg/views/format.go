package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "2006-01-02 15:04"

func numberPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func Text(v any, _ func(string) string) string {
	if v == nil {
		return "-"
	}

	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "" {
		return "-"
	}

	return s
}

// Money renders amounts with grouping and two decimals, e.g. 1,500.00.
func Money(v any, tr func(string) string) string {
	f, ok := toFloat(v)
	if !ok {
		return Text(v, tr)
	}

	return numberPrinter().Sprintf("%.2f", f)
}

func Number(v any, tr func(string) string) string {
	f, ok := toFloat(v)
	if !ok {
		return Text(v, tr)
	}

	return numberPrinter().Sprintf("%v", f)
}

// Date accepts RFC 3339 strings as sent by the backend.
func Date(v any, tr func(string) string) string {
	s, ok := v.(string)
	if !ok {
		return Text(v, tr)
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Text(v, tr)
	}

	return t.Format(dateLayout)
}

func YesNo(v any, tr func(string) string) string {
	b, ok := v.(bool)
	switch {
	case !ok:
		return Text(v, tr)
	case b:
		return tr("yes")
	default:
		return tr("no")
	}
}

// Translated runs a stored enum value such as "in stock" through the translator.
func Translated(v any, tr func(string) string) string {
	s := Text(v, tr)
	if s == "-" {
		return s
	}

	return tr(s)
}

// Ref shows a joined foreign key by its name, or the raw id when it wasn't joined.
func Ref(v any, tr func(string) string) string {
	if m, ok := v.(map[string]any); ok {
		for _, key := range []string{"name", "username", "plateNumber", apiv1.IDField} {
			if name, ok := m[key].(string); ok && name != "" {
				return name
			}
		}
	}

	return Text(v, tr)
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Initials abbreviates a name to at most two upper case letters, "Asha Juma" -> "AJ".
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		initials = append(initials, r)
		if len(initials) == 2 {
			break
		}
	}

	return strings.ToUpper(string(initials))
}
