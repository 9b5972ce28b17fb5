package excel

import (
	"math"
	"strconv"
	"strings"

	"cdtire/models"
)

// Replacements maps a symbolic workbook token ("P1", "L3", "-IA") to the
// concrete value it resolves to. Values stay strings so numeric literals
// already present in cells pass through untouched.
type Replacements map[string]string

// BuildParameterReplacements derives the token table from the scalar user
// inputs. P1 and P2 both resolve to the single pressure input: the data
// model carries one pressure channel even though the matrix templates name
// two tokens. Negated tokens resolve to the negative absolute value of the
// input, or "0" when the input is absent.
func BuildParameterReplacements(inputs models.MatrixInputs) Replacements {
	repl := make(Replacements)

	set := func(token, raw string) {
		if v := strings.TrimSpace(raw); v != "" {
			repl[token] = v
		}
	}

	set("P1", inputs.Pressure)
	set("P2", inputs.Pressure)

	loads := inputs.Loads()
	for i, load := range loads {
		set("L"+strconv.Itoa(i+1), load)
	}

	set("VEL", inputs.Velocity)
	set("IA", inputs.InclinationAngle)
	set("SR", inputs.SlipRatio)

	repl["-IA"] = negated(inputs.InclinationAngle)
	repl["-SR"] = negated(inputs.SlipRatio)

	return repl
}

// Resolve looks up a raw cell value in the table. Unknown tokens (including
// plain numeric literals) pass through unchanged.
func (r Replacements) Resolve(raw string) string {
	if v, ok := r[raw]; ok {
		return v
	}
	return raw
}

// negated renders the negative absolute value of a decimal input string
func negated(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "0"
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "0"
	}
	return "-" + strconv.FormatFloat(math.Abs(f), 'f', -1, 64)
}
