package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/checkout-ago/internal/rewind"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// jsonPlan adds the derived fields scripts usually want.
type jsonPlan struct {
	*rewind.Plan
	Resolved      string `json:"resolved"`
	ReturnCommand string `json:"return_command"`
}

// Format outputs the plan as a single JSON object
func (f *JSONFormatter) Format(p *rewind.Plan, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(jsonPlan{
		Plan:          p,
		Resolved:      p.Parsed.String(),
		ReturnCommand: ReturnCommand(p),
	})
}
