package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

const SeparatorWidth = 30

var Separator = strings.Repeat("-", SeparatorWidth)

// TextWriter prints outcomes in the plain format meant to be read by a person:
//
//	Testing: <label>
//	Status Code: <code>
//	Response Body: <indented json>   or   Response Text: <raw body>
//	------------------------------
type TextWriter struct {
	Output io.Writer
}

func (this *TextWriter) WriteOutcome(ctx context.Context, outcome Outcome) error {

	if this.Output == nil {
		return errors.New("text writer has no output")
	}

	var block strings.Builder

	block.WriteString("Testing: " + outcome.Label + "\n")

	if outcome.Failed() {
		block.WriteString("Error: " + outcome.Err.Error() + "\n")
	} else {
		label, text := RenderBody(outcome.Body)
		block.WriteString("Status Code: " + strconv.Itoa(outcome.StatusCode) + "\n")
		block.WriteString(label + ": " + text + "\n")
	}

	block.WriteString(Separator + "\n")

	_, err := io.WriteString(this.Output, block.String())
	return err
}

// RenderBody pretty-prints body when it's valid json and returns it untouched otherwise.
// Indenting works on the raw tokens, so key order and number formatting survive as sent.
func RenderBody(body []byte) (label string, text string) {

	if trimmed := bytes.TrimSpace(body); json.Valid(trimmed) {

		var buff bytes.Buffer
		if err := json.Indent(&buff, trimmed, "", "  "); err == nil {
			return "Response Body", buff.String()
		}
	}

	return "Response Text", string(body)
}
