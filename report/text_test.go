package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextWriter_JsonBody(t *testing.T) {

	var out bytes.Buffer
	writer := TextWriter{Output: &out}

	err := writer.WriteOutcome(context.Background(), Outcome{
		Label:      "Invalid Email",
		StatusCode: 401,
		Body:       []byte(`{"error":"invalid credentials"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Testing: Invalid Email\n"+
		"Status Code: 401\n"+
		"Response Body: {\n"+
		"  \"error\": \"invalid credentials\"\n"+
		"}\n"+
		"------------------------------\n", out.String())
}

func TestTextWriter_TextBody(t *testing.T) {

	var out bytes.Buffer
	writer := TextWriter{Output: &out}

	body := "<html>\n  <body>502 Bad Gateway</body>\n</html>\n"

	err := writer.WriteOutcome(context.Background(), Outcome{
		Label:      "Gateway down",
		StatusCode: 502,
		Body:       []byte(body),
	})
	require.NoError(t, err)

	assert.Equal(t, "Testing: Gateway down\n"+
		"Status Code: 502\n"+
		"Response Text: "+body+"\n"+
		Separator+"\n", out.String())
}

func TestTextWriter_TransportError(t *testing.T) {

	var out bytes.Buffer
	writer := TextWriter{Output: &out}

	err := writer.WriteOutcome(context.Background(), Outcome{
		Label: "Invalid Email",
		Err:   errors.New(`Post "http://localhost:5000/api/auth/login": dial tcp 127.0.0.1:5000: connect: connection refused`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Testing: Invalid Email\n"+
		"Error: Post \"http://localhost:5000/api/auth/login\": dial tcp 127.0.0.1:5000: connect: connection refused\n"+
		"------------------------------\n", out.String())
	assert.NotContains(t, out.String(), "Status Code")
}

func TestTextWriter_NoOutput(t *testing.T) {
	writer := TextWriter{}
	assert.Error(t, writer.WriteOutcome(context.Background(), Outcome{Label: "x"}))
}

func TestSeparator(t *testing.T) {
	assert.Len(t, Separator, 30)
	assert.Equal(t, strings.Repeat("-", 30), Separator)
}

func TestRenderBody(t *testing.T) {

	t.Run("json round trips", func(t *testing.T) {

		bodies := []string{
			`{"error":"invalid credentials","attempts":3,"lock":{"until":null,"flags":[true,false]}}`,
			`[1,2.50,"x"]`,
			`"just a string"`,
			`42`,
			"{\"padded\": true}\r\n",
		}

		for _, body := range bodies {
			label, text := RenderBody([]byte(body))
			assert.Equal(t, "Response Body", label)
			assert.JSONEq(t, body, text)
		}
	})

	t.Run("keeps key order and html", func(t *testing.T) {
		label, text := RenderBody([]byte(`{"z":"<b>&</b>","a":1e3}`))
		assert.Equal(t, "Response Body", label)
		assert.Equal(t, "{\n  \"z\": \"<b>&</b>\",\n  \"a\": 1e3\n}", text)
	})

	t.Run("non json is untouched", func(t *testing.T) {

		bodies := []string{
			"",
			"Unauthorized",
			"{\"broken\": ",
			"  \tleading space\n",
			"\xff\xfe binary",
		}

		for _, body := range bodies {
			label, text := RenderBody([]byte(body))
			assert.Equal(t, "Response Text", label)
			assert.Equal(t, body, text)
		}
	})

	t.Run("indent is valid json", func(t *testing.T) {
		_, text := RenderBody([]byte(`{"a":{"b":[]}}`))
		assert.True(t, json.Valid([]byte(text)))
	})
}
