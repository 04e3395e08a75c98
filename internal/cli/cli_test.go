package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/harscope/internal/rules"
	"github.com/usestring/harscope/pkg/har"
)

const portalHAR = `{"log": {"version": "1.2", "entries": [
	{"request": {"method": "POST", "url": "https://host/jxzxjhglList.do",
		"postData": {"mimeType": "application/x-www-form-urlencoded", "text": "njdm_id=2023"}},
	 "response": {"status": 200, "content": {"mimeType": "text/plain", "text": "ok"}}},
	{"request": {"method": "GET", "url": "https://host/jxzxjhkcxx_cxJxzxjhkcxxIndex.html"},
	 "response": {"status": 200, "content": {"mimeType": "text/html", "text": "<select name=\"njdm_id\" id=\"njdm_id\">\n<option value=\"2023\">2023</option>\n<option value=\"2024\">2024</option>\n</select>"}}},
	{"request": {"method": "GET", "url": "https://host/xsxyqk/xsxyqk_cxXsxyqkIndex.html"},
	 "response": {"status": 200, "content": {"mimeType": "text/html", "text": "<i xfyqjd_id='A1' data-content='通识课'></i><i xfyqjd_id='A1' data-content='通识课'></i>"}}},
	{"request": {"method": "GET", "url": "https://host/js/jxzxjhgl.js"},
	 "response": {"status": 200, "content": {"mimeType": "application/javascript", "text": "void 0"}}}
]}}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the command tree with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root, g := newRootCmd()
	t.Cleanup(func() { _ = g.close() })

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFilter_printsSummary(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	out, err := execute(t, "filter", path, "--include", "jxzxjhglList")
	require.NoError(t, err)

	want := "============================================================\n" +
		"summary: jxzxjhglList\n" +
		"============================================================\n" +
		"URL: https://host/jxzxjhglList.do\n" +
		"Method: POST\n" +
		"PostData: njdm_id=2023\n" +
		"Response: ok\n" +
		"---\n"
	assert.Equal(t, want, out)
}

func TestFilter_excludeAndLimits(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	out, err := execute(t, "filter", path, "-i", "jxzxjhgl", "-x", "js", "--postdata-limit", "4", "--omit-response")
	require.NoError(t, err)

	assert.Contains(t, out, "summary: jxzxjhgl (excluding js)\n")
	assert.Contains(t, out, "PostData: njdm\n")
	assert.NotContains(t, out, "Response:")
	assert.NotContains(t, out, "jxzxjhgl.js")
}

func TestFilter_requiresInclude(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	_, err := execute(t, "filter", path)
	assert.ErrorContains(t, err, "include")
}

func TestFilter_rejectsNegativeLimit(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	_, err := execute(t, "filter", path, "-i", "jxzxjhgl", "--response-limit", "-1")
	assert.ErrorContains(t, err, "--response-limit must not be negative")
}

func TestSelects(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	for _, backend := range []string{"regex", "markup"} {
		t.Run(backend, func(t *testing.T) {
			out, err := execute(t, "selects", path, "-i", "jxzxjhkcxx_cxJxzxjhkcxxIndex", "-s", "njdm_id", "--extractor", backend)
			require.NoError(t, err)
			assert.Contains(t, out, "URL: https://host/jxzxjhkcxx_cxJxzxjhkcxxIndex.html\n")
			assert.Contains(t, out, `All select IDs: ["njdm_id"]`+"\n")
			assert.Contains(t, out, `njdm_id: [("2023", "2023"), ("2024", "2024")]`+"\n")
		})
	}
}

func TestSelects_unknownExtractor(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	_, err := execute(t, "selects", path, "-i", "Index", "-s", "njdm_id", "--extractor", "lxml")
	assert.ErrorContains(t, err, "unknown extractor backend")
}

func TestPairs_deduplicates(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	out, err := execute(t, "pairs", path, "-i", "xsxyqk_cxXsxyqkIndex")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "ID: A1"))
	assert.Contains(t, out, "  Content: 通识课\n")
}

func TestPairs_invalidCharset(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	_, err := execute(t, "pairs", path, "-i", "xsxyqk", "--id-charset", "z-a")
	assert.Error(t, err)
}

func TestQuery_formRequestBody(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	out, err := execute(t, "query", path, "-i", "jxzxjhglList", "-e", "njdm_id", "--target", "request")
	require.NoError(t, err)
	assert.Contains(t, out, "Matches (form, request): 1\n")
	assert.Contains(t, out, "  2023\n")
}

func TestQuery_unknownTarget(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	out, err := execute(t, "query", path, "-i", "jxzxjhglList", "-e", "x", "--target", "headers")
	assert.ErrorContains(t, err, "unknown target")
	assert.Empty(t, out)
}

func TestReport_coursePlanPreset(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	out, err := execute(t, "report", path)
	require.NoError(t, err)

	first := strings.Index(out, "1. course plan list API")
	second := strings.Index(out, "2. college/major/grade options")
	third := strings.Index(out, "3. jxzxjhgl requests")
	require.True(t, first >= 0 && second > first && third > second, out)

	// Section 3 omits responses.
	assert.NotContains(t, out[third:], "Response:")
	assert.Contains(t, out[third:], "PostData: njdm_id=2023\n")
}

func TestReport_rulesFile(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)
	rulesPath := writeFile(t, "rules.yaml", `name: categories
rules:
  - title: categories
    include: [xsxyqk]
    kind: attribute_pairs
`)

	out, err := execute(t, "report", "--rules", rulesPath, path)
	require.NoError(t, err)
	assert.Contains(t, out, "categories\n")
	assert.Contains(t, out, "  ID: A1\n")
}

func TestReport_invalidRulesFile(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)
	rulesPath := writeFile(t, "rules.yaml", "name: broken\nrules:\n  - include: [x]\n    kind: everything\n")

	out, err := execute(t, "report", "--rules", rulesPath, path)
	var verr *rules.ValidationError
	assert.True(t, errors.As(err, &verr), "got %v", err)
	assert.Empty(t, out)
}

func TestReport_presetAndRulesConflict(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	_, err := execute(t, "report", "--preset", "course-plan", "--rules", "x.yaml", path)
	assert.Error(t, err)
}

func TestReport_unknownPreset(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	_, err := execute(t, "report", "--preset", "timetable", path)
	assert.ErrorContains(t, err, `unknown preset "timetable"`)
}

func TestReport_jsonLines(t *testing.T) {
	path := writeFile(t, "portal.har", portalHAR)

	out, err := execute(t, "report", "--preset", "academic-status", "--json", path)
	require.NoError(t, err)

	var kinds []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), sc.Text())
		kinds = append(kinds, rec["kind"].(string))
	}
	assert.Equal(t, []string{"section", "pairs"}, kinds)
}

func TestReport_multipleArchivesInArgumentOrder(t *testing.T) {
	first := writeFile(t, "a.har", portalHAR)
	second := writeFile(t, "b.har", `{"log": {"entries": [
		{"request": {"method": "GET", "url": "https://other/xsxyqk_cxXsxyqkIndex.html"},
		 "response": {"content": {"text": "<i xfyqjd_id='B2' data-content='专业课'></i>"}}}]}}`)

	out, err := execute(t, "report", "--preset", "academic-status", "--workers", "2", second, first)
	require.NoError(t, err)

	b := strings.Index(out, "Archive: "+second)
	a := strings.Index(out, "Archive: "+first)
	require.True(t, b >= 0 && a > b, out)
	assert.Contains(t, out[b:a], "ID: B2")
	assert.Contains(t, out[a:], "ID: A1")
}

func TestReport_parseErrorWritesNothing(t *testing.T) {
	good := writeFile(t, "good.har", portalHAR)
	bad := writeFile(t, "bad.har", `{"log": `)

	out, err := execute(t, "report", good, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, har.ErrParse), "got %v", err)
	assert.Empty(t, out)
}

func TestReport_missingFile(t *testing.T) {
	_, err := execute(t, "report", filepath.Join(t.TempDir(), "missing.har"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, har.ErrParse))
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, out, "attribute_pairs")
}
