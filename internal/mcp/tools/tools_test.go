package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/harscope/internal/cache"
	"github.com/usestring/harscope/internal/config"
	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/har"
	"github.com/usestring/harscope/pkg/textquery"
)

const portalHAR = `{"log": {"entries": [
	{"request": {"method": "POST", "url": "https://jwgl.example.edu.cn/jwglxt/jxzxjhgl/jxzxjhglList.do",
		"headers": [{"name": "Content-Type", "value": "application/x-www-form-urlencoded"}],
		"postData": {"mimeType": "application/x-www-form-urlencoded", "text": "njdm_id=2023&jg_id=01"}},
	 "response": {"status": 200, "content": {"mimeType": "application/json", "text": "{\"items\":[{\"zymc\":\"软件工程\"},{\"zymc\":\"软件工程\"},{\"zymc\":\"网络工程\"}]}"}}},
	{"request": {"method": "GET", "url": "https://jwgl.example.edu.cn/jwglxt/jxzxjhkcxx/jxzxjhkcxx_cxJxzxjhkcxxIndex.html"},
	 "response": {"status": 200, "content": {"mimeType": "text/html", "text": "<select name=\"njdm_id\" id=\"njdm_id\"><option value=\"2023\">2023</option><option value=\"2024\">2024</option></select>"}}},
	{"request": {"method": "GET", "url": "https://jwgl.example.edu.cn/jwglxt/xsxyqk/xsxyqk_cxXsxyqkIndex.html"},
	 "response": {"status": 200, "content": {"mimeType": "text/html", "text": "<a xfyqjd_id='A1' data-content='通识课'></a><a xfyqjd_id='A1' data-content='通识课'></a>"}}},
	{"request": {"method": "GET", "url": "https://jwgl.example.edu.cn/jwglxt/logo.png"},
	 "response": {"status": 200, "content": {"mimeType": "image/png", "text": "iVBORw0KGgo=", "encoding": "base64"}}}
]}}`

func newDeps(t *testing.T) *Deps {
	t.Helper()
	a, err := har.Parse([]byte(portalHAR))
	require.NoError(t, err)
	a.Path = "portal.har"

	patterns, err := cache.NewPatternCache(16)
	require.NoError(t, err)
	x, err := extract.New(extract.BackendRegex, patterns)
	require.NoError(t, err)

	return &Deps{
		Archive: a,
		Config: &config.Config{
			ResponseLimit:   20,
			Extractor:       extract.BackendRegex,
			MaxQueryResults: 100,
		},
		Patterns:  patterns,
		Extractor: x,
		Pairs:     extract.NewRegexExtractor(patterns),
		TextQuery: textquery.NewEngine(patterns),
	}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var coded *CodedError
	require.True(t, errors.As(err, &coded), "expected CodedError, got %T: %v", err, err)
	return coded.Code
}

func TestToolListEntries(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	list := ToolListEntries(d)

	t.Run("all entries", func(t *testing.T) {
		_, out, err := list(ctx, nil, ListEntriesInput{})
		require.NoError(t, err)
		assert.Equal(t, "portal.har", out.Archive)
		assert.Equal(t, 4, out.TotalCount)
		assert.Equal(t, 4, out.Matched)
		require.Len(t, out.Entries, 4)
		assert.Equal(t, "POST", out.Entries[0].Method)
		assert.Equal(t, "application/x-www-form-urlencoded", out.Entries[0].RequestContentType)
		assert.Equal(t, 21, out.Entries[0].PostDataChars)
	})

	t.Run("filtered", func(t *testing.T) {
		_, out, err := list(ctx, nil, ListEntriesInput{Include: []string{"jwglxt"}, Exclude: []string{".png", "xsxyqk"}})
		require.NoError(t, err)
		require.Len(t, out.Entries, 2)
		assert.Equal(t, 0, out.Entries[0].Index)
		assert.Equal(t, 1, out.Entries[1].Index)
	})

	t.Run("paging", func(t *testing.T) {
		_, out, err := list(ctx, nil, ListEntriesInput{Offset: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, out.Entries, 2)
		assert.Equal(t, 1, out.Entries[0].Index)
		assert.True(t, out.Truncated)
		assert.Contains(t, out.Hint, "offset=3")
	})

	t.Run("no match", func(t *testing.T) {
		_, out, err := list(ctx, nil, ListEntriesInput{Include: []string{"JWGL"}})
		require.NoError(t, err)
		assert.Empty(t, out.Entries)
		assert.NotEmpty(t, out.Hint)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, _, err := list(ctx, nil, ListEntriesInput{Offset: -1})
		assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))
	})
}

func TestToolGetEntry(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	get := ToolGetEntry(d)

	t.Run("truncated to config limit", func(t *testing.T) {
		_, out, err := get(ctx, nil, GetEntryInput{Index: 0})
		require.NoError(t, err)
		assert.Equal(t, "njdm_id=2023&jg_id=0", out.PostData)
		assert.True(t, out.PostDataTruncated)
		assert.True(t, out.ResponseTruncated)
		assert.Equal(t, 20, len([]rune(out.Response)))
		require.NotNil(t, out.Resource)
		assert.Equal(t, "har://entry/0", out.Resource.URI)
		assert.Nil(t, out.RequestHeaders)
	})

	t.Run("full body with headers", func(t *testing.T) {
		_, out, err := get(ctx, nil, GetEntryInput{Index: 0, FullBody: true, IncludeHeaders: true})
		require.NoError(t, err)
		assert.False(t, out.ResponseTruncated)
		assert.True(t, strings.HasSuffix(out.Response, "}]}"))
		require.Len(t, out.RequestHeaders, 1)
		assert.Equal(t, "Content-Type", out.RequestHeaders[0].Name)
		assert.Nil(t, out.Resource)
	})

	t.Run("out of range", func(t *testing.T) {
		_, _, err := get(ctx, nil, GetEntryInput{Index: 9})
		assert.Equal(t, ErrCodeNotFound, codeOf(t, err))
	})
}

func TestToolSelectOptions(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	sel := ToolSelectOptions(d)

	t.Run("by include", func(t *testing.T) {
		_, out, err := sel(ctx, nil, SelectOptionsInput{
			Include:   []string{"jxzxjhkcxx_cxJxzxjhkcxxIndex"},
			SelectIDs: []string{"njdm_id", "jg_id"},
		})
		require.NoError(t, err)
		assert.Equal(t, extract.BackendRegex, out.Extractor)
		require.Len(t, out.Entries, 1)
		e := out.Entries[0]
		assert.Equal(t, []string{"njdm_id"}, e.SelectIDs)
		require.Len(t, e.Selects, 2)
		require.Len(t, e.Selects[0].Options, 2)
		assert.Equal(t, "2023", e.Selects[0].Options[0].Value)
		assert.Equal(t, "2024", e.Selects[0].Options[1].Label)
		assert.Empty(t, e.Selects[1].Options)
		assert.NotNil(t, e.Selects[1].Options)
	})

	t.Run("markup backend", func(t *testing.T) {
		_, out, err := sel(ctx, nil, SelectOptionsInput{Indices: []int{1}, SelectIDs: []string{"njdm_id"}, Extractor: extract.BackendMarkup})
		require.NoError(t, err)
		assert.Equal(t, extract.BackendMarkup, out.Extractor)
		assert.Len(t, out.Entries[0].Selects[0].Options, 2)
	})

	t.Run("no selects hint", func(t *testing.T) {
		_, out, err := sel(ctx, nil, SelectOptionsInput{Indices: []int{0}})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Hint)
	})

	t.Run("requires entries", func(t *testing.T) {
		_, _, err := sel(ctx, nil, SelectOptionsInput{})
		assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := sel(ctx, nil, SelectOptionsInput{Indices: []int{1}, Extractor: "dom"})
		assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))
	})
}

func TestToolAttributePairs(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	pairs := ToolAttributePairs(d)

	_, out, err := pairs(ctx, nil, AttributePairsInput{Include: []string{"xsxyqk"}})
	require.NoError(t, err)
	require.Len(t, out.Pairs, 1)
	assert.Equal(t, "A1", out.Pairs[0].ID)
	assert.Equal(t, "通识课", out.Pairs[0].Content)
	require.Len(t, out.Entries, 1)
	assert.Len(t, out.Entries[0].Pairs, 1)

	_, out, err = pairs(ctx, nil, AttributePairsInput{Indices: []int{2}, Attribute: "kcxz_id"})
	require.NoError(t, err)
	assert.Empty(t, out.Pairs)
	assert.Contains(t, out.Hint, "kcxz_id")

	_, _, err = pairs(ctx, nil, AttributePairsInput{Indices: []int{2}, IDCharset: "z-a"})
	assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))

	// A charset that compiles but alters the groups.
	_, _, err = pairs(ctx, nil, AttributePairsInput{Indices: []int{2}, IDCharset: `A-F]+)\Q`})
	assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = pairs(cancelled, nil, AttributePairsInput{Include: []string{"xsxyqk"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToolQueryBody(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	query := ToolQueryBody(d)

	t.Run("jq with dedup", func(t *testing.T) {
		_, out, err := query(ctx, nil, QueryBodyInput{Indices: []int{0}, Expression: ".items[].zymc", Deduplicate: true})
		require.NoError(t, err)
		assert.Equal(t, []any{"软件工程", "网络工程"}, out.Values)
		assert.Equal(t, 3, out.Summary.TotalValues)
		assert.Equal(t, 2, out.Summary.UniqueValues)
		assert.Equal(t, 1, out.Summary.EntriesMatched)
	})

	t.Run("request form field", func(t *testing.T) {
		_, out, err := query(ctx, nil, QueryBodyInput{Include: []string{"jxzxjhglList"}, Expression: "jg_id", Target: "request"})
		require.NoError(t, err)
		assert.Equal(t, []any{"01"}, out.Values)
	})

	t.Run("css over html", func(t *testing.T) {
		_, out, err := query(ctx, nil, QueryBodyInput{Indices: []int{1}, Expression: "option"})
		require.NoError(t, err)
		assert.Equal(t, []any{"2023", "2024"}, out.Values)
	})

	t.Run("binary skipped", func(t *testing.T) {
		_, out, err := query(ctx, nil, QueryBodyInput{Indices: []int{3}, Expression: "x", Mode: "regex"})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Summary.EntriesSkipped)
		require.Len(t, out.Entries, 1)
		assert.True(t, out.Entries[0].Skipped)
	})

	t.Run("max results", func(t *testing.T) {
		_, out, err := query(ctx, nil, QueryBodyInput{Indices: []int{0}, Expression: ".items[].zymc", MaxResults: 1})
		require.NoError(t, err)
		assert.Len(t, out.Values, 1)
		assert.True(t, out.Summary.Truncated)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, _, err := query(ctx, nil, QueryBodyInput{Indices: []int{0}})
		assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))

		_, _, err = query(ctx, nil, QueryBodyInput{Indices: []int{0}, Expression: "[bad", Mode: "regex"})
		assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))

		_, _, err = query(ctx, nil, QueryBodyInput{Indices: []int{0}, Expression: ".", Target: "headers"})
		assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))

		_, _, err = query(ctx, nil, QueryBodyInput{Indices: []int{7}, Expression: "."})
		assert.Equal(t, ErrCodeNotFound, codeOf(t, err))
	})
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil))

	_, parseErr := har.Parse([]byte("{"))
	require.Error(t, parseErr)
	assert.Equal(t, ErrCodeParse, codeOf(t, WrapError(parseErr)))

	assert.Equal(t, ErrCodeInternal, codeOf(t, WrapError(errors.New("boom"))))

	nf := ErrNotFound("entry", "3")
	assert.Same(t, nf, WrapError(nf))
}
