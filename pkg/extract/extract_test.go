package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/harscope/internal/cache"
)

const coursePlanPage = `<form id="searchForm">
<select name="jg_id" id="jg_id" class="form-control chosen-select">
	<option value="">全部</option>
	<option value="01">计算机科学与工程学院</option>
	<option value="02" selected="selected">机械工程学院</option>
</select>
<select name="njdm_id" id="njdm_id"><option value="2023">2023</option><option value="2024">2024</option></select>
<select id="zyh_id"></select>
</form>`

func backends(t *testing.T) map[string]SelectExtractor {
	t.Helper()
	c, err := cache.NewPatternCache(16)
	require.NoError(t, err)
	return map[string]SelectExtractor{
		BackendRegex:  NewRegexExtractor(c),
		BackendMarkup: NewMarkupExtractor(),
	}
}

func TestSelectOptions(t *testing.T) {
	for name, x := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("grade options in order", func(t *testing.T) {
				html := `<select name="njdm_id"><option value="2023">2023</option><option value="2024">2024</option></select>`
				got := x.SelectOptions(html, "njdm_id")
				assert.Equal(t, []Option{{"2023", "2023"}, {"2024", "2024"}}, got)
			})

			t.Run("multi-line block with extra attributes", func(t *testing.T) {
				got := x.SelectOptions(coursePlanPage, "jg_id")
				require.Len(t, got, 3)
				assert.Equal(t, Option{Value: "", Label: "全部"}, got[0])
				assert.Equal(t, Option{Value: "02", Label: "机械工程学院"}, got[2])
			})

			t.Run("matched by id attribute", func(t *testing.T) {
				html := `<select id="xqm"><option value="3">1</option><option value="12">2</option></select>`
				got := x.SelectOptions(html, "xqm")
				assert.Equal(t, []Option{{"3", "1"}, {"12", "2"}}, got)
			})

			t.Run("missing select is empty", func(t *testing.T) {
				got := x.SelectOptions(coursePlanPage, "kch_id")
				assert.NotNil(t, got)
				assert.Empty(t, got)
			})

			t.Run("select without options is empty", func(t *testing.T) {
				assert.Empty(t, x.SelectOptions(coursePlanPage, "zyh_id"))
			})

			t.Run("empty input", func(t *testing.T) {
				assert.Empty(t, x.SelectOptions("", "njdm_id"))
			})

			t.Run("case sensitive id", func(t *testing.T) {
				assert.Empty(t, x.SelectOptions(coursePlanPage, "NJDM_ID"))
			})

			t.Run("select ids", func(t *testing.T) {
				assert.Equal(t, []string{"jg_id", "njdm_id", "zyh_id"}, x.SelectIDs(coursePlanPage))
			})
		})
	}
}

func TestRegexExtractor_Malformed(t *testing.T) {
	x := NewRegexExtractor(nil)

	t.Run("unterminated select matches nothing", func(t *testing.T) {
		html := `<select name="njdm_id"><option value="2023">2023</option>`
		assert.Empty(t, x.SelectOptions(html, "njdm_id"))
	})

	t.Run("stops at first closing tag", func(t *testing.T) {
		html := `<select name="a"><option value="1">one</option></select><option value="2">two</option></select>`
		assert.Equal(t, []Option{{"1", "one"}}, x.SelectOptions(html, "a"))
	})

	t.Run("id with regex metacharacters", func(t *testing.T) {
		html := `<select name="a.b"><option value="1">one</option></select>`
		assert.Len(t, x.SelectOptions(html, "a.b"), 1)
		assert.Empty(t, x.SelectOptions(html, "axb"))
	})
}

func TestMarkupExtractor_DecodesEntities(t *testing.T) {
	x := NewMarkupExtractor()
	html := `<select name="jg_id"><option value="a&amp;b">R&amp;D</option><option>no value</option></select>`
	assert.Equal(t, []Option{{"a&b", "R&D"}}, x.SelectOptions(html, "jg_id"))
}

func TestNew(t *testing.T) {
	x, err := New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &RegexExtractor{}, x)

	x, err = New(BackendMarkup, nil)
	require.NoError(t, err)
	assert.IsType(t, &MarkupExtractor{}, x)

	_, err = New("dom", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown extractor backend")
}

func TestOption_String(t *testing.T) {
	assert.Equal(t, `("2023", "2023")`, Option{"2023", "2023"}.String())
}

func TestAttributePairs(t *testing.T) {
	t.Run("duplicates collapse", func(t *testing.T) {
		html := `<a xfyqjd_id='A1' data-content='通识课'>x</a>
<a xfyqjd_id='A1' data-content='通识课'>x</a>`
		got, err := AttributePairs(html, DefaultAttributePattern)
		require.NoError(t, err)
		assert.Equal(t, []Pair{{ID: "A1", Content: "通识课"}}, got)
	})

	t.Run("distinct pairs kept", func(t *testing.T) {
		html := `<span xfyqjd_id='0F3C' data-content='专业必修课'></span>
<span xfyqjd_id='B7'   data-content='公共选修课'></span>
<span xfyqjd_id='0F3C' data-content='专业必修课'></span>`
		got, err := AttributePairs(html, AttributePattern{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []Pair{
			{ID: "0F3C", Content: "专业必修课"},
			{ID: "B7", Content: "公共选修课"},
		}, got)
	})

	t.Run("same id different content is distinct", func(t *testing.T) {
		html := `<i xfyqjd_id='A1' data-content='x'></i><i xfyqjd_id='A1' data-content='y'></i>`
		got, err := AttributePairs(html, DefaultAttributePattern)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("id outside charset is ignored", func(t *testing.T) {
		html := `<i xfyqjd_id='a1' data-content='lower'></i>`
		got, err := AttributePairs(html, DefaultAttributePattern)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("custom attribute and charset", func(t *testing.T) {
		html := `<i kclbdm_id='k-9' data-content='实践'></i>`
		got, err := AttributePairs(html, AttributePattern{Attribute: "kclbdm_id", IDCharset: `a-z0-9\-`})
		require.NoError(t, err)
		assert.Equal(t, []Pair{{ID: "k-9", Content: "实践"}}, got)
	})

	t.Run("invalid charset", func(t *testing.T) {
		_, err := AttributePairs("x", AttributePattern{Attribute: "a", IDCharset: `z-a`})
		assert.Error(t, err)
	})

	t.Run("charset that alters groups is rejected", func(t *testing.T) {
		html := `a='A]+)'\s+data-content='([^']+)'`
		for _, charset := range []string{`A-F]+)\Q`, `A-F]+)(x)([0-9`, `A-F]+)|(`} {
			got, err := AttributePairs(html, AttributePattern{Attribute: "a", IDCharset: charset})
			assert.ErrorContains(t, err, "capture groups", charset)
			assert.Nil(t, got)
		}
	})

	t.Run("no matches is empty", func(t *testing.T) {
		got, err := NewRegexExtractor(nil).AttributePairs("<html></html>", DefaultAttributePattern)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
