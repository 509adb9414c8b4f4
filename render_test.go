package mdmd_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/mdmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) mdmd.RawText { return mdmd.RawText{Content: s} }

func para(children ...mdmd.Node) mdmd.Paragraph { return mdmd.Paragraph{Children: children} }

func item(children ...mdmd.Node) mdmd.ListItem { return mdmd.ListItem{Children: children} }

func row(cells ...string) mdmd.TableRow {
	r := mdmd.TableRow{}
	for _, c := range cells {
		r.Children = append(r.Children, mdmd.TableCell{Children: []mdmd.Node{text(c)}})
	}
	return r
}

func render(t *testing.T, n mdmd.Node) string {
	t.Helper()
	c := mdmd.NewRenderContext()
	got, err := mdmd.Render(c, n)
	require.NoError(t, err)
	return got
}

func TestRender_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node mdmd.Node
		want string
	}{
		{
			name: "heading",
			node: mdmd.Heading{Level: 2, Children: []mdmd.Node{text("Title")}},
			want: "## Title\n",
		},
		{
			name: "heading level is clamped",
			node: mdmd.Heading{Level: 0, Children: []mdmd.Node{text("T")}},
			want: "# T\n",
		},
		{
			name: "paragraph",
			node: para(text("hello")),
			want: "hello\n",
		},
		{
			name: "document concatenates without separators",
			node: mdmd.Document{Children: []mdmd.Node{para(text("a")), para(text("b"))}},
			want: "a\nb\n",
		},
		{
			name: "quote prefixes every line",
			node: mdmd.Quote{Children: []mdmd.Node{para(text("a"), mdmd.LineBreak{Soft: true}, text("b"))}},
			want: "\n> a\n> b\n> \n\n",
		},
		{
			name: "code block is not escaped",
			node: mdmd.CodeBlock{Language: "go", Content: "x := map[string]int{}\n"},
			want: "\n```go\nx := map[string]int{}\n```\n",
		},
		{
			name: "thematic break",
			node: mdmd.ThematicBreak{},
			want: "---\n",
		},
		{
			name: "soft line break",
			node: mdmd.LineBreak{Soft: true},
			want: "\n",
		},
		{
			name: "hard line break",
			node: mdmd.LineBreak{},
			want: "\\newline\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(t, tt.node))
		})
	}
}

func TestRender_Inline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node mdmd.Node
		want string
	}{
		{"strong", mdmd.Strong{Children: []mdmd.Node{text("x")}}, "**x**"},
		{"emphasis", mdmd.Emphasis{Children: []mdmd.Node{text("x")}}, "*x*"},
		{"inline code", mdmd.InlineCode{Children: []mdmd.Node{text("x")}}, "``` x ```"},
		{"strikethrough", mdmd.Strikethrough{Children: []mdmd.Node{text("x")}}, "~~x~~"},
		{"image drops alt text", mdmd.Image{Src: "a.png", Children: []mdmd.Node{text("alt")}}, "![](a.png)"},
		{"link", mdmd.Link{Target: "https://example.com", Children: []mdmd.Node{text("site")}}, "[site](https://example.com)"},
		{"auto link is dropped", mdmd.AutoLink{URL: "https://example.com"}, ""},
		{"math is verbatim", mdmd.Math{Content: "$x_{1} & y$"}, "$x_{1} & y$"},
		{"escape sequence passes inner through", mdmd.EscapeSequence{Children: []mdmd.Node{text("*")}}, "*"},
		{"raw text is escaped", text("a $ b # c { d } e & f"), `a \$ b \# c \{ d \} e \& f`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(t, tt.node))
		})
	}
}

func TestRender_ImageMarkupInParagraph(t *testing.T) {
	t.Parallel()
	doc := mdmd.Document{Children: []mdmd.Node{
		para(text("<img src='a.png' width='50%'>")),
	}}
	assert.Equal(t, "[]( scale = 0.5)![](a.png)\n", render(t, doc))
}

func TestRender_ImageRewriteRunsBeforeEscaping(t *testing.T) {
	t.Parallel()
	got := render(t, text(`cost $5 <img src="a.png">`))
	assert.Equal(t, `cost \$5 ![](a.png)`, got)
}

func TestRender_ImageRewriteAppliesInVerbatimContexts(t *testing.T) {
	t.Parallel()
	got := render(t, mdmd.CodeBlock{Content: "<img src=\"a.png\"> $x$\n"})
	assert.Equal(t, "\n```\n![](a.png) $x$\n```\n", got)
}

func TestRender_ImageReferenceWidthOption(t *testing.T) {
	t.Parallel()
	c := mdmd.NewRenderContext(mdmd.WithImageReferenceWidth(800))
	got, err := mdmd.Render(c, text(`<img src="a.png" width="200">`))
	require.NoError(t, err)
	assert.Equal(t, "[]( scale = 0.25)![](a.png)", got)
}

func TestRender_Lists(t *testing.T) {
	t.Parallel()

	t.Run("tight list suppresses paragraph newlines", func(t *testing.T) {
		t.Parallel()
		list := mdmd.List{Children: []mdmd.Node{item(para(text("a"))), item(para(text("b")))}}
		assert.Equal(t, "\n\n- a\n- b\n\n", render(t, list))
	})

	t.Run("loose list keeps paragraph newlines", func(t *testing.T) {
		t.Parallel()
		list := mdmd.List{Loose: true, Children: []mdmd.Node{item(para(text("a"))), item(para(text("b")))}}
		assert.Equal(t, "\n\n- a\n\n- b\n\n\n", render(t, list))
	})

	t.Run("ordered lists use the same marker", func(t *testing.T) {
		t.Parallel()
		list := mdmd.List{Ordered: true, Start: 3, Children: []mdmd.Node{item(para(text("a")))}}
		assert.Equal(t, "\n\n- a\n\n", render(t, list))
	})

	t.Run("nested tight list inside loose list", func(t *testing.T) {
		t.Parallel()
		inner := mdmd.List{Children: []mdmd.Node{item(para(text("y")))}}
		outer := mdmd.List{Loose: true, Children: []mdmd.Node{item(para(text("x")), inner, para(text("z")))}}
		assert.Equal(t, "\n\n- x\n\n\n- y\n\nz\n\n\n", render(t, outer))
	})

	t.Run("paragraph after a tight list is not suppressed", func(t *testing.T) {
		t.Parallel()
		doc := mdmd.Document{Children: []mdmd.Node{
			mdmd.List{Children: []mdmd.Node{item(para(text("a")))}},
			para(text("after")),
		}}
		assert.Equal(t, "\n\n- a\n\nafter\n", render(t, doc))
	})
}

func TestRender_SuppressionStackBalanced(t *testing.T) {
	t.Parallel()
	deep := mdmd.List{Children: []mdmd.Node{item(
		mdmd.List{Loose: true, Children: []mdmd.Node{item(
			mdmd.List{Children: []mdmd.Node{item(para(text("x")))}},
		)}},
	)}}
	c := mdmd.NewRenderContext()
	require.Equal(t, 1, c.Depth())
	_, err := mdmd.Render(c, deep)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Depth())
	assert.False(t, c.Suppressed())
}

func TestRender_SuppressionStackBalancedOnError(t *testing.T) {
	t.Parallel()
	bad := mdmd.List{Children: []mdmd.Node{item(mdmd.Table{Alignments: []mdmd.Alignment{mdmd.Alignment(9)}})}}
	c := mdmd.NewRenderContext()
	_, err := mdmd.Render(c, bad)
	require.Error(t, err)
	assert.Equal(t, 1, c.Depth())
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	t.Run("default alignment omits the marker row", func(t *testing.T) {
		t.Parallel()
		header := row("a", "b")
		table := mdmd.Table{
			Header:     &header,
			Alignments: []mdmd.Alignment{mdmd.AlignNone, mdmd.AlignNone},
			Children:   []mdmd.Node{row("1", "2")},
		}
		assert.Equal(t, "\n|a|b|\n\n|1|2|\n\n", render(t, table))
	})

	t.Run("marker row follows the header", func(t *testing.T) {
		t.Parallel()
		header := row("a", "b", "c", "d")
		table := mdmd.Table{
			Header:     &header,
			Alignments: []mdmd.Alignment{mdmd.AlignLeft, mdmd.AlignCenter, mdmd.AlignRight, mdmd.AlignNone},
			Children:   []mdmd.Node{row("1", "2", "3", "4")},
		}
		want := "\n|a|b|c|d|\n|:-----|:----:|-----:|:-----|\n|1|2|3|4|\n\n"
		assert.Equal(t, want, render(t, table))
	})

	t.Run("table without header", func(t *testing.T) {
		t.Parallel()
		table := mdmd.Table{
			Alignments: []mdmd.Alignment{mdmd.AlignRight},
			Children:   []mdmd.Node{row("1"), row("2")},
		}
		assert.Equal(t, "\n|-----:|\n|1|\n|2|\n\n", render(t, table))
	})

	t.Run("cells are escaped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "|\\$1|\\#2|\n", render(t, row("$1", "#2")))
	})

	t.Run("invalid alignment fails", func(t *testing.T) {
		t.Parallel()
		table := mdmd.Table{Alignments: []mdmd.Alignment{mdmd.AlignLeft, mdmd.Alignment(7)}}
		_, err := mdmd.Render(mdmd.NewRenderContext(), mdmd.Document{Children: []mdmd.Node{table}})
		require.ErrorIs(t, err, mdmd.ErrInvalidAlignment)
		assert.Contains(t, err.Error(), "Table[0]")
		assert.Contains(t, err.Error(), "column 1")
	})
}

func TestRender_Packages(t *testing.T) {
	t.Parallel()

	t.Run("repeated registrations are deduplicated", func(t *testing.T) {
		t.Parallel()
		doc := mdmd.Document{Children: []mdmd.Node{para(
			mdmd.Image{Src: "a.png"},
			mdmd.Strikethrough{Children: []mdmd.Node{text("x")}},
			mdmd.Image{Src: "b.png"},
			mdmd.Strikethrough{Children: []mdmd.Node{text("y")}},
		)}}
		c := mdmd.NewRenderContext()
		_, err := mdmd.Render(c, doc)
		require.NoError(t, err)
		assert.Equal(t, []string{mdmd.PackageGraphics, mdmd.PackageStrikethrough}, c.Packages.Names())
		opts, ok := c.Packages.Options(mdmd.PackageStrikethrough)
		require.True(t, ok)
		assert.Equal(t, []string{"normalem"}, opts)
	})

	t.Run("each kind registers its package", func(t *testing.T) {
		t.Parallel()
		doc := mdmd.Document{Children: []mdmd.Node{
			mdmd.CodeBlock{Content: "x\n"},
			para(mdmd.Link{Target: "u", Children: []mdmd.Node{text("l")}}),
		}}
		c := mdmd.NewRenderContext()
		_, err := mdmd.Render(c, doc)
		require.NoError(t, err)
		assert.Equal(t, []string{mdmd.PackageListings, mdmd.PackageHyperlink}, c.Packages.Names())
	})

	t.Run("plain text registers nothing", func(t *testing.T) {
		t.Parallel()
		c := mdmd.NewRenderContext()
		_, err := mdmd.Render(c, para(text("plain")))
		require.NoError(t, err)
		assert.Equal(t, 0, c.Packages.Len())
	})
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil root", func(t *testing.T) {
		t.Parallel()
		_, err := mdmd.Render(mdmd.NewRenderContext(), nil)
		require.ErrorIs(t, err, mdmd.ErrUnknownNodeKind)
	})

	t.Run("nil child reports its position", func(t *testing.T) {
		t.Parallel()
		doc := mdmd.Document{Children: []mdmd.Node{para(text("a")), nil}}
		_, err := mdmd.Render(mdmd.NewRenderContext(), doc)
		require.ErrorIs(t, err, mdmd.ErrUnknownNodeKind)
		assert.Contains(t, err.Error(), "child 1")
	})
}

func TestRender_ZeroValueContext(t *testing.T) {
	t.Parallel()
	var c mdmd.RenderContext
	got, err := mdmd.Render(&c, mdmd.List{Children: []mdmd.Node{item(para(text("a")))}})
	require.NoError(t, err)
	assert.Equal(t, "\n\n- a\n\n", got)
	assert.Equal(t, 1, c.Depth())
}

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("preamble and body", func(t *testing.T) {
		t.Parallel()
		doc := mdmd.Document{Children: []mdmd.Node{para(mdmd.Image{Src: "a.png"})}}
		out, err := mdmd.Convert(doc)
		require.NoError(t, err)
		assert.Equal(t, "\\usepackage{graphicx}\n", out.Preamble)
		assert.Equal(t, "![](a.png)\n", out.Body)
		assert.Equal(t, "\\usepackage{graphicx}\n\n![](a.png)\n", out.String())
	})

	t.Run("no packages", func(t *testing.T) {
		t.Parallel()
		out, err := mdmd.Convert(para(text("x")))
		require.NoError(t, err)
		assert.Equal(t, "x\n", out.String())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		_, err := mdmd.Convert(mdmd.Table{Alignments: []mdmd.Alignment{mdmd.Alignment(-1)}})
		require.ErrorIs(t, err, mdmd.ErrInvalidAlignment)
	})
}

func TestConvert_IndependentContexts(t *testing.T) {
	t.Parallel()
	doc := mdmd.Document{Children: []mdmd.Node{
		mdmd.List{Children: []mdmd.Node{item(para(mdmd.Strikethrough{Children: []mdmd.Node{text("x")}}))}},
		para(mdmd.Image{Src: "a.png"}),
	}}
	want, err := mdmd.Convert(doc)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]mdmd.Output, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = mdmd.Convert(doc)
		}()
	}
	wg.Wait()
	for i, got := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, got)
	}
}
