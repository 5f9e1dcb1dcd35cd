package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownFunction(t *testing.T) {
	doc := Document{Nodes: []Node{{
		Doc: &DocComment{
			Description: "Test function",
			Params:      []Param{{Name: "x", Description: "Input parameter"}},
			Return:      &Return{Description: "Output value"},
		},
		Decl: &Function{Name: "test", ReturnType: "int", Params: []string{"int x"}},
	}}}

	md := RenderMarkdown(doc)
	assert.Contains(t, md, "## Function `test`")
	assert.Contains(t, md, "Test function")
	assert.Contains(t, md, "**Parameters**:")
	assert.Contains(t, md, "- `x`: Input parameter")
	assert.Contains(t, md, "**Returns**:")
	assert.Contains(t, md, "`int`: Output value")
}

func TestRenderMarkdownAddExample(t *testing.T) {
	src := "/** Adds two numbers.\n * @param x The first parameter\n * @param y The second parameter\n * @return The sum of x and y\n */\nint add(int x, int y);"
	doc, err := Build(src)
	require.NoError(t, err)

	want := "## Function `add`\n\n" +
		"```c\nint add(int x, int y)\n```\n\n" +
		"Adds two numbers.\n\n" +
		"**Returns**:\n\n`int`: The sum of x and y\n\n" +
		"**Parameters**:\n" +
		"- `x`: The first parameter\n" +
		"- `y`: The second parameter\n"
	assert.Equal(t, want, RenderMarkdown(doc))
}

func TestRenderMarkdownKinds(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "undocumented struct",
			node: Node{Decl: &Struct{Name: "Point", Members: []string{"int x", "int y"}}},
			want: "## Struct `Point`\n\nNo documentation available\n\n**Members**:\n- `int x`\n- `int y`\n",
		},
		{
			name: "documented enum",
			node: Node{
				Doc:  &DocComment{Description: "Primary colors."},
				Decl: &Enum{Name: "Color", Variants: []string{"RED", "GREEN"}},
			},
			want: "## Enum `Color`\n\nPrimary colors.\n\n**Variants**:\n- `RED`\n- `GREEN`\n",
		},
		{
			name: "undocumented function lists bare names",
			node: Node{Decl: &Function{Name: "scale", ReturnType: "float", Params: []string{"float v", "const int* count"}}},
			want: "## Function `scale`\n\n```c\nfloat scale(float v, const int* count)\n```\n\n" +
				"No documentation available\n\n**Returns**:\n\n`float`: No description\n\n" +
				"**Parameters**:\n- `v`\n- `count`\n",
		},
		{
			name: "documented function with missing param and return",
			node: Node{
				Doc:  &DocComment{Description: "Clamps.", Params: []Param{{Name: "v", Description: "value"}}},
				Decl: &Function{Name: "clamp", ReturnType: "int", Params: []string{"int v", "int hi"}},
			},
			want: "## Function `clamp`\n\n```c\nint clamp(int v, int hi)\n```\n\n" +
				"Clamps.\n\n**Returns**:\n\n`int`: No description\n\n" +
				"**Parameters**:\n- `v`: value\n- `hi`: No description\n",
		},
		{
			name: "function without params",
			node: Node{Decl: &Function{Name: "tick", ReturnType: "void"}},
			want: "## Function `tick`\n\n```c\nvoid tick()\n```\n\nNo documentation available\n\n**Parameters**:\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderMarkdown(Document{Nodes: []Node{tt.node}}))
		})
	}
}

func TestRenderMarkdownVoidNeverHasReturns(t *testing.T) {
	doc := Document{Nodes: []Node{{
		Doc:  &DocComment{Description: "Resets.", Return: &Return{Description: "ignored"}},
		Decl: &Function{Name: "reset", ReturnType: "void", Params: []string{"void"}},
	}}}

	md := RenderMarkdown(doc)
	assert.NotContains(t, md, "**Returns**:")
	assert.NotContains(t, md, "ignored")
}

func TestRenderMarkdownMatchesParamByLastToken(t *testing.T) {
	doc, err := Build("/**\n * @param count how many\n */\nint total(const int* count);")
	require.NoError(t, err)
	assert.Contains(t, RenderMarkdown(doc), "- `count`: how many\n")
}

func TestRenderMarkdownJoinsAndSkipsEmptyNodes(t *testing.T) {
	doc := Document{Nodes: []Node{
		{Decl: &Enum{Name: "A", Variants: []string{"X"}}},
		{Doc: &DocComment{Description: "orphan"}},
		{Decl: &Enum{Name: "B", Variants: []string{"Y"}}},
	}}

	md := RenderMarkdown(doc)
	assert.NotContains(t, md, "orphan")
	parts := strings.Split(md, "\n\n\n")
	require.Len(t, parts, 2)
	assert.True(t, strings.HasPrefix(parts[0], "## Enum `A`"))
	assert.True(t, strings.HasPrefix(parts[1], "## Enum `B`"))
}

func TestRenderMarkdownEmptyDocument(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(Document{}))
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "abc"},
		{" abc", " abc"},
		{"   abc", " &nbsp;&nbsp;abc"},
		{"\t\tabc", "\t&nbsp;abc"},
		{"line1\n    indented", "line1\n &nbsp;&nbsp;&nbsp;indented"},
		{"  - item\n    - nested", " &nbsp;- item\n &nbsp;&nbsp;&nbsp;- nested"},
		{"   ", " &nbsp;&nbsp;"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeMarkdown(tt.in))
		})
	}
}

func TestParamName(t *testing.T) {
	assert.Equal(t, "count", paramName("const int* count"))
	assert.Equal(t, "*count", paramName("int *count"))
	assert.Equal(t, "x", paramName("int\tx"))
	assert.Equal(t, "void", paramName("void"))
}
