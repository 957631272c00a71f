package decl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/qjsc/compiler"
	"github.com/ardnew/qjsc/log"
	"github.com/ardnew/qjsc/pkg"
)

const coreDecl = `package: core
components:
  - name: Context
    base: CoreObject
    properties:
      buildIdentifier: '""'
  - name: Item
    base: CoreObject
    properties:
      width: 0
      visible: true
  - name: Rectangle
    base: Item
    properties:
      color: "'black'"
  - name: Text
    base: Item
  - name: Unused
    base: Item
`

const appDecl = `package: app
components:
  - name: main
    declaration: false
    base: Rectangle
    uses: [Item]
    children:
      - id: label
        type: Text
        properties:
          text: "'hello'"
`

const deTranslation = `language: de
contexts:
  - name: Main
    messages:
      - source: hello
        state: just-obsoleted
        text: hallo
      - source: bye
        text: tschüss
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func project(t *testing.T) string {
	t.Helper()

	return writeFiles(t, map[string]string{
		"core/core.qjs.yaml":    coreDecl,
		"app/main.qjs.yaml":     appDecl,
		"core/core.js":          "exports.version = 1",
		"utils/format.js":       "// @using {core.Unused}",
		"l10n/de.l10n.yaml":     deTranslation,
		"l10n/base.l10n.yaml":   "contexts: []\n",
		".core.js":              "platform.init()",
		".hidden/skip.qjs.yaml": "not: [valid",
		"README.md":             "ignored",
	})
}

func TestLoadTree(t *testing.T) {
	tree, err := LoadTree(context.Background(), project(t))
	require.NoError(t, err)

	require.Len(t, tree.Files, 2)
	assert.Equal(t, "app", tree.Files[0].Package)
	assert.Equal(t, "core", tree.Files[1].Package)

	require.Len(t, tree.Imports, 2)
	assert.Equal(t, "core/core.js", tree.Imports[0].Name)
	assert.Equal(t, "utils/format.js", tree.Imports[1].Name)

	require.Len(t, tree.Translations, 2)
	assert.Equal(t, "platform.init()", tree.InitJS)

	main := tree.Files[0].Components[0]
	assert.False(t, main.IsDeclaration())
	assert.True(t, tree.Files[1].Components[0].IsDeclaration())
}

func TestLoadTree_Errors(t *testing.T) {
	bad := writeFiles(t, map[string]string{"x.qjs.yaml": "package: [oops"})

	_, err := LoadTree(context.Background(), bad)
	require.ErrorIs(t, err, pkg.ErrParse)

	unknown := writeFiles(t, map[string]string{"x.qjs.yaml": "package: a\nextra: 1\n"})

	_, err = LoadTree(context.Background(), unknown)
	require.ErrorIs(t, err, pkg.ErrParse)

	nameless := writeFiles(t, map[string]string{"x.qjs.yaml": "components:\n  - base: Item\n"})

	_, err = LoadTree(context.Background(), nameless)
	require.ErrorIs(t, err, pkg.ErrInvalidFormat)

	_, err = LoadTree(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, pkg.ErrReadInput)
}

func TestBuildID(t *testing.T) {
	dir := project(t)

	a, err := LoadTree(context.Background(), dir)
	require.NoError(t, err)

	b, err := LoadTree(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, BuildID(a), BuildID(b))
	assert.NotEmpty(t, BuildID(a))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "core", "core.js"), []byte("exports.version = 2"), 0o644))

	c, err := LoadTree(context.Background(), dir)
	require.NoError(t, err)
	assert.NotEqual(t, BuildID(a), BuildID(c))
}

func TestRegisterAndGenerate(t *testing.T) {
	tree, err := LoadTree(context.Background(), project(t))
	require.NoError(t, err)

	s := compiler.New("qml", "b1", compiler.WithLogger(log.Discard()))
	require.NoError(t, Register(s, tree))

	assert.Equal(t, map[string]map[string]map[string]string{
		"de": {"hello": {"Main": "hallo"}},
	}, map[string]map[string]map[string]string(s.L10n()))

	require.NoError(t, s.ScanUsing())

	gen, err := s.GenerateComponents(context.Background())
	require.NoError(t, err)

	var order []string
	for _, g := range gen {
		order = append(order, g.Type)
	}

	assert.Equal(t, []string{
		"core.Context",
		"core.Item",
		"core.Rectangle",
		"app.UiMain",
		"core.Unused",
		"core.Text",
	}, order)

	ctx := gen[0]
	assert.Contains(t, ctx.Prototype, `ContextPrototype.buildIdentifier = "b1"`)

	item := gen[1]
	assert.Contains(t, item.Prototype, "ItemPrototype.visible = true")
	assert.Contains(t, item.Prototype, "ItemPrototype.width = 0")

	main := gen[3]
	assert.Contains(t, main.Code, "var UiMainBaseComponent = _globals.core.Rectangle")
	assert.Contains(t, main.Code, "var UiMainComponent = _globals.app.UiMain = function(parent, row) {")
	assert.Contains(t, main.Prototype, "UiMainPrototype.$uses = ['core.Item']")
	assert.Contains(t, main.Prototype, "var label = new qml.core.Text($this)")
	assert.Contains(t, main.Prototype, "$this._setId(label, 'label')")
	assert.Contains(t, main.Prototype, "label.text = 'hello'")
	assert.True(t, strings.HasPrefix(main.Prototype,
		"\tvar UiMainPrototype = UiMainComponent.prototype = Object.create(UiMainBasePrototype)\n"))
}

func TestRegister_Duplicate(t *testing.T) {
	tree, err := LoadTree(context.Background(), project(t), project(t))
	require.NoError(t, err)

	s := compiler.New("qml", "b1", compiler.WithLogger(log.Discard()))
	require.ErrorIs(t, Register(s, tree), compiler.ErrDuplicateComponent)
}

func TestBody_AssignProperty(t *testing.T) {
	b, err := NewBody(Component{
		Name:       "Context",
		Properties: map[string]any{"buildIdentifier": `""`, "title": "'x'"},
	})
	require.NoError(t, err)

	assert.True(t, b.AssignProperty("buildIdentifier", `"abc"`))
	assert.False(t, b.AssignProperty("missing", "1"))
	assert.Equal(t, []Property{
		{Name: "buildIdentifier", Value: `"abc"`},
		{Name: "title", Value: "'x'"},
	}, b.Properties())
}
