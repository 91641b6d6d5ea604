package atomize

// Test Plan for Binding Classification:
// - bindings referencing __name__ replicate per file, logger shape gets
//   its own reason text
// - bindings referencing __file__ replicate per file
// - dict/list/set literals warn about unclear sharing semantics
// - plain literals, calls, and annotation-only declarations centralize
// - classification depends only on the expression tree, not the text
// - ClassifyModuleBindings classifies every simple assignment in order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-gris/atomyst/internal/parser"
)

func TestClassifyBinding(t *testing.T) {
	t.Parallel()

	nameRef := func(ident string) *parser.Expr {
		return &parser.Expr{Kind: parser.ExprName, Ident: ident}
	}
	loggerCall := &parser.Expr{
		Kind: parser.ExprCall,
		Children: []*parser.Expr{
			{
				Kind:     parser.ExprAttribute,
				Ident:    "getLogger",
				Children: []*parser.Expr{nameRef("logging")},
			},
			nameRef("__name__"),
		},
	}

	tests := []struct {
		name     string
		rhs      *parser.Expr
		strategy BindingStrategy
	}{
		{name: "logger acquisition", rhs: loggerCall, strategy: ReplicatePerFile},
		{name: "bare __name__", rhs: nameRef("__name__"), strategy: ReplicatePerFile},
		{
			name: "__file__ in call",
			rhs: &parser.Expr{
				Kind: parser.ExprCall,
				Children: []*parser.Expr{
					{Kind: parser.ExprAttribute, Ident: "dirname", Children: []*parser.Expr{nameRef("os")}},
					nameRef("__file__"),
				},
			},
			strategy: ReplicatePerFile,
		},
		{name: "dict literal", rhs: &parser.Expr{Kind: parser.ExprDict}, strategy: Warn},
		{name: "list literal", rhs: &parser.Expr{Kind: parser.ExprList}, strategy: Warn},
		{name: "set literal", rhs: &parser.Expr{Kind: parser.ExprSet}, strategy: Warn},
		{name: "string literal", rhs: &parser.Expr{Kind: parser.ExprString}, strategy: Centralize},
		{name: "plain call", rhs: &parser.Expr{Kind: parser.ExprCall, Children: []*parser.Expr{nameRef("frozenset")}}, strategy: Centralize},
		{name: "annotation only", rhs: nil, strategy: Centralize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := ClassifyBinding("X", tt.rhs, "X = ...")
			assert.Equal(t, tt.strategy, c.Strategy)
			assert.NotEmpty(t, c.Reason)
		})
	}
}

func TestClassifyBindingLoggerReason(t *testing.T) {
	t.Parallel()

	rhs := &parser.Expr{
		Kind: parser.ExprCall,
		Children: []*parser.Expr{
			{Kind: parser.ExprAttribute, Ident: "getLogger", Children: []*parser.Expr{{Kind: parser.ExprName, Ident: "logging"}}},
			{Kind: parser.ExprName, Ident: "__name__"},
		},
	}
	c := ClassifyBinding("logger", rhs, "logger = logging.getLogger(__name__)")
	assert.Equal(t, ReplicatePerFile, c.Strategy)
	assert.Contains(t, c.Reason, "logger")
}

func TestClassifyModuleBindings(t *testing.T) {
	t.Parallel()

	source := `import logging

logger = logging.getLogger(__name__)
MAX_SIZE = 100
CACHE = {}
__all__ = ["a"]
`
	mod, err := parser.New().Parse([]byte(source))
	require.NoError(t, err)

	out := ClassifyModuleBindings(mod, NewSourceIndex(source))
	require.Len(t, out, 3)

	assert.Equal(t, "logger", out[0].Name)
	assert.Equal(t, ReplicatePerFile, out[0].Strategy)
	assert.Equal(t, "logger = logging.getLogger(__name__)", out[0].SourceText)

	assert.Equal(t, "MAX_SIZE", out[1].Name)
	assert.Equal(t, Centralize, out[1].Strategy)

	assert.Equal(t, "CACHE", out[2].Name)
	assert.Equal(t, Warn, out[2].Strategy)
}
