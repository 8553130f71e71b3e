package cdpdriver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasswing-ui/glasswing/harness"
)

func newFakeEnvironment(stubs ...stub) (*fakeRunner, harness.Environment) {
	runner := &fakeRunner{stubs: stubs}
	d := NewWithRunner(runner, nil)
	return runner, d.Environment()
}

func TestEnvironmentQueryAll(t *testing.T) {
	ctx := context.Background()

	t.Run("builds one handle per match", func(t *testing.T) {
		_, env := newFakeEnvironment(stub{needle: `querySelectorAll(".gw-tab").length`, result: "3"})
		els, err := env.QueryAll(ctx, ".gw-tab")
		require.NoError(t, err)
		require.Len(t, els, 3)

		// Handles address successive indexes of the same live query.
		second := els[1].(*Element)
		assert.Equal(t, elementExpr(documentRootExpr, ".gw-tab", 1), second.expr)
	})

	t.Run("zero matches yield an empty slice", func(t *testing.T) {
		_, env := newFakeEnvironment(stub{needle: `.length`, result: "0"})
		els, err := env.QueryAll(ctx, ".missing")
		require.NoError(t, err)
		assert.NotNil(t, els)
		assert.Empty(t, els)
	})

	t.Run("vanished scope root reports staleness", func(t *testing.T) {
		_, env := newFakeEnvironment(stub{needle: `.length`, result: "-1"})
		_, err := env.QueryAll(ctx, ".gw-tab")
		assert.ErrorIs(t, err, harness.ErrStaleElement)
	})
}

func TestEnvironmentRootElement(t *testing.T) {
	ctx := context.Background()
	_, env := newFakeEnvironment(stub{needle: "return true;", result: `{"value":true}`})

	el, err := env.RootElement(ctx)
	require.NoError(t, err)
	assert.Equal(t, documentRootExpr, el.(*Element).expr)
}

func TestEnvironmentChildAndDocumentRoot(t *testing.T) {
	ctx := context.Background()
	_, env := newFakeEnvironment(stub{needle: `.length`, result: "1"})

	els, err := env.QueryAll(ctx, ".gw-drawer")
	require.NoError(t, err)
	child, err := env.ChildEnvironment(els[0])
	require.NoError(t, err)
	assert.Equal(t, els[0].(*Element).expr, child.(*environment).rootExpr)

	// Escaping back to the document root from a nested scope.
	doc := child.DocumentRoot()
	assert.Equal(t, documentRootExpr, doc.(*environment).rootExpr)

	_, err = env.ChildEnvironment(nil)
	assert.Error(t, err, "foreign handles cannot scope a cdp environment")
}

func TestEnvironmentNextID(t *testing.T) {
	_, env := newFakeEnvironment()
	a := env.NextID("gw")
	b := env.NextID("gw")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "gw-")
}
