package widgets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/glasswing-ui/glasswing/fixture"
	"github.com/glasswing-ui/glasswing/harness"
)

func loadPage(t *testing.T, src string) (*fixture.Fixture, *harness.Locator) {
	t.Helper()
	f, err := fixture.Load(src)
	require.NoError(t, err)
	return f, harness.NewLocator(f.Environment())
}

// pageNode resolves a node for test setup code that wires widget
// behavior onto the fixture.
func pageNode(t *testing.T, f *fixture.Fixture, selector string) *html.Node {
	t.Helper()
	el, err := harness.NewLocator(f.Environment()).Find(context.Background(), selector)
	require.NoError(t, err)
	return el.(*fixture.Element).Node()
}

func pageNodes(t *testing.T, f *fixture.Fixture, selector string) []*html.Node {
	t.Helper()
	els, err := f.Environment().QueryAll(context.Background(), selector)
	require.NoError(t, err)
	nodes := make([]*html.Node, len(els))
	for i, el := range els {
		nodes[i] = el.(*fixture.Element).Node()
	}
	return nodes
}
