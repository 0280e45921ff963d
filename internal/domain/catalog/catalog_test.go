package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/stint/internal/domain/catalog"
)

func TestCatalog_InsertAndLookupRoundTrip(t *testing.T) {
	cat := catalog.New()

	leaf, err := cat.Insert([]string{"work", "project-x"}, true)
	require.NoError(t, err)
	require.NotEmpty(t, leaf.ID)

	path, err := cat.LookupPath("project-x")
	require.NoError(t, err)
	require.Equal(t, "/work/project-x", path)

	id, err := cat.LookupID("project-x")
	require.NoError(t, err)
	require.Equal(t, leaf.ID, id)

	// Unrelated insertions must not disturb the identifier.
	_, err = cat.Insert([]string{"home", "chores"}, true)
	require.NoError(t, err)

	again, err := cat.LookupID("project-x")
	require.NoError(t, err)
	require.Equal(t, id, again)
}

func TestCatalog_LookupNotFound(t *testing.T) {
	cat := catalog.New()
	_, err := cat.LookupID("nope")
	require.ErrorIs(t, err, catalog.ErrActivityNotFound)
	_, err = cat.LookupPath("nope")
	require.ErrorIs(t, err, catalog.ErrActivityNotFound)
}

func TestCatalog_MissingAncestorLeavesCatalogUnchanged(t *testing.T) {
	cat := catalog.New()
	_, err := cat.Insert([]string{"work"}, false)
	require.NoError(t, err)

	_, err = cat.Insert([]string{"work", "missing", "leaf"}, false)
	require.ErrorIs(t, err, catalog.ErrMissingAncestor)

	// No half-created intermediate node.
	_, err = cat.LookupID("missing")
	require.ErrorIs(t, err, catalog.ErrActivityNotFound)
	_, err = cat.LookupID("leaf")
	require.ErrorIs(t, err, catalog.ErrActivityNotFound)

	require.Len(t, cat.Roots(), 1)
	require.Empty(t, cat.Roots()[0].Children)
}

func TestCatalog_MalformedPath(t *testing.T) {
	cat := catalog.New()

	_, err := cat.Insert(nil, true)
	require.ErrorIs(t, err, catalog.ErrMalformedPath)

	_, err = cat.Insert([]string{"work", "", "leaf"}, true)
	require.ErrorIs(t, err, catalog.ErrMalformedPath)
	require.Empty(t, cat.Roots())
}

func TestCatalog_DuplicateNamesFirstMatchWins(t *testing.T) {
	cat := catalog.New()
	_, err := cat.Insert([]string{"work", "meetings"}, true)
	require.NoError(t, err)
	_, err = cat.Insert([]string{"home", "meetings"}, true)
	require.NoError(t, err)

	// Pre-order traversal finds the node under the earlier-inserted root.
	path, err := cat.LookupPath("meetings")
	require.NoError(t, err)
	require.Equal(t, "/work/meetings", path)
}

func TestCatalog_DuplicateLeafGetsFreshIdentifier(t *testing.T) {
	cat := catalog.New()
	first, err := cat.Insert([]string{"work", "review"}, true)
	require.NoError(t, err)
	second, err := cat.Insert([]string{"work", "review"}, false)
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Len(t, cat.Roots()[0].Children, 2)

	// Lookup still resolves to the first match.
	id, err := cat.LookupID("review")
	require.NoError(t, err)
	require.Equal(t, first.ID, id)
}
