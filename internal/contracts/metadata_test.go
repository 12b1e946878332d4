package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Adding a status must force an update of every table that enumerates the
// taxonomy. These checks stand in for an exhaustive-match compile error.
func TestEveryStatusHasMetadata(t *testing.T) {
	for _, s := range AllStatuses {
		meta, ok := MetadataFor(s)
		require.True(t, ok, "missing metadata for %s", s)
		assert.Equal(t, s, meta.Status)
		assert.NotEmpty(t, meta.Label)
		assert.NotEmpty(t, meta.Icon)
		assert.NotEmpty(t, meta.Description)
	}
	assert.Len(t, statusMetadata, len(AllStatuses))
}

func TestEveryStatusHasTransitionEntry(t *testing.T) {
	for _, s := range AllStatuses {
		_, ok := allowedTransitions[s]
		assert.True(t, ok, "missing transition entry for %s", s)
	}
	assert.Len(t, allowedTransitions, len(AllStatuses))
}

func TestStatusCatalogFollowsProgressionOrder(t *testing.T) {
	catalog := StatusCatalog()
	require.Len(t, catalog, len(AllStatuses))
	for i, meta := range catalog {
		assert.Equal(t, AllStatuses[i], meta.Status)
	}
}

func TestMetadataForUnknownStatus(t *testing.T) {
	_, ok := MetadataFor(ContractStatus("retouched"))
	assert.False(t, ok)
}
