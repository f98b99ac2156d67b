package mongo

import (
	"testing"

	"courtbook/internal/bookings/repository"

	"github.com/stretchr/testify/assert"
)

func TestCollections_MatchRepositories(t *testing.T) {
	var names []string
	for _, def := range Collections {
		names = append(names, def.Name)
		assert.NotNil(t, def.Validator, def.Name)
	}

	assert.ElementsMatch(t, []string{
		repository.CollectionName,
		repository.LeaseCollectionName,
		repository.CourtsCollectionName,
		repository.CoachesCollectionName,
		repository.PricingRulesCollectionName,
	}, names)
}
