package graphql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphQLDate_Marshal(t *testing.T) {
	d := GraphQLDate{Time: time.Date(2024, 2, 3, 4, 5, 6, 789_000_000, time.FixedZone("X", 3600))}

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-03T03:05:06.789Z"`, string(b))
}

func TestGraphQLDate_Unmarshal(t *testing.T) {
	var d GraphQLDate
	require.NoError(t, d.UnmarshalGraphQL("2024-02-03T03:05:06.789Z"))
	assert.Equal(t, 2024, d.Year())

	assert.Error(t, d.UnmarshalGraphQL("yesterday"))
	assert.Error(t, d.UnmarshalGraphQL(42))
	assert.True(t, d.ImplementsGraphQLType("GraphQLDate"))
}
