package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENABLE_CORS", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load(logger.NewNopLogger())
	require.NoError(t, err)

	assert.True(t, cfg.Http.EnableCORS)
	assert.Equal(t, "8080", cfg.Http.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Nil(t, cfg.Db)
	assert.Equal(t, "/graphql", cfg.GraphQL.Path)
	assert.Equal(t, "Product Catalog API v1.0", cfg.GraphQL.AboutMessage)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3*time.Minute, cfg.Redis.ProductTTL)
}

func TestLoad_CORSDisabled(t *testing.T) {
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := Load(logger.NewNopLogger())
	require.NoError(t, err)
	assert.False(t, cfg.Http.EnableCORS)
}

func TestLoad_InvalidCORS(t *testing.T) {
	t.Setenv("ENABLE_CORS", "maybe")

	_, err := Load(logger.NewNopLogger())
	require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}

func TestLoad_CORSBoolForms(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "TRUE": true, "1": true, "0": false, "False": false} {
		t.Setenv("ENABLE_CORS", value)

		cfg, err := Load(logger.NewNopLogger())
		require.NoError(t, err, value)
		assert.Equal(t, want, cfg.Http.EnableCORS, value)
	}
}

func TestLoad_UnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load(logger.NewNopLogger())
	require.ErrorIs(t, err, e.ErrUnknownStoreDriver)
}

func TestLoad_PostgresRequiresCredentials(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.NewNopLogger())
	require.Error(t, err)
}

func TestLoad_KafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load(logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoad_GraphQLPathNormalized(t *testing.T) {
	t.Setenv("GRAPHQL_PATH", "api/graphql")

	cfg, err := Load(logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "/api/graphql", cfg.GraphQL.Path)
}
