package geocache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MakerMama/afterschool-finder/core/geocode"
	"github.com/MakerMama/afterschool-finder/core/model"
)

func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})
	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisStoreIntegration(t *testing.T) {
	addr := startRedis(t)
	ctx := context.Background()

	store, err := NewRedisStore(ctx, RedisConfig{Addr: addr, TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get(ctx, "1 Main St")
	require.NoError(t, err)
	assert.False(t, ok)

	want := geocode.Entry{Coordinate: model.Coordinate{Latitude: 40.7, Longitude: -74}, Resolved: true}
	require.NoError(t, store.Set(ctx, "1 Main St", want))
	require.NoError(t, store.Set(ctx, "Nowhere", geocode.Entry{}))

	got, ok, err := store.Get(ctx, "1 Main St")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok, err = store.Get(ctx, "Nowhere")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, got.Resolved)
}

func TestRedisStoreBacksCache(t *testing.T) {
	addr := startRedis(t)
	ctx := context.Background()
	store, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "test:"})
	require.NoError(t, err)
	defer store.Close()

	calls := 0
	p := geocode.ProviderFunc(func(context.Context, string) (model.Coordinate, bool, error) {
		calls++
		return model.Coordinate{Latitude: 1, Longitude: 2}, true, nil
	})
	first := geocode.NewCache(p, geocode.WithStore(store), geocode.WithMinInterval(0))
	second := geocode.NewCache(p, geocode.WithStore(store), geocode.WithMinInterval(0))

	_, ok := first.Resolve(ctx, "shared")
	require.True(t, ok)
	_, ok = second.Resolve(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, 1, calls)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
