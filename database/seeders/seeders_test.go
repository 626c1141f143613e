package seeders

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/eduportal/app/repositories"
)

func TestRunAllSeedsCatalogOnce(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var out bytes.Buffer

	require.NoError(t, RunAll(ctx, store, &out))
	require.NoError(t, RunAll(ctx, store, &out))

	courses, err := store.Courses.All(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, len(DemoCourses))
	assert.Contains(t, out.String(), "Running seeder: courses")
}
