package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) LoadDemographics(ctx context.Context) (map[string]domain.RegionDemographics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.RegionDemographics), args.Error(1)
}

func (m *mockLoader) LoadDensity(ctx context.Context) (map[string]domain.BusinessDensity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BusinessDensity), args.Error(1)
}

func (m *mockLoader) LoadAssumptions(ctx context.Context) (map[string]domain.Assumptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Assumptions), args.Error(1)
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	loader := new(mockLoader)
	r := NewRegistry(map[string]LoaderFactory{
		"csv": func(ctx context.Context, cfg *config.Config) (Loader, error) { return loader, nil },
	})

	require.NoError(t, r.Register("duckdb", func(ctx context.Context, cfg *config.Config) (Loader, error) {
		return nil, errors.New("no database")
	}))
	assert.Equal(t, []string{"csv", "duckdb"}, r.ListSources())

	got, err := r.Create(context.Background(), "csv", &config.Config{})
	require.NoError(t, err)
	assert.Same(t, loader, got)

	_, err = r.Create(context.Background(), "duckdb", &config.Config{})
	assert.EqualError(t, err, "no database")

	_, err = r.Create(context.Background(), "parquet", &config.Config{})
	assert.Error(t, err)
}

func TestRegistry_RegisterValidation(t *testing.T) {
	r := NewRegistry(nil)
	factory := func(ctx context.Context, cfg *config.Config) (Loader, error) { return nil, nil }

	assert.Error(t, r.Register("", factory))
	assert.Error(t, r.Register("csv", nil))
	require.NoError(t, r.Register("csv", factory))
	assert.Error(t, r.Register("csv", factory))
}

func TestLoad(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		loader := new(mockLoader)
		loader.On("LoadDemographics", mock.Anything).Return(map[string]domain.RegionDemographics{"Kazan": {TargetAgeBandPopulation: 41800}}, nil)
		loader.On("LoadDensity", mock.Anything).Return(map[string]domain.BusinessDensity{"Kazan": {CompetitorCount: 376}}, nil)
		loader.On("LoadAssumptions", mock.Anything).Return(map[string]domain.Assumptions{"Kazan": {"area": 40}}, nil)

		regs, err := Load(context.Background(), loader)
		require.NoError(t, err)
		assert.Equal(t, 41800, regs.Demographics["Kazan"].TargetAgeBandPopulation)
		assert.Equal(t, 376, regs.Density["Kazan"].CompetitorCount)
		assert.Equal(t, 40.0, regs.Assumptions["Kazan"]["area"])
		loader.AssertExpectations(t)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		loader := new(mockLoader)
		loader.On("LoadDemographics", mock.Anything).Return(map[string]domain.RegionDemographics{}, nil)
		loader.On("LoadDensity", mock.Anything).Return(nil, errors.New("file not found"))

		_, err := Load(context.Background(), loader)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "business density")
		loader.AssertNotCalled(t, "LoadAssumptions", mock.Anything)
	})
}
