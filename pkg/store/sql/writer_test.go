package sql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() domain.Registries {
	return domain.Registries{
		Demographics: map[string]domain.RegionDemographics{
			"Perm":  {TargetAgeBandPopulation: 25000, AvgRentPerAreaUnit: 650},
			"Kazan": {TargetAgeBandPopulation: 41800, AvgRentPerAreaUnit: 1050},
		},
		Density: map[string]domain.BusinessDensity{
			"Kazan": {CompetitorCount: 376},
		},
		Assumptions: map[string]domain.Assumptions{
			"Kazan": {"marketing": 15000, "area_sqm": 40},
		},
	}
}

func newWriterMock(t *testing.T) (*Writer, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	writer, err := NewWriter(db)
	require.NoError(t, err)
	return writer, mock
}

func expectTruncate(mock sqlmock.Sqlmock) {
	for _, query := range truncateQueries {
		mock.ExpectExec(regexp.QuoteMeta(query)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestWriter_Save(t *testing.T) {
	// Given
	writer, mock := newWriterMock(t)
	mock.ExpectBegin()
	expectTruncate(mock)
	mock.ExpectExec(regexp.QuoteMeta(InsertRegionQuery)).
		WithArgs("Kazan", 41800, 1050.0).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(InsertRegionQuery)).
		WithArgs("Perm", 25000, 650.0).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta(InsertBusinessQuery)).
		WithArgs("Kazan", 376).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(InsertAssumptionQuery)).
		WithArgs("Kazan", "area_sqm", 40.0).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(InsertAssumptionQuery)).
		WithArgs("Kazan", "marketing", 15000.0).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	// When
	stats, err := writer.Save(context.Background(), snapshot())

	// Then
	require.NoError(t, err)
	assert.Equal(t, SaveStats{Regions: 2, Businesses: 1, Assumptions: 2}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Save_RollsBackOnFailure(t *testing.T) {
	// Given
	writer, mock := newWriterMock(t)
	mock.ExpectBegin()
	expectTruncate(mock)
	mock.ExpectExec(regexp.QuoteMeta(InsertRegionQuery)).
		WithArgs("Kazan", 41800, 1050.0).WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	// When
	_, err := writer.Save(context.Background(), snapshot())

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store region Kazan")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Save_BeginError(t *testing.T) {
	writer, mock := newWriterMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	_, err := writer.Save(context.Background(), snapshot())
	assert.ErrorContains(t, err, "failed to instantiate transaction")
}

func TestNewWriter_NilDB(t *testing.T) {
	_, err := NewWriter(nil)
	assert.Error(t, err)
}
