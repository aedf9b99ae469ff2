package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveFloors_RejectsInvalidCount(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewFloorService(db)

	_, err := svc.RemoveFloors(1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestRemoveFloors_CountExceedsTotal(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFloorService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `buildings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_floors"}).AddRow(1, "Tower", 3))
	mock.ExpectRollback()

	_, err := svc.RemoveFloors(1, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFloors_FloorsNotEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFloorService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `buildings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_floors"}).AddRow(1, "Tower", 3))
	mock.ExpectQuery("SELECT .* FROM `floors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "building_id", "floor_number"}).
			AddRow(33, 1, 3).
			AddRow(32, 1, 2))
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.RemoveFloors(1, 2)
	require.ErrorIs(t, err, errFloorsNotEmpty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFloors_RemovesTopFloorsAndDecrementsCount(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFloorService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `buildings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_floors"}).AddRow(1, "Tower", 3))
	mock.ExpectQuery("SELECT .* FROM `floors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "building_id", "floor_number"}).
			AddRow(33, 1, 3).
			AddRow(32, 1, 2))
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM `floors`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `buildings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := svc.RemoveFloors(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFloors_AppendsDenseNumbers(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewFloorService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `buildings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_floors"}).AddRow(1, "Tower", 3))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"top"}).AddRow(3))
	mock.ExpectExec("INSERT INTO `floors`").
		WillReturnResult(sqlmock.NewResult(34, 1))
	mock.ExpectExec("INSERT INTO `floors`").
		WillReturnResult(sqlmock.NewResult(35, 1))
	mock.ExpectExec("UPDATE `buildings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	floors, err := svc.AddFloors(1, 2, 400, 0.2)
	require.NoError(t, err)
	require.Len(t, floors, 2)
	assert.Equal(t, 4, floors[0].FloorNumber)
	assert.Equal(t, 5, floors[1].FloorNumber)
	assert.InDelta(t, 320.0, floors[0].UsableArea(), 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFloors_RejectsBadGeometry(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewFloorService(db)

	_, err := svc.AddFloors(1, 2, 0, 0.2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	_, err = svc.AddFloors(1, 2, 400, 1.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}
