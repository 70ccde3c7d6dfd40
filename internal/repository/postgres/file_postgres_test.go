package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"imageapi/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	rec := model.FileRecord{ID: "test-uuid", Name: "cat.png"}

	mock.ExpectExec("INSERT INTO files").
		WithArgs(rec.ID, rec.Name).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), rec)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name"}).AddRow("test-id", "cat.png")

		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		rec, found, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, model.FileRecord{ID: "test-id", Name: "cat.png"}, rec)
	})

	t.Run("not found is not an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		rec, found, err := repo.FindByID(ctx, "missing")

		assert.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, rec.ID)
	})

	t.Run("store error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("boom").
			WillReturnError(errors.New("conn reset"))

		_, found, err := repo.FindByID(ctx, "boom")

		assert.Error(t, err)
		assert.False(t, found)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow("a", "a.png").
			AddRow("b", "b.jpg")
		mock.ExpectQuery("SELECT id, name FROM files").WillReturnRows(rows)

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "b.jpg", items[1].Name)
	})

	t.Run("empty set is not nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name FROM files").WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name FROM files").WillReturnError(errors.New("db fail"))

		items, err := repo.List(ctx)

		assert.Error(t, err)
		assert.Nil(t, items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("down"))

	assert.Error(t, NewFilePostgres(db).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
