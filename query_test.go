package tide

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, db Executor, names ...string) []user {
	t.Helper()
	users := make([]user, len(names))
	for i, name := range names {
		users[i] = user{Name: name, Email: name + "@example.com"}
		require.NoError(t, Insert(context.Background(), db, &users[i]))
	}
	return users
}

func TestInsertFind(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	u := user{Name: "ann", Email: "ann@example.com"}
	require.NoError(t, Insert(ctx, db, &u))
	assert.Equal(t, int64(1), u.ID)

	got, err := Find[user](ctx, db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", got.Name)

	byEmail, err := FindBy[user](ctx, db, "email", "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = Find[user](ctx, db, 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "users", nf.Label())
	assert.Equal(t, 42, nf.ID())
}

func TestFindBy_UnknownColumn(t *testing.T) {
	db := openDB(t)
	_, err := FindBy[user](context.Background(), db, "password; DROP TABLE users", "x")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	_, err = Where[user](context.Background(), db, "nope", 1)
	assert.True(t, IsValidationError(err))
}

func TestInsert_UniqueViolation(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	seedUsers(t, db, "ann")
	err := Insert(ctx, db, &user{Name: "ann", Email: "ann@example.com"})
	require.Error(t, err)
	assert.True(t, IsQueryError(err))
}

func TestInsert_UUIDKey(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	k := apiKey{Label: "ci"}
	require.NoError(t, Insert(ctx, db, &k))
	assert.NotEqual(t, uuid.Nil, k.ID)

	got, err := Find[apiKey](ctx, db, k.ID)
	require.NoError(t, err)
	assert.Equal(t, k, *got)

	fixed := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, Insert(ctx, db, &apiKey{ID: fixed, Label: "fixed"}))
	got, err = Find[apiKey](ctx, db, fixed)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got.Label)
}

func TestAllWhereCount(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	all, err := All[user](ctx, db)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	users := seedUsers(t, db, "ann", "bob", "cid")
	all, err = All[user](ctx, db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"ann", "bob", "cid"}, []string{all[0].Name, all[1].Name, all[2].Name})

	found, err := Where[user](ctx, db, "name", "bob")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, users[1].ID, found[0].ID)

	n, err := Count[user](ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	u := seedUsers(t, db, "ann")[0]

	u.Name = "anne"
	require.NoError(t, Update(ctx, db, &u))
	got, err := Find[user](ctx, db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "anne", got.Name)

	missing := user{ID: 99, Name: "x", Email: "x@example.com"}
	assert.True(t, IsNotFound(Update(ctx, db, &missing)))
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	seedUsers(t, db, "a", "b", "c", "d", "e")

	p, err := Paginate[user](ctx, db, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 2, p.PerPage)
	assert.Equal(t, int64(5), p.Total)
	assert.Equal(t, 3, p.LastPage)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "c", p.Items[0].Name)

	p, err = Paginate[user](ctx, db, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Len(t, p.Items, 5)

	p, err = Paginate[user](ctx, db, 9, 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.LastPage)
}

func TestDelete_Hard(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := seedUsers(t, db, "ann", "bob", "cid", "dee")

	require.NoError(t, Delete(ctx, db, &users[0]))
	assert.True(t, IsNotFound(DeleteByID[user](ctx, db, users[0].ID)))

	n, err := DeleteIn[user](ctx, db, []int64{users[1].ID, users[2].ID, 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = DeleteIn[user, int64](ctx, db, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	left, err := All[user](ctx, db)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "dee", left[0].Name)
}

func TestDelete_Soft(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fixNow(t)

	posts := []post{{Title: "one"}, {Title: "two"}, {Title: "three"}}
	for i := range posts {
		require.NoError(t, Insert(ctx, db, &posts[i]))
	}

	require.NoError(t, Delete(ctx, db, &posts[0]))
	require.NotNil(t, posts[0].DeletedAt)
	_, err := Find[post](ctx, db, posts[0].ID)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(DeleteByID[post](ctx, db, posts[0].ID)))

	n, err := DeleteIn[post](ctx, db, []int64{posts[0].ID, posts[1].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	alive, err := All[post](ctx, db)
	require.NoError(t, err)
	require.Len(t, alive, 1)
	assert.Equal(t, "three", alive[0].Title)

	var rows int
	require.NoError(t, db.GetContext(ctx, &rows, "SELECT COUNT(*) FROM posts"))
	assert.Equal(t, 3, rows)
}

func TestExec_StopsAtFailure(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	err := Exec(ctx, db,
		"CREATE TABLE a (id INTEGER)",
		"NOT SQL\nSECOND LINE",
		"CREATE TABLE b (id INTEGER)",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"NOT SQL"`)
	assert.NotContains(t, err.Error(), "SECOND LINE")

	var n int
	require.NoError(t, db.GetContext(ctx, &n, "SELECT COUNT(*) FROM sqlite_master WHERE name = 'b'"))
	assert.Zero(t, n)
}

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, driver)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestInsert_Postgres(t *testing.T) {
	fixed := fixNow(t)
	db, mock := newMock(t, "postgres")

	mock.ExpectQuery(`INSERT INTO "accounts" ("name", "created_at", "updated_at") VALUES ($1, $2, $3) RETURNING "id"`).
		WithArgs("ann", fixed, fixed).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	a := account{Name: "ann"}
	require.NoError(t, Insert(context.Background(), db, &a))
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, fixed, a.CreatedAt)
	assert.Equal(t, fixed, a.UpdatedAt)
}

func TestUpdate_Postgres(t *testing.T) {
	fixed := fixNow(t)
	created := fixed.Add(-time.Hour)
	db, mock := newMock(t, "postgres")

	mock.ExpectExec(`UPDATE "accounts" SET "name" = $1, "updated_at" = $2 WHERE "id" = $3`).
		WithArgs("bob", fixed, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "created_at" FROM "accounts" WHERE "id" = $1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec(`UPDATE "accounts" SET "name" = $1, "updated_at" = $2 WHERE "id" = $3`).
		WithArgs("bob", fixed, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	a := account{ID: 7, Name: "bob"}
	require.NoError(t, Update(context.Background(), db, &a))
	assert.Equal(t, created, a.CreatedAt, "created_at is read back")
	assert.Equal(t, fixed, a.UpdatedAt)

	a.ID = 8
	assert.True(t, IsNotFound(Update(context.Background(), db, &a)))
}

func TestInsert_MySQL(t *testing.T) {
	fixed := fixNow(t)
	db, mock := newMock(t, "mysql")

	mock.ExpectExec("INSERT INTO `accounts` (`name`, `created_at`, `updated_at`) VALUES (?, ?, ?)").
		WithArgs("ann", fixed, fixed).
		WillReturnResult(sqlmock.NewResult(12, 1))

	a := account{Name: "ann"}
	require.NoError(t, Insert(context.Background(), db, &a))
	assert.Equal(t, int64(12), a.ID)
}

func TestDeleteIn_Postgres(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectExec(`DELETE FROM "accounts" WHERE "id" IN ($1, $2)`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := DeleteIn[account](context.Background(), db, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestFind_QueryError(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectQuery(`SELECT "id", "name", "created_at", "updated_at" FROM "accounts" WHERE "id" = $1 LIMIT 1`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	_, err := Find[account](context.Background(), db, int64(1))
	require.Error(t, err)
	assert.True(t, IsQueryError(err))
	assert.False(t, IsNotFound(err))
}
