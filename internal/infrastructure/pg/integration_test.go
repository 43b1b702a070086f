//go:build integration

package pg_test

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprCalc/internal/domain"
	"exprCalc/internal/evaluator"
	"exprCalc/internal/infrastructure/pg"
	"exprCalc/internal/pkg/testutil"
)

// pgContainer поднимается один раз на пакет в TestMain.
var pgContainer *testutil.Postgres

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	pgContainer, err = testutil.StartPostgres(ctx)
	if err != nil {
		log.Fatalf("postgres container: %v", err)
	}
	code := m.Run()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("terminate postgres: %v", err)
	}
	os.Exit(code)
}

// setupDB подключается к тестовой БД, применяет миграции и очищает таблицы.
func setupDB(t *testing.T) *pg.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	db, err := pg.New(&pg.Config{
		Host:     pgContainer.Host,
		Port:     pgContainer.Port,
		User:     pgContainer.User,
		Password: pgContainer.Password,
		DBName:   pgContainer.DBName,
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, pg.Migrate(ctx, db))
	require.NoError(t, pg.Migrate(ctx, db), "миграции должны быть идемпотентны")
	_, err = db.ExecContext(ctx, "TRUNCATE TABLE users CASCADE")
	require.NoError(t, err)
	return db
}

func newUser(t *testing.T, repo *pg.UserRepo, email string) domain.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.User{ID: uuid.NewString(), Name: "Ana", Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func TestUserRepo_CRUD(t *testing.T) {
	db := setupDB(t)
	repo := pg.NewUserRepo(db, testutil.Logger())
	ctx := context.Background()

	u := newUser(t, repo, "ana@example.com")

	got, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u, *got)

	got, err = repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	u.Name = "Bob"
	u.UpdatedAt = u.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.UpdateUser(ctx, u))
	got, err = repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	require.NoError(t, repo.DeleteUser(ctx, u.ID))
	_, err = repo.GetUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.DeleteUser(ctx, u.ID), domain.ErrUserNotFound)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	repo := pg.NewUserRepo(db, testutil.Logger())

	newUser(t, repo, "dup@example.com")
	err := repo.CreateUser(context.Background(), domain.User{
		ID: uuid.NewString(), Name: "X", Email: "dup@example.com", PasswordHash: "h",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestOperationRepo_HistoryAndClear(t *testing.T) {
	db := setupDB(t)
	users := pg.NewUserRepo(db, testutil.Logger())
	repo := pg.NewOperationRepo(db, testutil.Logger())
	ctx := context.Background()

	alice := newUser(t, users, "alice@example.com")
	bob := newUser(t, users, "bob@example.com")

	base := time.Now().UTC().Truncate(time.Second)
	exprs := []string{"1 + 1", "2 * 3", "8 / 2"}
	for i, e := range exprs {
		op := domain.NewOperation(uuid.NewString(), alice.ID, e, "x", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.SaveOperation(ctx, op))
	}
	require.NoError(t, repo.SaveOperation(ctx, domain.NewOperation(uuid.NewString(), bob.ID, "5 - 1", "4", base)))

	history, err := repo.GetHistory(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "8 / 2", history[0].Expression, "первая запись — самая новая")
	assert.Equal(t, domain.KindDivide, history[0].Kind)
	assert.Equal(t, "1 + 1", history[2].Expression)

	n, err := repo.ClearHistory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	history, err = repo.GetHistory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	history, err = repo.GetHistory(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "чужая история не затрагивается")
}

func TestOperationRepo_LongResult(t *testing.T) {
	db := setupDB(t)
	users := pg.NewUserRepo(db, testutil.Logger())
	repo := pg.NewOperationRepo(db, testutil.Logger())
	ctx := context.Background()
	alice := newUser(t, users, "alice@example.com")

	expr := "1" + strings.Repeat("0", 300) + "*1"
	n, err := evaluator.Evaluate(expr)
	require.NoError(t, err)
	result := n.String()
	require.Greater(t, len(result), 255)

	require.NoError(t, repo.SaveOperation(ctx, domain.NewOperation(uuid.NewString(), alice.ID, expr, result, time.Now())))

	history, err := repo.GetHistory(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, result, history[0].Result)
}

func TestOperationRepo_Stats(t *testing.T) {
	db := setupDB(t)
	users := pg.NewUserRepo(db, testutil.Logger())
	repo := pg.NewOperationRepo(db, testutil.Logger())
	ctx := context.Background()

	u := newUser(t, users, "stats@example.com")
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -7)

	save := func(expr string, at time.Time) {
		require.NoError(t, repo.SaveOperation(ctx, domain.NewOperation(uuid.NewString(), u.ID, expr, "1", at)))
	}
	save("1 + 1", today.Add(time.Hour))
	save("2 + 2", today.Add(-time.Hour))
	save("2 * 2", weekAgo.Add(time.Hour))
	save("2 * 2 - 1", weekAgo.Add(-time.Hour))

	st, err := repo.Stats(ctx, u.ID, today, weekAgo)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.Total)
	assert.Equal(t, int64(1), st.Today)
	assert.Equal(t, int64(3), st.Week)
	assert.ElementsMatch(t, []domain.KindCount{
		{Kind: domain.KindAdd, Count: 2},
		{Kind: domain.KindMultiply, Count: 1},
		{Kind: domain.KindMixed, Count: 1},
	}, st.ByKind)
}

func TestOperationRepo_CascadeOnUserDelete(t *testing.T) {
	db := setupDB(t)
	users := pg.NewUserRepo(db, testutil.Logger())
	repo := pg.NewOperationRepo(db, testutil.Logger())
	ctx := context.Background()

	u := newUser(t, users, "gone@example.com")
	require.NoError(t, repo.SaveOperation(ctx, domain.NewOperation(uuid.NewString(), u.ID, "1+1", "2", time.Now())))
	require.NoError(t, users.DeleteUser(ctx, u.ID))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM operations").Scan(&count))
	assert.Zero(t, count)
}

func TestOperationRepo_Ping(t *testing.T) {
	db := setupDB(t)
	assert.NoError(t, pg.NewOperationRepo(db, testutil.Logger()).Ping(context.Background()))
}
