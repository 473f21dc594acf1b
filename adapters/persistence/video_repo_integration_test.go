package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type VideoRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool       *pgxpool.Pool
	pgContainer  *postgres.PostgresContainer
	testLogger   logger.Logger
	videoRepo    video.Repository
	categoryRepo category.Repository
	genreRepo    genre.Repository
	tx           service.Transactor

	catA, catB, catC uuid.UUID
	genA, genB       uuid.UUID
}

func (s *VideoRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.testLogger = logger.NewZapLogger("development")
	s.videoRepo = NewPostgresVideoRepo(s.dbPool, s.testLogger)
	s.categoryRepo = NewPostgresCategoryRepo(s.dbPool, s.testLogger)
	s.genreRepo = NewPostgresGenreRepo(s.dbPool, s.testLogger)
	s.tx = NewPgxTransactor(s.dbPool, s.testLogger)

	s.catA, s.catB, s.catC = uuid.New(), uuid.New(), uuid.New()
	s.genA, s.genB = uuid.New(), uuid.New()

	now := time.Now().UTC()
	for id, name := range map[uuid.UUID]string{s.catA: "Movies", s.catB: "Series", s.catC: "Documentaries"} {
		err := s.categoryRepo.Save(ctx, &category.Category{ID: id, Name: name, IsActive: true, CreatedAt: now, UpdatedAt: now})
		if err != nil {
			s.T().Fatalf("Failed to seed category: %s", err)
		}
	}
	for id, name := range map[uuid.UUID]string{s.genA: "Drama", s.genB: "Comedy"} {
		err := s.genreRepo.Save(ctx, &genre.Genre{ID: id, Name: name, IsActive: true, CreatedAt: now, UpdatedAt: now})
		if err != nil {
			s.T().Fatalf("Failed to seed genre: %s", err)
		}
	}
	s.NoError(s.genreRepo.SyncCategories(ctx, s.genA, []uuid.UUID{s.catA}))
	s.NoError(s.genreRepo.SyncCategories(ctx, s.genB, []uuid.UUID{s.catB}))
}

func (s *VideoRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestVideoRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(VideoRepoIntegrationTestSuite))
}

func (s *VideoRepoIntegrationTestSuite) newVideo(title string) *video.Video {
	now := time.Now().UTC()
	thumb := "abc123.jpg"
	return &video.Video{
		ID:           uuid.New(),
		Title:        title,
		Description:  "a description",
		YearLaunched: 2021,
		Opened:       true,
		Rating:       video.Rating12,
		Duration:     120,
		ThumbFile:    &thumb,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *VideoRepoIntegrationTestSuite) Test_Save_And_FindByID_WithRelations() {
	ctx := context.Background()
	v := s.newVideo("save-and-find")

	s.NoError(s.videoRepo.Save(ctx, v))
	s.NoError(s.videoRepo.SyncCategories(ctx, v.ID, []uuid.UUID{s.catA, s.catB}))
	s.NoError(s.videoRepo.SyncGenres(ctx, v.ID, []uuid.UUID{s.genA}))

	found, err := s.videoRepo.FindByID(ctx, v.ID)
	s.NoError(err)
	s.Equal(v.Title, found.Title)
	s.Equal(v.Rating, found.Rating)
	s.NotNil(found.ThumbFile)
	s.ElementsMatch([]uuid.UUID{s.catA, s.catB}, found.CategoryIDs)
	s.ElementsMatch([]uuid.UUID{s.genA}, found.GenreIDs)
}

func (s *VideoRepoIntegrationTestSuite) Test_SyncCategories_ReplacesSet() {
	ctx := context.Background()
	v := s.newVideo("sync-replaces")

	s.NoError(s.videoRepo.Save(ctx, v))
	s.NoError(s.videoRepo.SyncCategories(ctx, v.ID, []uuid.UUID{s.catA, s.catB}))
	s.NoError(s.videoRepo.SyncCategories(ctx, v.ID, []uuid.UUID{s.catB, s.catC}))

	found, err := s.videoRepo.FindByID(ctx, v.ID)
	s.NoError(err)
	s.ElementsMatch([]uuid.UUID{s.catB, s.catC}, found.CategoryIDs)
}

func (s *VideoRepoIntegrationTestSuite) Test_SyncCategories_IsIdempotent() {
	ctx := context.Background()
	v := s.newVideo("sync-idempotent")

	s.NoError(s.videoRepo.Save(ctx, v))
	s.NoError(s.videoRepo.SyncCategories(ctx, v.ID, []uuid.UUID{s.catA}))
	s.NoError(s.videoRepo.SyncCategories(ctx, v.ID, []uuid.UUID{s.catA}))

	found, err := s.videoRepo.FindByID(ctx, v.ID)
	s.NoError(err)
	s.ElementsMatch([]uuid.UUID{s.catA}, found.CategoryIDs)
}

func (s *VideoRepoIntegrationTestSuite) Test_SoftDelete_ExcludesFromReads() {
	ctx := context.Background()
	v := s.newVideo("soft-delete")

	s.NoError(s.videoRepo.Save(ctx, v))
	s.NoError(s.videoRepo.SoftDelete(ctx, v.ID))

	_, err := s.videoRepo.FindByID(ctx, v.ID)
	s.Error(err)
	s.True(errors.Is(err, apperror.ErrNotFound))

	var count int
	s.NoError(s.dbPool.QueryRow(ctx, "SELECT COUNT(*) FROM videos WHERE id = $1 AND deleted_at IS NOT NULL", v.ID).Scan(&count))
	s.Equal(1, count, "the row stays in place with deleted_at set")
}

func (s *VideoRepoIntegrationTestSuite) Test_RelationsSurviveTrashedCategory() {
	ctx := context.Background()
	trashedCat := uuid.New()
	now := time.Now().UTC()
	s.NoError(s.categoryRepo.Save(ctx, &category.Category{ID: trashedCat, Name: "Soon Gone", IsActive: true, CreatedAt: now, UpdatedAt: now}))

	v := s.newVideo("trashed-relation")
	s.NoError(s.videoRepo.Save(ctx, v))
	s.NoError(s.videoRepo.SyncCategories(ctx, v.ID, []uuid.UUID{trashedCat}))

	s.NoError(s.categoryRepo.SoftDelete(ctx, trashedCat))

	found, err := s.videoRepo.FindByID(ctx, v.ID)
	s.NoError(err)
	s.ElementsMatch([]uuid.UUID{trashedCat}, found.CategoryIDs, "junction reads include trashed parents")
}

func (s *VideoRepoIntegrationTestSuite) Test_Transactor_RollbackLeavesNothing() {
	ctx := context.Background()
	v := s.newVideo("rollback")
	boom := errors.New("boom")

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if err := s.videoRepo.Save(txCtx, v); err != nil {
			return err
		}
		if err := s.videoRepo.SyncCategories(txCtx, v.ID, []uuid.UUID{s.catA}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.videoRepo.FindByID(ctx, v.ID)
	s.True(errors.Is(err, apperror.ErrNotFound))

	var count int
	s.NoError(s.dbPool.QueryRow(ctx, "SELECT COUNT(*) FROM category_video WHERE video_id = $1", v.ID).Scan(&count))
	s.Equal(0, count, "no junction rows may survive the rollback")
}

func (s *VideoRepoIntegrationTestSuite) Test_Transactor_CommitPersists() {
	ctx := context.Background()
	v := s.newVideo("commit")

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if err := s.videoRepo.Save(txCtx, v); err != nil {
			return err
		}
		return s.videoRepo.SyncGenres(txCtx, v.ID, []uuid.UUID{s.genB})
	})
	s.NoError(err)

	found, err := s.videoRepo.FindByID(ctx, v.ID)
	s.NoError(err)
	s.ElementsMatch([]uuid.UUID{s.genB}, found.GenreIDs)
}

func (s *VideoRepoIntegrationTestSuite) Test_List_SearchAndPagination() {
	ctx := context.Background()
	for _, title := range []string{"Alpha Adventures", "Beta Adventures", "Gamma Story"} {
		s.NoError(s.videoRepo.Save(ctx, s.newVideo(title)))
	}

	videos, total, err := s.videoRepo.List(ctx, video.ListParams{Search: "Adventures", Page: 1, PerPage: 1})
	s.NoError(err)
	s.GreaterOrEqual(total, int64(2))
	s.Len(videos, 1)
}

func (s *VideoRepoIntegrationTestSuite) Test_Update_UnknownIDIsNotFound() {
	ctx := context.Background()
	v := s.newVideo("never-saved")

	err := s.videoRepo.Update(ctx, v)
	s.True(errors.Is(err, apperror.ErrNotFound))
}

func (s *VideoRepoIntegrationTestSuite) Test_GenreLinkedCategories() {
	ctx := context.Background()

	linked, err := s.genreRepo.LinkedCategories(ctx, []uuid.UUID{s.genA, s.genB}, []uuid.UUID{s.catA, s.catB})
	s.NoError(err)
	s.ElementsMatch([]uuid.UUID{s.catA}, linked[s.genA])
	s.ElementsMatch([]uuid.UUID{s.catB}, linked[s.genB])

	linked, err = s.genreRepo.LinkedCategories(ctx, []uuid.UUID{s.genA}, []uuid.UUID{s.catB})
	s.NoError(err)
	s.Empty(linked[s.genA])
}
