package families_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-famhome/internal/families"
	"github.com/goliatone/go-famhome/pkg/testsupport"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if err := families.Migrate(context.Background(), bunDB); err != nil {
		t.Fatalf("migrate families: %v", err)
	}
	return bunDB
}

func TestFamilyRepository_WithBunAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	repo := families.NewBunFamilyRepositoryWithCache(bunDB, cacheSvc, repocache.NewDefaultKeySerializer())
	svc := families.NewService(repo, families.WithNow(func() time.Time { return now }))

	family, err := svc.InitFamily(ctx, families.InitFamilyInput{OwnerUID: "uid-parker", Name: "Parkers"})
	if err != nil {
		t.Fatalf("init family: %v", err)
	}

	if _, err := svc.GetFamily(ctx, family.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := svc.GetFamily(ctx, family.ID); err != nil {
		t.Fatalf("cached get: %v", err)
	}

	body := "![background](https://firebasestorage.googleapis.com/bg.png)\n![center](# Hi)"
	if _, err := svc.UpdateBodyMarkdown(ctx, family.ID, body); err != nil {
		t.Fatalf("update body: %v", err)
	}

	stored, err := svc.GetFamily(ctx, family.ID)
	if err != nil {
		t.Fatalf("get updated: %v", err)
	}
	if stored.BodyMarkdown != body {
		t.Fatalf("expected updated body, got %q", stored.BodyMarkdown)
	}

	byOwner, err := svc.GetFamilyByOwner(ctx, "uid-parker")
	if err != nil {
		t.Fatalf("get by owner: %v", err)
	}
	if byOwner.ID != family.ID {
		t.Fatalf("expected %s, got %s", family.ID, byOwner.ID)
	}
}

func TestBunFamilyRepositoryListAndNotFound(t *testing.T) {
	ctx := context.Background()
	svc := families.NewService(families.NewBunFamilyRepository(newBunDB(t)))

	for _, input := range []families.InitFamilyInput{
		{OwnerUID: "uid-2", Name: "Parker"},
		{OwnerUID: "uid-1", Name: "Lee"},
	} {
		if _, err := svc.InitFamily(ctx, input); err != nil {
			t.Fatalf("init %s: %v", input.OwnerUID, err)
		}
	}

	all, err := svc.ListFamilies(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Lee" || all[1].Name != "Parker" {
		t.Fatalf("unexpected list %+v", all)
	}

	if _, err := svc.GetFamilyByOwner(ctx, "uid-missing"); !errors.Is(err, families.ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	bunDB := newBunDB(t)
	if err := families.Migrate(context.Background(), bunDB); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
