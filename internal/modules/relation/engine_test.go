package relation

import (
	"errors"
	"testing"

	"github.com/binmap-app/core/internal/database"
	"github.com/binmap-app/core/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// In-memory sqlite is per-connection; keep the pool at one.
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.UserModel {
	t.Helper()
	u := models.UserModel{Email: email, Username: email, Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return &u
}

func seedPlace(t *testing.T, db *gorm.DB, name string) *models.PlaceModel {
	t.Helper()
	st := models.StateModel{Name: "Quintana Roo"}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed state: %v", err)
	}
	mu := models.MunicipalityModel{Name: "Tulum", StateID: st.ID}
	if err := db.Create(&mu).Error; err != nil {
		t.Fatalf("seed municipality: %v", err)
	}
	cat := models.CategoryModel{Name: "beach"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	rt := models.RouteModel{Name: "coast route", Duration: "02:30:00"}
	if err := db.Create(&rt).Error; err != nil {
		t.Fatalf("seed route: %v", err)
	}
	p := models.PlaceModel{
		Name:           name,
		Description:    "a place",
		Latitude:       20.2114,
		Longitude:      -87.4654,
		MunicipalityID: mu.ID,
		CategoryID:     cat.ID,
		RouteID:        rt.ID,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed place %s: %v", name, err)
	}
	return &p
}

func countFavorites(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.FavoriteModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count favorites: %v", err)
	}
	return n
}

func TestCreateFavoriteIdempotent(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	first, existed, err := svc.CreateFavorite(user.ID, place.ID)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if existed {
		t.Fatal("first create reported existed")
	}

	second, existed, err := svc.CreateFavorite(user.ID, place.ID)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !existed {
		t.Fatal("second create did not report existed")
	}
	if second.ID != first.ID {
		t.Fatalf("second create returned a different row: %s vs %s", second.ID, first.ID)
	}
	if n := countFavorites(t, db); n != 1 {
		t.Fatalf("expected exactly 1 favorite row, got %d", n)
	}
}

func TestCreateFavoriteValidation(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")

	if _, _, err := svc.CreateFavorite(user.ID, ""); !errors.Is(err, ErrPlaceRequired) {
		t.Fatalf("empty place: expected ErrPlaceRequired, got %v", err)
	}
	if _, _, err := svc.CreateFavorite(user.ID, "no-such-place"); !errors.Is(err, ErrPlaceNotFound) {
		t.Fatalf("unknown place: expected ErrPlaceNotFound, got %v", err)
	}
	if n := countFavorites(t, db); n != 0 {
		t.Fatalf("expected no rows after failed creates, got %d", n)
	}
}

// raceDB is testDB with gorm's per-create transaction disabled: the
// rival insert in the race tests runs while the engine's create is in
// flight, which would deadlock the single-connection pool otherwise.
func raceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// injectRivalRow registers a create callback that inserts row once,
// right between the engine's existence check and its own insert.
func injectRivalRow(t *testing.T, db *gorm.DB, row interface{}) {
	t.Helper()
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("rival_insert", func(tx *gorm.DB) {
		if injected {
			return
		}
		injected = true
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(row).Error; err != nil {
			t.Errorf("rival insert: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

// A concurrent create can win the unique index between the engine's
// existence check and its insert. The lost insert must come back as the
// surviving row with existed=true, not as an error.
func TestCreateFavoriteReconcilesInsertRace(t *testing.T) {
	db := raceDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	rival := models.FavoriteModel{UserID: user.ID, PlaceID: place.ID}
	injectRivalRow(t, db, &rival)

	row, existed, err := svc.CreateFavorite(user.ID, place.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !existed {
		t.Fatal("lost race not reported as existed")
	}
	if row.ID != rival.ID {
		t.Fatalf("expected the surviving rival row %s, got %s", rival.ID, row.ID)
	}
	if n := countFavorites(t, db); n != 1 {
		t.Fatalf("expected exactly 1 row after race, got %d", n)
	}
}

func TestCreateVisitedReconcilesInsertRace(t *testing.T) {
	db := raceDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	date := models.DateOnly{}
	if err := date.UnmarshalJSON([]byte(`"2026-08-01"`)); err != nil {
		t.Fatalf("parse date: %v", err)
	}
	rival := models.VisitedPlaceModel{
		UserID:      user.ID,
		PlaceID:     place.ID,
		VisitedDate: date,
		Notes:       "rival notes",
	}
	injectRivalRow(t, db, &rival)

	row, existed, err := svc.CreateVisited(user.ID, place.ID, nil, "mine")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !existed {
		t.Fatal("lost race not reported as existed")
	}
	if row.ID != rival.ID {
		t.Fatalf("expected the surviving rival row %s, got %s", rival.ID, row.ID)
	}
	// The rival's payload survives untouched.
	if !row.VisitedDate.Equal(date.Time) || row.Notes != "rival notes" {
		t.Fatalf("rival payload mutated: date=%v notes=%q", row.VisitedDate.Time, row.Notes)
	}
}

func TestToggleFavorite(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	row, removed, err := svc.ToggleFavorite(user.ID, place.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if removed || row == nil {
		t.Fatalf("first toggle should add, got removed=%v row=%v", removed, row)
	}

	row, removed, err = svc.ToggleFavorite(user.ID, place.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if !removed || row != nil {
		t.Fatalf("second toggle should remove, got removed=%v row=%v", removed, row)
	}
	if n := countFavorites(t, db); n != 0 {
		t.Fatalf("expected 0 rows after remove toggle, got %d", n)
	}

	if _, removed, err = svc.ToggleFavorite(user.ID, place.ID); err != nil || removed {
		t.Fatalf("third toggle should add again, got removed=%v err=%v", removed, err)
	}
}

func TestDeleteFavoriteOwnerScoped(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, "ana@example.com")
	other := seedUser(t, db, "eve@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	row, _, err := svc.CreateFavorite(owner.ID, place.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A foreign row must look exactly like a missing one.
	if err := svc.DeleteFavorite(other.ID, row.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign delete: expected ErrRecordNotFound, got %v", err)
	}
	if n := countFavorites(t, db); n != 1 {
		t.Fatalf("foreign delete removed a row, %d left", n)
	}

	if err := svc.DeleteFavorite(owner.ID, row.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if n := countFavorites(t, db); n != 0 {
		t.Fatalf("expected 0 rows after owner delete, got %d", n)
	}
}

func TestListFavoritesScopedWithDetail(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	ana := seedUser(t, db, "ana@example.com")
	eve := seedUser(t, db, "eve@example.com")
	p1 := seedPlace(t, db, "Playa Paraiso")
	p2 := seedPlace(t, db, "Gran Cenote")

	if _, _, err := svc.CreateFavorite(ana.ID, p1.ID); err != nil {
		t.Fatalf("create ana: %v", err)
	}
	if _, _, err := svc.CreateFavorite(eve.ID, p2.ID); err != nil {
		t.Fatalf("create eve: %v", err)
	}

	rows, err := svc.ListFavorites(ana.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for ana, got %d", len(rows))
	}
	fav := rows[0]
	if fav.PlaceID != p1.ID {
		t.Fatalf("wrong place: %s", fav.PlaceID)
	}
	if fav.Place == nil || fav.Place.Municipality == nil || fav.Place.Municipality.State == nil {
		t.Fatal("detail chain Place.Municipality.State not loaded")
	}
	if fav.Place.Category == nil || fav.Place.Route == nil {
		t.Fatal("detail chain Category/Route not loaded")
	}
}

func TestCreateVisitedDefaults(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	row, existed, err := svc.CreateVisited(user.ID, place.ID, nil, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if existed {
		t.Fatal("fresh create reported existed")
	}
	today := models.Today()
	if !row.VisitedDate.Equal(today.Time) {
		t.Fatalf("expected visited_date %v, got %v", today.Time, row.VisitedDate.Time)
	}
	if row.Notes != "" {
		t.Fatalf("expected empty notes, got %q", row.Notes)
	}
}

func TestCreateVisitedKeepsFirstRow(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	date := models.DateOnly{}
	if err := date.UnmarshalJSON([]byte(`"2026-08-01"`)); err != nil {
		t.Fatalf("parse date: %v", err)
	}
	first, _, err := svc.CreateVisited(user.ID, place.ID, &date, "great trip")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	other := models.DateOnly{}
	if err := other.UnmarshalJSON([]byte(`"2026-08-15"`)); err != nil {
		t.Fatalf("parse date: %v", err)
	}
	second, existed, err := svc.CreateVisited(user.ID, place.ID, &other, "changed my mind")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !existed {
		t.Fatal("second create did not report existed")
	}
	if !second.VisitedDate.Equal(first.VisitedDate.Time) {
		t.Fatalf("repeat create mutated visited_date: %v vs %v",
			second.VisitedDate.Time, first.VisitedDate.Time)
	}
	if second.Notes != "great trip" {
		t.Fatalf("repeat create mutated notes: %q", second.Notes)
	}
}

func TestToggleVisited(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "ana@example.com")
	place := seedPlace(t, db, "Playa Paraiso")

	row, removed, err := svc.ToggleVisited(user.ID, place.ID, nil, "first visit")
	if err != nil || removed {
		t.Fatalf("first toggle: removed=%v err=%v", removed, err)
	}
	if row.Notes != "first visit" {
		t.Fatalf("notes not stored: %q", row.Notes)
	}

	_, removed, err = svc.ToggleVisited(user.ID, place.ID, nil, "")
	if err != nil || !removed {
		t.Fatalf("second toggle: removed=%v err=%v", removed, err)
	}

	var n int64
	if err := db.Model(&models.VisitedPlaceModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 visited rows, got %d", n)
	}
}
