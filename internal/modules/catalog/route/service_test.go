package route

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
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMunicipality(t *testing.T, db *gorm.DB) *models.MunicipalityModel {
	t.Helper()
	st := models.StateModel{Name: "Yucatan"}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed state: %v", err)
	}
	mu := models.MunicipalityModel{Name: "Merida", StateID: st.ID}
	if err := db.Create(&mu).Error; err != nil {
		t.Fatalf("seed municipality: %v", err)
	}
	return &mu
}

func TestCreateValidatesDuration(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	for _, bad := range []string{"", "90 minutes", "1:2", "25:00:00", "02:61:00"} {
		_, err := svc.Create(&CreateRouteDTO{Name: "r", Duration: bad})
		if !errors.Is(err, errBadDuration) {
			t.Errorf("duration %q: expected errBadDuration, got %v", bad, err)
		}
	}

	r, err := svc.Create(&CreateRouteDTO{Name: "coast route", Duration: "02:30:00"})
	if err != nil {
		t.Fatalf("valid duration rejected: %v", err)
	}
	if r.Duration != "02:30:00" {
		t.Fatalf("duration stored as %q", r.Duration)
	}
}

func TestUpdateValidatesDuration(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	r, err := svc.Create(&CreateRouteDTO{Name: "coast route", Duration: "02:30:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := "tomorrow"
	if _, err := svc.Update(r.ID, &UpdateRouteDTO{Duration: &bad}); !errors.Is(err, errBadDuration) {
		t.Fatalf("expected errBadDuration, got %v", err)
	}

	good := "03:00:00"
	updated, err := svc.Update(r.ID, &UpdateRouteDTO{Duration: &good})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Duration != good {
		t.Fatalf("duration not updated: %q", updated.Duration)
	}
}

func TestCreateLinkChecksReferences(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	mu := seedMunicipality(t, db)
	r, err := svc.Create(&CreateRouteDTO{Name: "city walk", Duration: "01:00:00"})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	if _, err := svc.CreateLink(&CreateLinkDTO{MunicipalityID: "nope", RouteID: r.ID}); !errors.Is(err, errMunicipalityNotFound) {
		t.Errorf("unknown municipality: got %v", err)
	}
	if _, err := svc.CreateLink(&CreateLinkDTO{MunicipalityID: mu.ID, RouteID: "nope"}); !errors.Is(err, errRouteNotFound) {
		t.Errorf("unknown route: got %v", err)
	}

	link, err := svc.CreateLink(&CreateLinkDTO{MunicipalityID: mu.ID, RouteID: r.ID})
	if err != nil {
		t.Fatalf("create link: %v", err)
	}
	if link.Municipality == nil || link.Municipality.State == nil || link.Route == nil {
		t.Fatal("link associations not loaded")
	}
}

func TestCreateLinkRejectsDuplicatePair(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	mu := seedMunicipality(t, db)
	r, err := svc.Create(&CreateRouteDTO{Name: "city walk", Duration: "01:00:00"})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	dto := &CreateLinkDTO{MunicipalityID: mu.ID, RouteID: r.ID}
	if _, err := svc.CreateLink(dto); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if _, err := svc.CreateLink(dto); !errors.Is(err, errLinkExists) {
		t.Fatalf("duplicate link: expected errLinkExists, got %v", err)
	}
}

func TestDeleteLinkAllowsRelinking(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	mu := seedMunicipality(t, db)
	r, err := svc.Create(&CreateRouteDTO{Name: "city walk", Duration: "01:00:00"})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	dto := &CreateLinkDTO{MunicipalityID: mu.ID, RouteID: r.ID}
	link, err := svc.CreateLink(dto)
	if err != nil {
		t.Fatalf("create link: %v", err)
	}
	if err := svc.DeleteLink(link.ID); err != nil {
		t.Fatalf("delete link: %v", err)
	}
	if err := svc.DeleteLink(link.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: expected ErrRecordNotFound, got %v", err)
	}
	if _, err := svc.CreateLink(dto); err != nil {
		t.Fatalf("relink after delete: %v", err)
	}
}
