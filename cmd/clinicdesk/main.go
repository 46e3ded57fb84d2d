package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinicdesk/internal/api"
	"clinicdesk/internal/config"
	"clinicdesk/internal/domain"
	"clinicdesk/internal/export"
	"clinicdesk/internal/grid"
	"clinicdesk/internal/logger"
	"clinicdesk/internal/store"
)

func main() {
	// Not fatal when missing, the environment may be set directly.
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "clinicdesk")
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, log)
	ctx := context.Background()
	switch {
	case cfg.API.Username != "":
		if _, err := client.Login(ctx, cfg.API.Username, cfg.API.Password); err != nil {
			log.Fatal("login failed", zap.Error(err))
		}
	case cfg.API.Token != "":
		client.SetToken(cfg.API.Token)
	}

	data := store.New(client, log)

	if err := data.RefreshCatalog(ctx); err != nil {
		log.Fatal("zone catalog load failed", zap.Error(err))
	}
	if err := data.RefreshPatients(ctx); err != nil {
		log.Fatal("patient list load failed", zap.Error(err))
	}
	log.Info("initial data loaded",
		zap.Int("zones", data.Catalog().Len()),
		zap.Int("patients", len(data.Patients())),
	)

	if cfg.Export.PatientID != "" {
		exportPatientGrid(ctx, cfg, data, log)
	}
}

// exportPatientGrid writes the procedure grid of one patient to an
// .xlsx file in the configured export directory.
func exportPatientGrid(ctx context.Context, cfg *config.Config, data *store.Store, log *zap.Logger) {
	patient := domain.Patient{ID: cfg.Export.PatientID}
	for _, p := range data.Patients() {
		if p.ID == cfg.Export.PatientID {
			patient = p
			break
		}
	}

	if err := data.RefreshProcedures(ctx, patient.ID); err != nil {
		log.Fatal("procedure load failed",
			zap.String("patient_id", patient.ID),
			zap.Error(err),
		)
	}
	// The grid resolves zone names typed into cells against the
	// alternate catalog the backend exposes for inline editing.
	if err := data.RefreshEditingCatalog(ctx); err != nil {
		log.Fatal("editing catalog load failed", zap.Error(err))
	}

	procedures, _ := data.Procedures()
	g := grid.Build(data.EditingCatalog(), procedures)

	content, err := export.ProcedureGrid(patient, g)
	if err != nil {
		log.Fatal("export failed", zap.Error(err))
	}

	path := filepath.Join(cfg.Export.Dir, export.Filename(patient))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		log.Fatal("export write failed", zap.String("path", path), zap.Error(err))
	}
	log.Info("procedure grid exported",
		zap.String("patient", patient.Name),
		zap.String("path", path),
		zap.Int("procedures", len(procedures)),
	)
}
