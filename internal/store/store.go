// Package store caches the patient list, the zone catalogs and the
// procedures of the currently open patient. All writes go through the
// backend and bump a monotonic version counter; dependent views
// re-fetch when the counter moves. The cache itself is never mutated
// from a write response.
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"clinicdesk/internal/api"
	"clinicdesk/internal/catalog"
	"clinicdesk/internal/domain"
	"clinicdesk/internal/normalize"
)

// Resource a cached data set with its own loading/error/fencing state.
type Resource int

const (
	ResourcePatients Resource = iota
	ResourceCatalog
	ResourceEditingCatalog
	ResourceProcedures
)

// ErrStale a fetch response superseded by a newer fetch for the same
// resource. Responses are fenced by issue order: only the latest issued
// fetch may apply, so a slow old response can never overwrite a newer
// one (last-issued wins, not last-arrived).
var ErrStale = errors.New("fetch superseded by a newer one")

type resourceState struct {
	seq     uint64 // latest issued fetch for this resource
	loading bool
	lastErr error
}

// Store the client-side data cache and write orchestrator.
type Store struct {
	client *api.Client
	logger *zap.Logger

	mu             sync.Mutex
	version        uint64
	patients       []domain.Patient
	procedures     []domain.Procedure
	proceduresFor  string // patient id the procedure cache belongs to
	cat            *catalog.Catalog
	editingCat     *catalog.Catalog
	res            map[Resource]*resourceState
}

func New(client *api.Client, logger *zap.Logger) *Store {
	return &Store{
		client:     client,
		logger:     logger,
		cat:        catalog.New(),
		editingCat: catalog.New(),
		res: map[Resource]*resourceState{
			ResourcePatients:       {},
			ResourceCatalog:        {},
			ResourceEditingCatalog: {},
			ResourceProcedures:     {},
		},
	}
}

// Version returns the monotonic write counter. Views remember the value
// they last rendered against and re-fetch when it moves.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Loading reports whether a fetch for the resource is outstanding.
func (s *Store) Loading(r Resource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res[r].loading
}

// LastError returns the error state of the resource's most recent
// applied fetch. A read failure leaves previously cached data in place;
// this is how the view learns it is rendering stale data.
func (s *Store) LastError(r Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res[r].lastErr
}

// Catalog returns the main zone catalog.
func (s *Store) Catalog() *catalog.Catalog { return s.cat }

// EditingCatalog returns the alternate catalog used to resolve a newly
// typed zone name during inline grid editing.
func (s *Store) EditingCatalog() *catalog.Catalog { return s.editingCat }

// Patients returns a copy of the cached patient list.
func (s *Store) Patients() []domain.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// Procedures returns a copy of the cached procedure list and the id of
// the patient it belongs to.
func (s *Store) Procedures() ([]domain.Procedure, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Procedure, len(s.procedures))
	copy(out, s.procedures)
	return out, s.proceduresFor
}

// RefreshPatients fetches and replaces the patient cache.
func (s *Store) RefreshPatients(ctx context.Context) error {
	seq := s.beginFetch(ResourcePatients)
	raws, err := s.client.ListPatients(ctx)
	return s.applyPatients(seq, raws, err)
}

// RefreshCatalog fetches and replaces the main zone catalog.
func (s *Store) RefreshCatalog(ctx context.Context) error {
	seq := s.beginFetch(ResourceCatalog)
	raws, err := s.client.ListZones(ctx)
	return s.applyCatalog(seq, raws, err)
}

// RefreshEditingCatalog fetches and replaces the editing zone catalog.
func (s *Store) RefreshEditingCatalog(ctx context.Context) error {
	seq := s.beginFetch(ResourceEditingCatalog)
	raws, err := s.client.ListEditingZones(ctx)
	return s.applyEditingCatalog(seq, raws, err)
}

// RefreshProcedures fetches and replaces the procedure cache for one
// patient. Zone names in the response are reconciled against the main
// catalog, so the catalog should be loaded first.
func (s *Store) RefreshProcedures(ctx context.Context, patientID string) error {
	seq := s.beginFetch(ResourceProcedures)
	raws, err := s.client.ListProcedures(ctx, patientID)
	return s.applyProcedures(seq, patientID, raws, err)
}

// SavePatient creates (empty id) or updates a patient, then bumps the
// version counter.
func (s *Store) SavePatient(ctx context.Context, id string, payload api.PatientWrite) error {
	var err error
	if id == "" {
		err = s.client.CreatePatient(ctx, payload)
	} else {
		err = s.client.UpdatePatient(ctx, id, payload)
	}
	if err != nil {
		return err
	}
	s.bump()
	return nil
}

// DeletePatient deletes a patient (the backend cascades procedures) and
// bumps the version counter.
func (s *Store) DeletePatient(ctx context.Context, id string) error {
	if err := s.client.DeletePatient(ctx, id); err != nil {
		return err
	}
	s.bump()
	return nil
}

// SaveProcedure creates (empty id) or updates a procedure, then bumps
// the version counter.
func (s *Store) SaveProcedure(ctx context.Context, id string, payload api.ProcedureWrite) error {
	var err error
	if id == "" {
		err = s.client.CreateProcedure(ctx, payload)
	} else {
		err = s.client.UpdateProcedure(ctx, id, payload)
	}
	if err != nil {
		return err
	}
	s.bump()
	return nil
}

// DeleteProcedure deletes a procedure and bumps the version counter.
func (s *Store) DeleteProcedure(ctx context.Context, id string) error {
	if err := s.client.DeleteProcedure(ctx, id); err != nil {
		return err
	}
	s.bump()
	return nil
}

func (s *Store) bump() {
	s.mu.Lock()
	s.version++
	v := s.version
	s.mu.Unlock()
	s.logger.Debug("data version bumped", zap.Uint64("version", v))
}

// beginFetch stamps a new fetch for the resource and marks it loading.
// The returned sequence must be handed back to the matching apply; an
// apply whose sequence is no longer the latest issued one is discarded
// with ErrStale.
func (s *Store) beginFetch(r Resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.res[r]
	st.seq++
	st.loading = true
	return st.seq
}

// fence returns false when the sequence has been superseded. Called
// with the lock held.
func (s *Store) fence(r Resource, seq uint64) bool {
	st := s.res[r]
	if seq != st.seq {
		return false
	}
	st.loading = false
	return true
}

func (s *Store) applyPatients(seq uint64, raws []api.RawRecord, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fence(ResourcePatients, seq) {
		return ErrStale
	}
	if err != nil {
		s.res[ResourcePatients].lastErr = err
		return err
	}
	s.res[ResourcePatients].lastErr = nil
	s.patients = normalize.Patients(raws)
	return nil
}

func (s *Store) applyCatalog(seq uint64, raws []api.RawRecord, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fence(ResourceCatalog, seq) {
		return ErrStale
	}
	if err != nil {
		s.res[ResourceCatalog].lastErr = err
		return err
	}
	s.res[ResourceCatalog].lastErr = nil
	s.cat.Replace(normalize.Zones(raws))
	return nil
}

func (s *Store) applyEditingCatalog(seq uint64, raws []api.RawRecord, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fence(ResourceEditingCatalog, seq) {
		return ErrStale
	}
	if err != nil {
		s.res[ResourceEditingCatalog].lastErr = err
		return err
	}
	s.res[ResourceEditingCatalog].lastErr = nil
	s.editingCat.Replace(normalize.Zones(raws))
	return nil
}

func (s *Store) applyProcedures(seq uint64, patientID string, raws []api.RawRecord, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fence(ResourceProcedures, seq) {
		return ErrStale
	}
	if err != nil {
		s.res[ResourceProcedures].lastErr = err
		return err
	}
	s.res[ResourceProcedures].lastErr = nil
	s.procedures = normalize.Procedures(raws, s.cat)
	s.proceduresFor = patientID
	return nil
}
