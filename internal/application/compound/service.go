// Package compound provides the application-level service for molecule
// editing sessions. It dispatches structural edits to the mutation engine,
// derives descriptions (formula, weight, name, SMILES), and persists
// documents through the repository with read-through caching.
package compound

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/mutation"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/nomenclature"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/notation"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/database/redis"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/monitoring/logging"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/monitoring/prometheus"
	appErrors "github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/types/chem"
)

// ─────────────────────────────────────────────────────────────────────────────
// Inputs and DTOs
// ─────────────────────────────────────────────────────────────────────────────

// Op identifies a structural edit operation.
type Op string

const (
	OpExtendChain       Op = "extend_chain"
	OpShortenChain      Op = "shorten_chain"
	OpBranchCarbon      Op = "branch_carbon"
	OpCyclize           Op = "cyclize"
	OpChangeBondOrder   Op = "change_bond_order"
	OpUnsaturateBond    Op = "unsaturate_bond"
	OpSaturateBond      Op = "saturate_bond"
	OpAttachSubstituent Op = "attach_substituent"
	OpRemoveSubstituent Op = "remove_substituent"
)

// EditRequest describes one structural edit. Target is the primary atom;
// Other is the second endpoint for bond operations. Order is only read by
// change_bond_order, Substituent only by attach_substituent.
type EditRequest struct {
	Op          Op                       `json:"op"`
	Target      molecule.AtomID          `json:"target,omitempty"`
	Other       molecule.AtomID          `json:"other,omitempty"`
	Order       int                      `json:"order,omitempty"`
	Substituent mutation.SubstituentKind `json:"substituent,omitempty"`
}

// FunctionalGroup is the transport form of a detected group.
type FunctionalGroup struct {
	Kind       string   `json:"kind"`
	Atoms      []string `json:"atoms"`
	Attachment string   `json:"attachment"`
}

// Description bundles every derived property of a molecule. Name and SMILES
// are best-effort: structures outside the naming or notation rules leave the
// field empty and record the reason instead.
type Description struct {
	Formula            string                    `json:"formula"`
	FormulaSubscript   string                    `json:"formula_subscript"`
	MolecularWeight    float64                   `json:"molecular_weight"`
	UnsaturationDegree int                       `json:"unsaturation_degree"`
	FunctionalGroups   []FunctionalGroup         `json:"functional_groups,omitempty"`
	Name               string                    `json:"name,omitempty"`
	NameError          string                    `json:"name_error,omitempty"`
	SMILES             string                    `json:"smiles,omitempty"`
	SMILESError        string                    `json:"smiles_error,omitempty"`
	Validation         molecule.ValidationReport `json:"validation"`
}

// Repository is the persistence port the service depends on. The PostgreSQL
// repository satisfies it; tests use an in-memory fake.
type Repository interface {
	Save(ctx context.Context, doc chem.MoleculeDocument) error
	FindByID(ctx context.Context, id string) (chem.MoleculeDocument, error)
	List(ctx context.Context, page, pageSize int) ([]chem.MoleculeSummary, int64, error)
	FindByFormula(ctx context.Context, formula string) ([]chem.MoleculeDocument, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Service is the molecule editing application service. It holds no graph
// state: every method takes the caller's graph value and returns the next
// one, so concurrent sessions never share mutable structure.
type Service struct {
	repo    Repository
	cache   redis.Cache
	locks   redis.LockFactory
	logger  logging.Logger
	metrics *prometheus.AppMetrics

	describeTTL time.Duration
	documentTTL time.Duration
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithCache enables read-through caching of documents and descriptions.
func WithCache(c redis.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLockFactory enables per-molecule mutexes around saves.
func WithLockFactory(f redis.LockFactory) Option {
	return func(s *Service) { s.locks = f }
}

// WithMetrics enables operation metrics.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithDescribeTTL overrides the description cache TTL.
func WithDescribeTTL(ttl time.Duration) Option {
	return func(s *Service) { s.describeTTL = ttl }
}

// NewService creates the service. repo is required; cache, locks, and
// metrics are optional and degrade to direct repository access when absent.
func NewService(repo Repository, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		repo:        repo,
		logger:      logger,
		describeTTL: 10 * time.Minute,
		documentTTL: 15 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDraft returns a fresh working graph from a named template. An empty
// name starts from a single carbon.
func (s *Service) NewDraft(template string) (molecule.MoleculeGraph, error) {
	if template == "" {
		return molecule.SingleCarbon(), nil
	}
	g, err := molecule.TemplateByName(template)
	if err != nil {
		return molecule.MoleculeGraph{}, err
	}
	return g, nil
}

// Apply dispatches one structural edit against the given graph. On success
// the returned result carries the new graph; on failure the caller's graph
// is unchanged and the result carries the typed reason.
func (s *Service) Apply(ctx context.Context, g molecule.MoleculeGraph, req EditRequest) mutation.Result {
	start := time.Now()

	var (
		next molecule.MoleculeGraph
		err  error
	)
	switch req.Op {
	case OpExtendChain:
		next, err = mutation.ExtendChain(g, req.Target)
	case OpShortenChain:
		next, err = mutation.ShortenChain(g, req.Target)
	case OpBranchCarbon:
		next, err = mutation.BranchCarbon(g, req.Target)
	case OpCyclize:
		next, err = mutation.Cyclize(g, req.Target, req.Other)
	case OpChangeBondOrder:
		next, err = mutation.ChangeBondOrder(g, req.Target, req.Other, req.Order)
	case OpUnsaturateBond:
		next, err = mutation.UnsaturateBond(g, req.Target, req.Other)
	case OpSaturateBond:
		next, err = mutation.SaturateBond(g, req.Target, req.Other)
	case OpAttachSubstituent:
		next, err = mutation.AttachSubstituent(g, req.Target, req.Substituent)
	case OpRemoveSubstituent:
		next, err = mutation.RemoveSubstituent(g, req.Target)
	default:
		err = appErrors.Newf(appErrors.ErrCodeBadRequest, "unknown edit operation %q", req.Op)
	}

	res := mutation.Outcome(next, err)
	atomCount := g.NumAtoms()
	if res.Ok() {
		atomCount = res.Graph.NumAtoms()
	}
	prometheus.RecordMutation(s.metrics, string(req.Op), atomCount, time.Since(start), err)

	if err != nil {
		s.logger.Debug("edit rejected",
			logging.String("op", string(req.Op)),
			logging.String("code", string(appErrors.GetCode(err))),
			logging.String("reason", res.Reason()))
	} else {
		s.logger.Debug("edit applied",
			logging.String("op", string(req.Op)),
			logging.Int("atoms", res.Graph.NumAtoms()))
	}
	return res
}

// OutcomeDTO converts a mutation result to its transport form.
func OutcomeDTO(r mutation.Result) chem.MutationOutcome {
	if r.Ok() {
		return chem.MutationOutcome{Success: true}
	}
	return chem.MutationOutcome{
		Success: false,
		Reason:  r.Reason(),
		Code:    string(appErrors.GetCode(r.Err)),
	}
}

// Describe derives every property of the graph. Results are cached by graph
// content hash, so repeated description of an unchanged molecule skips the
// naming and notation passes.
func (s *Service) Describe(ctx context.Context, g molecule.MoleculeGraph) (Description, error) {
	if s.cache == nil {
		return s.describe(g), nil
	}

	key := "desc:" + graphHash(g)
	var desc Description
	err := s.cache.GetOrSet(ctx, key, &desc, s.describeTTL, func(ctx context.Context) (interface{}, error) {
		d := s.describe(g)
		return &d, nil
	})
	if err != nil {
		// The cache is an optimization; fall back to direct derivation.
		s.logger.Warn("description cache unavailable", logging.Err(err))
		return s.describe(g), nil
	}
	return desc, nil
}

func (s *Service) describe(g molecule.MoleculeGraph) Description {
	desc := Description{
		Formula:            molecule.Formula(g),
		FormulaSubscript:   molecule.FormulaSubscript(g),
		MolecularWeight:    molecule.MolecularWeight(g),
		UnsaturationDegree: molecule.UnsaturationDegree(g),
		Validation:         molecule.Validate(g),
	}
	for _, fg := range molecule.DetectFunctionalGroups(g) {
		atoms := make([]string, len(fg.Atoms))
		for i, a := range fg.Atoms {
			atoms[i] = string(a)
		}
		desc.FunctionalGroups = append(desc.FunctionalGroups, FunctionalGroup{
			Kind:       string(fg.Kind),
			Atoms:      atoms,
			Attachment: string(fg.Attachment),
		})
	}

	nameStart := time.Now()
	name, err := nomenclature.Name(g)
	prometheus.RecordNaming(s.metrics, time.Since(nameStart), err)
	if err != nil {
		desc.NameError = err.Error()
	} else {
		desc.Name = name
	}

	smilesStart := time.Now()
	smiles, err := notation.Generate(g)
	prometheus.RecordNotation(s.metrics, time.Since(smilesStart), err)
	if err != nil {
		desc.SMILESError = err.Error()
	} else {
		desc.SMILES = smiles
	}
	return desc
}

// ─────────────────────────────────────────────────────────────────────────────
// Persistence
// ─────────────────────────────────────────────────────────────────────────────

// Save validates and stores the graph under the given id and display name.
// A blank id creates a new document. Derived display fields (formula,
// SMILES) are refreshed on every save, and the per-molecule mutex prevents
// two sessions from interleaving writes to one document.
func (s *Service) Save(ctx context.Context, id, name string, g molecule.MoleculeGraph) (chem.MoleculeDocument, error) {
	report := molecule.Validate(g)
	if !report.Valid {
		return chem.MoleculeDocument{}, appErrors.Newf(appErrors.ErrCodeValidation,
			"molecule failed validation: %s", report.Errors[0])
	}

	doc := molecule.ToDocument(g)
	doc.Name = name
	if id == "" {
		id = uuid.NewString()
	}
	doc.ID = id
	doc.Formula = molecule.Formula(g)
	if smiles, err := notation.Generate(g); err == nil {
		doc.SMILES = smiles
	}

	if s.locks != nil {
		m := s.locks.NewMutex("molecule:" + id)
		if err := m.Lock(ctx); err != nil {
			return chem.MoleculeDocument{}, err
		}
		defer func() {
			if err := m.Unlock(ctx); err != nil {
				s.logger.Warn("failed to release molecule lock",
					logging.String("id", id), logging.Err(err))
			}
		}()
	}

	now := time.Now().UTC()
	doc.UpdatedAt = now
	doc.CreatedAt = now
	if existing, err := s.repo.FindByID(ctx, id); err == nil {
		doc.CreatedAt = existing.CreatedAt
	}

	start := time.Now()
	err := s.repo.Save(ctx, doc)
	prometheus.RecordDBQuery(s.metrics, "save", time.Since(start), err)
	if err != nil {
		return chem.MoleculeDocument{}, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, documentKey(id)); err != nil {
			s.logger.Warn("failed to invalidate document cache",
				logging.String("id", id), logging.Err(err))
		}
	}

	s.logger.Info("molecule saved",
		logging.String("id", id),
		logging.String("formula", doc.Formula),
		logging.Int("atoms", len(doc.Atoms)))
	return doc, nil
}

// Load fetches a stored document and rebuilds its working graph. Derived
// graph state is recomputed from structure rather than trusted from storage.
func (s *Service) Load(ctx context.Context, id string) (molecule.MoleculeGraph, chem.MoleculeDocument, error) {
	var doc chem.MoleculeDocument

	if s.cache != nil {
		err := s.cache.Get(ctx, documentKey(id), &doc)
		switch {
		case err == nil:
			prometheus.RecordCacheAccess(s.metrics, "document", true)
		case appErrors.IsCode(err, appErrors.ErrCodeNotFound):
			prometheus.RecordCacheAccess(s.metrics, "document", false)
			doc, err = s.findByID(ctx, id)
			if err != nil {
				return molecule.MoleculeGraph{}, chem.MoleculeDocument{}, err
			}
			if setErr := s.cache.Set(ctx, documentKey(id), doc, s.documentTTL); setErr != nil {
				s.logger.Warn("failed to cache document",
					logging.String("id", id), logging.Err(setErr))
			}
		default:
			s.logger.Warn("document cache unavailable", logging.Err(err))
			doc, err = s.findByID(ctx, id)
			if err != nil {
				return molecule.MoleculeGraph{}, chem.MoleculeDocument{}, err
			}
		}
	} else {
		var err error
		doc, err = s.findByID(ctx, id)
		if err != nil {
			return molecule.MoleculeGraph{}, chem.MoleculeDocument{}, err
		}
	}

	g, err := molecule.FromDocument(doc)
	if err != nil {
		return molecule.MoleculeGraph{}, chem.MoleculeDocument{}, err
	}
	return g, doc, nil
}

func (s *Service) findByID(ctx context.Context, id string) (chem.MoleculeDocument, error) {
	start := time.Now()
	doc, err := s.repo.FindByID(ctx, id)
	prometheus.RecordDBQuery(s.metrics, "find_by_id", time.Since(start), err)
	return doc, err
}

// List returns a page of stored molecule summaries and the total count.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]chem.MoleculeSummary, int64, error) {
	start := time.Now()
	summaries, total, err := s.repo.List(ctx, page, pageSize)
	prometheus.RecordDBQuery(s.metrics, "list", time.Since(start), err)
	return summaries, total, err
}

// FindByFormula returns all stored molecules with the given molecular
// formula (isomer lookup).
func (s *Service) FindByFormula(ctx context.Context, formula string) ([]chem.MoleculeDocument, error) {
	start := time.Now()
	docs, err := s.repo.FindByFormula(ctx, formula)
	prometheus.RecordDBQuery(s.metrics, "find_by_formula", time.Since(start), err)
	return docs, err
}

// Delete removes a stored molecule and drops its cached document.
func (s *Service) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.repo.Delete(ctx, id)
	prometheus.RecordDBQuery(s.metrics, "delete", time.Since(start), err)
	if err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, documentKey(id)); err != nil {
			s.logger.Warn("failed to invalidate document cache",
				logging.String("id", id), logging.Err(err))
		}
	}
	s.logger.Info("molecule deleted", logging.String("id", id))
	return nil
}

// Count returns the number of stored molecules.
func (s *Service) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := s.repo.Count(ctx)
	prometheus.RecordDBQuery(s.metrics, "count", time.Since(start), err)
	return n, err
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func documentKey(id string) string { return "doc:" + id }

// graphHash fingerprints a graph by its document form. Two graphs with the
// same atoms, positions, and bonds hash identically regardless of how they
// were built.
func graphHash(g molecule.MoleculeGraph) string {
	doc := molecule.ToDocument(g)
	doc.ID = ""
	doc.Name = ""
	doc.CreatedAt = time.Time{}
	doc.UpdatedAt = time.Time{}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "unhashable"
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
