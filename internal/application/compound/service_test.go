package compound

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/mutation"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/database/redis"
	appErrors "github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/types/chem"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	mu        sync.Mutex
	docs      map[string]chem.MoleculeDocument
	findCalls int
	saveErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[string]chem.MoleculeDocument)}
}

func (r *fakeRepo) Save(_ context.Context, doc chem.MoleculeDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (chem.MoleculeDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	doc, ok := r.docs[id]
	if !ok {
		return chem.MoleculeDocument{}, appErrors.Newf(appErrors.ErrCodeDocumentNotFound,
			"no molecule with id %s", id)
	}
	return doc, nil
}

func (r *fakeRepo) List(_ context.Context, _, _ int) ([]chem.MoleculeSummary, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chem.MoleculeSummary
	for _, doc := range r.docs {
		out = append(out, chem.MoleculeSummary{ID: doc.ID, Name: doc.Name, Formula: doc.Formula})
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) FindByFormula(_ context.Context, formula string) ([]chem.MoleculeDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chem.MoleculeDocument
	for _, doc := range r.docs {
		if doc.Formula == formula {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return appErrors.Newf(appErrors.ErrCodeDocumentNotFound, "no molecule with id %s", id)
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

// fakeCache is an in-memory stand-in for the Redis cache. Values round-trip
// through JSON the same way the real cache serializes them.
type fakeCache struct {
	mu          sync.Mutex
	store       map[string][]byte
	loaderCalls int
	deleted     []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.store[key]
	if !ok {
		return appErrors.New(appErrors.ErrCodeNotFound, "cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = data
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok, nil
}

func (c *fakeCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}
	c.mu.Lock()
	c.loaderCalls++
	c.mu.Unlock()
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return c.Get(ctx, key, dest)
}

func (c *fakeCache) DeleteByPrefix(context.Context, string) (int64, error) { return 0, nil }

func (c *fakeCache) Expire(context.Context, string, time.Duration) error { return nil }

func (c *fakeCache) TTL(context.Context, string) (time.Duration, error) { return 0, nil }

func (c *fakeCache) Ping(context.Context) error { return nil }

type fakeMutex struct {
	locks   int
	unlocks int
}

func (m *fakeMutex) Lock(context.Context) error { m.locks++; return nil }

func (m *fakeMutex) TryLock(context.Context) (bool, error) { m.locks++; return true, nil }

func (m *fakeMutex) Unlock(context.Context) error { m.unlocks++; return nil }
func (m *fakeMutex) Extend(context.Context, time.Duration) (bool, error) {
	return true, nil
}
func (m *fakeMutex) TTL(context.Context) (time.Duration, error) { return 0, nil }

type fakeLockFactory struct {
	mu      sync.Mutex
	mutexes map[string]*fakeMutex
}

func newFakeLockFactory() *fakeLockFactory {
	return &fakeLockFactory{mutexes: make(map[string]*fakeMutex)}
}

func (f *fakeLockFactory) NewMutex(name string, _ ...redis.LockOption) redis.DistributedLock {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.mutexes[name]
	if !ok {
		m = &fakeMutex{}
		f.mutexes[name] = m
	}
	return m
}

// ─────────────────────────────────────────────────────────────────────────────
// Drafts and edits
// ─────────────────────────────────────────────────────────────────────────────

func TestNewDraft_DefaultsToSingleCarbon(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	g, err := svc.NewDraft("")
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumAtoms())
	assert.Equal(t, "CH4", molecule.Formula(g))
}

func TestNewDraft_ByTemplateName(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	g, err := svc.NewDraft("benzene")
	require.NoError(t, err)
	assert.Equal(t, 6, g.NumAtoms())
	assert.True(t, g.HasAromaticBond())
}

func TestNewDraft_UnknownTemplate(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, err := svc.NewDraft("unobtainium")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeNotFound))
}

func TestApply_ExtendChain(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	methane := molecule.SingleCarbon()

	res := svc.Apply(context.Background(), methane, EditRequest{
		Op:     OpExtendChain,
		Target: methane.AtomIDs()[0],
	})
	require.True(t, res.Ok())
	assert.Equal(t, 2, res.Graph.NumAtoms())
	assert.Equal(t, "C2H6", molecule.Formula(res.Graph))

	// The caller's graph is untouched.
	assert.Equal(t, 1, methane.NumAtoms())
}

func TestApply_AttachSubstituent(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	methane := molecule.SingleCarbon()

	res := svc.Apply(context.Background(), methane, EditRequest{
		Op:          OpAttachSubstituent,
		Target:      methane.AtomIDs()[0],
		Substituent: mutation.SubstituentHydroxyl,
	})
	require.True(t, res.Ok())
	assert.Equal(t, "CH4O", molecule.Formula(res.Graph))
}

func TestApply_RejectionCarriesTypedReason(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	butane, err := molecule.AlkaneChain(4)
	require.NoError(t, err)

	res := svc.Apply(context.Background(), butane, EditRequest{
		Op:     OpShortenChain,
		Target: butane.AtomIDs()[1],
	})
	require.False(t, res.Ok())
	assert.True(t, appErrors.IsCode(res.Err, appErrors.ErrCodeNotTerminal))
	assert.NotEmpty(t, res.Reason())

	outcome := OutcomeDTO(res)
	assert.False(t, outcome.Success)
	assert.Equal(t, "MUT_002", outcome.Code)
	assert.Equal(t, res.Reason(), outcome.Reason)
}

func TestApply_UnknownOperation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	g := molecule.SingleCarbon()

	res := svc.Apply(context.Background(), g, EditRequest{Op: "transmute"})
	require.False(t, res.Ok())
	assert.True(t, appErrors.IsCode(res.Err, appErrors.ErrCodeBadRequest))
}

func TestOutcomeDTO_Success(t *testing.T) {
	outcome := OutcomeDTO(mutation.Result{Graph: molecule.SingleCarbon()})
	assert.True(t, outcome.Success)
	assert.Empty(t, outcome.Reason)
	assert.Empty(t, outcome.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Describe
// ─────────────────────────────────────────────────────────────────────────────

func TestDescribe_Ethanol(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	desc, err := svc.Describe(context.Background(), molecule.Ethanol())
	require.NoError(t, err)

	assert.Equal(t, "C2H6O", desc.Formula)
	assert.Equal(t, "C₂H₆O", desc.FormulaSubscript)
	assert.InDelta(t, 46.07, desc.MolecularWeight, 0.01)
	assert.Equal(t, 0, desc.UnsaturationDegree)
	assert.Equal(t, "ethanol", desc.Name)
	assert.Empty(t, desc.NameError)
	assert.Equal(t, "CCO", desc.SMILES)
	assert.True(t, desc.Validation.Valid)

	require.Len(t, desc.FunctionalGroups, 1)
	assert.Equal(t, "alcohol", desc.FunctionalGroups[0].Kind)
}

func TestDescribe_UnsaturatedMolecule(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	desc, err := svc.Describe(context.Background(), molecule.Ethene())
	require.NoError(t, err)
	assert.Equal(t, "C2H4", desc.Formula)
	assert.Equal(t, 1, desc.UnsaturationDegree)
	assert.Equal(t, "ethene", desc.Name)
}

func TestDescribe_CachedByGraphContent(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(newFakeRepo(), nil, WithCache(cache))
	ethanol := molecule.Ethanol()

	first, err := svc.Describe(context.Background(), ethanol)
	require.NoError(t, err)
	second, err := svc.Describe(context.Background(), ethanol)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.loaderCalls)

	// A structural change produces a new content hash and a fresh derivation.
	res := svc.Apply(context.Background(), ethanol, EditRequest{
		Op:     OpExtendChain,
		Target: terminalCarbon(t, ethanol),
	})
	require.True(t, res.Ok())

	_, err = svc.Describe(context.Background(), res.Graph)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.loaderCalls)
}

// terminalCarbon returns a terminal carbon usable as an extension point.
func terminalCarbon(t *testing.T, g molecule.MoleculeGraph) molecule.AtomID {
	t.Helper()
	for _, id := range g.AtomIDs() {
		atom, ok := g.Atom(id)
		if !ok || atom.Element != molecule.Carbon {
			continue
		}
		if g.IsTerminal(id) {
			return id
		}
	}
	t.Fatal("no terminal carbon in graph")
	return ""
}

// ─────────────────────────────────────────────────────────────────────────────
// Persistence
// ─────────────────────────────────────────────────────────────────────────────

func TestSave_NewMolecule(t *testing.T) {
	repo := newFakeRepo()
	locks := newFakeLockFactory()
	svc := NewService(repo, nil, WithLockFactory(locks))

	doc, err := svc.Save(context.Background(), "", "my ethanol", molecule.Ethanol())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "my ethanol", doc.Name)
	assert.Equal(t, "C2H6O", doc.Formula)
	assert.Equal(t, "CCO", doc.SMILES)
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)
	assert.Len(t, doc.Atoms, 3)
	assert.Len(t, doc.Bonds, 2)

	stored, ok := repo.docs[doc.ID]
	require.True(t, ok)
	assert.Equal(t, doc, stored)

	m := locks.mutexes["molecule:"+doc.ID]
	require.NotNil(t, m)
	assert.Equal(t, 1, m.locks)
	assert.Equal(t, 1, m.unlocks)
}

func TestSave_PreservesCreatedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	first, err := svc.Save(context.Background(), "mol-1", "v1", molecule.Ethanol())
	require.NoError(t, err)

	second, err := svc.Save(context.Background(), "mol-1", "v2", molecule.AceticAcid())
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	assert.Equal(t, "C2H4O2", second.Formula)
}

func TestSave_RejectsInvalidGraph(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	// Two carbons with no bond: disconnected, so validation fails.
	g := molecule.EmptyGraph()
	require.NoError(t, g.AddAtom(molecule.AtomNode{ID: molecule.NewAtomID(), Element: molecule.Carbon}))
	require.NoError(t, g.AddAtom(molecule.AtomNode{ID: molecule.NewAtomID(), Element: molecule.Carbon}))
	g.Recompute()

	_, err := svc.Save(context.Background(), "", "broken", g)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeValidation))
}

func TestSave_InvalidatesCachedDocument(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, nil, WithCache(cache))

	_, err := svc.Save(context.Background(), "mol-1", "v1", molecule.Ethanol())
	require.NoError(t, err)

	// Prime the cache, then overwrite and make sure the stale entry is gone.
	_, _, err = svc.Load(context.Background(), "mol-1")
	require.NoError(t, err)
	_, ok := cache.store["doc:mol-1"]
	require.True(t, ok)

	_, err = svc.Save(context.Background(), "mol-1", "v2", molecule.AceticAcid())
	require.NoError(t, err)
	_, ok = cache.store["doc:mol-1"]
	assert.False(t, ok)
}

func TestLoad_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	saved, err := svc.Save(context.Background(), "", "ethanol", molecule.Ethanol())
	require.NoError(t, err)

	g, doc, err := svc.Load(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, doc.ID)
	assert.Equal(t, 3, g.NumAtoms())
	assert.Equal(t, "C2H6O", molecule.Formula(g))
}

func TestLoad_SecondReadServedFromCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, nil, WithCache(cache))

	_, err := svc.Save(context.Background(), "mol-1", "ethanol", molecule.Ethanol())
	require.NoError(t, err)

	repo.findCalls = 0
	_, _, err = svc.Load(context.Background(), "mol-1")
	require.NoError(t, err)
	_, _, err = svc.Load(context.Background(), "mol-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)
}

func TestLoad_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, _, err := svc.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeDocumentNotFound))
}

func TestDelete_RemovesDocumentAndCacheEntry(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, nil, WithCache(cache))

	_, err := svc.Save(context.Background(), "mol-1", "ethanol", molecule.Ethanol())
	require.NoError(t, err)
	_, _, err = svc.Load(context.Background(), "mol-1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "mol-1"))
	assert.Empty(t, repo.docs)
	assert.Contains(t, cache.deleted, "doc:mol-1")

	err = svc.Delete(context.Background(), "mol-1")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeDocumentNotFound))
}

func TestFindByFormula_Isomers(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	butane, err := molecule.AlkaneChain(4)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "", "butane", butane)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "", "isobutane", molecule.Isobutane())
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "", "ethanol", molecule.Ethanol())
	require.NoError(t, err)

	docs, err := svc.FindByFormula(context.Background(), "C4H10")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestCount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.Save(context.Background(), "", "ethanol", molecule.Ethanol())
	require.NoError(t, err)

	n, err = svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
