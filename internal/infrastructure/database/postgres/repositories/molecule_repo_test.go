package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/monitoring/logging"
	appErrors "github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/types/chem"
)

// ─────────────────────────────────────────────────────────────────────────────
// querier fake
// ─────────────────────────────────────────────────────────────────────────────

type fakeCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls []fakeCall

	execTag pgconn.CommandTag
	execErr error

	rowValues [][]any
	rowErrs   []error
	rowIdx    int

	queryRows [][]any
	queryErr  error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, fakeCall{sql: sql, args: args})
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, fakeCall{sql: sql, args: args})
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{rows: f.queryRows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, fakeCall{sql: sql, args: args})
	row := fakeRow{}
	if f.rowIdx < len(f.rowValues) {
		row.values = f.rowValues[f.rowIdx]
	}
	if f.rowIdx < len(f.rowErrs) {
		row.err = f.rowErrs[f.rowIdx]
	}
	f.rowIdx++
	return row
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignAll(r.values, dest)
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return assignAll(r.rows[r.idx-1], dest)
}

func assignAll(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values for %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *[]byte:
			*d = v.([]byte)
		case *string:
			*d = v.(string)
		case *int64:
			*d = v.(int64)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}

func testDoc() chem.MoleculeDocument {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return chem.MoleculeDocument{
		ID:      "mol-1",
		Name:    "ethanol",
		Formula: "C2H6O",
		SMILES:  "CCO",
		Atoms: []chem.StoredAtom{
			{ID: "a1", Element: "C"},
			{ID: "a2", Element: "C", X: 50},
			{ID: "a3", Element: "O", X: 100},
		},
		Bonds: []chem.StoredBond{
			{ID: "b1", A: "a1", B: "a2", Kind: chem.BondSingle},
			{ID: "b2", A: "a2", B: "a3", Kind: chem.BondSingle},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestSaveUpsertsDocument(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := newMoleculeRepository(db, logging.NewNopLogger())
	doc := testDoc()

	err := repo.Save(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "ON CONFLICT (id) DO UPDATE")
	require.Len(t, db.calls[0].args, 7)
	assert.Equal(t, "mol-1", db.calls[0].args[0])
	assert.Equal(t, "ethanol", db.calls[0].args[1])
	assert.Equal(t, "C2H6O", db.calls[0].args[2])
	assert.Equal(t, "CCO", db.calls[0].args[3])

	var stored chem.MoleculeDocument
	require.NoError(t, json.Unmarshal(db.calls[0].args[4].([]byte), &stored))
	assert.Equal(t, doc, stored)
}

func TestSaveReportsDatabaseError(t *testing.T) {
	db := &fakeDB{execErr: fmt.Errorf("connection reset")}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	err := repo.Save(context.Background(), testDoc())
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeDatabaseError))
}

func TestFindByIDReturnsDocument(t *testing.T) {
	doc := testDoc()
	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	db := &fakeDB{rowValues: [][]any{{payload}}}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	got, err := repo.FindByID(context.Background(), "mol-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.Equal(t, []any{"mol-1"}, db.calls[0].args)
}

func TestFindByIDNotFound(t *testing.T) {
	db := &fakeDB{rowErrs: []error{pgx.ErrNoRows}}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeDocumentNotFound))
}

func TestFindByIDCorruptDocument(t *testing.T) {
	db := &fakeDB{rowValues: [][]any{{[]byte("{not json")}}}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	_, err := repo.FindByID(context.Background(), "mol-1")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeDocumentInvalid))
}

func TestListReturnsSummariesAndTotal(t *testing.T) {
	now := time.Now().UTC()
	db := &fakeDB{
		rowValues: [][]any{{int64(2)}},
		queryRows: [][]any{
			{"mol-2", "benzene", "C6H6", "c1ccccc1", now},
			{"mol-1", "ethanol", "C2H6O", "CCO", now.Add(-time.Hour)},
		},
	}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	summaries, total, err := repo.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, summaries, 2)
	assert.Equal(t, "benzene", summaries[0].Name)
	assert.Equal(t, "C2H6O", summaries[1].Formula)

	// Second call carries LIMIT and OFFSET.
	require.Len(t, db.calls, 2)
	assert.Equal(t, []any{20, 0}, db.calls[1].args)
}

func TestListDefaultsPagination(t *testing.T) {
	db := &fakeDB{rowValues: [][]any{{int64(0)}}}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	_, _, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{20, 0}, db.calls[1].args)
}

func TestFindByFormula(t *testing.T) {
	doc := testDoc()
	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	db := &fakeDB{queryRows: [][]any{{payload}}}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	docs, err := repo.FindByFormula(context.Background(), "C2H6O")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "mol-1", docs[0].ID)
	assert.Equal(t, []any{"C2H6O"}, db.calls[0].args)
}

func TestDeleteRemovesRow(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	require.NoError(t, repo.Delete(context.Background(), "mol-1"))
}

func TestDeleteMissingRow(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeDocumentNotFound))
}

func TestCount(t *testing.T) {
	db := &fakeDB{rowValues: [][]any{{int64(7)}}}
	repo := newMoleculeRepository(db, logging.NewNopLogger())

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
