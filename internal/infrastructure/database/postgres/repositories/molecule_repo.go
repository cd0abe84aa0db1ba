// Package repositories holds the PostgreSQL persistence for molecule
// documents.  The full document is stored as JSONB; name, formula, and SMILES
// are promoted to columns so listings never deserialize graphs.
package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/monitoring/logging"
	appErrors "github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/types/chem"
)

// querier is the subset of pgxpool.Pool the repository needs.  Tests supply a
// fake; production code passes the real pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MoleculeRepository is the PostgreSQL store for molecule documents.
type MoleculeRepository struct {
	db     querier
	logger logging.Logger
}

// NewMoleculeRepository constructs a repository over the given pool.
func NewMoleculeRepository(pool *pgxpool.Pool, logger logging.Logger) *MoleculeRepository {
	return newMoleculeRepository(pool, logger)
}

func newMoleculeRepository(db querier, logger logging.Logger) *MoleculeRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MoleculeRepository{db: db, logger: logger}
}

// Save upserts a molecule document keyed by its ID.  The stored created_at of
// an existing row is preserved; updated_at always advances.
func (r *MoleculeRepository) Save(ctx context.Context, doc chem.MoleculeDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeSerialization, "failed to encode molecule document")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO molecules (id, name, formula, smiles, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			formula = EXCLUDED.formula,
			smiles = EXCLUDED.smiles,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at`,
		doc.ID, doc.Name, doc.Formula, doc.SMILES, payload, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to save molecule", logging.String("id", doc.ID), logging.Err(err))
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to save molecule")
	}

	r.logger.Debug("molecule saved",
		logging.String("id", doc.ID),
		logging.String("formula", doc.Formula),
	)
	return nil
}

// FindByID loads one molecule document.
func (r *MoleculeRepository) FindByID(ctx context.Context, id string) (chem.MoleculeDocument, error) {
	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT document FROM molecules WHERE id = $1`, id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chem.MoleculeDocument{}, appErrors.Newf(appErrors.ErrCodeDocumentNotFound,
				"no molecule with id %s", id)
		}
		r.logger.Error("failed to load molecule", logging.String("id", id), logging.Err(err))
		return chem.MoleculeDocument{}, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to load molecule")
	}

	var doc chem.MoleculeDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return chem.MoleculeDocument{}, appErrors.Wrap(err, appErrors.ErrCodeDocumentInvalid,
			"stored molecule document is not valid JSON")
	}
	return doc, nil
}

// List returns a page of molecule summaries ordered by most recent update,
// plus the total row count.
func (r *MoleculeRepository) List(ctx context.Context, page, pageSize int) ([]chem.MoleculeSummary, int64, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM molecules`).Scan(&total); err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to count molecules")
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, formula, smiles, updated_at
		FROM molecules
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to list molecules")
	}
	defer rows.Close()

	var summaries []chem.MoleculeSummary
	for rows.Next() {
		var s chem.MoleculeSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Formula, &s.SMILES, &s.UpdatedAt); err != nil {
			return nil, 0, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to scan molecule row")
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.CodeDatabaseError, "row iteration error")
	}
	return summaries, total, nil
}

// FindByFormula returns all stored molecules with the given molecular
// formula, most recently updated first.
func (r *MoleculeRepository) FindByFormula(ctx context.Context, formula string) ([]chem.MoleculeDocument, error) {
	rows, err := r.db.Query(ctx, `
		SELECT document FROM molecules
		WHERE formula = $1
		ORDER BY updated_at DESC`, formula)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to query molecules by formula")
	}
	defer rows.Close()

	var docs []chem.MoleculeDocument
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to scan molecule row")
		}
		var doc chem.MoleculeDocument
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeDocumentInvalid,
				"stored molecule document is not valid JSON")
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "row iteration error")
	}
	return docs, nil
}

// Delete removes a molecule document.  Deleting an absent ID is an error so
// callers can distinguish it from success.
func (r *MoleculeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM molecules WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete molecule", logging.String("id", id), logging.Err(err))
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to delete molecule")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.Newf(appErrors.ErrCodeDocumentNotFound, "no molecule with id %s", id)
	}
	return nil
}

// Count returns the number of stored molecules.
func (r *MoleculeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM molecules`).Scan(&count); err != nil {
		return 0, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to count molecules")
	}
	return count, nil
}
