package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/edgar-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS companies (
	cik        TEXT PRIMARY KEY,
	ticker     TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS financial_facts (
	cik             TEXT NOT NULL,
	accession       TEXT NOT NULL,
	metric          TEXT NOT NULL,
	value           REAL NOT NULL,
	period_end_date TEXT NOT NULL,
	fiscal_year     INTEGER NOT NULL,
	fiscal_quarter  INTEGER NOT NULL,
	form_type       TEXT NOT NULL,
	filing_date     TEXT NOT NULL,
	updated_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (accession, metric)
);

CREATE INDEX IF NOT EXISTS idx_companies_ticker ON companies(ticker);
CREATE INDEX IF NOT EXISTS idx_facts_cik ON financial_facts(cik);
CREATE INDEX IF NOT EXISTS idx_facts_cik_metric ON financial_facts(cik, metric);
CREATE INDEX IF NOT EXISTS idx_facts_fiscal ON financial_facts(fiscal_year, fiscal_quarter);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertCompany(ctx context.Context, c Company) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (cik, ticker, title, updated_at) VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT (cik) DO UPDATE SET ticker = excluded.ticker, title = excluded.title, updated_at = datetime('now')`,
		c.CIK, c.Ticker, c.Title,
	)
	return eris.Wrapf(err, "sqlite: upsert company %s", c.CIK)
}

func (s *SQLiteStore) GetCompany(ctx context.Context, cik string) (*Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT cik, ticker, title FROM companies WHERE cik = ?`, cik,
	)
	var c Company
	err := row.Scan(&c.CIK, &c.Ticker, &c.Title)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get company %s", cik)
	}
	return &c, nil
}

func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cik, ticker, title FROM companies ORDER BY ticker`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.CIK, &c.Ticker, &c.Title); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

func (s *SQLiteStore) SaveFacts(ctx context.Context, facts []model.CanonicalFact) (int, error) {
	if len(facts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO financial_facts
		 (cik, accession, metric, value, period_end_date, fiscal_year, fiscal_quarter, form_type, filing_date, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		 ON CONFLICT (accession, metric) DO UPDATE SET
		   cik = excluded.cik, value = excluded.value,
		   period_end_date = excluded.period_end_date,
		   fiscal_year = excluded.fiscal_year, fiscal_quarter = excluded.fiscal_quarter,
		   form_type = excluded.form_type, filing_date = excluded.filing_date,
		   updated_at = datetime('now')`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare fact upsert")
	}
	defer stmt.Close()

	for _, f := range facts {
		if _, err := stmt.ExecContext(ctx,
			f.CIK, f.Accession, f.Metric, f.Value, f.PeriodEndDate,
			f.FiscalYear, f.FiscalQuarter, string(f.FormType), f.FilingDate,
		); err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert fact %s/%s", f.Accession, f.Metric)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit facts")
	}
	return len(facts), nil
}

func (s *SQLiteStore) ListFacts(ctx context.Context, filter FactFilter) ([]model.CanonicalFact, error) {
	query := `SELECT cik, accession, metric, value, period_end_date, fiscal_year, fiscal_quarter, form_type, filing_date
	          FROM financial_facts WHERE 1=1`
	var args []any

	if filter.CIK != "" {
		query += ` AND cik = ?`
		args = append(args, filter.CIK)
	}
	if filter.Metric != "" {
		query += ` AND metric = ?`
		args = append(args, filter.Metric)
	}
	if filter.FormType != "" {
		query += ` AND form_type = ?`
		args = append(args, string(filter.FormType))
	}
	if filter.FromYear > 0 {
		query += ` AND fiscal_year >= ?`
		args = append(args, filter.FromYear)
	}
	query += ` ORDER BY fiscal_year DESC, fiscal_quarter DESC, metric`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list facts")
	}
	defer rows.Close()

	var facts []model.CanonicalFact
	for rows.Next() {
		var f model.CanonicalFact
		var form string
		if err := rows.Scan(&f.CIK, &f.Accession, &f.Metric, &f.Value, &f.PeriodEndDate,
			&f.FiscalYear, &f.FiscalQuarter, &form, &f.FilingDate); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan fact")
		}
		f.FormType = model.FormType(form)
		facts = append(facts, f)
	}
	return facts, eris.Wrap(rows.Err(), "sqlite: list facts iterate")
}
