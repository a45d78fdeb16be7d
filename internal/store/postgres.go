package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/edgar-cli/internal/db"
	"github.com/sells-group/edgar-cli/internal/model"
)

// PostgresStore implements Store using pgxpool. Fact batches go through
// the COPY-based bulk upsert instead of row-at-a-time statements.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// factColumns is the insertion column list for financial_facts, in
// bulk-upsert row order.
var factColumns = []string{
	"cik", "accession", "metric", "value",
	"period_end_date", "fiscal_year", "fiscal_quarter",
	"form_type", "filing_date",
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool, letting tests inject a
// pgxmock pool.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool returns the underlying database pool for subsystems that need
// direct query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS companies (
	cik        TEXT PRIMARY KEY,
	ticker     TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS financial_facts (
	cik             TEXT NOT NULL,
	accession       TEXT NOT NULL,
	metric          TEXT NOT NULL,
	value           DOUBLE PRECISION NOT NULL,
	period_end_date DATE NOT NULL,
	fiscal_year     INTEGER NOT NULL,
	fiscal_quarter  INTEGER NOT NULL,
	form_type       TEXT NOT NULL,
	filing_date     TEXT NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (accession, metric)
);

CREATE INDEX IF NOT EXISTS idx_companies_ticker ON companies(ticker);
CREATE INDEX IF NOT EXISTS idx_facts_cik ON financial_facts(cik);
CREATE INDEX IF NOT EXISTS idx_facts_cik_metric ON financial_facts(cik, metric);
CREATE INDEX IF NOT EXISTS idx_facts_fiscal ON financial_facts(fiscal_year, fiscal_quarter);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) UpsertCompany(ctx context.Context, c Company) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO companies (cik, ticker, title, updated_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (cik) DO UPDATE SET ticker = $2, title = $3, updated_at = now()`,
		c.CIK, c.Ticker, c.Title,
	)
	return eris.Wrapf(err, "postgres: upsert company %s", c.CIK)
}

func (s *PostgresStore) GetCompany(ctx context.Context, cik string) (*Company, error) {
	var c Company
	err := s.pool.QueryRow(ctx,
		`SELECT cik, ticker, title FROM companies WHERE cik = $1`, cik,
	).Scan(&c.CIK, &c.Ticker, &c.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get company %s", cik)
	}
	return &c, nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT cik, ticker, title FROM companies ORDER BY ticker`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.CIK, &c.Ticker, &c.Title); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

func (s *PostgresStore) SaveFacts(ctx context.Context, facts []model.CanonicalFact) (int, error) {
	if len(facts) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, []any{
			f.CIK, f.Accession, f.Metric, f.Value,
			f.PeriodEndDate, f.FiscalYear, f.FiscalQuarter,
			string(f.FormType), f.FilingDate,
		})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "financial_facts",
		Columns:      factColumns,
		ConflictKeys: []string{"accession", "metric"},
		TouchColumn:  "updated_at",
	}, rows)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: save facts")
	}
	return int(n), nil
}

func (s *PostgresStore) ListFacts(ctx context.Context, filter FactFilter) ([]model.CanonicalFact, error) {
	query := `SELECT cik, accession, metric, value, period_end_date::text, fiscal_year, fiscal_quarter, form_type, filing_date
	          FROM financial_facts WHERE true`
	args := []any{}
	argIdx := 1

	if filter.CIK != "" {
		query += fmt.Sprintf(` AND cik = $%d`, argIdx)
		args = append(args, filter.CIK)
		argIdx++
	}
	if filter.Metric != "" {
		query += fmt.Sprintf(` AND metric = $%d`, argIdx)
		args = append(args, filter.Metric)
		argIdx++
	}
	if filter.FormType != "" {
		query += fmt.Sprintf(` AND form_type = $%d`, argIdx)
		args = append(args, string(filter.FormType))
		argIdx++
	}
	if filter.FromYear > 0 {
		query += fmt.Sprintf(` AND fiscal_year >= $%d`, argIdx)
		args = append(args, filter.FromYear)
		argIdx++
	}
	query += ` ORDER BY fiscal_year DESC, fiscal_quarter DESC, metric`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list facts")
	}
	defer rows.Close()

	var facts []model.CanonicalFact
	for rows.Next() {
		var f model.CanonicalFact
		var form string
		if err := rows.Scan(&f.CIK, &f.Accession, &f.Metric, &f.Value, &f.PeriodEndDate,
			&f.FiscalYear, &f.FiscalQuarter, &form, &f.FilingDate); err != nil {
			return nil, eris.Wrap(err, "postgres: scan fact")
		}
		f.FormType = model.FormType(form)
		facts = append(facts, f)
	}
	return facts, eris.Wrap(rows.Err(), "postgres: list facts iterate")
}

// Open builds a Store from driver + DSN, the single entry point the
// CLI uses.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
