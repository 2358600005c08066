package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb"
	"github.com/rs/zerolog/log"

	"github.com/machine-dashboard/backend/internal/models"
)

// DuckOptions tunes the embedded DuckDB instance.
type DuckOptions struct {
	Threads     int
	MemoryLimit string
}

// DuckStore loads the activity table into a temporary DuckDB file and
// answers option and filter queries with SQL.
type DuckStore struct {
	db     *sql.DB
	dbPath string
	stats  Stats

	// limits concurrent queries
	querySem chan struct{}
}

// NewDuckStore creates a DuckDB file in dir and loads table into it.
func NewDuckStore(dir string, table *models.ActivityTable, opts DuckOptions) (*DuckStore, error) {
	dbPath := filepath.Join(dir, fmt.Sprintf("activity_%s.duckdb", uuid.NewString()))
	ds, err := openDuckStore(dbPath, opts)
	if err != nil {
		return nil, err
	}
	if err := ds.load(table); err != nil {
		ds.Close()
		return nil, err
	}
	ds.stats = statsOf(table)
	return ds, nil
}

func openDuckStore(dbPath string, opts DuckOptions) (*DuckStore, error) {
	logger := log.With().Str("component", "duckstore").Str("path", dbPath).Logger()
	logger.Debug().Msg("creating database")

	threads := opts.Threads
	if threads <= 0 {
		threads = 2
	}
	memLimit := opts.MemoryLimit
	if memLimit == "" {
		memLimit = "512MB"
	}

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			fmt.Sprintf("PRAGMA memory_limit='%s'", memLimit),
			fmt.Sprintf("PRAGMA threads=%d", threads),
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return fmt.Errorf("%s: %w", pragma, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	_, err = db.Exec(`
		CREATE TABLE activity (
			id         INTEGER PRIMARY KEY,
			machine_id VARCHAR NOT NULL,
			state      VARCHAR NOT NULL,
			start_raw  VARCHAR NOT NULL,
			end_raw    VARCHAR NOT NULL,
			start_ok   BOOLEAN NOT NULL,
			start_us   BIGINT NOT NULL,
			end_ok     BOOLEAN NOT NULL,
			end_us     BIGINT NOT NULL,
			line       INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		os.Remove(dbPath)
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &DuckStore{
		db:       db,
		dbPath:   dbPath,
		querySem: make(chan struct{}, 3),
	}, nil
}

// load bulk inserts the records through the Appender API.
func (ds *DuckStore) load(table *models.ActivityTable) error {
	start := time.Now()

	conn, err := ds.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	err = conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", driverConn)
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", "activity")
		if err != nil {
			return fmt.Errorf("failed to create appender: %w", err)
		}
		defer appender.Close()

		for i, r := range table.Records {
			startOK, startUs := encodeInstant(r.Start)
			endOK, endUs := encodeInstant(r.End)
			err := appender.AppendRow(
				int32(i),
				r.MachineID,
				r.State,
				r.StartRaw,
				r.EndRaw,
				startOK,
				startUs,
				endOK,
				endUs,
				int32(r.Line),
			)
			if err != nil {
				return fmt.Errorf("failed to append row %d: %w", i, err)
			}
		}
		return appender.Flush()
	})
	if err != nil {
		return fmt.Errorf("appender error: %w", err)
	}

	log.Debug().
		Str("component", "duckstore").
		Int("rows", table.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("activity table loaded")
	return nil
}

func (ds *DuckStore) Engine() string { return EngineDuckDB }

func (ds *DuckStore) Stats() Stats { return ds.stats }

// Options returns distinct machines and states in first-appearance order.
func (ds *DuckStore) Options(ctx context.Context) (models.FilterOptions, error) {
	release, err := ds.acquire(ctx)
	if err != nil {
		return models.FilterOptions{}, err
	}
	defer release()

	machines, err := ds.distinct(ctx, "machine_id")
	if err != nil {
		return models.FilterOptions{}, err
	}
	states, err := ds.distinct(ctx, "state")
	if err != nil {
		return models.FilterOptions{}, err
	}
	return models.FilterOptions{Machines: machines, States: states}, nil
}

func (ds *DuckStore) distinct(ctx context.Context, column string) ([]string, error) {
	// column is one of two fixed identifiers, never user input
	rows, err := ds.db.QueryContext(ctx,
		"SELECT "+column+" FROM activity GROUP BY "+column+" ORDER BY min(id)")
	if err != nil {
		return nil, fmt.Errorf("distinct %s query failed: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Select returns the rows matching both predicates, in file order.
func (ds *DuckStore) Select(ctx context.Context, sel models.Selection) ([]models.ActivityRecord, error) {
	release, err := ds.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := ds.db.QueryContext(ctx, `
		SELECT machine_id, state, start_raw, end_raw, start_ok, start_us, end_ok, end_us, line
		FROM activity
		WHERE (machine_id = ?) AND (state = ?)
		ORDER BY id
	`, sel.Machine, sel.State)
	if err != nil {
		return nil, fmt.Errorf("select query failed: %w", err)
	}
	defer rows.Close()

	records := make([]models.ActivityRecord, 0)
	for rows.Next() {
		var r models.ActivityRecord
		var startOK, endOK bool
		var startUs, endUs int64
		var line int32
		err := rows.Scan(&r.MachineID, &r.State, &r.StartRaw, &r.EndRaw, &startOK, &startUs, &endOK, &endUs, &line)
		if err != nil {
			return nil, err
		}
		r.Start = decodeInstant(startOK, startUs)
		r.End = decodeInstant(endOK, endUs)
		r.Line = int(line)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (ds *DuckStore) acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case ds.querySem <- struct{}{}:
		return func() { <-ds.querySem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close closes the database and removes the file.
func (ds *DuckStore) Close() error {
	var err error
	if ds.db != nil {
		err = ds.db.Close()
	}
	if ds.dbPath != "" {
		os.Remove(ds.dbPath)
		os.Remove(ds.dbPath + ".wal")
	}
	return err
}

// Instants are stored as UTC microseconds plus a validity flag; the zero
// time does not fit a microsecond BIGINT.
func encodeInstant(t time.Time) (bool, int64) {
	if t.IsZero() {
		return false, 0
	}
	return true, t.UnixMicro()
}

func decodeInstant(ok bool, us int64) time.Time {
	if !ok {
		return time.Time{}
	}
	return time.UnixMicro(us).UTC()
}
