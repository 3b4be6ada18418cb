// Package datarecording stores flat records in SQL tables. SQLite is the
// default backend. PostgreSQL is reached through pgx.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/structs"

	// Need to use PostgreSQL connections.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that buffers records and writes them to tables.
type DataRecorder interface {
	// CreateTable creates a table whose columns are the exported fields of
	// sampleEntry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry of the same type as the sample entry of
	// the table.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all tables, in creation order.
	ListTables() []string

	// Flush writes all buffered entries.
	Flush()

	// Close flushes and releases the database.
	Close() error
}

const defaultBatchSize = 10000

type dialect struct {
	name        string
	placeholder func(i int) string
}

var (
	sqliteDialect = dialect{
		name:        "sqlite3",
		placeholder: func(int) string { return "?" },
	}
	postgresDialect = dialect{
		name:        "postgres",
		placeholder: func(i int) string { return "$" + strconv.Itoa(i+1) },
	}
)

// New creates a DataRecorder that writes to path.sqlite3. An empty path picks
// a unique file name. It panics if the file already exists.
func New(path string) DataRecorder {
	w := newSQLWriter(sqliteDialect)
	w.dbName = path
	w.init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewWithDB creates a DataRecorder that writes to an open SQLite database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := newSQLWriter(sqliteDialect)
	w.DB = db

	atexit.Register(func() { w.Flush() })

	return w
}

// NewPostgres creates a DataRecorder that writes to the PostgreSQL database
// at dsn.
func NewPostgres(dsn string) (DataRecorder, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	log.Info().Msg("postgres connected for recording")

	return NewPostgresWithDB(db), nil
}

// NewPostgresWithDB creates a DataRecorder that writes to an open PostgreSQL
// database.
func NewPostgresWithDB(db *sql.DB) DataRecorder {
	w := newSQLWriter(postgresDialect)
	w.DB = db

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	name       string
	structType reflect.Type
	entries    []any
}

// sqlWriter buffers entries per table and writes them in one transaction.
type sqlWriter struct {
	*sql.DB

	dialect    dialect
	dbName     string
	tables     map[string]*table
	order      []string
	batchSize  int
	entryCount int
	closed     bool
}

func newSQLWriter(d dialect) *sqlWriter {
	return &sqlWriter{
		dialect:   d,
		batchSize: defaultBatchSize,
		tables:    make(map[string]*table),
	}
}

func (w *sqlWriter) init() {
	if w.dbName == "" {
		w.dbName = "pdptw_scenarios_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	log.Info().Str("file", filename).Msg("database created for recording")

	w.DB = db
}

// columnType returns the SQL type of a field kind, or "" if the kind cannot
// be recorded. Both backends accept these type names.
func columnType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "BOOLEAN"
	case
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32:
		return "BIGINT"
	case reflect.Float32, reflect.Float64:
		return "DOUBLE PRECISION"
	case reflect.String:
		return "TEXT"
	default:
		return ""
	}
}

// exportedFields lists the fields of entry that become columns. Table
// creation, placeholders, and inserted values all use this list.
func exportedFields(entry any) []*structs.Field {
	var fields []*structs.Field
	for _, f := range structs.Fields(entry) {
		if f.IsExported() {
			fields = append(fields, f)
		}
	}

	return fields
}

func checkStructFields(entry any) error {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("entry of type %v is not a struct", t)
	}

	fields := exportedFields(entry)
	if len(fields) == 0 {
		return fmt.Errorf("entry of type %v has no exported field", t)
	}

	for _, f := range fields {
		if columnType(f.Kind()) == "" {
			return fmt.Errorf("field %s of kind %s cannot be recorded",
				f.Name(), f.Kind())
		}
	}

	return nil
}

func (w *sqlWriter) CreateTable(tableName string, sampleEntry any) {
	if err := checkStructFields(sampleEntry); err != nil {
		panic(err)
	}

	if _, exists := w.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	w.mustExecute(createTableSQL(tableName, sampleEntry))

	w.tables[tableName] = &table{
		name:       tableName,
		structType: reflect.TypeOf(sampleEntry),
	}
	w.order = append(w.order, tableName)
}

func (w *sqlWriter) InsertData(tableName string, entry any) {
	t, exists := w.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.structType {
		panic(fmt.Sprintf("entry of type %T does not fit table %s",
			entry, tableName))
	}

	t.entries = append(t.entries, entry)

	w.entryCount++
	if w.entryCount >= w.batchSize {
		w.Flush()
	}
}

func (w *sqlWriter) ListTables() []string {
	return slices.Clone(w.order)
}

func (w *sqlWriter) Flush() {
	if w.closed || w.entryCount == 0 {
		return
	}

	tx, err := w.Begin()
	if err != nil {
		panic(err)
	}

	// No-op once committed.
	defer func() { _ = tx.Rollback() }()

	for _, name := range w.order {
		w.flushTable(tx, w.tables[name])
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	log.Debug().
		Str("backend", w.dialect.name).
		Int("entries", w.entryCount).
		Msg("records flushed")

	w.entryCount = 0
}

func (w *sqlWriter) flushTable(tx *sql.Tx, t *table) {
	if len(t.entries) == 0 {
		return
	}

	stmt := prepareStatement(tx, w.dialect, t.name, t.entries[0])
	defer stmt.Close()

	for _, entry := range t.entries {
		fields := exportedFields(entry)

		values := make([]any, 0, len(fields))
		for _, f := range fields {
			values = append(values, f.Value())
		}

		if _, err := stmt.Exec(values...); err != nil {
			panic(err)
		}
	}

	t.entries = nil
}

func (w *sqlWriter) Close() error {
	if w.closed {
		return nil
	}

	w.Flush()
	w.closed = true

	return w.DB.Close()
}

func (w *sqlWriter) mustExecute(query string) sql.Result {
	res, err := w.Exec(query)
	if err != nil {
		log.Error().Str("query", query).Err(err).Msg("failed to execute")
		panic(err)
	}

	return res
}

func createTableSQL(tableName string, sampleEntry any) string {
	fields := exportedFields(sampleEntry)

	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		columns = append(columns, f.Name()+" "+columnType(f.Kind()))
	}

	return "CREATE TABLE " + tableName +
		" (\n\t" + strings.Join(columns, ",\n\t") + "\n);"
}

func insertSQL(d dialect, tableName string, entry any) string {
	fields := exportedFields(entry)

	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = d.placeholder(i)
	}

	return "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"
}

func prepareStatement(
	tx *sql.Tx,
	d dialect,
	tableName string,
	entry any,
) *sql.Stmt {
	stmt, err := tx.Prepare(insertSQL(d, tableName, entry))
	if err != nil {
		panic(err)
	}

	return stmt
}
