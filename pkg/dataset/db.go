package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/charmbracelet/log"
	"github.com/lib/pq"
)

// Columns are the voter table columns, in the order they are selected.
// They share their names with the JSON keys of voter.Record.
var Columns = []string{
	"id", "vcardid",
	"e_first_name", "e_middle_name", "e_last_name",
	"l_first_name", "l_middle_name", "l_last_name",
	"boothid", "booth_no", "l_boothaddress", "l_address",
	"mobile_no1", "mobile_no2", "emailid",
}

// DBSource reads the voter roll from a Postgres table.
type DBSource struct {
	db      *sql.DB
	table   string
	orderBy string
	label   string
}

// NewDBSource creates a source over table, ordered by the orderBy column.
// label names the source in logs; it must not contain credentials.
func NewDBSource(db *sql.DB, table, orderBy, label string) *DBSource {
	if table == "" {
		table = "voters"
	}
	if orderBy == "" {
		orderBy = "id"
	}
	return &DBSource{db: db, table: table, orderBy: orderBy, label: label}
}

func (s *DBSource) Name() string {
	if s.label != "" {
		return s.label + "#" + s.table
	}
	return s.table
}

// Query returns the SELECT statement Load runs.
func (s *DBSource) Query() string {
	cols := make([]string, len(Columns))
	for i, c := range Columns {
		cols[i] = pq.QuoteIdentifier(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), quoteQualified(s.table), pq.QuoteIdentifier(s.orderBy))
}

func (s *DBSource) Load(ctx context.Context) ([]voter.Record, error) {
	rows, err := s.db.QueryContext(ctx, s.Query())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var records []voter.Record
	var vals [15]sql.NullString
	dest := make([]any, len(vals))
	for i := range vals {
		dest[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", s.table, len(records)+1, err)
		}
		records = append(records, recordFromRow(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}

	log.Debugf("Read %d rows from %s", len(records), s.table)
	return records, nil
}

func recordFromRow(v [15]sql.NullString) voter.Record {
	t := func(i int) voter.Text { return voter.Text(v[i].String) }
	return voter.Record{
		ID:              t(0),
		VoterCardID:     t(1),
		FirstName:       t(2),
		MiddleName:      t(3),
		LastName:        t(4),
		FirstNameLocal:  t(5),
		MiddleNameLocal: t(6),
		LastNameLocal:   t(7),
		BoothID:         t(8),
		BoothNo:         t(9),
		BoothAddress:    t(10),
		Address:         t(11),
		Mobile1:         t(12),
		Mobile2:         t(13),
		Email:           t(14),
	}
}

// quoteQualified quotes each part of a schema-qualified name.
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
