package recordsrp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/core/cerr"
	"github.com/openshelf/libweb/pkg/core/log"
	"github.com/openshelf/libweb/pkg/core/repo"
)

// uniqueViolation is the SQLSTATE class for duplicate-key errors.
const uniqueViolation = "23505"

// Insert persists rec keyed by its RecordID in the collection table.
// An empty ID is an invalid record and a reused ID is a conflict;
// both are reported through the cerr taxonomy.
func Insert[M repo.Record, Q postgres.Queryer](
	ctx context.Context, q Q, collection string, rec M,
) error {
	id := rec.RecordID()
	if id == "" {
		return cerr.BadRequest(
			errors.New("record must have a non-empty id"),
		)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	_, err = q.Exec(
		ctx,
		fmt.Sprintf(
			"INSERT INTO %q (id, data) VALUES (?, ?::jsonb)",
			collection,
		),
		id, string(data),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation {
			return cerr.Conflict(
				fmt.Errorf("id %q already exists in %q", id, collection),
			)
		}
		return fmt.Errorf("inserting into %q: %w", collection, err)
	}
	return nil
}

// Get returns the record stored under id, or cerr.NotFound when the
// collection has no such row. A row that exists but cannot be decoded
// is a genuine serialization fault, not an absence.
func Get[M repo.Record, Q postgres.Queryer](
	ctx context.Context, q Q, collection, id string,
) (rec M, err error) {
	rows, err := q.Query(
		ctx,
		fmt.Sprintf("SELECT data FROM %q WHERE id = ?", collection),
		id,
	)
	if err != nil {
		return rec, fmt.Errorf("querying %q: %w", collection, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return rec, fmt.Errorf("reading %q row: %w", collection, err)
		}
		return rec, cerr.NotFound(
			fmt.Errorf("no %q record with id %q", collection, id),
		)
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return rec, fmt.Errorf("scanning %q row: %w", collection, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf(
			"decoding %q record %q: %w", collection, id, err,
		)
	}
	return rec, nil
}

// FindBy returns all records whose named top-level field stores the
// same serialized value as value. Matching compares the text form of
// the JSON field against the text form of value, so booleans compare
// as "true"/"false" and numbers in their decimal form. Results come
// in store-native order; no match yields an empty slice, not an error.
func FindBy[M repo.Record, Q postgres.Queryer](
	ctx context.Context, q Q, collection, field string, value any,
) ([]M, error) {
	want, err := textValue(value)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(
		ctx,
		fmt.Sprintf(
			"SELECT id, data FROM %q WHERE data->>? = ?", collection,
		),
		field, want,
	)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", collection, err)
	}
	defer rows.Close()
	return collect[M](ctx, rows, collection)
}

// List returns every record of the collection. Rows holding payloads
// that no longer decode into M are skipped and logged instead of
// failing the whole listing. This lenient-read policy is deliberate:
// one corrupt document must not take down every healthy one, and the
// warn log keeps the damage visible for reconciliation.
func List[M repo.Record, Q postgres.Queryer](
	ctx context.Context, q Q, collection string,
) ([]M, error) {
	rows, err := q.Query(
		ctx,
		fmt.Sprintf("SELECT id, data FROM %q", collection),
	)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", collection, err)
	}
	defer rows.Close()
	return collect[M](ctx, rows, collection)
}

// Update shallow-merges fields onto the record stored under id: the
// named fields override, every omitted field retains its prior value.
// The merge happens inside the DBMS with the JSONB concatenation
// operator, so no read-modify-write window exists for single-field
// updates. A missing id reports false without an error.
func Update[M repo.Record, Q postgres.Queryer](
	ctx context.Context, q Q, collection, id string,
	fields map[string]any,
) (bool, error) {
	patch, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("marshaling fields: %w", err)
	}
	count, err := q.Exec(
		ctx,
		fmt.Sprintf(
			"UPDATE %q SET data = data || ?::jsonb WHERE id = ?",
			collection,
		),
		string(patch), id,
	)
	if err != nil {
		return false, fmt.Errorf("updating %q: %w", collection, err)
	}
	return count > 0, nil
}

// UpdateIf behaves like Update, but only while the guard field still
// stores the given serialized value. Callers use it as the
// compare-and-swap primitive of check-then-act flows; a false result
// means either an absent id or a lost race, and in both cases nothing
// was modified.
func UpdateIf[M repo.Record, Q postgres.Queryer](
	ctx context.Context, q Q, collection, id string,
	fields map[string]any, guardField string, guardValue any,
) (bool, error) {
	patch, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("marshaling fields: %w", err)
	}
	want, err := textValue(guardValue)
	if err != nil {
		return false, err
	}
	count, err := q.Exec(
		ctx,
		fmt.Sprintf(
			"UPDATE %q SET data = data || ?::jsonb"+
				" WHERE id = ? AND data->>? = ?",
			collection,
		),
		string(patch), id, guardField, want,
	)
	if err != nil {
		return false, fmt.Errorf("updating %q: %w", collection, err)
	}
	return count > 0, nil
}

// Remove deletes the row stored under id and reports whether a row
// was actually removed.
func Remove[M repo.Record, Q postgres.Queryer](
	ctx context.Context, q Q, collection, id string,
) (bool, error) {
	count, err := q.Exec(
		ctx,
		fmt.Sprintf("DELETE FROM %q WHERE id = ?", collection),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting from %q: %w", collection, err)
	}
	return count > 0, nil
}

// collect drains (id, data) rows, decoding each payload into M and
// skipping undecodable ones per the lenient-read policy.
func collect[M repo.Record](
	ctx context.Context, rows repo.Rows, collection string,
) ([]M, error) {
	recs := []M{}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf(
				"scanning %q row: %w", collection, err,
			)
		}
		var rec M
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Warn(
				ctx, "skipping undecodable record",
				slog.String("collection", collection),
				slog.String("id", id),
				log.Err("error", err),
			)
			continue
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %q rows: %w", collection, err)
	}
	return recs, nil
}

// textValue renders value the way postgres renders a JSON field
// through the ->> operator: strings bare, booleans as true/false,
// numbers in their JSON decimal form.
func textValue(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshaling comparison value: %w", err)
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return "", fmt.Errorf("unquoting comparison value: %w", err)
		}
		return unquoted, nil
	}
	return s, nil
}
