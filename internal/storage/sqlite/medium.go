package sqlite

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"simplechat/internal/storage"
)

// Medium stores key-value entries in a single sqlite table.
type Medium struct {
	db *sql.DB
}

func NewMedium(db *sql.DB) *Medium {
	return &Medium{db: db}
}

func (m *Medium) Init() error {
	if _, err := m.db.Exec(createTable); err != nil {
		log.Error().Err(err).Msg("[sqlite/Medium.Init] failed to create table")
		return errors.Wrap(err, "create kv table")
	}
	log.Debug().Msg("[sqlite/Medium.Init] table created or already exists")
	return nil
}

func (m *Medium) Close() error {
	log.Debug().Msg("[sqlite/Medium.Close] closing db connection")
	return m.db.Close()
}

func (m *Medium) Get(key string) (string, bool, error) {
	row := m.db.QueryRow(selectByKey, key)
	var value string
	switch err := row.Scan(&value); {
	case err == nil:
		return value, true, nil
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	default:
		log.Error().Err(err).Str("key", key).Msg("[sqlite/Medium.Get] scan failed")
		return "", false, errors.Wrapf(err, "get %q", key)
	}
}

func (m *Medium) Set(key, value string) error {
	if _, err := m.db.Exec(upsert, key, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("[sqlite/Medium.Set] upsert failed")
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}

func (m *Medium) Keys() ([]string, error) {
	rows, err := m.db.Query(selectKeys)
	if err != nil {
		log.Error().Err(err).Msg("[sqlite/Medium.Keys] query failed")
		return nil, errors.Wrap(err, "list keys")
	}
	defer func(rows *sql.Rows) {
		if cerr := rows.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("[sqlite/Medium.Keys] failed to close rows")
		}
	}(rows)

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "scan key row")
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate key rows")
	}
	return keys, nil
}

func (m *Medium) RemoveAll() error {
	if _, err := m.db.Exec(deleteAll); err != nil {
		log.Error().Err(err).Msg("[sqlite/Medium.RemoveAll] delete failed")
		return errors.Wrap(err, "remove all entries")
	}
	return nil
}

var _ storage.Medium = (*Medium)(nil)
