// Package cache persists computed fingerprints in a local SQLite file
// keyed by (parent, file). Entries additionally record the file size
// and modification timestamp observed at hash time, so lookups can
// detect stale rows.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/JustinTDCT/VHash/internal/scanner"
	"github.com/JustinTDCT/VHash/internal/verrors"
)

// Item is one cache row.
type Item struct {
	Parent string
	File   string

	FileSize     int64
	FileUpdateTS int64
	RecUpdateTS  int64

	FileHash uint64
}

// Key identifies a row.
type Key struct {
	Parent string
	File   string
}

// Cache owns the database handle; all access is serialized through its
// mutex.
type Cache struct {
	mu     sync.Mutex
	db     *sql.DB
	dbFile string
}

// DefaultPath returns <home>/.vhash/vhash_db.sqlite.
func DefaultPath() string {
	return filepath.Join(scanner.HomeDir(), ".vhash", "vhash_db.sqlite")
}

// New prepares a cache over the given database file; an empty path
// selects the default location. Init must run before any other
// operation.
func New(dbFile string) *Cache {
	if dbFile == "" {
		dbFile = DefaultPath()
	}
	return &Cache{dbFile: dbFile}
}

// Init creates parent directories (mode 0755), opens or creates the
// database and synchronizes the schema.
func (c *Cache) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, _ := scanner.PathSplit(c.dbFile)
	if err := scanner.MkdirAll(parent, 0o755); err != nil {
		log.Error().Str("dir", parent).Msg("create cache folder failed")
		return err
	}

	db, err := sql.Open("sqlite3", c.dbFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.dbFile, verrors.InitDb)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		parent TEXT NOT NULL,
		file TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		file_update_ts INTEGER NOT NULL,
		rec_update_ts INTEGER NOT NULL,
		file_hash INTEGER NOT NULL,
		PRIMARY KEY (parent, file)
	)`); err != nil {
		db.Close()
		return fmt.Errorf("sync schema: %w", verrors.InitDb)
	}
	c.db = db
	return nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Get returns the zero or one rows matching the key.
func (c *Cache) Get(key Key) ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil, fmt.Errorf("cache not initialized: %w", verrors.InitDb)
	}

	row := c.db.QueryRow(`SELECT parent, file, file_size, file_update_ts, rec_update_ts, file_hash
		FROM cache WHERE parent = ? AND file = ?`, key.Parent, key.File)

	var it Item
	var hash int64
	err := row.Scan(&it.Parent, &it.File, &it.FileSize, &it.FileUpdateTS, &it.RecUpdateTS, &hash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select cache row: %w", err)
	}
	it.FileHash = uint64(hash)
	return []Item{it}, nil
}

// Set stamps the record timestamp and upserts the item by its primary
// key.
func (c *Cache) Set(item *Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return fmt.Errorf("cache not initialized: %w", verrors.InitDb)
	}

	item.RecUpdateTS = time.Now().Unix()
	_, err := c.db.Exec(`INSERT OR REPLACE INTO cache
		(parent, file, file_size, file_update_ts, rec_update_ts, file_hash)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.Parent, item.File, item.FileSize, item.FileUpdateTS, item.RecUpdateTS, int64(item.FileHash))
	if err != nil {
		return fmt.Errorf("insert cache row: %w", verrors.InsertDb)
	}
	return nil
}

// Del removes the row matching the key.
func (c *Cache) Del(key Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return fmt.Errorf("cache not initialized: %w", verrors.InitDb)
	}
	if _, err := c.db.Exec(`DELETE FROM cache WHERE parent = ? AND file = ?`,
		key.Parent, key.File); err != nil {
		return fmt.Errorf("delete cache row: %w", verrors.DeleteDb)
	}
	return nil
}

// Clear removes every row.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return fmt.Errorf("cache not initialized: %w", verrors.InitDb)
	}
	if _, err := c.db.Exec(`DELETE FROM cache`); err != nil {
		return fmt.Errorf("clear cache: %w", verrors.ClearDb)
	}
	return nil
}

// Prune evicts rows whose record timestamp is older than period
// seconds.
func (c *Cache) Prune(period int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return fmt.Errorf("cache not initialized: %w", verrors.InitDb)
	}
	expired := time.Now().Unix() - period
	if _, err := c.db.Exec(`DELETE FROM cache WHERE rec_update_ts < ?`, expired); err != nil {
		return fmt.Errorf("prune cache: %w", verrors.PruneDb)
	}
	return nil
}
