package sql

import (
	"fmt"
	"sort"
	"strings"

	"recruit/internal/access"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var errNotInitialised = fmt.Errorf("repository not initialised")

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ready() error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	return nil
}

// applyScope adds the owner restriction and the free-text search of a scoped
// query. ownerColumn is the column compared to query.OwnerID; searchColumns are
// ORed together with a case-insensitive LIKE.
func applyScope(tx *gorm.DB, query access.ScopedQuery, ownerColumn string, searchColumns []string) *gorm.DB {
	if query.OwnerID != nil {
		tx = tx.Where(ownerColumn+" = ?", *query.OwnerID)
	}
	if keyword := strings.TrimSpace(query.Search); keyword != "" && len(searchColumns) > 0 {
		kw := "%" + strings.ToLower(keyword) + "%"
		clauses := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, column := range searchColumns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, kw)
		}
		tx = tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return tx
}

// newNameCollator 名称排序统一按中文（拼音）规则，Collator 非并发安全，每次新建
func newNameCollator() *collate.Collator {
	return collate.New(language.Chinese, collate.IgnoreCase)
}

// applyPage applies ordering, offset and limit. An unpaged query keeps the
// ordering and returns every row. Name ordering is handled by findPage.
func applyPage(tx *gorm.DB, query access.ScopedQuery) *gorm.DB {
	switch query.Sort {
	case access.SortOldest:
		tx = tx.Order("created_at ASC").Order("id ASC")
	default:
		tx = tx.Order("created_at DESC").Order("id DESC")
	}
	if query.Unpaged() {
		return tx
	}
	offset := query.Skip
	if offset < 0 {
		offset = 0
	}
	return tx.Offset(offset).Limit(query.Limit)
}

type nameKey struct {
	ID   uint
	Name string
}

// findPage loads one page of the scoped rows. Sorting by name collates in Go
// so every driver yields the same order: ids and names of the whole matching
// set are sorted, the page is cut, and only those rows are loaded.
func findPage[T any](tx *gorm.DB, query access.ScopedQuery, idOf func(*T) uint, preloads ...string) ([]T, error) {
	rows := []T{}
	if query.Sort != access.SortName {
		paged := applyPage(tx, query)
		for _, name := range preloads {
			paged = paged.Preload(name)
		}
		if err := paged.Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	}

	var keys []nameKey
	if err := tx.Session(&gorm.Session{}).Select("id", "name").Scan(&keys).Error; err != nil {
		return nil, err
	}
	col := newNameCollator()
	sort.SliceStable(keys, func(i, j int) bool {
		if c := col.CompareString(keys[i].Name, keys[j].Name); c != 0 {
			return c < 0
		}
		return keys[i].ID < keys[j].ID
	})
	keys = pageOf(keys, query)
	if len(keys) == 0 {
		return rows, nil
	}

	position := make(map[uint]int, len(keys))
	ids := make([]uint, 0, len(keys))
	for idx, key := range keys {
		position[key.ID] = idx
		ids = append(ids, key.ID)
	}
	load := tx.Where("id IN ?", ids)
	for _, name := range preloads {
		load = load.Preload(name)
	}
	if err := load.Find(&rows).Error; err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return position[idOf(&rows[i])] < position[idOf(&rows[j])]
	})
	return rows, nil
}

func pageOf(keys []nameKey, query access.ScopedQuery) []nameKey {
	if query.Unpaged() {
		return keys
	}
	skip := query.Skip
	if skip < 0 {
		skip = 0
	}
	if skip >= len(keys) {
		return nil
	}
	end := len(keys)
	if query.Limit < end-skip {
		end = skip + query.Limit
	}
	return keys[skip:end]
}
