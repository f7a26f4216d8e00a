package catalog

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/models"

	"github.com/lib/pq"
)

// querier is the subset shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgresStore implements Store and Transactor on the menu_items and
// seasonal_menus tables (see migrations/001_menu.sql).
type PostgresStore struct {
	db     *sql.DB
	q      querier
	inTx   bool
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, q: db, logger: log}
}

const uniqueViolation = "23505"

func storeErr(op string, err error) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errors.NewInvalidInputError(fmt.Sprintf("%s: duplicate key %s", op, pqErr.Constraint))
	}
	return errors.NewStoreError(op, err)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const itemColumns = `id, name, description, price, base_price, category, is_available, seasonal_menu_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(r rowScanner) (models.MenuItem, error) {
	var (
		item        models.MenuItem
		description sql.NullString
		menuID      sql.NullString
	)
	err := r.Scan(&item.ID, &item.Name, &description, &item.Price, &item.BasePrice,
		&item.Category, &item.IsAvailable, &menuID, &item.CreatedAt, &item.UpdatedAt)
	item.Description = description.String
	item.SeasonalMenuID = menuID.String
	return item, err
}

func (s *PostgresStore) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+itemColumns+` FROM menu_items ORDER BY category, name, id`)
	if err != nil {
		return nil, storeErr("list items", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storeErr("scan item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list items", err)
	}
	return items, nil
}

func (s *PostgresStore) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := scanItem(s.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM menu_items WHERE id = $1`, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(KindItem, id)
	}
	if err != nil {
		return nil, storeErr("get item", err)
	}
	return &item, nil
}

func (s *PostgresStore) CreateItem(ctx context.Context, item models.MenuItem) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO menu_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.Name, nullable(item.Description), item.Price, item.BasePrice,
		item.Category, item.IsAvailable, nullable(item.SeasonalMenuID), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return storeErr("create item", err)
	}
	return nil
}

func (s *PostgresStore) UpdateItem(ctx context.Context, item models.MenuItem) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, base_price = $5, category = $6,
			is_available = $7, seasonal_menu_id = $8, updated_at = $9
		WHERE id = $1`,
		item.ID, item.Name, nullable(item.Description), item.Price, item.BasePrice,
		item.Category, item.IsAvailable, nullable(item.SeasonalMenuID), item.UpdatedAt,
	)
	return expectOne(res, err, "update item", KindItem, item.ID)
}

func (s *PostgresStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	return expectOne(res, err, "delete item", KindItem, id)
}

func expectOne(res sql.Result, err error, op, kind, id string) error {
	if err != nil {
		return storeErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}
	if n == 0 {
		return errors.NewNotFoundError(kind, id)
	}
	return nil
}

const menuColumns = `id, name, description, start_date, end_date, start_time, end_time, is_active, item_ids, created_at, updated_at`

func scanMenu(r rowScanner) (models.SeasonalMenu, error) {
	var (
		m           models.SeasonalMenu
		description sql.NullString
		itemIDs     pq.StringArray
	)
	err := r.Scan(&m.ID, &m.Name, &description, &m.StartDate, &m.EndDate, &m.StartTime, &m.EndTime,
		&m.IsActive, &itemIDs, &m.CreatedAt, &m.UpdatedAt)
	m.Description = description.String
	m.ItemIDs = []string(itemIDs)
	return m, err
}

// ListSeasonalMenus orders by the insertion sequence column.
func (s *PostgresStore) ListSeasonalMenus(ctx context.Context) ([]models.SeasonalMenu, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+menuColumns+` FROM seasonal_menus ORDER BY position`)
	if err != nil {
		return nil, storeErr("list seasonal menus", err)
	}
	defer rows.Close()

	var menus []models.SeasonalMenu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, storeErr("scan seasonal menu", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list seasonal menus", err)
	}
	return menus, nil
}

func (s *PostgresStore) GetSeasonalMenu(ctx context.Context, id string) (*models.SeasonalMenu, error) {
	m, err := scanMenu(s.q.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM seasonal_menus WHERE id = $1`, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(KindSeasonalMenu, id)
	}
	if err != nil {
		return nil, storeErr("get seasonal menu", err)
	}
	return &m, nil
}

func (s *PostgresStore) CreateSeasonalMenu(ctx context.Context, m models.SeasonalMenu) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO seasonal_menus (`+menuColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.Name, nullable(m.Description), m.StartDate, m.EndDate, m.StartTime, m.EndTime,
		m.IsActive, pq.Array(m.ItemIDs), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return storeErr("create seasonal menu", err)
	}
	return nil
}

func (s *PostgresStore) UpdateSeasonalMenu(ctx context.Context, m models.SeasonalMenu) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE seasonal_menus
		SET name = $2, description = $3, start_date = $4, end_date = $5, start_time = $6,
			end_time = $7, is_active = $8, item_ids = $9, updated_at = $10
		WHERE id = $1`,
		m.ID, m.Name, nullable(m.Description), m.StartDate, m.EndDate, m.StartTime, m.EndTime,
		m.IsActive, pq.Array(m.ItemIDs), m.UpdatedAt,
	)
	return expectOne(res, err, "update seasonal menu", KindSeasonalMenu, m.ID)
}

func (s *PostgresStore) DeleteSeasonalMenu(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM seasonal_menus WHERE id = $1`, id)
	return expectOne(res, err, "delete seasonal menu", KindSeasonalMenu, id)
}

func (s *PostgresStore) DetachItems(ctx context.Context, menuID string) (int, error) {
	if menuID == "" {
		return 0, nil
	}
	res, err := s.q.ExecContext(ctx,
		`UPDATE menu_items SET seasonal_menu_id = NULL, updated_at = NOW() WHERE seasonal_menu_id = $1`, menuID)
	if err != nil {
		return 0, storeErr("detach items", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("detach items", err)
	}
	return int(n), nil
}

func (s *PostgresStore) SetItemMenu(ctx context.Context, itemID, menuID string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE menu_items SET seasonal_menu_id = $2, updated_at = NOW() WHERE id = $1`, itemID, nullable(menuID))
	return expectOne(res, err, "set item menu", KindItem, itemID)
}

// WithinTx runs fn against a transaction-scoped store. Nested calls reuse the
// outer transaction.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin tx", err)
	}

	if err := fn(&PostgresStore{db: s.db, q: tx, inTx: true, logger: s.logger}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", map[string]interface{}{"error": rbErr.Error()})
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit tx", err)
	}
	return nil
}
