package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

// ExpenseStore is the SQLite-backed Expenses implementation.
type ExpenseStore struct {
	db *sql.DB
}

func NewExpenseStore(db *sql.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

const expenseCols = `id, description, amount, currency, category, date, created_at`

func scanExpense(scanner interface{ Scan(...any) error }) (*model.Expense, error) {
	var e model.Expense
	err := scanner.Scan(
		&e.ID, &e.Description, &e.Amount, &e.Currency, &e.Category, &e.Date, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExpenseStore) List() ([]model.Expense, error) {
	rows, err := s.db.Query(`SELECT ` + expenseCols + ` FROM expenses ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (s *ExpenseStore) Get(id int64) (*model.Expense, error) {
	row := s.db.QueryRow(`SELECT `+expenseCols+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseStore) Create(ne NewExpense) (*model.Expense, error) {
	e := ne.materialize(0, time.Now().UTC())

	result, err := s.db.Exec(
		`INSERT INTO expenses (description, amount, currency, category, date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Description, e.Amount, e.Currency, e.Category, e.Date, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id)
}

func (s *ExpenseStore) Update(id int64, patch ExpensePatch) (*model.Expense, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}

	patch.apply(e)

	_, err = s.db.Exec(
		`UPDATE expenses SET description = ?, amount = ?, currency = ?, category = ?, date = ? WHERE id = ?`,
		e.Description, e.Amount, e.Currency, e.Category, e.Date, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return s.Get(id)
}

func (s *ExpenseStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ExpenseStore) ByDateRange(start, end time.Time) ([]model.Expense, error) {
	rows, err := s.db.Query(
		`SELECT `+expenseCols+` FROM expenses WHERE date >= ? AND date <= ? ORDER BY date DESC, id DESC`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("expenses by date range: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func collectExpenses(rows *sql.Rows) ([]model.Expense, error) {
	var expenses []model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}
